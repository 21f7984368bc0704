// Package httpapi exposes the backend HTTP surface: the note
// upload/fetch contracts, the health probe, and account endpoints.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nkorotkov/privateme/internal/logging"
	"github.com/nkorotkov/privateme/internal/server/auth"
	"github.com/nkorotkov/privateme/internal/server/blob"
	"github.com/nkorotkov/privateme/internal/server/users"
)

const userIDContextKey = "user_id"

// IOC carries the server dependencies into the engine.
type IOC struct {
	Blobs       blob.Store
	Users       *users.Service
	Logger      logging.Logger
	SigningKey  []byte
	Tokenexpiry time.Duration
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(bearerAuth(ctrl.SigningKey))

	router.GET("/health", health)

	a := &authHandlers{users: ctrl.Users, logger: ctrl.Logger}
	router.POST("/auth/register", a.Register)
	router.POST("/auth/login", a.Login)

	n := &noteHandlers{blobs: ctrl.Blobs, logger: ctrl.Logger}
	restricted.POST("/notes/upload", n.Upload)
	restricted.GET("/notes/fetch", n.Fetch)

	return engine
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// bearerAuth validates the Authorization header and stores the token's
// user id on the request context.
func bearerAuth(signingKey []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}

			userID, err := auth.GetUserIDFromToken(token, signingKey)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}
