package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkorotkov/privateme/internal/common"
	"github.com/nkorotkov/privateme/internal/logging"
	"github.com/nkorotkov/privateme/internal/server/blob"
	"github.com/nkorotkov/privateme/internal/server/users"
)

type uploadRequest struct {
	UserID        string `json:"userId"`
	NoteID        string `json:"noteId"`
	EncryptedData string `json:"encryptedData"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type noteHandlers struct {
	blobs  blob.Store
	logger logging.Logger
}

// Upload stores the opaque payload under the (userId, noteId) key.
// Re-uploading the same key overwrites the previous payload.
func (h *noteHandlers) Upload(c echo.Context) error {
	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.UserID == "" || req.NoteID == "" || req.EncryptedData == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId, noteId and encryptedData are required"})
	}
	if c.Get(userIDContextKey) != req.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot upload notes for another user"})
	}

	key := blob.NoteKey(req.UserID, req.NoteID)
	etag, err := h.blobs.Put(c.Request().Context(), key, []byte(req.EncryptedData))
	if err != nil {
		h.logger.Error(c.Request().Context(), "upload failed", "key", key, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store note"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Note uploaded successfully",
		"key":     key,
		"etag":    etag,
	})
}

// Fetch returns the previously uploaded payload for (userId, noteId).
func (h *noteHandlers) Fetch(c echo.Context) error {
	userID := c.QueryParam("userId")
	noteID := c.QueryParam("noteId")
	if userID == "" || noteID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId and noteId are required"})
	}
	if c.Get(userIDContextKey) != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot fetch notes of another user"})
	}

	data, err := h.blobs.Get(c.Request().Context(), blob.NoteKey(userID, noteID))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
		}
		h.logger.Error(c.Request().Context(), "fetch failed", "user_id", userID, "note_id", noteID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch note"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"encryptedData": string(data),
		"noteId":        noteID,
		"userId":        userID,
	})
}

type authHandlers struct {
	users  *users.Service
	logger logging.Logger
}

func (h *authHandlers) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	user, err := h.users.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn(c.Request().Context(), "registration failed", "email", req.Email, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"userId":  user.ID,
	})
}

func (h *authHandlers) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	userID, token, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		h.logger.Error(c.Request().Context(), "login failed", "email", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
		"userId":  userID,
	})
}
