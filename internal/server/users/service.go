package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/nkorotkov/privateme/internal/common"
	"github.com/nkorotkov/privateme/internal/server/auth"
	"github.com/nkorotkov/privateme/internal/server/config"
)

const saltSize = 16

// Service handles registration and login, minting JWTs on success.
type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

// Register creates a new account with an argon2id password hash and a
// per-user random salt.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrUnauthorized)
	}

	salt := common.GenerateRandByteArray(saltSize)
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Salt:         salt,
		PasswordHash: hashPassword(password, salt),
	}

	u, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and returns (userID, signed token).
func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", "", common.ErrUnauthorized
		}
		return "", "", common.ErrInternal
	}

	candidate := hashPassword(password, user.Salt)
	if subtle.ConstantTimeCompare(user.PasswordHash, candidate) != 1 {
		return "", "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", "", common.ErrInternal
	}

	return user.ID, token, nil
}
