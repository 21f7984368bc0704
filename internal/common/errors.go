// Package common defines shared constants and sentinel errors used across
// client and server layers of PrivateMe. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository/store-level errors.
	ErrNotFound = errors.New("not found")

	// Transient remote errors (network, server); safe to retry later.
	ErrRemote = errors.New("remote unavailable")

	// Payload decode errors (malformed or incomplete envelope).
	ErrDecode = errors.New("decode failed")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
