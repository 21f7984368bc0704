// Package storage implements the device-local note store.
//
// The on-disk layout mirrors the mobile app: the whole collection is one
// JSON array kept under a single namespace key, and every mutation is a
// read-modify-write of that array. Two mutations racing on the same
// process can therefore lose an update; callers are expected to
// serialize their own sync passes.
package storage

import (
	"context"

	"github.com/nkorotkov/privateme/internal/client/models"
)

// Store describes the local note store consumed by the sync layer and the UI.
type Store interface {
	// SaveNote upserts the complete record by id. No field merging is
	// performed; the caller supplies the whole note.
	SaveNote(ctx context.Context, note *models.Note) error

	// GetNote returns the record or common.ErrNotFound. Absence is never
	// a panic or a plain nil.
	GetNote(ctx context.Context, id string) (*models.Note, error)

	// GetAllNotes returns every record. Order is unspecified; sorting is
	// a presentation concern.
	GetAllNotes(ctx context.Context) ([]models.Note, error)

	// DeleteNote removes the record with that id; no-op if absent.
	DeleteNote(ctx context.Context, id string) error

	// ClearAll removes every record. Used for sign-out/reset flows.
	ClearAll(ctx context.Context) error

	// Close releases the underlying database file.
	Close() error
}
