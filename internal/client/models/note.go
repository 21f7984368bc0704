// Package models defines the client-side note model and its sync metadata.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus tracks where a note stands relative to its remote copy.
type SyncStatus string

const (
	// SyncStatusSynced means the remote copy matches the local one.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusPending means the local copy is newer than (or never
	// reached) the remote copy.
	SyncStatusPending SyncStatus = "pending_sync"
	// SyncStatusSyncing marks an in-flight push. It is never persisted.
	SyncStatusSyncing SyncStatus = "syncing"
	// SyncStatusConflict is reserved for multi-writer detection. It is
	// treated the same as pending_sync when selecting notes to retry.
	SyncStatusConflict SyncStatus = "conflict"
)

// NoteColor is one of a fixed palette of note colors.
type NoteColor string

const (
	ColorDefault NoteColor = "default"
	ColorRed     NoteColor = "red"
	ColorOrange  NoteColor = "orange"
	ColorYellow  NoteColor = "yellow"
	ColorGreen   NoteColor = "green"
	ColorBlue    NoteColor = "blue"
	ColorPurple  NoteColor = "purple"
	ColorPink    NoteColor = "pink"
)

// Valid reports whether c belongs to the palette. The empty value is
// allowed and means "no color".
func (c NoteColor) Valid() bool {
	switch c {
	case "", ColorDefault, ColorRed, ColorOrange, ColorYellow,
		ColorGreen, ColorBlue, ColorPurple, ColorPink:
		return true
	}
	return false
}

// Note is the unit of user content synchronized by the app.
//
// Date fields are persisted as ISO-8601 strings and parsed back on read.
// EncryptionIV is a reserved placeholder for future cipher metadata.
type Note struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Tags     []string  `json:"tags"`
	IsPinned bool      `json:"isPinned"`
	Color    NoteColor `json:"color,omitempty"`

	// Sync metadata.
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
	SyncStatus SyncStatus `json:"syncStatus"`

	// E2EE metadata.
	IsEncrypted  bool   `json:"isEncrypted"`
	EncryptionIV string `json:"encryptionIV,omitempty"`
}

// NewNote creates a note owned by userID with a generated id, pending
// sync status and both timestamps set to now.
func NewNote(userID, title, content string, tags []string) *Note {
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	return &Note{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Content:    content,
		Tags:       tags,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncStatus: SyncStatusPending,
	}
}

// Touch refreshes UpdatedAt and flags the note for sync. Every local
// mutation must go through here so the pending set stays correct.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now().UTC()
	n.SyncStatus = SyncStatusPending
}

// MarkDeleted soft-deletes the note. The record stays in the local store
// until explicitly removed.
func (n *Note) MarkDeleted() {
	now := time.Now().UTC()
	n.DeletedAt = &now
	n.Touch()
}

// NeedsSync reports whether the note should be picked up by a sync pass.
// Conflict notes are retried the same way as pending ones.
func (n *Note) NeedsSync() bool {
	return n.SyncStatus == SyncStatusPending || n.SyncStatus == SyncStatusConflict
}
