// Package crypto transforms notes into opaque transport payloads and back.
//
// The transform is a reversible encoding (canonical JSON + base64), not a
// cipher. What the sync layer relies on is reversibility and determinism:
// encoding an unchanged note twice yields byte-identical payloads, which
// keeps retries idempotent. See KeyStore for the reserved key material.
package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nkorotkov/privateme/internal/client/models"
	"github.com/nkorotkov/privateme/internal/common"
)

// envelope is the note's durable projection carried over the wire.
// Transient sync bookkeeping (syncStatus, isEncrypted) is excluded,
// and dates travel as ISO-8601 strings.
type envelope struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Tags      []string         `json:"tags"`
	IsPinned  bool             `json:"isPinned"`
	Color     models.NoteColor `json:"color,omitempty"`
	Version   int              `json:"version"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

// Encode serializes the note's durable fields and applies a
// transport-safe encoding. Deterministic for a given note.
func (c *Codec) Encode(note *models.Note) (string, error) {
	env := envelope{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		IsPinned:  note.IsPinned,
		Color:     note.Color,
		Version:   note.Version,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if env.Tags == nil {
		env.Tags = []string{}
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to serialize note: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. The returned note carries only durable fields;
// sync metadata is left for the caller to assign. Malformed payloads and
// payloads missing required fields yield common.ErrDecode.
func (c *Codec) Decode(payload string) (*models.Note, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid encoding: %v", common.ErrDecode, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: invalid payload: %v", common.ErrDecode, err)
	}

	if env.ID == "" || env.UserID == "" || env.CreatedAt == "" || env.UpdatedAt == "" {
		return nil, fmt.Errorf("%w: payload is missing required fields", common.ErrDecode)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, env.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid createdAt: %v", common.ErrDecode, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, env.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid updatedAt: %v", common.ErrDecode, err)
	}

	tags := env.Tags
	if tags == nil {
		tags = []string{}
	}
	version := env.Version
	if version == 0 {
		version = 1
	}

	return &models.Note{
		ID:        env.ID,
		UserID:    env.UserID,
		Title:     env.Title,
		Content:   env.Content,
		Tags:      tags,
		IsPinned:  env.IsPinned,
		Color:     env.Color,
		Version:   version,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
