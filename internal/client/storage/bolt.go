package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nkorotkov/privateme/internal/client/models"
	"github.com/nkorotkov/privateme/internal/common"
)

var (
	bucketNotes = []byte("notes")
	// keyNotes is the single namespace key holding the serialized collection.
	keyNotes = []byte("privateme_notes")
)

// BoltStore keeps the note collection in a single-file bbolt database.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the database file at path.
// The store starts empty if no prior data exists.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNotes)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init local store: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// readCollection loads and deserializes the whole collection. Date fields
// come back as time values via the models' JSON round-trip.
func (s *BoltStore) readCollection() ([]models.Note, error) {
	var notes []models.Note
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketNotes).Get(keyNotes)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &notes)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// writeCollection serializes and stores the whole collection back.
func (s *BoltStore) writeCollection(notes []models.Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotes).Put(keyNotes, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write notes: %w", err)
	}
	return nil
}

func (s *BoltStore) SaveNote(ctx context.Context, note *models.Note) error {
	notes, err := s.readCollection()
	if err != nil {
		return err
	}

	replaced := false
	for i := range notes {
		if notes[i].ID == note.ID {
			notes[i] = *note
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append(notes, *note)
	}

	return s.writeCollection(notes)
}

func (s *BoltStore) GetNote(ctx context.Context, id string) (*models.Note, error) {
	notes, err := s.readCollection()
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			n := notes[i]
			return &n, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *BoltStore) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	return s.readCollection()
}

func (s *BoltStore) DeleteNote(ctx context.Context, id string) error {
	notes, err := s.readCollection()
	if err != nil {
		return err
	}

	filtered := notes[:0]
	for i := range notes {
		if notes[i].ID != id {
			filtered = append(filtered, notes[i])
		}
	}

	return s.writeCollection(filtered)
}

func (s *BoltStore) ClearAll(ctx context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotes).Delete(keyNotes)
	})
	if err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	return nil
}
