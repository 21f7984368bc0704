// Package blob stores opaque note payloads keyed by owner and note id.
package blob

import (
	"context"
	"fmt"
	"sync"

	"github.com/nkorotkov/privateme/internal/common"
)

// Store is the remote object store behind the upload/fetch endpoints.
// Put is an idempotent overwrite; re-putting the same key replaces
// rather than duplicates.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (etag string, err error)
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// NoteKey builds the addressing scheme shared with the client so that
// push and pull stay symmetric.
func NoteKey(userID, noteID string) string {
	return fmt.Sprintf("users/%s/notes/%s.enc", userID, noteID)
}

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	puts int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	s.puts++
	return fmt.Sprintf("\"etag-%d\"", s.puts), nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}
