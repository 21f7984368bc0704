package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkorotkov/privateme/internal/common"
)

func TestNoteKey(t *testing.T) {
	assert.Equal(t, "users/u1/notes/n1.enc", NoteKey("u1", "n1"))
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	etag, err := s.Put(ctx, NoteKey("u1", "n1"), []byte("payload"))
	require.NoError(t, err)
	assert.NotEmpty(t, etag)

	data, err := s.Get(ctx, NoteKey("u1", "n1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := NoteKey("u1", "n1")

	_, err := s.Put(ctx, key, []byte("v1"))
	require.NoError(t, err)
	_, err = s.Put(ctx, key, []byte("v2"))
	require.NoError(t, err)

	data, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestMemoryStore_Exists(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := NoteKey("u1", "n1")

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Put(ctx, key, []byte("payload"))
	require.NoError(t, err)

	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), NoteKey("u1", "missing"))
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
