package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote_Defaults(t *testing.T) {
	n := NewNote("u1", "Groceries", "milk, eggs", nil)

	require.NotEmpty(t, n.ID)
	assert.Equal(t, "u1", n.UserID)
	assert.Equal(t, 1, n.Version)
	assert.Equal(t, SyncStatusPending, n.SyncStatus)
	assert.NotNil(t, n.Tags)
	assert.Empty(t, n.Tags)
	assert.False(t, n.UpdatedAt.Before(n.CreatedAt))
	assert.Nil(t, n.DeletedAt)
	assert.False(t, n.IsEncrypted)
}

func TestNewNote_UniqueIDs(t *testing.T) {
	a := NewNote("u1", "a", "", nil)
	b := NewNote("u1", "b", "", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTouch_RefreshesTimestampAndStatus(t *testing.T) {
	n := NewNote("u1", "t", "c", nil)
	n.SyncStatus = SyncStatusSynced
	before := n.UpdatedAt

	time.Sleep(time.Millisecond)
	n.Touch()

	assert.Equal(t, SyncStatusPending, n.SyncStatus)
	assert.True(t, n.UpdatedAt.After(before))
}

func TestMarkDeleted_SetsTombstone(t *testing.T) {
	n := NewNote("u1", "t", "c", nil)
	n.SyncStatus = SyncStatusSynced

	n.MarkDeleted()

	require.NotNil(t, n.DeletedAt)
	assert.Equal(t, SyncStatusPending, n.SyncStatus)
}

func TestNeedsSync(t *testing.T) {
	n := NewNote("u1", "t", "c", nil)

	n.SyncStatus = SyncStatusPending
	assert.True(t, n.NeedsSync())

	n.SyncStatus = SyncStatusConflict
	assert.True(t, n.NeedsSync())

	n.SyncStatus = SyncStatusSynced
	assert.False(t, n.NeedsSync())
}

func TestNoteColor_Valid(t *testing.T) {
	assert.True(t, NoteColor("").Valid())
	assert.True(t, ColorBlue.Valid())
	assert.False(t, NoteColor("magenta").Valid())
}
