package crypto

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStore_GeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "encryption.key")
	ks := NewKeyStore(path)

	key, err := ks.Key()
	require.NoError(t, err)
	assert.Len(t, key, keySize*2)

	_, err = hex.DecodeString(key)
	require.NoError(t, err, "key must be hex-encoded")

	// second call returns the same stored key
	again, err := ks.Key()
	require.NoError(t, err)
	assert.Equal(t, key, again)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestKeyStore_DistinctPathsDistinctKeys(t *testing.T) {
	dir := t.TempDir()
	k1, err := NewKeyStore(filepath.Join(dir, "a.key")).Key()
	require.NoError(t, err)
	k2, err := NewKeyStore(filepath.Join(dir, "b.key")).Key()
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}
