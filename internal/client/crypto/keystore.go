package crypto

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkorotkov/privateme/internal/common"
)

const keySize = 32

// KeyStore holds the device encryption key. The key is generated lazily
// on first use and persisted with owner-only permissions. It is not yet
// applied to note payloads; it is reserved for the future cipher the
// EncryptionIV field belongs to.
type KeyStore struct {
	path string
}

func NewKeyStore(path string) *KeyStore {
	return &KeyStore{path: path}
}

// Key returns the stored key, generating and persisting a new random one
// if none exists yet.
func (k *KeyStore) Key() (string, error) {
	data, err := os.ReadFile(k.path)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := common.MakeRandHexString(keySize)
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	if dir := filepath.Dir(k.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("failed to create key dir: %w", err)
		}
	}
	if err := os.WriteFile(k.path, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("failed to store key: %w", err)
	}

	return key, nil
}
