package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the raw session token. Pure byte storage: no expiry
// logic lives here. Only the Controller writes to it.
type Store interface {
	Save(token string) error
	Read() (string, error)
	Clear() error
}

// FileStore keeps the token in a single file. A missing file reads as an
// empty token, which is the anonymous default, not an error.
type FileStore struct {
	path string
}

// NewFileStore builds a store rooted at the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the token, creating parent directories as needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Read returns the stored token, or empty when none is present.
func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the token file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
