package credstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the single opaque bearer credential. Absence of the file is
// the sole "anonymous" signal.
type Store struct {
	path string
}

// DefaultPath resolves the well-known credential location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jobsearch-agent", "token"), nil
}

func New(path string) *Store {
	return &Store{path: path}
}

// Save writes the token, creating parent directories as needed. The file is
// readable by the owner only since it carries a live credential.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Load returns the stored token, or "" when no credential is present.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the credential. Clearing an absent credential is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
