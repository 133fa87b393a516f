package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envToken overrides the stored token when set. It is read-only: Write
// and Clear never touch the environment.
const envToken = "TRENDLENS_TOKEN"

// Store persists the single opaque session token across restarts.
// Read returns "" with a nil error when no token is stored.
type Store interface {
	Read() (string, error)
	Write(token string) error
	Clear() error
}

// FileStore keeps the token in a mode-0600 file under the user's home
// directory, the only state this client persists.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by ~/.trendlens/token.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return &FileStore{path: filepath.Join(home, ".trendlens", "token")}, nil
}

// NewFileStoreAt returns a store backed by an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the token using precedence: env var > file > empty.
func (s *FileStore) Read() (string, error) {
	if tok := os.Getenv(envToken); tok != "" {
		return tok, nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Write persists the token, creating the directory if needed.
func (s *FileStore) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Clear removes the stored token. A missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
