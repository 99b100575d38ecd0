package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each key in its own file under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir. An empty dir means the
// working directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// path rejects keys that would escape Dir.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Dir, key), nil
}

// Load reads the file for key.
func (s *FileStore) Load(key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// Save writes blob to the file for key with owner-only permissions.
func (s *FileStore) Save(key string, blob []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.Dir, err)
		}
	}
	if err := os.WriteFile(p, blob, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}
