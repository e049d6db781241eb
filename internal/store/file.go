package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each named collection as one JSON file under a base
// directory.
type FileStore struct {
	baseDir string
}

// NewFileStore ensures the base directory exists and returns a handle.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Load reads the blob stored under name.
func (s *FileStore) Load(_ context.Context, name string, dest interface{}) error {
	blob, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return decode(blob, dest)
}

// Save overwrites the blob stored under name.
func (s *FileStore) Save(_ context.Context, name string, value interface{}) error {
	blob, err := encode(value)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(name), blob, 0o644); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Close is a no-op for the file driver.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}
