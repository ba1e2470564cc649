package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore implements Store with one JSON file per key under a data
// directory. It is the simplest durable backend and the one tests reach
// for when they want to inspect raw stored bytes.
type FileStore struct {
	dir string
}

// NewFileStore creates a filesystem-backed store rooted at dir,
// creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("kv: create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// keyPath returns the absolute path of the file holding key.
func (fs *FileStore) keyPath(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Get reads the value stored under key.
func (fs *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv: read %q: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the value stored under key.
func (fs *FileStore) Set(key string, value []byte) error {
	if err := os.WriteFile(fs.keyPath(key), value, 0o600); err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; files are closed per operation.
func (fs *FileStore) Close() error { return nil }
