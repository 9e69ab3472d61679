package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFilePath is the snapshot file used when nothing else is configured.
const DefaultFilePath = "data_store.json"

// FileBackend keeps the snapshot in a single local file, replaced atomically on write.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a backend for path (DefaultFilePath when empty).
func NewFileBackend(path string) *FileBackend {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileBackend{Path: path}
}

func (f *FileBackend) Read(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

func (f *FileBackend) Write(ctx context.Context, blob []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp_store_*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.Path)
}

func (f *FileBackend) Delete(ctx context.Context) error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileBackend) Describe() string { return "file:" + f.Path }
