package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS stores each key as <dir>/<key>.json.
type FS struct{ dir string }

// NewFS returns a file store, creating dir if needed.
func NewFS(dir string) (*FS, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FS{dir: dir}, nil
}

func (s *FS) pathFor(key string) string {
	// keep keys flat inside dir
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.TrimSpace(key))
	return filepath.Join(s.dir, safe+".json")
}

func (s *FS) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes through a temp file and rename so a crash never leaves half a blob.
func (s *FS) Put(ctx context.Context, key string, value []byte) error {
	target := s.pathFor(key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func (s *FS) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FS) Close() error { return nil }
