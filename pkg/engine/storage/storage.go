// Package storage provides the small key-value stores the game persists its
// settings blob in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Put when a value would not fit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a string-keyed blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns a store for driver ("memory", "file" or "sqlite") rooted at path.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "memory", "mem":
		return NewMemory(0), nil
	case "file", "fs", "json":
		return NewFS(path)
	case "sqlite", "sqlite3":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// Memory keeps values in a map. A positive quota caps the size of any single
// value, which is how browsers report a full localStorage.
type Memory struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int
}

// NewMemory returns an empty in-memory store. quota <= 0 means unlimited.
func NewMemory(quota int) *Memory {
	return &Memory{data: make(map[string][]byte), quota: quota}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	if m.quota > 0 && len(value) > m.quota {
		return fmt.Errorf("put %s (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
