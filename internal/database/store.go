// Package database provides the key-value stores that hold the journal.
// Each key holds one opaque blob; the history package decides what goes in it.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Get when nothing is stored under the key
var ErrNotFound = errors.New("key not found")

// Store is a small blob store keyed by string
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Supported storage drivers
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a Store backend
type Options struct {
	Driver string
	Path   string
	Redis  RedisOptions
}

// Open returns the Store for the configured driver
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		return New(opts.Path)
	case DriverRedis:
		return NewRedisStore(opts.Redis)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s (available: sqlite, redis, memory)", opts.Driver)
	}
}

// MemoryStore keeps values in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}
