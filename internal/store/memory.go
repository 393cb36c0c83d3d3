package store

import (
	"context"
	"sort"
	"sync"

	apperrors "metalwatch/internal/errors"
)

// MemoryStore is an in-memory KVStore, used in tests and as a fallback when
// the on-disk store cannot be opened.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, apperrors.ErrStoreClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set writes or replaces the value stored under key.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return apperrors.ErrStoreClosed
	}
	m.data[key] = value
	return nil
}

// Remove deletes a key.
func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return apperrors.ErrStoreClosed
	}
	delete(m.data, key)
	return nil
}

// Keys lists all stored keys in sorted order.
func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, apperrors.ErrStoreClosed
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the store closed; further operations fail.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
