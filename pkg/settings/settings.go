// Package settings provides key-value stores for persisted user settings
// such as the Parse session token.
package settings

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("settings: key not found")

// Store looks up a string setting. Missing keys yield ErrNotFound.
type Store interface {
	String(ctx context.Context, key string) (string, error)
}

// Writer is a Store that can also change settings. Deleting a missing key
// is not an error.
type Writer interface {
	Store
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Store
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a Memory store seeded with values
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Memory) String(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
