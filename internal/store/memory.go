// ABOUTME: In-memory KV backend.
// ABOUTME: Used by tests and as a throwaway store when no durable backend is wanted.

package store

import "sync"

type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func NewMemory() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStorageUnavailable
	}
	val, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStorageUnavailable
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Available() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.closed
}

func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
