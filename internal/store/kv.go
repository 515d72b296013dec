// ABOUTME: Durable key-value store contract and error taxonomy.
// ABOUTME: Backends (badger, sqlite, memory) implement KV; the Adapter sits on top.

package store

import "errors"

var (
	// ErrStorageUnavailable means no durable store is present.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrCorruptData means the stored value is not a serialized note collection.
	ErrCorruptData = errors.New("stored notes are corrupt")
	// ErrWriteFailure means the durable store rejected a write.
	ErrWriteFailure = errors.New("storage write failed")
	// ErrKeyNotFound is returned by KV.Get for absent keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNoteNotFound is returned when an id is not in the stored collection.
	ErrNoteNotFound = errors.New("note not found")
)

// KV is a durable key-value store.
type KV interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set atomically replaces the value for key.
	Set(key string, value []byte) error
	// Available reports whether the store can currently serve reads and writes.
	Available() bool
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open opens the named backend rooted at path.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendBadger, "":
		kv, err := OpenBadger(path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendSQLite:
		kv, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, errors.New("unknown storage backend: " + backend)
	}
}
