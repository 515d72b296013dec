// ABOUTME: Badger-backed KV store, the default durable backend.
// ABOUTME: Each Set is a single read-write transaction so writes are all-or-nothing.

package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

type BadgerKV struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger database in dir.
func OpenBadger(dir string) (*BadgerKV, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerKV{db: db}, nil
}

func (b *BadgerKV) Get(key string) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (b *BadgerKV) Set(key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *BadgerKV) Available() bool {
	return b.db != nil && !b.db.IsClosed()
}

func (b *BadgerKV) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
