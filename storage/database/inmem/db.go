package inmemdb

import (
	"context"
	"sync"

	"github.com/JaMeS-18-18/ForPluto/core"
)

// DB is a process-local key/value table. Values are copied in and out.
type DB struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*DB)(nil)

func Open() *DB {
	return &DB{table: make(map[string][]byte)}
}

func (db *DB) Get(_ context.Context, key string) ([]byte, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	val, ok := db.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte{}, val...), nil
}

func (db *DB) Set(_ context.Context, key string, value []byte) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.table[key] = append([]byte{}, value...)
	return nil
}

func (db *DB) Close() error { return nil }
