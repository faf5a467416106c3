package core

import (
	"context"

	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is a durable key/value storage backend.
// Set always overwrites the whole value; there are no partial writes.
type KVStore interface {
	// Get returns ErrKeyNotFound when nothing was stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
