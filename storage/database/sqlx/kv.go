package sqlxstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
)

const (
	getQuery = `SELECT payload FROM kv_store WHERE store_key = ?`
	setQuery = `INSERT INTO kv_store (store_key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (store_key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`
)

// Store keeps values in the kv_store table (see storage/database/migrations).
type Store struct {
	db *sqlx.DB
}

var _ core.KVStore = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	if err := s.db.GetContext(ctx, &payload, s.db.Rebind(getQuery), key); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "selecting key %q", key)
	}
	return []byte(payload), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(setQuery), key, string(value)); err != nil {
		return errors.Wrapf(err, "upserting key %q", key)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
