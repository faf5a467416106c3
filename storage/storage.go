// Package storage opens the key/value backend selected by the configuration.
package storage

import (
	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/storage/database"
	inmemdb "github.com/JaMeS-18-18/ForPluto/storage/database/inmem"
	sqlxstore "github.com/JaMeS-18-18/ForPluto/storage/database/sqlx"
	filestore "github.com/JaMeS-18-18/ForPluto/storage/file"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
)

// Open returns the configured core.KVStore. SQL backends are migrated before use.
func Open(conf core.StoreConfig) (core.KVStore, error) {
	switch conf.Driver {
	case DriverMemory:
		return inmemdb.Open(), nil
	case DriverFile, "":
		return filestore.Open(conf.Dir)
	case database.DriverSQLite, database.DriverPostgres:
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return sqlxstore.NewStore(db), nil
	default:
		return nil, errors.Wrapf(database.ErrUnsupportedDriver, "%q", conf.Driver)
	}
}
