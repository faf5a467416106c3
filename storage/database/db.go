package database

import (
	"embed"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/JaMeS-18-18/ForPluto/core"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	migrationsDir = "migrations"
)

var (
	//go:embed migrations/*.sql
	migrationsFS embed.FS

	gooseRunFunc = goose.Run // mockable

	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

func init() {
	// modernc.org/sqlite registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to the SQL database described by conf and waits for it to be ready.
func Open(conf core.StoreConfig) (*sqlx.DB, error) {
	dsn := conf.DSN
	switch conf.Driver {
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres store requires a DSN")
		}
	case DriverSQLite:
		if dsn == "" {
			dsn = filepath.Join(conf.Dir, "roster.db")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedDriver, "%q", conf.Driver)
	}

	db, err := sqlx.Open(conf.Driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Driver == DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func dialect(driver string) string {
	if driver == DriverSQLite {
		return "sqlite3"
	}
	return driver
}

// Migrate applies every pending migration.
func Migrate(db *sqlx.DB) error {
	return RunMigrations(db, "up")
}

// RunMigrations runs a goose command (up, up-by-one, up-to, down, down-to, redo, reset, status, version)
// against the embedded migrations.
func RunMigrations(db *sqlx.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect(db.DriverName())); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := gooseRunFunc(command, db.DB, migrationsDir, args...); err != nil {
		return errors.Wrapf(err, "running migration %q", command)
	}
	return nil
}
