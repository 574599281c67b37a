package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

type Config struct {
	Path         string
	MaxOpenConns int
	BusyTimeout  int // milliseconds
}

// New opens (and creates if needed) the SQLite database at cfg.Path.
// Foreign keys are declared in the schema but not enforced: hard deletes
// always succeed and may leave dangling references.
func New(cfg *Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		cfg.Path, cfg.BusyTimeout)

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent request handling.
	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)

	return db, nil
}

// NewInMemory opens a throwaway in-memory database. Used in tests.
func NewInMemory() (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", "file::memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
