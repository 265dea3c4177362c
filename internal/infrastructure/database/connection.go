package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

type Config struct {
	Driver string
	Path   string
}

// NewConnection opens the datastore handle. The records core runs one
// logical connection used sequentially, so the pool is pinned to a single
// open connection; this also keeps an in-memory database stable across
// statements. Foreign keys are enforced per the restrict-on-delete contract.
func NewConnection(config Config) (*sqlx.DB, error) {
	if config.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s", config.Driver)
	}

	db, err := sqlx.Connect("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func HealthCheck(db *sqlx.DB) error {
	return db.Ping()
}
