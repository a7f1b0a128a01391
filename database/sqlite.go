package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database and returns the connection handle.
// The caller owns the handle: create it once at startup, pass it into the
// repositories, close it at shutdown.
func Open(dataSourceName string) (*sql.DB, error) {
	// busy_timeout makes concurrent writers queue instead of failing with
	// SQLITE_BUSY; WAL lets readers proceed alongside the single writer.
	dsn := dataSourceName + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Initialize opens the database connection and runs all pending migrations.
func Initialize(dataSourceName string) (*sql.DB, error) {
	db, err := Open(dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
