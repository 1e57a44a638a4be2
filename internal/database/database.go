package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Open opens the SQLite database with the connection pragmas the position
// projection depends on: foreign keys for referential integrity, WAL so
// dashboard reads do not block replay transactions, and a busy timeout
// instead of immediate SQLITE_BUSY failures. The pragmas ride in the DSN,
// so every connection the pool opens gets them, not just the first.
func Open(dbPath string) (*sql.DB, error) {
	dsn := dbPath +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck performs a simple health check on the database
func HealthCheck(db *sql.DB) error {
	return db.Ping()
}
