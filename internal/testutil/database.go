// Package testutil provides shared helpers for tests: an in-memory
// database, fluent builders for domain records and service constructors.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Each in-memory connection is its own database, so the pool must
	// never grow past the connection holding the schema.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Asset table
		CREATE TABLE IF NOT EXISTS asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			segment VARCHAR(100),
			asset_type VARCHAR(20)
		);

		-- Portfolio table
		CREATE TABLE IF NOT EXISTS portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(60) NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		);

		-- Operation type catalogue
		CREATE TABLE IF NOT EXISTS operation_type (
			name VARCHAR(30) NOT NULL PRIMARY KEY,
			description VARCHAR(200)
		);

		-- Operation ledger
		CREATE TABLE IF NOT EXISTS operation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			type VARCHAR(30) NOT NULL,
			asset_id VARCHAR(36) NOT NULL,
			portfolio_id VARCHAR(36) NOT NULL,
			quantity TEXT NOT NULL,
			unit_price TEXT NOT NULL,
			costs TEXT NOT NULL DEFAULT '0',
			total TEXT NOT NULL,
			status VARCHAR(10) NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(type) REFERENCES operation_type(name),
			FOREIGN KEY(asset_id) REFERENCES asset(id),
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id)
		);

		CREATE INDEX IF NOT EXISTS idx_operation_pair_order
			ON operation(portfolio_id, asset_id, date, created_at);

		-- Position projection
		CREATE TABLE IF NOT EXISTS position (
			portfolio_id VARCHAR(36) NOT NULL,
			asset_id VARCHAR(36) NOT NULL,
			custody TEXT NOT NULL DEFAULT '0',
			avg_price TEXT NOT NULL DEFAULT '0',
			PRIMARY KEY (portfolio_id, asset_id),
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id),
			FOREIGN KEY(asset_id) REFERENCES asset(id)
		);

		-- Settings store
		CREATE TABLE IF NOT EXISTS setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			encrypted BOOLEAN NOT NULL DEFAULT FALSE
		);

		INSERT OR IGNORE INTO operation_type (name, description) VALUES
			('buy', 'Asset acquisition'),
			('sell', 'Asset sale'),
			('dividend', 'Dividend received'),
			('interest_on_capital', 'Interest on own capital received'),
			('bonus', 'Bonus shares received'),
			('split', 'Share split'),
			('grouping', 'Share grouping');
	`

	_, err := db.Exec(schema)
	return err
}
