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
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Tracked token table
		CREATE TABLE IF NOT EXISTS token (
			address VARCHAR(44) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			name VARCHAR(100) NOT NULL,
			image_url TEXT,
			price_usd FLOAT NOT NULL DEFAULT 0,
			price_change_24h FLOAT NOT NULL DEFAULT 0,
			market_cap FLOAT NOT NULL DEFAULT 0,
			supply FLOAT NOT NULL DEFAULT 0,
			last_analyzed DATETIME,
			ai_verdict VARCHAR(20),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Trade table
		CREATE TABLE IF NOT EXISTS trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			token_address VARCHAR(44) NOT NULL,
			type VARCHAR(4) NOT NULL,
			amount_sol FLOAT NOT NULL,
			market_cap FLOAT NOT NULL,
			date INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(token_address) REFERENCES token(address) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_trade_token_date ON trade(token_address, date);

		-- System setting table
		CREATE TABLE IF NOT EXISTS system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value TEXT NOT NULL,
			updated_at DATETIME
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"trade",
		"token",
		"system_setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "token", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
