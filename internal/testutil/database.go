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

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
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
		CREATE TABLE client (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			client_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			strategy VARCHAR(20) NOT NULL,
			target_date DATE,
			target_amount FLOAT,
			target_currency VARCHAR(4),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(client_id) REFERENCES client(id) ON DELETE CASCADE
		);

		CREATE TABLE security (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE cash_movement (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			client_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			kind VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			currency VARCHAR(4) NOT NULL,
			fx_rate FLOAT,
			amount_usd FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(client_id) REFERENCES client(id) ON DELETE CASCADE
		);

		CREATE TABLE trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			client_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			security_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			side VARCHAR(4) NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price FLOAT NOT NULL,
			currency VARCHAR(4) NOT NULL,
			fx_rate FLOAT,
			unit_price_usd FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(client_id) REFERENCES client(id) ON DELETE CASCADE,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			FOREIGN KEY(security_id) REFERENCES security(id)
		);

		CREATE TABLE allocation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			client_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			kind VARCHAR(10) NOT NULL,
			amount_usd FLOAT NOT NULL,
			origin VARCHAR(10) NOT NULL,
			trade_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(client_id) REFERENCES client(id) ON DELETE CASCADE,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			FOREIGN KEY(trade_id) REFERENCES trade(id) ON DELETE CASCADE
		);

		CREATE TABLE fx_rate (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			currency VARCHAR(4) NOT NULL,
			rate FLOAT NOT NULL,
			date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_fx_rate UNIQUE (currency, date)
		);

		CREATE TABLE fx_provider_config (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			base_url VARCHAR(255) NOT NULL,
			api_token VARCHAR(500),
			auto_refresh_enabled BOOLEAN NOT NULL,
			last_refresh_at DATETIME,
			created_at DATETIME DEFAULT (CURRENT_TIMESTAMP),
			updated_at DATETIME DEFAULT (CURRENT_TIMESTAMP)
		);
	`

	_, err := db.Exec(schema)
	return err
}
