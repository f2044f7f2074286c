package db

import (
	"database/sql"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// SetupTestDB creates a test database connection and applies the schema.
func SetupTestDB(t *testing.T) *sql.DB {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		"localhost",
		"5433",
		"trader",
		"trading123",
		"trading_db",
	)

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = database.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err = EnsureSchema(database); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return database
}

// CleanupTestDB deletes all test data. Order matters because of the
// foreign keys.
func CleanupTestDB(t *testing.T, database *sql.DB) {
	tables := []string{"history", "holdings", "users"}
	for _, table := range tables {
		_, err := database.Exec(fmt.Sprintf("DELETE FROM %s WHERE id > 0", table))
		if err != nil {
			log.Printf("Warning: Failed to cleanup table %s: %v", table, err)
		}
	}
}

// CreateTestUser creates a test user and returns its ID.
func CreateTestUser(t *testing.T, database *sql.DB, username string, balance decimal.Decimal) int {
	var userID int

	// Make username unique by adding timestamp
	uniqueUsername := fmt.Sprintf("%s_%d", username, time.Now().UnixNano())

	err := database.QueryRow(
		"INSERT INTO users (username, password_hash, cash_balance) VALUES ($1, $2, $3) RETURNING id",
		uniqueUsername, "test-hash", balance,
	).Scan(&userID)

	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}
