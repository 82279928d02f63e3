package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const preferencesTableSQL = `
CREATE TABLE IF NOT EXISTS preferences (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// CreateInMemoryDB creates an in-memory SQLite database with the preferences table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(preferencesTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create preferences table: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// CreateTestDB creates a preferences database with sample values
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	rows := []struct {
		key   string
		value string
	}{
		{key: "isDarkMode", value: "false"},
		{key: "selectedModel", value: "claude-2"},
	}
	for _, row := range rows {
		InsertPreference(t, db, row.key, row.value)
	}

	return db
}

// InsertPreference inserts a preference row
func InsertPreference(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO preferences (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert preference %s: %v", key, err)
	}
}
