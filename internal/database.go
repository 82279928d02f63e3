package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const preferencesSchema = `
CREATE TABLE IF NOT EXISTS preferences (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenDatabase opens (creating if needed) the local preferences database
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the preferences table
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(preferencesSchema); err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

// KeyValuePair represents a row of the preferences table
type KeyValuePair struct {
	Key   string
	Value string
}

// QueryPreferences lists preferences whose key matches a LIKE pattern
func QueryPreferences(db *sql.DB, pattern string) ([]KeyValuePair, error) {
	rows, err := db.Query("SELECT key, value FROM preferences WHERE key LIKE ? ORDER BY key", pattern)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		if err := rows.Scan(&pair.Key, &pair.Value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pairs, nil
}
