package internal

import (
	"database/sql"
	"errors"
)

// Preferences is the key-value persistence used for local settings
type Preferences interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// PreferenceStore keeps preferences in the SQLite preferences table
type PreferenceStore struct {
	db *sql.DB
}

// NewPreferenceStore creates a new PreferenceStore instance
func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Get returns the stored value and whether the key exists
func (p *PreferenceStore) Get(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &PreferenceError{Key: key, Op: "get", Err: err}
	}
	return value, true, nil
}

// Set stores a value, replacing any previous one
func (p *PreferenceStore) Set(key, value string) error {
	_, err := p.db.Exec(
		"INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &PreferenceError{Key: key, Op: "set", Err: err}
	}
	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (p *PreferenceStore) Delete(key string) error {
	if _, err := p.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return &PreferenceError{Key: key, Op: "delete", Err: err}
	}
	return nil
}

// All returns every stored preference ordered by key
func (p *PreferenceStore) All() ([]KeyValuePair, error) {
	return QueryPreferences(p.db, "%")
}
