package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateSQLiteFixture creates a preferences database file holding the given values
func CreateSQLiteFixture(t *testing.T, dbPath string, values map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(preferencesTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	for key, value := range values {
		if _, err := db.Exec("INSERT INTO preferences (key, value) VALUES (?, ?)", key, value); err != nil {
			t.Fatalf("Failed to insert %s: %v", key, err)
		}
	}
}

// HistoryFixture is a /chat/history body with two exchanges
const HistoryFixture = `{
  "chats": [
    {"message_id": "hist-1", "question": "What is Go?", "answer": "A programming language.", "timestamp": "2025-03-01T10:00:00"},
    {"message_id": "hist-2", "question": "Who made it?", "answer": "Google.", "timestamp": "2025-03-01T10:05:00Z"}
  ]
}`

// WriteAttachment writes a small file into dir and returns its path
func WriteAttachment(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write attachment %s: %v", name, err)
	}
	return path
}

// PNGHeader is enough of a PNG file for MIME sniffing
var PNGHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
