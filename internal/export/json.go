package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/iksnae/mosje-chat/internal"
)

// JSONExporter exports sessions in JSON format (pretty-printed)
type JSONExporter struct{}

// jsonDocument is a session plus summary fields for readers that skip the messages
type jsonDocument struct {
	internal.ChatSession
	MessageCount int    `json:"messageCount"`
	UpdatedAt    string `json:"updatedAt"`
}

// Export exports a session to JSON format
func (e *JSONExporter) Export(session *internal.ChatSession, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jsonDocument{
		ChatSession:  *session,
		MessageCount: len(session.Messages),
		UpdatedAt:    session.Time().UTC().Format(time.RFC3339),
	})
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
