package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/mosje-chat/internal"
)

// jsonlLine is one message of a JSONL export
type jsonlLine struct {
	Session     string                `json:"session"`
	ID          string                `json:"id"`
	Sender      internal.Sender       `json:"sender"`
	Content     string                `json:"content"`
	Timestamp   string                `json:"timestamp"`
	Attachments []internal.Attachment `json:"attachments,omitempty"`
}

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.ChatSession, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		line := jsonlLine{
			Session:     session.ID,
			ID:          msg.ID,
			Sender:      msg.Sender,
			Content:     msg.Content,
			Timestamp:   msg.Time().UTC().Format(time.RFC3339Nano),
			Attachments: msg.Attachments,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
