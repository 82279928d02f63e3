package export

import (
	"io"
	"time"

	"github.com/iksnae/mosje-chat/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports sessions in YAML format
type YAMLExporter struct{}

type yamlDocument struct {
	internal.ChatSession `yaml:",inline"`
	MessageCount         int    `yaml:"message_count"`
	UpdatedAt            string `yaml:"updated_at"`
}

// Export exports a session to YAML format
func (e *YAMLExporter) Export(session *internal.ChatSession, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(yamlDocument{
		ChatSession:  *session,
		MessageCount: len(session.Messages),
		UpdatedAt:    session.Time().UTC().Format(time.RFC3339),
	})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
