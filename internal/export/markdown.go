package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/mosje-chat/internal"
)

const markdownTimeLayout = "2006-01-02 15:04:05 MST"

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct {
	// Location renders timestamps; nil means UTC
	Location *time.Location
}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session *internal.ChatSession, w io.Writer) error {
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}

	_, _ = fmt.Fprintf(w, "# %s\n\n", session.Title)
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", session.Time().In(loc).Format(markdownTimeLayout))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range session.Messages {
		ts := msg.Time().In(loc).Format(markdownTimeLayout)
		_, _ = fmt.Fprintf(w, "**%s:** (%s)\n\n", senderLabel(msg.Sender), ts)

		if msg.Content != "" {
			_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(msg.Content))
		}

		for _, a := range msg.Attachments {
			_, _ = fmt.Fprintf(w, "- 📎 %s (%s, %s)\n", a.Name, a.Type, a.Kind())
		}
		if len(msg.Attachments) > 0 {
			_, _ = fmt.Fprintln(w)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func senderLabel(s internal.Sender) string {
	switch s {
	case internal.SenderUser:
		return "You"
	case internal.SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
