package export

import (
	"fmt"
	"io"

	"github.com/citedapp/cited/internal/transcript"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export writes a transcript as a Markdown conversation log with a
// source list after each cited answer.
func (e *MarkdownExporter) Export(t *transcript.Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Conversation %s\n\n", t.SessionID)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", t.Len())
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range t.Messages {
		actor := "You"
		if msg.Role == transcript.RoleAI {
			actor = "Assistant"
		}

		timestamp := ""
		if !msg.CreatedAt.IsZero() {
			timestamp = fmt.Sprintf(" (%s)", msg.CreatedAt.Format("2006-01-02 15:04"))
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", actor, timestamp, msg.Text)

		if len(msg.Citations) > 0 {
			_, _ = fmt.Fprintf(w, "Sources:\n\n")
			for _, c := range msg.Citations {
				if c.URL != "" {
					_, _ = fmt.Fprintf(w, "- [%d] [%s](%s)\n", c.DisplayIndex, c.SourceID, c.URL)
				} else {
					_, _ = fmt.Fprintf(w, "- [%d] %s\n", c.DisplayIndex, c.SourceID)
				}
			}
			_, _ = fmt.Fprintf(w, "\n")
		}

		if i < t.Len()-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
