package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/citedapp/cited/internal/transcript"
)

// TextExporter exports transcripts as plain text
type TextExporter struct{}

// Export writes a transcript as a plain text conversation log
func (e *TextExporter) Export(t *transcript.Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "Conversation %s\n", t.SessionID)
	_, _ = fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 40))

	for _, msg := range t.Messages {
		actor := "You"
		if msg.Role == transcript.RoleAI {
			actor = "Assistant"
		}
		_, _ = fmt.Fprintf(w, "%s:\n%s\n", actor, msg.Text)

		if len(msg.Citations) > 0 {
			_, _ = fmt.Fprintf(w, "\nSources:\n")
			for _, c := range msg.Citations {
				if c.URL != "" {
					_, _ = fmt.Fprintf(w, "  [%d] %s <%s>\n", c.DisplayIndex, c.SourceID, c.URL)
				} else {
					_, _ = fmt.Fprintf(w, "  [%d] %s\n", c.DisplayIndex, c.SourceID)
				}
			}
		}
		_, _ = fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("-", 40))
	}

	return nil
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
