// Package export writes a conversation transcript in several file
// formats for sharing outside the app.
package export

import (
	"fmt"
	"io"

	"github.com/citedapp/cited/internal/transcript"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(t *transcript.Transcript, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "txt", "text":
		return &TextExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, yaml, txt)", format)
	}
}

// Formats lists the supported format names in display order.
func Formats() []string {
	return []string{"md", "json", "yaml", "txt"}
}

// document is the serialization shape shared by the structured formats.
type document struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Messages  []message `json:"messages" yaml:"messages"`
}

type message struct {
	Role      string     `json:"role" yaml:"role"`
	Text      string     `json:"text" yaml:"text"`
	Citations []citation `json:"citations,omitempty" yaml:"citations,omitempty"`
	CreatedAt string     `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

type citation struct {
	Index  int    `json:"index" yaml:"index"`
	Source string `json:"source" yaml:"source"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

func toDocument(t *transcript.Transcript) document {
	doc := document{SessionID: t.SessionID}
	for _, m := range t.Messages {
		msg := message{
			Role: string(m.Role),
			Text: m.Text,
		}
		if !m.CreatedAt.IsZero() {
			msg.CreatedAt = m.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		for _, c := range m.Citations {
			msg.Citations = append(msg.Citations, citation{
				Index:  c.DisplayIndex,
				Source: c.SourceID,
				URL:    c.URL,
			})
		}
		doc.Messages = append(doc.Messages, msg)
	}
	return doc
}
