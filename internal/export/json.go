package export

import (
	"encoding/json"
	"io"

	"github.com/citedapp/cited/internal/transcript"
)

// JSONExporter exports transcripts in JSON format (pretty-printed)
type JSONExporter struct{}

// Export writes a transcript as indented JSON
func (e *JSONExporter) Export(t *transcript.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(toDocument(t))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
