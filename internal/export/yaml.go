package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/citedapp/cited/internal/transcript"
)

// YAMLExporter exports transcripts in YAML format
type YAMLExporter struct{}

// Export writes a transcript as YAML
func (e *YAMLExporter) Export(t *transcript.Transcript, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(toDocument(t))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
