package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/citedapp/cited/internal/transcript"
)

func sampleTranscript() *transcript.Transcript {
	t := transcript.New("sess-1")
	t.Append(transcript.Message{
		Role:      transcript.RoleUser,
		Text:      "what is retrieval?",
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	})
	t.Append(transcript.Message{
		Role: transcript.RoleAI,
		Text: "Retrieval finds documents [1].",
		Citations: []transcript.Citation{
			{Key: "1", DisplayIndex: 1, SourceID: "intro.md", URL: "http://docs/intro"},
		},
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 5, 0, time.UTC),
	})
	return t
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{format: "md", wantExt: "md"},
		{format: "markdown", wantExt: "md"},
		{format: "json", wantExt: "json"},
		{format: "yaml", wantExt: "yaml"},
		{format: "txt", wantExt: "txt"},
		{format: "text", wantExt: "txt"},
		{format: "docx", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if exporter.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", exporter.Extension(), tt.wantExt)
			}
		})
	}
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Conversation sess-1") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "**You:**") || !strings.Contains(out, "**Assistant:**") {
		t.Errorf("missing actors: %q", out)
	}
	if !strings.Contains(out, "[intro.md](http://docs/intro)") {
		t.Errorf("missing source link: %q", out)
	}
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["session_id"] != "sess-1" {
		t.Errorf("session_id = %v", doc["session_id"])
	}
	msgs, ok := doc["messages"].([]interface{})
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v", doc["messages"])
	}
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if doc["session_id"] != "sess-1" {
		t.Errorf("session_id = %v", doc["session_id"])
	}
}

func TestTextExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "You:") || !strings.Contains(out, "Assistant:") {
		t.Errorf("missing actors: %q", out)
	}
	if !strings.Contains(out, "[1] intro.md <http://docs/intro>") {
		t.Errorf("missing source line: %q", out)
	}
}

func TestExport_EmptyTranscript(t *testing.T) {
	empty := transcript.New("sess-empty")
	for _, format := range Formats() {
		exporter, err := NewExporter(format)
		if err != nil {
			t.Fatalf("NewExporter(%q) error = %v", format, err)
		}
		var buf bytes.Buffer
		if err := exporter.Export(empty, &buf); err != nil {
			t.Errorf("%s: Export() of empty transcript error = %v", format, err)
		}
	}
}
