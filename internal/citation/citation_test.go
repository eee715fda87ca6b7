package citation

import (
	"strconv"
	"strings"
	"testing"

	"github.com/citedapp/cited/internal/document"
	"github.com/citedapp/cited/internal/transcript"
)

func cites(indices ...int) []transcript.Citation {
	var out []transcript.Citation
	for _, n := range indices {
		out = append(out, transcript.Citation{
			Key:          strconv.Itoa(n),
			DisplayIndex: n,
			SourceID:     "doc.md",
		})
	}
	return out
}

func refsOf(doc *document.Document) []document.CitationRef {
	var refs []document.CitationRef
	for _, a := range document.AnchorIndex(doc) {
		refs = append(refs, document.CitationRef{Key: a.Key, Index: a.Index})
	}
	return refs
}

func TestLink_BasicMarker(t *testing.T) {
	doc := Link("Retrieval finds documents [1].", cites(1))

	refs := refsOf(doc)
	if len(refs) != 1 {
		t.Fatalf("anchors = %d, want 1", len(refs))
	}
	if refs[0].Index != 1 {
		t.Errorf("anchor index = %d, want 1", refs[0].Index)
	}
	if !strings.Contains(doc.PlainText(), "Retrieval finds documents") {
		t.Errorf("text lost: %q", doc.PlainText())
	}
}

func TestLink_UnmatchedMarkerStaysLiteral(t *testing.T) {
	doc := Link("See [1] and [7].", cites(1))

	refs := refsOf(doc)
	if len(refs) != 1 {
		t.Fatalf("anchors = %d, want 1 (only [1] matches)", len(refs))
	}
	if !strings.Contains(doc.PlainText(), "[7]") {
		t.Errorf("unmatched marker should stay literal: %q", doc.PlainText())
	}
}

func TestLink_DuplicateMarkers(t *testing.T) {
	doc := Link("Stated [1] and restated [1].", cites(1))

	refs := refsOf(doc)
	if len(refs) != 2 {
		t.Fatalf("anchors = %d, want 2 (each occurrence is its own anchor)", len(refs))
	}
	if refs[0].Key != refs[1].Key {
		t.Error("both anchors should bind the same citation")
	}
}

func TestLink_NonContiguousNumbering(t *testing.T) {
	doc := Link("First [2], then [10].", cites(2, 10))

	refs := refsOf(doc)
	if len(refs) != 2 {
		t.Fatalf("anchors = %d, want 2", len(refs))
	}
	if refs[0].Index != 2 || refs[1].Index != 10 {
		t.Errorf("anchor indices = %d, %d, want 2, 10", refs[0].Index, refs[1].Index)
	}
}

func TestLink_NoCitations(t *testing.T) {
	doc := Link("Plain [1] text.", nil)

	if len(refsOf(doc)) != 0 {
		t.Error("no citations means no anchors")
	}
	if !strings.Contains(doc.PlainText(), "[1]") {
		t.Errorf("marker should stay literal: %q", doc.PlainText())
	}
}

func TestLink_MarkerInsideCodeSpanStaysLiteral(t *testing.T) {
	doc := Link("use `array[1]` for access [1]", cites(1))

	refs := refsOf(doc)
	if len(refs) != 1 {
		t.Fatalf("anchors = %d, want 1 (code span marker stays literal)", len(refs))
	}

	// The code span should carry the original marker text
	p, ok := doc.Blocks[0].(document.Paragraph)
	if !ok {
		t.Fatalf("block = %T", doc.Blocks[0])
	}
	var code document.Code
	found := false
	for _, in := range p.Inlines {
		if c, ok := in.(document.Code); ok {
			code = c
			found = true
		}
	}
	if !found {
		t.Fatal("no code span")
	}
	if code.Text != "array[1]" {
		t.Errorf("code span = %q, want array[1]", code.Text)
	}
}

func TestLink_MarkersAcrossBlocks(t *testing.T) {
	text := "# Findings [1]\n\n- point one [2]\n- point two [1]"
	doc := Link(text, cites(1, 2))

	refs := refsOf(doc)
	if len(refs) != 3 {
		t.Fatalf("anchors = %d, want 3", len(refs))
	}
	// Reading order: heading first, then list items
	wantIdx := []int{1, 2, 1}
	for i, want := range wantIdx {
		if refs[i].Index != want {
			t.Errorf("anchor %d index = %d, want %d", i, refs[i].Index, want)
		}
	}
}

func TestLink_MarkdownSurvives(t *testing.T) {
	doc := Link("**Bold claim** [1]", cites(1))

	p, ok := doc.Blocks[0].(document.Paragraph)
	if !ok {
		t.Fatalf("block = %T", doc.Blocks[0])
	}
	hasBold := false
	for _, in := range p.Inlines {
		if _, ok := in.(document.Strong); ok {
			hasBold = true
		}
	}
	if !hasBold {
		t.Error("bold formatting should survive linking")
	}
	if len(refsOf(doc)) != 1 {
		t.Error("expected one anchor")
	}
}

func TestLink_EmptyText(t *testing.T) {
	doc := Link("", cites(1))
	if doc == nil {
		t.Fatal("expected non-nil document")
	}
	if len(refsOf(doc)) != 0 {
		t.Error("empty text has no anchors")
	}
}
