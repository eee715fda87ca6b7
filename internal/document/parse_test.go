package document

import (
	"strings"
	"testing"
)

func TestParse_Paragraph(t *testing.T) {
	doc := Parse("just a plain line")
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}
	p, ok := doc.Blocks[0].(Paragraph)
	if !ok {
		t.Fatalf("block type = %T, want Paragraph", doc.Blocks[0])
	}
	if len(p.Inlines) != 1 {
		t.Fatalf("inlines = %d, want 1", len(p.Inlines))
	}
	if txt, ok := p.Inlines[0].(Text); !ok || txt.Text != "just a plain line" {
		t.Errorf("inline = %+v", p.Inlines[0])
	}
}

func TestParse_Headings(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
	}{
		{"# Title", 1, "Title"},
		{"## Section", 2, "Section"},
		{"### Sub", 3, "Sub"},
		{"#### Deep", 4, "Deep"},
	}
	for _, tt := range tests {
		doc := Parse(tt.line)
		h, ok := doc.Blocks[0].(Heading)
		if !ok {
			t.Fatalf("%q: block type = %T, want Heading", tt.line, doc.Blocks[0])
		}
		if h.Level != tt.level {
			t.Errorf("%q: level = %d, want %d", tt.line, h.Level, tt.level)
		}
		if txt := h.Inlines[0].(Text); txt.Text != tt.text {
			t.Errorf("%q: text = %q, want %q", tt.line, txt.Text, tt.text)
		}
	}
}

func TestParse_Rule(t *testing.T) {
	for _, line := range []string{"---", "***", "___"} {
		doc := Parse(line)
		if _, ok := doc.Blocks[0].(Rule); !ok {
			t.Errorf("%q: block type = %T, want Rule", line, doc.Blocks[0])
		}
	}
}

func TestParse_Blockquote(t *testing.T) {
	doc := Parse("> quoted wisdom")
	q, ok := doc.Blocks[0].(Blockquote)
	if !ok {
		t.Fatalf("block type = %T, want Blockquote", doc.Blocks[0])
	}
	if txt := q.Inlines[0].(Text); txt.Text != "quoted wisdom" {
		t.Errorf("text = %q", txt.Text)
	}
}

func TestParse_BulletList(t *testing.T) {
	doc := Parse("- one\n- two\n* three")
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want one merged list", len(doc.Blocks))
	}
	list, ok := doc.Blocks[0].(List)
	if !ok {
		t.Fatalf("block type = %T, want List", doc.Blocks[0])
	}
	if list.Ordered {
		t.Error("list should be unordered")
	}
	if len(list.Items) != 3 {
		t.Errorf("items = %d, want 3", len(list.Items))
	}
}

func TestParse_OrderedList(t *testing.T) {
	doc := Parse("1. first\n2. second")
	list, ok := doc.Blocks[0].(List)
	if !ok {
		t.Fatalf("block type = %T, want List", doc.Blocks[0])
	}
	if !list.Ordered {
		t.Error("list should be ordered")
	}
	if len(list.Items) != 2 {
		t.Errorf("items = %d, want 2", len(list.Items))
	}
	if txt := list.Items[1].Inlines[0].(Text); txt.Text != "second" {
		t.Errorf("item text = %q", txt.Text)
	}
}

func TestParse_MixedListsSplit(t *testing.T) {
	doc := Parse("- bullet\n1. numbered")
	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 separate lists", len(doc.Blocks))
	}
	if doc.Blocks[0].(List).Ordered {
		t.Error("first list should be unordered")
	}
	if !doc.Blocks[1].(List).Ordered {
		t.Error("second list should be ordered")
	}
}

func TestParse_CodeBlock(t *testing.T) {
	doc := Parse("before\n```go\nfunc main() {}\n```\nafter")
	if len(doc.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(doc.Blocks))
	}
	cb, ok := doc.Blocks[1].(CodeBlock)
	if !ok {
		t.Fatalf("block type = %T, want CodeBlock", doc.Blocks[1])
	}
	if cb.Lang != "go" {
		t.Errorf("lang = %q, want go", cb.Lang)
	}
	if cb.Text != "func main() {}" {
		t.Errorf("code = %q", cb.Text)
	}
}

func TestParse_UnterminatedCodeBlock(t *testing.T) {
	doc := Parse("```python\nprint('hi')")
	cb, ok := doc.Blocks[0].(CodeBlock)
	if !ok {
		t.Fatalf("block type = %T, want CodeBlock", doc.Blocks[0])
	}
	if cb.Text != "print('hi')" {
		t.Errorf("code = %q", cb.Text)
	}
}

func TestParse_InlineFormatting(t *testing.T) {
	doc := Parse("has **bold** and `code` and [label](http://x) here")
	p := doc.Blocks[0].(Paragraph)

	var kinds []string
	for _, in := range p.Inlines {
		switch in.(type) {
		case Text:
			kinds = append(kinds, "text")
		case Strong:
			kinds = append(kinds, "strong")
		case Code:
			kinds = append(kinds, "code")
		case Link:
			kinds = append(kinds, "link")
		}
	}
	want := []string{"text", "strong", "text", "code", "text", "link", "text"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("inline kinds = %v, want %v", kinds, want)
	}
}

func TestParse_NoFormattingInsideCodeSpan(t *testing.T) {
	doc := Parse("run `cmd **not bold**` now")
	p := doc.Blocks[0].(Paragraph)

	for _, in := range p.Inlines {
		if c, ok := in.(Code); ok {
			if c.Text != "cmd **not bold**" {
				t.Errorf("code span = %q, asterisks should stay literal", c.Text)
			}
			return
		}
	}
	t.Fatal("no code span found")
}

func TestParse_ItalicWordBoundary(t *testing.T) {
	doc := Parse("see _this_ but not foo_bar_baz")
	p := doc.Blocks[0].(Paragraph)

	var emphs int
	for _, in := range p.Inlines {
		if e, ok := in.(Emph); ok {
			emphs++
			if e.Text != "this" {
				t.Errorf("emph text = %q, want this", e.Text)
			}
		}
	}
	if emphs != 1 {
		t.Errorf("emph count = %d, want 1 (identifiers stay literal)", emphs)
	}
}

func TestParse_UnbalancedMarkupStaysLiteral(t *testing.T) {
	doc := Parse("dangling **bold and `code")
	p := doc.Blocks[0].(Paragraph)
	if len(p.Inlines) != 1 {
		t.Fatalf("inlines = %d, want 1 literal text run", len(p.Inlines))
	}
	if txt := p.Inlines[0].(Text); txt.Text != "dangling **bold and `code" {
		t.Errorf("text = %q", txt.Text)
	}
}

func TestParse_BlankLineIsEmptyParagraph(t *testing.T) {
	doc := Parse("one\n\ntwo")
	if len(doc.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(doc.Blocks))
	}
	mid, ok := doc.Blocks[1].(Paragraph)
	if !ok || len(mid.Inlines) != 0 {
		t.Errorf("middle block = %+v, want empty paragraph", doc.Blocks[1])
	}
}

func TestTransformText(t *testing.T) {
	doc := Parse("alpha beta")
	doc.TransformText(func(text string) []Inline {
		return []Inline{
			Text{Text: text},
			CitationRef{Key: "1", Index: 1},
		}
	})

	p := doc.Blocks[0].(Paragraph)
	if len(p.Inlines) != 2 {
		t.Fatalf("inlines = %d, want 2", len(p.Inlines))
	}
	ref, ok := p.Inlines[1].(CitationRef)
	if !ok || ref.Key != "1" {
		t.Errorf("inline = %+v, want CitationRef key 1", p.Inlines[1])
	}
}

func TestPlainText_RoundTrip(t *testing.T) {
	doc := Parse("line with **bold**")
	doc.TransformText(func(text string) []Inline {
		return []Inline{Text{Text: text}}
	})
	got := doc.PlainText()
	if !strings.Contains(got, "line with") || !strings.Contains(got, "bold") {
		t.Errorf("PlainText() = %q", got)
	}
}
