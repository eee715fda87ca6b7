// Package document models rendered answer text as a tree of typed nodes
// instead of a markup string. Interactive elements (citation anchors) are
// first-class nodes, so the UI never re-parses rendered output to find them.
package document

// Node is any element of the document tree.
type Node interface {
	node()
}

// Block is a top-level element: paragraph, heading, list, code block.
type Block interface {
	Node
	block()
}

// Inline is an element within a block's text flow.
type Inline interface {
	Node
	inline()
}

// Document is an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// Paragraph is a run of inline content. An empty paragraph renders as a
// blank line.
type Paragraph struct {
	Inlines []Inline
}

// Heading is a section title. Level ranges 1 to 4.
type Heading struct {
	Level   int
	Inlines []Inline
}

// List is a sequence of items, ordered or bulleted.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is one entry of a list.
type ListItem struct {
	Inlines []Inline
}

// CodeBlock is a fenced code region. Text is kept verbatim.
type CodeBlock struct {
	Lang string
	Text string
}

// Blockquote is a quoted run of inline content.
type Blockquote struct {
	Inlines []Inline
}

// Rule is a horizontal divider.
type Rule struct{}

func (Paragraph) node()  {}
func (Heading) node()    {}
func (List) node()       {}
func (CodeBlock) node()  {}
func (Blockquote) node() {}
func (Rule) node()       {}

func (Paragraph) block()  {}
func (Heading) block()    {}
func (List) block()       {}
func (CodeBlock) block()  {}
func (Blockquote) block() {}
func (Rule) block()       {}

// Text is a plain run of characters.
type Text struct {
	Text string
}

// Strong is bold text.
type Strong struct {
	Text string
}

// Emph is italic text.
type Emph struct {
	Text string
}

// Code is an inline code span.
type Code struct {
	Text string
}

// Link is a hyperlink with display text.
type Link struct {
	Text string
	URL  string
}

// CitationRef is an interactive citation anchor. Key identifies the
// citation on its message; Index is the number the marker displays.
type CitationRef struct {
	Key   string
	Index int
}

func (Text) node()        {}
func (Strong) node()      {}
func (Emph) node()        {}
func (Code) node()        {}
func (Link) node()        {}
func (CitationRef) node() {}

func (Text) inline()        {}
func (Strong) inline()      {}
func (Emph) inline()        {}
func (Code) inline()        {}
func (Link) inline()        {}
func (CitationRef) inline() {}

// TransformText rewrites every Text node in the document, replacing it
// with the inline sequence the callback returns. Other inline kinds are
// left untouched.
func (d *Document) TransformText(fn func(text string) []Inline) {
	for i, b := range d.Blocks {
		switch blk := b.(type) {
		case Paragraph:
			blk.Inlines = transformInlines(blk.Inlines, fn)
			d.Blocks[i] = blk
		case Heading:
			blk.Inlines = transformInlines(blk.Inlines, fn)
			d.Blocks[i] = blk
		case Blockquote:
			blk.Inlines = transformInlines(blk.Inlines, fn)
			d.Blocks[i] = blk
		case List:
			for j, item := range blk.Items {
				item.Inlines = transformInlines(item.Inlines, fn)
				blk.Items[j] = item
			}
			d.Blocks[i] = blk
		}
	}
}

func transformInlines(inlines []Inline, fn func(string) []Inline) []Inline {
	out := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		if t, ok := in.(Text); ok {
			out = append(out, fn(t.Text)...)
			continue
		}
		out = append(out, in)
	}
	return out
}

// RewriteStrings applies fn to the raw text carried by non-Text string
// nodes (bold, italic, code spans, link labels, code blocks). Used to
// undo placeholder tokens that ended up inside protected spans.
func (d *Document) RewriteStrings(fn func(string) string) {
	rewrite := func(inlines []Inline) {
		for i, in := range inlines {
			switch n := in.(type) {
			case Strong:
				n.Text = fn(n.Text)
				inlines[i] = n
			case Emph:
				n.Text = fn(n.Text)
				inlines[i] = n
			case Code:
				n.Text = fn(n.Text)
				inlines[i] = n
			case Link:
				n.Text = fn(n.Text)
				inlines[i] = n
			}
		}
	}
	for i, b := range d.Blocks {
		switch blk := b.(type) {
		case Paragraph:
			rewrite(blk.Inlines)
		case Heading:
			rewrite(blk.Inlines)
		case Blockquote:
			rewrite(blk.Inlines)
		case List:
			for _, item := range blk.Items {
				rewrite(item.Inlines)
			}
		case CodeBlock:
			blk.Text = fn(blk.Text)
			d.Blocks[i] = blk
		}
	}
}

// PlainText flattens the document back to unstyled text. Citation anchors
// render as bracketed numbers.
func (d *Document) PlainText() string {
	var out []byte
	writeInlines := func(inlines []Inline) {
		for _, in := range inlines {
			switch n := in.(type) {
			case Text:
				out = append(out, n.Text...)
			case Strong:
				out = append(out, n.Text...)
			case Emph:
				out = append(out, n.Text...)
			case Code:
				out = append(out, n.Text...)
			case Link:
				out = append(out, n.Text...)
			case CitationRef:
				out = append(out, '[')
				out = appendInt(out, n.Index)
				out = append(out, ']')
			}
		}
	}
	for i, b := range d.Blocks {
		if i > 0 {
			out = append(out, '\n')
		}
		switch blk := b.(type) {
		case Paragraph:
			writeInlines(blk.Inlines)
		case Heading:
			writeInlines(blk.Inlines)
		case Blockquote:
			writeInlines(blk.Inlines)
		case List:
			for j, item := range blk.Items {
				if j > 0 {
					out = append(out, '\n')
				}
				writeInlines(item.Inlines)
			}
		case CodeBlock:
			out = append(out, blk.Text...)
		case Rule:
			out = append(out, "---"...)
		}
	}
	return string(out)
}

func appendInt(b []byte, n int) []byte {
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	if n >= 10 {
		b = appendInt(b, n/10)
	}
	return append(b, byte('0'+n%10))
}
