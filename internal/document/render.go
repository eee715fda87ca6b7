package document

import (
	"bytes"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWrapWidth is used when the renderer has no width yet.
const DefaultWrapWidth = 80

// Anchor is one citation marker in render order, left to right and top to
// bottom. The UI cycles through this slice.
type Anchor struct {
	Key   string
	Index int
}

// RenderResult is the styled terminal text plus the anchors it contains.
type RenderResult struct {
	Text    string
	Anchors []Anchor
}

// Renderer turns a document tree into styled terminal output.
type Renderer struct {
	Width        int
	ActiveAnchor int // position in the anchor slice, -1 for none

	h1Style         lipgloss.Style
	h2Style         lipgloss.Style
	h3Style         lipgloss.Style
	h4Style         lipgloss.Style
	boldStyle       lipgloss.Style
	italicStyle     lipgloss.Style
	codeStyle       lipgloss.Style
	linkStyle       lipgloss.Style
	quoteStyle      lipgloss.Style
	bulletStyle     lipgloss.Style
	ruleStyle       lipgloss.Style
	anchorStyle     lipgloss.Style
	activeAnchorSty lipgloss.Style
}

// NewRenderer creates a renderer for the given width.
func NewRenderer(width int) *Renderer {
	return &Renderer{
		Width:           width,
		ActiveAnchor:    -1,
		h1Style:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Underline(true),
		h2Style:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		h3Style:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("105")),
		h4Style:         lipgloss.NewStyle().Bold(true),
		boldStyle:       lipgloss.NewStyle().Bold(true),
		italicStyle:     lipgloss.NewStyle().Italic(true),
		codeStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Background(lipgloss.Color("236")),
		linkStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		quoteStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		bulletStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		ruleStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		anchorStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		activeAnchorSty: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Bold(true),
	}
}

// Render produces styled text and the anchor index for the document.
func (r *Renderer) Render(doc *Document) RenderResult {
	width := r.Width
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result RenderResult
	var sb strings.Builder

	for i, b := range doc.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch blk := b.(type) {
		case Paragraph:
			sb.WriteString(r.wrap(r.renderInlines(blk.Inlines, &result.Anchors), width))
		case Heading:
			sb.WriteString(r.headingStyle(blk.Level).Render(r.renderInlines(blk.Inlines, &result.Anchors)))
		case Blockquote:
			sb.WriteString(r.quoteStyle.Render("▎ " + r.wrap(r.renderInlines(blk.Inlines, &result.Anchors), width-4)))
		case Rule:
			sb.WriteString(r.ruleStyle.Render(strings.Repeat("─", min(width, 32))))
		case List:
			for j, item := range blk.Items {
				if j > 0 {
					sb.WriteString("\n")
				}
				marker := "•"
				if blk.Ordered {
					marker = fmt.Sprintf("%d.", j+1)
				}
				content := r.wrap(r.renderInlines(item.Inlines, &result.Anchors), width-6)
				sb.WriteString("  " + r.bulletStyle.Render(marker) + " " + indentContinuation(content))
			}
		case CodeBlock:
			sb.WriteString(highlightCode(blk.Text, blk.Lang))
		}
	}

	result.Text = strings.TrimRight(sb.String(), "\n")
	return result
}

// AnchorIndex collects the document's citation anchors without rendering.
func AnchorIndex(doc *Document) []Anchor {
	var anchors []Anchor
	collect := func(inlines []Inline) {
		for _, in := range inlines {
			if ref, ok := in.(CitationRef); ok {
				anchors = append(anchors, Anchor{Key: ref.Key, Index: ref.Index})
			}
		}
	}
	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case Paragraph:
			collect(blk.Inlines)
		case Heading:
			collect(blk.Inlines)
		case Blockquote:
			collect(blk.Inlines)
		case List:
			for _, item := range blk.Items {
				collect(item.Inlines)
			}
		}
	}
	return anchors
}

func (r *Renderer) renderInlines(inlines []Inline, anchors *[]Anchor) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch n := in.(type) {
		case Text:
			sb.WriteString(n.Text)
		case Strong:
			sb.WriteString(r.boldStyle.Render(n.Text))
		case Emph:
			sb.WriteString(r.italicStyle.Render(n.Text))
		case Code:
			sb.WriteString(r.codeStyle.Render(n.Text))
		case Link:
			sb.WriteString(r.linkStyle.Render(n.Text) + " (" + r.linkStyle.Render(n.URL) + ")")
		case CitationRef:
			pos := len(*anchors)
			*anchors = append(*anchors, Anchor{Key: n.Key, Index: n.Index})
			style := r.anchorStyle
			if pos == r.ActiveAnchor {
				style = r.activeAnchorSty
			}
			sb.WriteString(style.Render(FormatMarker(n.Index)))
		}
	}
	return sb.String()
}

func (r *Renderer) headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return r.h1Style
	case 2:
		return r.h2Style
	case 3:
		return r.h3Style
	default:
		return r.h4Style
	}
}

func (r *Renderer) wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// indentContinuation indents wrapped list item lines past the marker.
func indentContinuation(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= 1 {
		return content
	}
	for i := 1; i < len(lines); i++ {
		lines[i] = "    " + lines[i]
	}
	return strings.Join(lines, "\n")
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
