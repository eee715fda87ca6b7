package document

import (
	"regexp"
	"strconv"
	"strings"
)

// Compiled regex patterns for markdown parsing
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	underscoreItalic  = regexp.MustCompile(`(^|[^a-zA-Z0-9_])_([^_]+)_([^a-zA-Z0-9_]|$)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	numberedItem      = regexp.MustCompile(`^(\d{1,2})\. `)
)

// Parse converts markdown-flavored text to a document tree. It is
// line-based and never fails: anything it does not recognize becomes a
// plain text paragraph, and unbalanced markup stays literal.
func Parse(text string) *Document {
	doc := &Document{}
	lines := strings.Split(text, "\n")

	inCodeBlock := false
	codeLang := ""
	var codeLines []string
	var list *List

	flushList := func() {
		if list != nil {
			doc.Blocks = append(doc.Blocks, *list)
			list = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				flushList()
				inCodeBlock = true
				codeLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeLines = nil
			} else {
				inCodeBlock = false
				doc.Blocks = append(doc.Blocks, CodeBlock{
					Lang: codeLang,
					Text: strings.Join(codeLines, "\n"),
				})
				codeLang = ""
			}
			continue
		}
		if inCodeBlock {
			codeLines = append(codeLines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flushList()
			doc.Blocks = append(doc.Blocks, Paragraph{})
			continue
		}

		if level, rest, ok := headingLine(trimmed); ok {
			flushList()
			doc.Blocks = append(doc.Blocks, Heading{Level: level, Inlines: parseInlines(rest)})
			continue
		}

		if trimmed == "---" || trimmed == "***" || trimmed == "___" {
			flushList()
			doc.Blocks = append(doc.Blocks, Rule{})
			continue
		}

		if strings.HasPrefix(trimmed, "> ") {
			flushList()
			doc.Blocks = append(doc.Blocks, Blockquote{Inlines: parseInlines(strings.TrimPrefix(trimmed, "> "))})
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			if list == nil || list.Ordered {
				flushList()
				list = &List{Ordered: false}
			}
			list.Items = append(list.Items, ListItem{Inlines: parseInlines(trimmed[2:])})
			continue
		}

		if m := numberedItem.FindStringSubmatch(trimmed); m != nil {
			if list == nil || !list.Ordered {
				flushList()
				list = &List{Ordered: true}
			}
			list.Items = append(list.Items, ListItem{Inlines: parseInlines(trimmed[len(m[0]):])})
			continue
		}

		flushList()
		doc.Blocks = append(doc.Blocks, Paragraph{Inlines: parseInlines(line)})
	}

	flushList()

	// Unterminated fence: keep what we have rather than dropping it
	if inCodeBlock {
		doc.Blocks = append(doc.Blocks, CodeBlock{Lang: codeLang, Text: strings.Join(codeLines, "\n")})
	}

	return doc
}

func headingLine(trimmed string) (int, string, bool) {
	for level := 4; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(trimmed, prefix) {
			return level, strings.TrimPrefix(trimmed, prefix), true
		}
	}
	return 0, "", false
}

// parseInlines splits a line into inline nodes. Code spans are extracted
// first so no formatting applies inside them, then links, bold, and
// italic, each pass narrowing the remaining Text runs.
func parseInlines(s string) []Inline {
	if s == "" {
		return nil
	}
	inlines := []Inline{Text{Text: s}}
	inlines = splitTextNodes(inlines, parseCodeSpans)
	inlines = splitTextNodes(inlines, parseLinks)
	inlines = splitTextNodes(inlines, parseBold)
	inlines = splitTextNodes(inlines, parseItalic)
	return inlines
}

// splitTextNodes applies one inline pass to every Text node.
func splitTextNodes(inlines []Inline, pass func(string) []Inline) []Inline {
	out := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		if t, ok := in.(Text); ok {
			out = append(out, pass(t.Text)...)
			continue
		}
		out = append(out, in)
	}
	return out
}

func parseCodeSpans(s string) []Inline {
	return splitByPattern(s, inlineCodePattern, func(m []string) Inline {
		return Code{Text: m[1]}
	})
}

func parseLinks(s string) []Inline {
	return splitByPattern(s, linkPattern, func(m []string) Inline {
		return Link{Text: m[1], URL: m[2]}
	})
}

func parseBold(s string) []Inline {
	return splitByPattern(s, boldPattern, func(m []string) Inline {
		return Strong{Text: m[1]}
	})
}

// parseItalic handles _text_ at word boundaries only, so identifiers like
// foo_bar_baz stay literal. The boundary characters stay as text.
func parseItalic(s string) []Inline {
	var out []Inline
	rest := s
	for {
		loc := underscoreItalic.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		prefixEnd := loc[3] // end of leading boundary group
		if prefixEnd > 0 {
			out = append(out, Text{Text: rest[:prefixEnd]})
		}
		out = append(out, Emph{Text: rest[loc[4]:loc[5]]})
		rest = rest[loc[6]:] // trailing boundary stays for the next scan
	}
	if rest != "" {
		out = append(out, Text{Text: rest})
	}
	return out
}

func splitByPattern(s string, pattern *regexp.Regexp, build func([]string) Inline) []Inline {
	matches := pattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []Inline{Text{Text: s}}
	}

	var out []Inline
	prev := 0
	for _, loc := range matches {
		if loc[0] > prev {
			out = append(out, Text{Text: s[prev:loc[0]]})
		}
		groups := make([]string, 0, len(loc)/2)
		for g := 0; g < len(loc); g += 2 {
			if loc[g] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, s[loc[g]:loc[g+1]])
		}
		out = append(out, build(groups))
		prev = loc[1]
	}
	if prev < len(s) {
		out = append(out, Text{Text: s[prev:]})
	}
	return out
}

// FormatMarker renders a citation number as its literal in-text form.
func FormatMarker(index int) string {
	return "[" + strconv.Itoa(index) + "]"
}
