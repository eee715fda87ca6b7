// Package citation binds in-text markers like [1] to their source
// citations, producing a document tree whose anchors are typed nodes.
package citation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/citedapp/cited/internal/document"
	"github.com/citedapp/cited/internal/logger"
	"github.com/citedapp/cited/internal/transcript"
)

// markerPattern matches bracketed numeric markers in answer text.
var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// placeholderPattern matches the NUL-delimited tokens that protect
// recognized markers through markdown parsing.
var placeholderPattern = regexp.MustCompile("\x00CITE(\\d+)\x00")

// Link parses answer text and replaces recognized citation markers with
// anchor nodes. A marker is recognized when its number matches a
// citation's display index; anything else stays literal, including
// markers inside code spans. Duplicate markers each get their own anchor.
// Link never fails: if anything goes wrong it falls back to a plain-text
// document of the original input.
func Link(raw string, citations []transcript.Citation) (doc *document.Document) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Citation linking failed, falling back to plain text: %v", r)
			doc = &document.Document{Blocks: []document.Block{
				document.Paragraph{Inlines: []document.Inline{document.Text{Text: raw}}},
			}}
		}
	}()

	if len(citations) == 0 {
		return document.Parse(raw)
	}

	byIndex := make(map[int]transcript.Citation, len(citations))
	for _, c := range citations {
		byIndex[c.DisplayIndex] = c
	}

	// Pass 1: swap each recognized marker for an inert token that the
	// markdown parser treats as plain text.
	type slot struct {
		key     string
		index   int
		literal string
	}
	var slots []slot

	protected := markerPattern.ReplaceAllStringFunc(raw, func(match string) string {
		n, err := strconv.Atoi(markerPattern.FindStringSubmatch(match)[1])
		if err != nil {
			return match
		}
		c, ok := byIndex[n]
		if !ok {
			return match
		}
		slots = append(slots, slot{key: c.Key, index: n, literal: match})
		return fmt.Sprintf("\x00CITE%d\x00", len(slots)-1)
	})

	doc = document.Parse(protected)

	// Pass 2: tokens in plain text become anchor nodes.
	doc.TransformText(func(text string) []document.Inline {
		matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			return []document.Inline{document.Text{Text: text}}
		}
		var out []document.Inline
		prev := 0
		for _, loc := range matches {
			if loc[0] > prev {
				out = append(out, document.Text{Text: text[prev:loc[0]]})
			}
			slotIdx, err := strconv.Atoi(text[loc[2]:loc[3]])
			if err != nil || slotIdx >= len(slots) {
				out = append(out, document.Text{Text: text[loc[0]:loc[1]]})
				prev = loc[1]
				continue
			}
			s := slots[slotIdx]
			out = append(out, document.CitationRef{Key: s.key, Index: s.index})
			prev = loc[1]
		}
		if prev < len(text) {
			out = append(out, document.Text{Text: text[prev:]})
		}
		return out
	})

	// Tokens that landed inside protected spans (code, bold, links) are
	// restored to their literal marker text.
	doc.RewriteStrings(func(text string) string {
		return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
			slotIdx, err := strconv.Atoi(placeholderPattern.FindStringSubmatch(match)[1])
			if err != nil || slotIdx >= len(slots) {
				return match
			}
			return slots[slotIdx].literal
		})
	})

	return doc
}
