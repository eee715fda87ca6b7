// Package highlight marks byte ranges of a document for emphasis. The
// output is a segment sequence, leaving styling entirely to the caller.
package highlight

import "sort"

// Span is a half-open byte range [Start, End) to highlight.
type Span struct {
	Start int
	End   int
}

// Segment is one run of text, highlighted or not. Concatenating all
// segment texts reproduces the input exactly.
type Segment struct {
	Text        string
	Highlighted bool
}

// Apply splits text into highlighted and plain segments. Spans are
// processed in descending start order so earlier offsets stay valid as
// ranges are claimed; spans sharing a start are ordered longest first.
// When spans overlap, the first-processed span wins and the rest of the
// overlap is dropped. Out-of-range spans are clamped, empty or inverted
// spans ignored. The result does not depend on input order.
func Apply(text string, spans []Span) []Segment {
	if text == "" {
		return nil
	}

	accepted := claim(len(text), spans)
	if len(accepted) == 0 {
		return []Segment{{Text: text}}
	}

	// Build segments left to right from the accepted, disjoint spans.
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })

	var segments []Segment
	pos := 0
	for _, s := range accepted {
		if s.Start > pos {
			segments = append(segments, Segment{Text: text[pos:s.Start]})
		}
		segments = append(segments, Segment{Text: text[s.Start:s.End], Highlighted: true})
		pos = s.End
	}
	if pos < len(text) {
		segments = append(segments, Segment{Text: text[pos:]})
	}
	return segments
}

// claim normalizes spans and resolves overlaps. Processing order is
// start descending, ties broken by longer span, so the rule is
// deterministic whatever order the caller supplies.
func claim(length int, spans []Span) []Span {
	cleaned := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > length {
			s.End = length
		}
		if s.Start >= s.End {
			continue
		}
		cleaned = append(cleaned, s)
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].Start != cleaned[j].Start {
			return cleaned[i].Start > cleaned[j].Start
		}
		return cleaned[i].End > cleaned[j].End
	})

	var accepted []Span
	for _, s := range cleaned {
		if overlapsAny(s, accepted) {
			continue
		}
		accepted = append(accepted, s)
	}
	return accepted
}

func overlapsAny(s Span, accepted []Span) bool {
	for _, a := range accepted {
		if s.Start < a.End && a.Start < s.End {
			return true
		}
	}
	return false
}

// Excerpts builds a segment sequence from bare excerpt texts, used when
// no document offsets are available. Every excerpt is highlighted; empty
// excerpts are skipped.
func Excerpts(texts []string) []Segment {
	var segments []Segment
	for _, t := range texts {
		if t == "" {
			continue
		}
		segments = append(segments, Segment{Text: t, Highlighted: true})
	}
	return segments
}

// HighlightedCount returns how many segments are highlighted.
func HighlightedCount(segments []Segment) int {
	n := 0
	for _, s := range segments {
		if s.Highlighted {
			n++
		}
	}
	return n
}
