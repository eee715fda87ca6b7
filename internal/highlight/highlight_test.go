package highlight

import (
	"strings"
	"testing"
)

func join(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func TestApply_SingleSpan(t *testing.T) {
	text := "the quick brown fox"
	segments := Apply(text, []Span{{Start: 4, End: 9}})

	if len(segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(segments))
	}
	if segments[0].Text != "the " || segments[0].Highlighted {
		t.Errorf("segment 0 = %+v", segments[0])
	}
	if segments[1].Text != "quick" || !segments[1].Highlighted {
		t.Errorf("segment 1 = %+v", segments[1])
	}
	if segments[2].Text != " brown fox" || segments[2].Highlighted {
		t.Errorf("segment 2 = %+v", segments[2])
	}
}

func TestApply_ReconstructsInput(t *testing.T) {
	text := "some longer document content for highlighting"
	spans := []Span{{Start: 5, End: 11}, {Start: 30, End: 33}, {Start: 0, End: 4}}

	segments := Apply(text, spans)
	if got := join(segments); got != text {
		t.Errorf("reconstruction = %q, want %q", got, text)
	}
	if HighlightedCount(segments) != 3 {
		t.Errorf("highlighted = %d, want 3", HighlightedCount(segments))
	}
}

func TestApply_OrderIndependent(t *testing.T) {
	text := "alpha beta gamma delta"
	a := []Span{{Start: 0, End: 5}, {Start: 11, End: 16}}
	b := []Span{{Start: 11, End: 16}, {Start: 0, End: 5}}

	segA := Apply(text, a)
	segB := Apply(text, b)

	if len(segA) != len(segB) {
		t.Fatalf("segment counts differ: %d vs %d", len(segA), len(segB))
	}
	for i := range segA {
		if segA[i] != segB[i] {
			t.Errorf("segment %d differs: %+v vs %+v", i, segA[i], segB[i])
		}
	}
}

func TestApply_OverlapFirstProcessedWins(t *testing.T) {
	text := "0123456789"
	// Descending start order: {6,9} first, then {2,8} overlaps it and loses
	segments := Apply(text, []Span{{Start: 2, End: 8}, {Start: 6, End: 9}})

	if HighlightedCount(segments) != 1 {
		t.Fatalf("highlighted = %d, want 1", HighlightedCount(segments))
	}
	for _, s := range segments {
		if s.Highlighted && s.Text != "678" {
			t.Errorf("highlighted segment = %q, want 678", s.Text)
		}
	}
	if join(segments) != text {
		t.Errorf("reconstruction = %q", join(segments))
	}
}

func TestApply_EqualStartLongerWins(t *testing.T) {
	text := "0123456789"
	segments := Apply(text, []Span{{Start: 2, End: 5}, {Start: 2, End: 8}})

	for _, s := range segments {
		if s.Highlighted && s.Text != "234567" {
			t.Errorf("highlighted segment = %q, want 234567 (longer span wins)", s.Text)
		}
	}
	if HighlightedCount(segments) != 1 {
		t.Errorf("highlighted = %d, want 1", HighlightedCount(segments))
	}
}

func TestApply_ClampOutOfRange(t *testing.T) {
	text := "short"
	segments := Apply(text, []Span{{Start: -3, End: 2}, {Start: 3, End: 99}})

	if join(segments) != text {
		t.Errorf("reconstruction = %q", join(segments))
	}
	if HighlightedCount(segments) != 2 {
		t.Errorf("highlighted = %d, want 2", HighlightedCount(segments))
	}
}

func TestApply_InvalidSpansIgnored(t *testing.T) {
	text := "content"
	segments := Apply(text, []Span{{Start: 5, End: 5}, {Start: 6, End: 2}})

	if len(segments) != 1 || segments[0].Highlighted {
		t.Errorf("segments = %+v, want one plain run", segments)
	}
}

func TestApply_NoSpans(t *testing.T) {
	segments := Apply("text", nil)
	if len(segments) != 1 || segments[0].Text != "text" || segments[0].Highlighted {
		t.Errorf("segments = %+v", segments)
	}
}

func TestApply_EmptyText(t *testing.T) {
	if segments := Apply("", []Span{{Start: 0, End: 3}}); segments != nil {
		t.Errorf("segments = %+v, want nil", segments)
	}
}

func TestApply_FullCoverage(t *testing.T) {
	text := "all of it"
	segments := Apply(text, []Span{{Start: 0, End: len(text)}})
	if len(segments) != 1 || !segments[0].Highlighted {
		t.Errorf("segments = %+v, want one highlighted run", segments)
	}
}

func TestExcerpts(t *testing.T) {
	segments := Excerpts([]string{"first passage", "", "second passage"})
	if len(segments) != 2 {
		t.Fatalf("len = %d, want 2 (empty excerpt skipped)", len(segments))
	}
	for _, seg := range segments {
		if !seg.Highlighted {
			t.Errorf("segment %q should be highlighted", seg.Text)
		}
	}

	if segments := Excerpts(nil); segments != nil {
		t.Errorf("Excerpts(nil) = %+v, want nil", segments)
	}
}

func TestApply_AdjacentSpans(t *testing.T) {
	text := "abcdef"
	// Touching but not overlapping: both survive
	segments := Apply(text, []Span{{Start: 0, End: 3}, {Start: 3, End: 6}})
	if HighlightedCount(segments) != 2 {
		t.Errorf("highlighted = %d, want 2 (adjacent spans do not overlap)", HighlightedCount(segments))
	}
	if join(segments) != text {
		t.Errorf("reconstruction = %q", join(segments))
	}
}
