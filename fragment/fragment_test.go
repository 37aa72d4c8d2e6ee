package fragment

import (
	"errors"
	"testing"

	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/xerr"
)

// every4 is a fake Syllabifier that proposes a split every 4 bytes.
type every4 struct{}

func (every4) Syllabify(word string) []int {
	var offsets []int
	for i := 4; i < len(word); i += 4 {
		offsets = append(offsets, i)
	}
	return offsets
}

func TestMakeSingleShortLine(t *testing.T) {
	f, err := Make("Hello world.", oracle.NewMonospace())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	if got := f.String(0); got != "Hello" {
		t.Errorf("fragment 0 = %q, want %q", got, "Hello")
	}
	if got := f.String(1); got != "world." {
		t.Errorf("fragment 1 = %q, want %q", got, "world.")
	}
	if f.Widths[0] != 5 || f.Widths[1] != 6 {
		t.Errorf("widths = %v, want [5 6]", f.Widths)
	}
	if f.WhitespaceWidths[0] != 1 {
		t.Errorf("whitespace width[0] = %v, want 1", f.WhitespaceWidths[0])
	}
	if f.PenaltyWidths[1] != ForcedBreakPenalty {
		t.Errorf("last penalty = %v, want %v", f.PenaltyWidths[1], ForcedBreakPenalty)
	}
}

func TestMakeForcedBreak(t *testing.T) {
	f, err := Make("A\n\nB", oracle.NewMonospace())
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if f.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (A, nl, nl, B)", f.Len())
	}
	if f.WhitespaceWidths[0] != ForcedBreakSentinelWidth {
		t.Errorf("whitespace width after 'A' = %v, want sentinel", f.WhitespaceWidths[0])
	}
	if f.PenaltyWidths[0] >= 0 {
		t.Errorf("penalty after 'A' = %v, want forced (< 0)", f.PenaltyWidths[0])
	}
	if f.PenaltyWidths[1] >= 0 {
		t.Errorf("penalty of first newline fragment = %v, want forced (< 0)", f.PenaltyWidths[1])
	}
	if f.PenaltyWidths[len(f.PenaltyWidths)-1] != ForcedBreakPenalty {
		t.Errorf("final sentinel = %v, want %v", f.PenaltyWidths[len(f.PenaltyWidths)-1], ForcedBreakPenalty)
	}
}

func TestMakeTabExpansion(t *testing.T) {
	f, err := Make("\tA", oracle.NewMonospace(), WithTabWidth(2))
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (tab, A)", f.Len())
	}
	if f.Widths[0] != 2 {
		t.Errorf("tab width = %v, want 2", f.Widths[0])
	}
	if f.PenaltyWidths[0] != 0 {
		t.Errorf("tab penalty = %v, want 0 (neutral)", f.PenaltyWidths[0])
	}
	if f.WhitespaceWidths[0] != 0 {
		t.Errorf("tab whitespace width = %v, want 0", f.WhitespaceWidths[0])
	}
}

func TestMakeEmptyTextError(t *testing.T) {
	_, err := Make("", oracle.NewMonospace())
	var xe *xerr.Error
	if !errors.As(err, &xe) || xe.Kind != xerr.EmptyText {
		t.Fatalf("Make(\"\") error = %v, want xerr.EmptyText", err)
	}
}

func TestMakeLeadingWhitespaceError(t *testing.T) {
	_, err := Make(" leading", oracle.NewMonospace())
	var xe *xerr.Error
	if !errors.As(err, &xe) || xe.Kind != xerr.BadWhitespace {
		t.Fatalf("Make with leading space error = %v, want xerr.BadWhitespace", err)
	}
}

func TestMakeTrailingWhitespaceError(t *testing.T) {
	_, err := Make("trailing ", oracle.NewMonospace())
	var xe *xerr.Error
	if !errors.As(err, &xe) || xe.Kind != xerr.BadWhitespace {
		t.Fatalf("Make with trailing space error = %v, want xerr.BadWhitespace", err)
	}
}

func TestMakeLeadingTabAllowed(t *testing.T) {
	if _, err := Make("\tA", oracle.NewMonospace()); err != nil {
		t.Fatalf("Make with leading tab: %v", err)
	}
}

func TestMakeHyphenationOpportunity(t *testing.T) {
	// A single run of 4 letters split into two adjacent sub-spans
	// with no gap between them exposes a hyphenation point: the
	// word-internal fragment boundary's whitespace mask is 0.
	splitter := func(text []rune) ([]Span, error) {
		return []Span{{Start: 0, End: 2}, {Start: 2, End: 4}}, nil
	}
	f, err := Make("abcd", oracle.NewMonospace(), WithSplitter(splitter))
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if f.PenaltyWidths[0] <= 0 {
		t.Errorf("penalty at word-internal split = %v, want > 0 (flagged break)", f.PenaltyWidths[0])
	}
}

func TestMakeWithSyllabifierSplitsLongWord(t *testing.T) {
	f, err := Make("supercalifragilistic", oracle.NewMonospace(), WithSyllabifier(every4{}))
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if f.Len() <= 1 {
		t.Fatalf("Len() = %d, want > 1 (syllabifier should have split the word)", f.Len())
	}
	for k := 0; k < f.Len()-1; k++ {
		if f.PenaltyWidths[k] <= 0 {
			t.Errorf("penalty at syllable boundary %d = %v, want > 0 (flagged break)", k, f.PenaltyWidths[k])
		}
	}
}
