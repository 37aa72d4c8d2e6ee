package fragment

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/bidi"

	"github.com/digi-deity/textshape/xerr"
)

// Span is a half-open [Start, End) range over a rune slice.
type Span struct {
	Start int
	End   int
}

// Splitter partitions text into an ordered, non-overlapping cover of
// its "visible" (non-whitespace) runs. The default, DefaultSplitter,
// is equivalent to matching the regular expression \S+.
type Splitter func(text []rune) ([]Span, error)

// DefaultSplitter returns the maximal runs of non-whitespace runes in
// text, in order. A rune counts as whitespace for this purpose when
// golang.org/x/text/unicode/bidi classifies it as WS, S, or B,
// falling back to unicode.IsSpace for runes bidi does not classify as
// whitespace-adjacent.
func DefaultSplitter(text []rune) ([]Span, error) {
	var spans []Span
	start := -1
	for i, r := range text {
		if isSplitWhitespace(r) {
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans, nil
}

func isSplitWhitespace(r rune) bool {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.WS, bidi.S, bidi.B:
		return true
	}
	return unicode.IsSpace(r)
}

// validateSpans checks the span invariants after tab/newline
// singleton spans have been merged in: non-overlapping, strictly
// increasing, starting at 0 and ending at n.
func validateSpans(op string, spans []Span, n int) error {
	if len(spans) == 0 {
		return xerr.New(xerr.BadSpans, op, fmt.Errorf("splitter produced no spans for %d characters", n))
	}
	if spans[0].Start != 0 {
		return xerr.Newf(xerr.BadSpans, op, "first span starts at %d, want 0", spans[0].Start)
	}
	if spans[len(spans)-1].End != n {
		return xerr.Newf(xerr.BadSpans, op, "last span ends at %d, want %d", spans[len(spans)-1].End, n)
	}
	for i, s := range spans {
		if s.End <= s.Start {
			return xerr.Newf(xerr.BadSpans, op, "span %d is empty or inverted: [%d, %d)", i, s.Start, s.End)
		}
		if i > 0 && s.Start < spans[i-1].End {
			return xerr.Newf(xerr.BadSpans, op, "span %d overlaps span %d", i, i-1)
		}
	}
	return nil
}
