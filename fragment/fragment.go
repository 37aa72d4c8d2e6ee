// Package fragment implements the fragmenter: it turns raw text plus
// a per-character width vector into Fragments, the atomic breakable
// units the line breaker operates on.
package fragment

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/digi-deity/textshape/hyphen"
	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/xerr"
)

// ForcedBreakSentinelWidth is the whitespace-width value forced onto
// the fragment preceding an inserted newline, large enough to
// dominate OverflowPenalty * target for any realistic target width so
// that the breaker always prefers splitting at the newline.
const ForcedBreakSentinelWidth = 100000

// ForcedBreakPenalty is the penalty-width sentinel marking a forced
// break (paragraph end or explicit newline).
const ForcedBreakPenalty = -1

// DefaultTabWidth is the width, in em units, assigned to an expanded
// tab character when no explicit tab width is configured.
const DefaultTabWidth = 4

// Fragments is the fragmenter's output: parallel per-fragment arrays
// plus the per-character data needed by later stages.
type Fragments struct {
	// Text is the input, as runes, so all offsets below are
	// code-point indices rather than byte indices.
	Text []rune

	// CharWidths is the per-character advance width vector, in em
	// units, after tab/newline substitution.
	CharWidths []float32

	// WSMask is the cumulative whitespace indicator: WSMask[i] != 0
	// iff character i is inter-fragment whitespace.
	WSMask []int32

	// Starts and Ends are the per-fragment [Start, End) character
	// spans into Text, in strictly increasing, non-overlapping order.
	Starts []int32
	Ends   []int32

	// Widths is the fragment width, used when not at end of line.
	Widths []float32

	// WhitespaceWidths is the spacing following each fragment, used
	// when not at end of line.
	WhitespaceWidths []float32

	// PenaltyWidths is the end-of-line width contribution: positive
	// for a flagged (hyphenated) break, zero for neutral, negative
	// (ForcedBreakPenalty) for a forced break.
	PenaltyWidths []float32

	HyphenWidth float32
	TabWidth    float32
}

// Len returns the number of fragments.
func (f *Fragments) Len() int {
	return len(f.Starts)
}

// String returns the source text covered by fragment i.
func (f *Fragments) String(i int) string {
	return string(f.Text[f.Starts[i]:f.Ends[i]])
}

type config struct {
	splitter    Splitter
	tabWidth    float32
	syllabifier hyphen.Syllabifier
}

// Option configures Make.
type Option func(*config)

// WithSplitter overrides the default \S+-equivalent splitter.
func WithSplitter(s Splitter) Option {
	return func(c *config) { c.splitter = s }
}

// WithTabWidth overrides the default tab width (in em units).
func WithTabWidth(w float32) Option {
	return func(c *config) { c.tabWidth = w }
}

// WithSyllabifier activates the optional Syllabifier collaborator:
// every visible span produced by the splitter is additionally cut at
// the syllable boundaries s proposes. Interior cuts land between two
// non-whitespace characters, which is exactly what marks a fragment
// as a hyphenation point below. A nil Syllabifier (the default)
// disables this and every word stays a single fragment.
func WithSyllabifier(s hyphen.Syllabifier) Option {
	return func(c *config) { c.syllabifier = s }
}

// Make fragments text: it measures it via measure, splits it into
// visible spans, folds in tab and newline handling, and derives the
// three per-fragment width arrays.
func Make(text string, measure oracle.Oracle, opts ...Option) (*Fragments, error) {
	const op = "fragment.Make"

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, xerr.New(xerr.EmptyText, op, nil)
	}
	if (unicode.IsSpace(runes[0]) && runes[0] != '\t') || unicode.IsSpace(runes[n-1]) {
		return nil, xerr.New(xerr.BadWhitespace, op, fmt.Errorf("text starts with non-tab whitespace or ends with whitespace"))
	}

	cfg := config{splitter: DefaultSplitter, tabWidth: DefaultTabWidth}
	for _, o := range opts {
		o(&cfg)
	}

	widths, err := measure.CharacterWidths(text)
	if err != nil {
		return nil, xerr.New(xerr.LengthMismatch, op, err)
	}
	if len(widths) != n {
		return nil, xerr.Newf(xerr.LengthMismatch, op, "measured %d widths for %d characters", len(widths), n)
	}
	// Own copy: we mutate entries below for tab/newline substitution.
	charWidths := make([]float32, n)
	copy(charWidths, widths)

	visible, err := cfg.splitter(runes)
	if err != nil {
		return nil, xerr.New(xerr.BadSpans, op, err)
	}
	if cfg.syllabifier != nil {
		visible = expandSyllableSpans(visible, runes, cfg.syllabifier)
	}

	hyphenWidths, err := measure.CharacterWidths("-")
	if err != nil || len(hyphenWidths) == 0 {
		return nil, xerr.New(xerr.LengthMismatch, op, fmt.Errorf("measuring hyphen width: %w", err))
	}
	hyphenWidth := hyphenWidths[0]

	type ntEntry struct {
		span  Span
		isTab bool
	}
	var nt []ntEntry
	for i, r := range runes {
		switch r {
		case '\t':
			charWidths[i] = cfg.tabWidth
			nt = append(nt, ntEntry{span: Span{Start: i, End: i + 1}, isTab: true})
		case '\n':
			charWidths[i] = 0
			nt = append(nt, ntEntry{span: Span{Start: i, End: i + 1}, isTab: false})
		}
	}

	spans := make([]Span, 0, len(visible)+len(nt))
	spans = append(spans, visible...)
	for _, e := range nt {
		spans = append(spans, e.span)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	if err := validateSpans(op, spans, n); err != nil {
		return nil, err
	}
	m := len(spans)

	starts := make([]int32, m)
	ends := make([]int32, m)
	for i, s := range spans {
		starts[i] = int32(s.Start)
		ends[i] = int32(s.End)
	}

	cwidths := make([]float32, n+1)
	for i, w := range charWidths {
		cwidths[i+1] = cwidths[i] + w
	}

	fragWidths := make([]float32, m)
	for k := 0; k < m; k++ {
		fragWidths[k] = cwidths[ends[k]] - cwidths[starts[k]]
	}

	wsRaw := make([]int32, n)
	for k := 0; k < m-1; k++ {
		wsRaw[ends[k]]++
		wsRaw[starts[k+1]]--
	}
	wsMask := make([]int32, n)
	var running int32
	for i := 0; i < n; i++ {
		running += wsRaw[i]
		wsMask[i] = running
	}

	whitespaceWidths := make([]float32, m)
	for k := 0; k < m-1; k++ {
		whitespaceWidths[k] = cwidths[starts[k+1]] - cwidths[ends[k]]
	}

	penaltyWidths := make([]float32, m)
	for k := 0; k < m-1; k++ {
		if wsMask[ends[k]] == 0 {
			penaltyWidths[k] = hyphenWidth
		}
	}
	penaltyWidths[m-1] = ForcedBreakPenalty

	// Step 8: fold tab/newline insertions into the per-fragment
	// arrays, identifying each inserted fragment's final index by its
	// (now-fixed) start offset.
	indexOf := make(map[int]int, len(nt))
	for i, s := range spans {
		indexOf[s.Start] = i
	}
	for _, e := range nt {
		idx := indexOf[e.span.Start]
		if e.isTab {
			whitespaceWidths[idx] = 0
			penaltyWidths[idx] = 0
			continue
		}
		if idx > 0 {
			whitespaceWidths[idx-1] = ForcedBreakSentinelWidth
			penaltyWidths[idx-1] = ForcedBreakPenalty
		}
	}

	return &Fragments{
		Text:             runes,
		CharWidths:       charWidths,
		WSMask:           wsMask,
		Starts:           starts,
		Ends:             ends,
		Widths:           fragWidths,
		WhitespaceWidths: whitespaceWidths,
		PenaltyWidths:    penaltyWidths,
		HyphenWidth:      hyphenWidth,
		TabWidth:         cfg.tabWidth,
	}, nil
}

// expandSyllableSpans cuts each span at the syllable boundaries s
// proposes for the word it covers, converting s.Syllabify's byte
// offsets (relative to the span's own text) into rune offsets
// relative to runes, and discarding any offset that would produce an
// empty or out-of-range sub-span.
func expandSyllableSpans(spans []Span, runes []rune, s hyphen.Syllabifier) []Span {
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		word := string(runes[sp.Start:sp.End])
		offsets := s.Syllabify(word)
		if len(offsets) == 0 {
			out = append(out, sp)
			continue
		}

		runeOffsets := make([]int, 0, len(offsets))
		oi, byteIdx, runeIdx := 0, 0, 0
		for _, r := range word {
			for oi < len(offsets) && offsets[oi] == byteIdx {
				runeOffsets = append(runeOffsets, runeIdx)
				oi++
			}
			byteIdx += utf8.RuneLen(r)
			runeIdx++
		}

		prev := sp.Start
		for _, ro := range runeOffsets {
			cut := sp.Start + ro
			if cut <= prev || cut >= sp.End {
				continue
			}
			out = append(out, Span{Start: prev, End: cut})
			prev = cut
		}
		out = append(out, Span{Start: prev, End: sp.End})
	}
	return out
}
