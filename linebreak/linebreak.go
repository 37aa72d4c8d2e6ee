// Package linebreak implements the total-fit line breaker: it runs
// the online concave-minima dynamic program over a Fragments value
// and a target-width schedule to produce a break plan.
package linebreak

import (
	"fmt"
	"math"

	"github.com/digi-deity/textshape/fragment"
	"github.com/digi-deity/textshape/xerr"
)

// Costs holds the five penalty tunables of the Knuth-Plass-style cost
// model.
type Costs struct {
	// OverflowPenalty multiplies the amount by which an overfull line
	// exceeds its target width.
	OverflowPenalty float64
	// NLinePenalty is charged once per line, to prefer fewer lines.
	NLinePenalty float64
	// ShortLastFraction: a solitary last line shorter than
	// target/ShortLastFraction incurs ShortLastPenalty.
	ShortLastFraction float64
	ShortLastPenalty  float64
	// HyphenPenalty is charged for ending a line on a flagged
	// (hyphenated) break.
	HyphenPenalty float64
}

// DefaultCosts returns the breaker's default tunables.
func DefaultCosts() Costs {
	return Costs{
		OverflowPenalty:   1000,
		NLinePenalty:      1000,
		ShortLastFraction: 10,
		ShortLastPenalty:  25,
		HyphenPenalty:     25,
	}
}

// Plan is the Breaker's output: a strictly increasing fragment-index
// sequence f_0 < ... < f_L with f_0 = 0 and f_L = m, so that line k
// covers fragments [Breaks[k], Breaks[k+1]).
type Plan struct {
	Breaks     []int32
	HyphenMask []bool
	ForcedMask []bool
}

// Lines returns the number of lines in the plan.
func (p *Plan) Lines() int {
	return len(p.Breaks) - 1
}

// breakerState closes over the Fragments, the padded width schedule,
// and the cumulative pre-fragment width array, and supplies the
// concave penalty matrix queried by OnlineConcaveMinima.
type breakerState struct {
	f          *fragment.Fragments
	cumulative []float64 // length m+1: cumulative width+whitespace_width
	schedule   []float64
	costs      Costs
	lineNums   []int
	cost       *OnlineConcaveMinima
}

// lineNumber memoizes lines(i) = 1 + lines(argmin(i)): the penalty
// for a line starting at candidate i needs to know how many lines
// precede i to index the width schedule.
func (s *breakerState) lineNumber(i int) int {
	for len(s.lineNums) <= i {
		pos := len(s.lineNums)
		ln := 1 + s.lineNumber(s.cost.Index(pos))
		s.lineNums = append(s.lineNums, ln)
	}
	return s.lineNums[i]
}

func (s *breakerState) targetWidth(lineNumber int) float64 {
	idx := lineNumber
	if idx >= len(s.schedule) {
		idx = len(s.schedule) - 1
	}
	return math.Max(s.schedule[idx], 1.0)
}

// penalty is the concave cost matrix queried by the online minimizer:
// the cost of a line covering fragments [i, j).
func (s *breakerState) penalty(i, j int) float64 {
	m := len(s.f.Widths)
	if j > m {
		return -float64(i)
	}

	lineNumber := s.lineNumber(i)
	target := s.targetWidth(lineNumber)

	linePreWidth := s.cumulative[j-1] - s.cumulative[i]
	lastPenalty := float64(s.f.PenaltyWidths[j-1])
	if lastPenalty < 0 {
		lastPenalty = 0
	}
	lineWidth := linePreWidth + float64(s.f.Widths[j-1]) + lastPenalty

	// A forced-terminated line is exempt from the under-full gap
	// penalty (nothing follows it on the line, so it is never
	// stretched), but it still pays for overflow: a candidate line
	// that runs past an earlier forced break carries the sentinel
	// whitespace width and must stay prohibitively expensive, or the
	// matrix stops being concave and the minimizer merges lines
	// across blank-paragraph gaps.
	forced := s.f.PenaltyWidths[j-1] < 0

	cost := s.cost.Value(i) + s.costs.NLinePenalty

	switch {
	case lineWidth > target:
		cost += (lineWidth - target) * s.costs.OverflowPenalty
	case j < m && !forced:
		gap := target - lineWidth
		cost += gap * gap
	case j == m && i+1 == j && lineWidth < target/s.costs.ShortLastFraction:
		cost += s.costs.ShortLastPenalty
	}

	if s.f.PenaltyWidths[j-1] > 0 {
		cost += s.costs.HyphenPenalty
	}

	return cost
}

// Break runs the total-fit dynamic program over f and widthSchedule,
// returning the chosen break plan. widthSchedule is indexed by line
// number and clamped to its last entry for lines beyond its length.
func Break(f *fragment.Fragments, widthSchedule []float32, costs Costs) (*Plan, error) {
	const op = "linebreak.Break"

	if len(widthSchedule) == 0 {
		return nil, xerr.New(xerr.InvalidSchedule, op, fmt.Errorf("width schedule is empty"))
	}
	schedule := make([]float64, len(widthSchedule))
	for i, w := range widthSchedule {
		if w <= 0 || math.IsNaN(float64(w)) || math.IsInf(float64(w), 0) {
			return nil, xerr.Newf(xerr.InvalidSchedule, op, "target width at index %d is non-positive or non-finite: %v", i, w)
		}
		schedule[i] = float64(w)
	}

	m := f.Len()
	cumulative := make([]float64, m+1)
	for k := 0; k < m; k++ {
		cumulative[k+1] = cumulative[k] + float64(f.Widths[k]) + float64(f.WhitespaceWidths[k])
	}

	s := &breakerState{
		f:          f,
		cumulative: cumulative,
		schedule:   schedule,
		costs:      costs,
		lineNums:   []int{0},
	}
	s.cost = NewOnlineConcaveMinima(s.penalty, 0)

	breaks := make([]int32, 0, 8)
	breaks = append(breaks, int32(m))
	pos := m
	for pos > 0 {
		bp := s.cost.Index(pos)
		breaks = append(breaks, int32(bp))
		pos = bp
	}
	for i, j := 0, len(breaks)-1; i < j; i, j = i+1, j-1 {
		breaks[i], breaks[j] = breaks[j], breaks[i]
	}

	lines := len(breaks) - 1
	hyphenMask := make([]bool, lines)
	forcedMask := make([]bool, lines)
	for k := 0; k < lines; k++ {
		last := breaks[k+1] - 1
		hyphenMask[k] = f.PenaltyWidths[last] > 0
		forcedMask[k] = f.PenaltyWidths[last] < 0
	}

	return &Plan{Breaks: breaks, HyphenMask: hyphenMask, ForcedMask: forcedMask}, nil
}
