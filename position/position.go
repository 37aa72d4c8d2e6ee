// Package position implements the positioner: it turns a break plan
// over a Fragments value into absolute glyph positions, handling
// hyphen/newline injection, vertical line spacing, and justification.
package position

import (
	"github.com/digi-deity/textshape/fragment"
	"github.com/digi-deity/textshape/linebreak"
	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/xerr"
)

const (
	newlineSentinel = 0
	hyphenSentinel  = 1
)

// Config holds the Positioner's tunables: whether to justify, the
// line-spacing multiplier applied to the font's natural line gap, and
// the same padded target-width schedule the Breaker used (needed
// again here to compute each line's stretch factor).
type Config struct {
	Oracle        oracle.Oracle
	Justify       bool
	LineSpacing   float32
	WidthSchedule []float32
	FontSize      float32
}

func (c Config) targetWidth(line int) float32 {
	idx := line
	if idx >= len(c.WidthSchedule) {
		idx = len(c.WidthSchedule) - 1
	}
	if idx < 0 {
		return 0
	}
	w := c.WidthSchedule[idx]
	if w < 1 {
		w = 1
	}
	return w
}

// Positioned is the Positioner's output: the reconstructed character
// stream T' alongside parallel per-character coordinate and advance
// arrays, plus the bookkeeping paginate needs to split it into columns.
type Positioned struct {
	Chars []rune

	X, DX, Y, DY []float32

	// LineOf gives the source line index of each position in Chars.
	LineOf []int32

	// SourceIndex maps each position in Chars back to the originating
	// index in Fragments.Text, or -1 for an injected hyphen/newline
	// sentinel.
	SourceIndex []int32

	// Linebreaks holds the positions, in Chars, of every injected
	// newline sentinel (one per line boundary; the final line has
	// none).
	Linebreaks []int32

	// ForcedLine reports, per line, whether that line ended on a
	// forced break (paragraph gap, explicit newline, or the terminal
	// line of the paragraph) rather than a chosen or hyphenated one.
	ForcedLine []bool
}

// Position materializes f and plan into absolute coordinates in
// output units (ems times fontsize). cfg.Oracle must be font-backed:
// positioning needs real ascender/descender/em metrics, which stub
// oracles such as oracle.Monospace cannot supply.
func Position(f *fragment.Fragments, plan *linebreak.Plan, cfg Config) (*Positioned, error) {
	const op = "position.Position"

	if cfg.Oracle == nil || !cfg.Oracle.FontBacked() {
		return nil, xerr.New(xerr.OracleRequired, op, nil)
	}

	lines := plan.Lines()
	var chars []rune
	var dx []float32
	var lineOf []int32
	var sourceIndex []int32
	var linebreaks []int32

	for k := 0; k < lines; k++ {
		firstFrag := plan.Breaks[k]
		lastFrag := plan.Breaks[k+1] - 1
		lineStart := f.Starts[firstFrag]
		lineEnd := f.Ends[lastFrag]
		if k > 0 && plan.ForcedMask[k-1] {
			// The previous line ended on a forced break, so this
			// line opens with the newline fragment that forced it;
			// that raw '\n' is bookkeeping, not line content.
			lineStart++
		}

		for c := lineStart; c < lineEnd; c++ {
			chars = append(chars, f.Text[c])
			dx = append(dx, f.CharWidths[c])
			lineOf = append(lineOf, int32(k))
			sourceIndex = append(sourceIndex, c)
		}

		if k < lines-1 {
			if plan.HyphenMask[k] {
				chars = append(chars, '-')
				dx = append(dx, f.HyphenWidth)
				lineOf = append(lineOf, int32(k))
				sourceIndex = append(sourceIndex, -1)
			}
			chars = append(chars, '\n')
			dx = append(dx, 0)
			lineOf = append(lineOf, int32(k))
			sourceIndex = append(sourceIndex, -1)
			linebreaks = append(linebreaks, int32(len(chars)-1))
		}
	}

	n := len(chars)
	extents := cfg.Oracle.FontExtents()
	var lineGap float32
	if extents.Em != 0 {
		lineGap = (extents.Ascender - extents.Descender) / extents.Em
	}
	var baseY float32
	if extents.Em != 0 {
		baseY = extents.Descender / extents.Em
	}

	y := make([]float32, n)
	dy := make([]float32, n)
	lineY := make([]float32, lines)
	for k := 0; k < lines; k++ {
		lineY[k] = baseY - float32(k)*lineGap*cfg.LineSpacing
	}
	for i := 0; i < n; i++ {
		y[i] = lineY[lineOf[i]]
		dy[i] = lineGap
	}

	forcedLine := make([]bool, lines)
	copy(forcedLine, plan.ForcedMask)

	x := prefixSum(dx)

	if cfg.Justify {
		lineWidth := make([]float32, lines)
		wsWidth := make([]float32, lines)
		lineStartX := make([]float32, lines)
		for i := 0; i < n; i++ {
			k := lineOf[i]
			if sourceIndex[i] >= 0 && f.WSMask[sourceIndex[i]] != 0 {
				wsWidth[k] += dx[i]
			}
		}
		firstOfLine := make([]int, lines)
		for i := range firstOfLine {
			firstOfLine[i] = -1
		}
		lastOfLine := make([]int, lines)
		for i := 0; i < n; i++ {
			k := lineOf[i]
			if firstOfLine[k] == -1 {
				firstOfLine[k] = i
			}
			lastOfLine[k] = i
		}
		for k := 0; k < lines; k++ {
			if firstOfLine[k] == -1 {
				continue
			}
			lineStartX[k] = x[firstOfLine[k]]
			lineWidth[k] = x[lastOfLine[k]] + dx[lastOfLine[k]] - lineStartX[k]
		}

		factor := make([]float32, lines)
		for k := 0; k < lines; k++ {
			if forcedLine[k] || wsWidth[k] == 0 {
				factor[k] = 0
				continue
			}
			factor[k] = (cfg.targetWidth(k) - lineWidth[k]) / wsWidth[k]
		}

		for i := 0; i < n; i++ {
			k := lineOf[i]
			if sourceIndex[i] >= 0 && f.WSMask[sourceIndex[i]] != 0 {
				dx[i] += factor[k] * dx[i]
			}
		}
		// The stretch shifts every later line's prefix sum, so the
		// per-line reset has to be re-derived from the new x.
		x = prefixSum(dx)
		for k := 0; k < lines; k++ {
			if firstOfLine[k] >= 0 {
				lineStartX[k] = x[firstOfLine[k]]
			}
		}
		for i := 0; i < n; i++ {
			x[i] -= lineStartX[lineOf[i]]
		}
	} else {
		lineStartX := make([]float32, lines)
		seen := make([]bool, lines)
		for i := 0; i < n; i++ {
			k := lineOf[i]
			if !seen[k] {
				lineStartX[k] = x[i]
				seen[k] = true
			}
		}
		for i := 0; i < n; i++ {
			x[i] -= lineStartX[lineOf[i]]
		}
	}

	for i := 0; i < n; i++ {
		x[i] *= cfg.FontSize
		dx[i] *= cfg.FontSize
		y[i] *= cfg.FontSize
		dy[i] *= cfg.FontSize
	}

	return &Positioned{
		Chars:       chars,
		X:           x,
		DX:          dx,
		Y:           y,
		DY:          dy,
		LineOf:      lineOf,
		SourceIndex: sourceIndex,
		Linebreaks:  linebreaks,
		ForcedLine:  forcedLine,
	}, nil
}

func prefixSum(v []float32) []float32 {
	out := make([]float32, len(v))
	var running float32
	for i, w := range v {
		out[i] = running
		running += w
	}
	return out
}
