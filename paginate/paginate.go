// Package paginate implements column and page layout: it assigns the
// lines of one or more positioned paragraphs to columns and columns
// to pages, honouring paragraph breaks at column boundaries.
package paginate

import (
	"fmt"

	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/position"
	"github.com/digi-deity/textshape/xerr"
)

// Sides names the four margins of a page.
type Sides struct {
	Left, Top, Right, Bottom float32
}

// PageConfig holds the Paginator's tunables.
type PageConfig struct {
	// MaxLinesPerColumn is a schedule indexed by column number; the
	// last entry repeats for columns beyond its length. An empty
	// schedule, or an entry of 0, means "no limit": the layout
	// degenerates to a single column holding all remaining lines.
	MaxLinesPerColumn []int32

	// ColumnsPerPage is how many columns are grouped onto one page.
	ColumnsPerPage int32

	ColumnWidth   float32
	ColumnSpacing float32

	PageSize    oracle.Size
	PageMargins Sides
}

// Paginated is the paginator's output: the concatenated character
// stream of every input paragraph (each paragraph but the last ends
// with a newline; between paragraphs the layout also holds a forced-gap
// line with no characters, the equivalent of a blank paragraph
// separator, which is dropped where it meets a column boundary), with
// each character's final position folded in via its column's origin
// offset, plus the column id, page id, and drop mask.
type Paginated struct {
	Chars []rune

	X, DX, Y, DY []float32

	// ColumnID and PageID are monotone non-decreasing along Chars.
	ColumnID []int32
	PageID   []int32

	// Drop marks characters belonging to a forced-break line that
	// coincided with a column boundary and was therefore elided.
	// Dropped characters keep their X/column/page assignment but
	// their DY is suppressed to 0.
	Drop []bool
}

type line struct {
	// chars holds indices into the concatenated Chars/X/DX/Y/DY
	// arrays belonging to this line, in order. A synthetic
	// paragraph-gap line has none.
	chars []int
	// forced marks a line that ends on a forced break: either a real
	// forced line from a paragraph's own break plan, or the
	// synthetic gap line inserted between two input paragraphs.
	forced bool
}

// Layout concatenates paragraphs into a single stream, inserting one
// synthetic forced-gap line between each adjacent pair, then splits
// the lines into columns and assigns the columns to pages.
func Layout(paragraphs []*position.Positioned, cfg PageConfig) (*Paginated, error) {
	const op = "paginate.Layout"

	if cfg.ColumnsPerPage <= 0 {
		return nil, xerr.Newf(xerr.InvalidSchedule, op, "columns per page must be positive, got %d", cfg.ColumnsPerPage)
	}
	for i, v := range cfg.MaxLinesPerColumn {
		if v < 0 {
			return nil, xerr.Newf(xerr.InvalidSchedule, op, "max lines per column at index %d is negative: %d", i, v)
		}
	}
	if len(paragraphs) == 0 {
		return nil, xerr.New(xerr.EmptyText, op, fmt.Errorf("no paragraphs to lay out"))
	}

	var chars []rune
	var x, dx, y, dy []float32
	var lines []line

	lineStep := deriveLineStep(paragraphs)

	for pIdx, p := range paragraphs {
		if p == nil {
			continue
		}
		nLines := 0
		for _, l := range p.LineOf {
			if int(l)+1 > nLines {
				nLines = int(l) + 1
			}
		}
		linesOfPara := make([]line, nLines)
		for i := range p.Chars {
			k := int(p.LineOf[i])
			base := len(chars)
			linesOfPara[k].chars = append(linesOfPara[k].chars, base)
			chars = append(chars, p.Chars[i])
			x = append(x, p.X[i])
			dx = append(dx, p.DX[i])
			y = append(y, p.Y[i])
			dy = append(dy, p.DY[i])
		}
		for k := range linesOfPara {
			if k < len(p.ForcedLine) {
				linesOfPara[k].forced = p.ForcedLine[k]
			}
		}
		lines = append(lines, linesOfPara...)

		if pIdx < len(paragraphs)-1 {
			// Close the paragraph's last line with a newline so the
			// next paragraph's text does not run on into it in Chars.
			if len(p.Chars) > 0 {
				ci := len(chars)
				last := &lines[len(lines)-1]
				last.chars = append(last.chars, ci)
				chars = append(chars, '\n')
				x = append(x, x[ci-1]+dx[ci-1])
				dx = append(dx, 0)
				y = append(y, y[ci-1])
				dy = append(dy, dy[ci-1])
			}
			lines = append(lines, line{forced: true})
		}
	}

	colOfLine, dropLine := splitColumns(lines, cfg.MaxLinesPerColumn)

	columnID := make([]int32, len(chars))
	pageID := make([]int32, len(chars))
	drop := make([]bool, len(chars))

	colLocalLine := map[int32]int{}
	for li, l := range lines {
		col := colOfLine[li]
		for _, ci := range l.chars {
			columnID[ci] = col
			pageID[ci] = col / cfg.ColumnsPerPage
			drop[ci] = dropLine[li]
		}
		if dropLine[li] {
			continue
		}
		localIdx := colLocalLine[col]
		colInPage := col % cfg.ColumnsPerPage
		pageIdx := col / cfg.ColumnsPerPage
		xOrigin := cfg.PageMargins.Left + float32(colInPage)*(cfg.ColumnWidth+cfg.ColumnSpacing)
		yOrigin := cfg.PageMargins.Top + float32(pageIdx)*cfg.PageSize.Height
		for _, ci := range l.chars {
			x[ci] += xOrigin
			y[ci] = yOrigin - float32(localIdx)*lineStep
		}
		colLocalLine[col] = localIdx + 1
	}

	for i := range chars {
		if drop[i] {
			dy[i] = 0
		}
	}

	return &Paginated{
		Chars:    chars,
		X:        x,
		DX:       dx,
		Y:        y,
		DY:       dy,
		ColumnID: columnID,
		PageID:   pageID,
		Drop:     drop,
	}, nil
}

// splitColumns implements the {filling, saw-gap, closing} boundary
// state machine: it walks lines greedily, filling each column up to
// its quota, then trimming and dropping any forced-break
// (paragraph-gap) lines that land on the resulting boundary so the
// split always falls on a concrete newline with no stray blank lines
// at a column edge.
func splitColumns(lines []line, schedule []int32) (col []int32, drop []bool) {
	n := len(lines)
	col = make([]int32, n)
	drop = make([]bool, n)

	i := 0
	column := int32(0)
	for i < n {
		// filling: skip (and drop) any forced-gap lines stranded at
		// the start of this column by the previous column's boundary
		// trim below.
		for i < n && lines[i].forced && len(lines[i].chars) == 0 {
			drop[i] = true
			i++
		}
		if i >= n {
			break
		}

		maxLines := scheduleAt(schedule, int(column))
		if maxLines <= 0 || int(maxLines) > n {
			maxLines = int32(n)
		}

		start := i
		end := start
		taken := int32(0)
		for taken < maxLines && end < n {
			end++
			taken++
		}

		// saw-gap -> closing: trim trailing forced-gap lines off this
		// column's boundary so the split lands outward of the gap,
		// unless doing so would empty the whole document tail.
		for end > start && end < n && lines[end-1].forced && len(lines[end-1].chars) == 0 {
			drop[end-1] = true
			end--
		}

		for k := start; k < end; k++ {
			col[k] = column
		}
		i = end
		column++
	}
	return col, drop
}

func scheduleAt(schedule []int32, col int) int32 {
	if len(schedule) == 0 {
		return 0
	}
	idx := col
	if idx >= len(schedule) {
		idx = len(schedule) - 1
	}
	return schedule[idx]
}

// deriveLineStep recovers the vertical distance between consecutive
// lines from the first paragraph that has at least two, since
// Positioned does not carry the line-spacing multiplier directly.
// Single-line-per-paragraph documents fall back to 0 (every column
// starts its lines at the same y, which is the only sensible value
// when no two lines of any paragraph are ever compared).
func deriveLineStep(paragraphs []*position.Positioned) float32 {
	for _, p := range paragraphs {
		if p == nil {
			continue
		}
		var y0, y1 float32
		var have0, have1 bool
		for i, ln := range p.LineOf {
			switch ln {
			case 0:
				if !have0 {
					y0, have0 = p.Y[i], true
				}
			case 1:
				if !have1 {
					y1, have1 = p.Y[i], true
				}
			}
		}
		if have0 && have1 {
			if step := y0 - y1; step != 0 {
				return step
			}
		}
	}
	return 0
}
