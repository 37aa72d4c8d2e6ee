// Package textshape: this file implements the Layout pipeline that
// wires together Fragmenter -> Breaker -> Positioner -> Paginator:
// Make -> Break -> Position -> paginate.Layout.
package textshape

import (
	"strings"
	"sync"

	"github.com/digi-deity/textshape/fragment"
	"github.com/digi-deity/textshape/linebreak"
	"github.com/digi-deity/textshape/paginate"
	"github.com/digi-deity/textshape/position"
)

// Layout runs every paragraph through the fragmenter, breaker, and
// positioner, then paginates the concatenated result. Paragraphs are
// laid out independently (fan-out bounded by the Document's
// Parallelism option) since each paragraph's fragments/break
// plan/position only depend on the shared read-only Oracle, never on
// a sibling paragraph; only the final paginate.Layout call sees them
// together.
func (d *Document) Layout(paragraphs []string, cfg Config) (*paginate.Paginated, error) {
	positioned, err := d.layoutParagraphs(paragraphs, cfg)
	if err != nil {
		return nil, err
	}
	return paginate.Layout(positioned, cfg.Page)
}

func (d *Document) layoutParagraphs(paragraphs []string, cfg Config) ([]*position.Positioned, error) {
	out := make([]*position.Positioned, len(paragraphs))
	errs := make([]error, len(paragraphs))

	work := func(i int) {
		out[i], errs[i] = d.layoutOne(paragraphs[i], cfg)
	}

	if d.parallelism <= 1 || len(paragraphs) <= 1 {
		for i := range paragraphs {
			work(i)
		}
	} else {
		sem := make(chan struct{}, d.parallelism)
		var wg sync.WaitGroup
		for i := range paragraphs {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				work(i)
			}(i)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *Document) layoutOne(text string, cfg Config) (*position.Positioned, error) {
	var opts []fragment.Option
	if d.splitter != nil {
		opts = append(opts, fragment.WithSplitter(d.splitter))
	}
	opts = append(opts, fragment.WithTabWidth(d.tabWidth))
	if d.syllabifier != nil {
		opts = append(opts, fragment.WithSyllabifier(d.syllabifier))
	}

	f, err := fragment.Make(text, d.oracle, opts...)
	if err != nil {
		return nil, err
	}

	plan, err := linebreak.Break(f, cfg.WidthSchedule, cfg.Costs)
	if err != nil {
		return nil, err
	}

	return position.Position(f, plan, position.Config{
		Oracle:        d.oracle,
		Justify:       cfg.Justify,
		LineSpacing:   cfg.LineSpacing,
		WidthSchedule: cfg.WidthSchedule,
		FontSize:      cfg.FontSize,
	})
}

// ToList splits p's kept (non-dropped) characters back into one
// string per line. Joining the result with "\n" reproduces the
// laid-out paragraphs modulo hyphen insertion and trailing-whitespace
// trimming.
func ToList(p *paginate.Paginated) []string {
	var lines []string
	var cur strings.Builder
	for i, r := range p.Chars {
		if p.Drop[i] {
			continue
		}
		if r == '\n' {
			lines = append(lines, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	lines = append(lines, cur.String())
	return lines
}

// BBox is a single character's bounding box in output units.
type BBox struct {
	X, Y, Width, Height float32
}

// GetBBoxes returns one BBox per character of p, in the same order,
// dropped characters included (their Height is 0).
func GetBBoxes(p *paginate.Paginated) []BBox {
	boxes := make([]BBox, len(p.Chars))
	for i := range p.Chars {
		boxes[i] = BBox{X: p.X[i], Y: p.Y[i], Width: p.DX[i], Height: p.DY[i]}
	}
	return boxes
}
