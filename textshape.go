// Package textshape provides the root facade over the fragmenter,
// breaker, positioner, and paginator: Document.Layout wires the whole
// pipeline end to end so a caller supplies raw paragraph strings and
// a page configuration and receives a single Paginated result. The
// subpackages remain usable on their own for callers that need only
// one stage.
package textshape

import (
	"github.com/digi-deity/textshape/fragment"
	"github.com/digi-deity/textshape/hyphen"
	"github.com/digi-deity/textshape/linebreak"
	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/paginate"
)

// Document holds the Measurement Oracle and the fragmentation defaults
// that stay constant across every Layout call. A Document's Oracle is
// read-only after construction.
type Document struct {
	oracle      oracle.Oracle
	splitter    fragment.Splitter
	tabWidth    float32
	syllabifier hyphen.Syllabifier
	parallelism int
}

// Option configures a Document at construction time.
type Option func(*Document)

// WithSplitter overrides the default whitespace splitter used to
// fragment every paragraph in this Document.
func WithSplitter(s fragment.Splitter) Option {
	return func(d *Document) { d.splitter = s }
}

// WithTabWidth overrides the default tab width, in em units.
func WithTabWidth(w float32) Option {
	return func(d *Document) { d.tabWidth = w }
}

// WithSyllabifier enables syllable-boundary hyphenation for every
// paragraph laid out by this Document.
func WithSyllabifier(s hyphen.Syllabifier) Option {
	return func(d *Document) { d.syllabifier = s }
}

// WithParallelism bounds the number of goroutines Layout uses to
// fragment/break/position independent paragraphs concurrently. n <= 1
// disables fan-out and paragraphs are laid out sequentially. Fan-out
// is safe because each paragraph's layout is pure computation over
// the shared read-only Oracle.
func WithParallelism(n int) Option {
	return func(d *Document) { d.parallelism = n }
}

// New returns a Document backed by o, the sole Measurement Oracle
// every paragraph in this Document is laid out against.
func New(o oracle.Oracle, opts ...Option) *Document {
	d := &Document{
		oracle:   o,
		splitter: fragment.DefaultSplitter,
		tabWidth: fragment.DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config holds the tunables that vary per Layout call: the
// positioned/paginated output is recomputed from these every render.
type Config struct {
	// WidthSchedule is the target line-width schedule, in em units,
	// shared by every paragraph; its last entry repeats for lines
	// beyond its length.
	WidthSchedule []float32

	FontSize    float32
	Justify     bool
	LineSpacing float32
	Costs       linebreak.Costs

	Page paginate.PageConfig
}

// DefaultConfig returns a Config with the breaker's documented
// defaults, unjustified single-spaced text, and a single-column page
// whose column width is targetWidth*fontSize; PageSize is left zero.
func DefaultConfig(targetWidth, fontSize float32) Config {
	return Config{
		WidthSchedule: []float32{targetWidth},
		FontSize:      fontSize,
		LineSpacing:   1,
		Costs:         linebreak.DefaultCosts(),
		Page: paginate.PageConfig{
			ColumnsPerPage: 1,
			ColumnWidth:    targetWidth * fontSize,
		},
	}
}
