// Package oracle defines the Measurement Oracle contract: the
// external collaborator that turns text into per-character advance
// widths and font vertical metrics. Only this package is allowed to
// perform real glyph shaping; every other package treats an Oracle as
// an opaque, read-only, concurrency-safe function.
package oracle

// Size is a rendering canvas extent, in the same units as the x/y
// origins passed to ShapeToSVG.
type Size struct {
	Width  float32
	Height float32
}

// Extents holds font vertical metrics in font units, plus the em
// calibration value used to convert them (and every character width)
// to em units. line_gap is derived downstream as
// (Ascender - Descender) / Em.
type Extents struct {
	Ascender  float32
	Descender float32
	Em        float32
}

// Oracle is the Measurement Oracle: a read-only, concurrency-safe
// provider of per-character advance widths, font vertical metrics, and
// (for the demo renderer only) SVG glyph emission.
type Oracle interface {
	// CharacterWidths returns the em-unit advance width of every rune
	// of text; len(result) must equal len([]rune(text)). Glyph shaping
	// that merges code units into fewer glyphs splits the merged
	// glyph's total advance equally among the merged code units;
	// decomposed code units sum their glyphs' advances.
	CharacterWidths(text string) ([]float32, error)

	// FontExtents returns the font's vertical metrics in font units.
	FontExtents() Extents

	// ShapeToSVG renders text as a standalone SVG string, for demo
	// purposes only; it is not part of the layout core.
	ShapeToSVG(text string, xOrigin, yOrigin, fontsize float32, canvas Size) (string, error)

	// FontBacked reports whether this Oracle wraps a real font face.
	// Positioning (package position) requires a font-backed Oracle
	// because it divides by Em to derive line_gap; constant-width
	// stubs such as Monospace report false and the position package
	// rejects them with xerr.OracleRequired.
	FontBacked() bool
}
