package oracle

import "fmt"

// Monospace is a constant-width stub Oracle: every code unit has the
// same advance width. It is useful for tests that want deterministic
// widths without a real font file, but it cannot back the positioner:
// it reports FontBacked() == false.
type Monospace struct {
	// Width is the per-character advance, in em units. Defaults to
	// 1.0 when constructed via NewMonospace.
	Width float32
}

// NewMonospace returns a Monospace oracle with unit character width.
func NewMonospace() *Monospace {
	return &Monospace{Width: 1.0}
}

func (m *Monospace) CharacterWidths(text string) ([]float32, error) {
	n := len([]rune(text))
	widths := make([]float32, n)
	for i := range widths {
		widths[i] = m.Width
	}
	return widths, nil
}

// FontExtents returns zero-valued extents; Monospace carries no real
// font metrics.
func (m *Monospace) FontExtents() Extents {
	return Extents{}
}

func (m *Monospace) ShapeToSVG(text string, xOrigin, yOrigin, fontsize float32, canvas Size) (string, error) {
	return "", fmt.Errorf("oracle: Monospace cannot shape to SVG, it has no glyph outlines")
}

func (m *Monospace) FontBacked() bool {
	return false
}
