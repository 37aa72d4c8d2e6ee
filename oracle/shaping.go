package oracle

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// calibrationRune is U+2003 EM SPACE, shaped once at load time to
// calibrate the em unit: its advance is one em by definition in a
// well-formed font.
const calibrationRune = ' '

// ascenderFraction and descenderFraction approximate vertical metrics
// as fixed shares of the calibrated em width. The face's own hhea/OS2
// ascender and descender are not read.
const (
	ascenderFraction  = 0.8
	descenderFraction = 0.2
)

// ShapingOracle is the font-backed Measurement Oracle: it wraps a
// go-text/typesetting font face and the HarfBuzz-compatible shaper to
// produce per-character em-unit widths via cluster redistribution.
type ShapingOracle struct {
	face   *gofont.Face
	shaper shaping.HarfbuzzShaper
	mu     sync.Mutex

	em        float32
	ascender  float32
	descender float32
}

// LoadShapingOracle reads a TTF/OTF/TTC font file from path and
// returns a ShapingOracle backed by its first face.
func LoadShapingOracle(path string) (*ShapingOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oracle: read font file: %w", err)
	}
	return NewShapingOracle(data)
}

// NewShapingOracle builds a ShapingOracle from raw TTF/OTF bytes (a
// single face; use NewShapingOracleCollection for TTC data).
func NewShapingOracle(data []byte) (*ShapingOracle, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("oracle: parse font: %w", err)
	}
	return newShapingOracleFromFace(face)
}

// NewShapingOracleCollection builds a ShapingOracle from the face at
// index within a TTC font collection's raw bytes.
func NewShapingOracleCollection(data []byte, index int) (*ShapingOracle, error) {
	faces, err := gofont.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("oracle: parse font collection: %w", err)
	}
	if index < 0 || index >= len(faces) {
		return nil, fmt.Errorf("oracle: face index %d out of range (collection has %d faces)", index, len(faces))
	}
	return newShapingOracleFromFace(faces[index])
}

func newShapingOracleFromFace(face *gofont.Face) (*ShapingOracle, error) {
	o := &ShapingOracle{face: face}
	em, err := o.rawAdvance(string(calibrationRune))
	if err != nil {
		return nil, fmt.Errorf("oracle: calibrate em: %w", err)
	}
	if em <= 0 {
		return nil, fmt.Errorf("oracle: font reports non-positive em calibration width %v", em)
	}
	o.em = em
	o.ascender = em * ascenderFraction
	o.descender = -em * descenderFraction
	return o, nil
}

// rawAdvance shapes text at a size of 1000 and sums the x-advance of
// every glyph, in units of that size (not the face's own upem).
func (o *ShapingOracle) rawAdvance(text string) (float32, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Face:      o.face,
		Size:      fixed.I(1000),
		Direction: di.DirectionLTR,
	}
	out := o.shaper.Shape(input)
	var total float32
	for _, g := range out.Glyphs {
		total += float32(g.XAdvance) / 64
	}
	return total, nil
}

// CharacterWidths shapes text and redistributes glyph advances back to
// code units via the cluster-redistribution rule: glyphs that merge
// several runes into one cluster split that cluster's total advance
// equally across the merged runes; a rune that decomposes into
// several glyphs sums their advances.
func (o *ShapingOracle) CharacterWidths(text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("oracle: no text provided")
	}

	o.mu.Lock()
	runes := []rune(text)
	n := len(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    n,
		Face:      o.face,
		Size:      fixed.I(1000),
		Direction: di.DirectionLTR,
	}
	out := o.shaper.Shape(input)
	o.mu.Unlock()

	widths := make([]float32, n)
	if len(out.Glyphs) == 0 {
		return widths, nil
	}

	// Sum every glyph's advance onto the rune it is clustered with.
	for _, g := range out.Glyphs {
		cluster := int(g.ClusterIndex)
		if cluster >= 0 && cluster < n {
			widths[cluster] += float32(g.XAdvance) / 64
		}
	}

	// Detect clusters spanning more than one rune (several runes
	// merged into one glyph, e.g. base + combining mark) and split
	// that cluster's accumulated width equally across its members.
	clusters := make([]int, len(out.Glyphs))
	for i, g := range out.Glyphs {
		clusters[i] = int(g.ClusterIndex)
	}
	for i, start := range clusters {
		end := n
		if i+1 < len(clusters) {
			end = clusters[i+1]
		}
		length := end - start
		if length > 1 && start >= 0 && end <= n {
			share := widths[start] / float32(length)
			for j := start; j < end; j++ {
				widths[j] = share
			}
		}
	}

	for i := range widths {
		widths[i] /= o.em
	}
	return widths, nil
}

// FontExtents returns the calibrated vertical metrics in font units,
// alongside the em calibration value.
func (o *ShapingOracle) FontExtents() Extents {
	return Extents{Ascender: o.ascender, Descender: o.descender, Em: o.em}
}

func (o *ShapingOracle) FontBacked() bool {
	return true
}

// ShapeToSVG renders text as a standalone SVG document, cursor-walking
// glyph clusters left to right. It is a demo convenience, not part of
// the core layout contract; real glyph outlines are not emitted,
// only positioned placeholder rectangles sized to each glyph's
// advance, since outline extraction is outside this oracle's contract.
func (o *ShapingOracle) ShapeToSVG(text string, xOrigin, yOrigin, fontsize float32, canvas Size) (string, error) {
	if text == "" {
		return "", fmt.Errorf("oracle: no text provided")
	}
	widths, err := o.CharacterWidths(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g">`, canvas.Width, canvas.Height)
	b.WriteString("\n")
	lineGap := (o.ascender - o.descender) / o.em * fontsize
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%g" height="%g" fill="none" stroke="#BBBBBB"/>`, canvas.Width, canvas.Height)
	b.WriteString("\n")

	cursor := xOrigin
	y := yOrigin
	for i, r := range []rune(text) {
		w := widths[i] * fontsize
		if r == '\n' {
			cursor = xOrigin
			y += lineGap
			continue
		}
		if !isCombiningContinuation(r) {
			fill := "#000000"
			if isFullwidth(r) {
				fill = "#333333"
			}
			fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`, cursor, y-lineGap, w, lineGap, fill)
			b.WriteString("\n")
		}
		cursor += w
	}
	b.WriteString("</svg>\n")
	return b.String(), nil
}

// isCombiningContinuation reports whether r is a combining mark that
// normally attaches to the previous base rune rather than starting a
// new glyph position; used to skip drawing a placeholder box for
// marks folded into their base's cluster. A rune is treated as a
// continuation when it is both a known combining-mark range and its
// NFD decomposition is itself (i.e. it is already a bare mark, not a
// precomposed character that decomposes further).
func isCombiningContinuation(r rune) bool {
	decomposed := norm.NFD.String(string(r))
	return decomposed == string(r) && isMn(r)
}

// isFullwidth reports whether r is an East Asian wide or fullwidth
// code point, used only to vary the placeholder glyph's fill tone in
// ShapeToSVG output.
func isFullwidth(r rune) bool {
	k := width.LookupRune(r).Kind()
	return k == width.EastAsianWide || k == width.EastAsianFullwidth
}

func isMn(r rune) bool {
	// Combining Diacritical Marks block and its Extended and
	// Supplement blocks; a conservative range check rather than a full
	// unicode.Mn table walk, sufficient for placeholder SVG output.
	return (r >= 0x0300 && r <= 0x036F) || (r >= 0x1AB0 && r <= 0x1AFF) || (r >= 0x1DC0 && r <= 0x1DFF)
}
