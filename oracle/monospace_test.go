package oracle

import "testing"

func TestMonospaceCharacterWidths(t *testing.T) {
	m := NewMonospace()
	widths, err := m.CharacterWidths("abc")
	if err != nil {
		t.Fatalf("CharacterWidths: %v", err)
	}
	if len(widths) != 3 {
		t.Fatalf("len(widths) = %d, want 3", len(widths))
	}
	for i, w := range widths {
		if w != 1.0 {
			t.Errorf("widths[%d] = %v, want 1.0", i, w)
		}
	}
}

func TestMonospaceNotFontBacked(t *testing.T) {
	m := NewMonospace()
	if m.FontBacked() {
		t.Error("Monospace.FontBacked() = true, want false")
	}
	if got := m.FontExtents(); got != (Extents{}) {
		t.Errorf("FontExtents() = %+v, want zero value", got)
	}
}

func TestMonospaceShapeToSVGUnsupported(t *testing.T) {
	m := NewMonospace()
	if _, err := m.ShapeToSVG("x", 0, 0, 12, Size{Width: 10, Height: 10}); err == nil {
		t.Error("ShapeToSVG on Monospace: want error, got nil")
	}
}
