package render

import (
	"strings"
	"testing"

	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/paginate"
)

func TestRenderPagesEmpty(t *testing.T) {
	r := NewRenderer()
	if got := r.RenderPages(nil, oracle.Size{Width: 100, Height: 100}); got != nil {
		t.Errorf("RenderPages(nil) = %v, want nil", got)
	}
}

func TestRenderPagesOneCharacterPerPage(t *testing.T) {
	r := NewRenderer()
	p := &paginate.Paginated{
		Chars:    []rune{'a', 'b'},
		X:        []float32{0, 10},
		DX:       []float32{10, 10},
		Y:        []float32{0, 0},
		DY:       []float32{12, 12},
		ColumnID: []int32{0, 0},
		PageID:   []int32{0, 1},
		Drop:     []bool{false, false},
	}
	pages := r.RenderPages(p, oracle.Size{Width: 50, Height: 50})
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if !strings.Contains(pages[0], ">a<") {
		t.Errorf("page 0 = %q, want to contain glyph a", pages[0])
	}
	if !strings.Contains(pages[1], ">b<") {
		t.Errorf("page 1 = %q, want to contain glyph b", pages[1])
	}
	if strings.Contains(pages[0], ">b<") {
		t.Errorf("page 0 = %q, should not contain glyph b", pages[0])
	}
}

func TestRenderPagesSkipsDropped(t *testing.T) {
	r := NewRenderer()
	p := &paginate.Paginated{
		Chars:    []rune{'x', 'y'},
		X:        []float32{0, 10},
		DX:       []float32{10, 10},
		Y:        []float32{0, 0},
		DY:       []float32{12, 12},
		ColumnID: []int32{0, 0},
		PageID:   []int32{0, 0},
		Drop:     []bool{true, false},
	}
	pages := r.RenderPages(p, oracle.Size{Width: 50, Height: 50})
	if strings.Contains(pages[0], ">x<") {
		t.Errorf("page 0 = %q, should have skipped dropped glyph x", pages[0])
	}
	if !strings.Contains(pages[0], ">y<") {
		t.Errorf("page 0 = %q, want glyph y", pages[0])
	}
}
