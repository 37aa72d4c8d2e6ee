// Package render emits SVG documents from a Paginated layout, one per
// page. It is a demo consumer of the final per-character bounding
// boxes; it depends on oracle and paginate, and nothing in the core
// packages imports it back.
package render

import (
	"fmt"
	"strings"

	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/paginate"
)

// Renderer emits SVG strings from a Paginated layout. FontFamily is
// the CSS font-family value written into each page's <text> glyphs;
// this package never shapes glyphs itself, the Oracle already did
// that upstream.
type Renderer struct {
	FontFamily string
	TextColor  string
}

// NewRenderer returns a Renderer with a generic serif family and
// black glyph color.
func NewRenderer() *Renderer {
	return &Renderer{FontFamily: "serif", TextColor: "#000000"}
}

// RenderPages splits p by PageID and emits one SVG document per page,
// in page-id order, sized to pageSize.
func (r *Renderer) RenderPages(p *paginate.Paginated, pageSize oracle.Size) []string {
	if p == nil || len(p.Chars) == 0 {
		return nil
	}

	var maxPage int32
	for _, id := range p.PageID {
		if id > maxPage {
			maxPage = id
		}
	}

	pages := make([]string, maxPage+1)
	perPage := make([][]int, maxPage+1)
	for i := range p.Chars {
		pg := p.PageID[i]
		perPage[pg] = append(perPage[pg], i)
	}
	for pg := range pages {
		pages[pg] = r.renderPage(p, perPage[pg], pageSize)
	}
	return pages
}

// renderPage renders the characters at indices into one SVG document.
// Dropped characters are skipped; each kept, non-newline, non-zero-
// advance character becomes its own positioned <text> glyph.
func (r *Renderer) renderPage(p *paginate.Paginated, indices []int, pageSize oracle.Size) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g">`, pageSize.Width, pageSize.Height)
	b.WriteString("\n")

	for _, i := range indices {
		if p.Drop[i] {
			continue
		}
		c := p.Chars[i]
		if c == '\n' || p.DX[i] == 0 {
			continue
		}
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-family="%s" fill="%s">%s</text>`,
			p.X[i], p.Y[i], r.FontFamily, r.TextColor, escapeXML(string(c)))
		b.WriteString("\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
