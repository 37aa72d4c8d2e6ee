// Package main provides the CLI entry point for textshape.
//
// Usage:
//
//	textshape layout input.txt --font font.ttf -o out/
//	textshape layout input.txt --font font.ttf --width 30 --justify
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/digi-deity/textshape"
	"github.com/digi-deity/textshape/oracle"
	"github.com/digi-deity/textshape/paginate"
	"github.com/digi-deity/textshape/render"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "layout", "l":
		if err := runLayout(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("textshape version 0.1.0")
	default:
		if err := runLayout(os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println(`textshape - fragment-based line breaking and pagination

Usage:
  textshape layout <input.txt> --font <font.ttf> [-o <out-dir>]
  textshape help
  textshape version

Options:
  -o, --out      Output directory for page-N.svg files (default: alongside input)
  --font         Path to a TTF/OTF font file (required)
  --width        Target line width in ems (default: 40)
  --fontsize     Font size in output units (default: 12)
  --justify      Justify every non-forced line (default: false)
  --columns      Columns per page (default: 1)
  --lines        Max lines per column, 0 = unlimited (default: 0)

A textshape.toml file next to the input overrides page/column geometry;
see pageConfigFile below for its schema.`)
}

// pageConfigFile is the optional TOML sidecar schema: CLI flags are
// resolved first, then this overlays page/column geometry the flags
// didn't set explicitly.
type pageConfigFile struct {
	ColumnWidth   float32 `toml:"column_width"`
	ColumnSpacing float32 `toml:"column_spacing"`
	PageWidth     float32 `toml:"page_width"`
	PageHeight    float32 `toml:"page_height"`
	MarginLeft    float32 `toml:"margin_left"`
	MarginTop     float32 `toml:"margin_top"`
	MarginRight   float32 `toml:"margin_right"`
	MarginBottom  float32 `toml:"margin_bottom"`
}

func loadPageConfigFile(inputPath string) (*pageConfigFile, error) {
	path := filepath.Join(filepath.Dir(inputPath), "textshape.toml")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	var cfg pageConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cfg, nil
}

func runLayout(args []string) error {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	outDir := fs.String("o", "", "Output directory")
	fs.StringVar(outDir, "out", "", "Output directory (long form)")
	fontPath := fs.String("font", "", "Path to a TTF/OTF font file")
	width := fs.Float64("width", 40, "Target line width in ems")
	fontSize := fs.Float64("fontsize", 12, "Font size in output units")
	justify := fs.Bool("justify", false, "Justify non-forced lines")
	columns := fs.Int("columns", 1, "Columns per page")
	lines := fs.Int("lines", 0, "Max lines per column, 0 = unlimited")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("missing input file")
	}
	input := fs.Arg(0)
	// Flags may also follow the input path, as in the usage text.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	if *fontPath == "" {
		return fmt.Errorf("missing required --font flag")
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	return layoutFile(input, *fontPath, dir, float32(*width), float32(*fontSize), *justify, int32(*columns), int32(*lines))
}

func layoutFile(inputPath, fontPath, outDir string, width, fontSize float32, justify bool, columns, maxLines int32) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	o, err := oracle.LoadShapingOracle(fontPath)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	page, err := resolvePageConfig(inputPath, width, fontSize, columns, maxLines)
	if err != nil {
		return err
	}

	doc := textshape.New(o)
	cfg := textshape.DefaultConfig(width, fontSize)
	cfg.Justify = justify
	cfg.Page = page

	paragraphs := splitParagraphs(string(raw))
	paginated, err := doc.Layout(paragraphs, cfg)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	return writePages(paginated, page.PageSize, outDir)
}

func resolvePageConfig(inputPath string, width, fontSize float32, columns, maxLines int32) (paginate.PageConfig, error) {
	cfg := paginate.PageConfig{
		MaxLinesPerColumn: []int32{maxLines},
		ColumnsPerPage:    columns,
		ColumnWidth:       width * fontSize,
		PageSize:          oracle.Size{Width: width * fontSize * float32(columns), Height: 800},
	}

	file, err := loadPageConfigFile(inputPath)
	if err != nil {
		return cfg, err
	}
	if file == nil {
		return cfg, nil
	}
	if file.ColumnWidth > 0 {
		cfg.ColumnWidth = file.ColumnWidth
	}
	cfg.ColumnSpacing = file.ColumnSpacing
	if file.PageWidth > 0 {
		cfg.PageSize.Width = file.PageWidth
	}
	if file.PageHeight > 0 {
		cfg.PageSize.Height = file.PageHeight
	}
	cfg.PageMargins = paginate.Sides{
		Left: file.MarginLeft, Top: file.MarginTop,
		Right: file.MarginRight, Bottom: file.MarginBottom,
	}
	return cfg, nil
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimRight(p, "\n")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func writePages(paginated *paginate.Paginated, pageSize oracle.Size, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	r := render.NewRenderer()
	pages := r.RenderPages(paginated, pageSize)
	for i, svg := range pages {
		name := filepath.Join(outDir, fmt.Sprintf("page-%d.svg", i+1))
		if err := os.WriteFile(name, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", name)
	}
	return nil
}
