// Package render exports a summary table layout to standalone formats.
//
// The layout produced by the summary package is normally inserted into
// the source document. The renderers here write the same table, with its
// fills, colors and column widths, as PDF, HTML, Markdown, CSV or styled
// terminal text.
package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/fontaudit/model"
)

// Renderer converts a table layout into an output format.
type Renderer interface {
	Render(layout *model.TableLayout) ([]byte, error)
	// Extension returns the file extension, including the dot.
	Extension() string
}

var renderers = map[string]func() Renderer{
	"pdf":      func() Renderer { return NewPDFRenderer() },
	"html":     func() Renderer { return NewHTMLRenderer() },
	"md":       func() Renderer { return NewMarkdownRenderer() },
	"markdown": func() Renderer { return NewMarkdownRenderer() },
	"csv":      func() Renderer { return NewCSVRenderer() },
	"text":     func() Renderer { return NewTerminalRenderer() },
	"txt":      func() Renderer { return NewTerminalRenderer() },
}

// Names returns the accepted renderer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the renderer registered under name (case-insensitive).
func ByName(name string) (Renderer, error) {
	newFn, ok := renderers[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return newFn(), nil
}

// ForFile picks a renderer from the extension of filename.
func ForFile(filename string) (Renderer, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension", filename)
	}
	return ByName(ext)
}

// columnWidths returns the layout's column widths, falling back to equal
// columns when they are missing or inconsistent.
func columnWidths(layout *model.TableLayout, total float64) []float64 {
	widths := make([]float64, layout.Cols)
	var sum float64
	if len(layout.ColumnWidths) == layout.Cols {
		for _, w := range layout.ColumnWidths {
			sum += w
		}
	}
	for i := range widths {
		if sum > 0 {
			widths[i] = layout.ColumnWidths[i] / sum * total
		} else {
			widths[i] = total / float64(layout.Cols)
		}
	}
	return widths
}

func checkLayout(layout *model.TableLayout) error {
	if layout == nil || layout.Rows == 0 || layout.Cols == 0 {
		return errors.New("empty table layout")
	}
	if len(layout.Cells) != layout.Rows*layout.Cols {
		return fmt.Errorf("table layout has %d cells, want %d", len(layout.Cells), layout.Rows*layout.Cols)
	}
	return nil
}
