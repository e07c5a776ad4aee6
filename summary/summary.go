// Package summary turns a font report into a styled three-column table
// layout: page label, font family, and the sizes used.
package summary

import (
	"math"
	"strconv"

	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/model"
)

// Columns is the fixed column count of a summary table.
const Columns = 3

// Style controls the labels, colors and geometry of a summary table.
// Geometry is in points.
type Style struct {
	// Header labels for the page, family and sizes columns
	PageLabel   string
	FamilyLabel string
	SizesLabel  string

	// PageFormat formats the page number shown in column 0; it receives
	// the 1-based page number. Nil uses the bare number.
	PageFormat func(page int) string

	SizeSeparator string
	SizeSuffix    string // Appended to every size, e.g. "pt"

	HeaderFontSize   float64
	HeaderFill       model.Color
	HeaderForeground model.Color
	OddRowFill       model.Color // Rows 1, 3, 5, ...
	EvenRowFill      model.Color // Rows 2, 4, 6, ...

	MaxWidth     float64
	RowHeight    float64
	Top          float64
	ColumnWeight [Columns]float64
}

// DefaultStyle returns the default summary table style
func DefaultStyle() Style {
	return Style{
		PageLabel:        "Slide",
		FamilyLabel:      "Font",
		SizesLabel:       "Sizes",
		SizeSeparator:    ", ",
		HeaderFontSize:   12,
		HeaderFill:       model.Color{R: 0x42, G: 0x85, B: 0xF4},
		HeaderForeground: model.Color{R: 0xFF, G: 0xFF, B: 0xFF},
		OddRowFill:       model.Color{R: 0xFF, G: 0xFF, B: 0xFF},
		EvenRowFill:      model.Color{R: 0xF3, G: 0xF3, B: 0xF3},
		MaxWidth:         500,
		RowHeight:        24,
		Top:              40,
		ColumnWeight:     [Columns]float64{1, 2, 2},
	}
}

// RowCount returns the number of rows Build produces for report: one header
// row plus one row per font usage.
func RowCount(report fontscan.Report) int {
	return 1 + report.FontCount()
}

// Build lays out report as a table no wider than pageWidth.
func Build(report fontscan.Report, style Style, pageWidth float64) model.TableLayout {
	rows := RowCount(report)
	layout := model.TableLayout{
		Rows:      rows,
		Cols:      Columns,
		Cells:     make([]model.LayoutCell, 0, rows*Columns),
		RowHeight: style.RowHeight,
	}

	header := model.CellStyle{
		Bold:       true,
		Fill:       colorPtr(style.HeaderFill),
		Foreground: colorPtr(style.HeaderForeground),
	}
	if style.HeaderFontSize > 0 {
		header.FontSize = floatPtr(style.HeaderFontSize)
	}
	for col, label := range [Columns]string{style.PageLabel, style.FamilyLabel, style.SizesLabel} {
		layout.Cells = append(layout.Cells, model.LayoutCell{Row: 0, Col: col, Text: label, Style: header})
	}

	row := 1
	for _, page := range report {
		for i, usage := range page.Fonts {
			body := model.CellStyle{Fill: colorPtr(style.rowFill(row))}

			var label string
			if i == 0 {
				label = style.pageText(page.PageNumber)
			}
			texts := [Columns]string{
				label,
				usage.Family,
				usage.SizesString(style.SizeSeparator, style.SizeSuffix),
			}
			for col, text := range texts {
				layout.Cells = append(layout.Cells, model.LayoutCell{Row: row, Col: col, Text: text, Style: body})
			}
			row++
		}
	}

	layout.Width = tableWidth(style.MaxWidth, pageWidth)
	layout.X = math.Max(0, (pageWidth-layout.Width)/2)
	layout.Y = style.Top
	layout.Height = style.RowHeight * float64(rows)
	layout.ColumnWidths = columnWidths(layout.Width, style.ColumnWeight)
	return layout
}

func (s Style) rowFill(row int) model.Color {
	if row%2 == 0 {
		return s.EvenRowFill
	}
	return s.OddRowFill
}

func (s Style) pageText(page int) string {
	if s.PageFormat != nil {
		return s.PageFormat(page)
	}
	return strconv.Itoa(page)
}

// tableWidth bounds maxWidth by the page width. A non-positive maxWidth
// means the full page width.
func tableWidth(maxWidth, pageWidth float64) float64 {
	if pageWidth <= 0 {
		return math.Max(maxWidth, 0)
	}
	if maxWidth <= 0 || maxWidth > pageWidth {
		return pageWidth
	}
	return maxWidth
}

func columnWidths(width float64, weights [Columns]float64) []float64 {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	widths := make([]float64, Columns)
	for i, w := range weights {
		switch {
		case total == 0:
			widths[i] = width / Columns
		case w > 0:
			widths[i] = width * w / total
		}
	}
	return widths
}

func floatPtr(f float64) *float64 { return &f }

func colorPtr(c model.Color) *model.Color { return &c }
