package model

import (
	"fmt"
	"strings"
)

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// Hex returns the color as RRGGBB without a leading '#'
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// CellStyle holds optional style directives for a layout cell. Nil fields
// leave the materializer's defaults in place.
type CellStyle struct {
	Bold       bool
	FontSize   *float64 // Points
	Fill       *Color
	Foreground *Color
}

// LayoutCell is one cell of a TableLayout
type LayoutCell struct {
	Row   int
	Col   int
	Text  string
	Style CellStyle
}

// TableLayout is an abstract grid ready to be materialized as a table.
// Cells are stored row-major; geometry is in points.
type TableLayout struct {
	Rows  int
	Cols  int
	Cells []LayoutCell

	X, Y         float64 // Top-left position hint
	Width        float64
	Height       float64
	RowHeight    float64
	ColumnWidths []float64 // Sums to Width
}

// Cell returns the cell at the given row and column, or nil
func (l *TableLayout) Cell(row, col int) *LayoutCell {
	if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
		return nil
	}
	idx := row*l.Cols + col
	if idx >= len(l.Cells) {
		return nil
	}
	return &l.Cells[idx]
}

// Row returns the cells of one row
func (l *TableLayout) Row(row int) []LayoutCell {
	if row < 0 || row >= l.Rows {
		return nil
	}
	start := row * l.Cols
	end := start + l.Cols
	if end > len(l.Cells) {
		return nil
	}
	return l.Cells[start:end]
}

// ToMarkdown converts the layout to a markdown table; row 0 is the header
func (l *TableLayout) ToMarkdown() string {
	if l.Rows == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []LayoutCell) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(escapeMarkdown(cell.Text))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(l.Row(0))
	sb.WriteString("|")
	for j := 0; j < l.Cols; j++ {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")
	for i := 1; i < l.Rows; i++ {
		writeRow(l.Row(i))
	}

	return sb.String()
}

// ToCSV converts the layout to CSV format
func (l *TableLayout) ToCSV() string {
	var sb strings.Builder
	for i := 0; i < l.Rows; i++ {
		for j, cell := range l.Row(i) {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < l.Cols-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// escapeMarkdown escapes pipes and flattens newlines for table cells
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
