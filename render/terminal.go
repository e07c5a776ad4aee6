package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tsawler/fontaudit/model"
)

// TerminalRenderer renders a layout as a bordered lipgloss table, using the
// layout's fills and foregrounds as cell colors. Colors are dropped
// automatically when the output is not a color terminal.
type TerminalRenderer struct{}

// NewTerminalRenderer creates a TerminalRenderer.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// Extension returns ".txt".
func (r *TerminalRenderer) Extension() string { return ".txt" }

// Render returns the table text followed by a newline.
func (r *TerminalRenderer) Render(layout *model.TableLayout) ([]byte, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}
	return []byte(r.String(layout) + "\n"), nil
}

// String returns the table text.
func (r *TerminalRenderer) String(layout *model.TableLayout) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(rowTexts(layout, 0)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			// The header is reported as table.HeaderRow, body rows from 0.
			cell := layout.Cell(row-table.HeaderRow, col)
			return cellStyle(cell)
		})
	for i := 1; i < layout.Rows; i++ {
		t.Row(rowTexts(layout, i)...)
	}
	return t.Render()
}

func rowTexts(layout *model.TableLayout, row int) []string {
	cells := layout.Row(row)
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = c.Text
	}
	return texts
}

func cellStyle(cell *model.LayoutCell) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if cell == nil {
		return s
	}
	if cell.Style.Bold {
		s = s.Bold(true)
	}
	if cell.Style.Fill != nil {
		s = s.Background(lipgloss.Color("#" + cell.Style.Fill.Hex()))
	}
	if cell.Style.Foreground != nil {
		s = s.Foreground(lipgloss.Color("#" + cell.Style.Foreground.Hex()))
	}
	return s
}
