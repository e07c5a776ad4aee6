package summary

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/model"
)

func twoPageReport() fontscan.Report {
	return fontscan.Report{
		{PageNumber: 1, Fonts: []fontscan.FontUsage{{Family: "Arial", Sizes: []int{12}}}},
		{PageNumber: 2, Fonts: []fontscan.FontUsage{
			{Family: "Times", Sizes: []int{10, 14}},
			{Family: "Courier", Sizes: []int{9}},
		}},
	}
}

func cellTexts(layout model.TableLayout) [][]string {
	var rows [][]string
	for r := 0; r < layout.Rows; r++ {
		var row []string
		for _, cell := range layout.Row(r) {
			row = append(row, cell.Text)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestBuildGroupsPages(t *testing.T) {
	layout := Build(twoPageReport(), DefaultStyle(), 720)

	want := [][]string{
		{"Slide", "Font", "Sizes"},
		{"1", "Arial", "12"},
		{"2", "Times", "10, 14"},
		{"", "Courier", "9"},
	}
	if diff := cmp.Diff(want, cellTexts(layout)); diff != "" {
		t.Errorf("cell texts mismatch (-want +got):\n%s", diff)
	}
	if layout.Cols != 3 {
		t.Errorf("Cols = %d, want 3", layout.Cols)
	}
}

func TestBuildOneRowPerFamily(t *testing.T) {
	report := fontscan.Report{
		{PageNumber: 1, Fonts: []fontscan.FontUsage{{Family: "Arial", Sizes: []int{12}}}},
		{PageNumber: 2, Fonts: []fontscan.FontUsage{{Family: "Times", Sizes: []int{10, 14}}}},
	}
	layout := Build(report, DefaultStyle(), 720)
	if layout.Rows != 3 {
		t.Fatalf("Rows = %d, want 3", layout.Rows)
	}
	if got := layout.Cell(1, 0).Text; got != "1" {
		t.Errorf("row 1 label = %q, want 1", got)
	}
	if got := layout.Cell(2, 0).Text; got != "2" {
		t.Errorf("row 2 label = %q, want 2", got)
	}
	if got := layout.Cell(2, 2).Text; got != "10, 14" {
		t.Errorf("row 2 sizes = %q", got)
	}
}

func TestBuildRowCount(t *testing.T) {
	reports := []fontscan.Report{
		nil,
		twoPageReport(),
		{{PageNumber: 7, Fonts: make([]fontscan.FontUsage, 5)}},
	}
	for i, report := range reports {
		layout := Build(report, DefaultStyle(), 720)
		want := 1 + report.FontCount()
		if layout.Rows != want || RowCount(report) != want {
			t.Errorf("report %d: Rows = %d, RowCount = %d, want %d", i, layout.Rows, RowCount(report), want)
		}
		if len(layout.Cells) != want*Columns {
			t.Errorf("report %d: %d cells, want %d", i, len(layout.Cells), want*Columns)
		}
		for idx, cell := range layout.Cells {
			if cell.Row != idx/Columns || cell.Col != idx%Columns {
				t.Errorf("report %d: cell %d at (%d,%d)", i, idx, cell.Row, cell.Col)
			}
		}
	}
}

func TestBuildStyles(t *testing.T) {
	style := DefaultStyle()
	layout := Build(twoPageReport(), style, 720)

	for _, cell := range layout.Row(0) {
		if !cell.Style.Bold {
			t.Errorf("header cell %d not bold", cell.Col)
		}
		if cell.Style.FontSize == nil || *cell.Style.FontSize != 12 {
			t.Errorf("header cell %d font size = %v", cell.Col, cell.Style.FontSize)
		}
		if *cell.Style.Fill != style.HeaderFill || *cell.Style.Foreground != style.HeaderForeground {
			t.Errorf("header cell %d colors = %+v", cell.Col, cell.Style)
		}
	}

	for r := 1; r < layout.Rows; r++ {
		want := style.OddRowFill
		if r%2 == 0 {
			want = style.EvenRowFill
		}
		for _, cell := range layout.Row(r) {
			if cell.Style.Bold || cell.Style.Foreground != nil {
				t.Errorf("body cell (%d,%d) has header styling", r, cell.Col)
			}
			if cell.Style.Fill == nil || *cell.Style.Fill != want {
				t.Errorf("body cell (%d,%d) fill = %v, want %v", r, cell.Col, cell.Style.Fill, want)
			}
		}
	}
}

func TestBuildCustomStyle(t *testing.T) {
	style := DefaultStyle()
	style.PageLabel = "Page"
	style.PageFormat = func(page int) string { return fmt.Sprintf("Slide %d", page) }
	style.SizeSeparator = " / "
	style.SizeSuffix = "pt"
	style.HeaderFontSize = 0

	layout := Build(twoPageReport(), style, 720)
	if got := layout.Cell(0, 0).Text; got != "Page" {
		t.Errorf("header = %q", got)
	}
	if got := layout.Cell(2, 0).Text; got != "Slide 2" {
		t.Errorf("page label = %q", got)
	}
	if got := layout.Cell(2, 2).Text; got != "10pt / 14pt" {
		t.Errorf("sizes = %q", got)
	}
	if layout.Cell(0, 0).Style.FontSize != nil {
		t.Error("zero header font size should leave size unset")
	}
}

func TestBuildGeometry(t *testing.T) {
	tests := []struct {
		name      string
		maxWidth  float64
		pageWidth float64
		wantWidth float64
		wantX     float64
	}{
		{"bounded by max", 500, 720, 500, 110},
		{"bounded by page", 500, 400, 400, 0},
		{"no max", 0, 720, 720, 0},
		{"unknown page width", 500, 0, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := DefaultStyle()
			style.MaxWidth = tt.maxWidth
			layout := Build(twoPageReport(), style, tt.pageWidth)

			if layout.Width != tt.wantWidth {
				t.Errorf("Width = %v, want %v", layout.Width, tt.wantWidth)
			}
			if layout.X != tt.wantX {
				t.Errorf("X = %v, want %v", layout.X, tt.wantX)
			}
			if layout.Height != style.RowHeight*4 {
				t.Errorf("Height = %v, want %v", layout.Height, style.RowHeight*4)
			}
			sum := 0.0
			for _, w := range layout.ColumnWidths {
				sum += w
			}
			if math.Abs(sum-layout.Width) > 1e-9 {
				t.Errorf("column widths sum to %v, want %v", sum, layout.Width)
			}
		})
	}
}

func TestColumnWidths(t *testing.T) {
	if diff := cmp.Diff([]float64{100, 200, 200}, columnWidths(500, [Columns]float64{1, 2, 2})); diff != "" {
		t.Errorf("weighted widths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 100, 100}, columnWidths(300, [Columns]float64{})); diff != "" {
		t.Errorf("even widths mismatch (-want +got):\n%s", diff)
	}
}
