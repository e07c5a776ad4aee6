package model

import (
	"errors"
	"math"
	"testing"
)

// ============================================================================
// Document Tests
// ============================================================================

func TestDocumentPages(t *testing.T) {
	doc := NewDocument()
	doc.AddPage(NewPage())
	doc.AddPage(NewPage())

	count, err := doc.PageCount()
	if err != nil || count != 2 {
		t.Fatalf("PageCount() = %d, %v; want 2, nil", count, err)
	}

	page, err := doc.Page(2)
	if err != nil {
		t.Fatalf("Page(2) error: %v", err)
	}
	if page.Number != 2 {
		t.Errorf("Page(2).Number = %d, want 2", page.Number)
	}

	for _, n := range []int{0, 3, -1} {
		if _, err := doc.Page(n); err == nil {
			t.Errorf("Page(%d) expected error", n)
		}
	}

	w, h := doc.PageSize()
	if w != DefaultPageWidth || h != DefaultPageHeight {
		t.Errorf("PageSize() = %v x %v, want defaults", w, h)
	}
}

func TestPageElementsOfKind(t *testing.T) {
	page := NewPage()
	page.AddElement(NewShapeElement("Title", NewText()))
	page.AddElement(NewTableElement("Table", NewTable(1, 1)))
	page.AddElement(NewOtherElement("Picture"))
	page.AddElement(NewShapeElement("Body", NewText()))

	if got := len(page.Shapes()); got != 2 {
		t.Errorf("Shapes() = %d, want 2", got)
	}
	if got := len(page.Tables()); got != 1 {
		t.Errorf("Tables() = %d, want 1", got)
	}
}

func TestElementKindString(t *testing.T) {
	tests := []struct {
		kind ElementKind
		want string
	}{
		{KindShape, "Shape"},
		{KindTable, "Table"},
		{KindOther, "Other"},
		{ElementKind(99), "Other"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// ============================================================================
// Text Tests
// ============================================================================

func TestTextRunsAndPlainText(t *testing.T) {
	text := NewText(
		NewParagraph(NewRun("Hello ", "Arial", 12), NewRun("world", "Arial", 14)),
		NewParagraph(NewRun("Second", "Times", 10)),
	)

	plain, err := text.PlainText()
	if err != nil {
		t.Fatalf("PlainText() error: %v", err)
	}
	if plain != "Hello world\nSecond" {
		t.Errorf("PlainText() = %q", plain)
	}

	runs, err := text.Runs()
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Runs() = %d runs, want 3", len(runs))
	}
	if runs[0].Length != 6 || runs[1].Size != 14 || runs[2].Family != "Times" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestTextNoRuns(t *testing.T) {
	text := NewText(NewParagraph(NewRun("x", "Arial", 12)))
	text.NoRuns = true

	if _, err := text.Runs(); !errors.Is(err, ErrRunsUnavailable) {
		t.Errorf("Runs() error = %v, want ErrRunsUnavailable", err)
	}
}

func TestTextParagraphs(t *testing.T) {
	styled := NewParagraph(NewRun("abc", "Arial", 12))
	styled.Style = TextRun{Family: "Georgia", Size: 20}

	text := NewText(
		styled,
		NewParagraph(NewRun("héllo", "Times", 9), NewRun("!", "Arial", 30)),
		NewParagraph(),
	)

	paras, err := text.Paragraphs()
	if err != nil {
		t.Fatalf("Paragraphs() error: %v", err)
	}
	if len(paras) != 3 {
		t.Fatalf("Paragraphs() = %d, want 3", len(paras))
	}
	if paras[0].Family != "Georgia" || paras[0].Size != 20 || paras[0].Length != 3 {
		t.Errorf("explicit style not used: %+v", paras[0])
	}
	if paras[1].Family != "Times" || paras[1].Length != 6 {
		t.Errorf("first-run style not used: %+v", paras[1])
	}
	if paras[2].Length != 0 {
		t.Errorf("empty paragraph length = %d, want 0", paras[2].Length)
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTableCell(t *testing.T) {
	table := NewTable(2, 2)
	if err := table.SetCell(1, 1, nil); err != nil {
		t.Fatalf("SetCell error: %v", err)
	}

	rows, cols, err := table.Size()
	if err != nil || rows != 2 || cols != 2 {
		t.Fatalf("Size() = %d, %d, %v", rows, cols, err)
	}

	if _, err := table.Cell(0, 0); err != nil {
		t.Errorf("Cell(0,0) error: %v", err)
	}
	if _, err := table.Cell(1, 1); !errors.Is(err, ErrCellUnavailable) {
		t.Errorf("Cell(1,1) error = %v, want ErrCellUnavailable", err)
	}
	if _, err := table.Cell(5, 0); err == nil {
		t.Error("Cell(5,0) expected error")
	}
	if err := table.SetCell(0, 9, NewText()); err == nil {
		t.Error("SetCell(0,9) expected error")
	}
}

func TestSparseTableCellsStartUnset(t *testing.T) {
	table := NewSparseTable(2, 3)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			if _, err := table.Cell(r, c); !errors.Is(err, ErrCellUnavailable) {
				t.Errorf("Cell(%d,%d) error = %v, want ErrCellUnavailable", r, c, err)
			}
		}
	}

	if err := table.SetCell(0, 2, NewText()); err != nil {
		t.Fatalf("SetCell error: %v", err)
	}
	if _, err := table.Cell(0, 2); err != nil {
		t.Errorf("Cell(0,2) error: %v", err)
	}
}

// ============================================================================
// Layout Tests
// ============================================================================

func sampleLayout() *TableLayout {
	texts := []string{
		"Slide", "Font", "Sizes",
		"1", "Arial", "12",
		"", "Comic | Sans", "10, 14",
	}
	layout := &TableLayout{Rows: 3, Cols: 3}
	for i, text := range texts {
		layout.Cells = append(layout.Cells, LayoutCell{Row: i / 3, Col: i % 3, Text: text})
	}
	return layout
}

func TestLayoutCell(t *testing.T) {
	layout := sampleLayout()

	if c := layout.Cell(1, 1); c == nil || c.Text != "Arial" {
		t.Errorf("Cell(1,1) = %+v, want Arial", c)
	}
	if c := layout.Cell(3, 0); c != nil {
		t.Errorf("Cell(3,0) = %+v, want nil", c)
	}
	if row := layout.Row(2); len(row) != 3 || row[2].Text != "10, 14" {
		t.Errorf("Row(2) = %+v", row)
	}
	if row := layout.Row(-1); row != nil {
		t.Errorf("Row(-1) = %+v, want nil", row)
	}
}

func TestLayoutToMarkdown(t *testing.T) {
	want := "| Slide | Font | Sizes |\n" +
		"|---|---|---|\n" +
		"| 1 | Arial | 12 |\n" +
		"|  | Comic \\| Sans | 10, 14 |\n"
	if got := sampleLayout().ToMarkdown(); got != want {
		t.Errorf("ToMarkdown() =\n%s\nwant\n%s", got, want)
	}

	empty := &TableLayout{}
	if got := empty.ToMarkdown(); got != "" {
		t.Errorf("empty ToMarkdown() = %q", got)
	}
}

func TestLayoutToCSV(t *testing.T) {
	want := "Slide,Font,Sizes\n" +
		"1,Arial,12\n" +
		",Comic | Sans,\"10, 14\"\n"
	if got := sampleLayout().ToCSV(); got != want {
		t.Errorf("ToCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestColorHex(t *testing.T) {
	c := Color{R: 0x42, G: 0x85, B: 0xF4}
	if got := c.Hex(); got != "4285F4" {
		t.Errorf("Hex() = %q, want 4285F4", got)
	}
}

// ============================================================================
// Geometry Tests
// ============================================================================

func TestUnitConversion(t *testing.T) {
	if got := EMUToPoints(9144000); math.Abs(got-720) > 0.0001 {
		t.Errorf("EMUToPoints(9144000) = %v, want 720", got)
	}
	if got := PointsToEMU(720); got != 9144000 {
		t.Errorf("PointsToEMU(720) = %v, want 9144000", got)
	}
	if got := PointsToEMU(-1); got != -12700 {
		t.Errorf("PointsToEMU(-1) = %v, want -12700", got)
	}
}

func TestBBox(t *testing.T) {
	b := NewBBox(10, 20, 100, 50)
	if b.Right() != 110 || b.Bottom() != 70 {
		t.Errorf("Right/Bottom = %v/%v", b.Right(), b.Bottom())
	}
	if b.IsZero() || !(BBox{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}
