package fontscan

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/fontaudit/model"
)

// brokenText is a TextSource whose reads can be made to fail.
type brokenText struct {
	plainErr error
	runsErr  error
	parasErr error
	runs     []model.TextRun
}

func (b *brokenText) PlainText() (string, error) {
	if b.plainErr != nil {
		return "", b.plainErr
	}
	return "text", nil
}

func (b *brokenText) Runs() ([]model.TextRun, error) {
	if b.runsErr != nil {
		return nil, b.runsErr
	}
	return b.runs, nil
}

func (b *brokenText) Paragraphs() ([]model.TextRun, error) {
	if b.parasErr != nil {
		return nil, b.parasErr
	}
	return []model.TextRun{model.NewRun("text", "ParagraphFont", 20)}, nil
}

// flakyTable wraps a table and fails reading the listed cells.
type flakyTable struct {
	*model.Table
	broken  map[[2]int]bool
	sizeErr error
}

func (f *flakyTable) Size() (int, int, error) {
	if f.sizeErr != nil {
		return 0, 0, f.sizeErr
	}
	return f.Table.Size()
}

func (f *flakyTable) Cell(row, col int) (model.TextSource, error) {
	if f.broken[[2]int{row, col}] {
		return nil, errors.New("cell read failed")
	}
	return f.Table.Cell(row, col)
}

func collect(s *Scanner, elem model.Element) []ResolvedFont {
	var fonts []ResolvedFont
	s.ScanElement(1, elem, func(f ResolvedFont) { fonts = append(fonts, f) })
	return fonts
}

func shape(runs ...model.TextRun) model.Element {
	return model.NewShapeElement("Shape", model.NewText(model.NewParagraph(runs...)))
}

func TestScanShape(t *testing.T) {
	s := NewScanner(DefaultConfig())
	fonts := collect(s, shape(
		model.NewRun("Hello ", "Arial", 12),
		model.NewRun("", "Ignored", 99),
		model.NewRun("world", "", 0),
	))

	want := []ResolvedFont{{"Arial", 12}, {"Default", 11}}
	if len(fonts) != len(want) {
		t.Fatalf("got %d fonts, want %d: %+v", len(fonts), len(want), fonts)
	}
	for i := range want {
		if fonts[i] != want[i] {
			t.Errorf("font %d = %+v, want %+v", i, fonts[i], want[i])
		}
	}
}

func TestScanBlankShapeSkipped(t *testing.T) {
	s := NewScanner(DefaultConfig())
	fonts := collect(s, shape(model.NewRun("  \t", "Arial", 12), model.NewRun("\n", "Arial", 14)))
	if len(fonts) != 0 {
		t.Errorf("blank shape emitted %+v", fonts)
	}
	if len(s.Warnings()) != 0 {
		t.Errorf("blank shape produced warnings: %v", s.Warnings())
	}
}

func TestScanOtherIgnored(t *testing.T) {
	s := NewScanner(DefaultConfig())
	if fonts := collect(s, model.NewOtherElement("Picture 3")); len(fonts) != 0 {
		t.Errorf("other element emitted %+v", fonts)
	}
}

func TestScanParagraphFallback(t *testing.T) {
	s := NewScanner(DefaultConfig())
	text := &brokenText{runsErr: model.ErrRunsUnavailable}
	fonts := collect(s, model.NewShapeElement("Body", text))

	if len(fonts) != 1 || fonts[0] != (ResolvedFont{"ParagraphFont", 20}) {
		t.Errorf("paragraph fallback = %+v", fonts)
	}
	if len(s.Warnings()) != 0 {
		t.Errorf("fallback should not warn: %v", s.Warnings())
	}
}

func TestScanUnreadableShape(t *testing.T) {
	tests := []struct {
		name string
		text *brokenText
	}{
		{"plain text fails", &brokenText{plainErr: errors.New("boom")}},
		{"runs and paragraphs fail", &brokenText{runsErr: errors.New("runs"), parasErr: errors.New("paras")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(DefaultConfig())
			fonts := collect(s, model.NewShapeElement("Body", tt.text))
			if len(fonts) != 0 {
				t.Errorf("emitted %+v", fonts)
			}
			warnings := s.Warnings()
			if len(warnings) != 1 {
				t.Fatalf("got %d warnings, want 1", len(warnings))
			}
			if !strings.Contains(warnings[0].String(), `shape "Body"`) {
				t.Errorf("warning = %q", warnings[0].String())
			}
		})
	}
}

func TestScanShapeWithoutSource(t *testing.T) {
	s := NewScanner(DefaultConfig())
	collect(s, model.Element{Kind: model.KindShape, Name: "Broken"})
	if len(s.Warnings()) != 1 {
		t.Errorf("got %d warnings, want 1", len(s.Warnings()))
	}
}

func fillTable(rows, cols int) *model.Table {
	table := model.NewTable(rows, cols)
	families := []string{"Arial", "Times", "Courier", "Georgia"}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			family := families[(r*cols+c)%len(families)]
			table.SetCell(r, c, model.NewText(model.NewParagraph(model.NewRun("x", family, 10))))
		}
	}
	return table
}

func TestScanTableSkipsBrokenCell(t *testing.T) {
	s := NewScanner(DefaultConfig())
	table := &flakyTable{Table: fillTable(2, 2), broken: map[[2]int]bool{{0, 1}: true}}
	fonts := collect(s, model.NewTableElement("Table 1", table))

	if len(fonts) != 3 {
		t.Fatalf("got %d fonts, want 3: %+v", len(fonts), fonts)
	}
	for _, f := range fonts {
		if f.Family == "Times" {
			t.Errorf("broken cell (0,1) was scanned")
		}
	}

	warnings := s.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Row != 0 || warnings[0].Col != 1 || warnings[0].Page != 1 {
		t.Errorf("warning = %+v", warnings[0])
	}
}

func TestScanTableUnreadableSize(t *testing.T) {
	s := NewScanner(DefaultConfig())
	table := &flakyTable{Table: fillTable(1, 1), sizeErr: errors.New("malformed grid")}
	if fonts := collect(s, model.NewTableElement("Table 1", table)); len(fonts) != 0 {
		t.Errorf("emitted %+v", fonts)
	}
	if len(s.Warnings()) != 1 {
		t.Errorf("got %d warnings, want 1", len(s.Warnings()))
	}
}

func TestScanTableNilCell(t *testing.T) {
	s := NewScanner(DefaultConfig())
	table := fillTable(1, 2)
	table.SetCell(0, 0, nil)
	fonts := collect(s, model.NewTableElement("Table 1", table))

	if len(fonts) != 1 || fonts[0].Family != "Times" {
		t.Errorf("fonts = %+v", fonts)
	}
	if w := s.Warnings(); len(w) != 1 || !errors.Is(w[0], model.ErrCellUnavailable) {
		t.Errorf("warnings = %v", w)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Page: 3, Element: `table "T"`, Row: 1, Col: 2, Err: errors.New("bad")}
	if got := w.String(); got != `page 3, table "T", cell (1,2): bad` {
		t.Errorf("String() = %q", got)
	}
	w = Warning{Page: 1, Row: -1, Col: -1, Err: errors.New("bad")}
	if got := w.Error(); got != "page 1: bad" {
		t.Errorf("Error() = %q", got)
	}
}
