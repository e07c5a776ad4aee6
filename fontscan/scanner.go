package fontscan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/fontaudit/model"
)

// Warning describes a unit or element that was skipped during a scan.
// Row and Col are -1 outside of tables.
type Warning struct {
	Page    int
	Element string
	Row     int
	Col     int
	Err     error
}

func (w Warning) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "page %d", w.Page)
	if w.Element != "" {
		fmt.Fprintf(&sb, ", %s", w.Element)
	}
	if w.Row >= 0 && w.Col >= 0 {
		fmt.Fprintf(&sb, ", cell (%d,%d)", w.Row, w.Col)
	}
	fmt.Fprintf(&sb, ": %v", w.Err)
	return sb.String()
}

// Unwrap returns the underlying error
func (w Warning) Unwrap() error { return w.Err }

// Error allows a Warning to be used as an error value
func (w Warning) Error() string { return w.String() }

// Scanner walks page elements and resolves the fonts of their text.
// A Scanner is not safe for concurrent use.
type Scanner struct {
	config   Config
	warnings []Warning
}

// NewScanner creates a Scanner with the given fallback policy
func NewScanner(config Config) *Scanner {
	return &Scanner{config: config}
}

// Config returns the scanner's fallback policy
func (s *Scanner) Config() Config {
	return s.config
}

// Warnings returns the warnings recorded so far
func (s *Scanner) Warnings() []Warning {
	return append([]Warning(nil), s.warnings...)
}

func (s *Scanner) warn(page int, elem model.Element, row, col int, err error) {
	s.warnings = append(s.warnings, Warning{
		Page:    page,
		Element: elementLabel(elem),
		Row:     row,
		Col:     col,
		Err:     err,
	})
}

func elementLabel(elem model.Element) string {
	if elem.Name != "" {
		return fmt.Sprintf("%s %q", strings.ToLower(elem.Kind.String()), elem.Name)
	}
	return strings.ToLower(elem.Kind.String())
}

// ScanElement resolves the fonts used by one element and passes each to
// emit. Tables are walked cell by cell; other non-shape elements are ignored.
func (s *Scanner) ScanElement(page int, elem model.Element, emit func(ResolvedFont)) {
	switch elem.Kind {
	case model.KindShape:
		if elem.Text == nil {
			s.warn(page, elem, -1, -1, errors.New("shape has no text source"))
			return
		}
		if err := s.scanText(elem.Text, emit); err != nil {
			s.warn(page, elem, -1, -1, err)
		}

	case model.KindTable:
		s.scanTable(page, elem, emit)

	case model.KindOther:
		// no text
	}
}

func (s *Scanner) scanTable(page int, elem model.Element, emit func(ResolvedFont)) {
	if elem.Table == nil {
		s.warn(page, elem, -1, -1, errors.New("table has no cell source"))
		return
	}
	rows, cols, err := elem.Table.Size()
	if err != nil {
		s.warn(page, elem, -1, -1, fmt.Errorf("reading table size: %w", err))
		return
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell, err := elem.Table.Cell(row, col)
			if err != nil {
				s.warn(page, elem, row, col, err)
				continue
			}
			if err := s.scanText(cell, emit); err != nil {
				s.warn(page, elem, row, col, err)
			}
		}
	}
}

// scanText emits the fonts of one text-bearing unit. Blank text is skipped.
// When runs cannot be iterated, paragraph-level styles are used instead.
func (s *Scanner) scanText(text model.TextSource, emit func(ResolvedFont)) error {
	plain, err := text.PlainText()
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}
	if strings.TrimSpace(plain) == "" {
		return nil
	}

	runs, err := text.Runs()
	if err != nil {
		paras, perr := text.Paragraphs()
		if perr != nil {
			return fmt.Errorf("reading styles: %w", errors.Join(err, perr))
		}
		runs = paras
	}

	for _, run := range runs {
		if font, ok := s.config.Resolve(run); ok {
			emit(font)
		}
	}
	return nil
}
