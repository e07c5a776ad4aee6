package model

// ElementKind represents the kind of a page element
type ElementKind int

const (
	KindOther ElementKind = iota
	KindShape
	KindTable
)

func (k ElementKind) String() string {
	switch k {
	case KindShape:
		return "Shape"
	case KindTable:
		return "Table"
	default:
		return "Other"
	}
}

// Element is a placeable object on a page. Exactly one of Text and Table is
// set, matching Kind; KindOther elements carry neither.
type Element struct {
	Kind  ElementKind
	Name  string // Provider-assigned name, used in diagnostics
	BBox  BBox   // Position in points, zero when unknown
	Text  TextSource
	Table TableSource
}

// NewShapeElement creates a text-bearing shape element
func NewShapeElement(name string, text TextSource) Element {
	return Element{Kind: KindShape, Name: name, Text: text}
}

// NewTableElement creates a table element
func NewTableElement(name string, table TableSource) Element {
	return Element{Kind: KindTable, Name: name, Table: table}
}

// NewOtherElement creates an element that carries no text
func NewOtherElement(name string) Element {
	return Element{Kind: KindOther, Name: name}
}

// TextSource gives access to the text of a shape or table cell
type TextSource interface {
	// PlainText returns the unstyled text content.
	PlainText() (string, error)
	// Runs returns the styled runs in reading order, or ErrRunsUnavailable.
	Runs() ([]TextRun, error)
	// Paragraphs returns one run per paragraph carrying the paragraph-level
	// style, with Length set to the paragraph's text length.
	Paragraphs() ([]TextRun, error)
}

// TableSource gives access to the cells of a table
type TableSource interface {
	Size() (rows, cols int, err error)
	Cell(row, col int) (TextSource, error)
}
