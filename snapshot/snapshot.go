// Package snapshot reads and writes JSON document snapshots: a neutral
// page/element/paragraph/run export of a document from another editor.
//
// A snapshot looks like:
//
//	{
//	  "title": "Quarterly Review",
//	  "pageWidth": 720,
//	  "pageHeight": 405,
//	  "pages": [
//	    {"elements": [
//	      {"kind": "shape", "name": "Title 1", "paragraphs": [
//	        {"runs": [{"text": "Hello", "fontFamily": "Arial", "fontSize": 24}]}
//	      ]},
//	      {"kind": "table", "rows": [[{"paragraphs": []}, null]]},
//	      {"kind": "image"}
//	    ]}
//	  ]
//	}
//
// fontFamily and fontSize may be omitted or null when the exporting editor
// could not resolve them.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/fontaudit/model"
)

// Element kinds understood by the reader. Any other kind is carried as
// model.KindOther.
const (
	KindShape = "shape"
	KindTable = "table"
)

// TableName is the name given to inserted tables.
const TableName = "Font Summary"

// File is the root of a snapshot document.
type File struct {
	Title      string  `json:"title,omitempty"`
	Author     string  `json:"author,omitempty"`
	PageWidth  float64 `json:"pageWidth,omitempty"`  // Points
	PageHeight float64 `json:"pageHeight,omitempty"` // Points
	Pages      []Page  `json:"pages"`

	path string
}

// Page is one page of a snapshot.
type Page struct {
	Elements []Element `json:"elements"`
}

// Element is a shape, table or other page object.
type Element struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Bounds *Rect  `json:"bounds,omitempty"`

	// Shapes
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
	// RunsUnavailable marks text whose exporter only knew paragraph styles.
	RunsUnavailable bool `json:"runsUnavailable,omitempty"`

	// Tables; a null cell could not be exported.
	Rows [][]*Cell `json:"rows,omitempty"`
}

// Rect is a position and size in points.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Paragraph is a sequence of runs with optional paragraph-level style.
type Paragraph struct {
	FontFamily *Family `json:"fontFamily,omitempty"`
	FontSize   *Size   `json:"fontSize,omitempty"`
	Runs       []Run   `json:"runs"`
}

// Run is a styled span of text.
type Run struct {
	Text       string  `json:"text"`
	FontFamily *Family `json:"fontFamily,omitempty"`
	FontSize   *Size   `json:"fontSize,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Color      string  `json:"color,omitempty"` // RRGGBB
}

// Family is a font family name. A value of any other JSON type decodes as
// unresolved ("") rather than rejecting the snapshot.
type Family string

func (f *Family) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		name = ""
	}
	*f = Family(name)
	return nil
}

// Size is a font size in points. A value that is not a JSON number decodes
// as unresolved (0) rather than rejecting the snapshot.
type Size float64

func (s *Size) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		v = 0
	}
	*s = Size(v)
	return nil
}

// Cell is a table cell.
type Cell struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Fill       string      `json:"fill,omitempty"` // RRGGBB
}

// Load opens and parses a snapshot file.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	f.path = filename
	return f, nil
}

// Parse decodes a snapshot. Unknown fields are rejected so that misspelled
// keys do not silently drop style data.
func Parse(r io.Reader) (*File, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f.Pages == nil {
		return nil, errors.New(`missing "pages"`)
	}
	return &f, nil
}

// PageCount returns the number of pages.
func (f *File) PageCount() (int, error) {
	return len(f.Pages), nil
}

// PageSize returns the page size in points, defaulting to a 4:3 slide.
func (f *File) PageSize() (width, height float64) {
	width, height = f.PageWidth, f.PageHeight
	if width <= 0 {
		width = model.DefaultPageWidth
	}
	if height <= 0 {
		height = model.DefaultPageHeight
	}
	return width, height
}

// Page converts the page with the given 1-based number.
func (f *File) Page(number int) (*model.Page, error) {
	if number < 1 || number > len(f.Pages) {
		return nil, fmt.Errorf("page %d out of range (1-%d)", number, len(f.Pages))
	}

	page := model.NewPage()
	page.Number = number
	for _, e := range f.Pages[number-1].Elements {
		page.AddElement(e.toModel())
	}
	return page, nil
}

func (e Element) toModel() model.Element {
	var elem model.Element
	switch strings.ToLower(e.Kind) {
	case KindShape:
		text := toText(e.Paragraphs)
		text.NoRuns = e.RunsUnavailable
		elem = model.NewShapeElement(e.Name, text)
	case KindTable:
		elem = model.NewTableElement(e.Name, toTable(e.Rows))
	default:
		elem = model.NewOtherElement(e.Name)
	}
	if e.Bounds != nil {
		elem.BBox = model.NewBBox(e.Bounds.X, e.Bounds.Y, e.Bounds.Width, e.Bounds.Height)
	}
	return elem
}

func toTable(rows [][]*Cell) *model.Table {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	table := model.NewSparseTable(len(rows), cols)
	for i, row := range rows {
		for j, cell := range row {
			if cell != nil {
				table.SetCell(i, j, toText(cell.Paragraphs))
			}
		}
	}
	return table
}

func toText(paragraphs []Paragraph) *model.Text {
	text := model.NewText()
	for _, p := range paragraphs {
		para := model.Paragraph{
			Style: model.TextRun{Family: deref(p.FontFamily), Size: derefSize(p.FontSize)},
		}
		for _, r := range p.Runs {
			para.Runs = append(para.Runs, model.NewRun(r.Text, deref(r.FontFamily), derefSize(r.FontSize)))
		}
		text.Paras = append(text.Paras, para)
	}
	return text
}

func deref(f *Family) string {
	if f == nil {
		return ""
	}
	return string(*f)
}

func derefSize(s *Size) float64 {
	if s == nil {
		return 0
	}
	return float64(*s)
}

// Document converts every page into a model.Document.
func (f *File) Document() (*model.Document, error) {
	doc := model.NewDocument()
	doc.Metadata.Title = f.Title
	doc.Metadata.Author = f.Author
	doc.Width, doc.Height = f.PageSize()
	for i := range f.Pages {
		page, err := f.Page(i + 1)
		if err != nil {
			return nil, err
		}
		doc.AddPage(page)
	}
	return doc, nil
}

// InsertTable appends layout to the given page as a table element.
func (f *File) InsertTable(page int, layout *model.TableLayout) error {
	if layout == nil || layout.Rows == 0 || layout.Cols == 0 {
		return errors.New("empty table layout")
	}
	if page < 1 || page > len(f.Pages) {
		return fmt.Errorf("page %d out of range (1-%d)", page, len(f.Pages))
	}

	rows := make([][]*Cell, layout.Rows)
	for r := range rows {
		rows[r] = make([]*Cell, layout.Cols)
		for c := range rows[r] {
			rows[r][c] = fromLayoutCell(layout.Cell(r, c))
		}
	}

	p := &f.Pages[page-1]
	p.Elements = append(p.Elements, Element{
		Kind:   KindTable,
		Name:   TableName,
		Bounds: &Rect{X: layout.X, Y: layout.Y, Width: layout.Width, Height: layout.Height},
		Rows:   rows,
	})
	return nil
}

func fromLayoutCell(lc *model.LayoutCell) *Cell {
	cell := &Cell{Paragraphs: []Paragraph{{Runs: []Run{}}}}
	if lc == nil {
		return cell
	}
	if lc.Style.Fill != nil {
		cell.Fill = lc.Style.Fill.Hex()
	}
	if lc.Text == "" {
		return cell
	}

	run := Run{Text: lc.Text, Bold: lc.Style.Bold}
	if lc.Style.FontSize != nil {
		size := Size(*lc.Style.FontSize)
		run.FontSize = &size
	}
	if lc.Style.Foreground != nil {
		run.Color = lc.Style.Foreground.Hex()
	}
	cell.Paragraphs[0].Runs = append(cell.Paragraphs[0].Runs, run)
	return cell
}

// Save writes the snapshot as indented JSON to filename, or back to the
// file it was loaded from when filename is empty. The data is written to a
// temporary file and renamed into place.
func (f *File) Save(filename string) error {
	if filename == "" {
		filename = f.path
	}
	if filename == "" {
		return errors.New("no destination for snapshot")
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".fontaudit-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("replacing %s: %w", filename, err)
	}
	return nil
}

// Close is a no-op; snapshots are read fully by Load.
func (f *File) Close() error {
	return nil
}
