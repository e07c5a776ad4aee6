package model

import "fmt"

// Default slide dimensions in points (10" x 7.5").
const (
	DefaultPageWidth  = 720.0
	DefaultPageHeight = 540.0
)

// Document represents a complete document snapshot with its pages
type Document struct {
	Metadata Metadata
	Pages    []*Page

	// Page size in points, shared by every page of a presentation
	Width  float64
	Height float64
}

// Metadata contains document-level information
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// NewDocument creates a new empty document with the default slide size
func NewDocument() *Document {
	return &Document{
		Pages:  make([]*Page, 0),
		Width:  DefaultPageWidth,
		Height: DefaultPageHeight,
	}
}

// AddPage adds a page to the document and numbers it
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages
func (d *Document) PageCount() (int, error) {
	return len(d.Pages), nil
}

// Page returns a page by number (1-indexed)
func (d *Document) Page(number int) (*Page, error) {
	if number < 1 || number > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range (1-%d)", number, len(d.Pages))
	}
	return d.Pages[number-1], nil
}

// PageSize returns the page dimensions in points
func (d *Document) PageSize() (width, height float64) {
	return d.Width, d.Height
}
