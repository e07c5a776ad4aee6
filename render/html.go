package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/fontaudit/model"
)

// HTMLRenderer renders a layout as a standalone HTML page with inline
// styles. Row 0 becomes the table head.
type HTMLRenderer struct {
	Title string
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{Title: "Font summary"}
}

// Extension returns ".html".
func (r *HTMLRenderer) Extension() string { return ".html" }

// Render builds the document as an html.Node tree and serializes it.
// Cell text is escaped by the serializer.
func (r *HTMLRenderer) Render(layout *model.TableLayout) ([]byte, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element(atom.Title)
	title.AppendChild(text(r.Title))
	head.AppendChild(title)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(r.table(layout))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) table(layout *model.TableLayout) *html.Node {
	tableStyle := "border-collapse: collapse; font-family: sans-serif"
	if layout.Width > 0 {
		tableStyle += fmt.Sprintf("; width: %spt", formatPoints(layout.Width))
	}
	table := element(atom.Table, html.Attribute{Key: "style", Val: tableStyle})

	if len(layout.ColumnWidths) == layout.Cols && layout.Width > 0 {
		group := element(atom.Colgroup)
		for _, w := range columnWidths(layout, 100) {
			group.AppendChild(element(atom.Col, html.Attribute{Key: "style", Val: "width: " + formatPoints(w) + "%"}))
		}
		table.AppendChild(group)
	}

	thead := element(atom.Thead)
	thead.AppendChild(r.row(layout, 0, atom.Th))
	table.AppendChild(thead)

	if layout.Rows > 1 {
		tbody := element(atom.Tbody)
		for i := 1; i < layout.Rows; i++ {
			tbody.AppendChild(r.row(layout, i, atom.Td))
		}
		table.AppendChild(tbody)
	}
	return table
}

func (r *HTMLRenderer) row(layout *model.TableLayout, i int, cellAtom atom.Atom) *html.Node {
	tr := element(atom.Tr)
	if layout.RowHeight > 0 {
		tr.Attr = append(tr.Attr, html.Attribute{Key: "style", Val: "height: " + formatPoints(layout.RowHeight) + "pt"})
	}
	for _, cell := range layout.Row(i) {
		td := element(cellAtom, html.Attribute{Key: "style", Val: cellCSS(cell.Style)})
		td.AppendChild(text(cell.Text))
		tr.AppendChild(td)
	}
	return tr
}

func cellCSS(style model.CellStyle) string {
	decls := []string{"border: 1px solid #C8C8C8", "padding: 2pt 4pt", "text-align: left"}
	if style.Bold {
		decls = append(decls, "font-weight: bold")
	} else {
		decls = append(decls, "font-weight: normal")
	}
	if style.FontSize != nil {
		decls = append(decls, "font-size: "+formatPoints(*style.FontSize)+"pt")
	}
	if style.Fill != nil {
		decls = append(decls, "background-color: #"+style.Fill.Hex())
	}
	if style.Foreground != nil {
		decls = append(decls, "color: #"+style.Foreground.Hex())
	}
	return strings.Join(decls, "; ")
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// formatPoints prints a length with at most two decimals.
func formatPoints(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
