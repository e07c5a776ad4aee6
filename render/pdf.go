package render

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/tsawler/fontaudit/model"
)

const (
	pdfMargin      = 36.0 // Points
	pdfFontSize    = 10.0
	pdfCellPadding = 4.0
)

// PDFRenderer renders a layout as a landscape A4 PDF using gofpdf.
// The header row is repeated when the table spans several pages.
type PDFRenderer struct {
	Title string // Document title, optional
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Extension returns ".pdf".
func (r *PDFRenderer) Extension() string { return ".pdf" }

// Render converts the layout into PDF bytes.
func (r *PDFRenderer) Render(layout *model.TableLayout) ([]byte, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCellMargin(pdfCellPadding)
	pdf.SetCreator("fontaudit", true)
	if r.Title != "" {
		pdf.SetTitle(r.Title, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	width := layout.Width
	if width <= 0 || width > pageW-2*pdfMargin {
		width = pageW - 2*pdfMargin
	}
	rowH := layout.RowHeight
	if rowH <= 0 {
		rowH = 24
	}
	widths := columnWidths(layout, width)
	left := (pageW - width) / 2

	pdf.AddPage()
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetY(pdfMargin)

	drawRow := func(row int) {
		pdf.SetX(left)
		for col, cell := range layout.Row(row) {
			style := ""
			if cell.Style.Bold {
				style = "B"
			}
			size := pdfFontSize
			if cell.Style.FontSize != nil {
				size = *cell.Style.FontSize
			}
			pdf.SetFont("Helvetica", style, size)

			fill := cell.Style.Fill != nil
			if fill {
				pdf.SetFillColor(int(cell.Style.Fill.R), int(cell.Style.Fill.G), int(cell.Style.Fill.B))
			}
			if fg := cell.Style.Foreground; fg != nil {
				pdf.SetTextColor(int(fg.R), int(fg.G), int(fg.B))
			} else {
				pdf.SetTextColor(0, 0, 0)
			}

			ln := 0
			if col == layout.Cols-1 {
				ln = 1
			}
			pdf.CellFormat(widths[col], rowH, tr(cell.Text), "1", ln, "LM", fill, 0, "")
		}
	}

	for row := 0; row < layout.Rows; row++ {
		if row > 0 && pdf.GetY()+rowH > pageH-pdfMargin {
			pdf.AddPage()
			pdf.SetY(pdfMargin)
			drawRow(0)
		}
		drawRow(row)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
