package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/fontaudit/model"
)

// ErrUnsupportedSlide is returned by InsertTable when the slide markup has
// no shape tree to insert into.
var ErrUnsupportedSlide = errors.New("slide has no shape tree")

// TableName is the cNvPr name given to inserted tables.
const TableName = "Font Summary"

var (
	spTreeEnd = regexp.MustCompile(`</(?:[A-Za-z_][\w.-]*:)?spTree\s*>`)
	cNvPrID   = regexp.MustCompile(`<(?:[A-Za-z_][\w.-]*:)?cNvPr\b[^>]*?\sid="(\d+)"`)
)

// InsertTable adds layout as a native table on the given slide. The slide is
// only modified in memory; call Save to write the presentation.
func (f *File) InsertTable(page int, layout *model.TableLayout) error {
	if layout == nil || layout.Rows == 0 || layout.Cols == 0 {
		return errors.New("empty table layout")
	}

	s, err := f.slide(page)
	if err != nil {
		return err
	}
	if s.raw == nil {
		data, err := f.getFileContent(s.name)
		if err != nil {
			return err
		}
		s.raw = data
	}

	locs := spTreeEnd.FindAllIndex(s.raw, -1)
	if len(locs) == 0 {
		return fmt.Errorf("%s: %w", s.name, ErrUnsupportedSlide)
	}
	// The outermost shape tree closes last.
	at := locs[len(locs)-1][0]

	frame := tableFrameXML(nextShapeID(s.raw), layout)

	updated := make([]byte, 0, len(s.raw)+len(frame))
	updated = append(updated, s.raw[:at]...)
	updated = append(updated, frame...)
	updated = append(updated, s.raw[at:]...)

	parsed, err := f.parseSlide(updated)
	if err != nil {
		return fmt.Errorf("%s: inserted table does not parse: %w", s.name, err)
	}
	parsed.Number = page

	s.raw = updated
	s.page = parsed
	s.dirty = true
	return nil
}

// nextShapeID returns one more than the largest shape id on the slide.
func nextShapeID(data []byte) int {
	maxID := 0
	for _, m := range cNvPrID.FindAllSubmatch(data, -1) {
		if id, err := strconv.Atoi(string(m[1])); err == nil && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// tableFrameXML renders layout as a p:graphicFrame. Namespaces are declared
// on the frame so it is valid whatever prefixes the slide uses.
func tableFrameXML(id int, layout *model.TableLayout) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, `<p:graphicFrame xmlns:p="%s" xmlns:a="%s">`, nsPresentationML, nsDrawingML)
	b.WriteString(`<p:nvGraphicFramePr>`)
	fmt.Fprintf(&b, `<p:cNvPr id="%d" name="%s"/>`, id, escapeAttr(TableName))
	b.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/>`)
	b.WriteString(`</p:nvGraphicFramePr>`)

	fmt.Fprintf(&b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`,
		model.PointsToEMU(layout.X), model.PointsToEMU(layout.Y),
		model.PointsToEMU(layout.Width), model.PointsToEMU(layout.Height))

	fmt.Fprintf(&b, `<a:graphic><a:graphicData uri="%s"><a:tbl>`, nsTable)
	b.WriteString(`<a:tblPr firstRow="1" bandRow="1"/>`)

	b.WriteString(`<a:tblGrid>`)
	for _, w := range gridWidths(layout) {
		fmt.Fprintf(&b, `<a:gridCol w="%d"/>`, w)
	}
	b.WriteString(`</a:tblGrid>`)

	rowHeight := model.PointsToEMU(layout.RowHeight)
	for r := 0; r < layout.Rows; r++ {
		fmt.Fprintf(&b, `<a:tr h="%d">`, rowHeight)
		for c := 0; c < layout.Cols; c++ {
			writeCell(&b, layout.Cell(r, c))
		}
		b.WriteString(`</a:tr>`)
	}

	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.Bytes()
}

// gridWidths converts column widths to EMUs, splitting Width evenly when the
// layout has no per-column widths.
func gridWidths(layout *model.TableLayout) []int64 {
	widths := make([]int64, layout.Cols)
	for i := range widths {
		if i < len(layout.ColumnWidths) {
			widths[i] = model.PointsToEMU(layout.ColumnWidths[i])
		} else {
			widths[i] = model.PointsToEMU(layout.Width / float64(layout.Cols))
		}
	}
	return widths
}

func writeCell(b *bytes.Buffer, cell *model.LayoutCell) {
	var style model.CellStyle
	var text string
	if cell != nil {
		style = cell.Style
		text = cell.Text
	}

	b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p>`)

	var rPr strings.Builder
	rPr.WriteString(`lang="en-US"`)
	if style.FontSize != nil && *style.FontSize > 0 {
		fmt.Fprintf(&rPr, ` sz="%d"`, int(*style.FontSize*100+0.5))
	}
	if style.Bold {
		rPr.WriteString(` b="1"`)
	}
	props := rPr.String()

	if text == "" {
		fmt.Fprintf(b, `<a:endParaRPr %s/>`, props)
	} else {
		fmt.Fprintf(b, `<a:r><a:rPr %s dirty="0">`, props)
		if style.Foreground != nil {
			writeSolidFill(b, *style.Foreground)
		}
		b.WriteString(`</a:rPr><a:t>`)
		xml.EscapeText(b, []byte(text))
		b.WriteString(`</a:t></a:r>`)
	}
	b.WriteString(`</a:p></a:txBody>`)

	b.WriteString(`<a:tcPr>`)
	if style.Fill != nil {
		writeSolidFill(b, *style.Fill)
	}
	b.WriteString(`</a:tcPr></a:tc>`)
}

func writeSolidFill(b *bytes.Buffer, c model.Color) {
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c.Hex())
}

func escapeAttr(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Save writes the presentation to filename, or back to the file it was
// opened from when filename is empty. The archive is written to a temporary
// file in the target directory and renamed into place, so a failed save
// leaves the target untouched.
func (f *File) Save(filename string) error {
	if f.zipReader == nil {
		return errors.New("presentation is closed")
	}
	if filename == "" {
		filename = f.path
	}

	modified := make(map[string][]byte)
	for _, s := range f.slides {
		if s.dirty {
			modified[s.name] = s.raw
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".fontaudit-*.pptx")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.writeArchive(tmp, modified); err != nil {
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

// writeArchive copies every entry, replacing the contents of modified parts.
func (f *File) writeArchive(w io.Writer, modified map[string][]byte) error {
	zw := zip.NewWriter(w)
	for _, zf := range f.zipReader.File {
		data, ok := modified[zf.Name]
		if !ok {
			if err := zw.Copy(zf); err != nil {
				return fmt.Errorf("copying %s: %w", zf.Name, err)
			}
			continue
		}

		header := zf.FileHeader
		header.Method = zip.Deflate
		out, err := zw.CreateHeader(&header)
		if err != nil {
			return fmt.Errorf("writing %s: %w", zf.Name, err)
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", zf.Name, err)
		}
	}
	return zw.Close()
}
