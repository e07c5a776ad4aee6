package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/tsawler/fontaudit/model"
)

// File is an open presentation. Slides are parsed on first access and cached;
// tables inserted with InsertTable are visible through Page immediately and
// written out by Save.
type File struct {
	path      string
	zipReader *zip.ReadCloser
	slides    []*slide
	theme     *themeXML
	width     float64 // Points
	height    float64
	meta      model.Metadata
}

// slide is one slide part with its raw markup.
type slide struct {
	name  string // Part name inside the archive
	raw   []byte
	dirty bool
	page  *model.Page
}

// Open opens a PPTX file.
func Open(filename string) (*File, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	f := &File{
		path:      filename,
		zipReader: zr,
		width:     model.DefaultPageWidth,
		height:    model.DefaultPageHeight,
	}

	if err := f.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := f.parsePresentation(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}

	// Optional parts
	f.parseTheme()
	f.parseProperties()

	return f, nil
}

// Close releases the underlying archive.
func (f *File) Close() error {
	if f.zipReader != nil {
		err := f.zipReader.Close()
		f.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required PPTX files exist.
func (f *File) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	fileMap := make(map[string]bool)
	for _, zf := range f.zipReader.File {
		fileMap[zf.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (f *File) getFileContent(name string) ([]byte, error) {
	if f.zipReader == nil {
		return nil, errors.New("presentation is closed")
	}
	for _, zf := range f.zipReader.File {
		if zf.Name == name {
			rc, err := zf.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parsePresentation reads the slide size and the slide order.
func (f *File) parsePresentation() error {
	data, err := f.getFileContent("ppt/presentation.xml")
	if err != nil {
		return err
	}

	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		return err
	}

	if sz := pres.SlideSz; sz != nil && sz.Cx > 0 && sz.Cy > 0 {
		f.width = model.EMUToPoints(int64(sz.Cx))
		f.height = model.EMUToPoints(int64(sz.Cy))
	}

	names := f.orderedSlideNames(&pres)
	f.slides = make([]*slide, len(names))
	for i, name := range names {
		f.slides[i] = &slide{name: name}
	}
	return nil
}

// orderedSlideNames returns slide part names in presentation order. The
// sldIdLst order wins; without it, slides are ordered by file number.
func (f *File) orderedSlideNames(pres *presentationXML) []string {
	if pres.SlideIdList != nil && len(pres.SlideIdList.SlideId) > 0 {
		if data, err := f.getFileContent("ppt/_rels/presentation.xml.rels"); err == nil {
			var rels relationshipsXML
			if xml.Unmarshal(data, &rels) == nil {
				targets := make(map[string]string)
				for _, rel := range rels.Relationship {
					if rel.Type == relTypeSlide {
						targets[rel.ID] = resolveTarget("ppt", rel.Target)
					}
				}
				var names []string
				for _, id := range pres.SlideIdList.SlideId {
					if name, ok := targets[id.RID]; ok {
						names = append(names, name)
					}
				}
				if len(names) > 0 {
					return names
				}
			}
		}
	}

	var names []string
	for _, zf := range f.zipReader.File {
		if isSlidePart(zf.Name) {
			names = append(names, zf.Name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return extractSlideNumber(names[i]) < extractSlideNumber(names[j])
	})
	return names
}

func isSlidePart(name string) bool {
	return strings.HasPrefix(name, "ppt/slides/slide") &&
		strings.HasSuffix(name, ".xml") &&
		!strings.Contains(name, "_rels")
}

// resolveTarget resolves a relationship target against the source part's
// directory.
func resolveTarget(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(dir, target))
}

// extractSlideNumber extracts the slide number from a path like "ppt/slides/slide1.xml"
func extractSlideNumber(path string) int {
	name := strings.TrimPrefix(path, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// parseTheme loads the first theme's font scheme.
func (f *File) parseTheme() {
	var themes []string
	for _, zf := range f.zipReader.File {
		if strings.HasPrefix(zf.Name, "ppt/theme/theme") && strings.HasSuffix(zf.Name, ".xml") {
			themes = append(themes, zf.Name)
		}
	}
	if len(themes) == 0 {
		return
	}
	sort.Strings(themes)

	data, err := f.getFileContent(themes[0])
	if err != nil {
		return
	}
	theme := &themeXML{}
	if xml.Unmarshal(data, theme) == nil {
		f.theme = theme
	}
}

// parseProperties reads Dublin Core and application metadata.
func (f *File) parseProperties() {
	if data, err := f.getFileContent("docProps/core.xml"); err == nil {
		var core corePropertiesXML
		if xml.Unmarshal(data, &core) == nil {
			f.meta.Title = core.Title
			f.meta.Author = core.Creator
			f.meta.Subject = core.Subject
		}
	}
	if data, err := f.getFileContent("docProps/app.xml"); err == nil {
		var app appPropertiesXML
		if xml.Unmarshal(data, &app) == nil {
			f.meta.Creator = app.Application
		}
	}
}

// Metadata returns document metadata.
func (f *File) Metadata() model.Metadata {
	return f.meta
}

// PageCount returns the number of slides.
func (f *File) PageCount() (int, error) {
	return len(f.slides), nil
}

// PageSize returns the slide size in points.
func (f *File) PageSize() (width, height float64) {
	return f.width, f.height
}

// Page returns the slide with the given 1-based number.
func (f *File) Page(number int) (*model.Page, error) {
	s, err := f.slide(number)
	if err != nil {
		return nil, err
	}
	if s.page != nil {
		return s.page, nil
	}

	if s.raw == nil {
		data, err := f.getFileContent(s.name)
		if err != nil {
			return nil, err
		}
		s.raw = data
	}

	page, err := f.parseSlide(s.raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.name, err)
	}
	page.Number = number
	s.page = page
	return page, nil
}

func (f *File) slide(number int) (*slide, error) {
	if number < 1 || number > len(f.slides) {
		return nil, fmt.Errorf("slide %d out of range (1-%d)", number, len(f.slides))
	}
	return f.slides[number-1], nil
}

// Document parses every slide into a model.Document.
func (f *File) Document() (*model.Document, error) {
	doc := model.NewDocument()
	doc.Metadata = f.meta
	doc.Width, doc.Height = f.width, f.height

	for i := range f.slides {
		page, err := f.Page(i + 1)
		if err != nil {
			return nil, err
		}
		doc.AddPage(page)
	}
	return doc, nil
}

// parseSlide converts slide markup into a page.
func (f *File) parseSlide(data []byte) (*model.Page, error) {
	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, err
	}

	page := model.NewPage()
	f.extractShapes(&sx.CSld.SpTree, page)
	return page, nil
}

// extractShapes adds every node of the tree to the page in document order,
// flattening groups.
func (f *File) extractShapes(tree *spTreeXML, page *model.Page) {
	for _, node := range tree.Nodes {
		switch {
		case node.Sp != nil:
			page.AddElement(f.shapeElement(node.Sp))
		case node.Frame != nil:
			page.AddElement(f.frameElement(node.Frame))
		case node.Group != nil:
			f.extractShapes(node.Group, page)
		default:
			page.AddElement(model.NewOtherElement(node.Name))
		}
	}
}

func (f *File) shapeElement(sp *spXML) model.Element {
	name := sp.NvSpPr.CNvPr.Name
	var elem model.Element
	if sp.TxBody == nil {
		elem = model.NewOtherElement(name)
	} else {
		elem = model.NewShapeElement(name, f.extractText(sp.TxBody))
	}
	elem.BBox = bboxOf(sp.SpPr.Xfrm)
	return elem
}

func (f *File) frameElement(gf *graphicFrameXML) model.Element {
	name := gf.NvGraphicFramePr.CNvPr.Name
	var elem model.Element
	if tbl := gf.Graphic.GraphicData.Tbl; tbl != nil {
		elem = model.NewTableElement(name, f.extractTable(tbl))
	} else {
		elem = model.NewOtherElement(name)
	}
	elem.BBox = bboxOf(gf.Xfrm)
	return elem
}

func bboxOf(xfrm *xfrmXML) model.BBox {
	if xfrm == nil {
		return model.BBox{}
	}
	return model.NewBBox(
		model.EMUToPoints(int64(xfrm.Off.X)),
		model.EMUToPoints(int64(xfrm.Off.Y)),
		model.EMUToPoints(int64(xfrm.Ext.Cx)),
		model.EMUToPoints(int64(xfrm.Ext.Cy)),
	)
}

// extractTable converts a DrawingML table. Rows with fewer cells than the
// grid leave the missing cells unset.
func (f *File) extractTable(tbl *tblXML) *model.Table {
	cols := len(tbl.TblGrid.GridCol)
	for _, tr := range tbl.Tr {
		if len(tr.Tc) > cols {
			cols = len(tr.Tc)
		}
	}

	table := model.NewSparseTable(len(tbl.Tr), cols)
	for i, tr := range tbl.Tr {
		for j, tc := range tr.Tc {
			text := model.NewText()
			if tc.TxBody != nil {
				text = f.extractText(tc.TxBody)
			}
			table.SetCell(i, j, text)
		}
	}
	return table
}

// extractText converts a text body, resolving each run's family and size
// through the run, paragraph and list-style defaults.
func (f *File) extractText(body *txBodyXML) *model.Text {
	text := model.NewText()
	for _, p := range body.P {
		level := 0
		var pDefaults *rPrXML
		if p.PPr != nil {
			level = int(p.PPr.Lvl)
			pDefaults = p.PPr.DefRPr
		}
		chain := []*rPrXML{pDefaults, body.LstStyle.defaults(level)}

		paraStyles := append([]*rPrXML{p.EndParaRPr}, chain...)
		para := model.Paragraph{
			Style: model.TextRun{
				Family: f.resolveFamily(paraStyles...),
				Size:   resolveSize(paraStyles...),
			},
		}
		for _, item := range p.Content {
			s, ok := item.text()
			if !ok {
				continue
			}
			styles := append([]*rPrXML{item.RPr}, chain...)
			para.Runs = append(para.Runs, model.NewRun(s, f.resolveFamily(styles...), resolveSize(styles...)))
		}
		text.Paras = append(text.Paras, para)
	}
	return text
}

// resolveFamily returns the first family set in styles, with theme
// references such as +mn-lt replaced by the theme's typeface.
func (f *File) resolveFamily(styles ...*rPrXML) string {
	for _, s := range styles {
		if family := s.family(); family != "" {
			return f.themeFont(family)
		}
	}
	return ""
}

func resolveSize(styles ...*rPrXML) float64 {
	for _, s := range styles {
		if size := s.size(); size != 0 {
			return size
		}
	}
	return 0
}

// themeFont maps a +mj-xx or +mn-xx reference to a typeface. Unknown
// references resolve to the empty string.
func (f *File) themeFont(family string) string {
	if !strings.HasPrefix(family, "+") {
		return family
	}
	if f.theme == nil {
		return ""
	}

	var fonts fontCollectionXML
	switch {
	case strings.HasPrefix(family, "+mj-"):
		fonts = f.theme.FontScheme.MajorFont
	case strings.HasPrefix(family, "+mn-"):
		fonts = f.theme.FontScheme.MinorFont
	default:
		return ""
	}

	switch strings.TrimLeft(family[3:], "-") {
	case "lt":
		return fonts.Latin.Typeface
	case "ea":
		return fonts.Ea.Typeface
	case "cs":
		return fonts.Cs.Typeface
	}
	return ""
}
