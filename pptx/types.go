// Package pptx reads and writes PPTX (Office Open XML Presentation) files as
// font-audit documents.
package pptx

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

// XML namespaces used in PPTX files.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsTable          = "http://schemas.openxmlformats.org/drawingml/2006/table"
	relTypeSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSzXML struct {
	Cx lenientInt `xml:"cx,attr"` // Width in EMUs
	Cy lenientInt `xml:"cy,attr"` // Height in EMUs
}

// lenientInt is an integer attribute. A value that does not parse decodes
// as 0 instead of failing the whole part.
type lenientInt int64

func (n *lenientInt) UnmarshalXMLAttr(attr xml.Attr) error {
	s := strings.TrimSpace(attr.Value)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = lenientInt(v)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > math.MaxInt32 {
		*n = 0
		return nil
	}
	*n = lenientInt(math.Round(v))
	return nil
}

// hundredths is a run size attribute in hundredths of a point. Malformed
// values decode as 0, which reads as an unresolved size.
type hundredths float64

func (h *hundredths) UnmarshalXMLAttr(attr xml.Attr) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	*h = hundredths(v)
	return nil
}

// slideXML represents a ppt/slides/slide*.xml file structure.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"spTree"`
}

// shapeNode is one child of a shape tree. Exactly one field is set, except
// for elements the reader does not model, which only carry Name.
type shapeNode struct {
	Name  string
	Sp    *spXML
	Frame *graphicFrameXML
	Group *spTreeXML
}

// spTreeXML holds the children of a shape tree or group shape in document
// order.
type spTreeXML struct {
	Nodes []shapeNode
}

// UnmarshalXML decodes the tree's children while keeping their order, which
// struct tags alone cannot do across different element names.
func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			node := shapeNode{Name: el.Name.Local}
			switch el.Name.Local {
			case "sp":
				node.Sp = &spXML{}
				err = d.DecodeElement(node.Sp, &el)
			case "graphicFrame":
				node.Frame = &graphicFrameXML{}
				err = d.DecodeElement(node.Frame, &el)
			case "grpSp":
				node.Group = &spTreeXML{}
				err = d.DecodeElement(node.Group, &el)
			case "nvGrpSpPr", "grpSpPr", "extLst":
				err = d.Skip()
				if err == nil {
					continue
				}
			default:
				err = d.Skip()
			}
			if err != nil {
				return err
			}
			t.Nodes = append(t.Nodes, node)
		case xml.EndElement:
			return nil
		}
	}
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type spPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X lenientInt `xml:"x,attr"` // EMUs
	Y lenientInt `xml:"y,attr"`
}

type extXML struct {
	Cx lenientInt `xml:"cx,attr"` // EMUs
	Cy lenientInt `xml:"cy,attr"`
}

// txBodyXML represents text body content.
type txBodyXML struct {
	LstStyle *lstStyleXML `xml:"lstStyle"`
	P        []pXML       `xml:"p"`
}

// lstStyleXML holds per-level paragraph defaults (lvl1pPr through lvl9pPr).
type lstStyleXML struct {
	Levels []levelPPrXML `xml:",any"`
}

type levelPPrXML struct {
	XMLName xml.Name
	DefRPr  *rPrXML `xml:"defRPr"`
}

// level returns the 0-based level of a lvlNpPr element, or -1.
func (l levelPPrXML) level() int {
	name := l.XMLName.Local
	if len(name) != len("lvl1pPr") || !strings.HasPrefix(name, "lvl") || !strings.HasSuffix(name, "pPr") {
		return -1
	}
	n := int(name[3] - '1')
	if n < 0 || n > 8 {
		return -1
	}
	return n
}

// defaults returns the run defaults for a paragraph level, or nil.
func (s *lstStyleXML) defaults(level int) *rPrXML {
	if s == nil {
		return nil
	}
	for _, l := range s.Levels {
		if l.level() == level {
			return l.DefRPr
		}
	}
	return nil
}

// pXML represents a paragraph. Runs, fields and breaks are collected in
// order through Content.
type pXML struct {
	PPr        *pPrXML      `xml:"pPr"`
	Content    []textRunXML `xml:",any"`
	EndParaRPr *rPrXML      `xml:"endParaRPr"`
}

type pPrXML struct {
	Lvl    lenientInt `xml:"lvl,attr"`
	DefRPr *rPrXML    `xml:"defRPr"`
}

// textRunXML is a paragraph child such as a:r, a:fld or a:br.
type textRunXML struct {
	XMLName xml.Name
	RPr     *rPrXML `xml:"rPr"`
	T       string  `xml:"t"`
}

// text returns the text of a run or field. Breaks carry no glyphs and are
// not reported.
func (r textRunXML) text() (string, bool) {
	switch r.XMLName.Local {
	case "r", "fld":
		return r.T, true
	}
	return "", false
}

type rPrXML struct {
	Sz    *hundredths  `xml:"sz,attr"`
	Latin *typefaceXML `xml:"latin"`
	Ea    *typefaceXML `xml:"ea"`
	Cs    *typefaceXML `xml:"cs"`
}

type typefaceXML struct {
	Typeface string `xml:"typeface,attr"`
}

// family returns the Latin typeface, then East Asian, then complex script.
func (r *rPrXML) family() string {
	if r == nil {
		return ""
	}
	for _, tf := range []*typefaceXML{r.Latin, r.Ea, r.Cs} {
		if tf != nil && strings.TrimSpace(tf.Typeface) != "" {
			return tf.Typeface
		}
	}
	return ""
}

// size returns the size in points, or 0 when absent.
func (r *rPrXML) size() float64 {
	if r == nil || r.Sz == nil {
		return 0
	}
	return float64(*r.Sz) / 100
}

// graphicFrameXML represents a graphic frame (tables, charts).
type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Xfrm             *xfrmXML            `xml:"xfrm"`
	Graphic          graphicXML          `xml:"graphic"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string  `xml:"uri,attr"`
	Tbl *tblXML `xml:"tbl"`
}

// tblXML represents a table.
type tblXML struct {
	TblGrid tblGridXML `xml:"tblGrid"`
	Tr      []trXML    `xml:"tr"`
}

type tblGridXML struct {
	GridCol []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W lenientInt `xml:"w,attr"` // EMUs
}

type trXML struct {
	H  lenientInt `xml:"h,attr"` // EMUs
	Tc []tcXML    `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

// themeXML represents ppt/theme/theme*.xml; only the font scheme is read.
type themeXML struct {
	XMLName    xml.Name `xml:"theme"`
	FontScheme struct {
		MajorFont fontCollectionXML `xml:"majorFont"`
		MinorFont fontCollectionXML `xml:"minorFont"`
	} `xml:"themeElements>fontScheme"`
}

type fontCollectionXML struct {
	Latin typefaceXML `xml:"latin"`
	Ea    typefaceXML `xml:"ea"`
	Cs    typefaceXML `xml:"cs"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
	Creator string   `xml:"creator"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
}
