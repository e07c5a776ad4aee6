package model

// Page represents a single page (slide) of a document
type Page struct {
	Number   int       // 1-indexed page number
	Elements []Element // Placeable objects in document order
}

// NewPage creates a new empty page
func NewPage() *Page {
	return &Page{
		Elements: make([]Element, 0),
	}
}

// AddElement adds an element to the page
func (p *Page) AddElement(elem Element) {
	p.Elements = append(p.Elements, elem)
}

// Shapes returns the text-bearing shapes on the page
func (p *Page) Shapes() []Element {
	return p.elementsOfKind(KindShape)
}

// Tables returns the table elements on the page
func (p *Page) Tables() []Element {
	return p.elementsOfKind(KindTable)
}

func (p *Page) elementsOfKind(kind ElementKind) []Element {
	var elements []Element
	for _, elem := range p.Elements {
		if elem.Kind == kind {
			elements = append(elements, elem)
		}
	}
	return elements
}
