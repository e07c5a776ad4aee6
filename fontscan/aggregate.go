package fontscan

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/fontaudit/model"
)

// FontUsage is one font family observed on a page with the distinct sizes it
// was used at, in ascending order.
type FontUsage struct {
	Family string
	Sizes  []int
}

// SizesString joins the sizes with sep, appending suffix to each size
func (u FontUsage) SizesString(sep, suffix string) string {
	parts := make([]string, len(u.Sizes))
	for i, size := range u.Sizes {
		parts[i] = strconv.Itoa(size) + suffix
	}
	return strings.Join(parts, sep)
}

// PageReport lists the fonts of one page in first-seen order
type PageReport struct {
	PageNumber int
	Fonts      []FontUsage
}

// familySet accumulates sizes per family, remembering insertion order
type familySet struct {
	order []string
	sizes map[string]map[int]struct{}
}

func newFamilySet() *familySet {
	return &familySet{sizes: make(map[string]map[int]struct{})}
}

func (fs *familySet) add(font ResolvedFont) {
	set, ok := fs.sizes[font.Family]
	if !ok {
		set = make(map[int]struct{})
		fs.sizes[font.Family] = set
		fs.order = append(fs.order, font.Family)
	}
	set[font.Size] = struct{}{}
}

func (fs *familySet) usages() []FontUsage {
	usages := make([]FontUsage, 0, len(fs.order))
	for _, family := range fs.order {
		set := fs.sizes[family]
		sizes := make([]int, 0, len(set))
		for size := range set {
			sizes = append(sizes, size)
		}
		sort.Ints(sizes)
		usages = append(usages, FontUsage{Family: family, Sizes: sizes})
	}
	return usages
}

// AggregatePage scans every element of a page and returns its font report,
// numbered pageNumber. ok is false when no font was found on the page.
func (s *Scanner) AggregatePage(page *model.Page, pageNumber int) (report PageReport, ok bool) {
	fs := newFamilySet()
	for _, elem := range page.Elements {
		s.ScanElement(pageNumber, elem, fs.add)
	}

	usages := fs.usages()
	if len(usages) == 0 {
		return PageReport{}, false
	}
	return PageReport{PageNumber: pageNumber, Fonts: usages}, true
}
