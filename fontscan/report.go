package fontscan

import (
	"fmt"

	"github.com/tsawler/fontaudit/model"
)

// Source enumerates the pages of a document. Page numbers are 1-based.
type Source interface {
	PageCount() (int, error)
	Page(number int) (*model.Page, error)
}

// Report holds the per-page font reports in ascending page order. Pages
// without fonts are absent.
type Report []PageReport

// FontCount returns the total number of font usages across all pages
func (r Report) FontCount() int {
	n := 0
	for _, page := range r {
		n += len(page.Fonts)
	}
	return n
}

// Families returns every family in the report once, in first-seen order
func (r Report) Families() []string {
	seen := make(map[string]bool)
	var families []string
	for _, page := range r {
		for _, usage := range page.Fonts {
			if !seen[usage.Family] {
				seen[usage.Family] = true
				families = append(families, usage.Family)
			}
		}
	}
	return families
}

// EffectiveLimit returns the number of leading pages to analyze. A limit
// that is non-positive or exceeds total selects every page. A non-positive
// total selects none.
func EffectiveLimit(limit, total int) int {
	if total <= 0 {
		return 0
	}
	if limit <= 0 || limit > total {
		return total
	}
	return limit
}

// BuildReport aggregates the first limit pages of src. Pages past the limit
// are never requested. It returns the report and the number of pages
// analyzed; an error is returned only when src itself fails.
func (s *Scanner) BuildReport(src Source, limit int) (Report, int, error) {
	total, err := src.PageCount()
	if err != nil {
		return nil, 0, fmt.Errorf("counting pages: %w", err)
	}
	count := EffectiveLimit(limit, total)

	report := make(Report, 0, count)
	for number := 1; number <= count; number++ {
		page, err := src.Page(number)
		if err != nil {
			return nil, 0, fmt.Errorf("page %d: %w", number, err)
		}
		if page == nil {
			return nil, 0, fmt.Errorf("page %d: provider returned no page", number)
		}
		if pr, ok := s.AggregatePage(page, number); ok {
			report = append(report, pr)
		}
	}
	return report, count, nil
}
