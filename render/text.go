package render

import (
	"github.com/tsawler/fontaudit/model"
)

// MarkdownRenderer renders a layout as a GitHub-flavored Markdown table.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Extension returns ".md".
func (r *MarkdownRenderer) Extension() string { return ".md" }

// Render returns the Markdown table. Styles are not representable and are
// dropped.
func (r *MarkdownRenderer) Render(layout *model.TableLayout) ([]byte, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}
	return []byte(layout.ToMarkdown()), nil
}

// CSVRenderer renders a layout as CSV, header row first.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Extension returns ".csv".
func (r *CSVRenderer) Extension() string { return ".csv" }

// Render returns the CSV bytes.
func (r *CSVRenderer) Render(layout *model.TableLayout) ([]byte, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}
	return []byte(layout.ToCSV()), nil
}
