package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrRunsUnavailable is returned by TextSource.Runs when the provider cannot
// iterate text at run granularity.
var ErrRunsUnavailable = errors.New("run-level styles unavailable")

// TextRun is a maximal span of text sharing one style.
type TextRun struct {
	Text   string
	Family string  // Font family, empty when unresolved
	Size   float64 // Point size, zero when unresolved
	Length int     // Length of Text in characters
}

// NewRun creates a run and sets its length from the text
func NewRun(text, family string, size float64) TextRun {
	return TextRun{
		Text:   text,
		Family: family,
		Size:   size,
		Length: utf8.RuneCountInString(text),
	}
}

// Paragraph is a sequence of runs with an optional paragraph-level style
type Paragraph struct {
	Runs []TextRun
	// Style holds the paragraph default (family and size); its Text and
	// Length are ignored.
	Style TextRun
}

// NewParagraph creates a paragraph from runs
func NewParagraph(runs ...TextRun) Paragraph {
	return Paragraph{Runs: runs}
}

// Text returns the concatenated run text
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Text is an in-memory TextSource
type Text struct {
	Paras []Paragraph
	// NoRuns makes Runs report ErrRunsUnavailable, for providers that only
	// know paragraph styles.
	NoRuns bool
}

// NewText creates an in-memory text source
func NewText(paragraphs ...Paragraph) *Text {
	return &Text{Paras: paragraphs}
}

// PlainText joins the paragraphs with newlines
func (t *Text) PlainText() (string, error) {
	parts := make([]string, len(t.Paras))
	for i, p := range t.Paras {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n"), nil
}

// Runs returns all runs of all paragraphs in order
func (t *Text) Runs() ([]TextRun, error) {
	if t.NoRuns {
		return nil, ErrRunsUnavailable
	}
	var runs []TextRun
	for _, p := range t.Paras {
		runs = append(runs, p.Runs...)
	}
	return runs, nil
}

// Paragraphs returns one run per paragraph. A paragraph without an explicit
// style takes the style of its first run.
func (t *Text) Paragraphs() ([]TextRun, error) {
	runs := make([]TextRun, 0, len(t.Paras))
	for _, p := range t.Paras {
		style := p.Style
		if style.Family == "" && style.Size == 0 && len(p.Runs) > 0 {
			style = p.Runs[0]
		}
		text := p.Text()
		runs = append(runs, TextRun{
			Text:   text,
			Family: style.Family,
			Size:   style.Size,
			Length: utf8.RuneCountInString(text),
		})
	}
	return runs, nil
}
