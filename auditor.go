package fontaudit

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/format"
	"github.com/tsawler/fontaudit/model"
	"github.com/tsawler/fontaudit/pptx"
	"github.com/tsawler/fontaudit/snapshot"
	"github.com/tsawler/fontaudit/summary"
)

// Auditor provides a fluent interface for auditing the fonts of a document.
// Each configuration method returns a new Auditor, so a base Auditor can be
// shared and specialized.
type Auditor struct {
	// Source
	filename string
	provider Provider

	options auditOptions
}

// clone creates a shallow copy of the Auditor. Options are plain values.
func (a *Auditor) clone() *Auditor {
	c := *a
	return &c
}

// Limit restricts the audit to the first n pages. Zero or a negative value
// audits every page; a value larger than the page count is clamped.
func (a *Auditor) Limit(n int) *Auditor {
	c := a.clone()
	c.options.limit = n
	return c
}

// Config sets the fallback family and size for unreadable run styles.
func (a *Auditor) Config(cfg fontscan.Config) *Auditor {
	c := a.clone()
	c.options.scan = cfg
	return c
}

// Style sets the labels, colors and geometry of the summary table.
func (a *Auditor) Style(style summary.Style) *Auditor {
	c := a.clone()
	c.options.style = style
	return c
}

// Output saves the modified document to filename after the table is
// inserted. It takes precedence over InPlace.
func (a *Auditor) Output(filename string) *Auditor {
	c := a.clone()
	c.options.output = filename
	return c
}

// InPlace saves the modified document over its source file.
func (a *Auditor) InPlace() *Auditor {
	c := a.clone()
	c.options.inPlace = true
	return c
}

// DryRun builds the summary table without inserting it or saving.
func (a *Auditor) DryRun() *Auditor {
	c := a.clone()
	c.options.dryRun = true
	return c
}

// open returns the provider and whether the caller must close it.
func (a *Auditor) open() (Provider, bool, error) {
	if a.provider != nil {
		return a.provider, false, nil
	}
	if a.filename == "" {
		return nil, false, errors.New("no filename specified")
	}

	f, err := detect(a.filename)
	if err != nil {
		return nil, false, err
	}

	switch f {
	case format.PPTX:
		p, err := pptx.Open(a.filename)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open PPTX: %w", err)
		}
		return p, true, nil

	case format.Snapshot:
		p, err := snapshot.Load(a.filename)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open snapshot: %w", err)
		}
		return p, true, nil

	default:
		return nil, false, fmt.Errorf("unsupported file format: %s", f)
	}
}

// detect uses the file extension when it names a supported format and
// sniffs the content otherwise.
func detect(filename string) (format.Format, error) {
	if f := format.Detect(filename); f.Supported() {
		return f, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return format.Unknown, err
	}
	f, err := format.DetectFromReader(file, info.Size())
	if err != nil {
		return format.Unknown, fmt.Errorf("detecting format of %s: %w", filename, err)
	}
	if f == format.Unknown {
		f = format.Detect(filename)
	}
	return f, nil
}

// Analyze reads the pages in range and returns the font report and the
// warnings recorded while scanning. The document is not modified.
//
// Example:
//
//	report, warnings, err := fontaudit.Open("deck.pptx").Limit(3).Analyze()
func (a *Auditor) Analyze() (fontscan.Report, []Warning, error) {
	p, owned, err := a.open()
	if err != nil {
		return nil, nil, err
	}
	if owned {
		defer p.Close()
	}
	report, _, warnings, err := a.analyze(p)
	return report, warnings, err
}

// PageCount returns the number of pages in the document.
func (a *Auditor) PageCount() (int, error) {
	p, owned, err := a.open()
	if err != nil {
		return 0, err
	}
	if owned {
		defer p.Close()
	}
	return p.PageCount()
}

func (a *Auditor) analyze(p Provider) (fontscan.Report, int, []Warning, error) {
	total, err := p.PageCount()
	if err != nil {
		return nil, 0, nil, fmt.Errorf("counting pages: %w", err)
	}
	if total <= 0 {
		return nil, 0, nil, ErrNoPages
	}

	scanner := fontscan.NewScanner(a.options.scan)
	report, pages, err := scanner.BuildReport(p, a.options.limit)
	return report, pages, scanner.Warnings(), err
}

// Run audits the document: it builds the font report, lays it out as a
// summary table, inserts the table on the first page and saves the document
// when Output or InPlace was set. Without either, the table is inserted only
// into the in-memory copy and Outcome.Saved is false.
//
// Run never returns an error; read and write failures produce a Failure
// outcome. Skipped runs, cells and elements are listed in
// Outcome.Warnings.
func (a *Auditor) Run() Outcome {
	p, owned, err := a.open()
	if err != nil {
		return failure(err, nil)
	}
	if owned {
		defer p.Close()
	}

	report, pages, warnings, err := a.analyze(p)
	if err != nil {
		return failure(err, warnings)
	}
	if len(report) == 0 {
		return Outcome{Kind: Empty, PagesAnalyzed: pages, Warnings: warnings}
	}

	pageWidth, _ := p.PageSize()
	layout := summary.Build(report, a.options.style, pageWidth)
	outcome := Outcome{
		Kind:          Success,
		PagesAnalyzed: pages,
		RowsWritten:   layout.Rows,
		DryRun:        a.options.dryRun,
		Report:        report,
		Layout:        &layout,
		Warnings:      warnings,
	}
	if a.options.dryRun {
		return outcome
	}

	saved, err := a.write(p, &layout)
	if err != nil {
		return failure(err, warnings)
	}
	outcome.Saved = saved
	return outcome
}

// write inserts the table and reports whether the document was saved.
func (a *Auditor) write(p Provider, layout *model.TableLayout) (bool, error) {
	if err := p.InsertTable(1, layout); err != nil {
		return false, fmt.Errorf("inserting summary table: %w", err)
	}
	target, ok := a.options.save()
	if !ok {
		return false, nil
	}
	if err := p.Save(target); err != nil {
		return false, fmt.Errorf("saving document: %w", err)
	}
	return true, nil
}
