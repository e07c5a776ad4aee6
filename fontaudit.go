// Package fontaudit reports which font families and point sizes each page of
// a presentation uses, and writes the result back as a summary table on the
// first page.
//
// Basic usage:
//
//	outcome := fontaudit.Open("deck.pptx").InPlace().Run()
//	switch outcome.Kind {
//	case fontaudit.Success:
//	    fmt.Printf("%d rows from %d slides\n", outcome.RowsWritten, outcome.PagesAnalyzed)
//	case fontaudit.Empty:
//	    fmt.Println("no fonts found")
//	case fontaudit.Failure:
//	    log.Fatal(outcome.Err)
//	}
//
// With options:
//
//	outcome := fontaudit.Open("deck.pptx").
//	    Limit(5).
//	    Style(style).
//	    Output("deck-audited.pptx").
//	    Run()
//
// The lower-level fontscan, summary and provider packages (pptx, snapshot)
// can also be used directly.
package fontaudit

import (
	"errors"

	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/model"
)

// ErrNoPages is returned in a Failure outcome when the document has no pages.
var ErrNoPages = errors.New("document has no pages")

// Provider is a document the auditor can read and write back to.
// *pptx.File and *snapshot.File implement it.
type Provider interface {
	fontscan.Source

	// PageSize returns the page size in points.
	PageSize() (width, height float64)

	// InsertTable adds layout to the given 1-based page. It must either
	// add the whole table or leave the page unchanged.
	InsertTable(page int, layout *model.TableLayout) error

	// Save writes the document to filename, or over the source file when
	// filename is empty.
	Save(filename string) error

	Close() error
}

// Open returns an Auditor for the file at filename. The format is detected
// from the extension, falling back to the file content. The file is opened
// by each terminal operation (Run, Analyze, PageCount) and closed before it
// returns.
//
// Example:
//
//	outcome := fontaudit.Open("deck.pptx").DryRun().Run()
func Open(filename string) *Auditor {
	return &Auditor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromProvider returns an Auditor for an already opened document.
// The caller is responsible for closing the provider.
//
// Example:
//
//	f, err := pptx.Open("deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//	outcome := fontaudit.FromProvider(f).Output("audited.pptx").Run()
func FromProvider(p Provider) *Auditor {
	return &Auditor{
		provider: p,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	count := fontaudit.Must(fontaudit.Open("deck.pptx").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
