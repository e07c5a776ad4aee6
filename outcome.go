package fontaudit

import (
	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/model"
)

// Kind classifies the result of a run.
type Kind int

const (
	// Success means a summary table was built and, unless dry-running,
	// written to the document.
	Success Kind = iota
	// Empty means no page in range used any font; nothing was written.
	Empty
	// Failure means the document could not be read or written.
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "Success"
	case Empty:
		return "Empty"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Outcome is the result of Auditor.Run. It carries data only; callers
// decide how to present it.
type Outcome struct {
	Kind Kind

	PagesAnalyzed int
	RowsWritten   int  // Including the header row
	DryRun        bool // The table was built but not inserted
	Saved         bool // The modified document was written to disk

	Report   fontscan.Report
	Layout   *model.TableLayout
	Warnings []Warning

	Err error // Set for Failure only
}

// Reason returns the error text of a Failure outcome, or "".
func (o Outcome) Reason() string {
	if o.Kind != Failure || o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

func failure(err error, warnings []Warning) Outcome {
	return Outcome{Kind: Failure, Err: err, Warnings: warnings}
}
