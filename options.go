package fontaudit

import (
	"strconv"
	"strings"

	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/summary"
)

// auditOptions holds the configuration of an Auditor.
type auditOptions struct {
	limit int // <= 0 means all pages

	scan  fontscan.Config
	style summary.Style

	// Where the modified document goes
	output  string
	inPlace bool
	dryRun  bool
}

// defaultOptions returns the default audit options.
func defaultOptions() auditOptions {
	return auditOptions{
		scan:  fontscan.DefaultConfig(),
		style: summary.DefaultStyle(),
	}
}

// save reports whether and where the document is saved after the table is
// inserted. An empty target means the source file.
func (o auditOptions) save() (target string, ok bool) {
	switch {
	case o.output != "":
		return o.output, true
	case o.inPlace:
		return "", true
	}
	return "", false
}

// ParseLimit parses an optional page-count argument. Empty, non-integer and
// non-positive values return 0, which selects every page.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
