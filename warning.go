package fontaudit

import (
	"strings"

	"github.com/tsawler/fontaudit/fontscan"
)

// Warning describes a run, cell or element that was skipped while scanning.
type Warning = fontscan.Warning

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
