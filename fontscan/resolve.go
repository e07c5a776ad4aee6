package fontscan

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/fontaudit/model"
)

// Fallbacks used when a run's style cannot be read.
const (
	DefaultFallbackFamily = "Default"
	DefaultFallbackSize   = 11

	// MaxPointSize bounds a readable size; larger values are unreadable.
	MaxPointSize = 1 << 20
)

// Config holds the fallback policy for unreadable run styles
type Config struct {
	FallbackFamily string
	FallbackSize   int
}

// DefaultConfig returns the default fallback policy
func DefaultConfig() Config {
	return Config{
		FallbackFamily: DefaultFallbackFamily,
		FallbackSize:   DefaultFallbackSize,
	}
}

// ResolvedFont is a run's font after fallback and rounding
type ResolvedFont struct {
	Family string
	Size   int
}

// Resolve returns the font of a run. Runs of zero length carry no visible
// text and report ok == false.
func (c Config) Resolve(run model.TextRun) (font ResolvedFont, ok bool) {
	if run.Length <= 0 {
		return ResolvedFont{}, false
	}
	return ResolvedFont{
		Family: c.family(run.Family),
		Size:   c.size(run.Size),
	}, true
}

func (c Config) family(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name != "" {
		return name
	}
	if c.FallbackFamily != "" {
		return c.FallbackFamily
	}
	return DefaultFallbackFamily
}

func (c Config) size(pt float64) int {
	if !math.IsNaN(pt) && pt > 0 && pt < MaxPointSize {
		// Half-up rounding; sizes that round to zero count as unreadable.
		if rounded := int(math.Floor(pt + 0.5)); rounded >= 1 {
			return rounded
		}
	}
	if c.FallbackSize >= 1 {
		return c.FallbackSize
	}
	return DefaultFallbackSize
}
