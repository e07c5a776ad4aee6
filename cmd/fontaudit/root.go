package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tsawler/fontaudit"
	"github.com/tsawler/fontaudit/config"
	"github.com/tsawler/fontaudit/render"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Shared flag variables.
var (
	flagPages   string
	flagConfig  string
	flagExport  string
	flagVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AA00"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))
)

// errFailed is returned after a Failure outcome has been reported, so that
// Execute exits non-zero without printing the error twice.
var errFailed = errors.New("font audit failed")

var rootCmd = &cobra.Command{
	Use:   "fontaudit",
	Short: "fontaudit: summarize the fonts used in a presentation",
	Long: `fontaudit reads a presentation (.pptx or a JSON document snapshot), collects
the font families and point sizes used on each slide, and writes a summary
table onto the first slide.

Usage:
  fontaudit scan <file> [flags]
  fontaudit list <file> [flags]`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("fontaudit: ")

	rootCmd.PersistentFlags().StringVar(&flagPages, "pages", "", "Analyze only the first N slides (default: all)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML style file")
	rootCmd.PersistentFlags().StringVar(&flagExport, "export", "", "Also export the summary table (.pdf, .html, .md, .csv or .txt)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log skipped runs, cells and shapes")
}

// newAuditor applies the shared flags to an Auditor for filename.
func newAuditor(filename string) (*fontaudit.Auditor, error) {
	settings := config.Default()
	if flagConfig != "" {
		s, err := config.Load(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		settings = s
	}

	return fontaudit.Open(filename).
		Limit(fontaudit.ParseLimit(flagPages)).
		Config(settings.Scan).
		Style(settings.Style), nil
}

// finish reports outcome and performs the follow-up shared by all commands:
// warning logs and the optional export. Failures are reported on stderr.
func finish(cmd *cobra.Command, outcome fontaudit.Outcome, dest string) error {
	if flagVerbose {
		for _, warning := range outcome.Warnings {
			log.Printf("warning: %s", warning)
		}
	}

	if outcome.Kind == fontaudit.Failure {
		fmt.Fprintln(cmd.ErrOrStderr(), outcomeLine(outcome, dest))
		return errFailed
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, outcomeLine(outcome, dest))

	if flagExport != "" && outcome.Layout != nil {
		if err := export(flagExport, outcome); err != nil {
			return err
		}
		fmt.Fprintln(w, successStyle.Render("✓ Exported: "+flagExport))
	}
	return nil
}

// outcomeLine formats the single notification shown for a run.
func outcomeLine(o fontaudit.Outcome, dest string) string {
	switch o.Kind {
	case fontaudit.Success:
		msg := fmt.Sprintf("✓ Font summary: %s from %s", plural(o.RowsWritten, "row"), plural(o.PagesAnalyzed, "slide"))
		if dest != "" && !o.DryRun {
			msg += " written to " + dest
		}
		return successStyle.Render(msg)
	case fontaudit.Empty:
		return emptyStyle.Render(fmt.Sprintf("No fonts found in %s; nothing written", plural(o.PagesAnalyzed, "slide")))
	default:
		return failureStyle.Render("✗ Error: " + o.Reason())
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func export(filename string, outcome fontaudit.Outcome) error {
	r, err := render.ForFile(filename)
	if err != nil {
		return err
	}
	data, err := r.Render(outcome.Layout)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
