package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/fontaudit/render"
)

// Flag variables.
var (
	flagOutput  string
	flagInPlace bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Write a font summary table onto the first slide",
	Long: `Scan collects the fonts used on each slide and inserts a summary table on the
first slide. The result is saved to --output, over the source with
--in-place, or next to the source as <name>-fonts<ext>.

Examples:
  fontaudit scan deck.pptx
  fontaudit scan deck.pptx --pages 5 --output reviewed.pptx
  fontaudit scan deck.pptx --in-place --config brand.yaml --export fonts.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "Print the font summary without modifying the file",
	Long: `List collects the fonts used on each slide and prints the summary table.

Examples:
  fontaudit list deck.pptx
  fontaudit list export.json --pages 3 --export fonts.html`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)

	scanCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the modified document to this file")
	scanCmd.Flags().BoolVar(&flagInPlace, "in-place", false, "Overwrite the source document")
}

func runScan(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if flagOutput != "" && flagInPlace {
		return errors.New("--output and --in-place cannot be used together")
	}

	a, err := newAuditor(filename)
	if err != nil {
		return err
	}

	dest := filename
	switch {
	case flagInPlace:
		a = a.InPlace()
	default:
		dest = flagOutput
		if dest == "" {
			dest = defaultOutput(filename)
		}
		a = a.Output(dest)
	}

	return finish(cmd, a.Run(), dest)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newAuditor(args[0])
	if err != nil {
		return err
	}

	outcome := a.DryRun().Run()
	if outcome.Layout != nil {
		fmt.Fprintln(cmd.OutOrStdout(), render.NewTerminalRenderer().String(outcome.Layout))
	}
	return finish(cmd, outcome, "")
}

// defaultOutput derives "<name>-fonts<ext>" next to the source file.
func defaultOutput(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "-fonts" + ext
}
