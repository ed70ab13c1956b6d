package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/nestindex/pkg/io"
	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// countFlags holds flags for the count command.
type countFlags struct {
	evalFlags
	plain bool
}

// countCommand creates the count command for nesting index histograms.
func (c *CLI) countCommand() *cobra.Command {
	flags := countFlags{}

	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Count how many words reach each nesting index",
		Long: `Count how many words of a file reach each nesting index.

FILE is either a word list, which is evaluated first, or a JSON report
written by "nestindex batch -o report.json", which is read as is.`,
		Example: `  nestindex count words.txt
  nestindex count results.json --plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(cmd, args[0], flags)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&flags.plain, "plain", false, `print "NI = i: count" lines instead of a table`)

	return cmd
}

func (c *CLI) runCount(cmd *cobra.Command, path string, flags countFlags) error {
	report, err := c.loadOrEvaluate(cmd, path, &flags.evalFlags, !flags.plain)
	if err != nil {
		return err
	}

	if flags.plain {
		return pkgio.WriteHistogram(cmd.OutOrStdout(), report.Histogram)
	}
	if len(report.Histogram) == 0 {
		printWarning("No double occurrence words in %s", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderHistogram(report.Histogram))
	printStats(report.Stats)
	return nil
}

// loadOrEvaluate reads a saved JSON report, or evaluates a word list.
func (c *CLI) loadOrEvaluate(cmd *cobra.Command, path string, flags *evalFlags, showSpinner bool) (*pipeline.Report, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		report, err := pkgio.ImportReport(path)
		if err != nil {
			return nil, err
		}
		loggerFromContext(cmd.Context()).Debug("loaded report", "file", path, "run", report.RunID)
		return report, nil
	}
	entries, err := pkgio.ImportWords(path)
	if err != nil {
		return nil, err
	}
	return c.evaluateEntries(cmd, entries, flags, showSpinner)
}
