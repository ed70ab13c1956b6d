package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/nestindex/pkg/io"
	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// batchFlags holds flags for the batch command.
type batchFlags struct {
	evalFlags
	output string
	format string
}

// batchCommand creates the batch command for evaluating a file of words.
func (c *CLI) batchCommand() *cobra.Command {
	flags := batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Compute the nesting index of every word in a file",
		Long: `Compute the nesting index of every word in a file.

Words are separated by whitespace; text after '#' is ignored. Entries that
are not double occurrence words are reported and skipped. Results are written
in input order as "word: index" lines, or as a JSON report that the count
command can read back.`,
		Example: `  nestindex batch words.txt
  nestindex batch words.txt -o results.json --circular -j 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], flags)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text or json (default from the output extension, else text)")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, path string, flags batchFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format := outputFormat(flags.format, flags.output)
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	entries, err := pkgio.ImportWords(path)
	if err != nil {
		return err
	}
	logger.Debug("read words", "file", path, "words", len(entries))

	report, err := c.evaluateEntries(cmd, entries, &flags.evalFlags, flags.output != "")
	if err != nil {
		return err
	}

	if flags.output == "" {
		return pkgio.Write(cmd.OutOrStdout(), report, format)
	}
	if err := pkgio.ExportReport(report, flags.output, format); err != nil {
		return err
	}
	printSuccess("Evaluated %d words", report.Stats.Words)
	printStats(report.Stats)
	printFailures(report.Outcomes, maxListedFailures)
	printFile(flags.output)
	printNextStep("Histogram", fmt.Sprintf("%s count %s", appName, flags.output))
	return nil
}

// evaluateEntries runs a batch with a spinner showing progress. The spinner
// is only shown when interactive output is not going to stdout.
func (c *CLI) evaluateEntries(cmd *cobra.Command, entries []pipeline.Entry, flags *evalFlags, showSpinner bool) (*pipeline.Report, error) {
	ctx := cmd.Context()
	opts, err := c.pipelineOptions(cmd, flags)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	sw := startStopwatch(loggerFromContext(ctx))
	if showSpinner {
		spinner := newBatchSpinner(ctx, os.Stderr, len(entries))
		opts.OnProgress = func(done, _ int) { spinner.Advance(done) }
		spinner.Start()
		defer spinner.Stop()
	}

	report, err := runner.Batch(ctx, entries, opts)
	if err != nil {
		return nil, err
	}
	sw.done("batch complete", "run", report.RunID, "words", report.Stats.Words, "failed", report.Stats.Failed)
	return report, nil
}

const maxListedFailures = 5

// printFailures lists up to limit rejected words with their line numbers.
func printFailures(outcomes []pipeline.Outcome, limit int) {
	shown, failed := 0, 0
	for _, o := range outcomes {
		if o.OK() {
			continue
		}
		failed++
		if shown < limit {
			printError("line %d: %s: %s", o.Line, o.Input, o.Error)
			shown++
		}
	}
	if failed > shown {
		printDetail("... and %d more", failed-shown)
	}
}

// outputFormat returns the explicit format, or one inferred from the output
// file extension.
func outputFormat(format, output string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if strings.EqualFold(filepath.Ext(output), ".json") {
		return pipeline.FormatJSON
	}
	return pipeline.FormatText
}
