package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestindex/pkg/nesting"
	"github.com/matzehuels/nestindex/pkg/word"
)

// indexFlags holds flags for the index command.
type indexFlags struct {
	evalFlags
	trace  bool
	asJSON bool
}

// indexCommand creates the index command for evaluating a single word.
func (c *CLI) indexCommand() *cobra.Command {
	flags := indexFlags{}

	cmd := &cobra.Command{
		Use:   "index WORD",
		Short: "Compute the nesting index of a double occurrence word",
		Long: `Compute the nesting index of a double occurrence word.

A word of single digits may be written without separators (123132); longer
letters need any punctuation or whitespace between them (1,2,3,10,3,2,...).`,
		Example: `  nestindex index 123132
  nestindex index 122313 --circular --trace
  nestindex index 1,2,3,4,4,2,5,1,3,5 --circular --reversals --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIndex(cmd, args[0], flags)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVarP(&flags.trace, "trace", "t", false, "show every reduction round")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runIndex(cmd *cobra.Command, input string, flags indexFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	w, err := word.Parse(input)
	if err != nil {
		return err
	}
	opts, err := c.pipelineOptions(cmd, &flags.evalFlags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sw := startStopwatch(logger)
	res, cached, err := runner.Evaluate(ctx, w, opts)
	if err != nil {
		return err
	}
	sw.done("evaluated", "word", w, "index", res.Index, "cached", cached)

	if flags.asJSON {
		return writeResultJSON(cmd.OutOrStdout(), res)
	}
	printResult(res, cached, flags.trace)
	return nil
}

// printResult prints a styled summary of res.
func printResult(res *nesting.Result, cached, showTrace bool) {
	label := "nesting index"
	if res.Circular {
		label = "circular nesting index"
	}
	printSuccess("%s: %s %s", StyleHighlight.Render(res.Word.String()), label, StyleNumber.Render(fmt.Sprint(res.Index)))
	printResultStats(res, cached)
	if res.Circular && res.Witness != nil {
		printKeyValue("witness", res.Witness.String())
		printKeyValue("candidates", fmt.Sprint(len(res.Candidates)))
	}
	if res.NoEquivalents {
		printDetail("The empty word has no circular equivalents")
	}
	if showTrace && len(res.Trace) > 0 {
		printNewline()
		printTrace(res.Trace)
	}
}

func writeResultJSON(w io.Writer, res *nesting.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
