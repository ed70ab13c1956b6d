package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestindex/pkg/nesting"
	"github.com/matzehuels/nestindex/pkg/word"
)

// isosFlags holds flags for the isos command.
type isosFlags struct {
	evalFlags
	asJSON bool
}

// isosCommand creates the isos command listing circular equivalents.
func (c *CLI) isosCommand() *cobra.Command {
	flags := isosFlags{}

	cmd := &cobra.Command{
		Use:   "isos WORD",
		Short: "List the circular equivalents of a word with their nesting indices",
		Long: `List every distinct rotation of a word, relabeled, with its nesting index.
With --reversals the rotations of the reversed word are listed as well. The
smallest index is the circular nesting index of the word.`,
		Example: `  nestindex isos 122313
  nestindex isos 1234425135 --reversals`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIsos(cmd, args[0], flags)
		},
	}

	flags.register(cmd, false)
	_ = cmd.Flags().MarkHidden("circular")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runIsos(cmd *cobra.Command, input string, flags isosFlags) error {
	ctx := cmd.Context()

	w, err := word.Parse(input)
	if err != nil {
		return err
	}
	opts, err := c.pipelineOptions(cmd, &flags.evalFlags)
	if err != nil {
		return err
	}
	opts.Circular = true

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, cached, err := runner.Evaluate(ctx, w, opts)
	if err != nil {
		return err
	}
	if flags.asJSON {
		return writeResultJSON(cmd.OutOrStdout(), res)
	}
	if res.NoEquivalents {
		printWarning("The empty word has no circular equivalents")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderCandidates(res))
	printSuccess("circular nesting index %s", StyleNumber.Render(fmt.Sprint(res.Index)))
	printResultStats(res, cached)
	return nil
}

// renderCandidates renders every candidate of a circular result as a table,
// marking the witness.
func renderCandidates(res *nesting.Result) string {
	rows := make([][]string, len(res.Candidates))
	witness := -1
	for i, cand := range res.Candidates {
		mark := ""
		if witness < 0 && cand.Word.Equal(res.Witness) {
			witness = i
			mark = iconSuccess
		}
		rows[i] = []string{fmt.Sprint(i + 1), cand.Word.String(), fmt.Sprint(cand.Index), mark}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Word", "Index", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case row == witness:
				return base.Foreground(colorGreen).Bold(true)
			case col == 0:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}
