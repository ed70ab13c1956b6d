package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestindex/pkg/nesting"
	"github.com/matzehuels/nestindex/pkg/word"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command for stepping through reductions.
func (c *CLI) exploreCommand() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "explore WORD",
		Short: "Step through the reductions of a word interactively",
		Long: `Step through the reductions of a word interactively.

Each screen lists the words one round can produce, with the fewest rounds
still needed from each of them. Choose a successor to follow it, undo to go
back, and reach the empty word to finish.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := word.Parse(args[0])
			if err != nil {
				return err
			}
			if policy == "" {
				policy = c.Config.Policy
			}
			p, err := nesting.ParsePolicy(policy)
			if err != nil {
				return err
			}
			m, err := NewExploreModel(w, p)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			fm, ok := final.(ExploreModel)
			if !ok || !fm.Current().IsEmpty() {
				printDetail("Exploration stopped before reaching the empty word")
				return nil
			}
			rounds := fm.Current().Depth()
			if rounds == fm.Best {
				printSuccess("Reduced %s in %d rounds, the nesting index", w.Relabel(), rounds)
			} else {
				printWarning("Reduced %s in %d rounds; the nesting index is %d", w.Relabel(), rounds, fm.Best)
			}
			printTrace(fm.Current().Trace())
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "sequence selection policy: tau or sigma")
	return cmd
}

// =============================================================================
// ExploreModel - Interactive reduction explorer
// =============================================================================

// exploreOption is one successor of the current word.
type exploreOption struct {
	state     nesting.State
	remaining int
}

// ExploreModel is the bubbletea model for stepping through reductions.
type ExploreModel struct {
	// Best is the nesting index of the starting word.
	Best   int
	Cursor int

	reducer nesting.Reducer
	search  nesting.Search
	stack   []nesting.State
	options []exploreOption
	err     error
}

// NewExploreModel creates an explorer starting at the relabeled w.
func NewExploreModel(w word.Word, policy nesting.Policy) (ExploreModel, error) {
	if err := w.Validate(); err != nil {
		return ExploreModel{}, err
	}
	m := ExploreModel{
		reducer: nesting.Reducer{Policy: policy},
		search:  nesting.Search{Policy: policy, Dedupe: true},
		stack:   []nesting.State{nesting.NewState(w.Relabel())},
	}
	best, _, err := m.search.Index(w)
	if err != nil {
		return ExploreModel{}, err
	}
	m.Best = best
	m.expand()
	return m, m.err
}

// Current returns the state being explored.
func (m ExploreModel) Current() nesting.State {
	return m.stack[len(m.stack)-1]
}

// expand computes the successors of the current state.
func (m *ExploreModel) expand() {
	m.Cursor = 0
	m.options = nil
	states, err := m.reducer.Step(m.Current())
	if err != nil {
		m.err = err
		return
	}
	for _, s := range states {
		remaining, _, err := m.search.Index(s.Word())
		if err != nil {
			m.err = err
			return
		}
		m.options = append(m.options, exploreOption{state: s, remaining: remaining})
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.options)-1 {
			m.Cursor++
		}
	case "enter", "right", "l":
		if len(m.options) == 0 {
			return m, nil
		}
		m.stack = append(m.stack[:len(m.stack):len(m.stack)], m.options[m.Cursor].state)
		m.expand()
		if m.Current().IsEmpty() {
			return m, tea.Quit
		}
	case "backspace", "left", "h", "u":
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
			m.expand()
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Reductions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ choose  ⏎ apply  u undo  q quit"))
	b.WriteString("\n\n")

	cur := m.Current()
	b.WriteString(fmt.Sprintf("%s %s\n", listDimStyle.Render("word  "), StyleHighlight.Render(cur.Word().String())))
	b.WriteString(fmt.Sprintf("%s %d of at least %d\n", listDimStyle.Render("round "), cur.Depth(), m.Best))
	if seqs := m.sequences(cur.Word()); len(seqs) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", listDimStyle.Render("drops "), strings.Join(seqs, " ")))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	for i, opt := range m.options {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		path := opt.state.Path()
		op := path[len(path)-1]
		onTrack := cur.Depth()+1+opt.remaining == m.Best
		status := " "
		if onTrack {
			status = StyleSuccess.Render(iconSuccess)
		}
		line := fmt.Sprintf("%s%s %-12s %-24s %s", cursor, status, opt.state.Word(), op,
			listDimStyle.Render(fmt.Sprintf("%d more", opt.remaining)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s keeps the fewest rounds", iconSuccess)))
	return b.String()
}

// sequences renders the sequences the next drop would remove.
func (m ExploreModel) sequences(w word.Word) []string {
	find := nesting.TauSequences
	if m.reducer.Policy == nesting.PolicySigma {
		find = nesting.SigmaSequences
	}
	seqs, err := find(w)
	if err != nil {
		return nil
	}
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.String()
	}
	return out
}
