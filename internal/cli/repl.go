package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/history"
	"github.com/matzehuels/cliq/pkg/normal"
	"github.com/matzehuels/cliq/pkg/resolve"
)

// maxVisibleLines caps the scrollback shown in the REPL view.
const maxVisibleLines = 20

// newReplCmd creates the repl command for interactive evaluation.
func newReplCmd() *cobra.Command {
	var allowShadowing bool
	var maxMembers int

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Definitions accumulate: a line like
"G = [A,B]" binds G for later lines, and a bare expression prints its
normal form. Evaluated lines persist in a history file across sessions.

Commands: :names  :history  :clear  :quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !allowShadowing {
				allowShadowing = cfg.AllowShadowing
			}
			if maxMembers == 0 {
				maxMembers = cfg.MaxMembers
			}

			histFile := cfg.HistoryFile
			if histFile == "" {
				histFile, _ = historyPath()
			}
			store, err := history.NewFileStore(histFile)
			if err != nil {
				return err
			}
			defer store.Close()

			env := resolve.NewEnv(resolve.Config{
				AllowShadowing: allowShadowing,
				Limits:         normal.Limits{MaxMembers: maxMembers},
			})

			m := NewReplModel(cmd.Context(), env, store)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&allowShadowing, "allow-shadowing", false, "allow redefining names; the last definition wins")
	cmd.Flags().IntVar(&maxMembers, "max-members", 0, "normal form size limit (0 = default)")

	return cmd
}

// =============================================================================
// ReplModel - Interactive evaluation loop
// =============================================================================

// replLine is one evaluated line in the scrollback.
type replLine struct {
	input  string
	output string
	isErr  bool
}

// ReplModel is the bubbletea model for the interactive session.
type ReplModel struct {
	Env   *resolve.Env
	Store history.Store

	ctx    context.Context
	input  string
	lines  []replLine
	inputs []string // session inputs for arrow-key recall
	recall int      // index into inputs; len(inputs) means the live line
}

// NewReplModel creates a REPL model bound to an environment and history
// store.
func NewReplModel(ctx context.Context, env *resolve.Env, store history.Store) ReplModel {
	return ReplModel{Env: env, Store: store, ctx: ctx}
}

func (m ReplModel) Init() tea.Cmd {
	return nil
}

func (m ReplModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "ctrl+d":
		return m, tea.Quit
	case "enter":
		return m.submit()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case "up":
		if m.recall > 0 {
			m.recall--
			m.input = m.inputs[m.recall]
		}
	case "down":
		if m.recall < len(m.inputs) {
			m.recall++
			if m.recall == len(m.inputs) {
				m.input = ""
			} else {
				m.input = m.inputs[m.recall]
			}
		}
	default:
		if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
			m.input += key.String()
		}
	}
	return m, nil
}

// submit evaluates the current line and appends the result to the
// scrollback.
func (m ReplModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input)
	m.input = ""
	if line == "" {
		return m, nil
	}
	m.inputs = append(m.inputs, line)
	m.recall = len(m.inputs)

	if strings.HasPrefix(line, ":") {
		return m.command(line)
	}

	output, err := m.eval(line)
	entry := history.NewEntry(line, output, err)
	_ = m.Store.Append(m.ctx, entry)

	if err != nil {
		m.lines = append(m.lines, replLine{input: line, output: err.Error(), isErr: true})
	} else {
		m.lines = append(m.lines, replLine{input: line, output: output})
	}
	return m, nil
}

// eval parses one line as a definition or expression and evaluates it
// against the environment.
func (m *ReplModel) eval(line string) (string, error) {
	def, target, err := expr.ParseLine([]byte(line))
	if err != nil {
		return "", err
	}
	if def != nil {
		n, err := m.Env.Define(def.Name, def.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", def.Name, expr.Format(n)), nil
	}
	n, err := m.Env.Eval(target)
	if err != nil {
		return "", err
	}
	return expr.Format(n), nil
}

// command handles colon-prefixed REPL commands.
func (m ReplModel) command(line string) (tea.Model, tea.Cmd) {
	switch line {
	case ":quit", ":q":
		return m, tea.Quit
	case ":clear":
		m.lines = nil
	case ":names":
		names := m.Env.Names()
		if len(names) == 0 {
			m.lines = append(m.lines, replLine{input: line, output: "no definitions"})
			break
		}
		m.lines = append(m.lines, replLine{input: line, output: strings.Join(names, ", ")})
	case ":history":
		entries, err := m.Store.List(m.ctx, 10)
		if err != nil {
			m.lines = append(m.lines, replLine{input: line, output: err.Error(), isErr: true})
			break
		}
		var b strings.Builder
		for i, e := range entries {
			if i > 0 {
				b.WriteString("\n")
			}
			if e.Failed() {
				fmt.Fprintf(&b, "%s  (error: %s)", e.Input, e.Error)
			} else {
				fmt.Fprintf(&b, "%s  %s %s", e.Input, iconArrow, e.Canonical)
			}
		}
		if b.Len() == 0 {
			b.WriteString("no history")
		}
		m.lines = append(m.lines, replLine{input: line, output: b.String()})
	default:
		m.lines = append(m.lines, replLine{input: line, output: "unknown command (try :names, :history, :clear, :quit)", isErr: true})
	}
	return m, nil
}

func (m ReplModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("cliq"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("expressions evaluate, NAME = expr defines  ·  :quit to exit"))
	b.WriteString("\n\n")

	start := 0
	if len(m.lines) > maxVisibleLines {
		start = len(m.lines) - maxVisibleLines
	}
	for _, line := range m.lines[start:] {
		b.WriteString(StyleDim.Render("cliq> ") + StyleValue.Render(line.input))
		b.WriteString("\n")
		if line.isErr {
			b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(line.output))
		} else {
			b.WriteString(StyleHighlight.Render(line.output))
		}
		b.WriteString("\n")
	}

	b.WriteString(StyleHighlight.Render("cliq> ") + m.input + StyleDim.Render("█"))
	b.WriteString("\n")
	return b.String()
}
