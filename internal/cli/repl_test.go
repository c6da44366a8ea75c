package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cliq/pkg/history"
	"github.com/matzehuels/cliq/pkg/resolve"
)

func newTestRepl(t *testing.T) ReplModel {
	t.Helper()
	store, err := history.NewFileStore(filepath.Join(t.TempDir(), "history.jsonl"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewReplModel(context.Background(), resolve.NewEnv(resolve.Config{}), store)
}

// feedLine types a line into the model and presses enter.
func feedLine(t *testing.T, m ReplModel, line string) ReplModel {
	t.Helper()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	model, _ = model.(ReplModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(ReplModel)
}

func TestReplEval(t *testing.T) {
	m := newTestRepl(t)

	m = feedLine(t, m, "{A,B}")
	if len(m.lines) != 1 {
		t.Fatalf("scrollback has %d lines", len(m.lines))
	}
	if m.lines[0].output != "{A,B}" || m.lines[0].isErr {
		t.Errorf("line = %+v", m.lines[0])
	}
	if m.input != "" {
		t.Errorf("input not cleared: %q", m.input)
	}
}

func TestReplDefinitionsAccumulate(t *testing.T) {
	m := newTestRepl(t)

	m = feedLine(t, m, "G = [A,B]")
	if m.lines[0].output != "G = [A,B]" {
		t.Errorf("definition output = %q", m.lines[0].output)
	}

	m = feedLine(t, m, "{X,G}")
	if m.lines[1].output != "[{A,X},{B,X}]" {
		t.Errorf("eval output = %q", m.lines[1].output)
	}
}

func TestReplErrorLine(t *testing.T) {
	m := newTestRepl(t)

	m = feedLine(t, m, "{A,")
	if len(m.lines) != 1 || !m.lines[0].isErr {
		t.Fatalf("syntax error not recorded: %+v", m.lines)
	}

	// The session keeps working after an error.
	m = feedLine(t, m, "{A,B}")
	if m.lines[1].isErr {
		t.Errorf("line after error failed: %+v", m.lines[1])
	}
}

func TestReplNamesCommand(t *testing.T) {
	m := newTestRepl(t)

	m = feedLine(t, m, ":names")
	if m.lines[0].output != "no definitions" {
		t.Errorf("empty :names = %q", m.lines[0].output)
	}

	m = feedLine(t, m, "G = [A,B]")
	m = feedLine(t, m, "H = {C,D}")
	m = feedLine(t, m, ":names")
	if got := m.lines[len(m.lines)-1].output; got != "G, H" {
		t.Errorf(":names = %q", got)
	}
}

func TestReplHistoryCommand(t *testing.T) {
	m := newTestRepl(t)

	m = feedLine(t, m, "{A,B}")
	m = feedLine(t, m, ":history")
	got := m.lines[len(m.lines)-1].output
	if !strings.Contains(got, "{A,B}") {
		t.Errorf(":history = %q", got)
	}
}

func TestReplRecall(t *testing.T) {
	m := newTestRepl(t)

	m = feedLine(t, m, "{A,B}")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(ReplModel)
	if m.input != "{A,B}" {
		t.Errorf("recalled input = %q", m.input)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(ReplModel)
	if m.input != "" {
		t.Errorf("down past newest should clear input, got %q", m.input)
	}
}

func TestReplQuit(t *testing.T) {
	m := newTestRepl(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not produce a quit message")
	}

	m2 := feedLine(t, newTestRepl(t), "G = A")
	model, cmd := m2.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":quit")})
	model, cmd = model.(ReplModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = model
	if cmd == nil {
		t.Fatal(":quit should quit")
	}
}
