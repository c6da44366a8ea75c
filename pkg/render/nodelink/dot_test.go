package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/graph"
)

func mustGraph(t *testing.T, src string) graph.Graph {
	t.Helper()
	e, err := expr.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return graph.FromExpr(e)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(mustGraph(t, "[{A,B},C]"), Options{})

	if !strings.HasPrefix(dot, "graph G {\n") {
		t.Errorf("DOT does not open an undirected graph:\n%s", dot)
	}
	for _, want := range []string{
		"layout=neato;",
		`"A";`,
		`"B";`,
		`"C";`,
		`"A" -- "B";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Errorf("DOT contains directed edges:\n%s", dot)
	}
}

func TestToDOTLayoutOption(t *testing.T) {
	dot := ToDOT(mustGraph(t, "{A,B}"), Options{Layout: "circo"})
	if !strings.Contains(dot, "layout=circo;") {
		t.Errorf("DOT missing layout override:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(mustGraph(t, "{A,[B,C]}"), Options{})
	b := ToDOT(mustGraph(t, "{[C,B],A}"), Options{})
	if a != b {
		t.Errorf("DOT output differs for equal graphs:\n%s\nvs\n%s", a, b)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="100pt" height="50pt" viewBox="10.00 5.00 200.00 100.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 200.00 100.00"`) {
		t.Errorf("viewBox not anchored at origin: %s", got)
	}
	if !strings.Contains(got, `width="200" height="100"`) {
		t.Errorf("dimensions not rewritten: %s", got)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	svg := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(svg); string(got) != string(svg) {
		t.Errorf("SVG without viewBox changed: %s", got)
	}
}
