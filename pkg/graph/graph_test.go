package graph

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/normal"
)

func mustExpr(t *testing.T, src string) expr.Expr {
	t.Helper()
	e, err := expr.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return e
}

func edgeStrings(edges []Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.From + "-" + e.To
	}
	return out
}

func TestFromExpr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vertices []string
		edges    []string
	}{
		{"Vertex", "A", []string{"A"}, nil},
		{"Union", "[A,B,C]", []string{"A", "B", "C"}, nil},
		{"Pair", "{A,B}", []string{"A", "B"}, []string{"A-B"}},
		{"Triangle", "{A,B,C}", []string{"A", "B", "C"}, []string{"A-B", "A-C", "B-C"}},
		{"NoSelfLoop", "{A,A}", []string{"A"}, nil},
		{
			"CliqueOverUnion",
			"{A,[B,C]}",
			[]string{"A", "B", "C"},
			[]string{"A-B", "A-C"},
		},
		{
			"UnionOfCliques",
			"[{A,B},{C,D}]",
			[]string{"A", "B", "C", "D"},
			[]string{"A-B", "C-D"},
		},
		{
			"SharedNameAcrossMembers",
			"{{A,B},{A,C}}",
			[]string{"A", "B", "C"},
			[]string{"A-B", "A-C", "B-C"},
		},
		{
			"EdgeEndpointsSorted",
			"{C,B}",
			[]string{"B", "C"},
			[]string{"B-C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromExpr(mustExpr(t, tt.input))
			if !slices.Equal(g.Vertices, tt.vertices) {
				t.Errorf("vertices = %v, want %v", g.Vertices, tt.vertices)
			}
			if got := edgeStrings(g.Edges); !slices.Equal(got, tt.edges) {
				t.Errorf("edges = %v, want %v", got, tt.edges)
			}
		})
	}
}

func TestFromExprOrderInsensitive(t *testing.T) {
	a := FromExpr(mustExpr(t, "{A,[B,C],D}"))
	b := FromExpr(mustExpr(t, "{D,[C,B],A}"))
	if !slices.Equal(a.Vertices, b.Vertices) || !slices.Equal(a.Edges, b.Edges) {
		t.Errorf("graphs differ: %v/%v vs %v/%v", a.Vertices, a.Edges, b.Vertices, b.Edges)
	}
}

func TestWriteEdgeList(t *testing.T) {
	g := FromExpr(mustExpr(t, "[{A,B},C,{D,E}]"))

	var buf bytes.Buffer
	if err := WriteEdgeList(g, &buf); err != nil {
		t.Fatalf("WriteEdgeList: %v", err)
	}
	want := "A B\nD E\nC\n"
	if buf.String() != want {
		t.Errorf("edge list = %q, want %q", buf.String(), want)
	}
}

func TestFormatEdgeListIsolatedOnly(t *testing.T) {
	g := FromExpr(mustExpr(t, "[A,B]"))
	if got := FormatEdgeList(g); got != "A\nB\n" {
		t.Errorf("edge list = %q, want %q", got, "A\nB\n")
	}
}

func TestGraphJSONRoundTrip(t *testing.T) {
	g := FromExpr(mustExpr(t, "{A,[B,C]}"))

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if !slices.Equal(g.Vertices, back.Vertices) || !slices.Equal(g.Edges, back.Edges) {
		t.Errorf("round trip changed graph: %+v vs %+v", g, back)
	}
}

func TestMarshalGraphDeterministic(t *testing.T) {
	a, err := MarshalGraph(FromExpr(mustExpr(t, "{A,B,[C,D]}")))
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	b, err := MarshalGraph(FromExpr(mustExpr(t, "{[D,C],B,A}")))
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("serializations differ:\n%s\nvs\n%s", a, b)
	}
}

func TestGraphOrderSize(t *testing.T) {
	g := FromExpr(mustExpr(t, "[{A,B,C},D]"))
	if g.Order() != 4 {
		t.Errorf("Order() = %d, want 4", g.Order())
	}
	if g.Size() != 3 {
		t.Errorf("Size() = %d, want 3", g.Size())
	}
}

// Normalization never invents vertices or edges: the vertex set is
// preserved exactly, and every edge of the normal form already exists in
// the written structure.
func TestNormalizePreservesGraph(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		src := genExpr(rng, 1+rng.Intn(4), 4, 4)
		e := mustExpr(t, src)

		raw := FromExpr(e)
		n, err := normal.Normalize(e)
		if err != nil {
			continue
		}
		got := FromExpr(n)

		if !slices.Equal(raw.Vertices, got.Vertices) {
			t.Fatalf("vertex set of %q changed: %v vs %v", src, raw.Vertices, got.Vertices)
		}
		for _, edge := range got.Edges {
			if !slices.Contains(raw.Edges, edge) {
				t.Fatalf("normalizing %q invented edge %s-%s", src, edge.From, edge.To)
			}
		}
	}
}

func genExpr(rng *rand.Rand, depth, cweight, dweight int) string {
	total := 1 + cweight + dweight
	pick := rng.Intn(total)
	switch {
	case pick == 0 || depth == 0:
		return fmt.Sprintf("N%d", rng.Intn(12))
	case pick <= cweight:
		return genGroup(rng, '{', '}', depth, cweight, dweight)
	default:
		return genGroup(rng, '[', ']', depth, cweight, dweight)
	}
}

func genGroup(rng *rand.Rand, open, close byte, depth, cweight, dweight int) string {
	n := 1 + rng.Intn(4)
	var b strings.Builder
	b.WriteByte(open)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(genExpr(rng, depth-1, cweight, dweight))
	}
	b.WriteByte(close)
	return b.String()
}
