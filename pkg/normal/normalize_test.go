package normal

import (
	"errors"
	"testing"

	"github.com/matzehuels/cliq/pkg/expr"
)

func mustNormalize(t *testing.T, src string) expr.Expr {
	t.Helper()
	e, err := expr.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	n, err := Normalize(expr.Canonicalize(e))
	if err != nil {
		t.Fatalf("Normalize(%q): %v", src, err)
	}
	return n
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Vertex", "A", "A"},
		{"SingletonConnected", "{A}", "A"},
		{"DoubleSingleton", "{{A}}", "A"},
		{"SingletonDisconnected", "[A]", "A"},
		{"NestedSingleton", "[[A]]", "A"},
		{"MixedSingleton", "{[A]}", "A"},
		{"UnionFlattens", "[A,[B,C],D]", "[A,B,C,D]"},
		{"CliqueInUnionKept", "[A,{B,C},D]", "[A,D,{B,C}]"},
		{"CliqueOverSingletonUnion", "{A,[B]}", "{A,B}"},
		{"UnionOverSingletonClique", "[A,{B}]", "[A,B]"},
		{"Distribute", "{A,[B,C]}", "[{A,B},{A,C}]"},
		{"DistributeWithClique", "{{A,B},[C,D]}", "[{A,B,C},{A,B,D}]"},
		{"Cartesian", "{[A,B],[C,D]}", "[{A,C},{A,D},{B,C},{B,D}]"},
		{"DistributeNested", "{A,{B,[C,D]}}", "[{A,B,C},{A,B,D}]"},
		{"DistributeKeepsRest", "{A,[B,C],D}", "[{A,B,D},{A,C,D}]"},
		{"CliqueInsideUnionOperand", "{A,[{B,C},D],E}", "[{A,B,C,E},{A,D,E}]"},
		{
			"TwoUnionsWithCliqueOperand",
			"{A,[{B,C},D],E,[F,G]}",
			"[{A,B,C,E,F},{A,B,C,E,G},{A,D,E,F},{A,D,E,G}]",
		},
		{"DedupCliques", "[{A,B},{B,A}]", "{A,B}"},
		{"SelfProduct", "{[A,B],[A,C]}", "[A,{A,B},{A,C},{B,C}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expr.Format(mustNormalize(t, tt.input))
			if got != tt.want {
				t.Errorf("Normalize(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"A",
		"{A,B,C}",
		"{S,[A,B,C,D]}",
		"{[A,B],[X,Y]}",
		"[{A,B},[C,{D,[E,F]}]]",
	}

	for _, src := range inputs {
		once := mustNormalize(t, src)
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("renormalize %q: %v", src, err)
		}
		if !expr.Equal(once, twice) {
			t.Errorf("Normalize(%q) not idempotent: %s vs %s", src, expr.Format(once), expr.Format(twice))
		}
	}
}

func TestNormalizeCommutative(t *testing.T) {
	// Reordering or re-nesting members of the same operator never changes
	// the normal form.
	pairs := [][2]string{
		{"{A,B,C}", "{C,{A,B}}"},
		{"[A,B,C]", "[C,[A,B]]"},
		{"{S,[A,B]}", "{[B,A],S}"},
		{"{[A,B],[X,Y]}", "{[Y,X],[B,A]}"},
	}

	for _, p := range pairs {
		a, b := mustNormalize(t, p[0]), mustNormalize(t, p[1])
		if !expr.Equal(a, b) {
			t.Errorf("normal forms of %q and %q differ: %s vs %s", p[0], p[1], expr.Format(a), expr.Format(b))
		}
	}
}

func TestNormalizeDistributiveLaw(t *testing.T) {
	// Literal distributive law over one union...
	a := mustNormalize(t, "{S,[A,B,C,D]}")
	b := mustNormalize(t, "[{S,A},{S,B},{S,C},{S,D}]")
	if !expr.Equal(a, b) {
		t.Errorf("distributive law: %s vs %s", expr.Format(a), expr.Format(b))
	}

	// ...and the Cartesian product over two.
	a = mustNormalize(t, "{[A,B],[X,Y]}")
	b = mustNormalize(t, "[{A,X},{A,Y},{B,X},{B,Y}]")
	if !expr.Equal(a, b) {
		t.Errorf("cartesian distribution: %s vs %s", expr.Format(a), expr.Format(b))
	}
}

func TestNormalizeResultIsNormal(t *testing.T) {
	inputs := []string{
		"A",
		"{A,[B,{C,[D,E]}]}",
		"{[A,B],[C,D],[E,F]}",
		"[{A,{B,C}},D]",
	}

	for _, src := range inputs {
		n := mustNormalize(t, src)
		if !IsNormal(n) {
			t.Errorf("Normalize(%q) = %s is not in normal form", src, expr.Format(n))
		}
	}
}

func TestNormalizeSerializationDeterministic(t *testing.T) {
	a := expr.Format(mustNormalize(t, "{S,[A,B]}"))
	b := expr.Format(mustNormalize(t, "{[B,A],S}"))
	if a != b {
		t.Errorf("serializations differ: %s vs %s", a, b)
	}
}

func TestNormalizeBudget(t *testing.T) {
	// Five unions of four members each would expand into 4^5 cliques of
	// five leaves; a small budget must stop this early.
	src := "{[A,B,C,D],[E,F,G,H],[I,J,K,L],[M,N,O,P],[Q,R,S,T]}"
	e, err := expr.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := NormalizeLimits(e, Limits{MaxMembers: 100}); err == nil {
		t.Fatal("expected a limit error")
	} else {
		var le *expr.LimitError
		if !errors.As(err, &le) {
			t.Fatalf("error %T, want *expr.LimitError", err)
		}
		if le.Limit != 100 {
			t.Errorf("limit = %d, want 100", le.Limit)
		}
	}

	// The default budget handles it fine.
	if _, err := Normalize(e); err != nil {
		t.Fatalf("Normalize with default limits: %v", err)
	}
}

func TestNormalizeBudgetGroupingIndependent(t *testing.T) {
	// Canonicalization regroups expressions before any budget is charged:
	// nested cliques splice into their parent and duplicate members collapse.
	// An expression and its canonical form must therefore agree exactly on
	// whether a given budget trips, at every budget value.
	inputs := []string{
		"{A,{B,[C,D]}}",
		"{{X,[B,C]},B,C}",
		"{B,C,[B,C]}",
		"{{A,A,B},[C,D],[D,C]}",
		"{[A,B,C,D],{E,[F,G]},[H,I]}",
	}

	for _, src := range inputs {
		e := mustParseRaw(t, src)
		for limit := 1; limit <= 64; limit++ {
			direct, err1 := NormalizeLimits(e, Limits{MaxMembers: limit})
			canonFirst, err2 := NormalizeLimits(expr.Canonicalize(e), Limits{MaxMembers: limit})
			if (err1 == nil) != (err2 == nil) {
				t.Fatalf("budget disagreement for %q at limit %d: %v vs %v", src, limit, err1, err2)
			}
			if err1 != nil {
				continue
			}
			if !expr.Equal(direct, canonFirst) {
				t.Fatalf("result disagreement for %q at limit %d: %s vs %s",
					src, limit, expr.Format(direct), expr.Format(canonFirst))
			}
		}
	}
}

func TestIsNormal(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"A", true},
		{"{A,B}", true},
		{"[A,{B,C},D]", true},
		{"{A,[B,C]}", false},
		{"[A,[B,C]]", false},
		{"[{A,{B,C}}]", false},
	}

	for _, tt := range tests {
		e := mustParseRaw(t, tt.input)
		if got := IsNormal(e); got != tt.want {
			t.Errorf("IsNormal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func mustParseRaw(t *testing.T, src string) expr.Expr {
	t.Helper()
	e, err := expr.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return e
}
