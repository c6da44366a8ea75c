package expr

import "testing"

func TestKeyOrderInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"{A,B,C}", "{C,B,A}"},
		{"[{A,B},{C,D}]", "[{D,C},{B,A}]"},
		{"{A,[B,C]}", "{[C,B],A}"},
	}

	for _, p := range pairs {
		a, b := mustParse(t, p[0]), mustParse(t, p[1])
		if Key(a) != Key(b) {
			t.Errorf("Key(%q) = %s != Key(%q) = %s", p[0], Key(a), p[1], Key(b))
		}
	}
}

func TestKeyDistinguishesOperators(t *testing.T) {
	if Key(mustParse(t, "{A,B}")) == Key(mustParse(t, "[A,B]")) {
		t.Error("clique and union of the same members must have distinct keys")
	}
}

func TestKeyDistinguishesVarRef(t *testing.T) {
	v := Vertex{Name: "G"}
	r := VarRef{Name: "G"}
	if Key(v) == Key(r) {
		t.Error("vertex and reference of the same name must have distinct keys")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"{A,B,C}", "{C,B,A}", true},
		{"{A,A,B}", "{A,B}", true},
		{"{A,{B,C}}", "{A,B,C}", true},
		{"[A,[B,C]]", "[A,B,C]", true},
		{"{A,B}", "[A,B]", false},
		{"A", "B", false},
		// Equal is structural: distribution is normalization's job.
		{"{S,[A,B]}", "[{S,A},{S,B}]", false},
	}

	for _, tt := range tests {
		a, b := mustParse(t, tt.a), mustParse(t, tt.b)
		if got := Equal(a, b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCanonicalDeterministic(t *testing.T) {
	// Structurally reordered inputs must render byte-identically.
	a := Canonical(mustParse(t, "[{S,A},{S,B},D]"))
	b := Canonical(mustParse(t, "[D,{B,S},{A,S}]"))
	if a != b {
		t.Errorf("Canonical renderings differ: %s vs %s", a, b)
	}
	if a != "[D,{A,S},{B,S}]" {
		t.Errorf("Canonical = %s, want [D,{A,S},{B,S}]", a)
	}
}

func TestFormatKeepsStoredOrder(t *testing.T) {
	e := mustParse(t, "{C,A,B}")
	if got := Format(e); got != "{C,A,B}" {
		t.Errorf("Format = %s, want {C,A,B}", got)
	}
}
