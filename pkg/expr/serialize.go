package expr

import (
	"sort"
	"strings"
)

// Key returns a structural sort key for e. Members are keyed in sorted order
// regardless of how the tree stores them, so two trees that differ only by
// member order produce identical keys. Variable references are marked with a
// '$' prefix (not a legal identifier byte) to keep them distinct from
// vertices of the same name.
func Key(e Expr) string {
	var b strings.Builder
	writeKey(&b, e)
	return b.String()
}

func writeKey(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case Vertex:
		b.WriteString(v.Name)
	case VarRef:
		b.WriteByte('$')
		b.WriteString(v.Name)
	case Connected:
		writeGroupKey(b, v.Members, '{', '}')
	case Disconnected:
		writeGroupKey(b, v.Members, '[', ']')
	}
}

func writeGroupKey(b *strings.Builder, members []Expr, open, close byte) {
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = Key(m)
	}
	sort.Strings(keys)
	b.WriteByte(open)
	b.WriteString(strings.Join(keys, ","))
	b.WriteByte(close)
}

// Format renders e in the notation's textual form, keeping the stored member
// order. Variable references print as their bare name, matching how they
// were written.
func Format(e Expr) string {
	var b strings.Builder
	writeFormat(&b, e)
	return b.String()
}

func writeFormat(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case Vertex:
		b.WriteString(v.Name)
	case VarRef:
		b.WriteString(v.Name)
	case Connected:
		writeGroupFormat(b, v.Members, '{', '}')
	case Disconnected:
		writeGroupFormat(b, v.Members, '[', ']')
	}
}

func writeGroupFormat(b *strings.Builder, members []Expr, open, close byte) {
	b.WriteByte(open)
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		writeFormat(b, m)
	}
	b.WriteByte(close)
}

// Canonical renders e deterministically: members sorted, duplicates
// collapsed, same-operator nesting flattened. Two semantically equal
// expressions in normal form always produce byte-identical output.
func Canonical(e Expr) string {
	return Format(Canonicalize(e))
}

// Equal reports structural equality under set semantics: member order and
// duplicate members never affect the result. Semantic equality of arbitrary
// expressions additionally requires normalization first (see package
// normal).
func Equal(a, b Expr) bool {
	return Key(Canonicalize(a)) == Key(Canonicalize(b))
}

// sortByKey orders members by their structural key, returning the keys
// alongside for deduplication.
func sortByKey(members []Expr) ([]Expr, []string) {
	type keyed struct {
		key string
		e   Expr
	}
	ks := make([]keyed, len(members))
	for i, m := range members {
		ks[i] = keyed{key: Key(m), e: m}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	out := make([]Expr, len(ks))
	keys := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.e
		keys[i] = k.key
	}
	return out, keys
}
