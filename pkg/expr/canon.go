package expr

// Canonicalize returns the canonical form of e under the operators' set
// semantics. It is idempotent and purely local:
//
//   - children are canonicalized recursively
//   - a child built from the same operator as its parent is spliced into the
//     parent's member list (associativity)
//   - structurally equal members collapse to one occurrence (idempotence)
//   - members are ordered by structural key (commutativity)
//   - an operator wrapping a single member collapses to that member
//
// Canonicalize does not apply the distributive law; see package normal for
// the rewrite to union-of-cliques normal form.
func Canonicalize(e Expr) Expr {
	switch v := e.(type) {
	case Vertex, VarRef:
		return v
	case Connected:
		members := canonMembers(v.Members, spliceConnected)
		if len(members) == 1 {
			return members[0]
		}
		return Connected{Members: members}
	case Disconnected:
		members := canonMembers(v.Members, spliceDisconnected)
		if len(members) == 1 {
			return members[0]
		}
		return Disconnected{Members: members}
	}
	return e
}

// spliceConnected returns the members of a Connected node, reporting whether
// the splice applies.
func spliceConnected(e Expr) ([]Expr, bool) {
	if c, ok := e.(Connected); ok {
		return c.Members, true
	}
	return nil, false
}

func spliceDisconnected(e Expr) ([]Expr, bool) {
	if d, ok := e.(Disconnected); ok {
		return d.Members, true
	}
	return nil, false
}

// canonMembers canonicalizes, flattens, deduplicates, and sorts a member
// list. splice extracts the members of a same-operator child.
func canonMembers(members []Expr, splice func(Expr) ([]Expr, bool)) []Expr {
	flat := make([]Expr, 0, len(members))
	for _, m := range members {
		c := Canonicalize(m)
		if inner, ok := splice(c); ok {
			// Already canonical, so one level of splicing suffices.
			flat = append(flat, inner...)
		} else {
			flat = append(flat, c)
		}
	}

	sorted, keys := sortByKey(flat)
	out := sorted[:0]
	for i, m := range sorted {
		if i > 0 && keys[i] == keys[i-1] {
			continue
		}
		out = append(out, m)
	}
	return out
}
