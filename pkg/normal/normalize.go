package normal

import (
	"slices"

	"github.com/matzehuels/cliq/pkg/expr"
)

// DefaultMaxMembers is the default budget for the total number of leaf
// placements a single normalization may produce. Cartesian expansion of k
// nested unions of m members each yields m^k cliques, so adversarial input
// must hit a budget, not the allocator.
const DefaultMaxMembers = 1 << 20

// Limits bounds the work a normalization may perform.
type Limits struct {
	// MaxMembers caps the total number of leaves placed into cliques.
	// Zero means DefaultMaxMembers.
	MaxMembers int
}

func (l Limits) withDefaults() Limits {
	if l.MaxMembers <= 0 {
		l.MaxMembers = DefaultMaxMembers
	}
	return l
}

// Normalize rewrites e into union-of-cliques normal form with default
// limits. The input is never mutated.
func Normalize(e expr.Expr) (expr.Expr, error) {
	return NormalizeLimits(e, Limits{})
}

// NormalizeLimits is Normalize with an explicit budget. It returns a
// *expr.LimitError when expansion would exceed the budget.
//
// The rewrite terminates on every finite input: each distributive step
// consumes one union nested beneath a clique and its replacement sits above
// every remaining clique, so the count of unions below a clique ancestor
// strictly decreases until none remain. Confluence comes from the fixed
// strategy: children are normalized first and every rebuilt node is
// canonicalized (flattened, deduplicated, sorted) before the distributive
// step runs, so structurally equal operands collapse before they can be
// multiplied and the result never depends on member order.
//
// The input is canonicalized once up front, so budget accounting is a
// function of the canonical form: expressions that differ only in member
// order, duplicate members, or same-operator grouping charge identically
// and trip the budget identically.
func NormalizeLimits(e expr.Expr, l Limits) (expr.Expr, error) {
	lim := l.withDefaults()
	b := &budget{remaining: lim.MaxMembers, limit: lim.MaxMembers}
	return normalize(expr.Canonicalize(e), b)
}

// IsNormal reports whether e already has normal shape: a leaf, a clique of
// leaves, or a union of leaves and cliques of leaves.
func IsNormal(e expr.Expr) bool {
	switch v := e.(type) {
	case expr.Vertex, expr.VarRef:
		return true
	case expr.Connected:
		return allLeaves(v.Members)
	case expr.Disconnected:
		for _, m := range v.Members {
			switch mv := m.(type) {
			case expr.Vertex, expr.VarRef:
			case expr.Connected:
				if !allLeaves(mv.Members) {
					return false
				}
			default:
				return false
			}
		}
		return true
	}
	return false
}

func allLeaves(members []expr.Expr) bool {
	for _, m := range members {
		switch m.(type) {
		case expr.Vertex, expr.VarRef:
		default:
			return false
		}
	}
	return true
}

type budget struct {
	remaining int
	limit     int
}

func (b *budget) spend(n int) error {
	b.remaining -= n
	if b.remaining < 0 {
		return &expr.LimitError{Limit: b.limit, What: "normal form size"}
	}
	return nil
}

func (b *budget) exhausted() error {
	return &expr.LimitError{Limit: b.limit, What: "normal form size"}
}

func normalize(e expr.Expr, b *budget) (expr.Expr, error) {
	switch v := e.(type) {
	case expr.Vertex, expr.VarRef:
		return v, nil

	case expr.Disconnected:
		members, err := normalizeMembers(v.Members, b)
		if err != nil {
			return nil, err
		}
		// Canonicalization splices nested unions, deduplicates, and
		// collapses a singleton; members are already normal.
		return expr.Canonicalize(expr.Disconnected{Members: members}), nil

	case expr.Connected:
		members, err := normalizeMembers(v.Members, b)
		if err != nil {
			return nil, err
		}
		node := expr.Canonicalize(expr.Connected{Members: members})
		conn, ok := node.(expr.Connected)
		if !ok {
			// Singleton collapse left a normalized member.
			return node, nil
		}
		return distribute(conn, b)
	}
	return e, nil
}

func normalizeMembers(members []expr.Expr, b *budget) ([]expr.Expr, error) {
	out := make([]expr.Expr, len(members))
	for i, m := range members {
		n, err := normalize(m, b)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// distribute applies the distributive law to a canonical clique whose
// members are normal: leaves and disjoint unions (nested cliques were
// spliced away by canonicalization). The accumulated set of result cliques
// starts from the leaf members; each union multiplies it by the union's
// member count, pairing every accumulated clique with every union member:
//
//	{A, [B, C], D, [E, F]}
//	=> cliques {A,D}                   from the leaves
//	=> cliques {A,D,B} {A,D,C}         after [B, C]
//	=> cliques {A,D,B,E} {A,D,C,E} {A,D,B,F} {A,D,C,F}
func distribute(c expr.Connected, b *budget) (expr.Expr, error) {
	var base []expr.Expr
	var unions []expr.Disconnected
	for _, m := range c.Members {
		if d, ok := m.(expr.Disconnected); ok {
			unions = append(unions, d)
		} else {
			base = append(base, m)
		}
	}
	if len(unions) == 0 {
		// Already a clique of leaves.
		return c, nil
	}
	if err := chargeDistribute(base, unions, b); err != nil {
		return nil, err
	}

	cliques := [][]expr.Expr{slices.Clone(base)}
	for _, u := range unions {
		fresh := make([][]expr.Expr, 0, len(u.Members)*len(cliques))
		for _, part := range u.Members {
			leaves := cliqueLeaves(part)
			for _, clique := range cliques {
				next := slices.Clone(clique)
				next = append(next, leaves...)
				fresh = append(fresh, next)
			}
		}
		cliques = fresh
	}

	members := make([]expr.Expr, len(cliques))
	for i, clique := range cliques {
		if len(clique) == 1 {
			members[i] = clique[0]
		} else {
			members[i] = expr.Connected{Members: clique}
		}
	}
	if len(members) == 1 {
		return expr.Canonicalize(members[0]), nil
	}
	return expr.Canonicalize(expr.Disconnected{Members: members}), nil
}

// chargeDistribute charges the full projected expansion of a distribute
// step before any clique is materialized. The step emits one clique per
// combination of union members; each combination places the base leaves
// plus one chosen member's leaves per union, so the total placement count
// is determined by the operands alone. Computing it arithmetically lets an
// over-budget step trip without allocating its output first.
func chargeDistribute(base []expr.Expr, unions []expr.Disconnected, b *budget) error {
	// Every combination places at least one leaf, so the combination count
	// alone bounds the charge from below.
	combos := 1
	for _, u := range unions {
		combos *= len(u.Members)
		if combos > b.remaining || combos < 0 {
			return b.exhausted()
		}
	}

	placements := combos * len(base)
	if placements > b.remaining || placements < 0 {
		return b.exhausted()
	}
	for _, u := range unions {
		// Each member of u appears in combos/len(u.Members) combinations.
		leaves := 0
		for _, part := range u.Members {
			leaves += len(cliqueLeaves(part))
		}
		placements += combos / len(u.Members) * leaves
		if placements > b.remaining || placements < 0 {
			return b.exhausted()
		}
	}
	return b.spend(placements)
}

// cliqueLeaves returns the leaves of a normalized union member, which is
// either a leaf itself or a clique of leaves.
func cliqueLeaves(part expr.Expr) []expr.Expr {
	if c, ok := part.(expr.Connected); ok {
		return c.Members
	}
	return []expr.Expr{part}
}
