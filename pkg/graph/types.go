package graph

import (
	"slices"
	"strings"

	"github.com/matzehuels/cliq/pkg/expr"
)

// =============================================================================
// Graph - Materialized Vertex and Edge Sets
// =============================================================================

// Graph is the canonical serialization format for materialized graphs.
// Used for API responses, caching, and piping into external tools.
//
// Vertices and edges are sorted, and every edge stores its smaller endpoint
// first, so structurally equal expressions serialize identically.
type Graph struct {
	Vertices []string `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Order returns the number of vertices.
func (g Graph) Order() int { return len(g.Vertices) }

// Size returns the number of edges.
func (g Graph) Size() int { return len(g.Edges) }

// Edge is an undirected edge between two named vertices.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewEdge builds an edge with its endpoints in sorted order, the stored
// form for undirected edges.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{From: a, To: b}
}

// =============================================================================
// Expression → Graph
// =============================================================================

// FromExpr computes the graph of an expression tree. Identifiers with equal
// names are one vertex wherever they appear; a clique joins every pair of
// vertices drawn from distinct members and never produces self-loops.
// Unresolved variable references count as vertices under their name.
//
// An expression's meaning is its normal form, so callers wanting the
// denoted graph should normalize first; on raw trees FromExpr reads the
// written structure, which can carry edges that collapse away under
// normalization.
func FromExpr(e expr.Expr) Graph {
	b := &builder{
		vertices: make(map[string]struct{}),
		edges:    make(map[Edge]struct{}),
	}
	b.walk(e)

	g := Graph{
		Vertices: make([]string, 0, len(b.vertices)),
		Edges:    make([]Edge, 0, len(b.edges)),
	}
	for v := range b.vertices {
		g.Vertices = append(g.Vertices, v)
	}
	slices.Sort(g.Vertices)
	for e := range b.edges {
		g.Edges = append(g.Edges, e)
	}
	slices.SortFunc(g.Edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
	return g
}

type builder struct {
	vertices map[string]struct{}
	edges    map[Edge]struct{}
}

// walk records the subtree's vertices and edges and returns the subtree's
// vertex set, which the enclosing clique joins against its other members.
func (b *builder) walk(e expr.Expr) map[string]struct{} {
	switch v := e.(type) {
	case expr.Vertex:
		return b.leaf(v.Name)
	case expr.VarRef:
		return b.leaf(v.Name)

	case expr.Disconnected:
		all := make(map[string]struct{})
		for _, m := range v.Members {
			for name := range b.walk(m) {
				all[name] = struct{}{}
			}
		}
		return all

	case expr.Connected:
		// Cross every member's vertices with those of the members before
		// it; shared names join the sets without a self-loop.
		joined := make(map[string]struct{})
		for _, m := range v.Members {
			part := b.walk(m)
			for a := range joined {
				for c := range part {
					if a != c {
						b.edges[NewEdge(a, c)] = struct{}{}
					}
				}
			}
			for name := range part {
				joined[name] = struct{}{}
			}
		}
		return joined
	}
	return nil
}

func (b *builder) leaf(name string) map[string]struct{} {
	b.vertices[name] = struct{}{}
	return map[string]struct{}{name: {}}
}
