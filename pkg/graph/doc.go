// Package graph materializes expressions into concrete vertex and edge
// sets.
//
// An expression denotes an undirected labeled graph: vertices are the
// distinct identifiers, a clique joins every pair of vertices drawn from
// distinct members, and a disjoint union contributes no edges of its own.
// [FromExpr] computes that graph; the serialization helpers emit it as
// JSON or as a plain edge list for piping into other tools.
//
// Vertex and edge order is always sorted, so equal expressions produce
// byte-identical output.
package graph
