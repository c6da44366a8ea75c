// Package expr defines the graph-expression tree for the cliq notation and
// the operations that treat it as a value: parsing, canonicalization, and
// deterministic serialization.
//
// The notation describes graphs through two composition operators:
//
//	{A, B, C}  fully connected: an edge between every pair of members
//	[A, B, C]  fully disconnected: a disjoint union, no edges across members
//
// Members may be nested arbitrarily, and identifiers name either vertices or
// previously defined subgraphs (see package resolve). Operator members have
// set semantics: order never matters, duplicates collapse, and same-operator
// nesting flattens.
//
// Expressions are immutable values. Every transformation in this package and
// its consumers returns a new tree; no function mutates its input.
package expr
