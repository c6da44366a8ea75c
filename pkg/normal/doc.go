// Package normal rewrites graph expressions to union-of-cliques normal form.
//
// The normal form is a disjoint union whose direct members are bare vertices
// or cliques containing only vertices; no clique ever contains a nested
// operator. Reaching it takes one rule beyond canonicalization, the
// distributive law: a clique over a disjoint union expands into a disjoint
// union of cliques, one per combination drawn from the unions' members.
//
//	{S,[A,B]}      => [{S,A},{S,B}]
//	{[A,B],[X,Y]}  => [{A,X},{A,Y},{B,X},{B,Y}]
//
// Two expressions describe the same graph exactly when their normal forms
// are structurally equal, which makes the normal form the basis for equality
// checks and deterministic output.
//
// Expansion is exponential in the worst case, so normalization carries an
// explicit size budget and returns a resource-limit error instead of
// consuming unbounded memory on adversarial input.
package normal
