// Package resolve expands named definitions inside graph expressions.
//
// A program is a sequence of definitions followed by a target expression.
// Resolution substitutes each variable reference with its definition's
// normalized body, detects cyclic definition chains, and normalizes the
// fully expanded target. Definitions may reference each other in any
// textual order; only cycles are rejected.
//
// For interactive use, [Env] maintains a growing definition table with
// sequential semantics: each definition is resolved against the table as
// it stood when the definition was entered, so redefinition (when
// shadowing is enabled) sees the previous value rather than itself.
package resolve
