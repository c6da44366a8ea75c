package expr

// Expr is a node in a graph-expression tree. The concrete types are
// [Vertex], [VarRef], [Connected], and [Disconnected].
type Expr interface {
	// isExpr restricts implementations to this package's variants.
	isExpr()
}

// Vertex is a single named graph vertex. Two vertices with the same name
// anywhere in an expression denote the same vertex.
type Vertex struct {
	Name string
}

// VarRef is a reference to a named definition. References are produced when
// an identifier is bound in scope (see [Bind]) and are expanded by the
// resolver before rendering.
type VarRef struct {
	Name string
}

// Connected composes its members into a clique: every pair of vertices drawn
// from distinct members is joined by an edge, and each member contributes its
// own internal structure.
type Connected struct {
	Members []Expr
}

// Disconnected composes its members as a disjoint union: members keep their
// internal structure and no edges cross between distinct members.
type Disconnected struct {
	Members []Expr
}

func (Vertex) isExpr()       {}
func (VarRef) isExpr()       {}
func (Connected) isExpr()    {}
func (Disconnected) isExpr() {}

// Definition binds a name to an expression body.
type Definition struct {
	Name string
	Body Expr
}

// Program is an ordered sequence of definitions followed by a target
// expression to resolve, normalize, and emit.
type Program struct {
	Definitions []Definition
	Target      Expr
}

// Clone returns a deep copy of e. Substitution during resolution copies the
// resolved tree so that no two occurrence sites share members.
func Clone(e Expr) Expr {
	switch v := e.(type) {
	case Vertex, VarRef:
		return v
	case Connected:
		return Connected{Members: cloneMembers(v.Members)}
	case Disconnected:
		return Disconnected{Members: cloneMembers(v.Members)}
	}
	return e
}

func cloneMembers(members []Expr) []Expr {
	out := make([]Expr, len(members))
	for i, m := range members {
		out[i] = Clone(m)
	}
	return out
}

// Bind rewrites every [Vertex] whose name is reported as defined into a
// [VarRef], returning a new tree. Identifiers with no definition stay plain
// vertices; this is how bare vertex names and variable references share one
// lexical form.
func Bind(e Expr, defined func(name string) bool) Expr {
	switch v := e.(type) {
	case Vertex:
		if defined(v.Name) {
			return VarRef{Name: v.Name}
		}
		return v
	case VarRef:
		return v
	case Connected:
		return Connected{Members: bindMembers(v.Members, defined)}
	case Disconnected:
		return Disconnected{Members: bindMembers(v.Members, defined)}
	}
	return e
}

func bindMembers(members []Expr, defined func(string) bool) []Expr {
	out := make([]Expr, len(members))
	for i, m := range members {
		out[i] = Bind(m, defined)
	}
	return out
}
