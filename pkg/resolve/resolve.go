package resolve

import (
	"slices"

	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/normal"
)

// Config controls resolution behavior.
type Config struct {
	// AllowShadowing permits a name to be defined more than once. In a
	// program the last definition wins for the whole table; in an [Env]
	// each redefinition is resolved against the table as it stood before.
	// When false, a repeated name yields a *DuplicateError.
	AllowShadowing bool

	// Limits bounds the normalization work done per definition and for
	// the final target. The zero value uses the package defaults.
	Limits normal.Limits
}

// ResolveProgram expands every variable reference in the program's target,
// substituting normalized definition bodies, and returns the normal form of
// the result. Definitions may reference definitions that appear later in
// the program; a chain of references that returns to its starting name
// yields a *CycleError listing the chain.
func ResolveProgram(p *expr.Program, cfg Config) (expr.Expr, error) {
	defs := make(map[string]expr.Expr, len(p.Definitions))
	for _, d := range p.Definitions {
		if _, ok := defs[d.Name]; ok && !cfg.AllowShadowing {
			return nil, &DuplicateError{Name: d.Name}
		}
		defs[d.Name] = d.Body
	}

	r := &resolver{
		defs:   defs,
		done:   make(map[string]expr.Expr, len(defs)),
		active: make(map[string]bool),
		limits: cfg.Limits,
	}
	expanded, err := r.substitute(p.Target)
	if err != nil {
		return nil, err
	}
	return normal.NormalizeLimits(expanded, cfg.Limits)
}

// resolver performs a depth-first expansion over the definition table,
// memoizing each definition's normal form and tracking the active chain
// for cycle detection.
type resolver struct {
	defs   map[string]expr.Expr
	done   map[string]expr.Expr
	active map[string]bool
	stack  []string
	limits normal.Limits
}

func (r *resolver) resolveName(name string) (expr.Expr, error) {
	if n, ok := r.done[name]; ok {
		return expr.Clone(n), nil
	}
	if r.active[name] {
		start := slices.Index(r.stack, name)
		return nil, &CycleError{Chain: slices.Clone(r.stack[start:])}
	}
	body, ok := r.defs[name]
	if !ok {
		return nil, &UndefinedError{Name: name}
	}

	r.active[name] = true
	r.stack = append(r.stack, name)
	expanded, err := r.substitute(body)
	r.stack = r.stack[:len(r.stack)-1]
	delete(r.active, name)
	if err != nil {
		return nil, err
	}

	n, err := normal.NormalizeLimits(expanded, r.limits)
	if err != nil {
		return nil, err
	}
	r.done[name] = n
	return expr.Clone(n), nil
}

func (r *resolver) substitute(e expr.Expr) (expr.Expr, error) {
	switch v := e.(type) {
	case expr.Vertex:
		return v, nil
	case expr.VarRef:
		return r.resolveName(v.Name)
	case expr.Connected:
		members, err := r.substituteMembers(v.Members)
		if err != nil {
			return nil, err
		}
		return expr.Connected{Members: members}, nil
	case expr.Disconnected:
		members, err := r.substituteMembers(v.Members)
		if err != nil {
			return nil, err
		}
		return expr.Disconnected{Members: members}, nil
	}
	return e, nil
}

func (r *resolver) substituteMembers(members []expr.Expr) ([]expr.Expr, error) {
	out := make([]expr.Expr, len(members))
	for i, m := range members {
		s, err := r.substitute(m)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
