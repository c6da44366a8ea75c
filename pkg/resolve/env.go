package resolve

import (
	"slices"

	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/normal"
)

// Env is a mutable definition table for interactive sessions. Stored
// bodies are fully expanded and normalized when defined, so lookups never
// chase references and cycles cannot form: a redefinition that mentions
// its own name picks up the previous value.
type Env struct {
	cfg  Config
	defs map[string]expr.Expr
}

// NewEnv returns an empty environment with the given configuration.
func NewEnv(cfg Config) *Env {
	return &Env{cfg: cfg, defs: make(map[string]expr.Expr)}
}

// Has reports whether name is defined.
func (env *Env) Has(name string) bool {
	_, ok := env.defs[name]
	return ok
}

// Lookup returns the normalized body bound to name.
func (env *Env) Lookup(name string) (expr.Expr, bool) {
	n, ok := env.defs[name]
	if !ok {
		return nil, false
	}
	return expr.Clone(n), true
}

// Names returns the defined names in sorted order.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.defs))
	for name := range env.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Define resolves body against the current table, normalizes it, and binds
// it to name. The normalized body is returned. Redefining an existing name
// is a *DuplicateError unless shadowing is enabled.
func (env *Env) Define(name string, body expr.Expr) (expr.Expr, error) {
	if env.Has(name) && !env.cfg.AllowShadowing {
		return nil, &DuplicateError{Name: name}
	}
	n, err := env.Eval(body)
	if err != nil {
		return nil, err
	}
	env.defs[name] = n
	return expr.Clone(n), nil
}

// Eval resolves body against the current table and returns its normal
// form without binding anything. Identifiers matching defined names are
// treated as references; all others stay plain vertices.
func (env *Env) Eval(body expr.Expr) (expr.Expr, error) {
	bound := expr.Bind(body, env.Has)
	expanded, err := env.substitute(bound)
	if err != nil {
		return nil, err
	}
	return normal.NormalizeLimits(expanded, env.cfg.Limits)
}

func (env *Env) substitute(e expr.Expr) (expr.Expr, error) {
	switch v := e.(type) {
	case expr.Vertex:
		return v, nil
	case expr.VarRef:
		n, ok := env.Lookup(v.Name)
		if !ok {
			return nil, &UndefinedError{Name: v.Name}
		}
		return n, nil
	case expr.Connected:
		members, err := env.substituteMembers(v.Members)
		if err != nil {
			return nil, err
		}
		return expr.Connected{Members: members}, nil
	case expr.Disconnected:
		members, err := env.substituteMembers(v.Members)
		if err != nil {
			return nil, err
		}
		return expr.Disconnected{Members: members}, nil
	}
	return e, nil
}

func (env *Env) substituteMembers(members []expr.Expr) ([]expr.Expr, error) {
	out := make([]expr.Expr, len(members))
	for i, m := range members {
		s, err := env.substitute(m)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
