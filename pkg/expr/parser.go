package expr

// DefaultMaxDepth is the default nesting-depth guard for parsing.
// Deeply nested input returns a LimitError instead of recursing without
// bound, which keeps the parser safe under fuzzing.
const DefaultMaxDepth = 512

// Parse parses a single expression from src. The whole input must be
// consumed: trailing tokens after a complete expression are a syntax error.
func Parse(src []byte) (Expr, error) {
	return ParseDepth(src, DefaultMaxDepth)
}

// ParseDepth is Parse with an explicit nesting-depth limit.
func ParseDepth(src []byte, maxDepth int) (Expr, error) {
	p := newParser(src, maxDepth)
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseProgram parses an ordered sequence of assignments followed by a
// target expression. Identifiers matching a defined name anywhere in the
// program are bound as variable references, so forward references take part
// in cycle detection during resolution.
func ParseProgram(src []byte) (*Program, error) {
	return ParseProgramDepth(src, DefaultMaxDepth)
}

// ParseProgramDepth is ParseProgram with an explicit nesting-depth limit.
func ParseProgramDepth(src []byte, maxDepth int) (*Program, error) {
	p := newParser(src, maxDepth)

	var defs []Definition
	for p.cur.kind == tokIdent && p.nxt.kind == tokAssign {
		name := p.cur.text
		p.advance() // identifier
		p.advance() // '='
		body, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		defs = append(defs, Definition{Name: name, Body: body})
	}

	target, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		names[d.Name] = struct{}{}
	}
	defined := func(name string) bool {
		_, ok := names[name]
		return ok
	}
	for i := range defs {
		defs[i].Body = Bind(defs[i].Body, defined)
	}
	return &Program{
		Definitions: defs,
		Target:      Bind(target, defined),
	}, nil
}

// ParseLine parses a single REPL line as either an assignment or a bare
// expression. Exactly one of the returned definition and expression is
// non-nil on success.
func ParseLine(src []byte) (*Definition, Expr, error) {
	p := newParser(src, DefaultMaxDepth)

	if p.cur.kind == tokIdent && p.nxt.kind == tokAssign {
		name := p.cur.text
		p.advance()
		p.advance()
		body, err := p.parseExpr(0)
		if err != nil {
			return nil, nil, err
		}
		if err := p.expectEOF(); err != nil {
			return nil, nil, err
		}
		return &Definition{Name: name, Body: body}, nil, nil
	}

	e, err := p.parseExpr(0)
	if err != nil {
		return nil, nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, nil, err
	}
	return nil, e, nil
}

// parser is a recursive-descent parser with two tokens of lookahead.
// The second token disambiguates assignments (identifier '=') from a bare
// identifier expression without backtracking.
type parser struct {
	lex      lexer
	cur, nxt token
	maxDepth int
}

func newParser(src []byte, maxDepth int) *parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{lex: lexer{src: src}, maxDepth: maxDepth}
	p.cur = p.lex.next()
	p.nxt = p.lex.next()
	return p
}

func (p *parser) advance() {
	p.cur = p.nxt
	p.nxt = p.lex.next()
}

func (p *parser) errExpected(what string) error {
	return &SyntaxError{Pos: p.cur.pos, Expected: what, Found: p.cur.describe()}
}

func (p *parser) expectEOF() error {
	if p.cur.kind != tokEOF {
		return p.errExpected("end of input")
	}
	return nil
}

func (p *parser) parseExpr(depth int) (Expr, error) {
	if depth >= p.maxDepth {
		return nil, &LimitError{Limit: p.maxDepth, What: "nesting depth"}
	}

	switch p.cur.kind {
	case tokIdent:
		v := Vertex{Name: p.cur.text}
		p.advance()
		return v, nil
	case tokLBrace:
		members, err := p.parseGroup(depth, tokRBrace, "'}'")
		if err != nil {
			return nil, err
		}
		return Connected{Members: members}, nil
	case tokLBrack:
		members, err := p.parseGroup(depth, tokRBrack, "']'")
		if err != nil {
			return nil, err
		}
		return Disconnected{Members: members}, nil
	default:
		return nil, p.errExpected("identifier, '{' or '['")
	}
}

// parseGroup parses a comma-separated member list up to the closing token.
// A trailing comma before the close is accepted; an empty group is not.
func (p *parser) parseGroup(depth int, close tokenKind, closeDesc string) ([]Expr, error) {
	p.advance() // opening bracket

	var members []Expr
	for {
		if p.cur.kind == close {
			if len(members) == 0 {
				return nil, p.errExpected("expression (empty groups are not allowed)")
			}
			p.advance()
			return members, nil
		}

		m, err := p.parseExpr(depth + 1)
		if err != nil {
			return nil, err
		}
		members = append(members, m)

		switch p.cur.kind {
		case tokComma:
			p.advance()
		case close:
			p.advance()
			return members, nil
		default:
			return nil, p.errExpected("',' or " + closeDesc)
		}
	}
}
