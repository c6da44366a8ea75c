package expr

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLBrace
	tokRBrace
	tokLBrack
	tokRBrack
	tokComma
	tokAssign
	tokInvalid
)

// token is a lexical unit with its byte offset in the source.
type token struct {
	kind tokenKind
	pos  int
	text string
}

// describe renders the token for error messages.
func (t token) describe() string {
	if t.kind == tokEOF {
		return ""
	}
	return t.text
}

// lexer produces tokens from raw bytes. It is byte-oriented on purpose:
// arbitrary (including non-UTF-8) input must yield tokens or tokInvalid,
// never a panic.
type lexer struct {
	src []byte
	pos int
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// next returns the next token, skipping whitespace.
func (l *lexer) next() token {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}
	}

	start := l.pos
	b := l.src[l.pos]
	switch {
	case b == '{':
		l.pos++
		return token{kind: tokLBrace, pos: start, text: "{"}
	case b == '}':
		l.pos++
		return token{kind: tokRBrace, pos: start, text: "}"}
	case b == '[':
		l.pos++
		return token{kind: tokLBrack, pos: start, text: "["}
	case b == ']':
		l.pos++
		return token{kind: tokRBrack, pos: start, text: "]"}
	case b == ',':
		l.pos++
		return token{kind: tokComma, pos: start, text: ","}
	case b == '=':
		l.pos++
		return token{kind: tokAssign, pos: start, text: "="}
	case isIdentStart(b):
		for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, pos: start, text: string(l.src[start:l.pos])}
	default:
		l.pos++
		return token{kind: tokInvalid, pos: start, text: string(l.src[start:l.pos])}
	}
}
