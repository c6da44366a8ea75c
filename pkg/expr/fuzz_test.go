package expr

import "testing"

// FuzzParse feeds arbitrary bytes to the parser. The required property is
// that parsing returns either a valid expression or a well-formed error,
// never a panic, whatever the input (including non-UTF-8 garbage).
func FuzzParse(f *testing.F) {
	seeds := []string{
		"A",
		"{A,B}",
		"[A,{B,C},]",
		"[{A,B},[C,D]]",
		"{S,[A,B,C,D]}",
		"G1 = [A, B]\nG2 = {X, G1}\nG2",
		"{}",
		"{A",
		"]]]",
		"\xff\xfe{",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if e, err := Parse(data); err == nil {
			// A successful parse must round-trip through canonicalization
			// and keep its key stable.
			c := Canonicalize(e)
			if Key(c) != Key(Canonicalize(c)) {
				t.Errorf("canonicalization not idempotent for %q", data)
			}
		}
		// Programs share the lexer and expression grammar but add the
		// assignment form; they must be just as crash-free.
		_, _ = ParseProgram(data)
	})
}
