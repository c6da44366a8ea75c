package expr

import (
	"fmt"

	"github.com/matzehuels/cliq/pkg/errors"
)

// SyntaxError reports malformed notation text. Pos is the byte offset of the
// offending input and Expected describes what the parser would have accepted
// there. Syntax errors are always recoverable: the parser returns them and
// never aborts the process, whatever the input bytes.
type SyntaxError struct {
	Pos      int    // byte offset into the source
	Expected string // description of acceptable input at Pos
	Found    string // the token actually seen (may be empty at end of input)
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("syntax error at offset %d: expected %s, found end of input", e.Pos, e.Expected)
	}
	return fmt.Sprintf("syntax error at offset %d: expected %s, found %q", e.Pos, e.Expected, e.Found)
}

// Code returns the error code for this error type.
func (e *SyntaxError) Code() errors.Code { return errors.ErrCodeSyntax }

// LimitError reports a tripped resource guard. It is returned instead of
// recursing without bound when input nesting exceeds the parser's depth limit
// or when normalization would expand past its size limit.
type LimitError struct {
	Limit int    // the configured limit that was exceeded
	What  string // which guard tripped, e.g. "nesting depth"
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("resource limit exceeded: %s over %d", e.What, e.Limit)
}

// Code returns the error code for this error type.
func (e *LimitError) Code() errors.Code { return errors.ErrCodeResourceLimit }
