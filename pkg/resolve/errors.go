package resolve

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cliq/pkg/errors"
)

// CycleError reports a cyclic definition chain. Chain lists the names on
// the cycle in reference order, starting from the first name that closes it.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic definition: %s", strings.Join(e.Chain, " -> "))
}

// Code implements errors.Coder.
func (e *CycleError) Code() errors.Code { return errors.ErrCodeCyclicDefinition }

// UndefinedError reports a variable reference with no matching definition.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// Code implements errors.Coder.
func (e *UndefinedError) Code() errors.Code { return errors.ErrCodeUndefinedVariable }

// DuplicateError reports a name defined more than once while shadowing is
// disabled.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate definition of %q", e.Name)
}

// Code implements errors.Coder.
func (e *DuplicateError) Code() errors.Code { return errors.ErrCodeDuplicateDefinition }
