package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSyntax, "unexpected token %q", "}")

	if err.ErrCode != ErrCodeSyntax {
		t.Errorf("code = %q, want %q", err.ErrCode, ErrCodeSyntax)
	}
	if err.Message != `unexpected token "}"` {
		t.Errorf("message = %q", err.Message)
	}
	want := `SYNTAX_ERROR: unexpected token "}"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write artifact")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "INTERNAL_ERROR: write artifact: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"Matching", New(ErrCodeResourceLimit, "too deep"), ErrCodeResourceLimit, true},
		{"NonMatching", New(ErrCodeResourceLimit, "too deep"), ErrCodeSyntax, false},
		{"Wrapped", fmt.Errorf("outer: %w", New(ErrCodeCyclicDefinition, "G1")), ErrCodeCyclicDefinition, true},
		{"Plain", stderrors.New("plain"), ErrCodeSyntax, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUndefinedVariable, "G9")); got != ErrCodeUndefinedVariable {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidFormat, "bad format")); got != "bad format" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
