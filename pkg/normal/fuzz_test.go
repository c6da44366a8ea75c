package normal

import (
	"testing"

	"github.com/matzehuels/cliq/pkg/expr"
)

// FuzzNormalize checks that normalization of any parseable input terminates
// within its budget and yields a stable normal form, never a panic.
func FuzzNormalize(f *testing.F) {
	seeds := []string{
		"A",
		"{A,[B,C]}",
		"{[A,B],[X,Y]}",
		"[{A,B},{B,A}]",
		"{A,[{B,C},D],E,[F,G]}",
		"{[A,B],[A,B],[A,B]}",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		e, err := expr.Parse(data)
		if err != nil {
			return
		}
		// A tight budget keeps fuzz iterations fast; tripping it is a
		// valid outcome, not a failure.
		n, err := NormalizeLimits(e, Limits{MaxMembers: 1 << 12})
		if err != nil {
			return
		}
		if !IsNormal(n) {
			t.Fatalf("result %s of %q is not normal", expr.Format(n), data)
		}
		again, err := NormalizeLimits(n, Limits{MaxMembers: 1 << 12})
		if err != nil {
			t.Fatalf("renormalizing %s: %v", expr.Format(n), err)
		}
		if !expr.Equal(n, again) {
			t.Fatalf("normal form of %q not stable: %s vs %s",
				data, expr.Format(n), expr.Format(again))
		}
	})
}
