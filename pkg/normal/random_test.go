package normal

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/matzehuels/cliq/pkg/expr"
)

// genExpr builds a random expression with bounded depth. Weights steer the
// mix of cliques and unions so both flattening-heavy and distribution-heavy
// shapes are covered.
func genExpr(rng *rand.Rand, depth, cweight, dweight int) string {
	total := 1 + cweight + dweight
	pick := rng.Intn(total)
	switch {
	case pick == 0 || depth == 0:
		return genName(rng)
	case pick <= cweight:
		return genGroup(rng, '{', '}', depth, cweight, dweight)
	default:
		return genGroup(rng, '[', ']', depth, cweight, dweight)
	}
}

func genGroup(rng *rand.Rand, open, close byte, depth, cweight, dweight int) string {
	n := 1 + rng.Intn(4)
	var b strings.Builder
	b.WriteByte(open)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(genExpr(rng, depth-1, cweight, dweight))
	}
	b.WriteByte(close)
	return b.String()
}

func genName(rng *rand.Rand) string {
	// A small alphabet keeps duplicate members frequent, which exercises
	// deduplication.
	return fmt.Sprintf("N%d", rng.Intn(12))
}

func TestNormalizeRandomIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		src := genExpr(rng, 1+rng.Intn(5), 1+rng.Intn(10), 1+rng.Intn(10))
		e, err := expr.Parse([]byte(src))
		if err != nil {
			t.Fatalf("generated invalid expression %q: %v", src, err)
		}

		once, err := Normalize(e)
		if err != nil {
			// A budget trip is acceptable for a pathological draw; it
			// just must not be silent corruption.
			continue
		}
		if !IsNormal(once) {
			t.Fatalf("Normalize(%q) = %s not normal", src, expr.Format(once))
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("renormalize %q: %v", src, err)
		}
		if !expr.Equal(once, twice) {
			t.Fatalf("Normalize(%q) not idempotent", src)
		}
	}
}

func TestNormalizeRandomCanonFirstAgrees(t *testing.T) {
	// Canonicalizing before normalizing must not change the result.
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		src := genExpr(rng, 1+rng.Intn(4), 5, 5)
		e, err := expr.Parse([]byte(src))
		if err != nil {
			t.Fatalf("generated invalid expression %q: %v", src, err)
		}

		direct, err1 := Normalize(e)
		canonFirst, err2 := Normalize(expr.Canonicalize(e))
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("error disagreement for %q: %v vs %v", src, err1, err2)
		}
		if err1 != nil {
			continue
		}
		if !expr.Equal(direct, canonFirst) {
			t.Fatalf("canon-first disagreement for %q: %s vs %s",
				src, expr.Format(direct), expr.Format(canonFirst))
		}
	}
}
