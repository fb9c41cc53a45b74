package user

import (
	"math/rand"
	"testing"
)

func TestAccountNumbers_Next(t *testing.T) {
	g := NewAccountNumbersWithSource(rand.NewSource(42))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := g.Next()
		if len(n) != 10 {
			t.Fatalf("account number %q: want 10 digits, got %d", n, len(n))
		}
		for _, r := range n {
			if r < '0' || r > '9' {
				t.Fatalf("account number %q contains non-digit %q", n, r)
			}
		}
		seen[n] = true
	}
	if len(seen) < 90 {
		t.Fatalf("suspiciously many collisions: %d unique of 100", len(seen))
	}
}

func TestAccountNumbers_Deterministic(t *testing.T) {
	a := NewAccountNumbersWithSource(rand.NewSource(7))
	b := NewAccountNumbersWithSource(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("same seed diverged at %d: %s vs %s", i, x, y)
		}
	}
}
