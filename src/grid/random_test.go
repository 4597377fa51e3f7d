package grid

import "testing"

func TestRandSourceIsDeterministic(t *testing.T) {
	a, b := NewRandSource(42), NewRandSource(42)
	for i := 0; i < 256; i++ {
		if a.Bool() != b.Bool() {
			t.Fatalf("draw %d differs for the same seed", i)
		}
	}
}

func TestRandSourceProducesBothValues(t *testing.T) {
	s := NewRandSource(7)
	seen := map[bool]bool{}
	for i := 0; i < 256; i++ {
		seen[s.Bool()] = true
	}
	if !seen[true] || !seen[false] {
		t.Fatalf("256 draws produced only %v", seen)
	}
}
