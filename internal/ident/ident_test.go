package ident

import "testing"

// TestNewUnique verifies that consecutive ids differ.
func TestNewUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

// TestSuffixAndShortLength verifies the fixed lengths of derived tails.
func TestSuffixAndShortLength(t *testing.T) {
	if got := len(Suffix()); got != 4 {
		t.Errorf("len(Suffix()) = %d, want 4", got)
	}
	if got := len(Short(6)); got != 6 {
		t.Errorf("len(Short(6)) = %d, want 6", got)
	}
	if got := len(Short(100)); got != 32 {
		t.Errorf("len(Short(100)) = %d, want 32", got)
	}
}
