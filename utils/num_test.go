package utils

import "testing"

func TestRound(t *testing.T) {
	if got := Round(59.96, 1); got != 60.0 {
		t.Fatalf("Round(59.96, 1) = %v, want 60", got)
	}
	if got := Round(1.2345678, 6); got != 1.234568 {
		t.Fatalf("Round(1.2345678, 6) = %v, want 1.234568", got)
	}
	if got := Round(10, 1); got != 10 {
		t.Fatalf("Round(10, 1) = %v, want 10", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 50); got != 0 {
		t.Fatalf("Clamp(-3, 0, 50) = %v, want 0", got)
	}
	if got := Clamp(999, 0, 50); got != 50 {
		t.Fatalf("Clamp(999, 0, 50) = %v, want 50", got)
	}
	if got := Clamp(25, 0, 50); got != 25 {
		t.Fatalf("Clamp(25, 0, 50) = %v, want 25", got)
	}
}
