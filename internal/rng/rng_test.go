package rng

import "testing"

func TestDerive_DistinctTrajectoriesDiverge(t *testing.T) {
	a := Derive(42, 0)
	b := Derive(42, 1)

	if a.Int63() == b.Int63() {
		t.Fatal("Derive(base, 0) and Derive(base, 1) produced the same first draw")
	}
}

func TestDerive_Deterministic(t *testing.T) {
	a := Derive(7, 3)
	b := Derive(7, 3)

	for i := 0; i < 8; i++ {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}
