package core

import "testing"

func TestSimpleRNGDeterministic(t *testing.T) {
	a := NewSimpleRNG(42)
	b := NewSimpleRNG(42)

	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewSimpleRNG(7)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, expected [0, 1)", f)
		}
		n := r.Intn(5)
		if n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d, expected [0, 5)", n)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestSimpleRNGZeroSeed(t *testing.T) {
	r := NewSimpleRNG(0)
	if r.State() == 0 {
		t.Error("zero seed should be replaced with a non-zero state")
	}
}

func TestScriptRNG(t *testing.T) {
	r := NewScriptRNG(0.1, 0.9)

	if got := r.Float64(); got != 0.1 {
		t.Errorf("Float64() = %v, expected 0.1", got)
	}
	if got := r.Intn(10); got != 9 {
		t.Errorf("Intn(10) = %d, expected 9", got)
	}
	// Cycles
	if got := r.Float64(); got != 0.1 {
		t.Errorf("Float64() after wrap = %v, expected 0.1", got)
	}
}

func TestIntRange(t *testing.T) {
	r := NewSimpleRNG(3)
	for i := 0; i < 200; i++ {
		v := IntRange(r, 100, 150)
		if v < 100 || v > 150 {
			t.Fatalf("IntRange(100, 150) = %d", v)
		}
	}
	if IntRange(r, 5, 1) != 5 {
		t.Error("IntRange with max < min should return min")
	}
}
