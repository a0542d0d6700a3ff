package rng

import (
	"math"
	"testing"
)

func TestSameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		x, y := a.Uniform(-3, 7), b.Uniform(-3, 7)
		if x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 16; i++ {
		if a.Uniform(0, 1) == b.Uniform(0, 1) {
			same++
		}
	}
	if same == 16 {
		t.Error("seeds 1 and 2 produced identical streams")
	}
}

func TestUniformRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("Uniform(10, 20) = %v, out of range", v)
		}
		a := s.UniformAngle()
		if a < 0 || a >= 2*math.Pi {
			t.Fatalf("UniformAngle() = %v, out of range", a)
		}
	}
}

func TestDegenerateRange(t *testing.T) {
	for _, seed := range []uint64{0, 1, 99, math.MaxUint64} {
		s := New(seed)
		for i := 0; i < 10; i++ {
			if v := s.Uniform(2, 2); v != 2 {
				t.Fatalf("seed %d: Uniform(2, 2) = %v, want 2", seed, v)
			}
		}
	}
}

func TestSeedReported(t *testing.T) {
	if seed, ok := New(5).Seed(); !ok || seed != 5 {
		t.Errorf("Seed() = %d, %v, want 5, true", seed, ok)
	}
	if _, ok := NewUnseeded().Seed(); ok {
		t.Error("unseeded source reports a seed")
	}
}
