package dice

import "testing"

func TestBetweenInclusive(t *testing.T) {
	r := New(7)
	seenLo, seenHi := false, false
	for i := 0; i < 2000; i++ {
		v := Between(r, 3, 6)
		if v < 3 || v > 6 {
			t.Fatalf("Between(3, 6) = %d, out of range", v)
		}
		if v == 3 {
			seenLo = true
		}
		if v == 6 {
			seenHi = true
		}
	}
	if !seenLo || !seenHi {
		t.Errorf("expected both bounds to be drawn, lo=%v hi=%v", seenLo, seenHi)
	}
}

func TestBetweenSwapsBounds(t *testing.T) {
	s := &Scripted{Ints: []int{0}}
	if got := Between(s, 9, 4); got != 4 {
		t.Errorf("Between(9, 4) with draw 0 = %d, want 4", got)
	}
}

func TestScriptedReplaysAndRepeatsLast(t *testing.T) {
	s := &Scripted{Ints: []int{5, 2}, Floats: []float64{0.25}}

	if got := s.Intn(10); got != 5 {
		t.Errorf("first Intn = %d, want 5", got)
	}
	if got := s.Intn(10); got != 2 {
		t.Errorf("second Intn = %d, want 2", got)
	}
	if got := s.Intn(10); got != 2 {
		t.Errorf("exhausted Intn = %d, want last value 2", got)
	}
	if got := s.Intn(2); got != 0 {
		t.Errorf("Intn(2) with scripted 2 = %d, want 0 (reduced modulo n)", got)
	}
	if got := s.Float64(); got != 0.25 {
		t.Errorf("Float64 = %v, want 0.25", got)
	}
	if s.IntCalls() != 4 || s.FloatCalls() != 1 {
		t.Errorf("calls = (%d, %d), want (4, 1)", s.IntCalls(), s.FloatCalls())
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(12345), New(12345)
	for i := 0; i < 10; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d mismatch: %d != %d", i, x, y)
		}
	}
}
