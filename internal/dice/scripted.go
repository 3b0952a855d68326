package dice

// Scripted is a Roller that replays fixed values. Ints answers Intn calls
// and Floats answers Float64 calls, each in order. Once a script runs out
// the last value repeats; an empty script yields 0.
//
// Intn values are reduced modulo n so a script never escapes the
// requested range.
type Scripted struct {
	Ints   []int
	Floats []float64

	intCalls   int
	floatCalls int
}

// Intn returns the next scripted integer in [0, n).
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with non-positive n")
	}
	v := next(s.Ints, s.intCalls)
	s.intCalls++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Float64 returns the next scripted float.
func (s *Scripted) Float64() float64 {
	v := next(s.Floats, s.floatCalls)
	s.floatCalls++
	return v
}

// IntCalls returns how many times Intn has been called.
func (s *Scripted) IntCalls() int { return s.intCalls }

// FloatCalls returns how many times Float64 has been called.
func (s *Scripted) FloatCalls() int { return s.floatCalls }

func next[T int | float64](values []T, i int) T {
	if len(values) == 0 {
		var zero T
		return zero
	}
	if i >= len(values) {
		return values[len(values)-1]
	}
	return values[i]
}
