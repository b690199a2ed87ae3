package rng

// Sequence is a canned Source for tests: it replays the given floats in
// order and panics when exhausted, so a test that draws more than it
// queued fails loudly.
type Sequence struct {
	floats []float64
	pos    int
}

// NewSequence builds a Sequence from explicit floats in [0, 1).
func NewSequence(floats ...float64) *Sequence {
	return &Sequence{floats: floats}
}

// Float64 returns the next queued float.
func (s *Sequence) Float64() float64 {
	if s.pos >= len(s.floats) {
		panic("rng: sequence exhausted")
	}
	f := s.floats[s.pos]
	s.pos++
	return f
}

// Intn maps the next queued float to [0, n).
func (s *Sequence) Intn(n int) int {
	return indexFromFloat(s.Float64(), n)
}

// FloatFor returns a float that Intn(n) maps back to k. Test helper for
// expressing draws as outcomes rather than raw floats.
func FloatFor(k, n int) float64 {
	return (float64(k) + 0.5) / float64(n)
}
