package core

import "math/rand"

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRand returns a math/rand backed source for the given seed.
func NewRand(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of values, cycling when exhausted.
// Used to script the generator in tests and bots.
type SequenceSource struct {
	Values []float64
	next   int
}

// Float64 returns the next scripted value.
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
