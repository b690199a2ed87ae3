package rng

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// Source yields uniform random draws. Every shuffle, dice roll, and wheel
// outcome in the engines goes through a Source so that tests can substitute
// a deterministic sequence.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64

	// Intn returns a uniform draw in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// Stream is an HMAC-SHA256 byte stream keyed by a seed string. Each 32-byte
// round hashes "<round>" with the seed as the HMAC key; floats consume 4
// bytes each. The same seed always produces the same sequence.
type Stream struct {
	seed       string
	round      uint64
	pos        int
	buffer     [32]byte
}

// NewStream creates a deterministic stream from the given seed.
func NewStream(seed string) *Stream {
	s := &Stream{seed: seed}
	s.fill()
	return s
}

// NewSeededStream creates a stream keyed by 32 bytes from crypto/rand.
func NewSeededStream() (*Stream, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return nil, fmt.Errorf("seeding rng: %w", err)
	}
	return NewStream(hex.EncodeToString(raw[:])), nil
}

func (s *Stream) fill() {
	h := hmac.New(sha256.New, []byte(s.seed))
	fmt.Fprintf(h, "%d", s.round)
	copy(s.buffer[:], h.Sum(nil))
}

func (s *Stream) next() byte {
	if s.pos >= 32 {
		s.round++
		s.pos = 0
		s.fill()
	}
	b := s.buffer[s.pos]
	s.pos++
	return b
}

// Float64 consumes exactly 4 bytes and maps them to [0, 1).
func (s *Stream) Float64() float64 {
	result := 0.0
	for i := 0; i < 4; i++ {
		divider := math.Pow(256, float64(i+1))
		result += float64(s.next()) / divider
	}
	return result
}

// Intn maps the next float to an integer in [0, n).
func (s *Stream) Intn(n int) int {
	return indexFromFloat(s.Float64(), n)
}

// indexFromFloat converts a float in [0,1) to an index in [0, n),
// clamping against rounding at the edges.
func indexFromFloat(f float64, n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: Intn called with n=%d", n))
	}
	index := int(math.Floor(f * float64(n)))
	if index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
