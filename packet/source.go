package packet

import (
	"errors"
	"math/rand"
)

// Source supplies plaintext. Next always returns exactly n bytes and
// advances its cursor.
type Source interface {
	Next(n int) []byte
}

var ErrEmptySource = errors.New("packet: empty plaintext")

// CyclicSource reads a byte slice and wraps around its end, so the stream is
// the text repeated forever.
type CyclicSource struct {
	data []byte
	off  int
}

func NewCyclicSource(data []byte) (*CyclicSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptySource
	}
	return &CyclicSource{data: data}, nil
}

func (s *CyclicSource) Next(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = s.data[s.off]
		s.off++
		if s.off == len(s.data) {
			s.off = 0
		}
	}
	return out
}

// RestartSource jumps back to offset 0 whenever the remaining tail is
// shorter than the request, so every read is a contiguous slice of the text.
type RestartSource struct {
	data []byte
	off  int
}

func NewRestartSource(data []byte) (*RestartSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptySource
	}
	return &RestartSource{data: data}, nil
}

func (s *RestartSource) Next(n int) []byte {
	if n > len(s.data) {
		// cannot be contiguous; fall back to repeating the text
		c := CyclicSource{data: s.data}
		return c.Next(n)
	}
	if s.off+n > len(s.data) {
		s.off = 0
	}
	out := make([]byte, n)
	copy(out, s.data[s.off:s.off+n])
	s.off += n
	return out
}

// RandomSource yields uniform random bytes from a seeded generator.
type RandomSource struct {
	rng *rand.Rand
}

func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) Next(n int) []byte {
	out := make([]byte, n)
	s.rng.Read(out)
	return out
}
