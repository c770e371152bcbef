// Package dna holds quaternary symbol sequences (one base per byte, 0..3 for
// A, C, G, T) and the inner channel codec that maps strand bytes onto them.
package dna

import (
	"fmt"
	"strings"
)

const (
	A byte = iota
	C
	G
	T
)

const alphabet = "ACGT"

// Seq is a strand of bases, one per byte.
type Seq []byte

// Parse reads an ACGT string, case-insensitive.
func Parse(s string) (Seq, error) {
	out := make(Seq, len(s))
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(alphabet, s[i]&^0x20)
		if idx < 0 {
			return nil, fmt.Errorf("dna: invalid base %q at %d", s[i], i)
		}
		out[i] = byte(idx)
	}
	return out, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(s string) Seq {
	seq, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return seq
}

func (s Seq) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, v := range s {
		b.WriteByte(alphabet[v&3])
	}
	return b.String()
}

func (s Seq) Clone() Seq {
	return append(Seq(nil), s...)
}

// Fit truncates or zero-pads s to exactly n bases.
func (s Seq) Fit(n int) Seq {
	out := make(Seq, n)
	copy(out, s)
	return out
}

// Mismatches counts positions where a and b differ over their common prefix,
// plus the length difference.
func Mismatches(a, b Seq) int {
	n := len(a)
	d := len(b) - len(a)
	if len(b) < n {
		n = len(b)
		d = len(a) - len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// DecodeResult is what an inner decoder recovered from one observed strand.
// Status 0 means full success.
type DecodeResult struct {
	Status int
	Data   []byte
}
