package dna

import (
	"errors"
	"fmt"
)

// fillerPattern is the fixed pad inserted ahead of the right anchor of strands
// whose encoding comes out short. It is repeated when more is needed.
var fillerPattern = Seq{0, 2, 1, 3, 0, 3, 2, 1, 2, 0, 3, 1, 3, 1, 2, 0, 2, 3, 1, 0, 3, 2, 1, 0, 1, 3}

// Filler returns n bases of the deterministic filler.
func Filler(n int) Seq {
	out := make(Seq, n)
	for i := range out {
		out[i] = fillerPattern[i%len(fillerPattern)]
	}
	return out
}

// Zone is the half-open range [Start, End) of a strand holding filler.
// Start == End means no filler was inserted.
type Zone struct {
	Start, End int
}

func (z Zone) Len() int { return z.End - z.Start }

var ErrTooLong = errors.New("dna: encoded strand longer than strand length")

// Splice pads seq to total bases by inserting filler directly ahead of its
// trailing anchorLen bases. The anchor keeps its position at the very end of
// the strand and the filler never overlaps it. Filler bases may break the
// sequence constraints; that is accepted inside the returned zone only.
func Splice(seq Seq, total, anchorLen int) (Seq, Zone, error) {
	if len(seq) > total {
		return nil, Zone{}, fmt.Errorf("%w: %d > %d", ErrTooLong, len(seq), total)
	}
	if anchorLen < 0 || anchorLen > len(seq) {
		return nil, Zone{}, fmt.Errorf("dna: anchor length %d outside encoded length %d", anchorLen, len(seq))
	}
	cut := len(seq) - anchorLen
	if len(seq) == total {
		return seq.Clone(), Zone{Start: cut, End: cut}, nil
	}
	pad := total - len(seq)
	out := make(Seq, 0, total)
	out = append(out, seq[:cut]...)
	out = append(out, Filler(pad)...)
	out = append(out, seq[cut:]...)
	return out, Zone{Start: cut, End: cut + pad}, nil
}
