package pipeline

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Observe-l/dnastore/dna"
)

// InnerCodec turns one strand of bytes into bases and back. Decode must
// tolerate noisy input; a non-zero Status marks the strand as failed, and
// whatever Data it returns is still used.
type InnerCodec interface {
	Encode(msg []byte) (dna.Seq, error)
	Decode(observed dna.Seq, nbits int) dna.DecodeResult
}

// Channel corrupts one encoded strand. rng is owned by the caller and is
// never shared between strands.
type Channel interface {
	Inject(seq dna.Seq, rng *rand.Rand) dna.Seq
}

var ErrStrandTooLong = errors.New("pipeline: encoded strand exceeds strand length")

// Encoded is one strand ready for synthesis.
type Encoded struct {
	Seq dna.Seq
	// Zone holds the spliced filler; it ends where the anchor begins.
	Zone dna.Zone
	// Violations counts constraint breaks outside the filler zone.
	Violations int
}

// InnerAdapter bridges packet rows and an InnerCodec at a fixed strand
// length in bases.
type InnerAdapter struct {
	codec       InnerCodec
	strandLen   int
	anchorLen   int
	constraints dna.Constraints
}

func NewInnerAdapter(codec InnerCodec, strandLen, anchorLen int, c dna.Constraints) (*InnerAdapter, error) {
	if codec == nil {
		return nil, errors.New("pipeline: nil inner codec")
	}
	if strandLen <= 0 || anchorLen < 0 || anchorLen > strandLen {
		return nil, fmt.Errorf("pipeline: strand length %d with anchor %d", strandLen, anchorLen)
	}
	return &InnerAdapter{codec: codec, strandLen: strandLen, anchorLen: anchorLen, constraints: c}, nil
}

func (a *InnerAdapter) StrandLen() int { return a.strandLen }

// EncodeStrand encodes row and splices filler ahead of the trailing anchor
// when the codec output is short.
func (a *InnerAdapter) EncodeStrand(row []byte) (Encoded, error) {
	seq, err := a.codec.Encode(row)
	if err != nil {
		return Encoded{}, fmt.Errorf("inner encode: %w", err)
	}
	if len(seq) > a.strandLen {
		return Encoded{}, fmt.Errorf("%w: %d > %d bases", ErrStrandTooLong, len(seq), a.strandLen)
	}
	out, zone, err := dna.Splice(seq, a.strandLen, a.anchorLen)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Seq: out, Zone: zone, Violations: a.violations(out, zone)}, nil
}

// violations skips windows that reach into the filler. A GC window or a run
// ending up to max(window, run limit) bases after the zone may still
// contain filler bases.
func (a *InnerAdapter) violations(seq dna.Seq, zone dna.Zone) int {
	if zone.Len() == 0 {
		return len(a.constraints.Violations(seq))
	}
	reach := a.constraints.GCWindow
	if a.constraints.MaxHomopolymer > reach {
		reach = a.constraints.MaxHomopolymer
	}
	return a.constraints.CountOutside(seq, zone.Start, zone.End+reach)
}

// DecodeStrand asks the codec for nbytes bytes.
func (a *InnerAdapter) DecodeStrand(observed dna.Seq, nbytes int) dna.DecodeResult {
	return a.codec.Decode(observed, 8*nbytes)
}

// DecodeInto decodes observed into row, clearing the erasure flag of every
// byte the codec produced. Bytes it did not produce stay erased. It reports
// whether the codec signalled failure.
func (a *InnerAdapter) DecodeInto(observed dna.Seq, row []byte, erased []bool) (failed bool) {
	res := a.DecodeStrand(observed, len(row))
	n := len(res.Data)
	if n > len(row) {
		n = len(row)
	}
	copy(row[:n], res.Data[:n])
	for k := 0; k < n; k++ {
		erased[k] = false
	}
	return res.Status != dna.StatusOK
}
