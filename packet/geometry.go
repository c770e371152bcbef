package packet

import (
	"errors"
	"fmt"

	"github.com/Observe-l/dnastore/internal/strandwire"
)

var ErrGeometry = errors.New("packet: invalid geometry")

// Geometry fixes the shape of every packet in a run.
//
//	strand i:  [ id bytes | payload (P bytes) | runout bytes ]
//	rows 0..M-1 carry plaintext, rows M..S-1 carry outer-code checks.
type Geometry struct {
	Strands      int // S, outer code length
	CheckStrands int // C
	StrandBytes  int // B
	IDBytes      int
	RunoutBytes  int
	// Step is the diagonal slope of the interleave; zero means 1.
	Step int
}

func (g Geometry) MessageStrands() int { return g.Strands - g.CheckStrands }

// Payload is P, the plaintext bytes carried per strand.
func (g Geometry) Payload() int { return g.StrandBytes - g.IDBytes - g.RunoutBytes }

// PlaintextLen is the number of plaintext bytes per packet, M*P.
func (g Geometry) PlaintextLen() int { return g.MessageStrands() * g.Payload() }

func (g Geometry) step() int {
	if g.Step == 0 {
		return 1
	}
	return g.Step
}

func (g Geometry) Validate() error {
	switch {
	case g.Strands < 2 || g.Strands > 255:
		return fmt.Errorf("%w: %d strands, need 2..255", ErrGeometry, g.Strands)
	case g.CheckStrands < 1 || g.CheckStrands >= g.Strands:
		return fmt.Errorf("%w: %d check strands of %d", ErrGeometry, g.CheckStrands, g.Strands)
	case g.IDBytes < strandwire.MinLen || g.IDBytes > strandwire.MaxLen:
		return fmt.Errorf("%w: %d id bytes, need %d..%d", ErrGeometry, g.IDBytes, strandwire.MinLen, strandwire.MaxLen)
	case g.RunoutBytes < 0:
		return fmt.Errorf("%w: negative runout bytes", ErrGeometry)
	case g.Payload() < 1:
		return fmt.Errorf("%w: %d bytes per strand leave no payload", ErrGeometry, g.StrandBytes)
	case g.Step < 0:
		return fmt.Errorf("%w: negative interleave step", ErrGeometry)
	}
	return nil
}

// MaxPacketID is the largest packet id the identifier bytes can carry.
func (g Geometry) MaxPacketID() int {
	return int(strandwire.MaxPacket(g.IDBytes))
}

// Offset maps outer-code column j and strand i to the strand byte offset
// holding that codeword symbol:
//
//	IDBytes + (j + Step*i) mod P
//
// For a fixed strand i the map j -> offset is a bijection onto the payload,
// so each strand contributes exactly one symbol to each of the P codewords.
// Protect and Correct both go through this function.
func (g Geometry) Offset(strand, column int) int {
	p := g.Payload()
	return g.IDBytes + ((column+g.step()*strand)%p+p)%p
}
