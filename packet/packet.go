// Package packet builds outer-code protected packets of DNA strands: S
// strands of B bytes, the first M carrying plaintext and the last C carrying
// Reed-Solomon style checks computed along diagonal columns.
package packet

import (
	"fmt"

	"github.com/Observe-l/dnastore/internal/strandwire"
)

// Packet is one block of S strands.
type Packet struct {
	ID   int
	Geo  Geometry
	Data *Matrix
}

// New returns an all-zero packet.
func New(id int, geo Geometry) *Packet {
	return &Packet{ID: id, Geo: geo, Data: NewGrid[byte](geo.Strands, geo.StrandBytes)}
}

func (p *Packet) Clone() *Packet {
	return &Packet{ID: p.ID, Geo: p.Geo, Data: p.Data.Clone()}
}

// Strand returns strand i, sharing storage with the packet.
func (p *Packet) Strand(i int) []byte { return p.Data.Row(i) }

// Payload returns the plaintext region of strand i.
func (p *Packet) Payload(i int) []byte {
	return p.Strand(i)[p.Geo.IDBytes : p.Geo.IDBytes+p.Geo.Payload()]
}

// strandID decodes the identifier header of strand i.
func (p *Packet) strandID(i int) (strandwire.StrandID, bool) {
	var h strandwire.StrandID
	ok := h.UnmarshalBinary(p.Strand(i), p.Geo.IDBytes)
	return h, ok
}

// Extract concatenates the payloads of the message strands. Check strands are
// never part of the result, which is always M*P bytes long.
func Extract(p *Packet) []byte {
	pl := p.Geo.Payload()
	out := make([]byte, 0, p.Geo.PlaintextLen())
	for i := 0; i < p.Geo.MessageStrands(); i++ {
		out = append(out, p.Payload(i)[:pl]...)
	}
	return out
}

// Mismatches counts differing bytes between two equal-length buffers.
func Mismatches(want, got []byte) int {
	if len(want) != len(got) {
		panic(fmt.Sprintf("packet: comparing %d bytes with %d", len(want), len(got)))
	}
	n := 0
	for i := range want {
		if want[i] != got[i] {
			n++
		}
	}
	return n
}
