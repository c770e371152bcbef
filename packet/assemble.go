package packet

import (
	"fmt"

	"github.com/Observe-l/dnastore/internal/strandwire"
)

// Assembler slices a plaintext stream into packets.
type Assembler struct {
	geo Geometry
	src Source
}

func NewAssembler(geo Geometry, src Source) (*Assembler, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrEmptySource
	}
	return &Assembler{geo: geo, src: src}, nil
}

// Assemble builds packet id: every strand gets its (packet, index) header,
// message strands get the next P plaintext bytes, check strands stay zero
// until Protect fills them. It also returns the M*P plaintext bytes used.
func (a *Assembler) Assemble(id int) (*Packet, []byte, error) {
	if id < 0 || id > a.geo.MaxPacketID() {
		return nil, nil, fmt.Errorf("%w: packet id %d outside 0..%d", ErrGeometry, id, a.geo.MaxPacketID())
	}
	p := New(id, a.geo)
	pl := a.geo.Payload()
	expected := make([]byte, 0, a.geo.PlaintextLen())
	for i := 0; i < a.geo.Strands; i++ {
		h := strandwire.StrandID{Packet: uint32(id), Index: uint8(i)}
		if err := h.MarshalBinary(p.Strand(i), a.geo.IDBytes); err != nil {
			return nil, nil, err
		}
		if i < a.geo.MessageStrands() {
			text := a.src.Next(pl)
			copy(p.Payload(i), text)
			expected = append(expected, text...)
		}
	}
	return p, expected, nil
}
