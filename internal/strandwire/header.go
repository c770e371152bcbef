package strandwire

import (
	"errors"
	"fmt"
)

// Header widths accepted by Marshal/Unmarshal. The last byte is the strand
// index, the leading bytes are the packet id, big-endian.
const (
	MinLen = 2
	MaxLen = 4
)

var ErrLen = errors.New("strandwire: header length out of range")

// StrandID identifies a strand within the archive.
type StrandID struct {
	Packet uint32
	Index  uint8
}

// MaxPacket returns the largest packet id that fits a header of n bytes.
func MaxPacket(n int) uint32 {
	if n < MinLen || n > MaxLen {
		return 0
	}
	return uint32(1)<<(8*uint(n-1)) - 1
}

// MarshalBinary writes the id into the first n bytes of b.
func (h StrandID) MarshalBinary(b []byte, n int) error {
	if n < MinLen || n > MaxLen {
		return fmt.Errorf("%w: %d", ErrLen, n)
	}
	if len(b) < n {
		return fmt.Errorf("strandwire: buffer %d shorter than header %d", len(b), n)
	}
	if h.Packet > MaxPacket(n) {
		return fmt.Errorf("strandwire: packet %d does not fit %d id bytes", h.Packet, n)
	}
	p := h.Packet
	for i := n - 2; i >= 0; i-- {
		b[i] = byte(p)
		p >>= 8
	}
	b[n-1] = h.Index
	return nil
}

// UnmarshalBinary reads an n-byte header from b.
func (h *StrandID) UnmarshalBinary(b []byte, n int) bool {
	if n < MinLen || n > MaxLen || len(b) < n {
		return false
	}
	var p uint32
	for i := 0; i < n-1; i++ {
		p = p<<8 | uint32(b[i])
	}
	h.Packet = p
	h.Index = b[n-1]
	return true
}
