package dna

import (
	"errors"
	"fmt"
)

// Decode status codes of Direct.
const (
	StatusOK          = 0
	StatusShort       = 1 // observed strand too short for the message
	StatusLeftAnchor  = 2 // left primer not found in place
	StatusRightAnchor = 3 // right primer misaligned, usually an indel
)

// DefaultAnchorTolerance accepts a few substituted primer bases.
const DefaultAnchorTolerance = 4

// DirectConfig configures a Direct codec once, at construction.
type DirectConfig struct {
	LeftPrimer  Seq
	RightPrimer Seq
	// AnchorTolerance is the number of mismatching bases still accepted in
	// either primer.
	AnchorTolerance int
}

// Direct is the baseline inner codec: left primer, two bits per base MSB
// first, right primer. It corrects nothing. Substitutions pass through as
// byte errors and any strand whose anchors are out of place is reported as
// failed with no bytes, which the outer code then sees as a full erasure.
type Direct struct {
	cfg DirectConfig
}

func NewDirect(cfg DirectConfig) (*Direct, error) {
	if len(cfg.RightPrimer) == 0 {
		return nil, errors.New("dna: direct codec needs a right primer")
	}
	if cfg.AnchorTolerance < 0 {
		return nil, fmt.Errorf("dna: negative anchor tolerance %d", cfg.AnchorTolerance)
	}
	return &Direct{cfg: cfg}, nil
}

// EncodedLen is the number of bases Encode produces for n message bytes.
func (d *Direct) EncodedLen(n int) int {
	return len(d.cfg.LeftPrimer) + 4*n + len(d.cfg.RightPrimer)
}

// AnchorLen is the length of the trailing anchor region.
func (d *Direct) AnchorLen() int { return len(d.cfg.RightPrimer) }

func (d *Direct) Encode(msg []byte) (Seq, error) {
	out := make(Seq, 0, d.EncodedLen(len(msg)))
	out = append(out, d.cfg.LeftPrimer...)
	for _, b := range msg {
		out = append(out, b>>6&3, b>>4&3, b>>2&3, b&3)
	}
	out = append(out, d.cfg.RightPrimer...)
	return out, nil
}

// Decode expects observed to end with the right primer, which is where a
// fixed-length strand keeps it after filler splicing.
func (d *Direct) Decode(observed Seq, nbits int) DecodeResult {
	nbytes := (nbits + 7) / 8
	left, right := len(d.cfg.LeftPrimer), len(d.cfg.RightPrimer)
	if len(observed) < left+4*nbytes+right {
		return DecodeResult{Status: StatusShort}
	}
	if Mismatches(observed[:left], d.cfg.LeftPrimer) > d.cfg.AnchorTolerance {
		return DecodeResult{Status: StatusLeftAnchor}
	}
	if Mismatches(observed[len(observed)-right:], d.cfg.RightPrimer) > d.cfg.AnchorTolerance {
		return DecodeResult{Status: StatusRightAnchor}
	}
	out := make([]byte, nbytes)
	body := observed[left:]
	for i := range out {
		q := body[4*i : 4*i+4]
		out[i] = q[0]&3<<6 | q[1]&3<<4 | q[2]&3<<2 | q[3]&3
	}
	return DecodeResult{Status: StatusOK, Data: out}
}
