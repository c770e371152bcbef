package fec

import (
	"errors"
	"fmt"

	rqq "github.com/xssnick/raptorq"
)

// RaptorQ uses systematic RaptorQ with one-byte symbols as a column code.
// Source symbols carry ids 0..k-1; the r repair symbols carry ids starting
// at the library's base symbol count so that they never alias a source id.
type RaptorQ struct {
	k, r int
	base uint32
}

func NewRaptorQ(k, r int) (*RaptorQ, error) {
	if err := checkShape(k, r); err != nil {
		return nil, err
	}
	enc, err := rqq.NewRaptorQ(1).CreateEncoder(make([]byte, k))
	if err != nil {
		return nil, fmt.Errorf("raptorq init: %w", err)
	}
	return &RaptorQ{k: k, r: r, base: enc.BaseSymbolsNum()}, nil
}

func (c *RaptorQ) DataShards() int  { return c.k }
func (c *RaptorQ) TotalShards() int { return c.k + c.r }

func (c *RaptorQ) symbolID(pos int) uint32 {
	if pos < c.k {
		return uint32(pos)
	}
	return c.base + uint32(pos-c.k)
}

func (c *RaptorQ) Encode(msg []byte) ([]byte, error) {
	if len(msg) != c.k {
		return nil, fmt.Errorf("%w: message length %d != %d", ErrShape, len(msg), c.k)
	}
	enc, err := rqq.NewRaptorQ(1).CreateEncoder(msg)
	if err != nil {
		return nil, err
	}
	out := make([]byte, c.k+c.r)
	copy(out, msg)
	for i := c.k; i < len(out); i++ {
		sym := enc.GenSymbol(c.symbolID(i))
		if len(sym) == 0 {
			return nil, errors.New("raptorq: empty repair symbol")
		}
		out[i] = sym[0]
	}
	return out, nil
}

func (c *RaptorQ) Decode(recv []byte, erasures []int) Result {
	return decodeByRebuild(c, recv, erasures, func(shards [][]byte) ([]byte, error) {
		dec, err := rqq.NewRaptorQ(1).CreateDecoder(uint32(c.k))
		if err != nil {
			return nil, err
		}
		for i, s := range shards {
			if s == nil {
				continue
			}
			// a rejected symbol only lowers the chance of decoding
			_, _ = dec.AddSymbol(c.symbolID(i), s)
		}
		ok, data, err := dec.Decode()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("raptorq: not enough symbols")
		}
		return data, nil
	})
}
