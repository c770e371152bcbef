package fec

import (
	"fmt"

	rs "github.com/klauspost/reedsolomon"
)

// Erasure wraps klauspost/reedsolomon with one-byte shards. It rebuilds
// erased positions but cannot locate unflagged errors; those are detected by
// re-encoding the rebuilt message and reported with StatusInconsistent.
type Erasure struct {
	k, r int
	enc  rs.Encoder
}

func NewErasure(k, r int) (*Erasure, error) {
	if err := checkShape(k, r); err != nil {
		return nil, err
	}
	enc, err := rs.New(k, r)
	if err != nil {
		return nil, fmt.Errorf("reedsolomon init: %w", err)
	}
	return &Erasure{k: k, r: r, enc: enc}, nil
}

func (c *Erasure) DataShards() int  { return c.k }
func (c *Erasure) TotalShards() int { return c.k + c.r }

func (c *Erasure) Encode(msg []byte) ([]byte, error) {
	if len(msg) != c.k {
		return nil, fmt.Errorf("%w: message length %d != %d", ErrShape, len(msg), c.k)
	}
	shards := make([][]byte, c.k+c.r)
	for i := range shards {
		shards[i] = make([]byte, 1)
		if i < c.k {
			shards[i][0] = msg[i]
		}
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, err
	}
	out := make([]byte, len(shards))
	for i, s := range shards {
		out[i] = s[0]
	}
	return out, nil
}

func (c *Erasure) Decode(recv []byte, erasures []int) Result {
	return decodeByRebuild(c, recv, erasures, func(shards [][]byte) ([]byte, error) {
		if err := c.enc.ReconstructData(shards); err != nil {
			return nil, err
		}
		msg := make([]byte, c.k)
		for i := 0; i < c.k; i++ {
			msg[i] = shards[i][0]
		}
		return msg, nil
	})
}

// decodeByRebuild is the shared decode path of the erasure-only codecs.
// rebuild receives one-byte shards with nil for erased positions and returns
// the recovered message.
func decodeByRebuild(c Codec, recv []byte, erasures []int, rebuild func([][]byte) ([]byte, error)) Result {
	k, n := c.DataShards(), c.TotalShards()
	out := make([]byte, n)
	copy(out, recv)
	if len(recv) != n {
		return Result{Data: out, Status: StatusUncorrectable}
	}
	if cw, err := c.Encode(recv[:k]); err == nil && equalBytes(cw, recv) {
		return Result{Data: out, Status: StatusOK}
	}
	erasures = normalizeErasures(erasures, n)
	f := len(erasures)
	if f > n-k {
		return Result{Data: out, Detected: f, Status: StatusTooManyErasures}
	}
	erased := make([]bool, n)
	for _, e := range erasures {
		erased[e] = true
	}
	shards := make([][]byte, n)
	for i := 0; i < n; i++ {
		if !erased[i] {
			shards[i] = []byte{recv[i]}
		}
	}
	msg, err := rebuild(shards)
	if err != nil || len(msg) != k {
		return Result{Data: out, Detected: f, Status: StatusUncorrectable}
	}
	cw, err := c.Encode(msg)
	if err != nil {
		return Result{Data: out, Detected: f, Status: StatusUncorrectable}
	}
	mismatched := 0
	changed := 0
	for i := 0; i < n; i++ {
		if erased[i] {
			if cw[i] != recv[i] {
				changed++
			}
			out[i] = cw[i]
			continue
		}
		if cw[i] != recv[i] {
			mismatched++
		}
	}
	// every erasure is rebuilt; unflagged mismatches stay unresolved
	res := Result{Data: out, Detected: f + mismatched, Corrected: f, Changed: changed, Status: StatusOK}
	if mismatched > 0 {
		res.Status = StatusInconsistent
	}
	return res
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
