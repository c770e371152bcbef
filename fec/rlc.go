package fec

import (
	"errors"
	"fmt"
	"math/rand"
)

// RLC is a systematic random linear code over GF(256). Check symbol j is
// sum_i coeff[j][i]*msg[i] with non-zero coefficients drawn from a generator
// seeded by the code shape, so encoder and decoder agree without a
// coefficient header. Like the other erasure codecs it rebuilds flagged
// positions only.
type RLC struct {
	k, r  int
	coeff [][]byte
}

var errRankDeficient = errors.New("rlc: received combinations are rank deficient")

func rlcSeed(k, r int) int64 { return int64(k)<<8 | int64(r) }

func NewRLC(k, r int) (*RLC, error) {
	if err := checkShape(k, r); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(rlcSeed(k, r)))
	coeff := make([][]byte, r)
	for j := range coeff {
		coeff[j] = make([]byte, k)
		// non-zero coefficients to reduce rank deficiency
		for i := range coeff[j] {
			coeff[j][i] = byte(1 + rng.Intn(255))
		}
	}
	return &RLC{k: k, r: r, coeff: coeff}, nil
}

func (c *RLC) DataShards() int  { return c.k }
func (c *RLC) TotalShards() int { return c.k + c.r }

func (c *RLC) Encode(msg []byte) ([]byte, error) {
	if len(msg) != c.k {
		return nil, fmt.Errorf("%w: message length %d != %d", ErrShape, len(msg), c.k)
	}
	out := make([]byte, c.k+c.r)
	copy(out, msg)
	for j, row := range c.coeff {
		var y byte
		for i, a := range row {
			y ^= gfMul(a, msg[i])
		}
		out[c.k+j] = y
	}
	return out, nil
}

func (c *RLC) Decode(recv []byte, erasures []int) Result {
	return decodeByRebuild(c, recv, erasures, c.solve)
}

// solve recovers the erased message symbols from the surviving check
// symbols. Known message symbols are folded into the right-hand side first,
// so elimination only runs over the unknowns.
func (c *RLC) solve(shards [][]byte) ([]byte, error) {
	msg := make([]byte, c.k)
	var unknown []int
	for i := 0; i < c.k; i++ {
		if shards[i] == nil {
			unknown = append(unknown, i)
			continue
		}
		msg[i] = shards[i][0]
	}
	n := len(unknown)
	if n == 0 {
		return msg, nil
	}

	type row struct {
		vec []byte
		y   byte
	}
	rows := make([]row, 0, c.r)
	for j := 0; j < c.r; j++ {
		s := shards[c.k+j]
		if s == nil {
			continue
		}
		y := s[0]
		for i := 0; i < c.k; i++ {
			if shards[i] != nil {
				y ^= gfMul(c.coeff[j][i], msg[i])
			}
		}
		vec := make([]byte, n)
		for u, i := range unknown {
			vec[u] = c.coeff[j][i]
		}
		rows = append(rows, row{vec: vec, y: y})
	}
	if len(rows) < n {
		return nil, errRankDeficient
	}

	// Gauss-Jordan over GF(256)
	for col := 0; col < n; col++ {
		pr := -1
		for i := col; i < len(rows); i++ {
			if rows[i].vec[col] != 0 {
				pr = i
				break
			}
		}
		if pr == -1 {
			return nil, errRankDeficient
		}
		rows[col], rows[pr] = rows[pr], rows[col]
		inv := gfInv(rows[col].vec[col])
		for t := col; t < n; t++ {
			rows[col].vec[t] = gfMul(rows[col].vec[t], inv)
		}
		rows[col].y = gfMul(rows[col].y, inv)
		for i := range rows {
			a := rows[i].vec[col]
			if i == col || a == 0 {
				continue
			}
			for t := col; t < n; t++ {
				rows[i].vec[t] ^= gfMul(a, rows[col].vec[t])
			}
			rows[i].y ^= gfMul(a, rows[col].y)
		}
	}
	for u, i := range unknown {
		msg[i] = rows[u].y
	}
	return msg, nil
}
