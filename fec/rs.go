package fec

import "fmt"

// RS is a systematic, possibly shortened, Reed-Solomon code over GF(256).
// Codeword position k carries the coefficient of x^(n-1-k); the generator has
// consecutive roots alpha^0 .. alpha^(r-1). Decoding corrects e unlocated
// errors together with f erasures whenever 2e+f <= r.
type RS struct {
	k, r int
	gen  []byte // generator, highest degree first, gen[0] == 1
}

// NewRS returns an RS(k+r, k) code.
func NewRS(k, r int) (*RS, error) {
	if err := checkShape(k, r); err != nil {
		return nil, err
	}
	g := []byte{1}
	for i := 0; i < r; i++ {
		g = polyMul(g, []byte{alphaPow(i), 1})
	}
	gen := make([]byte, len(g))
	for i := range g {
		gen[i] = g[len(g)-1-i]
	}
	return &RS{k: k, r: r, gen: gen}, nil
}

func (c *RS) DataShards() int  { return c.k }
func (c *RS) TotalShards() int { return c.k + c.r }

// Encode appends r check bytes to msg by long division of msg*x^r by the
// generator.
func (c *RS) Encode(msg []byte) ([]byte, error) {
	if len(msg) != c.k {
		return nil, fmt.Errorf("%w: message length %d != %d", ErrShape, len(msg), c.k)
	}
	out := make([]byte, c.k+c.r)
	copy(out, msg)
	for i := 0; i < c.k; i++ {
		coef := out[i]
		if coef == 0 {
			continue
		}
		for j := 1; j <= c.r; j++ {
			out[i+j] ^= gfMul(c.gen[j], coef)
		}
	}
	copy(out, msg)
	return out, nil
}

func (c *RS) syndromes(cw []byte) ([]byte, bool) {
	s := make([]byte, c.r)
	nonzero := false
	for j := 0; j < c.r; j++ {
		x := alphaPow(j)
		var y byte
		for _, b := range cw {
			y = gfMul(y, x) ^ b
		}
		s[j] = y
		if y != 0 {
			nonzero = true
		}
	}
	return s, nonzero
}

// Decode runs errors-and-erasures decoding: Berlekamp-Massey seeded with the
// erasure locator, Chien search over the (shortened) codeword positions and
// Forney's formula for the errata values.
func (c *RS) Decode(recv []byte, erasures []int) Result {
	n := c.k + c.r
	out := make([]byte, n)
	copy(out, recv)
	if len(recv) != n {
		return Result{Data: out, Status: StatusUncorrectable}
	}
	synd, dirty := c.syndromes(recv)
	if !dirty {
		return Result{Data: out, Status: StatusOK}
	}
	erasures = normalizeErasures(erasures, n)
	f := len(erasures)
	if f > c.r {
		return Result{Data: out, Detected: f, Status: StatusTooManyErasures}
	}

	gamma := []byte{1}
	for _, pos := range erasures {
		gamma = polyMul(gamma, []byte{1, alphaPow(n - 1 - pos)})
	}

	lambda := append([]byte(nil), gamma...)
	b := append([]byte(nil), gamma...)
	l := f
	for step := f + 1; step <= c.r; step++ {
		var delta byte
		for i := 0; i < len(lambda) && i <= step-1; i++ {
			delta ^= gfMul(lambda[i], synd[step-1-i])
		}
		xb := append([]byte{0}, b...)
		if delta == 0 {
			b = xb
			continue
		}
		next := make([]byte, maxInt(len(lambda), len(xb)))
		copy(next, lambda)
		for i, v := range xb {
			next[i] ^= gfMul(delta, v)
		}
		if 2*l <= step+f-1 {
			inv := gfInv(delta)
			b = make([]byte, len(lambda))
			for i, v := range lambda {
				b[i] = gfMul(v, inv)
			}
			l = step + f - l
		} else {
			b = xb
		}
		lambda = next
	}

	if polyDegree(lambda) != l || 2*l-f > c.r {
		return Result{Data: out, Detected: l, Status: StatusUncorrectable}
	}

	positions := make([]int, 0, l)
	for k := 0; k < n; k++ {
		if polyEval(lambda, alphaPow(-(n-1-k))) == 0 {
			positions = append(positions, k)
		}
	}
	if len(positions) != l {
		return Result{Data: out, Detected: l, Status: StatusUncorrectable}
	}

	omega := polyTrunc(polyMul(synd, lambda), c.r)
	deriv := polyDeriv(lambda)
	changed := 0
	for _, k := range positions {
		x := alphaPow(n - 1 - k)
		xinv := alphaPow(-(n - 1 - k))
		den := polyEval(deriv, xinv)
		if den == 0 {
			copy(out, recv)
			return Result{Data: out, Detected: l, Status: StatusUncorrectable}
		}
		y := gfMul(x, gfDiv(polyEval(omega, xinv), den))
		if y != 0 {
			out[k] ^= y
			changed++
		}
	}
	if _, dirty := c.syndromes(out); dirty {
		copy(out, recv)
		return Result{Data: out, Detected: l, Status: StatusUncorrectable}
	}
	// an erased byte whose true value equals what was received is still resolved
	return Result{Data: out, Detected: l, Corrected: l, Changed: changed, Status: StatusOK}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
