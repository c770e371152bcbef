package fec

// GF(256) arithmetic using log/antilog tables with primitive polynomial 0x11d
// and generator 0x02.

var (
	gfExp [512]byte
	gfLog [256]byte
)

func init() {
	gf256Init()
}

func gf256Init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[byte(x)] = byte(i)
		x <<= 1
		if (x & 0x100) != 0 { // carry out from bit 8
			x ^= 0x11d
		}
	}
	for i := 255; i < 512; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("fec: division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+255-int(gfLog[b])]
}

func gfInv(a byte) byte {
	if a == 0 {
		return 0
	}
	return gfExp[255-int(gfLog[a])]
}

// alphaPow returns generator^e, with e mod 255.
func alphaPow(e int) byte {
	e %= 255
	if e < 0 {
		e += 255
	}
	return gfExp[e]
}

// Polynomials below are stored lowest degree first: p[i] is the coefficient of x^i.

// polyEval evaluates p at x with Horner's rule.
func polyEval(p []byte, x byte) byte {
	var y byte
	for i := len(p) - 1; i >= 0; i-- {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}

func polyMul(p, q []byte) []byte {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	out := make([]byte, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] ^= gfMul(a, b)
		}
	}
	return out
}

// polyTrunc returns p mod x^n.
func polyTrunc(p []byte, n int) []byte {
	if len(p) > n {
		return p[:n]
	}
	return p
}

// polyDeriv returns the formal derivative of p. In characteristic 2 only the
// odd-degree terms survive.
func polyDeriv(p []byte) []byte {
	if len(p) <= 1 {
		return []byte{0}
	}
	out := make([]byte, len(p)-1)
	for i := 1; i < len(p); i += 2 {
		out[i-1] = p[i]
	}
	return out
}

// polyDegree returns the index of the highest non-zero coefficient, or -1.
func polyDegree(p []byte) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}
