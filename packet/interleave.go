package packet

// Diagonal interleave over the strand matrix. Column j of a packet is the
// codeword {strand i, byte Offset(i, j)} for i in [0, S). A strand that comes
// back badly damaged therefore costs each codeword at most one symbol.

// GatherColumn copies column j of m into dst (len S).
func (g Geometry) GatherColumn(m *Matrix, j int, dst []byte) {
	for i := 0; i < g.Strands; i++ {
		dst[i] = m.At(i, g.Offset(i, j))
	}
}

// ScatterColumn writes src (len S) back along column j of m.
func (g Geometry) ScatterColumn(m *Matrix, j int, src []byte) {
	for i := 0; i < g.Strands; i++ {
		m.Set(i, g.Offset(i, j), src[i])
	}
}

// ErasedPositions lists the strands whose symbol in column j is flagged.
func (g Geometry) ErasedPositions(mask *Mask, j int) []int {
	var out []int
	for i := 0; i < g.Strands; i++ {
		if mask.At(i, g.Offset(i, j)) {
			out = append(out, i)
		}
	}
	return out
}

// columnOf inverts Offset: it returns the column that strand i's payload
// byte at offset off belongs to, or -1 outside the payload.
func (g Geometry) columnOf(strand, off int) int {
	p := g.Payload()
	if off < g.IDBytes || off >= g.IDBytes+p {
		return -1
	}
	j := (off - g.IDBytes - g.step()*strand) % p
	if j < 0 {
		j += p
	}
	return j
}
