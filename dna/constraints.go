package dna

// Constraints bounds GC content over a sliding window and homopolymer run
// length. A zero field disables that check.
type Constraints struct {
	GCWindow       int
	MaxGC          int
	MinGC          int
	MaxHomopolymer int
}

// Violations returns the positions at which a window ending there has GC
// content outside [MinGC, MaxGC], or a homopolymer run exceeds its limit.
// Each position is reported at most once.
func (c Constraints) Violations(s Seq) []int {
	var out []int
	gc := 0
	run := 0
	for i, b := range s {
		if isGC(b) {
			gc++
		}
		if c.GCWindow > 0 && i >= c.GCWindow && isGC(s[i-c.GCWindow]) {
			gc--
		}
		if i > 0 && s[i] == s[i-1] {
			run++
		} else {
			run = 1
		}
		bad := false
		if c.GCWindow > 0 && i+1 >= c.GCWindow {
			if (c.MaxGC > 0 && gc > c.MaxGC) || gc < c.MinGC {
				bad = true
			}
		}
		if c.MaxHomopolymer > 0 && run > c.MaxHomopolymer {
			bad = true
		}
		if bad {
			out = append(out, i)
		}
	}
	return out
}

// CountOutside counts violations whose position is outside [start, end).
func (c Constraints) CountOutside(s Seq, start, end int) int {
	n := 0
	for _, p := range c.Violations(s) {
		if p < start || p >= end {
			n++
		}
	}
	return n
}

func isGC(b byte) bool { return b == C || b == G }
