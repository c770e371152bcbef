// Package channel injects synthesis and sequencing noise into DNA strands.
package channel

import (
	"fmt"
	"math/rand"

	"github.com/Observe-l/dnastore/dna"
)

// Rates are per-base probabilities.
type Rates struct {
	Sub float64 `toml:"sub"`
	Del float64 `toml:"del"`
	Ins float64 `toml:"ins"`
}

// Scale multiplies every rate by f.
func (r Rates) Scale(f float64) Rates {
	return Rates{Sub: r.Sub * f, Del: r.Del * f, Ins: r.Ins * f}
}

func (r Rates) Validate() error {
	for _, p := range []float64{r.Sub, r.Del, r.Ins} {
		if p < 0 || p > 1 {
			return fmt.Errorf("channel: rate %g outside [0,1]", p)
		}
	}
	if r.Ins >= 1 {
		return fmt.Errorf("channel: insertion rate must be below 1")
	}
	return nil
}

func (r Rates) Zero() bool { return r.Sub == 0 && r.Del == 0 && r.Ins == 0 }

// hit is a u<p Bernoulli trial.
func hit(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// Simulator applies independent insertions, deletions and substitutions.
type Simulator struct {
	Rates Rates
}

func New(r Rates) *Simulator { return &Simulator{Rates: r} }

// Inject walks seq once. Before each input base an insertion of a random
// base may occur, which does not consume input; otherwise the base may be
// deleted, substituted by one of the three other bases, or copied.
func (s *Simulator) Inject(seq dna.Seq, rng *rand.Rand) dna.Seq {
	out := make(dna.Seq, 0, len(seq)+len(seq)/8+1)
	for n := 0; n < len(seq); {
		if hit(rng, s.Rates.Ins) {
			out = append(out, byte(rng.Intn(4)))
			continue
		}
		if hit(rng, s.Rates.Del) {
			n++
			continue
		}
		if hit(rng, s.Rates.Sub) {
			out = append(out, (seq[n]+1+byte(rng.Intn(3)))%4)
		} else {
			out = append(out, seq[n])
		}
		n++
	}
	return out
}
