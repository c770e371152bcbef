package fec

import (
	"errors"
	"fmt"
	"strings"
)

// Status codes reported by Codec.Decode. Anything other than StatusOK means
// the returned data is a best effort and should be treated as suspect.
const (
	StatusOK              = 0
	StatusTooManyErasures = 1
	StatusUncorrectable   = 2
	StatusInconsistent    = 3
)

// Codec is a systematic block code over bytes: DataShards message symbols
// followed by TotalShards-DataShards check symbols.
type Codec interface {
	DataShards() int
	TotalShards() int
	// Encode takes exactly DataShards bytes and returns the TotalShards-byte
	// codeword whose prefix is msg.
	Encode(msg []byte) ([]byte, error)
	// Decode corrects a received codeword. erasures lists positions known to
	// be unreliable.
	Decode(recv []byte, erasures []int) Result
}

// Result of decoding one codeword.
type Result struct {
	Data      []byte
	Detected  int // errata positions found, erasures included
	Corrected int // errata resolved, whether or not the byte value moved
	Changed   int // positions whose byte value was rewritten
	Status    int
}

// Uncorrected is the number of detected errata the decoder did not change.
func (r Result) Uncorrected() int {
	if r.Detected > r.Corrected {
		return r.Detected - r.Corrected
	}
	return 0
}

var ErrShape = errors.New("fec: bad codeword shape")

// Names accepted by New.
const (
	NameRS          = "rs"
	NameReedSolomon = "reedsolomon"
	NameRaptorQ     = "raptorq"
	NameRLC         = "rlc"
)

// New builds the codec registered under name with k message symbols and r
// check symbols.
func New(name string, k, r int) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameRS, "":
		return NewRS(k, r)
	case NameReedSolomon:
		return NewErasure(k, r)
	case NameRaptorQ:
		return NewRaptorQ(k, r)
	case NameRLC:
		return NewRLC(k, r)
	default:
		return nil, fmt.Errorf("fec: unknown codec %q", name)
	}
}

// normalizeErasures drops duplicates and out-of-range positions.
func normalizeErasures(erasures []int, n int) []int {
	if len(erasures) == 0 {
		return nil
	}
	seen := make([]bool, n)
	out := make([]int, 0, len(erasures))
	for _, e := range erasures {
		if e < 0 || e >= n || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func checkShape(k, r int) error {
	if k <= 0 || r <= 0 {
		return fmt.Errorf("%w: k=%d r=%d", ErrShape, k, r)
	}
	if k+r > 255 {
		return fmt.Errorf("%w: n=%d exceeds 255", ErrShape, k+r)
	}
	return nil
}
