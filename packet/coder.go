package packet

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Observe-l/dnastore/fec"
)

// OuterStats summarizes one Correct call across all P columns.
type OuterStats struct {
	Detected       int // errata located, summed over columns
	MaxDetected    int
	Uncorrected    int // max(0, detected-corrected), summed over columns
	MaxUncorrected int
	Failures       int // columns with a non-zero decoder status
}

func (s *OuterStats) add(r fec.Result) {
	s.Detected += r.Detected
	if r.Detected > s.MaxDetected {
		s.MaxDetected = r.Detected
	}
	u := r.Uncorrected()
	s.Uncorrected += u
	if u > s.MaxUncorrected {
		s.MaxUncorrected = u
	}
	if r.Status != fec.StatusOK {
		s.Failures++
	}
}

// Coder runs an outer codec over the diagonal columns of a packet.
type Coder struct {
	codec   fec.Codec
	geo     Geometry
	workers int
}

// NewCoder checks that the codec shape matches the geometry: S total
// shards, M data shards. workers <= 0 means GOMAXPROCS.
func NewCoder(codec fec.Codec, geo Geometry, workers int) (*Coder, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if codec.TotalShards() != geo.Strands || codec.DataShards() != geo.MessageStrands() {
		return nil, fmt.Errorf("%w: codec is (%d,%d), packet is (%d,%d)", ErrGeometry,
			codec.TotalShards(), codec.DataShards(), geo.Strands, geo.MessageStrands())
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Coder{codec: codec, geo: geo, workers: workers}, nil
}

func (c *Coder) Geometry() Geometry { return c.geo }

func (c *Coder) check(p *Packet) error {
	if p.Geo != c.geo || !p.Data.SameShape(c.geo.Strands, c.geo.StrandBytes) {
		return fmt.Errorf("%w: packet %d does not match coder geometry", ErrGeometry, p.ID)
	}
	return nil
}

// Protect returns a copy of p whose check strands carry the outer code.
// Columns are independent and touch disjoint cells, so they run in parallel.
func (c *Coder) Protect(p *Packet) (*Packet, error) {
	if err := c.check(p); err != nil {
		return nil, err
	}
	out := p.Clone()
	m := c.geo.MessageStrands()

	var g errgroup.Group
	g.SetLimit(c.workers)
	for j := 0; j < c.geo.Payload(); j++ {
		g.Go(func() error {
			col := make([]byte, c.geo.Strands)
			c.geo.GatherColumn(out.Data, j, col)
			cw, err := c.codec.Encode(col[:m])
			if err != nil {
				return fmt.Errorf("column %d: %w", j, err)
			}
			if len(cw) != c.geo.Strands {
				return fmt.Errorf("column %d: codeword has %d symbols, want %d", j, len(cw), c.geo.Strands)
			}
			c.geo.ScatterColumn(out.Data, j, cw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Correct decodes every column of p using mask as erasure locations and
// returns the corrected copy. Decoder trouble is reported in the stats,
// never as an error; the error result is for shape mismatches only.
func (c *Coder) Correct(p *Packet, mask *Mask) (*Packet, OuterStats, error) {
	var st OuterStats
	if err := c.check(p); err != nil {
		return nil, st, err
	}
	if !mask.SameShape(c.geo.Strands, c.geo.StrandBytes) {
		return nil, st, fmt.Errorf("%w: mask is %dx%d, packet is %dx%d", ErrGeometry,
			mask.Rows(), mask.Cols(), c.geo.Strands, c.geo.StrandBytes)
	}
	out := p.Clone()
	results := make([]fec.Result, c.geo.Payload())

	var g errgroup.Group
	g.SetLimit(c.workers)
	for j := range results {
		g.Go(func() error {
			col := make([]byte, c.geo.Strands)
			c.geo.GatherColumn(out.Data, j, col)
			r := c.codec.Decode(col, c.geo.ErasedPositions(mask, j))
			if len(r.Data) == c.geo.Strands {
				c.geo.ScatterColumn(out.Data, j, r.Data)
			}
			results[j] = r
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		st.add(r)
	}
	return out, st, nil
}
