// Package pipeline drives packets through the two-layer code: assemble,
// outer protect, inner encode, channel, inner decode, outer correct, verify.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/fec"
	"github.com/Observe-l/dnastore/packet"
)

// Options configure a Runner. Everything is checked by NewRunner.
type Options struct {
	Geometry packet.Geometry
	Outer    fec.Codec
	Inner    InnerCodec
	// Channel may be nil for a noiseless run.
	Channel Channel
	Source  packet.Source
	// StrandLength is the number of bases of every synthesized strand and
	// AnchorLength the fixed marker at its end.
	StrandLength int
	AnchorLength int
	Constraints  dna.Constraints
	Workers      int
	Seed         int64
	Logger       *zerolog.Logger
}

// PacketResult is the outcome of one packet.
type PacketResult struct {
	ID        int
	Stats     Stats
	Expected  []byte
	Recovered []byte
}

func (r PacketResult) OK() bool { return r.Stats.OK() }

// RunResult aggregates a run.
type RunResult struct {
	Packets    []PacketResult
	BadPackets int
	Total      Stats
}

// OK is true only if every packet came back without a mismatched byte.
func (r RunResult) OK() bool { return r.BadPackets == 0 && r.Total.Mismatches == 0 }

// Runner owns the per-run state: the plaintext cursor and the codecs.
// RunPacket calls are serialized on the source only; the rest of a packet
// has no shared state.
type Runner struct {
	geo       packet.Geometry
	coder     *packet.Coder
	inner     *InnerAdapter
	channel   Channel
	seed      int64
	workers   int
	log       zerolog.Logger
	mu        sync.Mutex
	assembler *packet.Assembler
}

// NewRunner validates the configuration eagerly, including a trial encode
// of an all-zero strand so that a strand length too short for the inner
// codec is rejected before any packet runs.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Outer == nil || opts.Inner == nil || opts.Source == nil {
		return nil, errors.New("pipeline: outer codec, inner codec and source are required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	coder, err := packet.NewCoder(opts.Outer, opts.Geometry, workers)
	if err != nil {
		return nil, err
	}
	asm, err := packet.NewAssembler(opts.Geometry, opts.Source)
	if err != nil {
		return nil, err
	}
	inner, err := NewInnerAdapter(opts.Inner, opts.StrandLength, opts.AnchorLength, opts.Constraints)
	if err != nil {
		return nil, err
	}
	if _, err := inner.EncodeStrand(make([]byte, opts.Geometry.StrandBytes)); err != nil {
		return nil, fmt.Errorf("pipeline: %d-byte strands do not fit %d bases: %w",
			opts.Geometry.StrandBytes, opts.StrandLength, err)
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Runner{
		geo:       opts.Geometry,
		coder:     coder,
		inner:     inner,
		channel:   opts.Channel,
		seed:      opts.Seed,
		workers:   workers,
		log:       log,
		assembler: asm,
	}, nil
}

func (r *Runner) Geometry() packet.Geometry { return r.geo }

// strandSeed mixes the run seed with the strand coordinates (splitmix64
// finalizer) so every strand draws its own noise regardless of scheduling.
func strandSeed(seed int64, id, strand int) int64 {
	z := uint64(seed) + uint64(id)<<20 + uint64(strand) + 0x9e3779b97f4a7c15
	z = (z ^ z>>30) * 0xbf58476d1ce4e5b9
	z = (z ^ z>>27) * 0x94d049bb133111eb
	return int64(z ^ z>>31)
}

type strandOut struct {
	observed   dna.Seq
	violations int
	failed     bool
}

// RunPacket processes packet id end to end. Decoding trouble ends up in the
// stats; the error result is reserved for cancellation and misconfiguration.
func (r *Runner) RunPacket(ctx context.Context, id int) (PacketResult, error) {
	r.mu.Lock()
	p, expected, err := r.assembler.Assemble(id)
	r.mu.Unlock()
	if err != nil {
		return PacketResult{}, err
	}
	prot, err := r.coder.Protect(p)
	if err != nil {
		return PacketResult{}, fmt.Errorf("protect packet %d: %w", id, err)
	}

	strands := make([]strandOut, r.geo.Strands)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range strands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			enc, err := r.inner.EncodeStrand(prot.Strand(i))
			if err != nil {
				return fmt.Errorf("packet %d strand %d: %w", id, i, err)
			}
			obs := enc.Seq
			if r.channel != nil {
				rng := rand.New(rand.NewSource(strandSeed(r.seed, id, i)))
				obs = r.channel.Inject(enc.Seq, rng).Fit(r.inner.StrandLen())
			}
			strands[i] = strandOut{observed: obs, violations: enc.Violations}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PacketResult{}, err
	}

	recv := packet.New(id, r.geo)
	mask := packet.NewMask(r.geo.Strands, r.geo.StrandBytes)
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range strands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			strands[i].failed = r.inner.DecodeInto(strands[i].observed, recv.Strand(i), mask.Row(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PacketResult{}, err
	}

	var st Stats
	for _, s := range strands {
		st.ConstraintViolations += s.violations
		if s.failed {
			st.InnerFailures++
		}
	}
	st.ErasureBytes = r.erasedPayload(mask)

	corrected, outer, err := r.coder.Correct(recv, mask)
	if err != nil {
		return PacketResult{}, fmt.Errorf("correct packet %d: %w", id, err)
	}
	st = withOuter(st, outer)
	got := packet.Extract(corrected)
	st.Mismatches = packet.Mismatches(expected, got)

	r.log.Debug().
		Int("packet", id).
		Int("inner_failures", st.InnerFailures).
		Int("erasures", st.ErasureBytes).
		Int("outer_detected", st.OuterDetected).
		Int("outer_failures", st.OuterFailures).
		Int("mismatches", st.Mismatches).
		Msg("packet done")

	return PacketResult{ID: id, Stats: st, Expected: expected, Recovered: got}, nil
}

func (r *Runner) erasedPayload(mask *packet.Mask) int {
	n := 0
	for i := 0; i < r.geo.Strands; i++ {
		for _, e := range mask.Row(i)[r.geo.IDBytes : r.geo.IDBytes+r.geo.Payload()] {
			if e {
				n++
			}
		}
	}
	return n
}

// Run processes packets 0..n-1 in order. onPacket, when set, sees each
// packet after it has been folded into the total.
func (r *Runner) Run(ctx context.Context, n int, onPacket func(PacketResult)) (RunResult, error) {
	if n < 0 || n-1 > r.geo.MaxPacketID() {
		return RunResult{}, fmt.Errorf("%w: %d packets need ids beyond %d", packet.ErrGeometry, n, r.geo.MaxPacketID())
	}
	var res RunResult
	for id := 0; id < n; id++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		pr, err := r.RunPacket(ctx, id)
		if err != nil {
			return res, err
		}
		res.Packets = append(res.Packets, pr)
		res.Total = res.Total.Add(pr.Stats)
		if !pr.OK() {
			res.BadPackets++
		}
		if onPacket != nil {
			onPacket(pr)
		}
	}
	lvl := zerolog.InfoLevel
	if !res.OK() {
		lvl = zerolog.WarnLevel
	}
	r.log.WithLevel(lvl).Int("packets", n).Int("bad_packets", res.BadPackets).Int("mismatches", res.Total.Mismatches).Msg("run finished")
	return res, nil
}
