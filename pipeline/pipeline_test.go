package pipeline_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/fec"
	"github.com/Observe-l/dnastore/internal/channel"
	"github.com/Observe-l/dnastore/packet"
	"github.com/Observe-l/dnastore/pipeline"
)

var testGeo = packet.Geometry{
	Strands:      15,
	CheckStrands: 4,
	StrandBytes:  10,
	IDBytes:      2,
	RunoutBytes:  1,
}

const (
	leftPrimer  = "ACGTACGT"
	rightPrimer = "TTGACCAG"
	// 8 + 4*10 + 8 bases of direct encoding, padded with 4 filler bases
	strandLen = 60
)

func newDirect(t *testing.T) *dna.Direct {
	t.Helper()
	d, err := dna.NewDirect(dna.DirectConfig{
		LeftPrimer:      dna.MustParse(leftPrimer),
		RightPrimer:     dna.MustParse(rightPrimer),
		AnchorTolerance: dna.DefaultAnchorTolerance,
	})
	require.NoError(t, err)
	return d
}

func newRunner(t *testing.T, ch pipeline.Channel, text string) *pipeline.Runner {
	t.Helper()
	outer, err := fec.NewRS(testGeo.MessageStrands(), testGeo.CheckStrands)
	require.NoError(t, err)
	src, err := packet.NewCyclicSource([]byte(text))
	require.NoError(t, err)
	r, err := pipeline.NewRunner(pipeline.Options{
		Geometry:     testGeo,
		Outer:        outer,
		Inner:        newDirect(t),
		Channel:      ch,
		Source:       src,
		StrandLength: strandLen,
		AnchorLength: len(rightPrimer),
		Workers:      4,
		Seed:         11,
	})
	require.NoError(t, err)
	return r
}

// strandIndex reads the strand index back out of a direct-encoded strand.
func strandIndex(seq dna.Seq) int {
	q := seq[len(leftPrimer)+4 : len(leftPrimer)+8]
	return int(q[0]<<6 | q[1]<<4 | q[2]<<2 | q[3])
}

func TestStatsAdd(t *testing.T) {
	a := pipeline.Stats{InnerFailures: 1, ErasureBytes: 2, OuterDetected: 3, MaxOuterDetected: 1, Mismatches: 0}
	b := pipeline.Stats{InnerFailures: 2, OuterUncorrected: 4, MaxOuterUncorrected: 2, OuterFailures: 1, Mismatches: 5, ConstraintViolations: 7}
	sum := a.Add(b)
	require.Equal(t, [8]int{3, 2, 3, 1, 4, 2, 1, 5}, sum.Fields())
	require.Equal(t, 7, sum.ConstraintViolations)
	require.True(t, a.OK())
	require.False(t, sum.OK())
	require.Equal(t, sum, b.Add(a))
	require.Equal(t, a, a.Add(pipeline.Stats{}))
}

func TestEncodeStrandSplicesFiller(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockInnerCodec(ctrl)
	body := dna.MustParse("AAAAACT")
	inner.EXPECT().Encode([]byte{1, 2}).Return(body, nil).Times(2)

	a, err := pipeline.NewInnerAdapter(inner, 12, 2, dna.Constraints{MaxHomopolymer: 3})
	require.NoError(t, err)
	enc, err := a.EncodeStrand([]byte{1, 2})
	require.NoError(t, err)
	require.Len(t, enc.Seq, 12)
	require.Equal(t, dna.Zone{Start: 5, End: 10}, enc.Zone)
	require.Equal(t, "CT", enc.Seq[10:].String())
	require.Equal(t, dna.Filler(5), enc.Seq[5:10])
	// the run of five A is counted, its continuation into the filler is not
	require.Equal(t, 2, enc.Violations)

	exact, err := pipeline.NewInnerAdapter(inner, 7, 2, dna.Constraints{MaxHomopolymer: 3})
	require.NoError(t, err)
	enc, err = exact.EncodeStrand([]byte{1, 2})
	require.NoError(t, err)
	require.Zero(t, enc.Zone.Len())
	require.Equal(t, body, enc.Seq)
	require.Equal(t, 2, enc.Violations)
}

func TestEncodeStrandTooLong(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockInnerCodec(ctrl)
	inner.EXPECT().Encode(gomock.Any()).Return(dna.MustParse("ACGTACGT"), nil)
	a, err := pipeline.NewInnerAdapter(inner, 6, 2, dna.Constraints{})
	require.NoError(t, err)
	_, err = a.EncodeStrand([]byte{0})
	require.ErrorIs(t, err, pipeline.ErrStrandTooLong)
}

// TestDecodeIntoPartial ensures only bytes the codec produced are unmasked.
func TestDecodeIntoPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockInnerCodec(ctrl)
	inner.EXPECT().Decode(gomock.Any(), 80).Return(dna.DecodeResult{Status: 1, Data: []byte{7, 8, 9}})
	a, err := pipeline.NewInnerAdapter(inner, 10, 0, dna.Constraints{})
	require.NoError(t, err)

	row := make([]byte, 10)
	erased := make([]bool, 10)
	for i := range erased {
		erased[i] = true
	}
	failed := a.DecodeInto(dna.MustParse("ACGT"), row, erased)
	require.True(t, failed)
	require.Equal(t, []byte{7, 8, 9, 0, 0, 0, 0, 0, 0, 0}, row)
	require.Equal(t, []bool{false, false, false, true, true, true, true, true, true, true}, erased)
}

func TestDecodeIntoOverlong(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockInnerCodec(ctrl)
	inner.EXPECT().Decode(gomock.Any(), 16).Return(dna.DecodeResult{Data: []byte{1, 2, 3, 4}})
	a, err := pipeline.NewInnerAdapter(inner, 10, 0, dna.Constraints{})
	require.NoError(t, err)
	row := make([]byte, 2)
	erased := []bool{true, true}
	require.False(t, a.DecodeInto(nil, row, erased))
	require.Equal(t, []byte{1, 2}, row)
	require.Equal(t, []bool{false, false}, erased)
}

func TestRunnerNoiseless(t *testing.T) {
	r := newRunner(t, nil, "ABCDEFGHIJ")
	res, err := r.Run(context.Background(), 3, nil)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Len(t, res.Packets, 3)
	require.Equal(t, pipeline.Stats{}, res.Total)
	for _, p := range res.Packets {
		require.Equal(t, p.Expected, p.Recovered)
		require.Len(t, p.Recovered, testGeo.PlaintextLen())
	}
}

// TestRunnerRecoversLostStrands drops the first base of three strands: their
// anchors no longer line up, the inner codec fails them, and the outer code
// rebuilds them from the erasure mask.
func TestRunnerRecoversLostStrands(t *testing.T) {
	ctrl := gomock.NewController(t)
	ch := NewMockChannel(ctrl)
	lost := map[int]bool{1: true, 4: true, 12: true}
	ch.EXPECT().Inject(gomock.Any(), gomock.Any()).DoAndReturn(func(seq dna.Seq, _ *rand.Rand) dna.Seq {
		if lost[strandIndex(seq)] {
			return seq[1:].Clone()
		}
		return seq.Clone()
	}).Times(testGeo.Strands)

	r := newRunner(t, ch, "the quick brown fox jumps")
	pr, err := r.RunPacket(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, pr.OK())
	require.Equal(t, 3, pr.Stats.InnerFailures)
	require.Equal(t, 3*testGeo.Payload(), pr.Stats.ErasureBytes)
	require.Equal(t, 3*testGeo.Payload(), pr.Stats.OuterDetected)
	require.Equal(t, 3, pr.Stats.MaxOuterDetected)
	require.Zero(t, pr.Stats.OuterFailures)
}

func TestRunnerTooManyLostStrands(t *testing.T) {
	ctrl := gomock.NewController(t)
	ch := NewMockChannel(ctrl)
	ch.EXPECT().Inject(gomock.Any(), gomock.Any()).DoAndReturn(func(seq dna.Seq, _ *rand.Rand) dna.Seq {
		if strandIndex(seq) < 5 {
			return seq[1:].Clone()
		}
		return seq.Clone()
	}).Times(testGeo.Strands)

	r := newRunner(t, ch, "payload")
	pr, err := r.RunPacket(context.Background(), 0)
	require.NoError(t, err)
	require.False(t, pr.OK())
	require.Equal(t, 5, pr.Stats.InnerFailures)
	require.Equal(t, testGeo.Payload(), pr.Stats.OuterFailures)
	require.Positive(t, pr.Stats.Mismatches)
}

// TestRunnerDeterministic ensures a seeded run gives the same statistics no
// matter how strands are scheduled.
func TestRunnerDeterministic(t *testing.T) {
	sim := channel.New(channel.Rates{Sub: 0.01, Del: 0.003, Ins: 0.003})
	a, err := newRunner(t, sim, "determinism").Run(context.Background(), 5, nil)
	require.NoError(t, err)
	b, err := newRunner(t, sim, "determinism").Run(context.Background(), 5, nil)
	require.NoError(t, err)
	require.Equal(t, a.Total, b.Total)
}

func TestRunnerRejectsShortStrands(t *testing.T) {
	outer, err := fec.NewRS(testGeo.MessageStrands(), testGeo.CheckStrands)
	require.NoError(t, err)
	_, err = pipeline.NewRunner(pipeline.Options{
		Geometry:     testGeo,
		Outer:        outer,
		Inner:        newDirect(t),
		Source:       packet.NewRandomSource(1),
		StrandLength: 50,
		AnchorLength: len(rightPrimer),
	})
	require.ErrorIs(t, err, pipeline.ErrStrandTooLong)
}

func TestRunnerRejectsCodecShape(t *testing.T) {
	outer, err := fec.NewRS(10, 5)
	require.NoError(t, err)
	_, err = pipeline.NewRunner(pipeline.Options{
		Geometry:     testGeo,
		Outer:        outer,
		Inner:        newDirect(t),
		Source:       packet.NewRandomSource(1),
		StrandLength: strandLen,
	})
	require.ErrorIs(t, err, packet.ErrGeometry)
}

func TestRunnerCancelled(t *testing.T) {
	r := newRunner(t, nil, "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, 2, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerCallback(t *testing.T) {
	r := newRunner(t, nil, "callback")
	var ids []int
	_, err := r.Run(context.Background(), 4, func(p pipeline.PacketResult) { ids = append(ids, p.ID) })
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, ids)

	_, err = r.Run(context.Background(), 257, nil)
	require.ErrorIs(t, err, packet.ErrGeometry)
}
