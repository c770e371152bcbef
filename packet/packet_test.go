package packet_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Observe-l/dnastore/fec"
	"github.com/Observe-l/dnastore/packet"
)

var smallGeo = packet.Geometry{
	Strands:      15,
	CheckStrands: 4,
	StrandBytes:  10,
	IDBytes:      2,
	RunoutBytes:  1,
}

func assemble(t *testing.T, geo packet.Geometry, text string) (*packet.Packet, []byte) {
	t.Helper()
	src, err := packet.NewCyclicSource([]byte(text))
	require.NoError(t, err)
	a, err := packet.NewAssembler(geo, src)
	require.NoError(t, err)
	p, expected, err := a.Assemble(7)
	require.NoError(t, err)
	return p, expected
}

func TestGeometryValidate(t *testing.T) {
	require.NoError(t, smallGeo.Validate())
	require.Equal(t, 11, smallGeo.MessageStrands())
	require.Equal(t, 7, smallGeo.Payload())

	bad := []packet.Geometry{
		{Strands: 256, CheckStrands: 32, StrandBytes: 10, IDBytes: 2},
		{Strands: 10, CheckStrands: 0, StrandBytes: 10, IDBytes: 2},
		{Strands: 10, CheckStrands: 10, StrandBytes: 10, IDBytes: 2},
		{Strands: 10, CheckStrands: 2, StrandBytes: 10, IDBytes: 1},
		{Strands: 10, CheckStrands: 2, StrandBytes: 10, IDBytes: 5},
		{Strands: 10, CheckStrands: 2, StrandBytes: 4, IDBytes: 2, RunoutBytes: 2},
		{Strands: 10, CheckStrands: 2, StrandBytes: 10, IDBytes: 2, Step: -1},
	}
	for i, g := range bad {
		require.ErrorIs(t, g.Validate(), packet.ErrGeometry, "case %d", i)
	}
}

// TestInterleaveBijection ensures every strand gives exactly one payload
// byte to every column, for several slopes.
func TestInterleaveBijection(t *testing.T) {
	for _, step := range []int{0, 1, 3, 7} {
		geo := smallGeo
		geo.Step = step
		for i := 0; i < geo.Strands; i++ {
			seen := make(map[int]int)
			for j := 0; j < geo.Payload(); j++ {
				off := geo.Offset(i, j)
				require.GreaterOrEqual(t, off, geo.IDBytes)
				require.Less(t, off, geo.IDBytes+geo.Payload())
				_, dup := seen[off]
				require.False(t, dup, "step %d strand %d offset %d hit twice", step, i, off)
				seen[off] = j
				require.Equal(t, j, geo.ColumnOf(i, off))
			}
			require.Len(t, seen, geo.Payload())
		}
	}
	require.Equal(t, -1, smallGeo.ColumnOf(0, 0))
	require.Equal(t, -1, smallGeo.ColumnOf(0, smallGeo.StrandBytes-1))
}

func TestDiagonalMatchesShift(t *testing.T) {
	// with step 1 the column j byte of strand i sits at payload offset (j+i) mod P
	p := smallGeo.Payload()
	for i := 0; i < smallGeo.Strands; i++ {
		for j := 0; j < p; j++ {
			require.Equal(t, smallGeo.IDBytes+(j+i)%p, smallGeo.Offset(i, j))
		}
	}
}

func TestAssemble(t *testing.T) {
	p, expected := assemble(t, smallGeo, "ABCDEFGHIJ")
	require.Len(t, expected, smallGeo.PlaintextLen())
	for i := 0; i < smallGeo.Strands; i++ {
		id, ok := packet.StrandIDOf(p, i)
		require.True(t, ok)
		require.EqualValues(t, 7, id.Packet)
		require.EqualValues(t, i, id.Index)
	}
	for i := smallGeo.MessageStrands(); i < smallGeo.Strands; i++ {
		require.Equal(t, make([]byte, smallGeo.Payload()), p.Payload(i))
	}
	require.Equal(t, "ABCDEFG", string(p.Payload(0)))
	require.Equal(t, "HIJABCD", string(p.Payload(1)))
	require.Equal(t, expected, packet.Extract(p))
}

func TestAssembleRejectsLargeID(t *testing.T) {
	a, err := packet.NewAssembler(smallGeo, packet.NewRandomSource(1))
	require.NoError(t, err)
	_, _, err = a.Assemble(256)
	require.ErrorIs(t, err, packet.ErrGeometry)
	_, _, err = a.Assemble(255)
	require.NoError(t, err)
}

// TestExtractExcludesCheckStrands ensures only message payloads come back.
func TestExtractExcludesCheckStrands(t *testing.T) {
	p, _ := assemble(t, smallGeo, "x")
	for i := smallGeo.MessageStrands(); i < smallGeo.Strands; i++ {
		for k := range p.Payload(i) {
			p.Payload(i)[k] = 0xEE
		}
	}
	out := packet.Extract(p)
	require.Len(t, out, smallGeo.MessageStrands()*smallGeo.Payload())
	require.NotContains(t, string(out), "\xee")
}

func TestSources(t *testing.T) {
	c, err := packet.NewCyclicSource([]byte("abcde"))
	require.NoError(t, err)
	require.Equal(t, "abc", string(c.Next(3)))
	require.Equal(t, "deabcdea", string(c.Next(8)))

	r, err := packet.NewRestartSource([]byte("abcde"))
	require.NoError(t, err)
	require.Equal(t, "abc", string(r.Next(3)))
	require.Equal(t, "abc", string(r.Next(3)))
	require.Equal(t, "de", string(r.Next(2)))
	require.Equal(t, "abcdeab", string(r.Next(7)))

	_, err = packet.NewCyclicSource(nil)
	require.ErrorIs(t, err, packet.ErrEmptySource)

	a := packet.NewRandomSource(9).Next(32)
	b := packet.NewRandomSource(9).Next(32)
	require.Equal(t, a, b)
}

func TestProtectCorrectRoundTrip(t *testing.T) {
	codec, err := fec.NewRS(smallGeo.MessageStrands(), smallGeo.CheckStrands)
	require.NoError(t, err)
	coder, err := packet.NewCoder(codec, smallGeo, 3)
	require.NoError(t, err)

	p, expected := assemble(t, smallGeo, "the quick brown fox")
	prot, err := coder.Protect(p)
	require.NoError(t, err)
	// Protect works on a copy
	for i := smallGeo.MessageStrands(); i < smallGeo.Strands; i++ {
		require.Equal(t, make([]byte, smallGeo.Payload()), p.Payload(i))
	}

	clean := packet.NewGrid[bool](smallGeo.Strands, smallGeo.StrandBytes)
	got, st, err := coder.Correct(prot, clean)
	require.NoError(t, err)
	require.Equal(t, packet.OuterStats{}, st)
	require.Equal(t, expected, packet.Extract(got))

	// wipe four whole strands and flag them as erased: every column loses four
	damaged := prot.Clone()
	mask := packet.NewGrid[bool](smallGeo.Strands, smallGeo.StrandBytes)
	for _, i := range []int{0, 3, 9, 14} {
		for k := range damaged.Strand(i) {
			damaged.Strand(i)[k] = 0x55
			mask.Set(i, k, true)
		}
	}
	got, st, err = coder.Correct(damaged, mask)
	require.NoError(t, err)
	require.Zero(t, st.Failures)
	require.Equal(t, 4*smallGeo.Payload(), st.Detected)
	require.Equal(t, 4, st.MaxDetected)
	// wiped strands include check bytes whose true value may equal 0x55;
	// they are resolved all the same
	require.Zero(t, st.Uncorrected)
	require.Equal(t, expected, packet.Extract(got))
}

func TestCorrectUnlocatedStrandError(t *testing.T) {
	codec, err := fec.NewRS(smallGeo.MessageStrands(), smallGeo.CheckStrands)
	require.NoError(t, err)
	coder, err := packet.NewCoder(codec, smallGeo, 0)
	require.NoError(t, err)
	p, expected := assemble(t, smallGeo, "0123456789")
	prot, err := coder.Protect(p)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(4))
	for _, i := range []int{2, 5} {
		pl := prot.Payload(i)
		for k := range pl {
			pl[k] ^= byte(1 + rng.Intn(255))
		}
	}
	got, st, err := coder.Correct(prot, packet.NewGrid[bool](smallGeo.Strands, smallGeo.StrandBytes))
	require.NoError(t, err)
	require.Zero(t, st.Failures)
	require.Zero(t, st.Uncorrected)
	require.Equal(t, 2, st.MaxDetected)
	require.Equal(t, expected, packet.Extract(got))
}

func TestNewCoderRejectsShapeMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	codec := NewMockCodec(ctrl)
	codec.EXPECT().TotalShards().Return(255).AnyTimes()
	codec.EXPECT().DataShards().Return(223).AnyTimes()

	_, err := packet.NewCoder(codec, smallGeo, 1)
	require.ErrorIs(t, err, packet.ErrGeometry)
}

// TestCorrectStats ensures per-column decoder results fold into totals and
// maxima, and that mask rows reach the decoder as erasure positions.
func TestCorrectStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	codec := NewMockCodec(ctrl)
	codec.EXPECT().TotalShards().Return(smallGeo.Strands).AnyTimes()
	codec.EXPECT().DataShards().Return(smallGeo.MessageStrands()).AnyTimes()
	codec.EXPECT().Decode(gomock.Any(), []int{5}).DoAndReturn(func(recv []byte, _ []int) fec.Result {
		return fec.Result{Data: recv, Detected: 3, Corrected: 1, Status: fec.StatusUncorrectable}
	}).Times(smallGeo.Payload())

	coder, err := packet.NewCoder(codec, smallGeo, 2)
	require.NoError(t, err)
	p, _ := assemble(t, smallGeo, "stats")
	mask := packet.NewGrid[bool](smallGeo.Strands, smallGeo.StrandBytes)
	for k := 0; k < smallGeo.StrandBytes; k++ {
		mask.Set(5, k, true)
	}
	_, st, err := coder.Correct(p, mask)
	require.NoError(t, err)
	n := smallGeo.Payload()
	require.Equal(t, packet.OuterStats{
		Detected:       3 * n,
		MaxDetected:    3,
		Uncorrected:    2 * n,
		MaxUncorrected: 2,
		Failures:       n,
	}, st)
}

func TestProtectEncodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	codec := NewMockCodec(ctrl)
	codec.EXPECT().TotalShards().Return(smallGeo.Strands).AnyTimes()
	codec.EXPECT().DataShards().Return(smallGeo.MessageStrands()).AnyTimes()
	boom := errors.New("boom")
	codec.EXPECT().Encode(gomock.Any()).Return(nil, boom).AnyTimes()

	coder, err := packet.NewCoder(codec, smallGeo, 1)
	require.NoError(t, err)
	p, _ := assemble(t, smallGeo, "x")
	_, err = coder.Protect(p)
	require.ErrorIs(t, err, boom)
}

func TestCorrectRejectsMaskShape(t *testing.T) {
	codec, err := fec.NewRS(smallGeo.MessageStrands(), smallGeo.CheckStrands)
	require.NoError(t, err)
	coder, err := packet.NewCoder(codec, smallGeo, 1)
	require.NoError(t, err)
	p, _ := assemble(t, smallGeo, "x")
	_, _, err = coder.Correct(p, packet.NewMask(3, 3))
	require.ErrorIs(t, err, packet.ErrGeometry)
}

func TestGridBounds(t *testing.T) {
	g := packet.NewGrid[byte](2, 3)
	g.Set(1, 2, 9)
	require.EqualValues(t, 9, g.At(1, 2))
	require.Equal(t, []byte{0, 0, 9}, g.Row(1))
	require.Panics(t, func() { g.At(2, 0) })
	require.Panics(t, func() { g.Set(0, 3, 1) })
	m := packet.NewMask(2, 2)
	require.True(t, m.At(1, 1))
	c := g.Clone()
	c.Set(0, 0, 1)
	require.Zero(t, g.At(0, 0))
}
