package report

import (
	"io"

	"github.com/francoispqt/gojay"

	"github.com/Observe-l/dnastore/pipeline"
)

// Stats adapts pipeline.Stats to gojay in both directions.
type Stats pipeline.Stats

func (s *Stats) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("inner_failures", s.InnerFailures)
	enc.IntKey("erasure_bytes", s.ErasureBytes)
	enc.IntKey("outer_detected", s.OuterDetected)
	enc.IntKey("max_outer_detected", s.MaxOuterDetected)
	enc.IntKey("outer_uncorrected", s.OuterUncorrected)
	enc.IntKey("max_outer_uncorrected", s.MaxOuterUncorrected)
	enc.IntKey("outer_failures", s.OuterFailures)
	enc.IntKey("mismatches", s.Mismatches)
	enc.IntKey("constraint_violations", s.ConstraintViolations)
}

func (s *Stats) IsNil() bool { return s == nil }

func (s *Stats) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "inner_failures":
		return dec.Int(&s.InnerFailures)
	case "erasure_bytes":
		return dec.Int(&s.ErasureBytes)
	case "outer_detected":
		return dec.Int(&s.OuterDetected)
	case "max_outer_detected":
		return dec.Int(&s.MaxOuterDetected)
	case "outer_uncorrected":
		return dec.Int(&s.OuterUncorrected)
	case "max_outer_uncorrected":
		return dec.Int(&s.MaxOuterUncorrected)
	case "outer_failures":
		return dec.Int(&s.OuterFailures)
	case "mismatches":
		return dec.Int(&s.Mismatches)
	case "constraint_violations":
		return dec.Int(&s.ConstraintViolations)
	}
	return nil
}

func (s *Stats) NKeys() int { return 9 }

type packetLine struct {
	id    int
	stats Stats
}

func (p *packetLine) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("type", "packet")
	enc.IntKey("packet", p.id)
	enc.BoolKey("ok", pipeline.Stats(p.stats).OK())
	enc.ObjectKey("stats", &p.stats)
}

func (p *packetLine) IsNil() bool { return p == nil }

type totalLine struct {
	packets, bad int
	stats        Stats
}

func (t *totalLine) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("type", "total")
	enc.IntKey("packets", t.packets)
	enc.IntKey("bad_packets", t.bad)
	enc.BoolKey("ok", t.bad == 0 && t.stats.Mismatches == 0)
	enc.ObjectKey("stats", &t.stats)
}

func (t *totalLine) IsNil() bool { return t == nil }

// JSONWriter emits one JSON object per line.
type JSONWriter struct {
	w io.Writer
}

func NewJSONWriter(w io.Writer) *JSONWriter { return &JSONWriter{w: w} }

func (j *JSONWriter) write(obj gojay.MarshalerJSONObject) error {
	b, err := gojay.MarshalJSONObject(obj)
	if err != nil {
		return err
	}
	_, err = j.w.Write(append(b, '\n'))
	return err
}

func (j *JSONWriter) Packet(pr pipeline.PacketResult) error {
	return j.write(&packetLine{id: pr.ID, stats: Stats(pr.Stats)})
}

func (j *JSONWriter) Total(res pipeline.RunResult) error {
	return j.write(&totalLine{packets: len(res.Packets), bad: res.BadPackets, stats: Stats(res.Total)})
}
