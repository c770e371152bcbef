package rpc

import (
	"github.com/francoispqt/gojay"

	"github.com/Observe-l/dnastore/internal/report"
	"github.com/Observe-l/dnastore/pipeline"
)

// RunRequest asks the server for a run. Config is a TOML document laid over
// the server's base configuration; zero Packets keeps the configured count.
type RunRequest struct {
	Config  string
	Packets int
}

func (r *RunRequest) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKeyOmitEmpty("config", r.Config)
	enc.IntKeyOmitEmpty("packets", r.Packets)
}

func (r *RunRequest) IsNil() bool { return r == nil }

func (r *RunRequest) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "config":
		return dec.String(&r.Config)
	case "packets":
		return dec.Int(&r.Packets)
	}
	return nil
}

func (r *RunRequest) NKeys() int { return 2 }

// PacketStats is one packet of a RunResponse.
type PacketStats struct {
	ID    int
	Stats pipeline.Stats
}

func (p *PacketStats) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("id", p.ID)
	enc.ObjectKey("stats", (*report.Stats)(&p.Stats))
}

func (p *PacketStats) IsNil() bool { return p == nil }

func (p *PacketStats) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "id":
		return dec.Int(&p.ID)
	case "stats":
		return dec.Object((*report.Stats)(&p.Stats))
	}
	return nil
}

func (p *PacketStats) NKeys() int { return 2 }

type packetList []PacketStats

func (l *packetList) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range *l {
		enc.Object(&(*l)[i])
	}
}

func (l *packetList) IsNil() bool { return l == nil }

func (l *packetList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var p PacketStats
	if err := dec.Object(&p); err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

// RunResponse mirrors pipeline.RunResult without the plaintext buffers.
type RunResponse struct {
	Packets    []PacketStats
	BadPackets int
	Total      pipeline.Stats
	OK         bool
}

func NewRunResponse(res pipeline.RunResult) *RunResponse {
	out := &RunResponse{BadPackets: res.BadPackets, Total: res.Total, OK: res.OK()}
	for _, p := range res.Packets {
		out.Packets = append(out.Packets, PacketStats{ID: p.ID, Stats: p.Stats})
	}
	return out
}

// Result converts back to a RunResult for reporting on the client side.
func (r *RunResponse) Result() pipeline.RunResult {
	res := pipeline.RunResult{BadPackets: r.BadPackets, Total: r.Total}
	for _, p := range r.Packets {
		res.Packets = append(res.Packets, pipeline.PacketResult{ID: p.ID, Stats: p.Stats})
	}
	return res
}

func (r *RunResponse) MarshalJSONObject(enc *gojay.Encoder) {
	list := packetList(r.Packets)
	enc.ArrayKey("packets", &list)
	enc.IntKey("bad_packets", r.BadPackets)
	enc.ObjectKey("total", (*report.Stats)(&r.Total))
	enc.BoolKey("ok", r.OK)
}

func (r *RunResponse) IsNil() bool { return r == nil }

func (r *RunResponse) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "packets":
		list := packetList(r.Packets)
		if err := dec.Array(&list); err != nil {
			return err
		}
		r.Packets = list
	case "bad_packets":
		return dec.Int(&r.BadPackets)
	case "total":
		return dec.Object((*report.Stats)(&r.Total))
	case "ok":
		return dec.Bool(&r.OK)
	}
	return nil
}

func (r *RunResponse) NKeys() int { return 4 }
