// Package config loads the run parameters from TOML, overlaid on defaults
// that reproduce the reference validation run.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/fec"
	"github.com/Observe-l/dnastore/internal/channel"
	"github.com/Observe-l/dnastore/packet"
)

var ErrInvalid = errors.New("config: invalid")

// CodeRates maps code-rate indices 1..6 to the inner code rate.
var CodeRates = [...]float64{math.NaN(), 0.75, 0.6, 0.5, 1. / 3., 0.25, 1. / 6.}

// Source kinds.
const (
	SourceCyclic  = "cyclic"
	SourceRestart = "restart"
	SourceRandom  = "random"
)

type Config struct {
	Packets     int               `toml:"packets"`
	Seed        int64             `toml:"seed"`
	Workers     int               `toml:"workers"`
	Strand      StrandConfig      `toml:"strand"`
	Outer       OuterConfig       `toml:"outer"`
	Constraints ConstraintsConfig `toml:"constraints"`
	Channel     ChannelConfig     `toml:"channel"`
	Source      SourceConfig      `toml:"source"`
}

type StrandConfig struct {
	// Length is the total number of bases, primers included.
	Length          int    `toml:"length"`
	IDBytes         int    `toml:"id_bytes"`
	RunoutBytes     int    `toml:"runout_bytes"`
	CodeRate        int    `toml:"code_rate"`
	LeftPrimer      string `toml:"left_primer"`
	RightPrimer     string `toml:"right_primer"`
	AnchorTolerance int    `toml:"anchor_tolerance"`
	InterleaveStep  int    `toml:"interleave_step"`
}

type OuterConfig struct {
	Codec        string `toml:"codec"`
	Strands      int    `toml:"strands"`
	CheckStrands int    `toml:"check_strands"`
}

type ConstraintsConfig struct {
	GCWindow       int `toml:"gc_window"`
	MaxGC          int `toml:"max_gc"`
	MinGC          int `toml:"min_gc"`
	MaxHomopolymer int `toml:"max_homopolymer"`
}

type ChannelConfig struct {
	channel.Rates
	// Scale multiplies the three rates.
	Scale float64 `toml:"scale"`
}

type SourceConfig struct {
	Kind string `toml:"kind"`
	// File holds the plaintext; empty means the built-in text.
	File string `toml:"file"`
}

func Default() Config {
	return Config{
		Packets: 20,
		Seed:    1,
		Strand: StrandConfig{
			Length:          300,
			IDBytes:         2,
			RunoutBytes:     2,
			CodeRate:        3,
			LeftPrimer:      "TCGAAGTCAGCGTGTATTGTATG",
			RightPrimer:     "TAGTGAGTGCGATTAAGCGTGTT",
			AnchorTolerance: dna.DefaultAnchorTolerance,
			InterleaveStep:  1,
		},
		Outer: OuterConfig{
			Codec:        fec.NameRS,
			Strands:      255,
			CheckStrands: 32,
		},
		Constraints: ConstraintsConfig{
			GCWindow:       12,
			MaxGC:          8,
			MinGC:          4,
			MaxHomopolymer: 4,
		},
		Channel: ChannelConfig{
			Rates: channel.Rates{Sub: 0.002, Del: 0.0001, Ins: 0.0001},
			Scale: 1,
		},
		Source: SourceConfig{Kind: SourceCyclic},
	}
}

// Load overlays the TOML file at path on Default and validates the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(string(b))
}

// Parse overlays a TOML document on Default.
func Parse(doc string) (Config, error) {
	return Overlay(Default(), doc)
}

// Overlay decodes doc on top of base and validates the result. Unknown keys
// are rejected.
func Overlay(base Config, doc string) (Config, error) {
	cfg := base
	meta, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if und := meta.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return Config{}, invalid("unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StrandBytes is B: the bytes one strand carries at the configured rate.
func (c Config) StrandBytes() int {
	if c.Strand.CodeRate < 1 || c.Strand.CodeRate >= len(CodeRates) {
		return 0
	}
	body := c.Strand.Length - len(c.Strand.LeftPrimer) - len(c.Strand.RightPrimer)
	return int(float64(body) * CodeRates[c.Strand.CodeRate] / 4)
}

func (c Config) Geometry() packet.Geometry {
	return packet.Geometry{
		Strands:      c.Outer.Strands,
		CheckStrands: c.Outer.CheckStrands,
		StrandBytes:  c.StrandBytes(),
		IDBytes:      c.Strand.IDBytes,
		RunoutBytes:  c.Strand.RunoutBytes,
		Step:         c.Strand.InterleaveStep,
	}
}

func (c Config) Rates() channel.Rates {
	return c.Channel.Rates.Scale(c.Channel.Scale)
}

func (c Config) DNAConstraints() dna.Constraints {
	return dna.Constraints{
		GCWindow:       c.Constraints.GCWindow,
		MaxGC:          c.Constraints.MaxGC,
		MinGC:          c.Constraints.MinGC,
		MaxHomopolymer: c.Constraints.MaxHomopolymer,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects anything that would fail later inside the packet loop.
func (c Config) Validate() error {
	if c.Strand.CodeRate < 1 || c.Strand.CodeRate >= len(CodeRates) {
		return invalid("code rate %d outside 1..%d", c.Strand.CodeRate, len(CodeRates)-1)
	}
	if _, err := dna.Parse(c.Strand.LeftPrimer); err != nil {
		return invalid("left primer: %v", err)
	}
	if c.Strand.RightPrimer == "" {
		return invalid("right primer is required")
	}
	if _, err := dna.Parse(c.Strand.RightPrimer); err != nil {
		return invalid("right primer: %v", err)
	}
	if c.Strand.AnchorTolerance < 0 {
		return invalid("negative anchor tolerance")
	}
	geo := c.Geometry()
	if err := geo.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Packets < 0 || c.Packets-1 > geo.MaxPacketID() {
		return invalid("%d packets exceed the %d-byte strand ids", c.Packets, c.Strand.IDBytes)
	}
	if _, err := fec.New(c.Outer.Codec, geo.MessageStrands(), geo.CheckStrands); err != nil {
		return invalid("outer codec: %v", err)
	}
	if c.Channel.Scale < 0 {
		return invalid("negative rate scale")
	}
	if err := c.Rates().Validate(); err != nil {
		return invalid("%v", err)
	}
	k := c.Constraints
	if k.GCWindow < 0 || k.MaxGC < 0 || k.MinGC < 0 || k.MaxHomopolymer < 0 {
		return invalid("negative sequence constraint")
	}
	if k.GCWindow > 0 && (k.MaxGC > k.GCWindow || k.MinGC > k.MaxGC) {
		return invalid("gc bounds %d..%d do not fit window %d", k.MinGC, k.MaxGC, k.GCWindow)
	}
	switch c.Source.Kind {
	case SourceCyclic, SourceRestart, SourceRandom, "":
	default:
		return invalid("unknown source kind %q", c.Source.Kind)
	}
	if c.Workers < 0 {
		return invalid("negative workers")
	}
	return nil
}
