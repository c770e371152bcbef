package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/fec"
	"github.com/Observe-l/dnastore/internal/channel"
	"github.com/Observe-l/dnastore/packet"
	"github.com/Observe-l/dnastore/pipeline"
)

// DefaultText is the plaintext used when no source file is configured.
const DefaultText = "Dorothy lived in the midst of the great Kansas prairies, with Uncle Henry, " +
	"who was a farmer, and Aunt Em, who was the farmer's wife. Their house was small, " +
	"for the lumber to build it had to be carried by wagon many miles. "

// NewSource opens the configured plaintext source.
func (c Config) NewSource() (packet.Source, error) {
	if c.Source.Kind == SourceRandom {
		return packet.NewRandomSource(c.Seed), nil
	}
	text := []byte(DefaultText)
	if c.Source.File != "" {
		b, err := os.ReadFile(c.Source.File)
		if err != nil {
			return nil, fmt.Errorf("plaintext: %w", err)
		}
		text = b
	}
	if c.Source.Kind == SourceRestart {
		return packet.NewRestartSource(text)
	}
	return packet.NewCyclicSource(text)
}

// NewInner builds the inner codec with the configured primers.
func (c Config) NewInner() (*dna.Direct, error) {
	left, err := dna.Parse(c.Strand.LeftPrimer)
	if err != nil {
		return nil, err
	}
	right, err := dna.Parse(c.Strand.RightPrimer)
	if err != nil {
		return nil, err
	}
	return dna.NewDirect(dna.DirectConfig{
		LeftPrimer:      left,
		RightPrimer:     right,
		AnchorTolerance: c.Strand.AnchorTolerance,
	})
}

// NewRunner wires codecs, channel and source into a pipeline runner.
func (c Config) NewRunner(log *zerolog.Logger) (*pipeline.Runner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	geo := c.Geometry()
	outer, err := fec.New(c.Outer.Codec, geo.MessageStrands(), geo.CheckStrands)
	if err != nil {
		return nil, err
	}
	inner, err := c.NewInner()
	if err != nil {
		return nil, err
	}
	src, err := c.NewSource()
	if err != nil {
		return nil, err
	}
	var ch pipeline.Channel
	if r := c.Rates(); !r.Zero() {
		ch = channel.New(r)
	}
	return pipeline.NewRunner(pipeline.Options{
		Geometry:     geo,
		Outer:        outer,
		Inner:        inner,
		Channel:      ch,
		Source:       src,
		StrandLength: c.Strand.Length,
		AnchorLength: inner.AnchorLen(),
		Constraints:  c.DNAConstraints(),
		Workers:      c.Workers,
		Seed:         c.Seed,
		Logger:       log,
	})
}
