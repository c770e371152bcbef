package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Observe-l/dnastore/internal/config"
	"github.com/Observe-l/dnastore/internal/metrics"
	"github.com/Observe-l/dnastore/internal/report"
	"github.com/Observe-l/dnastore/pipeline"
)

var errPacketsBad = errors.New("some packets had errors")

var runFlags struct {
	packets     int
	seed        int64
	codec       string
	scale       float64
	plaintext   string
	source      string
	workers     int
	jsonPath    string
	metricsAddr string
	quiet       bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Encode, corrupt, decode and verify packets locally",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg, err = applyRunFlags(cmd, cfg)
		if err != nil {
			return err
		}
		return runLocal(cmd, cfg)
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVarP(&runFlags.packets, "packets", "n", 20, "number of packets")
	f.Int64Var(&runFlags.seed, "seed", 1, "channel and random-source seed")
	f.StringVar(&runFlags.codec, "codec", "rs", "outer codec: rs|reedsolomon|raptorq|rlc")
	f.Float64Var(&runFlags.scale, "scale", 1, "multiplier on the channel error rates")
	f.StringVar(&runFlags.plaintext, "plaintext", "", "plaintext file (built-in text when empty)")
	f.StringVar(&runFlags.source, "source", config.SourceCyclic, "plaintext policy: cyclic|restart|random")
	f.IntVar(&runFlags.workers, "workers", 0, "parallel columns and strands (0 = GOMAXPROCS)")
	f.StringVar(&runFlags.jsonPath, "json", "", "write JSON lines to this file, '-' for stdout")
	f.StringVar(&runFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.BoolVarP(&runFlags.quiet, "quiet", "q", false, "only print the totals")
}

// applyRunFlags overrides config values with flags the user actually set.
func applyRunFlags(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	f := cmd.Flags()
	if f.Changed("packets") {
		cfg.Packets = runFlags.packets
	}
	if f.Changed("seed") {
		cfg.Seed = runFlags.seed
	}
	if f.Changed("codec") {
		cfg.Outer.Codec = runFlags.codec
	}
	if f.Changed("scale") {
		cfg.Channel.Scale = runFlags.scale
	}
	if f.Changed("plaintext") {
		cfg.Source.File = runFlags.plaintext
	}
	if f.Changed("source") {
		cfg.Source.Kind = runFlags.source
	}
	if f.Changed("workers") {
		cfg.Workers = runFlags.workers
	}
	return cfg, cfg.Validate()
}

func runLocal(cmd *cobra.Command, cfg config.Config) error {
	log := newLogger()
	ctx, cancel := signalContext()
	defer cancel()

	runner, err := cfg.NewRunner(&log)
	if err != nil {
		return err
	}

	var collector *metrics.Collector
	if runFlags.metricsAddr != "" {
		collector = metrics.NewCollector()
		go func() {
			if err := collector.Serve(ctx, runFlags.metricsAddr, log); err != nil {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	var jw *report.JSONWriter
	switch runFlags.jsonPath {
	case "":
	case "-":
		jw = report.NewJSONWriter(cmd.OutOrStdout())
	default:
		f, err := os.Create(runFlags.jsonPath)
		if err != nil {
			return err
		}
		defer f.Close()
		jw = report.NewJSONWriter(f)
	}

	out := cmd.OutOrStdout()
	if jw != nil && runFlags.jsonPath == "-" {
		out = io.Discard
	}
	if !runFlags.quiet {
		if err := report.Legend(out); err != nil {
			return err
		}
	}

	geo := runner.Geometry()
	log.Info().
		Int("packets", cfg.Packets).
		Str("codec", cfg.Outer.Codec).
		Int("strand_bytes", geo.StrandBytes).
		Int("payload", geo.Payload()).
		Float64("sub", cfg.Rates().Sub).
		Float64("del", cfg.Rates().Del).
		Float64("ins", cfg.Rates().Ins).
		Msg("starting run")

	var writeErr error
	last := time.Now()
	res, err := runner.Run(ctx, cfg.Packets, func(pr pipeline.PacketResult) {
		if collector != nil {
			now := time.Now()
			collector.Observe(pr.Stats, now.Sub(last))
			last = now
		}
		if !runFlags.quiet && writeErr == nil {
			writeErr = report.Packet(out, pr.ID, pr.Stats)
		}
		if jw != nil && writeErr == nil {
			writeErr = jw.Packet(pr)
		}
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("write report: %w", writeErr)
	}
	if err := report.Totals(out, res); err != nil {
		return err
	}
	if jw != nil {
		if err := jw.Total(res); err != nil {
			return err
		}
	}
	if !res.OK() {
		return errPacketsBad
	}
	return nil
}
