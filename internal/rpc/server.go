package rpc

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Observe-l/dnastore/internal/config"
	"github.com/Observe-l/dnastore/internal/metrics"
	"github.com/Observe-l/dnastore/pipeline"
)

// Server runs one pipeline per request against a base configuration.
type Server struct {
	base    config.Config
	log     zerolog.Logger
	metrics *metrics.Collector
}

// NewServer returns a server; collector may be nil.
func NewServer(base config.Config, log zerolog.Logger, collector *metrics.Collector) *Server {
	return &Server{base: base, log: log, metrics: collector}
}

func (s *Server) Run(ctx context.Context, req *RunRequest) (*RunResponse, error) {
	cfg, err := config.Overlay(s.base, req.Config)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	// plaintext files are chosen by the server operator only
	if cfg.Source.File != s.base.Source.File {
		return nil, status.Error(codes.PermissionDenied, "source file cannot be set remotely")
	}
	if req.Packets > 0 {
		cfg.Packets = req.Packets
		if err := cfg.Validate(); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	runner, err := cfg.NewRunner(&s.log)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	start := time.Now()
	last := start
	res, err := runner.Run(ctx, cfg.Packets, func(pr pipeline.PacketResult) {
		if s.metrics != nil {
			now := time.Now()
			s.metrics.Observe(pr.Stats, now.Sub(last))
			last = now
		}
	})
	switch {
	case errors.Is(err, context.Canceled):
		return nil, status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return nil, status.Error(codes.DeadlineExceeded, err.Error())
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.log.Info().
		Int("packets", cfg.Packets).
		Str("codec", cfg.Outer.Codec).
		Bool("ok", res.OK()).
		Dur("took", time.Since(start)).
		Msg("rpc run")
	return NewRunResponse(res), nil
}
