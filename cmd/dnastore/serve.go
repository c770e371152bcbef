package main

import (
	"net"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/Observe-l/dnastore/internal/metrics"
	"github.com/Observe-l/dnastore/internal/rpc"
)

var serveFlags struct {
	addr        string
	metricsAddr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pipeline runs over gRPC",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		ctx, cancel := signalContext()
		defer cancel()

		var collector *metrics.Collector
		if serveFlags.metricsAddr != "" {
			collector = metrics.NewCollector()
			go func() {
				if err := collector.Serve(ctx, serveFlags.metricsAddr, log); err != nil {
					log.Error().Err(err).Msg("metrics server")
				}
			}()
		}

		ln, err := net.Listen("tcp", serveFlags.addr)
		if err != nil {
			return err
		}
		srv := grpc.NewServer(rpc.ServerOptions()...)
		rpc.Register(srv, rpc.NewServer(cfg, log, collector))
		go func() {
			<-ctx.Done()
			srv.GracefulStop()
		}()
		log.Info().Str("addr", ln.Addr().String()).Msg("dnastore gRPC listening")
		return srv.Serve(ln)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":50051", "gRPC listen address")
	serveCmd.Flags().StringVar(&serveFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}
