// Command dnastore runs the two-layer DNA storage code against a simulated
// synthesis and sequencing channel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Observe-l/dnastore/internal/config"
	"github.com/Observe-l/dnastore/internal/logging"
)

var (
	configPath string
	logLevel   string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:           "dnastore",
	Short:         "Packet-level error correction for DNA storage",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace|debug|info|warn|error|off")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", true, "human readable logs on stderr")

	rootCmd.AddCommand(runCmd, serveCmd, callCmd, geometryCmd)
}

func newLogger() zerolog.Logger {
	return logging.New(os.Stderr, logLevel, logConsole)
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
	return ctx, cancel
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dnastore:", err)
		os.Exit(1)
	}
}
