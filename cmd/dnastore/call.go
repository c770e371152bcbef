package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Observe-l/dnastore/internal/report"
	"github.com/Observe-l/dnastore/internal/rpc"
)

var callFlags struct {
	addr    string
	overlay string
	packets int
	timeout time.Duration
}

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Ask a dnastore server for a run and print its report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := &rpc.RunRequest{Packets: callFlags.packets}
		if callFlags.overlay != "" {
			b, err := os.ReadFile(callFlags.overlay)
			if err != nil {
				return err
			}
			req.Config = string(b)
		}
		ctx, cancel := signalContext()
		defer cancel()
		ctx, cancelTimeout := context.WithTimeout(ctx, callFlags.timeout)
		defer cancelTimeout()

		c, err := rpc.Dial(ctx, callFlags.addr)
		if err != nil {
			return err
		}
		defer c.Close()
		resp, err := c.Run(ctx, req)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range resp.Packets {
			if err := report.Packet(out, p.ID, p.Stats); err != nil {
				return err
			}
		}
		if err := report.Totals(out, resp.Result()); err != nil {
			return err
		}
		if !resp.OK {
			return errPacketsBad
		}
		return nil
	},
}

func init() {
	f := callCmd.Flags()
	f.StringVar(&callFlags.addr, "addr", "localhost:50051", "server address")
	f.StringVar(&callFlags.overlay, "overlay", "", "TOML file laid over the server configuration")
	f.IntVarP(&callFlags.packets, "packets", "n", 0, "number of packets (0 keeps the server setting)")
	f.DurationVar(&callFlags.timeout, "timeout", 10*time.Minute, "call deadline")
}
