package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Observe-l/dnastore/internal/config"
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the packet shape derived from the configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		g := cfg.Geometry()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "strands per packet   %d (%d message, %d check)\n", g.Strands, g.MessageStrands(), g.CheckStrands)
		fmt.Fprintf(out, "bytes per strand     %d (%d id, %d payload, %d runout)\n", g.StrandBytes, g.IDBytes, g.Payload(), g.RunoutBytes)
		fmt.Fprintf(out, "plaintext per packet %d bytes\n", g.PlaintextLen())
		fmt.Fprintf(out, "bases per strand     %d at code rate %.3f\n", cfg.Strand.Length, config.CodeRates[cfg.Strand.CodeRate])
		fmt.Fprintf(out, "outer codec          %s\n", cfg.Outer.Codec)
		return nil
	},
}
