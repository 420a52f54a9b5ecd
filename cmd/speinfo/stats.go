package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/robert-malhotra/go-spe3/spe3"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print per-frame sample statistics",
		ArgsUsage: "<file.spe>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("missing SPE file argument", 1)
			}

			// Lazy frames keep memory bounded for long acquisitions.
			f, err := spe3.Open(path, spe3.WithLazyFrames())
			if err != nil {
				return err
			}
			defer f.Close()

			fmt.Printf("%-6s %12s %12s %12s %12s\n", "frame", "min", "max", "mean", "stddev")
			for i := 0; i < f.FrameCount(); i++ {
				frame, err := f.Frame(i)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				samples := frame.Float64s()
				fmt.Printf("%-6d %12.3f %12.3f %12.3f %12.3f\n",
					i,
					floats.Min(samples),
					floats.Max(samples),
					stat.Mean(samples, nil),
					stat.StdDev(samples, nil),
				)
			}
			return nil
		},
	}
}
