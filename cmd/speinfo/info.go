package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-spe3/spe3"
)

type fileSummary struct {
	Path            string  `json:"path"`
	Version         float32 `json:"version"`
	Frames          int     `json:"frames"`
	RegionHeight    int     `json:"regionHeight"`
	RegionWidth     int     `json:"regionWidth"`
	PixelFormat     string  `json:"pixelFormat"`
	ExposureSeconds float64 `json:"exposureSeconds"`
	WavelengthCount int     `json:"wavelengthCount"`
	WavelengthFirst float64 `json:"wavelengthFirst,omitempty"`
	WavelengthLast  float64 `json:"wavelengthLast,omitempty"`
}

func infoCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print acquisition summary of an SPE3 file",
		ArgsUsage: "<file.spe>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "emit machine-readable JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("missing SPE file argument", 1)
			}

			// The summary needs no frame payloads.
			f, err := spe3.Open(path, spe3.WithLazyFrames())
			if err != nil {
				return err
			}
			defer f.Close()

			height, width := f.RegionSize()
			wl := f.Wavelengths()
			summary := fileSummary{
				Path:            path,
				Version:         f.Version(),
				Frames:          f.FrameCount(),
				RegionHeight:    height,
				RegionWidth:     width,
				PixelFormat:     f.PixelFormat().String(),
				ExposureSeconds: f.ExposureTime(),
				WavelengthCount: len(wl),
			}
			if len(wl) > 0 {
				summary.WavelengthFirst = wl[0]
				summary.WavelengthLast = wl[len(wl)-1]
			}

			if asJSON {
				out, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("File:         %s\n", summary.Path)
			fmt.Printf("SPE version:  %g\n", summary.Version)
			fmt.Printf("Frames:       %d\n", summary.Frames)
			fmt.Printf("Region:       %d x %d (height x width)\n", summary.RegionHeight, summary.RegionWidth)
			fmt.Printf("Pixel format: %s\n", summary.PixelFormat)
			fmt.Printf("Exposure:     %g s\n", summary.ExposureSeconds)
			if len(wl) > 0 {
				fmt.Printf("Wavelengths:  %d points, %.3f .. %.3f nm\n",
					summary.WavelengthCount, summary.WavelengthFirst, summary.WavelengthLast)
			}
			if len(wl) != width {
				fmt.Fprintf(os.Stderr, "warning: %d wavelengths for %d pixel columns\n", len(wl), width)
			}
			return nil
		},
	}
}
