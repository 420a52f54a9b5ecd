package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-spe3/spe3"
)

func exportXMLCmd() *cli.Command {
	var output string

	return &cli.Command{
		Name:      "export-xml",
		Usage:     "Write the XML metadata footer to a file",
		ArgsUsage: "<file.spe>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "destination path for the footer XML",
				Value:       "footer.xml",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("missing SPE file argument", 1)
			}

			f, err := spe3.Open(path, spe3.WithLazyFrames())
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.ExportMetadata(output); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}
}
