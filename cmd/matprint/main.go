package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/matprint/matprint"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "matprint"
	app.Usage = "Convert a greyscale image into per-material 1-bit bitmaps"
	app.Version = "1.0.0"
	app.ArgsUsage = "FILE DIRECTORY"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "primary-dpi",
			Value: matprint.DefaultPrimaryDPI.String(),
			Usage: "primary resolution, decimal or fraction (e.g. 127/2)",
		},
		&cli.StringFlag{
			Name:  "secondary-dpi",
			Value: matprint.DefaultSecondaryDPI.String(),
			Usage: "secondary resolution, decimal or fraction (e.g. 127/4)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		primary, err := matprint.ParseDPI(c.String("primary-dpi"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		secondary, err := matprint.ParseDPI(c.String("secondary-dpi"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		p := matprint.New(primary, secondary, logger)

		if err := p.Process(c.Args().Get(0), c.Args().Get(1)); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
