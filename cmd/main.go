package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"playlistformatter/internal/actions"
	"playlistformatter/internal/config"
	"playlistformatter/internal/logging"
)

func main() {
	var logCloser io.Closer

	app := &cli.App{
		Name:  "playlistformatter",
		Usage: "Clean up DJ set and radio show track logs and export or publish them as playlists.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the TOML config file",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "log level: debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, _, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if level := c.String("log"); level != "" {
				cfg.Log.Level = level
			}
			if err := config.LoadEnv(); err != nil {
				return err
			}
			_, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			logCloser = closer
			actions.SetConfig(c, cfg)
			return nil
		},
		After: func(c *cli.Context) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "format",
				Usage:     "Read a playlist file and export the cleaned tracks",
				ArgsUsage: "[FILE] [OUTPUT]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file, .csv or .txt",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "overwrite an existing output file",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "no prompts or progress output",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "do not record this export",
					},
				},
				Action: actions.FormatPlaylist,
			},
			{
				Name:      "publish",
				Usage:     "Recreate a playlist file on a music platform",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "to",
						Usage: "platform to publish to: spotify or youtube",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "name of the new playlist",
					},
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "ID or name of an existing playlist to add to, --playlist= to choose one",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "search results considered per track",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "write the matched platform tracks to this CSV file",
					},
				},
				Action: actions.PublishPlaylist,
			},
			{
				Name:  "history",
				Usage: "List recent exports",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "number of entries to show",
					},
				},
				Action: actions.ShowHistory,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
