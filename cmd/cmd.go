// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func debugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
}

func mediaFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "media",
		Aliases: []string{"m"},
		Usage:   "Media directory (overrides media.path)",
	}
}

// searchFlags are shared by every command that runs the matcher.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of matches (overrides search.limit)",
			Value: matcher.DefaultLimit,
		},
		&cli.IntFlag{
			Name:  "cutoff",
			Usage: "Minimum match score 0-100 (overrides search.cutoff)",
			Value: matcher.DefaultCutoff,
		},
		&cli.StringFlag{
			Name:  "scorer",
			Usage: "Scoring algorithm: ratio or fzf (overrides search.scorer)",
		},
	}
}

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, csv, markdown or json",
			Value:   "text",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON (same as --format json)",
		},
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// serveCommand runs the browser interface
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the karaoke web interface",
		Flags: flags(
			[]cli.Flag{configFlag(), debugFlag(), mediaFlag()},
			searchFlags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:  "host",
					Usage: "Interface to bind (overrides server.host)",
				},
				&cli.IntFlag{
					Name:    "port",
					Aliases: []string{"p"},
					Usage:   "Port to listen on (overrides server.port)",
				},
				&cli.BoolFlag{
					Name:  "open",
					Usage: "Open the page in the default browser once listening",
				},
			},
		),
		Action: r.Serve,
	}
}

// tuiCommand runs the terminal interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Run the karaoke console in the terminal, playing songs with an external player",
		Flags: flags(
			[]cli.Flag{configFlag(), debugFlag(), mediaFlag()},
			searchFlags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:  "player",
					Usage: "Player command line, the file path is appended (overrides media.player)",
				},
				&cli.StringFlag{
					Name:  "log-file",
					Usage: "Where to write logs while the TUI owns the terminal",
					Value: "./tmp/ktv-tui.log",
				},
			},
		),
		Action: r.TUI,
	}
}

// searchCommand matches a query against the media directory once
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the media directory for a song",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: flags(
			[]cli.Flag{configFlag(), debugFlag(), mediaFlag()},
			searchFlags(),
			formatFlags(),
		),
		Action: r.Search,
	}
}

// catalogCommand lists the media directory
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"ls"},
		Usage:   "List playable songs and files rejected by the naming rules",
		Flags: flags(
			[]cli.Flag{configFlag(), debugFlag(), mediaFlag()},
			formatFlags(),
		),
		Action: r.Catalog,
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config.toml populated with the defaults",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
		},
	}
}
