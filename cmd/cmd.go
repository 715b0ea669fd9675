// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func emailFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "email",
		Aliases: []string{"e"},
		Usage:   "Acting user (defaults to the only configured user)",
	}
}

// setupCommand initializes local state: config file, database, model artifact.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration, database, and model artifact",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config.toml",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the history database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "model",
				Usage:  "Write a starter genre model artifact",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupModel,
			},
		},
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web API",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind",
			},
		},
		Action: r.Serve,
	}
}

// profileCommand handles the profile document.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Manage your listening profile",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Fill in the listening-habits questionnaire",
				Flags:  []cli.Flag{configFlag(), emailFlag()},
				Action: r.ProfileCreate,
			},
			{
				Name:  "show",
				Usage: "Display the stored profile",
				Flags: []cli.Flag{
					configFlag(),
					emailFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "markdown", Usage: "Output Markdown"},
				},
				Action: r.ProfileShow,
			},
			{
				Name:   "mood",
				Usage:  "Run the mood check-in",
				Flags:  []cli.Flag{configFlag(), emailFlag()},
				Action: r.ProfileMood,
			},
		},
	}
}

// musicCommand handles prediction, composition, and playlist lookup.
func musicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "music",
		Aliases: []string{"m"},
		Usage:   "Genre prediction and music recommendations",
		Commands: []*cli.Command{
			{
				Name:   "predict",
				Usage:  "Predict your favorite genre",
				Flags:  []cli.Flag{configFlag(), emailFlag()},
				Action: r.MusicPredict,
			},
			{
				Name:  "compose",
				Usage: "Generate a track for your predicted genre",
				Flags: []cli.Flag{
					configFlag(),
					emailFlag(),
					&cli.BoolFlag{Name: "no-play", Usage: "Skip opening the track in a browser"},
				},
				Action: r.MusicCompose,
			},
			{
				Name:  "playlist",
				Usage: "Find a playlist for your predicted genre",
				Flags: []cli.Flag{
					configFlag(),
					emailFlag(),
					&cli.BoolFlag{Name: "open", Usage: "Open the playlist in a browser"},
				},
				Action: r.MusicPlaylist,
			},
		},
	}
}

// historyCommand displays stored recommendation history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show your track and playlist history",
		Flags: []cli.Flag{
			configFlag(),
			emailFlag(),
			&cli.IntFlag{Name: "limit", Usage: "Maximum rows to show", Value: 20},
			&cli.BoolFlag{Name: "csv", Usage: "Output CSV"},
			&cli.BoolFlag{Name: "markdown", Usage: "Output Markdown"},
		},
		Action: r.History,
	}
}
