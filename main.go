package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	sharedFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "date",
			Usage:   "draw the calendar for `YYYY-MM-DD` instead of today",
			EnvVars: []string{"INKCAL_DATE"},
		},
		&cli.StringFlag{
			Name:  "agenda-file",
			Usage: "read the agenda text from `FILE` (\"-\" for stdin) instead of Google Calendar",
		},
		&cli.BoolFlag{
			Name:  "offline",
			Usage: "skip the holiday lookup unless a holidays file is configured",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "display width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "display height in pixels",
		},
	}

	return &cli.App{
		Name:  "inkcal",
		Usage: "Render a monthly calendar and agenda for a three-color e-paper display",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "read config.json and credentials from `DIR`",
				EnvVars: []string{"INKCAL_CONFIG_DIR"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase verbosity",
				EnvVars: []string{"INKCAL_VERBOSE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Render the display image to a PNG file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the image to `FILE`",
						Value:   "frame.png",
						EnvVars: []string{"INKCAL_OUTPUT"},
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "render even if the agenda is unchanged today",
					},
				}, sharedFlags...),
				Action: renderAction,
			},
			{
				Name:   "preview",
				Usage:  "Browse rendered frames in the terminal",
				Flags:  sharedFlags,
				Action: previewAction,
			},
			{
				Name:   "calendars",
				Usage:  "List the calendars visible to the configured account",
				Action: calendarsAction,
			},
			{
				Name:   "auth",
				Usage:  "Authorize access to Google Calendar",
				Action: authAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
