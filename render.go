package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"inkcal/frame"
	"inkcal/gcal"
	"inkcal/holiday"
	"inkcal/raster"
	"inkcal/sprite"
)

const fetchTimeout = 30 * time.Second

type app struct {
	dir    string
	config *gcal.Config
	loc    *time.Location
	logger *log.Logger
}

func setup(c *cli.Context) (*app, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	dir := c.String("config-dir")
	if dir == "" {
		d, err := gcal.ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	config, err := gcal.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	if c.IsSet("width") {
		config.Width = c.Int("width")
	}
	if c.IsSet("height") {
		config.Height = c.Int("height")
	}

	loc, err := config.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", config.Timezone, err)
	}

	return &app{
		dir:    dir,
		config: config,
		loc:    loc,
		logger: logger,
	}, nil
}

func (a *app) resolution() image.Point {
	return image.Pt(a.config.Width, a.config.Height)
}

// today returns the --date flag in the display zone, or the current time.
func (a *app) today(c *cli.Context) (time.Time, error) {
	if s := c.String("date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, a.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		return t, nil
	}
	return time.Now().In(a.loc), nil
}

func (a *app) composer() (*frame.Composer, error) {
	atlas := sprite.Default()
	if a.config.AtlasPath != "" {
		var err error
		if atlas, err = sprite.Load(a.config.AtlasPath); err != nil {
			return nil, fmt.Errorf("unable to load atlas: %w", err)
		}
	}

	comp := frame.New(atlas, a.logger)

	if a.config.BackdropPath != "" {
		backdrop, err := raster.Load(a.config.BackdropPath)
		if err != nil {
			return nil, fmt.Errorf("unable to load backdrop: %w", err)
		}
		comp.Backdrop = backdrop
	}

	face, err := frame.NewFace(a.config.Font, a.config.FontSize)
	if err != nil {
		return nil, err
	}
	comp.Face = face

	return comp, nil
}

// holidays never fails; a lookup error only costs the holiday colors.
func (a *app) holidays(ctx context.Context, offline bool) holiday.Set {
	var (
		set holiday.Set
		err error
	)
	switch {
	case a.config.HolidaysFile != "":
		set, err = holiday.LoadFile(a.config.HolidaysFile)
	case offline:
		return holiday.Set{}
	default:
		url := a.config.HolidaysURL
		if url == "" {
			url = holiday.DefaultURL
		}
		set, err = holiday.Fetch(ctx, nil, url)
	}
	if err != nil {
		a.logger.Printf("holidays unavailable: %v", err)
		return holiday.Set{}
	}
	return set
}

func (a *app) agenda(ctx context.Context, file string, now time.Time) (string, error) {
	if file != "" {
		var (
			b   []byte
			err error
		)
		if file == "-" {
			b, err = io.ReadAll(os.Stdin)
		} else {
			b, err = os.ReadFile(file)
		}
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\n"), nil
	}

	srv, err := gcal.GetCalendarService(ctx, a.dir)
	if err != nil {
		return "", err
	}
	events, err := gcal.FetchUpcoming(ctx, srv, a.config.CalendarIDs, now, a.config.EventsPerCalendar)
	if err != nil {
		return "", err
	}
	a.logger.Printf("fetched %d events from %d calendars", len(events), len(a.config.CalendarIDs))

	return gcal.FormatAgenda(events, gcal.FormatOptions{
		SummaryLength: a.config.SummaryLength,
		AllDayLabel:   a.config.AllDayLabel,
		Location:      a.loc,
	}), nil
}

func writePNG(path string, m image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	// Configuration errors are fatal before anything is fetched.
	if !frame.Supported(a.resolution()) {
		return cli.Exit(fmt.Errorf("%w: %dx%d", frame.ErrUnsupportedResolution, a.config.Width, a.config.Height), 1)
	}
	comp, err := a.composer()
	if err != nil {
		return cli.Exit(err, 1)
	}

	now, err := a.today(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	ctx, cancel := context.WithTimeout(c.Context, fetchTimeout)
	defer cancel()

	text, err := a.agenda(ctx, c.String("agenda-file"), time.Now().In(a.loc))
	if err != nil {
		return cli.Exit(err, 1)
	}

	// Commit only after the frame is on disk.
	snap, err := gcal.OpenSnapshot(a.config.SnapshotPath)
	defer snap.Close()
	if err != nil {
		a.logger.Printf("snapshot %s: %v", a.config.SnapshotPath, err)
	} else if !c.Bool("force") && snap.Unchanged(text, time.Now().In(a.loc)) {
		a.logger.Printf("agenda unchanged since %s, nothing to do", now.Format("2006-01-02"))
		return nil
	}

	m, err := comp.Render(frame.Input{
		Resolution: a.resolution(),
		Today:      now,
		Holidays:   a.holidays(ctx, c.Bool("offline")),
		Agenda:     text,
	})
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := writePNG(c.String("output"), m); err != nil {
		return cli.Exit(err, 1)
	}
	a.logger.Printf("wrote %s", c.String("output"))

	if err := snap.Commit(text, time.Now().In(a.loc)); err != nil {
		a.logger.Printf("snapshot %s: %v", a.config.SnapshotPath, err)
	}
	return nil
}

func calendarsAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	srv, err := gcal.GetCalendarService(c.Context, a.dir)
	if err != nil {
		return cli.Exit(err, 1)
	}
	calendars, err := gcal.ListCalendars(c.Context, srv)
	if err != nil {
		return cli.Exit(err, 1)
	}

	selected := make(map[string]bool)
	for _, id := range a.config.CalendarIDs {
		selected[id] = true
	}
	for _, cal := range calendars {
		checkbox := "[ ]"
		if selected[cal.Id] || (cal.Primary && selected["primary"]) {
			checkbox = "[✓]"
		}
		fmt.Fprintf(c.App.Writer, "%s %s\t%s\n", checkbox, cal.Id, cal.Summary)
	}
	return nil
}

func authAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if _, err := gcal.GetClient(c.Context, a.dir, os.Stdin, c.App.Writer); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(c.App.Writer, "Credentials in %s are ready\n", a.dir)
	return nil
}
