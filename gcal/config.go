package gcal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	configFile   = "config.json"
	snapshotFile = "current_events.txt"
)

// Config is read from config.json in the config directory. Relative paths
// are resolved against that directory.
type Config struct {
	CalendarIDs       []string `json:"calendar_ids"`
	EventsPerCalendar int64    `json:"events_per_calendar"`
	SummaryLength     int      `json:"summary_length"`
	AllDayLabel       string   `json:"all_day_label"`
	Timezone          string   `json:"timezone"`

	HolidaysURL  string `json:"holidays_url"`
	HolidaysFile string `json:"holidays_file"`

	SnapshotPath string  `json:"snapshot_path"`
	AtlasPath    string  `json:"atlas_path"`
	BackdropPath string  `json:"backdrop_path"`
	Font         string  `json:"font"`
	FontSize     float64 `json:"font_size"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults("")
	return c
}

func (c *Config) applyDefaults(dir string) {
	if len(c.CalendarIDs) == 0 {
		c.CalendarIDs = []string{"primary"}
	}
	if c.EventsPerCalendar <= 0 {
		c.EventsPerCalendar = 3
	}
	if c.SummaryLength <= 0 {
		c.SummaryLength = 9
	}
	if c.AllDayLabel == "" {
		c.AllDayLabel = "all day"
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = snapshotFile
	}
	if c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = 250, 122
	}

	for _, p := range []*string{&c.SnapshotPath, &c.AtlasPath, &c.BackdropPath, &c.HolidaysFile} {
		if *p != "" && dir != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Location returns the configured time zone, or the local one.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LoadConfig reads the configuration from dir. A missing file yields the
// defaults.
func LoadConfig(dir string) (*Config, error) {
	f, err := os.Open(filepath.Join(dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			c := &Config{}
			c.applyDefaults(dir)
			return c, nil
		}
		return nil, err
	}
	defer f.Close()

	config := &Config{}
	if err := json.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", f.Name(), err)
	}
	config.applyDefaults(dir)

	return config, nil
}

// SaveConfig writes config to dir.
func SaveConfig(dir string, config *Config) error {
	f, err := os.OpenFile(filepath.Join(dir, configFile), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(config)
}
