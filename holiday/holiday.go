// Package holiday looks up public holidays.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultURL serves Japanese public holidays as {"YYYY-MM-DD": "name"}.
const DefaultURL = "https://holidays-jp.github.io/api/v1/date.json"

// Set is a set of YYYY-MM-DD dates.
type Set map[string]struct{}

// Has reports whether the ISO date is a holiday.
func (s Set) Has(iso string) bool {
	_, ok := s[iso]
	return ok
}

// Contains reports whether the day of t is a holiday.
func (s Set) Contains(t time.Time) bool {
	return s.Has(t.Format("2006-01-02"))
}

// Decode reads the holiday JSON from r.
func Decode(r io.Reader) (Set, error) {
	var names map[string]string
	if err := json.NewDecoder(r).Decode(&names); err != nil {
		return nil, fmt.Errorf("unable to decode holidays: %w", err)
	}
	s := make(Set, len(names))
	for day := range names {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			continue
		}
		s[day] = struct{}{}
	}
	return s, nil
}

// Fetch downloads the holiday list from url.
func Fetch(ctx context.Context, client *http.Client, url string) (Set, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to retrieve holidays: %s", resp.Status)
	}
	return Decode(resp.Body)
}

// LoadFile reads the holiday JSON from a local file.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
