package gcal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
)

type Event struct {
	ID         string
	Summary    string
	StartTime  time.Time
	EndTime    time.Time
	IsAllDay   bool
	Location   string
	CalendarID string
}

func ListCalendars(ctx context.Context, srv *calendar.Service) ([]*calendar.CalendarListEntry, error) {
	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	return calendarList.Items, nil
}

func parseEventTime(t *calendar.EventDateTime, loc *time.Location) (time.Time, bool, error) {
	if t == nil {
		return time.Time{}, false, fmt.Errorf("missing time")
	}
	if t.DateTime != "" {
		v, err := time.Parse(time.RFC3339, t.DateTime)
		return v, false, err
	}
	v, err := time.ParseInLocation("2006-01-02", t.Date, loc)
	return v, true, err
}

func eventFromItem(item *calendar.Event, calendarID string, loc *time.Location) (Event, error) {
	event := Event{
		ID:         item.Id,
		Summary:    item.Summary,
		Location:   item.Location,
		CalendarID: calendarID,
	}

	start, allDay, err := parseEventTime(item.Start, loc)
	if err != nil {
		return event, err
	}
	end, _, err := parseEventTime(item.End, loc)
	if err != nil {
		return event, err
	}

	event.StartTime = start
	event.EndTime = end
	event.IsAllDay = allDay
	return event, nil
}

// FetchUpcoming returns up to perCalendar events from each calendar that
// have not ended by now. Calendars that fail are skipped unless every one
// of them does.
func FetchUpcoming(ctx context.Context, srv *calendar.Service, calendarIDs []string, now time.Time, perCalendar int64) ([]Event, error) {
	if srv == nil {
		return nil, fmt.Errorf("calendar service is nil")
	}

	var (
		all     []Event
		lastErr error
		okCount int
	)
	for _, calID := range calendarIDs {
		events, err := srv.Events.List(calID).
			Context(ctx).
			ShowDeleted(false).
			SingleEvents(true).
			TimeMin(now.Format(time.RFC3339)).
			OrderBy("startTime").
			MaxResults(perCalendar).
			Do()
		if err != nil {
			lastErr = fmt.Errorf("unable to retrieve events from %s: %w", calID, err)
			continue
		}
		okCount++

		for _, item := range events.Items {
			event, err := eventFromItem(item, calID, now.Location())
			if err != nil {
				continue
			}
			all = append(all, event)
		}
	}

	if okCount == 0 && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}

// FormatOptions controls FormatAgenda.
type FormatOptions struct {
	SummaryLength int
	AllDayLabel   string
	Location      *time.Location
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n > 0 && len(r) > n {
		return string(r[:n])
	}
	return s
}

// FormatAgenda turns events into the text block drawn below the month
// label. Each event takes two lines: its date or time range, then its
// summary indented by one space.
func FormatAgenda(events []Event, opts FormatOptions) string {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	sorted := append([]Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.IsAllDay && !b.IsAllDay
	})

	var b strings.Builder
	for _, event := range sorted {
		if event.IsAllDay {
			// The end date of an all-day event is exclusive.
			last := event.EndTime.AddDate(0, 0, -1)
			fmt.Fprintf(&b, "%s %s\n", last.Format("2006-01-02"), opts.AllDayLabel)
		} else {
			fmt.Fprintf(&b, "%s~%s\n", event.StartTime.In(loc).Format("01/02 15:04"), event.EndTime.In(loc).Format("15:04"))
		}
		fmt.Fprintf(&b, " %s\n", truncate(event.Summary, opts.SummaryLength))
	}
	return strings.TrimRight(b.String(), "\n")
}
