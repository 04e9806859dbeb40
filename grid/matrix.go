/*
Package grid builds the month date matrix and the pixel geometry of the
calendar box drawn around it.
*/
package grid

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRowLength = errors.New("grid: week row does not have 7 days")
	ErrRowCount  = errors.New("grid: month does not span 4 to 6 weeks")
)

const (
	DaysPerWeek = 7
	MinWeeks    = 4
	MaxWeeks    = 6
)

// DateCell is a single day in the matrix.
type DateCell struct {
	Date         time.Time
	Today        bool
	CurrentMonth bool
	Weekend      bool
}

// ISO returns the date as YYYY-MM-DD.
func (c DateCell) ISO() string {
	return c.Date.Format("2006-01-02")
}

// DateMatrix is a run of Sunday-first weeks covering one month.
type DateMatrix [][]DateCell

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Month returns the weeks covering year/month, Sunday first, padded with
// days of the neighbouring months. Today is flagged on the matching cell.
func Month(year int, month time.Month, today time.Time) DateMatrix {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)

	var m DateMatrix
	for day := start; !day.After(last); {
		week := make([]DateCell, 0, DaysPerWeek)
		for i := 0; i < DaysPerWeek; i++ {
			wd := day.Weekday()
			week = append(week, DateCell{
				Date:         day,
				Today:        sameDay(day, today),
				CurrentMonth: day.Month() == month,
				Weekend:      wd == time.Saturday || wd == time.Sunday,
			})
			day = day.AddDate(0, 0, 1)
		}
		m = append(m, week)
	}
	return m
}

// Validate checks the matrix has 4 to 6 rows of exactly 7 days.
func (m DateMatrix) Validate() error {
	if len(m) < MinWeeks || len(m) > MaxWeeks {
		return fmt.Errorf("%w: %d rows", ErrRowCount, len(m))
	}
	for i, row := range m {
		if len(row) != DaysPerWeek {
			return fmt.Errorf("%w: row %d has %d", ErrRowLength, i, len(row))
		}
	}
	return nil
}
