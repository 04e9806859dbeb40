/*
Package frame composes the finished display image: the backdrop, the
calendar box for the current month with its day numbers, the month and
year label, and the agenda text.
*/
package frame

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"inkcal/daycolor"
	"inkcal/grid"
	"inkcal/holiday"
	"inkcal/raster"
	"inkcal/sprite"
)

// ErrUnsupportedResolution is returned for displays the layout was not
// designed for.
var ErrUnsupportedResolution = errors.New("frame: unsupported resolution")

// Resolutions lists the supported display sizes.
var Resolutions = []image.Point{
	{212, 104},
	{250, 122},
}

// Supported reports whether res is one of Resolutions.
func Supported(res image.Point) bool {
	for _, r := range Resolutions {
		if r == res {
			return true
		}
	}
	return false
}

// Placement of everything drawn outside the grid, and of the number inside
// each day cell.
var (
	monthOrigin  = image.Pt(2, 4)
	yearOrigin   = image.Pt(27, 4)
	headerOffset = image.Pt(4, 4)
	dayOffset    = image.Pt(3, 5)

	// AgendaOrigin is the top-left corner of the agenda text.
	AgendaOrigin = image.Pt(2, 22)
)

// Input is everything that varies between renders.
type Input struct {
	Resolution image.Point
	Today      time.Time
	Holidays   holiday.Set
	Agenda     string
}

// Composer draws frames. It holds no state between renders.
type Composer struct {
	Atlas    *sprite.Atlas
	Backdrop image.Image
	Face     font.Face

	logger *log.Logger
}

// New returns a composer using atlas for every glyph. A nil logger discards
// warnings.
func New(atlas *sprite.Atlas, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Composer{
		Atlas:  atlas,
		Face:   basicfont.Face7x13,
		logger: logger,
	}
}

func (c *Composer) canvas(res image.Point) *image.Paletted {
	if c.Backdrop == nil {
		return raster.New(res.X, res.Y, raster.Background)
	}
	return raster.Fit(c.Backdrop, res.X, res.Y)
}

// Render draws the month containing in.Today.
func (c *Composer) Render(in Input) (*image.Paletted, error) {
	if !Supported(in.Resolution) {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnsupportedResolution, in.Resolution.X, in.Resolution.Y)
	}

	m := grid.Month(in.Today.Year(), in.Today.Month(), in.Today)
	g, err := grid.Layout(m, in.Resolution)
	if err != nil {
		return nil, err
	}
	if g.Overflow {
		c.logger.Printf("calendar box %v exceeds %dx%d display, clipping", g.Box, in.Resolution.X, in.Resolution.Y)
	}

	canvas := c.canvas(in.Resolution)

	raster.Fill(canvas, g.Box, raster.Background)
	raster.Outline(canvas, g.Box, raster.Foreground)

	top := image.Pt(0, g.Box.Min.Y)
	c.Atlas.PrintMonth(canvas, monthOrigin.Add(top), in.Today.Month(), raster.Foreground)
	c.Atlas.PrintNumber(canvas, yearOrigin.Add(top), in.Today.Year(), raster.Foreground)

	c.drawGrid(canvas, g)
	c.drawDays(canvas, g, m, in.Holidays)

	if in.Agenda != "" {
		DrawText(canvas, c.Face, AgendaOrigin, in.Agenda, raster.Foreground)
	}

	return canvas, nil
}

func (c *Composer) drawGrid(canvas *image.Paletted, g grid.Geometry) {
	for col := 0; col < g.Columns; col++ {
		at := image.Pt(g.ColumnX[col], g.Box.Min.Y).Add(headerOffset)
		c.Atlas.PrintWeekday(canvas, at, time.Weekday(col), raster.Foreground)
		raster.VLine(canvas, g.ColumnLines[col], g.Box.Min.Y, g.Box.Max.Y-1, raster.Foreground)
	}
	for _, y := range g.RowLines {
		raster.HLine(canvas, g.Box.Min.X, g.Box.Max.X-1, y, raster.Foreground)
	}
}

func (c *Composer) drawDays(canvas *image.Paletted, g grid.Geometry, m grid.DateMatrix, holidays holiday.Set) {
	for row, week := range m {
		for col, cell := range week {
			d := daycolor.Resolve(cell, holidays.Contains(cell.Date))
			if d.Invert {
				raster.Fill(canvas, g.Cell(row, col), raster.Foreground)
			}
			if d.Paint {
				c.Atlas.PrintNumber(canvas, g.Cells[row][col].Add(dayOffset), cell.Date.Day(), d.Ink)
			}
		}
	}
}
