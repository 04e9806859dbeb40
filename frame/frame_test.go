package frame

import (
	"bytes"
	"image"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"inkcal/grid"
	"inkcal/holiday"
	"inkcal/raster"
	"inkcal/sprite"
)

var (
	res250 = image.Pt(250, 122)
	april  = time.Date(2024, time.April, 17, 8, 30, 0, 0, time.UTC)
)

func render(t *testing.T, c *Composer, in Input) *image.Paletted {
	t.Helper()
	m, err := c.Render(in)
	require.NoError(t, err)
	require.Equal(t, image.Rectangle{Max: in.Resolution}, m.Rect)
	return m
}

func countIn(m *image.Paletted, r image.Rectangle, c raster.Color) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.ColorIndexAt(x, y) == uint8(c) {
				n++
			}
		}
	}
	return n
}

func geometry(t *testing.T, today time.Time) grid.Geometry {
	g, err := grid.Layout(grid.Month(today.Year(), today.Month(), today), res250)
	require.NoError(t, err)
	return g
}

func TestRenderUnsupportedResolution(t *testing.T) {
	c := New(sprite.Default(), nil)
	_, err := c.Render(Input{Resolution: image.Pt(400, 300), Today: april})
	assert.ErrorIs(t, err, ErrUnsupportedResolution)
}

func TestRenderIdempotent(t *testing.T) {
	c := New(sprite.Default(), nil)
	in := Input{
		Resolution: res250,
		Today:      april,
		Holidays:   holiday.Set{"2024-04-29": {}},
		Agenda:     "04/18 10:00~11:00\n dentist",
	}
	a := render(t, c, in)
	b := render(t, c, in)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderPaletteOnly(t *testing.T) {
	c := New(sprite.Default(), nil)
	face, err := NewFace("go", 10)
	require.NoError(t, err)
	c.Face = face

	m := render(t, c, Input{Resolution: res250, Today: april, Agenda: "all day\n anti-aliased text"})
	for i, p := range m.Pix {
		require.Less(t, int(p), len(raster.Palette), "pixel %d", i)
	}
}

func TestRenderBox(t *testing.T) {
	c := New(sprite.Default(), nil)
	m := render(t, c, Input{Resolution: res250, Today: april})
	g := geometry(t, april)

	assert.Equal(t, image.Rect(100, 2, 248, 2+1+19*6), g.Box)
	// Border corners and separators.
	assert.Equal(t, uint8(raster.Foreground), m.ColorIndexAt(g.Box.Min.X, g.Box.Min.Y))
	assert.Equal(t, uint8(raster.Foreground), m.ColorIndexAt(g.Box.Max.X-1, g.Box.Max.Y-1))
	assert.Equal(t, uint8(raster.Foreground), m.ColorIndexAt(g.ColumnLines[2], g.Box.Min.Y+30))
	assert.Equal(t, uint8(raster.Foreground), m.ColorIndexAt(g.Box.Min.X+30, g.RowLines[0]))

	// Weekday labels are painted into the header.
	assert.NotZero(t, countIn(m, g.Header(), raster.Foreground))
}

func TestRenderDayColors(t *testing.T) {
	c := New(sprite.Default(), nil)
	in := Input{
		Resolution: res250,
		Today:      april,
		Holidays:   holiday.Set{"2024-04-29": {}},
	}
	m := render(t, c, in)
	g := geometry(t, april)

	// 2024-03-31, previous month: nothing drawn.
	cell := g.Cell(0, 0)
	assert.Equal(t, cell.Dx()*cell.Dy(), countIn(m, cell, raster.Background))

	// 2024-04-02, Tuesday: foreground ink only.
	cell = g.Cell(0, 2)
	assert.NotZero(t, countIn(m, cell, raster.Foreground))
	assert.Zero(t, countIn(m, cell, raster.Accent))

	// 2024-04-06, Saturday: accent ink.
	cell = g.Cell(0, 6)
	assert.NotZero(t, countIn(m, cell, raster.Accent))
	assert.Zero(t, countIn(m, cell, raster.Foreground))

	// 2024-04-29, Monday holiday: accent ink.
	cell = g.Cell(4, 1)
	assert.NotZero(t, countIn(m, cell, raster.Accent))

	// 2024-05-04, next month Saturday: nothing drawn.
	cell = g.Cell(4, 6)
	assert.Equal(t, cell.Dx()*cell.Dy(), countIn(m, cell, raster.Background))
}

func TestRenderToday(t *testing.T) {
	a := sprite.Default()
	c := New(a, nil)
	m := render(t, c, Input{Resolution: res250, Today: april})
	g := geometry(t, april)

	// 2024-04-17 is the Wednesday of the third week.
	cell := g.Cell(2, 3)
	want := raster.New(cell.Dx(), cell.Dy(), raster.Foreground)
	a.PrintNumber(want, dayOffset, 17, raster.Background)

	for y := 0; y < cell.Dy(); y++ {
		for x := 0; x < cell.Dx(); x++ {
			assert.Equal(t, want.ColorIndexAt(x, y), m.ColorIndexAt(cell.Min.X+x, cell.Min.Y+y), "pixel %d,%d", x, y)
		}
	}
}

func TestRenderTodayWeekend(t *testing.T) {
	a := sprite.Default()
	c := New(a, nil)
	sunday := time.Date(2024, time.April, 21, 0, 0, 0, 0, time.UTC)
	m := render(t, c, Input{Resolution: res250, Today: sunday})
	g := geometry(t, sunday)

	cell := g.Cell(3, 0)
	assert.NotZero(t, countIn(m, cell, raster.Accent))
	assert.NotZero(t, countIn(m, cell, raster.Foreground))
	assert.Zero(t, countIn(m, cell, raster.Background))
}

func TestRenderMonthYearLabel(t *testing.T) {
	a := sprite.Default()
	c := New(a, nil)
	m := render(t, c, Input{Resolution: res250, Today: april})

	want := raster.New(res250.X, res250.Y, raster.Background)
	a.PrintMonth(want, image.Pt(2, 6), time.April, raster.Foreground)
	a.PrintNumber(want, image.Pt(27, 6), 2024, raster.Foreground)

	label := image.Rect(0, 0, 100, 20)
	for y := label.Min.Y; y < label.Max.Y; y++ {
		for x := label.Min.X; x < label.Max.X; x++ {
			assert.Equal(t, want.ColorIndexAt(x, y), m.ColorIndexAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestRenderAgenda(t *testing.T) {
	c := New(sprite.Default(), nil)
	plain := render(t, c, Input{Resolution: res250, Today: april})
	text := render(t, c, Input{Resolution: res250, Today: april, Agenda: "04/18 10:00~11:00\n dentist"})

	area := image.Rect(0, AgendaOrigin.Y, 98, res250.Y)
	assert.Zero(t, countIn(plain, area, raster.Foreground))
	assert.NotZero(t, countIn(text, area, raster.Foreground))
}

func TestRenderBackdrop(t *testing.T) {
	c := New(sprite.Default(), nil)
	c.Backdrop = raster.New(10, 5, raster.Accent)

	m := render(t, c, Input{Resolution: res250, Today: april})
	assert.Equal(t, uint8(raster.Accent), m.ColorIndexAt(0, res250.Y-1))
	assert.Equal(t, uint8(raster.Accent), m.ColorIndexAt(99, 60))
	// The box is always painted over the backdrop.
	assert.Equal(t, uint8(raster.Background), m.ColorIndexAt(101, 60+1))

	// The backdrop itself is never modified.
	assert.Equal(t, image.Rect(0, 0, 10, 5), c.Backdrop.Bounds())
}

func TestRenderOverflowWarns(t *testing.T) {
	var buf bytes.Buffer
	c := New(sprite.Default(), log.New(&buf, "", 0))

	june := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	res := image.Pt(212, 104)
	m, err := c.Render(Input{Resolution: res, Today: june})
	require.NoError(t, err)
	assert.Equal(t, image.Rectangle{Max: res}, m.Rect)
	assert.Contains(t, buf.String(), "exceeds 212x104")
}

func TestTextMask(t *testing.T) {
	face, err := NewFace("", 0)
	require.NoError(t, err)

	one := TextMask(image.Rect(0, 0, 100, 60), face, image.Pt(2, 2), "AB")
	two := TextMask(image.Rect(0, 0, 100, 60), face, image.Pt(2, 2), "AB\nAB")
	assert.NotZero(t, one.Count())
	assert.Equal(t, 2*one.Count(), two.Count())
}

func TestNewFace(t *testing.T) {
	_, err := NewFace("go", 0)
	assert.NoError(t, err)

	_, err = NewFace("/nonexistent/font.ttf", 10)
	assert.Error(t, err)
}

func TestNewDefaultFace(t *testing.T) {
	c := New(sprite.Default(), nil)
	require.NotNil(t, c.Face)
	assert.Equal(t, basicfont.Face7x13, c.Face)

	m := render(t, c, Input{Resolution: res250, Today: april, Agenda: "X"})
	assert.Positive(t, countIn(m, image.Rect(0, AgendaOrigin.Y, 20, AgendaOrigin.Y+14), raster.Foreground))
}
