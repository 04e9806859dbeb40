/*
Package sprite composites fixed-size glyphs from a sprite atlas onto a
canvas.

The atlas is a palette image holding the digits 0 to 9, the twelve month
names and the seven weekday labels at fixed offsets. Glyph pixels are drawn
in the foreground ink; everything else is ignored. Pasting a glyph paints
the requested color through the glyph's stencil, so the ink used in the
atlas has no bearing on the ink used on the canvas.
*/
package sprite

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"time"

	"inkcal/raster"
)

// ErrRegionOutOfBounds is returned when an atlas image is too small to hold
// every glyph.
var ErrRegionOutOfBounds = errors.New("sprite: glyph region outside atlas")

// Atlas is a loaded sprite sheet together with its foreground stencil.
type Atlas struct {
	Image *image.Paletted
	Mask  *raster.Mask

	glyphs [numGlyphs]*raster.Mask
}

// NewAtlas prepares img for compositing.
func NewAtlas(img *image.Paletted) (*Atlas, error) {
	for g := Glyph(0); g < numGlyphs; g++ {
		if !g.Region().In(img.Rect) {
			return nil, fmt.Errorf("%w: glyph %d at %v, atlas %v", ErrRegionOutOfBounds, g, g.Region(), img.Rect)
		}
	}

	a := &Atlas{
		Image: img,
		Mask:  raster.ExtractMask(img, raster.Foreground),
	}
	for g := Glyph(0); g < numGlyphs; g++ {
		a.glyphs[g] = a.Mask.Crop(g.Region())
	}
	return a, nil
}

// Load reads an atlas image from path.
func Load(path string) (*Atlas, error) {
	img, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	return NewAtlas(img)
}

// Stencil returns the cropped mask of g, or nil if g is not a glyph.
func (a *Atlas) Stencil(g Glyph) *raster.Mask {
	if !g.Valid() {
		return nil
	}
	return a.glyphs[g]
}

// Blit paints glyph g onto canvas with its top-left corner at at.
func (a *Atlas) Blit(canvas *image.Paletted, g Glyph, at image.Point, c raster.Color) {
	if m := a.Stencil(g); m != nil {
		raster.Paint(canvas, m, at, c)
	}
}

// PrintDigit paints a single digit.
func (a *Atlas) PrintDigit(canvas *image.Paletted, at image.Point, d int, c raster.Color) {
	a.Blit(canvas, DigitGlyph(d), at, c)
}

// PrintNumber paints n in decimal, one digit every DigitPitch pixels, and
// returns the point just after the last digit. Numbers wider than the space
// they are meant for simply run on. Negative numbers are not drawn.
func (a *Atlas) PrintNumber(canvas *image.Paletted, at image.Point, n int, c raster.Color) image.Point {
	if n < 0 {
		return at
	}
	for _, r := range strconv.Itoa(n) {
		a.PrintDigit(canvas, at, int(r-'0'), c)
		at.X += DigitPitch
	}
	return at
}

// PrintMonth paints the name of m.
func (a *Atlas) PrintMonth(canvas *image.Paletted, at image.Point, m time.Month, c raster.Color) {
	a.Blit(canvas, MonthGlyph(m), at, c)
}

// PrintWeekday paints the label for w.
func (a *Atlas) PrintWeekday(canvas *image.Paletted, at image.Point, w time.Weekday, c raster.Color) {
	a.Blit(canvas, WeekdayGlyph(w), at, c)
}
