/*
Package raster implements the fixed three color palette used by the display
and the boolean stencils that glyphs are painted through.

Every image handled by inkcal is an *image.Paletted whose palette is
Palette: index 0 is the background ink, index 1 the foreground ink and
index 2 the accent ink.
*/
package raster

import (
	"image"
	"image/color"
)

// Color is an index into Palette.
type Color uint8

const (
	Background Color = iota
	Foreground
	Accent
)

var names = [...]string{"background", "foreground", "accent"}

func (c Color) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return "invalid"
}

// Palette is the display palette. The order matches Color.
var Palette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0xc8, 0x1e, 0x1e, 0xff},
}

// All is every supported color.
var All = []Color{Background, Foreground, Accent}

// New returns a canvas of the given size filled with c.
func New(width, height int, c Color) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, width, height), Palette)
	if c != 0 {
		for i := range m.Pix {
			m.Pix[i] = uint8(c)
		}
	}
	return m
}

// Fill sets every pixel of r that lies within the canvas to c.
func Fill(canvas *image.Paletted, r image.Rectangle, c Color) {
	r = r.Intersect(canvas.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			canvas.SetColorIndex(x, y, uint8(c))
		}
	}
}

// Outline draws a 1px border just inside r.
func Outline(canvas *image.Paletted, r image.Rectangle, c Color) {
	HLine(canvas, r.Min.X, r.Max.X-1, r.Min.Y, c)
	HLine(canvas, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	VLine(canvas, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	VLine(canvas, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}

// HLine draws a horizontal line from x0 to x1 inclusive.
func HLine(canvas *image.Paletted, x0, x1, y int, c Color) {
	Fill(canvas, image.Rect(x0, y, x1+1, y+1), c)
}

// VLine draws a vertical line from y0 to y1 inclusive.
func VLine(canvas *image.Paletted, x, y0, y1 int, c Color) {
	Fill(canvas, image.Rect(x, y0, x+1, y1+1), c)
}
