package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Mask is a per-pixel stencil. A true pixel lets paint through.
//
// Mask implements image.Image with the color.Alpha model; Paint uses it as
// the mask argument of draw.DrawMask.
type Mask struct {
	Rect image.Rectangle
	bits []bool
}

// NewMask returns an empty mask covering r.
func NewMask(r image.Rectangle) *Mask {
	return &Mask{
		Rect: r,
		bits: make([]bool, r.Dx()*r.Dy()),
	}
}

// ExtractMask returns a mask with the bounds of src that is true wherever
// the source pixel is one of allowed. With no allowed colors every palette
// color is allowed.
func ExtractMask(src *image.Paletted, allowed ...Color) *Mask {
	if len(allowed) == 0 {
		allowed = All
	}
	var set [256]bool
	for _, c := range allowed {
		set[c] = true
	}

	m := NewMask(src.Rect)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			if set[src.ColorIndexAt(x, y)] {
				m.bits[m.offset(x, y)] = true
			}
		}
	}
	return m
}

func (m *Mask) offset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Rect.Dx() + (x - m.Rect.Min.X)
}

// Bounds implements image.Image.
func (m *Mask) Bounds() image.Rectangle {
	return m.Rect
}

// ColorModel implements image.Image.
func (m *Mask) ColorModel() color.Model {
	return color.AlphaModel
}

// At implements image.Image. Set pixels are opaque, the rest transparent.
func (m *Mask) At(x, y int) color.Color {
	if m.Opaque(x, y) {
		return color.Alpha{0xff}
	}
	return color.Alpha{}
}

// Opaque reports whether the pixel at (x, y) is set. Points outside the
// mask are never set.
func (m *Mask) Opaque(x, y int) bool {
	if !(image.Point{x, y}.In(m.Rect)) {
		return false
	}
	return m.bits[m.offset(x, y)]
}

// Set marks the pixel at (x, y). Points outside the mask are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	m.bits[m.offset(x, y)] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Crop returns a copy of the part of m inside r, moved so that its top-left
// corner is at (0, 0). Parts of r outside m are left unset.
func (m *Mask) Crop(r image.Rectangle) *Mask {
	out := NewMask(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.Opaque(x, y) {
				out.bits[out.offset(x-r.Min.X, y-r.Min.Y)] = true
			}
		}
	}
	return out
}

// Threshold builds a mask from any image, setting pixels whose alpha is at
// least half opaque.
func Threshold(src image.Image) *Mask {
	b := src.Bounds()
	m := NewMask(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := src.At(x, y).RGBA(); a >= 0x8000 {
				m.bits[m.offset(x, y)] = true
			}
		}
	}
	return m
}

// Paint writes c into canvas at at+p for every set pixel p of m, taken
// relative to the mask's top-left corner. Unset pixels leave the canvas
// untouched and pixels falling outside the canvas are dropped.
func Paint(canvas *image.Paletted, m *Mask, at image.Point, c Color) {
	ink := image.NewUniform(Palette[c])
	r := image.Rectangle{Min: at, Max: at.Add(m.Rect.Size())}
	xdraw.DrawMask(canvas, r, ink, image.Point{}, m, m.Rect.Min, xdraw.Over)
}
