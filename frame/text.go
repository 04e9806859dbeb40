package frame

import (
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"inkcal/raster"
)

// DefaultFontSize is used for TrueType faces when no size is given.
const DefaultFontSize = 10

// NewFace returns the face used for the agenda text. name is "" or "basic"
// for the built-in 7x13 bitmap face, "go" for Go Regular, or the path of a
// TrueType/OpenType font file.
func NewFace(name string, size float64) (font.Face, error) {
	var data []byte
	switch name {
	case "", "basic":
		return basicfont.Face7x13, nil
	case "go":
		data = goregular.TTF
	default:
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("unable to read font: %w", err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse font %q: %w", name, err)
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// TextMask rasterises text, one line per newline, with the top-left corner
// of the first line at at. The result covers bounds.
func TextMask(bounds image.Rectangle, face font.Face, at image.Point, text string) *raster.Mask {
	dst := image.NewAlpha(bounds)
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = (metrics.Ascent + metrics.Descent).Ceil()
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
	}
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(at.X, at.Y+i*lineHeight+metrics.Ascent.Ceil())
		d.DrawString(line)
	}
	return raster.Threshold(dst)
}

// DrawText paints text onto canvas in c. Anti-aliased edges are thresholded
// so the canvas only ever holds palette colors.
func DrawText(canvas *image.Paletted, face font.Face, at image.Point, text string, c raster.Color) {
	m := TextMask(canvas.Rect, face, at, text)
	raster.Paint(canvas, m, canvas.Rect.Min, c)
}
