package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

var errEmptyImage = errors.New("raster: image has no pixels")

// Load decodes the image file at path and converts it to the display
// palette.
func Load(path string) (*image.Paletted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads a PNG, GIF or JPEG image from r and converts it to the
// display palette.
func Decode(r io.Reader) (*image.Paletted, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if m.Bounds().Empty() {
		return nil, errEmptyImage
	}
	return ToPaletted(m), nil
}

// ToPaletted converts m to the display palette with its top-left corner at
// (0, 0).
//
// Paletted images are remapped entry by entry, so the order of the source
// palette does not matter. Anything else is mapped to the nearest palette
// color per pixel.
func ToPaletted(m image.Image) *image.Paletted {
	b := m.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), Palette)

	if pm, ok := m.(image.PalettedImage); ok {
		if p, ok := pm.ColorModel().(color.Palette); ok {
			remap := make([]uint8, 256)
			for i, c := range p {
				remap[i] = uint8(Palette.Index(c))
			}
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					out.SetColorIndex(x-b.Min.X, y-b.Min.Y, remap[pm.ColorIndexAt(x, y)])
				}
			}
			return out
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetColorIndex(x-b.Min.X, y-b.Min.Y, uint8(Palette.Index(m.At(x, y))))
		}
	}
	return out
}

// Fit scales m to width by height using nearest-neighbour sampling so the
// result only ever contains palette colors.
func Fit(m image.Image, width, height int) *image.Paletted {
	src := ToPaletted(m)
	if src.Rect.Dx() == width && src.Rect.Dy() == height {
		return src
	}
	dst := image.NewPaletted(image.Rect(0, 0, width, height), Palette)
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return dst
}
