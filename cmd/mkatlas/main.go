package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"inkcal/frame"
	"inkcal/raster"
	"inkcal/sprite"
)

func main() {
	dir := "assets"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	if err := save(filepath.Join(dir, "calendar.png"), sprite.Default().Image); err != nil {
		panic(err)
	}

	// A starting point for hand-drawn backdrops, one per display size.
	for _, res := range frame.Resolutions {
		name := fmt.Sprintf("backdrop-%dx%d.png", res.X, res.Y)
		if err := save(filepath.Join(dir, name), backdrop(res)); err != nil {
			panic(err)
		}
	}
}

func backdrop(res image.Point) *image.Paletted {
	img := raster.New(res.X, res.Y, raster.Background)

	// Draw border
	raster.Outline(img, img.Bounds(), raster.Foreground)

	// Accent rule under the month label
	raster.HLine(img, 2, 44, 16, raster.Accent)

	// Ticks down the left edge beside the agenda
	for y := frame.AgendaOrigin.Y; y < res.Y-2; y += 8 {
		img.SetColorIndex(1, y, uint8(raster.Accent))
	}

	return img
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
