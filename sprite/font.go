package sprite

import (
	"image"
	"strings"
	"time"

	"inkcal/raster"
)

const (
	cellWidth  = 5
	cellHeight = 7
)

// 5x7 bitmaps for the characters the atlas needs.
var font5x7 = map[rune][cellHeight]string{
	'0': {".###.", "#...#", "#..##", "#.#.#", "##..#", "#...#", ".###."},
	'1': {"..#..", ".##..", "..#..", "..#..", "..#..", "..#..", ".###."},
	'2': {".###.", "#...#", "....#", "...#.", "..#..", ".#...", "#####"},
	'3': {"#####", "...#.", "..#..", "...#.", "....#", "#...#", ".###."},
	'4': {"...#.", "..##.", ".#.#.", "#..#.", "#####", "...#.", "...#."},
	'5': {"#####", "#....", "####.", "....#", "....#", "#...#", ".###."},
	'6': {"..##.", ".#...", "#....", "####.", "#...#", "#...#", ".###."},
	'7': {"#####", "....#", "...#.", "..#..", ".#...", ".#...", ".#..."},
	'8': {".###.", "#...#", "#...#", ".###.", "#...#", "#...#", ".###."},
	'9': {".###.", "#...#", "#...#", ".####", "....#", "...#.", ".##.."},
	'A': {".###.", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	'B': {"####.", "#...#", "#...#", "####.", "#...#", "#...#", "####."},
	'C': {".###.", "#...#", "#....", "#....", "#....", "#...#", ".###."},
	'D': {"###..", "#..#.", "#...#", "#...#", "#...#", "#..#.", "###.."},
	'E': {"#####", "#....", "#....", "####.", "#....", "#....", "#####"},
	'F': {"#####", "#....", "#....", "####.", "#....", "#....", "#...."},
	'G': {".###.", "#...#", "#....", "#.###", "#...#", "#...#", ".####"},
	'H': {"#...#", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	'J': {"..###", "...#.", "...#.", "...#.", "...#.", "#..#.", ".##.."},
	'L': {"#....", "#....", "#....", "#....", "#....", "#....", "#####"},
	'M': {"#...#", "##.##", "#.#.#", "#.#.#", "#...#", "#...#", "#...#"},
	'N': {"#...#", "#...#", "##..#", "#.#.#", "#..##", "#...#", "#...#"},
	'O': {".###.", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	'P': {"####.", "#...#", "#...#", "####.", "#....", "#....", "#...."},
	'R': {"####.", "#...#", "#...#", "####.", "#.#..", "#..#.", "#...#"},
	'S': {".####", "#....", "#....", ".###.", "....#", "....#", "####."},
	'T': {"#####", "..#..", "..#..", "..#..", "..#..", "..#..", "..#.."},
	'U': {"#...#", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	'V': {"#...#", "#...#", "#...#", "#...#", "#...#", ".#.#.", "..#.."},
	'W': {"#...#", "#...#", "#...#", "#.#.#", "#.#.#", "#.#.#", ".#.#."},
	'Y': {"#...#", "#...#", ".#.#.", "..#..", "..#..", "..#..", "..#.."},
}

func drawChar(img *image.Paletted, at image.Point, r rune) {
	rows, ok := font5x7[r]
	if !ok {
		return
	}
	for y, row := range rows {
		for x, px := range row {
			if px == '#' {
				img.SetColorIndex(at.X+x, at.Y+y, uint8(raster.Foreground))
			}
		}
	}
}

func drawString(img *image.Paletted, at image.Point, s string) {
	for _, r := range s {
		drawChar(img, at, r)
		at.X += cellWidth + 1
	}
}

// Default builds the built-in atlas.
func Default() *Atlas {
	img := raster.New(Width, Height, raster.Background)

	for d := 0; d < 10; d++ {
		drawChar(img, DigitGlyph(d).Region().Min, rune('0'+d))
	}
	for m := time.January; m <= time.December; m++ {
		drawString(img, MonthGlyph(m).Region().Min.Add(image.Pt(0, 1)), strings.ToUpper(m.String()[:3]))
	}
	for w := time.Sunday; w <= time.Saturday; w++ {
		drawString(img, WeekdayGlyph(w).Region().Min.Add(image.Pt(0, 1)), strings.ToUpper(w.String()[:2]))
	}

	a, err := NewAtlas(img)
	if err != nil {
		panic(err)
	}
	return a
}
