package sprite

import (
	"image"
	"time"
)

// Glyph identifies one sprite in the atlas.
type Glyph int

const (
	Digit0 Glyph = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	numGlyphs
)

// Atlas geometry.
const (
	digitMargin = 2
	digitWidth  = 6
	digitHeight = 7
	digitY      = 11

	// DigitPitch is how far PrintNumber moves the cursor per digit.
	DigitPitch = 8

	monthX    = 2
	monthY    = 20
	monthCols = 3
	monthW    = 23
	monthH    = 9

	weekdayX = 2
	weekdayY = 0
	weekdayW = 16
	weekdayH = 9

	// Width and Height are the size of the built-in atlas. Loaded atlases
	// may be larger.
	Width  = weekdayX + 7*weekdayW + 2
	Height = monthY + 4*monthH
)

var regions = func() (r [numGlyphs]image.Rectangle) {
	for d := 0; d < 10; d++ {
		x := digitMargin + d*(digitWidth+digitMargin)
		r[Digit0+Glyph(d)] = image.Rect(x, digitY, x+digitWidth, digitY+digitHeight)
	}
	for m := 0; m < 12; m++ {
		x := monthX + (m%monthCols)*monthW
		y := monthY + (m/monthCols)*monthH
		r[January+Glyph(m)] = image.Rect(x, y, x+monthW, y+monthH)
	}
	// Weekdays are stored Monday first.
	for i := 0; i < 7; i++ {
		x := weekdayX + i*weekdayW
		r[Monday+Glyph(i)] = image.Rect(x, weekdayY, x+weekdayW, weekdayY+weekdayH)
	}
	return
}()

// Valid reports whether g names a sprite.
func (g Glyph) Valid() bool {
	return g >= 0 && g < numGlyphs
}

// Region returns the rectangle g occupies in the atlas.
func (g Glyph) Region() image.Rectangle {
	if !g.Valid() {
		return image.Rectangle{}
	}
	return regions[g]
}

// DigitGlyph returns the glyph for d, which must be 0 to 9.
func DigitGlyph(d int) Glyph {
	if d < 0 || d > 9 {
		return -1
	}
	return Digit0 + Glyph(d)
}

// MonthGlyph returns the glyph holding the name of m.
func MonthGlyph(m time.Month) Glyph {
	if m < time.January || m > time.December {
		return -1
	}
	return January + Glyph(m-time.January)
}

// WeekdayGlyph returns the label glyph for w.
func WeekdayGlyph(w time.Weekday) Glyph {
	if w < time.Sunday || w > time.Saturday {
		return -1
	}
	return Monday + Glyph((int(w)+6)%7)
}
