package grid

import "image"

// Reference cell size and box placement.
const (
	CellWidth  = 20
	CellHeight = 18
	Columns    = DaysPerWeek

	MarginRight = 2
	MarginTop   = 2
)

// Geometry is the pixel layout of the calendar box.
type Geometry struct {
	Columns, Rows int

	CellWidth, CellHeight int

	// Box is the outer rectangle including the 1px border.
	Box image.Rectangle

	// ColumnLines holds the X of the separator to the right of each
	// column; RowLines the Y of the separator below each row, header
	// first.
	ColumnLines []int
	RowLines    []int

	// ColumnX holds the left edge of each column, used to place the
	// weekday labels.
	ColumnX []int

	// Cells holds the top-left paint origin of each day, indexed like the
	// matrix.
	Cells [][]image.Point

	// Overflow is set when Box does not fit within the resolution passed to
	// Layout.
	Overflow bool
}

// Layout computes the geometry of the box holding m on a display of the
// given resolution. The box is anchored to the top-right corner.
//
// A box that does not fit is still laid out with Overflow set; drawing it
// clips at the canvas edge.
func Layout(m DateMatrix, res image.Point) (Geometry, error) {
	if err := m.Validate(); err != nil {
		return Geometry{}, err
	}

	g := Geometry{
		Columns:    Columns,
		Rows:       len(m) + 1,
		CellWidth:  CellWidth,
		CellHeight: CellHeight,
	}

	w := 1 + (CellWidth+1)*g.Columns
	h := 1 + (CellHeight+1)*g.Rows
	x := res.X - w - MarginRight
	y := MarginTop
	g.Box = image.Rect(x, y, x+w, y+h)
	g.Overflow = !g.Box.In(image.Rectangle{Max: res})

	for col := 0; col < g.Columns; col++ {
		left := x + (CellWidth+1)*col
		g.ColumnX = append(g.ColumnX, left)
		g.ColumnLines = append(g.ColumnLines, left+CellWidth+1)
	}
	for row := 0; row < g.Rows; row++ {
		g.RowLines = append(g.RowLines, y+(CellHeight+1)*(row+1))
	}

	g.Cells = make([][]image.Point, len(m))
	for row := range m {
		g.Cells[row] = make([]image.Point, len(m[row]))
		for col := range m[row] {
			g.Cells[row][col] = image.Pt(
				x+1+col*(CellWidth+1),
				y+1+(row+1)*(CellHeight+1),
			)
		}
	}

	return g, nil
}

// Cell returns the rectangle painted for the day at row, col.
func (g Geometry) Cell(row, col int) image.Rectangle {
	p := g.Cells[row][col]
	return image.Rect(p.X, p.Y, p.X+g.CellWidth, p.Y+g.CellHeight)
}

// Header returns the rectangle holding the weekday labels.
func (g Geometry) Header() image.Rectangle {
	return image.Rect(g.Box.Min.X+1, g.Box.Min.Y+1, g.Box.Max.X-1, g.Box.Min.Y+1+g.CellHeight)
}
