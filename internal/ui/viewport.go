package ui

import (
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// hudRows is the number of terminal rows below the field: a message line and
// a status line.
const hudRows = 2

// Viewport maps the battlefield onto the terminal cells above the HUD.
type Viewport struct {
	bounds     world.Rect
	cols, rows int
}

// NewViewport fits bounds into a screen of the given size.
func NewViewport(bounds world.Rect, screenWidth, screenHeight int) *Viewport {
	v := &Viewport{bounds: bounds}
	v.Resize(screenWidth, screenHeight)
	return v
}

// Resize adapts the mapping to a new screen size.
func (v *Viewport) Resize(screenWidth, screenHeight int) {
	v.cols = max(screenWidth, 1)
	v.rows = max(screenHeight-hudRows, 1)
}

// Cols returns the field width in cells.
func (v *Viewport) Cols() int { return v.cols }

// Rows returns the field height in cells.
func (v *Viewport) Rows() int { return v.rows }

// ToCell returns the cell a world position falls in. Positions outside the
// battlefield land on the nearest edge cell.
func (v *Viewport) ToCell(p entity.Vec2) (x, y int) {
	x = int((p.X - v.bounds.X) / v.bounds.Width * float64(v.cols))
	y = int((p.Y - v.bounds.Y) / v.bounds.Height * float64(v.rows))
	return clampInt(x, 0, v.cols-1), clampInt(y, 0, v.rows-1)
}

// ToWorld returns the world position at the center of a cell.
func (v *Viewport) ToWorld(x, y int) entity.Vec2 {
	return entity.Vec2{
		X: v.bounds.X + (float64(x)+0.5)*v.bounds.Width/float64(v.cols),
		Y: v.bounds.Y + (float64(y)+0.5)*v.bounds.Height/float64(v.rows),
	}
}

// CellBounds returns the world-space box covered by a cell.
func (v *Viewport) CellBounds(x, y int) (lo, hi entity.Vec2) {
	cw := v.bounds.Width / float64(v.cols)
	ch := v.bounds.Height / float64(v.rows)
	lo = entity.Vec2{X: v.bounds.X + float64(x)*cw, Y: v.bounds.Y + float64(y)*ch}
	hi = entity.Vec2{X: lo.X + cw, Y: lo.Y + ch}
	return lo, hi
}

// InField reports whether a cell belongs to the battlefield rather than the
// HUD.
func (v *Viewport) InField(x, y int) bool {
	return x >= 0 && x < v.cols && y >= 0 && y < v.rows
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
