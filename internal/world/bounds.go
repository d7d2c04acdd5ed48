package world

import "github.com/samdwyer/skirmish/internal/entity"

// Rect is an axis-aligned area of the battlefield.
type Rect struct {
	X, Y          float64 // top-left corner
	Width, Height float64
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p entity.Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Clamp returns p moved onto the nearest point inside the rectangle.
func (r Rect) Clamp(p entity.Vec2) entity.Vec2 {
	p.X = clamp(p.X, r.X, r.X+r.Width)
	p.Y = clamp(p.Y, r.Y, r.Y+r.Height)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
