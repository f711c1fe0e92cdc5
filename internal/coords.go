package internal

import "math"

// GridMax is the upper bound of the relative grid on both axes
const GridMax = 10.0

// Point is a 2-D coordinate. Absolute points are pixels with y growing
// downward; relative points live on the 0-10 grid with y growing upward.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size is a box size in pixels
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DefaultNoteSize is the size given to every new note
var DefaultNoteSize = Size{Width: DefaultNoteWidth, Height: DefaultNoteHeight}

// Rect is a pixel rectangle anchored at its top-left corner
type Rect struct {
	Min  Point
	Size Size
}

// Contains reports whether p lies inside the rectangle, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Min.X+r.Size.Width &&
		p.Y >= r.Min.Y && p.Y <= r.Min.Y+r.Size.Height
}

// Viewport is the measured pixel size of the canvas
type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Measured reports whether layout has produced usable dimensions
func (v Viewport) Measured() bool {
	return v.Width > 0 && v.Height > 0 && finite(v.Width, v.Height)
}

// Contains reports whether an absolute point lies on the canvas
func (v Viewport) Contains(p Point) bool {
	return v.Measured() && p.X >= 0 && p.Y >= 0 && p.X <= v.Width && p.Y <= v.Height
}

// ToAbsolute maps a relative centre to the top-left pixel position of a box
// of the given size. It returns the degenerate origin and false when the
// viewport has not been measured yet.
func ToAbsolute(rel Point, size Size, vp Viewport) (Point, bool) {
	if !vp.Measured() {
		return Point{}, false
	}
	return Point{
		X: (rel.X/GridMax)*vp.Width - size.Width/2,
		Y: (1-rel.Y/GridMax)*vp.Height - size.Height/2,
	}, true
}

// ToRelative maps the top-left pixel position of a box to the relative
// position of its centre. It returns the degenerate origin and false when
// the viewport has not been measured yet.
func ToRelative(abs Point, size Size, vp Viewport) (Point, bool) {
	if !vp.Measured() {
		return Point{}, false
	}
	return Point{
		X: ((abs.X + size.Width/2) / vp.Width) * GridMax,
		Y: GridMax - ((abs.Y+size.Height/2)/vp.Height)*GridMax,
	}, true
}

// InGrid reports whether a relative point lies within [0,10]x[0,10]
func InGrid(rel Point) bool {
	return rel.X >= 0 && rel.X <= GridMax && rel.Y >= 0 && rel.Y <= GridMax
}

// Valid reports whether the size is finite and positive on both axes
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && finite(s.Width, s.Height)
}

// Finite reports whether both coordinates are finite numbers
func (p Point) Finite() bool {
	return finite(p.X, p.Y)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
