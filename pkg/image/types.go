// Package image holds the drawing primitives of a schematic element and the
// Image aggregate that groups them by kind.
//
// Every primitive stores absolute coordinates in the element's local frame.
// Rotation and reflection act on those coordinates directly, about the local
// origin (0,0); there is no transform matrix to compose or keep in sync.
package image

import (
	"fmt"
	"math"
)

// Axis selects the mirror line of a reflection
type Axis int

const (
	// AxisX mirrors across the horizontal axis (y is negated)
	AxisX Axis = iota
	// AxisY mirrors across the vertical axis (x is negated)
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts "x"/"X" or "y"/"Y" to an Axis
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want X or Y)", s)
}

// Point is the base coordinate unit
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rotate rotates the point about the origin by angle degrees (counter-clockwise
// in a y-up frame)
func (p *Point) Rotate(angle float64) {
	sin, cos := sincos(angle)
	x := p.X*cos - p.Y*sin
	y := p.X*sin + p.Y*cos
	p.X, p.Y = x, y
}

// Reflect mirrors the point across the given axis
func (p *Point) Reflect(axis Axis) {
	switch axis {
	case AxisX:
		p.Y = -p.Y
	case AxisY:
		p.X = -p.X
	}
}

// ApproxEqual reports whether p and q differ by at most eps on each axis
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatFloat(p.X), formatFloat(p.Y))
}

// sincos returns sin and cos of an angle in degrees. Whole quarter turns are
// exact so that 90/180/270 rotations keep integer grids on the grid.
func sincos(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) && !math.IsInf(q, 0) {
		switch (int64(math.Mod(q, 4)) + 4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	return math.Sincos(deg * math.Pi / 180.0)
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand expands the bounding box to include a point
func (bb *BoundingBox) Expand(p Point) {
	bb.Min.X = math.Min(bb.Min.X, p.X)
	bb.Min.Y = math.Min(bb.Min.Y, p.Y)
	bb.Max.X = math.Max(bb.Max.X, p.X)
	bb.Max.Y = math.Max(bb.Max.Y, p.Y)
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Translate returns the box moved by d
func (bb BoundingBox) Translate(d Point) BoundingBox {
	if bb.IsEmpty() {
		return bb
	}
	return BoundingBox{Min: bb.Min.Add(d), Max: bb.Max.Add(d)}
}

// Grow returns the box enlarged by d on every side
func (bb BoundingBox) Grow(d float64) BoundingBox {
	if bb.IsEmpty() {
		return bb
	}
	return BoundingBox{
		Min: Point{X: bb.Min.X - d, Y: bb.Min.Y - d},
		Max: Point{X: bb.Max.X + d, Y: bb.Max.Y + d},
	}
}

// Contains checks if a point is within the bounding box
func (bb BoundingBox) Contains(p Point) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Point {
	return Point{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}
