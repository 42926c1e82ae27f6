// Package geom holds the 2D shapes the game draws and hit-tests.
//
// All coordinates are in normalized device space: [-1, 1] on each axis,
// origin at the center, y pointing up.
package geom

import "fmt"

// Point is an immutable position in normalized device space.
type Point struct {
	x, y float32
}

// NewPoint creates a point from NDC coordinates
func NewPoint(x, y float32) Point {
	return Point{x: x, y: y}
}

// FromUnitScreen converts screen coordinates already scaled to [0, 1]
// (top-left origin) into NDC.
func FromUnitScreen(x, y float32) Point {
	return Point{x: 2*x - 1, y: 1 - 2*y}
}

// FromScreen converts a pixel position on a width x height viewport into NDC.
// The y axis is flipped: screen y grows downward, NDC y grows upward.
func FromScreen(x, y, width, height int) Point {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("geom: invalid viewport %dx%d", width, height))
	}
	return Point{
		x: 2*float32(x)/float32(width) - 1,
		y: 1 - 2*float32(y)/float32(height),
	}
}

// X returns the horizontal coordinate
func (p Point) X() float32 { return p.x }

// Y returns the vertical coordinate
func (p Point) Y() float32 { return p.y }

// ToScreen maps the point back to pixel coordinates on a width x height viewport
func (p Point) ToScreen(width, height int) (float32, float32) {
	return (p.x + 1) * float32(width) / 2, (1 - p.y) * float32(height) / 2
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.x, p.y)
}
