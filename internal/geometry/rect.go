// Package geometry provides the pure rectangle math used by the layout
// engine: bounds clamping, size-hint constraint solving and edge snapping.
// Nothing in this package talks to the display server.
package geometry

import "fmt"

// Rect represents a window position and size in root coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("(x=%d, y=%d, width=%d, height=%d)", r.X, r.Y, r.Width, r.Height)
}

// ContainsPoint reports whether the point (x, y) lies within r, edges included.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Center returns the geometric center of r.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
