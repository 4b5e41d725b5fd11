// Package gravity implements named layout slots: percentage rectangles
// interpreted relative to a screen's usable bounds, optionally oriented
// for group tiling along one axis.
package gravity

import (
	"fmt"

	"github.com/gravwm/gravwm/internal/geometry"
)

// Orientation selects the tiling axis of a gravity slot.
type Orientation int

const (
	// None places a single rectangle without group tiling.
	None Orientation = iota
	// Horizontal tiles group members side by side.
	Horizontal
	// Vertical tiles group members top to bottom.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "none"
}

// Gravity is a named layout slot. Geom holds percentages: x/y/width/height
// each in [0, 100], width and height at least 1.
type Gravity struct {
	Name string
	Geom geometry.Rect
	Tile Orientation
}

// New builds a gravity slot, clamping every percentage into [0, 100] and
// flooring width/height at 1 so a slot always has area.
func New(name string, x, y, width, height int, tile Orientation) Gravity {
	return Gravity{
		Name: name,
		Geom: geometry.Rect{
			X:      clamp(x, 0, 100),
			Y:      clamp(y, 0, 100),
			Width:  clamp(width, 1, 100),
			Height: clamp(height, 1, 100),
		},
		Tile: tile,
	}
}

// ApplySize resolves the percentage definition against bounds, rounding
// down to pixel integers.
func (g Gravity) ApplySize(bounds geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      bounds.X + bounds.Width*g.Geom.X/100,
		Y:      bounds.Y + bounds.Height*g.Geom.Y/100,
		Width:  bounds.Width * g.Geom.Width / 100,
		Height: bounds.Height * g.Geom.Height / 100,
	}
}

// Tiling reports whether the slot tiles its group along an axis.
func (g Gravity) Tiling() bool {
	return g.Tile != None
}

func (g Gravity) String() string {
	return fmt.Sprintf("(name=%s, geom=%s, tile=%s)", g.Name, g.Geom, g.Tile)
}

// Slices splits geom into n slices along the tiling axis. Every member
// receives span = extent/n pixels; the last one additionally receives the
// division remainder, so the slices exactly cover geom with no gap or
// overlap. Returns nil for n <= 0 or a non-tiling orientation.
func Slices(n int, geom geometry.Rect, tile Orientation) []geometry.Rect {
	if n <= 0 {
		return nil
	}

	slices := make([]geometry.Rect, n)

	switch tile {
	case Horizontal:
		span := geom.Width / n
		remainder := geom.Width - span*n
		for i := 0; i < n; i++ {
			slices[i] = geometry.Rect{
				X:      geom.X + i*span,
				Y:      geom.Y,
				Width:  span,
				Height: geom.Height,
			}
		}
		slices[n-1].Width += remainder
	case Vertical:
		span := geom.Height / n
		remainder := geom.Height - span*n
		for i := 0; i < n; i++ {
			slices[i] = geometry.Rect{
				X:      geom.X,
				Y:      geom.Y + i*span,
				Width:  geom.Width,
				Height: span,
			}
		}
		slices[n-1].Height += remainder
	default:
		return nil
	}

	return slices
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
