package wm

import (
	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/x11"
)

// Screen is one output plus its usable area and the view it shows.
type Screen struct {
	Index       int
	Name        string
	Geom        geometry.Rect
	Base        geometry.Rect
	TopPanel    int
	BottomPanel int
	ViewIdx     int
}

// updateBase recomputes the usable area from the output geometry,
// panel reservations and configured padding.
func (s *Screen) updateBase(padding config.Spacing) {
	s.Base = geometry.Rect{
		X:      s.Geom.X + padding.Left,
		Y:      s.Geom.Y + padding.Top + s.TopPanel,
		Width:  s.Geom.Width - padding.Horizontal(),
		Height: s.Geom.Height - padding.Vertical() - s.TopPanel - s.BottomPanel,
	}
	if s.Base.Width < 1 {
		s.Base.Width = 1
	}
	if s.Base.Height < 1 {
		s.Base.Height = 1
	}
}

// buildScreens maps outputs to screens in physical order, attaching
// panel reservations by position and assigning each screen a distinct
// starting view.
func buildScreens(outputs []x11.Output, cfg *config.Config, viewCount int) []Screen {
	screens := make([]Screen, 0, len(outputs))
	for i, out := range outputs {
		screen := Screen{
			Index: i,
			Name:  out.Name,
			Geom:  out.Geom,
		}
		if i < len(cfg.Screens) {
			screen.TopPanel = cfg.Screens[i].TopPanel
			screen.BottomPanel = cfg.Screens[i].BottomPanel
		}
		if viewCount > 0 {
			screen.ViewIdx = i % viewCount
		}
		screen.updateBase(cfg.Padding)
		screens = append(screens, screen)
	}
	return screens
}

// screenForPoint finds the screen containing a root coordinate,
// falling back to the first screen.
func screenForPoint(screens []Screen, x, y int) int {
	for i := range screens {
		if screens[i].Geom.ContainsPoint(x, y) {
			return i
		}
	}
	return 0
}

// screenForRect finds the screen whose geometry contains the center of
// geom, falling back to the first screen.
func screenForRect(screens []Screen, geom geometry.Rect) int {
	cx, cy := geom.Center()
	return screenForPoint(screens, cx, cy)
}

// totalGeometry is the bounding box over all screens, used for zaphod
// clients and the published desktop geometry.
func totalGeometry(screens []Screen) geometry.Rect {
	if len(screens) == 0 {
		return geometry.Rect{}
	}
	minX, minY := screens[0].Geom.X, screens[0].Geom.Y
	maxX := screens[0].Geom.X + screens[0].Geom.Width
	maxY := screens[0].Geom.Y + screens[0].Geom.Height
	for _, s := range screens[1:] {
		if s.Geom.X < minX {
			minX = s.Geom.X
		}
		if s.Geom.Y < minY {
			minY = s.Geom.Y
		}
		if x := s.Geom.X + s.Geom.Width; x > maxX {
			maxX = x
		}
		if y := s.Geom.Y + s.Geom.Height; y > maxY {
			maxY = y
		}
	}
	return geometry.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
