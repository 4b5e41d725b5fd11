package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/gravity"
	"github.com/gravwm/gravwm/internal/tagging"
)

// visibleTags is the union of the tag sets shown by every screen's
// current view.
func (m *Manager) visibleTags() tagging.Set {
	var set tagging.Set
	for _, s := range m.screens {
		if s.ViewIdx >= 0 && s.ViewIdx < len(m.views) {
			set = set.Union(m.views[s.ViewIdx].Tags)
		}
	}
	return set
}

// arrange recomputes geometry for every visible client and maps or
// unmaps windows as visibility changes. It is the single layout
// entrypoint; every state change funnels here.
func (m *Manager) arrange() {
	visible := m.visibleTags()

	// Phase one: decide geometry. Tiled members are collected per
	// screen and gravity first so slice positions depend only on the
	// final membership.
	type slot struct {
		screen int
		gravID int
	}
	members := make(map[slot][]*Client)

	for _, c := range m.clients {
		if !c.Visible(visible) {
			continue
		}

		switch {
		case c.Kind == KindDesktop:
			c.Geom = m.desktopGeometry(c)
		case c.Kind == KindDock:
			// Docks place themselves; panels are reserved in config.
		case c.Modes.Has(ModeFull):
			// Zaphod fullscreen spans every screen.
			if c.Modes.Has(ModeZaphod) {
				c.Geom = totalGeometry(m.screens)
			} else {
				c.Geom = m.screens[c.Screen].Geom
			}
		case c.Modes.Has(ModeZaphod):
			c.Geom = totalGeometry(m.screens)
		case c.Modes.Has(ModeFloat):
			// Floats move only when flagged or when they changed
			// screens; a screen change keeps the offset from the old
			// screen's origin.
			if c.Flags.Has(FlagArrange) || c.Screen != c.lastScreen {
				if c.Screen != c.lastScreen && c.lastScreen >= 0 && c.lastScreen < len(m.screens) {
					old := m.screens[c.lastScreen].Geom
					dst := m.screens[c.Screen].Geom
					c.FloatGeom.X += dst.X - old.X
					c.FloatGeom.Y += dst.Y - old.Y
				}
				c.Geom = c.FloatGeom
				m.resizeToBounds(c, m.screens[c.Screen].Geom, true)
				c.FloatGeom = c.Geom
			}
		default:
			view := m.screens[c.Screen].ViewIdx
			gravID := c.GravityFor(view, m.defaultGravity)
			members[slot{c.Screen, gravID}] = append(members[slot{c.Screen, gravID}], c)
		}
	}

	// Phase two: apply gravity slots, splitting tiling gravities among
	// their members.
	for key, group := range members {
		grav := m.gravities[key.gravID]
		base := grav.ApplySize(m.screens[key.screen].Base)

		if m.cfg.GravityTiling && grav.Tiling() && len(group) > 1 {
			slices := gravity.Slices(len(group), base, grav.Tile)
			for i, c := range group {
				c.Geom = slices[i]
			}
		} else {
			for _, c := range group {
				c.Geom = base
			}
		}
	}

	// Phase three: issue geometry and visibility.
	for _, c := range m.clients {
		c.lastScreen = c.Screen
		if c.Visible(visible) {
			m.moveResize(c)
			m.gw.MapWindow(c.Win)
			m.gw.SetIcccmState(c.Win, icccmStateNormal)
			c.Flags.Clear(FlagArrange)
		} else {
			c.Flags.Set(FlagUnmap)
			m.gw.UnmapWindow(c.Win)
			m.gw.SetIcccmState(c.Win, icccmStateIconic)
		}
	}

	m.restack()
	m.publishClients()
}

// WM_STATE values from ICCCM 4.1.3.1.
const (
	icccmStateWithdrawn = 0
	icccmStateNormal    = 1
	icccmStateIconic    = 3
)

// stackRank orders clients bottom to top: desktops under everything,
// then docks and tiled clients, floats above them, fullscreen on top.
func stackRank(c *Client) int {
	switch {
	case c.Kind == KindDesktop:
		return 0
	case c.Modes.Has(ModeFull):
		return 3
	case c.Modes.Has(ModeFloat):
		return 2
	default:
		return 1
	}
}

// restack raises clients in rank order and publishes the stacking
// list. Within a rank, manage order is preserved.
func (m *Manager) restack() {
	ordered := make([]*Client, 0, len(m.clients))
	for rank := 0; rank <= 3; rank++ {
		for _, c := range m.clients {
			if stackRank(c) == rank {
				ordered = append(ordered, c)
			}
		}
	}

	wins := make([]xproto.Window, len(ordered))
	for i, c := range ordered {
		m.gw.Raise(c.Win)
		wins[i] = c.Win
	}
	m.gw.SetClientListStacking(wins)
}

// publishClients mirrors the client list and per-window desktops to
// root properties.
func (m *Manager) publishClients() {
	wins := make([]xproto.Window, len(m.clients))
	for i, c := range m.clients {
		wins[i] = c.Win

		if c.Modes.Has(ModeStick) || c.Kind == KindDesktop {
			m.gw.SetWindowDesktop(c.Win, stickyDesktop)
			continue
		}
		// Publish the first view that shows the client.
		for _, v := range m.views {
			if c.Tags.Intersects(v.Tags) {
				m.gw.SetWindowDesktop(c.Win, uint(v.Index))
				break
			}
		}
	}
	m.gw.SetClientList(wins)
}

// stickyDesktop is the EWMH "all desktops" sentinel.
const stickyDesktop = 0xFFFFFFFF

// switchView shows a view on a screen. When another screen already
// shows that view the two screens swap, so no view disappears.
func (m *Manager) switchView(screenIdx, viewIdx int) {
	if viewIdx < 0 || viewIdx >= len(m.views) || screenIdx < 0 || screenIdx >= len(m.screens) {
		return
	}
	if m.screens[screenIdx].ViewIdx == viewIdx {
		return
	}

	for i := range m.screens {
		if i != screenIdx && m.screens[i].ViewIdx == viewIdx {
			m.screens[i].ViewIdx = m.screens[screenIdx].ViewIdx
			break
		}
	}
	m.screens[screenIdx].ViewIdx = viewIdx

	m.publishDesktops()
	m.arrange()

	prev := m.byWin[m.focused]
	visible := m.visibleTags()
	if prev == nil || !prev.Visible(visible) {
		// Restore the focus the view remembers before searching.
		v := &m.views[viewIdx]
		if c, ok := m.byWin[v.Focus]; ok && c.Visible(visible) && c.AcceptsFocus() {
			m.focus(c, !m.cfg.SkipPointerWarp)
		} else {
			v.Focus = 0
			if next := m.findNext(screenIdx, prev, false); next != nil {
				m.focus(next, !m.cfg.SkipPointerWarp)
			} else {
				m.gw.FocusRoot()
				m.gw.SetActiveWindow(0)
			}
		}
	}

	m.logger.Debug("switched view", "screen", screenIdx, "view", m.views[viewIdx].Name)
}

// currentScreen resolves the screen under the pointer, falling back to
// the focused client's screen.
func (m *Manager) currentScreen() int {
	if x, y, err := m.gw.PointerPosition(); err == nil {
		return screenForPoint(m.screens, x, y)
	}
	if c, ok := m.byWin[m.focused]; ok {
		return c.Screen
	}
	return 0
}

// publishDesktops mirrors views and the current desktop to the root.
func (m *Manager) publishDesktops() {
	names := make([]string, len(m.views))
	for i, v := range m.views {
		names[i] = v.Name
	}
	current := 0
	if len(m.screens) > 0 {
		current = m.screens[m.currentScreen()].ViewIdx
	}
	m.gw.SetDesktops(names, current)
	m.gw.SetViewports(len(m.views))

	if len(m.screens) == 0 {
		return
	}
	// Workarea per view: the base of the screen showing it, or the
	// first screen for views not currently visible.
	areas := make([]geometry.Rect, len(m.views))
	for i := range m.views {
		areas[i] = m.screens[0].Base
		for _, s := range m.screens {
			if s.ViewIdx == i {
				areas[i] = s.Base
				break
			}
		}
	}
	m.gw.SetWorkareas(areas)

	total := totalGeometry(m.screens)
	m.gw.SetDesktopGeometry(total.Width, total.Height)
}
