package wm

import "github.com/gravwm/gravwm/internal/geometry"

// setModes merges modes into the client and runs the side effects for
// every mode that was newly set. Merging is a union: modes already
// present keep their state and run no effects again.
func (m *Manager) setModes(c *Client, modes Mode) {
	added := modes &^ c.Modes
	if added == 0 {
		return
	}

	// Center implies float.
	if added.Has(ModeCenter) && !c.Modes.Has(ModeFloat) {
		added.Set(ModeFloat)
	}

	// Fixed clients want to keep their size, yet some broken ones still
	// ask for fullscreen. Grant it only when the fixed size already
	// equals the usable area.
	if added.Has(ModeFull) && c.Modes.Has(ModeFixed) {
		base := m.screens[c.Screen].Base
		if c.Hints.MinWidth != base.Width || c.Hints.MinHeight != base.Height {
			added.Clear(ModeFull)
		}
	}

	c.Modes.Set(added)

	if added.Has(ModeFloat) {
		c.Geom = c.FloatGeom
	}
	if added.Has(ModeCenter) {
		base := m.screens[c.Screen].Base
		c.Geom.X = base.X + (base.Width-c.Geom.Width)/2
		c.Geom.Y = base.Y + (base.Height-c.Geom.Height)/2
		c.FloatGeom = c.Geom
	}
	if added.Has(ModeFull) {
		m.gw.SetBorderWidth(c.Win, 0)
		if c.Modes.Has(ModeZaphod) {
			c.Geom = totalGeometry(m.screens)
		} else {
			c.Geom = m.screens[c.Screen].Geom
		}
	}
	if added.Has(ModeBorderless) && !c.Modes.Has(ModeFull) {
		m.gw.SetBorderWidth(c.Win, 0)
	}
	if added.Has(ModeStick) {
		m.stickSideEffects(c)
	}
	if added.Has(ModeUrgent) {
		m.urgent = m.urgent.Union(c.Tags)
	}
	if added.Has(ModeZaphod) {
		c.Geom = totalGeometry(m.screens)
	}

	c.Flags.Set(FlagArrange)
	m.publishClientState(c)
}

// clearModes removes modes from the client and runs the side effects
// for every mode that was actually cleared.
func (m *Manager) clearModes(c *Client, modes Mode) {
	removed := modes & c.Modes
	if removed == 0 {
		return
	}

	// Dropping float also drops the float-dependent decorations.
	if removed.Has(ModeFloat) {
		removed.Set(c.Modes & ModeCenter)
	}

	c.Modes.Clear(removed)

	if removed.Has(ModeFull) {
		m.gw.SetBorderWidth(c.Win, m.borderFor(c, 0))
		c.Geom = c.FloatGeom
	}
	if removed.Has(ModeBorderless) && !c.Modes.Has(ModeFull) {
		m.gw.SetBorderWidth(c.Win, m.borderFor(c, 0))
	}
	if removed.Has(ModeUrgent) {
		m.recomputeUrgent()
	}

	c.Flags.Set(FlagArrange)
	m.publishClientState(c)
}

// toggleMode flips one mode from a user binding, dispatching to the
// set or clear path so the right side effects run.
func (m *Manager) toggleMode(c *Client, mode Mode) {
	if c.Modes.Has(mode) {
		m.clearModes(c, mode)
	} else {
		m.setModes(c, mode)
	}
	m.arrange()
}

// stickSideEffects runs when a client becomes sticky: it re-resolves
// the screen and carries its current gravity to the views that do not
// already share the client's tags, so it arranges consistently where it
// was never tagged to show.
func (m *Manager) stickSideEffects(c *Client) {
	if m.cfg.SkipPointerWarp {
		if focused, ok := m.byWin[m.focused]; ok && focused.Visible(m.visibleTags()) {
			c.Screen = focused.Screen
		}
	} else if x, y, err := m.gw.PointerPosition(); err == nil {
		c.Screen = screenForPoint(m.screens, x, y)
	}

	current := m.screens[c.Screen].ViewIdx
	grav := c.GravityFor(current, m.defaultGravity)
	for _, v := range m.views {
		if !v.Tags.Contains(c.Tags) {
			c.SetGravityFor(v.Index, grav)
		}
	}
}

// recomputeUrgent rebuilds the urgent tag union after a client calms
// down.
func (m *Manager) recomputeUrgent() {
	m.urgent = 0
	for _, c := range m.clients {
		if c.Modes.Has(ModeUrgent) {
			m.urgent = m.urgent.Union(c.Tags)
		}
	}
}

// publishClientState mirrors modes into _NET_WM_STATE.
func (m *Manager) publishClientState(c *Client) {
	var states []string
	if c.Modes.Has(ModeFull) {
		states = append(states, "_NET_WM_STATE_FULLSCREEN")
	}
	if c.Modes.Has(ModeFloat) {
		states = append(states, "_NET_WM_STATE_ABOVE")
	}
	if c.Modes.Has(ModeStick) {
		states = append(states, "_NET_WM_STATE_STICKY")
	}
	if c.Modes.Has(ModeUrgent) {
		states = append(states, "_NET_WM_STATE_DEMANDS_ATTENTION")
	}
	m.gw.SetWindowStates(c.Win, states)
}

// desktopGeometry sizes a desktop-type client to the screen minus
// panel strips; it ignores padding so wallpaper windows still cover
// the visible root.
func (m *Manager) desktopGeometry(c *Client) geometry.Rect {
	s := m.screens[c.Screen]
	return geometry.Rect{
		X:      s.Geom.X,
		Y:      s.Geom.Y + s.TopPanel,
		Width:  s.Geom.Width,
		Height: s.Geom.Height - s.TopPanel - s.BottomPanel,
	}
}
