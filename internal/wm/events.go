package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/gravwm/gravwm/internal/geometry"
)

// HandleMapRequest manages the window and arranges it in.
func (m *Manager) HandleMapRequest(win xproto.Window) {
	if c := m.manage(win, false); c != nil {
		m.arrange()
		m.focus(c, !m.cfg.SkipPointerWarp)
	} else {
		// Unmanaged windows still get mapped; they are just not ours.
		m.gw.MapWindow(win)
	}
}

// HandleConfigureRequest grants floating and unmanaged windows their
// wish; tiled clients get a synthetic notify restating the geometry the
// layout assigned.
func (m *Manager) HandleConfigureRequest(ev xproto.ConfigureRequestEvent) {
	c, ok := m.byWin[ev.Window]
	if !ok {
		m.gw.MoveResize(ev.Window, geometry.Rect{
			X: int(ev.X), Y: int(ev.Y),
			Width: int(ev.Width), Height: int(ev.Height),
		})
		return
	}

	if c.Modes.Has(ModeFloat) && !c.Modes.Has(ModeFull) {
		if ev.ValueMask&xproto.ConfigWindowX > 0 {
			c.Geom.X = int(ev.X)
		}
		if ev.ValueMask&xproto.ConfigWindowY > 0 {
			c.Geom.Y = int(ev.Y)
		}
		if ev.ValueMask&xproto.ConfigWindowWidth > 0 {
			c.Geom.Width = int(ev.Width)
		}
		if ev.ValueMask&xproto.ConfigWindowHeight > 0 {
			c.Geom.Height = int(ev.Height)
		}
		c.FloatGeom = c.Geom
		// The client asked for absolute coordinates; no origin
		// translation applies on the next arrange.
		c.Screen = screenForRect(m.screens, c.Geom)
		c.lastScreen = c.Screen
		m.moveResize(c)
		return
	}

	m.gw.ConfigureNotifySynthetic(c.Win, c.Geom, m.borderFor(c, 0))
}

// HandleUnmapNotify withdraws a client unless the unmap was ours.
func (m *Manager) HandleUnmapNotify(win xproto.Window) {
	c, ok := m.byWin[win]
	if !ok {
		return
	}
	if c.Flags.Has(FlagUnmap) {
		c.Flags.Clear(FlagUnmap)
		return
	}
	m.gw.SetIcccmState(win, icccmStateWithdrawn)
	m.unmanage(c)
	m.arrange()
}

// HandleDestroyNotify forgets a destroyed client.
func (m *Manager) HandleDestroyNotify(win xproto.Window) {
	if c, ok := m.byWin[win]; ok {
		m.unmanage(c)
		m.arrange()
	}
}

// HandlePropertyChange re-reads the properties that affect state.
func (m *Manager) HandlePropertyChange(win xproto.Window, prop string) {
	c, ok := m.byWin[win]
	if !ok || c.Flags.Has(FlagDead) {
		return
	}

	switch prop {
	case "WM_NORMAL_HINTS":
		c.Hints = m.gw.NormalHints(win)
		c.Flags.Set(FlagArrange)
		m.arrange()
	case "WM_HINTS":
		hints := m.gw.Hints(win)
		if hints.AcceptsInput {
			c.Flags.Set(FlagInput)
		} else {
			c.Flags.Clear(FlagInput)
		}
		if hints.Urgent && m.focused != win {
			m.setModes(c, ModeUrgent)
			if !m.cfg.SkipUrgentWarp {
				m.focus(c, true)
			}
		} else if !hints.Urgent {
			m.clearModes(c, ModeUrgent)
		}
	case "WM_NAME", "_NET_WM_NAME":
		meta := m.gw.Meta(win)
		c.Meta = WindowIdentity(meta)
	}
}

// HandleClientMessage services EWMH requests from other clients.
func (m *Manager) HandleClientMessage(win xproto.Window, typ string, data []uint32) {
	switch typ {
	case "_NET_CURRENT_DESKTOP":
		if len(data) > 0 {
			m.switchView(m.currentScreen(), int(data[0]))
		}
	case "_NET_ACTIVE_WINDOW":
		if c, ok := m.byWin[win]; ok {
			m.focus(c, !m.cfg.SkipPointerWarp)
		}
	case "_NET_CLOSE_WINDOW":
		if c, ok := m.byWin[win]; ok {
			m.close(c)
		}
	case "_NET_WM_DESKTOP":
		c, ok := m.byWin[win]
		if !ok || len(data) == 0 {
			return
		}
		if data[0] == stickyDesktop {
			m.setModes(c, ModeStick)
		} else if int(data[0]) < len(m.views) {
			c.Tags = m.views[data[0]].Tags
			c.Flags.Set(FlagArrange)
		}
		m.arrange()
	case "_NET_WM_STATE":
		m.handleStateMessage(win, data)
	}
}

// _NET_WM_STATE action codes.
const (
	netStateRemove = 0
	netStateAdd    = 1
	netStateToggle = 2
)

func (m *Manager) handleStateMessage(win xproto.Window, data []uint32) {
	c, ok := m.byWin[win]
	if !ok || len(data) < 2 {
		return
	}

	var mode Mode
	switch m.gw.AtomName(xproto.Atom(data[1])) {
	case "_NET_WM_STATE_FULLSCREEN":
		mode = ModeFull
	case "_NET_WM_STATE_STICKY":
		mode = ModeStick
	case "_NET_WM_STATE_DEMANDS_ATTENTION":
		mode = ModeUrgent
	default:
		return
	}

	switch data[0] {
	case netStateAdd:
		m.setModes(c, mode)
	case netStateRemove:
		m.clearModes(c, mode)
	case netStateToggle:
		m.toggleMode(c, mode)
		return
	}
	m.arrange()
}

// HandleKeyPress dispatches a grabbed chord to its action.
func (m *Manager) HandleKeyPress(mods uint16, keycode xproto.Keycode) {
	for _, grab := range m.grabs {
		if !grab.IsButton() && grab.Keycode == keycode && grab.Mods == mods {
			m.logger.Debug("key action", "spec", grab.Spec, "action", grab.Action)
			m.runAction(grab.Action)
			return
		}
	}
}

// HandleButtonPress dispatches grabbed buttons, starting drags for the
// drag actions.
func (m *Manager) HandleButtonPress(win xproto.Window, mods uint16, button xproto.Button, rootX, rootY int) {
	c, ok := m.byWin[win]
	if !ok {
		return
	}

	for _, grab := range m.grabs {
		if !grab.IsButton() || grab.Button != button || grab.Mods != mods {
			continue
		}
		switch grab.Action {
		case "drag-move":
			m.beginDrag(c, false, rootX, rootY)
		case "drag-resize":
			m.beginDrag(c, true, rootX, rootY)
		default:
			m.runAction(grab.Action)
		}
		return
	}

	if m.cfg.ClickToFocus {
		m.focus(c, false)
	}
}

// HandleButtonRelease finishes a drag.
func (m *Manager) HandleButtonRelease(win xproto.Window, rootX, rootY int) {
	if !m.drag.active {
		return
	}
	m.applyDrag(rootX, rootY)
	c := m.drag.client
	m.drag = dragState{}
	m.snap(c)
	m.moveResize(c)
}

// HandleMotion steps an active drag.
func (m *Manager) HandleMotion(rootX, rootY int) {
	if !m.drag.active {
		return
	}
	m.applyDrag(rootX, rootY)
	m.moveResize(m.drag.client)
}

// HandleEnterNotify implements focus-follows-mouse when click-to-focus
// is off.
func (m *Manager) HandleEnterNotify(win xproto.Window) {
	if m.cfg.ClickToFocus {
		return
	}
	if c, ok := m.byWin[win]; ok && m.focused != win {
		m.focus(c, false)
	}
}

func (m *Manager) HandleScreenChange() {
	m.logger.Info("screen configuration changed")
	m.UpdateScreens()
}

// beginDrag floats the client and records the drag origin.
func (m *Manager) beginDrag(c *Client, resize bool, rootX, rootY int) {
	if c.Modes.Has(ModeFull) || c.Modes.Has(ModeFixed) && resize {
		return
	}
	if !c.Modes.Has(ModeFloat) {
		m.setModes(c, ModeFloat)
		m.arrange()
	}
	m.drag = dragState{
		client: c,
		resize: resize,
		startX: rootX,
		startY: rootY,
		origin: c.Geom,
		active: true,
	}
	m.gw.Raise(c.Win)
}

// applyDrag resolves the pointer delta, stepped by the configured
// increment so drags move in predictable jumps.
func (m *Manager) applyDrag(rootX, rootY int) {
	c := m.drag.client
	dx := rootX - m.drag.startX
	dy := rootY - m.drag.startY
	if m.cfg.Step > 1 {
		dx -= dx % m.cfg.Step
		dy -= dy % m.cfg.Step
	}

	if m.drag.resize {
		c.Geom.Width = m.drag.origin.Width + dx
		c.Geom.Height = m.drag.origin.Height + dy
		if c.Geom.Width < 1 {
			c.Geom.Width = 1
		}
		if c.Geom.Height < 1 {
			c.Geom.Height = 1
		}
	} else {
		c.Geom.X = m.drag.origin.X + dx
		c.Geom.Y = m.drag.origin.Y + dy
	}
	c.FloatGeom = c.Geom
}
