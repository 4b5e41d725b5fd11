package wm

import (
	"github.com/BurntSushi/xgb/xproto"
)

// historyDepth bounds the focus history; older entries fall off.
const historyDepth = 10

// FocusHistory is a most-recent-first list of focused windows.
type FocusHistory struct {
	wins []xproto.Window
}

// Push records win as most recently focused, deduplicating earlier
// entries.
func (h *FocusHistory) Push(win xproto.Window) {
	h.Remove(win)
	h.wins = append([]xproto.Window{win}, h.wins...)
	if len(h.wins) > historyDepth {
		h.wins = h.wins[:historyDepth]
	}
}

// Remove drops win from the history.
func (h *FocusHistory) Remove(win xproto.Window) {
	for i, w := range h.wins {
		if w == win {
			h.wins = append(h.wins[:i], h.wins[i+1:]...)
			return
		}
	}
}

// Walk visits entries most recent first.
func (h *FocusHistory) Walk(fn func(win xproto.Window) bool) {
	for _, w := range h.wins {
		if fn(w) {
			return
		}
	}
}

// focus gives input focus to a client: history bookkeeping, the
// protocol-appropriate focus method, restacking, and optionally a
// pointer warp into the window.
func (m *Manager) focus(c *Client, warp bool) {
	if c == nil || !c.AcceptsFocus() {
		return
	}

	if c.Modes.Has(ModeUrgent) {
		m.clearModes(c, ModeUrgent)
	}

	// WM_TAKE_FOCUS participants are asked; everyone else is assigned.
	if c.Flags.Has(FlagFocus) && !c.Flags.Has(FlagInput) {
		if err := m.gw.SendTakeFocus(c.Win); err != nil {
			m.logger.Debug("take focus failed", "win", c.Win, "err", err)
		}
	} else {
		m.gw.SetInputFocus(c.Win)
	}

	m.focused = c.Win
	m.history.Push(c.Win)
	if v := m.screens[c.Screen].ViewIdx; v >= 0 && v < len(m.views) {
		m.views[v].Focus = c.Win
	}
	m.restack()
	m.gw.SetActiveWindow(c.Win)

	if warp && !m.cfg.SkipPointerWarp {
		cx, cy := c.Geom.Center()
		m.gw.WarpPointer(cx, cy)
	}
}

// findNext picks the client to focus on screen after prev goes away or
// loses the view: first a visible history entry on that screen, then
// any visible client on that screen. Only when crossScreen is set may
// the search jump to a visible client elsewhere.
func (m *Manager) findNext(screen int, prev *Client, crossScreen bool) *Client {
	visible := m.visibleTags()

	var found *Client
	m.history.Walk(func(win xproto.Window) bool {
		c, ok := m.byWin[win]
		if !ok || c == prev || c.Screen != screen || !c.Visible(visible) || !c.AcceptsFocus() {
			return false
		}
		found = c
		return true
	})
	if found != nil {
		return found
	}

	for _, c := range m.clients {
		if c != prev && c.Screen == screen && c.Visible(visible) && c.AcceptsFocus() {
			return c
		}
	}

	if !crossScreen || len(m.screens) < 2 {
		return nil
	}
	for _, c := range m.clients {
		if c != prev && c.Visible(visible) && c.AcceptsFocus() {
			return c
		}
	}
	return nil
}

// focusNext cycles focus among the visible clients in manage order.
func (m *Manager) focusNext() {
	visible := m.visibleTags()
	var candidates []*Client
	for _, c := range m.clients {
		if c.Visible(visible) && c.AcceptsFocus() {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return
	}

	next := candidates[0]
	for i, c := range candidates {
		if c.Win == m.focused {
			next = candidates[(i+1)%len(candidates)]
			break
		}
	}
	m.focus(next, true)
}
