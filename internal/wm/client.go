package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/tagging"
)

// Client is one managed window and everything the manager knows about
// it.
type Client struct {
	Win    xproto.Window
	Meta   WindowIdentity
	Flags  Flag
	Modes  Mode
	Kind   Kind
	Tags   tagging.Set
	Screen int
	Leader xproto.Window
	Group  xproto.Window

	// lastScreen is the screen the client was last arranged on; a
	// floating client moving between them translates its geometry.
	lastScreen int

	// Gravities holds one gravity id per view; arrangement follows the
	// entry of the screen's current view.
	Gravities []int

	// Geom is the managed geometry. For floating clients it survives
	// mode toggles and is restored when floating resumes.
	Geom      geometry.Rect
	FloatGeom geometry.Rect
	Hints     geometry.Hints
}

// WindowIdentity aliases the x11 metadata type so most of this package
// reads without the transport prefix.
type WindowIdentity struct {
	Instance string
	Class    string
	Name     string
	Role     string
}

// Visible reports whether the client shows under the aggregate visible
// tag set. Desktop and sticky clients are always visible.
func (c *Client) Visible(visible tagging.Set) bool {
	if c.Kind == KindDesktop || c.Modes.Has(ModeStick) {
		return true
	}
	return c.Tags.Intersects(visible)
}

// AcceptsFocus reports whether focusing the client can succeed at all.
func (c *Client) AcceptsFocus() bool {
	if c.Flags.Has(FlagDead) {
		return false
	}
	return c.Flags.Has(FlagInput) || c.Flags.Has(FlagFocus)
}

// GravityFor returns the client's gravity on a view, or def when the
// view never had one assigned.
func (c *Client) GravityFor(view, def int) int {
	if view >= 0 && view < len(c.Gravities) && c.Gravities[view] >= 0 {
		return c.Gravities[view]
	}
	return def
}

// SetGravityFor records the gravity for one view, growing the slice as
// views appear.
func (c *Client) SetGravityFor(view, gravityID int) {
	for len(c.Gravities) <= view {
		c.Gravities = append(c.Gravities, -1)
	}
	c.Gravities[view] = gravityID
}

// manage takes over a window: read its properties in a fixed order,
// derive modes and tags, and insert it into the layout.
func (m *Manager) manage(win xproto.Window, adopting bool) *Client {
	if _, ok := m.byWin[win]; ok {
		return nil
	}
	if m.gw.OverrideRedirect(win) {
		return nil
	}
	if adopting && m.gw.IsWithdrawn(win) {
		return nil
	}

	c := &Client{Win: win, Screen: 0}
	if geom, err := m.gw.Geometry(win); err == nil {
		c.Geom = geom
		c.FloatGeom = geom
	}

	var pending Mode

	// Order matters: size hints first (fixed detection), then identity,
	// protocols, type, wm hints, net states, transient linkage, and
	// finally tag matching which may add more modes.
	m.readSizeHints(c, &pending)

	meta := m.gw.Meta(win)
	c.Meta = WindowIdentity(meta)

	protos := m.gw.ReadProtocols(win)
	if protos.TakeFocus {
		c.Flags.Set(FlagFocus)
	}
	if protos.DeleteWindow {
		c.Flags.Set(FlagClose)
	}

	m.readWindowType(c, &pending)

	hints := m.gw.Hints(win)
	if hints.AcceptsInput {
		c.Flags.Set(FlagInput)
	}
	if hints.Urgent {
		pending.Set(ModeUrgent)
	}
	c.Group = hints.Group

	for _, state := range m.gw.NetWmStates(win) {
		switch state {
		case "_NET_WM_STATE_FULLSCREEN":
			pending.Set(ModeFull)
		case "_NET_WM_STATE_ABOVE":
			pending.Set(ModeFloat)
		case "_NET_WM_STATE_STICKY":
			pending.Set(ModeStick)
		case "_NET_WM_STATE_DEMANDS_ATTENTION":
			pending.Set(ModeUrgent)
		}
	}

	if leader, ok := m.gw.TransientFor(win); ok && leader != win {
		c.Leader = leader
		pending.Set(ModeFloat)
		if m.cfg.UrgentTransients {
			pending.Set(ModeUrgent)
		}
	}

	c.Tags = matchTags(m.tags, meta)
	for _, tag := range m.tags {
		if c.Tags.HasBit(tag.Index) && tag.Modes != 0 {
			pending.Set(tag.Modes)
		}
	}

	m.applyRequestedGeometry(c, pending)

	c.Screen = screenForRect(m.screens, c.Geom)
	c.lastScreen = c.Screen
	m.initGravities(c)

	m.byWin[win] = c
	m.clients = append(m.clients, c)

	m.gw.SetBorderWidth(win, m.borderFor(c, pending))
	if err := m.gw.SelectClientEvents(win); err != nil {
		m.logger.Debug("failed to select client events", "win", win, "err", err)
	}
	m.gw.ListenClient(win)

	if pending != 0 {
		m.setModes(c, pending)
	}
	c.Flags.Set(FlagArrange)

	m.logger.Info("managing client",
		"win", win,
		"class", c.Meta.Class,
		"kind", c.Kind,
		"tags", c.Tags,
		"modes", c.Modes,
		"screen", c.Screen)
	return c
}

// readSizeHints ingests WM_NORMAL_HINTS and sanitizes them against the
// first screen so misdeclared extremes cannot poison layout. A window
// pinning min to max is fixed and floats; it never joins gravity
// arrangement.
func (m *Manager) readSizeHints(c *Client, pending *Mode) {
	c.Hints = m.gw.NormalHints(c.Win)

	screen := m.screens[0].Geom
	panel := m.screens[0].TopPanel + m.screens[0].BottomPanel
	if c.Hints.MinWidth > screen.Width {
		c.Hints.MinWidth = screen.Width
	}
	if c.Hints.MinHeight > screen.Height {
		c.Hints.MinHeight = screen.Height
	}
	if c.Hints.MaxWidth > screen.Width {
		c.Hints.MaxWidth = screen.Width
	}
	if c.Hints.MaxHeight > screen.Height {
		c.Hints.MaxHeight = screen.Height - panel
	}

	if m.cfg.HonorSizeHints {
		pending.Set(ModeResize)
	}
	if c.Hints.MinWidth > 0 && c.Hints.MinHeight > 0 &&
		c.Hints.MinWidth == c.Hints.MaxWidth &&
		c.Hints.MinHeight == c.Hints.MaxHeight {
		pending.Set(ModeFixed | ModeFloat)
		c.Geom.Width = c.Hints.MinWidth
		c.Geom.Height = c.Hints.MinHeight
		c.FloatGeom = c.Geom
	}
}

// applyRequestedGeometry honors the position and size a client asked
// for in WM_NORMAL_HINTS. Only clients that manage their own geometry
// get their wish, and the result is pulled back onto the first screen
// to sanitize misbehaving clients.
func (m *Manager) applyRequestedGeometry(c *Client, pending Mode) {
	if !m.cfg.HonorSizeHints && !pending.Has(ModeFloat|ModeResize) && c.Kind != KindDock {
		return
	}
	if c.Hints.HasPosition {
		c.Geom.X = c.Hints.PosX
		c.Geom.Y = c.Hints.PosY
	}
	if c.Hints.HasSize {
		c.Geom.Width = c.Hints.ReqWidth
		c.Geom.Height = c.Hints.ReqHeight
	}
	m.resizeToBounds(c, m.screens[0].Geom, true)
	c.FloatGeom = c.Geom
}

// readWindowType classifies the client and applies the modes the type
// implies.
func (m *Manager) readWindowType(c *Client, pending *Mode) {
	for _, typ := range m.gw.WindowTypes(c.Win) {
		switch typ {
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			c.Kind = KindDesktop
			pending.Set(ModeStick)
			c.Flags.Clear(FlagFocus)
			return
		case "_NET_WM_WINDOW_TYPE_DOCK":
			c.Kind = KindDock
			pending.Set(ModeStick | ModeFixed)
			return
		case "_NET_WM_WINDOW_TYPE_TOOLBAR":
			c.Kind = KindToolbar
			return
		case "_NET_WM_WINDOW_TYPE_DIALOG":
			c.Kind = KindDialog
			pending.Set(ModeFloat)
			return
		case "_NET_WM_WINDOW_TYPE_SPLASH":
			c.Kind = KindSplash
			pending.Set(ModeFloat | ModeCenter)
			return
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			c.Kind = KindNormal
			return
		}
	}
	c.Kind = KindNormal
}

// initGravities seeds the per-view gravity from the first matching
// tag's gravity, falling back to the configured default.
func (m *Manager) initGravities(c *Client) {
	def := m.defaultGravity
	for _, tag := range m.tags {
		if c.Tags.HasBit(tag.Index) && tag.Gravity != "" {
			if id, ok := m.gravityID(tag.Gravity); ok {
				def = id
				break
			}
		}
	}
	c.Gravities = make([]int, len(m.views))
	for i := range c.Gravities {
		c.Gravities[i] = def
	}
}

// borderFor determines the border width a client gets. Desktop and dock
// windows and borderless or fullscreen clients have none.
func (m *Manager) borderFor(c *Client, modes Mode) int {
	if c.Kind == KindDesktop || c.Kind == KindDock {
		return 0
	}
	if (c.Modes | modes).Has(ModeBorderless | ModeFull) {
		return 0
	}
	return m.cfg.BorderWidth
}

// unmanage forgets a client. When the window is still alive (view
// switch is not unmanage; this is destroy or withdraw) its border is
// left for the next manager.
func (m *Manager) unmanage(c *Client) {
	if c.Flags.Has(FlagDead) {
		return
	}
	c.Flags.Set(FlagDead)

	m.gw.ForgetClient(c.Win)
	delete(m.byWin, c.Win)
	for i, other := range m.clients {
		if other == c {
			m.clients = append(m.clients[:i], m.clients[i+1:]...)
			break
		}
	}
	m.history.Remove(c.Win)

	if m.focused == c.Win {
		m.focused = 0
		if next := m.findNext(c.Screen, c, true); next != nil {
			m.focus(next, false)
		} else {
			m.gw.FocusRoot()
			m.gw.SetActiveWindow(0)
		}
	}

	m.publishClients()
	m.logger.Info("unmanaged client", "win", c.Win, "class", c.Meta.Class)
}

// close asks the client to quit via WM_DELETE_WINDOW when it
// participates, and kills the connection otherwise.
func (m *Manager) close(c *Client) {
	if c.Flags.Has(FlagClose) {
		if err := m.gw.SendDelete(c.Win); err != nil {
			m.logger.Warn("delete request failed, killing", "win", c.Win, "err", err)
			m.gw.KillWindow(c.Win)
		}
		return
	}
	m.gw.KillWindow(c.Win)
}

// moveResize issues the client's geometry to the server. Margin and
// border are subtracted on a copy at issue time so repeated arranges
// never shrink the stored geometry.
func (m *Manager) moveResize(c *Client) {
	geom := c.Geom

	if c.Modes.Has(ModeFull) || c.Kind == KindDesktop || c.Kind == KindDock {
		m.gw.MoveResize(c.Win, geom)
		return
	}

	if !c.Modes.Has(ModeFloat) {
		margin := m.cfg.Margin
		geom.X += margin.Left
		geom.Y += margin.Top
		geom.Width -= margin.Horizontal()
		geom.Height -= margin.Vertical()
	}

	border := m.borderFor(c, 0)
	geom.Width -= 2 * border
	geom.Height -= 2 * border
	if geom.Width < 1 {
		geom.Width = 1
	}
	if geom.Height < 1 {
		geom.Height = 1
	}

	if c.Modes.Has(ModeResize) || c.Modes.Has(ModeFloat) {
		bounds := m.screens[c.Screen].Base
		if c.Modes.Has(ModeZaphod) {
			bounds = totalGeometry(m.screens)
		}
		geom = geometry.Constrain(geom, c.Hints, bounds, 2*border, false, false)
	}

	m.gw.MoveResize(c.Win, geom)
}

// snap pins a floating client to nearby screen edges.
func (m *Manager) snap(c *Client) {
	if !c.Modes.Has(ModeFloat) || m.cfg.Snap <= 0 {
		return
	}
	c.Geom = geometry.Snap(c.Geom, m.screens[c.Screen].Base, m.cfg.BorderWidth, m.cfg.Snap)
	c.FloatGeom = c.Geom
}

// resizeToBounds pulls a client's geometry into bounds, optionally
// constraining it against its size hints first. Non-fixed clients
// shrink to fit; a client sticking out on an axis re-centers there
// when floating and pins to the bounds origin otherwise. Fullscreen
// and dock windows manage their own geometry.
func (m *Manager) resizeToBounds(c *Client, bounds geometry.Rect, useHints bool) {
	if c.Modes.Has(ModeFull) || c.Kind == KindDock {
		return
	}
	geom := c.Geom
	if useHints {
		geom = geometry.Constrain(geom, c.Hints, bounds, 0, false, false)
	}

	if !c.Modes.Has(ModeFixed) {
		if geom.Width > bounds.Width {
			geom.Width = bounds.Width
		}
		if geom.Height > bounds.Height {
			geom.Height = bounds.Height
		}
	}

	maxX := bounds.X + bounds.Width
	maxY := bounds.Y + bounds.Height
	if geom.X < bounds.X || geom.X > maxX || geom.X+geom.Width > maxX {
		if c.Modes.Has(ModeFloat) {
			geom.X = bounds.X + (bounds.Width-geom.Width)/2
		} else {
			geom.X = bounds.X
		}
	}
	if geom.Y < bounds.Y || geom.Y > maxY || geom.Y+geom.Height > maxY {
		if c.Modes.Has(ModeFloat) {
			geom.Y = bounds.Y + (bounds.Height-geom.Height)/2
		} else {
			geom.Y = bounds.Y
		}
	}
	c.Geom = geom
}
