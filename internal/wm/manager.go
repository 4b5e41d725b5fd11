package wm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/gravity"
	"github.com/gravwm/gravwm/internal/tagging"
)

// Manager owns all window manager state and drives the gateway.
type Manager struct {
	cfg    *config.Config
	gw     Gateway
	logger *log.Logger

	screens   []Screen
	tags      []Tag
	views     []View
	gravities []gravity.Gravity

	defaultGravity int

	clients []*Client
	byWin   map[xproto.Window]*Client
	grabs   []Grab
	history *FocusHistory
	focused xproto.Window
	urgent  tagging.Set

	drag dragState
}

// dragState tracks an in-progress pointer move or resize.
type dragState struct {
	client *Client
	resize bool
	startX int
	startY int
	origin geometry.Rect
	active bool
}

// New builds a manager from config and a connected gateway.
func New(cfg *config.Config, gw Gateway, logger *log.Logger) (*Manager, error) {
	m := &Manager{
		cfg:     cfg,
		gw:      gw,
		logger:  logger,
		byWin:   make(map[xproto.Window]*Client),
		history: &FocusHistory{},
	}

	m.gravities = make([]gravity.Gravity, 0, len(cfg.Gravities))
	for _, gc := range cfg.Gravities {
		m.gravities = append(m.gravities, gravity.New(
			gc.Name, gc.X, gc.Y, gc.Width, gc.Height, parseOrientation(gc.Tile)))
	}
	if id, ok := m.gravityID(cfg.DefaultGravity); ok {
		m.defaultGravity = id
	}

	m.tags = buildTags(cfg.Tags, logger)
	if len(m.tags) == 0 {
		return nil, fmt.Errorf("no usable tags configured")
	}
	m.views = buildViews(cfg.Views, m.tags, logger)
	if len(m.views) == 0 {
		return nil, fmt.Errorf("no views configured")
	}

	outputs, err := gw.Outputs()
	if err != nil {
		return nil, fmt.Errorf("failed to discover outputs: %w", err)
	}
	m.screens = buildScreens(outputs, cfg, len(m.views))
	logger.Info("discovered screens", "count", len(m.screens))

	m.bindGrabs()
	m.publishDesktops()

	return m, nil
}

func parseOrientation(tile string) gravity.Orientation {
	switch tile {
	case "horizontal":
		return gravity.Horizontal
	case "vertical":
		return gravity.Vertical
	}
	return gravity.None
}

// gravityID resolves a gravity name to its index.
func (m *Manager) gravityID(name string) (int, bool) {
	for i, g := range m.gravities {
		if g.Name == name {
			return i, true
		}
	}
	return 0, false
}

// bindGrabs parses and registers every configured chord. A chord that
// fails to parse or grab is logged and skipped; the rest stay live.
func (m *Manager) bindGrabs() {
	for spec, action := range m.cfg.Grabs {
		grab, err := ParseGrab(spec, action, m.gw.KeycodeForName)
		if err != nil {
			m.logger.Warn("skipping grab", "err", err)
			continue
		}

		if grab.IsButton() {
			err = m.gw.GrabButton(grab.Mods, grab.Button)
		} else {
			err = m.gw.GrabKey(grab.Mods, grab.Keycode)
		}
		if err != nil {
			m.logger.Warn("failed to grab chord", "spec", spec, "err", err)
			continue
		}
		m.grabs = append(m.grabs, grab)
	}
	m.logger.Debug("bound grabs", "count", len(m.grabs))
}

// Adopt takes over windows that were mapped before the manager
// started, then runs the first arrange.
func (m *Manager) Adopt() {
	wins, err := m.gw.ExistingWindows()
	if err != nil {
		m.logger.Warn("failed to list existing windows", "err", err)
	}
	for _, win := range wins {
		m.manage(win, true)
	}
	m.arrange()

	if next := m.findNext(m.currentScreen(), nil, true); next != nil {
		m.focus(next, false)
	}
}

// Shutdown returns the session to a managerless state: grabs released,
// every client mapped and normal, root properties cleared.
func (m *Manager) Shutdown() {
	m.gw.UngrabAll()
	for _, c := range m.clients {
		m.gw.ForgetClient(c.Win)
		m.gw.SetBorderWidth(c.Win, 0)
		m.gw.MapWindow(c.Win)
		m.gw.SetIcccmState(c.Win, icccmStateNormal)
	}
	m.gw.FocusRoot()
	m.gw.ClearRootProperties()
	m.gw.Quit()
	m.logger.Info("shut down", "clients", len(m.clients))
}

// UpdateScreens rebuilds the screen list after an output change.
// Floating clients keep their offset relative to their screen origin;
// everything else rearranges.
func (m *Manager) UpdateScreens() {
	outputs, err := m.gw.Outputs()
	if err != nil {
		m.logger.Warn("failed to rediscover outputs", "err", err)
		return
	}

	old := m.screens
	m.screens = buildScreens(outputs, m.cfg, len(m.views))
	// Keep the views screens were showing where indices still exist.
	for i := range m.screens {
		if i < len(old) {
			m.screens[i].ViewIdx = old[i].ViewIdx
		}
	}

	for _, c := range m.clients {
		oldScreen := c.Screen
		if c.Screen >= len(m.screens) {
			c.Screen = 0
		}
		if c.Modes.Has(ModeFloat) && oldScreen < len(old) {
			offX := c.FloatGeom.X - old[oldScreen].Geom.X
			offY := c.FloatGeom.Y - old[oldScreen].Geom.Y
			c.FloatGeom.X = m.screens[c.Screen].Geom.X + offX
			c.FloatGeom.Y = m.screens[c.Screen].Geom.Y + offY
		}
		c.lastScreen = c.Screen
		c.Flags.Set(FlagArrange)
	}

	m.publishDesktops()
	m.arrange()
	m.logger.Info("screens updated", "count", len(m.screens))
}

// runAction executes a bound action against the focused client where
// one is needed.
func (m *Manager) runAction(action string) {
	c := m.byWin[m.focused]

	switch {
	case strings.HasPrefix(action, "view-"):
		if n, err := strconv.Atoi(strings.TrimPrefix(action, "view-")); err == nil {
			m.switchView(m.currentScreen(), n-1)
		}
	case strings.HasPrefix(action, "gravity-"):
		if c == nil {
			return
		}
		name := strings.TrimPrefix(action, "gravity-")
		id, ok := m.gravityID(name)
		if !ok {
			m.logger.Warn("unknown gravity in action", "action", action)
			return
		}
		m.clearModes(c, ModeFloat|ModeFull)
		c.SetGravityFor(m.screens[c.Screen].ViewIdx, id)
		c.Flags.Set(FlagArrange)
		m.arrange()
	case action == "focus-next":
		m.focusNext()
	case action == "client-close":
		if c != nil {
			m.close(c)
		}
	case action == "client-kill":
		if c != nil {
			m.gw.KillWindow(c.Win)
		}
	case action == "toggle-float":
		if c != nil {
			m.toggleMode(c, ModeFloat)
		}
	case action == "toggle-full":
		if c != nil {
			m.toggleMode(c, ModeFull)
		}
	case action == "toggle-stick":
		if c != nil {
			m.toggleMode(c, ModeStick)
		}
	case action == "toggle-zaphod":
		if c != nil {
			m.toggleMode(c, ModeZaphod)
		}
	case action == "toggle-center":
		if c != nil {
			m.toggleMode(c, ModeCenter)
		}
	case strings.HasPrefix(action, "move-"):
		m.stepMove(c, strings.TrimPrefix(action, "move-"))
	case strings.HasPrefix(action, "resize-"):
		m.stepResize(c, strings.TrimPrefix(action, "resize-"))
	case action == "quit":
		m.Shutdown()
	default:
		m.logger.Warn("unknown action", "action", action)
	}
}

// stepMove nudges a floating client by the configured step.
func (m *Manager) stepMove(c *Client, dir string) {
	if c == nil || !c.Modes.Has(ModeFloat) {
		return
	}
	switch dir {
	case "left":
		c.Geom.X -= m.cfg.Step
	case "right":
		c.Geom.X += m.cfg.Step
	case "up":
		c.Geom.Y -= m.cfg.Step
	case "down":
		c.Geom.Y += m.cfg.Step
	default:
		return
	}
	c.FloatGeom = c.Geom
	m.snap(c)
	m.moveResize(c)
}

// stepResize grows or shrinks a floating client by the configured
// step, clamped by its size hints.
func (m *Manager) stepResize(c *Client, dir string) {
	if c == nil || !c.Modes.Has(ModeFloat) {
		return
	}
	switch dir {
	case "grow-x":
		c.Geom.Width += m.cfg.Step
	case "shrink-x":
		c.Geom.Width -= m.cfg.Step
	case "grow-y":
		c.Geom.Height += m.cfg.Step
	case "shrink-y":
		c.Geom.Height -= m.cfg.Step
	default:
		return
	}
	if c.Geom.Width < 1 {
		c.Geom.Width = 1
	}
	if c.Geom.Height < 1 {
		c.Geom.Height = 1
	}
	c.FloatGeom = c.Geom
	m.moveResize(c)
}
