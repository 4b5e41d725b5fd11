// Package x11 wraps the X server connection for the window manager:
// claiming the redirect role, output discovery, window properties,
// configure/map/stack requests, input grabs, and the event loop.
package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil      *xgbutil.XUtil
	Root       xproto.Window
	supportWin *xwindow.Window
	handler    Handler
}

// NewConnection connects to the display ($DISPLAY when empty) and
// initializes the keybind and mousebind modules.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// ClaimWMRole selects SubstructureRedirect on the root window. Only one
// client per screen may hold it; failure means another window manager is
// running and is fatal to the caller. On success a supporting window is
// created and published via _NET_SUPPORTING_WM_CHECK.
func (c *Connection) ClaimWMRole(name string) error {
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{
			xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify |
				xproto.EventMaskPropertyChange |
				xproto.EventMaskStructureNotify,
		},
	).Check()
	if err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}

	support, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return fmt.Errorf("failed to create supporting window: %w", err)
	}
	c.supportWin = support

	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, support.Id); err != nil {
		return fmt.Errorf("failed to set supporting wm check on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, support.Id, support.Id); err != nil {
		return fmt.Errorf("failed to set supporting wm check: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, support.Id, name); err != nil {
		return fmt.Errorf("failed to set wm name: %w", err)
	}
	if err := icccm.WmClassSet(c.XUtil, support.Id, &icccm.WmClass{
		Instance: name,
		Class:    name,
	}); err != nil {
		return fmt.Errorf("failed to set wm class: %w", err)
	}

	ewmh.SupportedSet(c.XUtil, supportedAtoms)
	return nil
}

var supportedAtoms = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_CLOSE_WINDOW",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_GEOMETRY",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_VIEWPORT",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_DESKTOP",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WORKAREA",
}

// SupportingWindow returns the window published via
// _NET_SUPPORTING_WM_CHECK, or 0 before ClaimWMRole.
func (c *Connection) SupportingWindow() xproto.Window {
	if c.supportWin == nil {
		return 0
	}
	return c.supportWin.Id
}

// Sync forces a round trip, draining any buffered requests.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close destroys the supporting window and disconnects.
func (c *Connection) Close() {
	if c.supportWin != nil {
		c.supportWin.Destroy()
		c.supportWin = nil
	}
	c.XUtil.Conn().Close()
}

// DisplayName reports the display string in use, for logging.
func (c *Connection) DisplayName() string {
	if d := os.Getenv("DISPLAY"); d != "" {
		return d
	}
	return ":0"
}
