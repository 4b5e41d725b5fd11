package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gravwm/gravwm/internal/geometry"
)

// MoveResize applies geometry to a window.
func (c *Connection) MoveResize(win xproto.Window, geom geometry.Rect) {
	xwindow.New(c.XUtil, win).MoveResize(geom.X, geom.Y, geom.Width, geom.Height)
}

// SetBorderWidth sets the server-side border of a window.
func (c *Connection) SetBorderWidth(win xproto.Window, width int) {
	xproto.ConfigureWindow(
		c.XUtil.Conn(),
		win,
		xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(width)},
	)
}

// MapWindow makes a window viewable.
func (c *Connection) MapWindow(win xproto.Window) {
	xwindow.New(c.XUtil, win).Map()
}

// UnmapWindow hides a window.
func (c *Connection) UnmapWindow(win xproto.Window) {
	xwindow.New(c.XUtil, win).Unmap()
}

// Raise puts a window on top of the stacking order.
func (c *Connection) Raise(win xproto.Window) {
	xwindow.New(c.XUtil, win).Stack(xproto.StackModeAbove)
}

// Lower puts a window at the bottom of the stacking order.
func (c *Connection) Lower(win xproto.Window) {
	xwindow.New(c.XUtil, win).Stack(xproto.StackModeBelow)
}

// StackAbove places win directly above sibling.
func (c *Connection) StackAbove(win, sibling xproto.Window) {
	xwindow.New(c.XUtil, win).StackSibling(sibling, xproto.StackModeAbove)
}

// KillWindow forcibly disconnects a client.
func (c *Connection) KillWindow(win xproto.Window) {
	xproto.KillClient(c.XUtil.Conn(), uint32(win))
}

// SelectClientEvents subscribes to the per-client events the manager
// dispatches on: property changes and pointer entry.
func (c *Connection) SelectClientEvents(win xproto.Window) error {
	return xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		win,
		xproto.CwEventMask,
		[]uint32{
			xproto.EventMaskPropertyChange |
				xproto.EventMaskEnterWindow |
				xproto.EventMaskFocusChange |
				xproto.EventMaskStructureNotify,
		},
	).Check()
}

// SetInputFocus gives keyboard focus to a window directly.
func (c *Connection) SetInputFocus(win xproto.Window) {
	xproto.SetInputFocus(
		c.XUtil.Conn(),
		xproto.InputFocusPointerRoot,
		win,
		xproto.TimeCurrentTime,
	)
}

// FocusRoot drops keyboard focus back to the root window.
func (c *Connection) FocusRoot() {
	xproto.SetInputFocus(
		c.XUtil.Conn(),
		xproto.InputFocusPointerRoot,
		c.Root,
		xproto.TimeCurrentTime,
	)
}

// SendTakeFocus asks a WM_TAKE_FOCUS participant to focus itself.
func (c *Connection) SendTakeFocus(win xproto.Window) error {
	return c.sendProtocolMessage(win, "WM_TAKE_FOCUS")
}

// SendDelete asks a WM_DELETE_WINDOW participant to close gracefully.
func (c *Connection) SendDelete(win xproto.Window) error {
	return c.sendProtocolMessage(win, "WM_DELETE_WINDOW")
}

// sendProtocolMessage builds the WM_PROTOCOLS client message manually;
// the xgbutil helper layers do not cover this exchange.
func (c *Connection) sendProtocolMessage(win xproto.Window, protocol string) error {
	protocolsAtom, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	protoAtom, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len(protocol)), protocol).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", protocol, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocolsAtom.Atom,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(protoAtom.Atom), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// WarpPointer moves the pointer to a root-relative position.
func (c *Connection) WarpPointer(x, y int) {
	xproto.WarpPointer(
		c.XUtil.Conn(),
		xproto.WindowNone,
		c.Root,
		0, 0, 0, 0,
		int16(x), int16(y),
	)
}

// PointerPosition reports the root-relative pointer location.
func (c *Connection) PointerPosition() (x, y int, err error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// OverrideRedirect reports whether a window manages its own placement
// and must be left alone.
func (c *Connection) OverrideRedirect(win xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return false
	}
	return attrs.OverrideRedirect
}

// ExistingWindows lists the mapped top-level children of the root, for
// adoption at startup.
func (c *Connection) ExistingWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}

	var wins []xproto.Window
	for _, child := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), child).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		wins = append(wins, child)
	}
	return wins, nil
}

// ConfigureNotifySynthetic tells a client its final geometry after a
// configure request was granted with different values.
func (c *Connection) ConfigureNotifySynthetic(win xproto.Window, geom geometry.Rect, border int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     xproto.WindowNone,
		X:                int16(geom.X),
		Y:                int16(geom.Y),
		Width:            uint16(geom.Width),
		Height:           uint16(geom.Height),
		BorderWidth:      uint16(border),
		OverrideRedirect: false,
	}
	xproto.SendEvent(
		c.XUtil.Conn(),
		false,
		win,
		xproto.EventMaskStructureNotify,
		string(ev.Bytes()),
	)
}
