package x11

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Handler receives decoded X events. The window manager implements it;
// this package owns the loop and the decoding.
type Handler interface {
	HandleMapRequest(win xproto.Window)
	HandleConfigureRequest(ev xproto.ConfigureRequestEvent)
	HandleUnmapNotify(win xproto.Window)
	HandleDestroyNotify(win xproto.Window)
	HandlePropertyChange(win xproto.Window, prop string)
	HandleClientMessage(win xproto.Window, typ string, data []uint32)
	HandleKeyPress(mods uint16, keycode xproto.Keycode)
	HandleButtonPress(win xproto.Window, mods uint16, button xproto.Button, rootX, rootY int)
	HandleButtonRelease(win xproto.Window, rootX, rootY int)
	HandleMotion(rootX, rootY int)
	HandleEnterNotify(win xproto.Window)
	HandleScreenChange()
}

// Run connects root-level callbacks and blocks in the event loop until
// Quit is called.
func (c *Connection) Run(handler Handler) {
	c.handler = handler

	xevent.MapRequestFun(func(xu *xgbutil.XUtil, ev xevent.MapRequestEvent) {
		handler.HandleMapRequest(ev.Window)
	}).Connect(c.XUtil, c.Root)

	xevent.ConfigureRequestFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
		handler.HandleConfigureRequest(*ev.ConfigureRequestEvent)
	}).Connect(c.XUtil, c.Root)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		var data []uint32
		if ev.Format == 32 {
			data = ev.Data.Data32
		}
		handler.HandleClientMessage(ev.Window, c.AtomName(ev.Type), data)
	}).Connect(c.XUtil, c.Root)

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		handler.HandleKeyPress(ev.State&^c.IgnoredMods(), ev.Detail)
	}).Connect(c.XUtil, c.Root)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		handler.HandleButtonPress(
			ev.Child,
			ev.State&^c.IgnoredMods(),
			ev.Detail,
			int(ev.RootX), int(ev.RootY),
		)
	}).Connect(c.XUtil, c.Root)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		handler.HandleButtonRelease(ev.Child, int(ev.RootX), int(ev.RootY))
	}).Connect(c.XUtil, c.Root)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		handler.HandleMotion(int(ev.RootX), int(ev.RootY))
	}).Connect(c.XUtil, c.Root)

	// RandR events have no typed xevent callback, so intercept them
	// with a hook before normal dispatch.
	xevent.HookFun(func(xu *xgbutil.XUtil, ev interface{}) bool {
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			handler.HandleScreenChange()
			return false
		}
		return true
	}).Connect(c.XUtil)

	xevent.Main(c.XUtil)
}

// ListenClient connects the per-window callbacks for a managed client.
// xevent routes these events by their own window, not the root.
func (c *Connection) ListenClient(win xproto.Window) {
	handler := c.handler
	if handler == nil {
		return
	}

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		handler.HandleUnmapNotify(ev.Window)
	}).Connect(c.XUtil, win)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		handler.HandleDestroyNotify(ev.Window)
	}).Connect(c.XUtil, win)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		handler.HandlePropertyChange(ev.Window, c.AtomName(ev.Atom))
	}).Connect(c.XUtil, win)

	xevent.EnterNotifyFun(func(xu *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		handler.HandleEnterNotify(ev.Event)
	}).Connect(c.XUtil, win)
}

// ForgetClient drops the callbacks registered by ListenClient once a
// window is unmanaged.
func (c *Connection) ForgetClient(win xproto.Window) {
	xevent.Detach(c.XUtil, win)
}

// Quit stops the event loop started by Run.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}
