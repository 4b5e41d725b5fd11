package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/x11"
)

// Gateway is the X server surface the manager drives. *x11.Connection
// implements it; tests substitute a fake.
type Gateway interface {
	// Discovery.
	Outputs() ([]x11.Output, error)
	ExistingWindows() ([]xproto.Window, error)

	// Per-window property reads.
	Meta(win xproto.Window) x11.WindowMeta
	NormalHints(win xproto.Window) geometry.Hints
	Hints(win xproto.Window) x11.WindowHints
	IsWithdrawn(win xproto.Window) bool
	ReadProtocols(win xproto.Window) x11.Protocols
	WindowTypes(win xproto.Window) []string
	NetWmStates(win xproto.Window) []string
	TransientFor(win xproto.Window) (xproto.Window, bool)
	Geometry(win xproto.Window) (geometry.Rect, error)
	OverrideRedirect(win xproto.Window) bool
	AtomName(atom xproto.Atom) string

	// Window control.
	MoveResize(win xproto.Window, geom geometry.Rect)
	SetBorderWidth(win xproto.Window, width int)
	MapWindow(win xproto.Window)
	UnmapWindow(win xproto.Window)
	Raise(win xproto.Window)
	Lower(win xproto.Window)
	StackAbove(win, sibling xproto.Window)
	KillWindow(win xproto.Window)
	SendDelete(win xproto.Window) error
	SendTakeFocus(win xproto.Window) error
	SetInputFocus(win xproto.Window)
	FocusRoot()
	WarpPointer(x, y int)
	PointerPosition() (x, y int, err error)
	SelectClientEvents(win xproto.Window) error
	ListenClient(win xproto.Window)
	ForgetClient(win xproto.Window)
	ConfigureNotifySynthetic(win xproto.Window, geom geometry.Rect, border int)

	// Root property publication.
	SetClientList(wins []xproto.Window)
	SetClientListStacking(wins []xproto.Window)
	SetDesktops(names []string, current int)
	SetDesktopGeometry(width, height int)
	SetViewports(count int)
	SetWorkareas(areas []geometry.Rect)
	SetActiveWindow(win xproto.Window)
	SetWindowDesktop(win xproto.Window, desktop uint)
	SetWindowStates(win xproto.Window, states []string)
	SetIcccmState(win xproto.Window, state uint)
	ClearRootProperties()

	// Input.
	KeycodeForName(name string) (xproto.Keycode, bool)
	GrabKey(mods uint16, keycode xproto.Keycode) error
	GrabButton(mods uint16, button xproto.Button) error
	UngrabAll()

	Quit()
}
