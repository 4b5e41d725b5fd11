package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/gravwm/gravwm/internal/geometry"
)

// WindowMeta carries the identity strings a window advertises, matched
// against tag patterns.
type WindowMeta struct {
	Instance string
	Class    string
	Name     string
	Role     string
}

// WindowHints is the relevant subset of WM_HINTS.
type WindowHints struct {
	Urgent       bool
	AcceptsInput bool
	StartIconic  bool
	Group        xproto.Window
}

// Protocols reports which WM_PROTOCOLS a window participates in.
type Protocols struct {
	TakeFocus    bool
	DeleteWindow bool
}

// Meta reads class, instance, name and role. Missing properties leave
// their field empty.
func (c *Connection) Meta(win xproto.Window) WindowMeta {
	var meta WindowMeta
	if class, err := icccm.WmClassGet(c.XUtil, win); err == nil {
		meta.Instance = class.Instance
		meta.Class = class.Class
	}
	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
		meta.Name = name
	} else if name, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		meta.Name = name
	}
	if role, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, win, "WM_WINDOW_ROLE")); err == nil {
		meta.Role = role
	}
	return meta
}

// NormalHints reads WM_NORMAL_HINTS into pixel bounds. Minimums are
// floored at 1 and absent maxima come back as geometry.Unbounded.
func (c *Connection) NormalHints(win xproto.Window) geometry.Hints {
	hints := geometry.Hints{
		MinWidth:  1,
		MinHeight: 1,
		MaxWidth:  geometry.Unbounded,
		MaxHeight: geometry.Unbounded,
	}

	nh, err := icccm.WmNormalHintsGet(c.XUtil, win)
	if err != nil {
		return hints
	}

	if nh.Flags&icccm.SizeHintPMinSize > 0 {
		if nh.MinWidth > 1 {
			hints.MinWidth = int(nh.MinWidth)
		}
		if nh.MinHeight > 1 {
			hints.MinHeight = int(nh.MinHeight)
		}
	}
	if nh.Flags&icccm.SizeHintPMaxSize > 0 {
		hints.MaxWidth = int(nh.MaxWidth)
		hints.MaxHeight = int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc > 0 {
		hints.WidthInc = int(nh.WidthInc)
		hints.HeightInc = int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPBaseSize > 0 {
		hints.BaseWidth = int(nh.BaseWidth)
		hints.BaseHeight = int(nh.BaseHeight)
	}
	if nh.Flags&(icccm.SizeHintUSPosition|icccm.SizeHintPPosition) > 0 {
		hints.HasPosition = true
		hints.PosX = int(nh.X)
		hints.PosY = int(nh.Y)
	}
	if nh.Flags&(icccm.SizeHintUSSize|icccm.SizeHintPSize) > 0 {
		hints.HasSize = true
		hints.ReqWidth = int(nh.Width)
		hints.ReqHeight = int(nh.Height)
	}
	if nh.Flags&icccm.SizeHintPAspect > 0 {
		if nh.MinAspectDen > 0 {
			hints.MinRatio = float64(nh.MinAspectNum) / float64(nh.MinAspectDen)
		}
		if nh.MaxAspectDen > 0 {
			hints.MaxRatio = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
		}
	}
	return hints
}

// Hints reads WM_HINTS. A window with no hints accepts input.
func (c *Connection) Hints(win xproto.Window) WindowHints {
	out := WindowHints{AcceptsInput: true}

	wh, err := icccm.WmHintsGet(c.XUtil, win)
	if err != nil {
		return out
	}

	if wh.Flags&icccm.HintInput > 0 {
		out.AcceptsInput = wh.Input > 0
	}
	out.Urgent = wh.Flags&icccm.HintUrgency > 0
	if wh.Flags&icccm.HintState > 0 {
		out.StartIconic = wh.InitialState == icccm.StateIconic
	}
	if wh.Flags&icccm.HintWindowGroup > 0 {
		out.Group = wh.WindowGroup
	}
	return out
}

// IsWithdrawn checks WM_STATE for WithdrawnState. Windows found in this
// state during adoption are skipped.
func (c *Connection) IsWithdrawn(win xproto.Window) bool {
	state, err := icccm.WmStateGet(c.XUtil, win)
	if err != nil {
		return false
	}
	return state.State == icccm.StateWithdrawn
}

// ReadProtocols reads WM_PROTOCOLS.
func (c *Connection) ReadProtocols(win xproto.Window) Protocols {
	var p Protocols
	protos, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err != nil {
		return p
	}
	for _, proto := range protos {
		switch proto {
		case "WM_TAKE_FOCUS":
			p.TakeFocus = true
		case "WM_DELETE_WINDOW":
			p.DeleteWindow = true
		}
	}
	return p
}

// WindowTypes reads _NET_WM_WINDOW_TYPE atom names, most preferred
// first. A typeless window is treated as normal by the caller.
func (c *Connection) WindowTypes(win xproto.Window) []string {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return nil
	}
	return types
}

// NetWmStates reads the initial _NET_WM_STATE atom names.
func (c *Connection) NetWmStates(win xproto.Window) []string {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return nil
	}
	return states
}

// TransientFor reads WM_TRANSIENT_FOR.
func (c *Connection) TransientFor(win xproto.Window) (xproto.Window, bool) {
	leader, err := icccm.WmTransientForGet(c.XUtil, win)
	if err != nil || leader == 0 {
		return 0, false
	}
	return leader, true
}

// Geometry reads the current server-side geometry of a window.
func (c *Connection) Geometry(win xproto.Window) (geometry.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{
		X:      int(geom.X),
		Y:      int(geom.Y),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// AtomName resolves an atom id for event dispatch.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}

// Publication of root window properties.

func (c *Connection) SetClientList(wins []xproto.Window) {
	ewmh.ClientListSet(c.XUtil, wins)
}

func (c *Connection) SetClientListStacking(wins []xproto.Window) {
	ewmh.ClientListStackingSet(c.XUtil, wins)
}

func (c *Connection) SetDesktops(names []string, current int) {
	ewmh.NumberOfDesktopsSet(c.XUtil, uint(len(names)))
	ewmh.DesktopNamesSet(c.XUtil, names)
	ewmh.CurrentDesktopSet(c.XUtil, uint(current))
}

func (c *Connection) SetDesktopGeometry(width, height int) {
	ewmh.DesktopGeometrySet(c.XUtil, &ewmh.DesktopGeometry{Width: width, Height: height})
}

func (c *Connection) SetViewports(count int) {
	heads := make([]ewmh.DesktopViewport, count)
	ewmh.DesktopViewportSet(c.XUtil, heads)
}

func (c *Connection) SetWorkareas(areas []geometry.Rect) {
	out := make([]ewmh.Workarea, len(areas))
	for i, a := range areas {
		out[i] = ewmh.Workarea{X: a.X, Y: a.Y, Width: uint(a.Width), Height: uint(a.Height)}
	}
	ewmh.WorkareaSet(c.XUtil, out)
}

func (c *Connection) SetActiveWindow(win xproto.Window) {
	ewmh.ActiveWindowSet(c.XUtil, win)
}

func (c *Connection) SetWindowDesktop(win xproto.Window, desktop uint) {
	ewmh.WmDesktopSet(c.XUtil, win, desktop)
}

func (c *Connection) SetWindowStates(win xproto.Window, states []string) {
	ewmh.WmStateSet(c.XUtil, win, states)
}

// SetIcccmState publishes WM_STATE (NormalState or IconicState).
func (c *Connection) SetIcccmState(win xproto.Window, state uint) {
	icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: state, Icon: 0})
}

// ClearRootProperties removes the root properties published by the
// manager. Called on shutdown so the next manager starts clean.
func (c *Connection) ClearRootProperties() {
	for _, name := range []string{
		"_NET_ACTIVE_WINDOW",
		"_NET_CLIENT_LIST",
		"_NET_CLIENT_LIST_STACKING",
		"_NET_CURRENT_DESKTOP",
		"_NET_DESKTOP_GEOMETRY",
		"_NET_DESKTOP_NAMES",
		"_NET_DESKTOP_VIEWPORT",
		"_NET_NUMBER_OF_DESKTOPS",
		"_NET_SUPPORTED",
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_WORKAREA",
	} {
		if atom, err := xprop.Atm(c.XUtil, name); err == nil {
			xproto.DeleteProperty(c.XUtil.Conn(), c.Root, atom)
		}
	}
}
