package wm

import (
	"io"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/x11"
)

// fakeWindow carries the properties the fake server reports for one
// window.
type fakeWindow struct {
	meta      x11.WindowMeta
	hints     geometry.Hints
	wmHints   x11.WindowHints
	protocols x11.Protocols
	types     []string
	states    []string
	transient xproto.Window
	geom      geometry.Rect
	withdrawn bool
	override  bool
}

// fakeGateway implements Gateway in memory and records what the
// manager asked for.
type fakeGateway struct {
	windows  map[xproto.Window]*fakeWindow
	outputs  []x11.Output
	keycodes map[string]xproto.Keycode
	atoms    map[xproto.Atom]string

	geoms    map[xproto.Window]geometry.Rect
	borders  map[xproto.Window]int
	mapped   map[xproto.Window]bool
	focused  xproto.Window
	active   xproto.Window
	killed   []xproto.Window
	deleted  []xproto.Window
	netState map[xproto.Window][]string
	pointerX int
	pointerY int
	quit     bool
}

func newFakeGateway(outputs ...x11.Output) *fakeGateway {
	if len(outputs) == 0 {
		outputs = []x11.Output{{ID: 0, Name: "default", Geom: geometry.Rect{Width: 800, Height: 600}}}
	}
	return &fakeGateway{
		windows:  make(map[xproto.Window]*fakeWindow),
		outputs:  outputs,
		keycodes: map[string]xproto.Keycode{},
		atoms:    map[xproto.Atom]string{},
		geoms:    make(map[xproto.Window]geometry.Rect),
		borders:  make(map[xproto.Window]int),
		mapped:   make(map[xproto.Window]bool),
		netState: make(map[xproto.Window][]string),
	}
}

func (f *fakeGateway) addWindow(win xproto.Window, w *fakeWindow) {
	if w.geom == (geometry.Rect{}) {
		w.geom = geometry.Rect{X: 10, Y: 10, Width: 200, Height: 150}
	}
	// Windows accept input unless the test says otherwise.
	if !w.wmHints.AcceptsInput && !w.wmHints.Urgent && w.wmHints.Group == 0 {
		w.wmHints.AcceptsInput = true
	}
	if w.hints.MinWidth == 0 {
		w.hints.MinWidth = 1
	}
	if w.hints.MinHeight == 0 {
		w.hints.MinHeight = 1
	}
	if w.hints.MaxWidth == 0 {
		w.hints.MaxWidth = geometry.Unbounded
	}
	if w.hints.MaxHeight == 0 {
		w.hints.MaxHeight = geometry.Unbounded
	}
	f.windows[win] = w
}

func (f *fakeGateway) win(w xproto.Window) *fakeWindow {
	if fw, ok := f.windows[w]; ok {
		return fw
	}
	return &fakeWindow{wmHints: x11.WindowHints{AcceptsInput: true}}
}

func (f *fakeGateway) Outputs() ([]x11.Output, error) { return f.outputs, nil }

func (f *fakeGateway) ExistingWindows() ([]xproto.Window, error) {
	var wins []xproto.Window
	for w := range f.windows {
		wins = append(wins, w)
	}
	return wins, nil
}

func (f *fakeGateway) Meta(w xproto.Window) x11.WindowMeta { return f.win(w).meta }
func (f *fakeGateway) NormalHints(w xproto.Window) geometry.Hints { return f.win(w).hints }
func (f *fakeGateway) Hints(w xproto.Window) x11.WindowHints { return f.win(w).wmHints }
func (f *fakeGateway) IsWithdrawn(w xproto.Window) bool { return f.win(w).withdrawn }
func (f *fakeGateway) ReadProtocols(w xproto.Window) x11.Protocols {
	return f.win(w).protocols
}
func (f *fakeGateway) WindowTypes(w xproto.Window) []string { return f.win(w).types }
func (f *fakeGateway) NetWmStates(w xproto.Window) []string { return f.win(w).states }
func (f *fakeGateway) TransientFor(w xproto.Window) (xproto.Window, bool) {
	t := f.win(w).transient
	return t, t != 0
}
func (f *fakeGateway) Geometry(w xproto.Window) (geometry.Rect, error) {
	return f.win(w).geom, nil
}
func (f *fakeGateway) OverrideRedirect(w xproto.Window) bool { return f.win(w).override }
func (f *fakeGateway) AtomName(a xproto.Atom) string { return f.atoms[a] }

func (f *fakeGateway) MoveResize(w xproto.Window, g geometry.Rect) { f.geoms[w] = g }
func (f *fakeGateway) SetBorderWidth(w xproto.Window, width int) { f.borders[w] = width }
func (f *fakeGateway) MapWindow(w xproto.Window) { f.mapped[w] = true }
func (f *fakeGateway) UnmapWindow(w xproto.Window) { f.mapped[w] = false }
func (f *fakeGateway) Raise(xproto.Window) {}
func (f *fakeGateway) Lower(xproto.Window) {}
func (f *fakeGateway) StackAbove(_, _ xproto.Window) {}
func (f *fakeGateway) KillWindow(w xproto.Window) { f.killed = append(f.killed, w) }
func (f *fakeGateway) SendDelete(w xproto.Window) error {
	f.deleted = append(f.deleted, w)
	return nil
}
func (f *fakeGateway) SendTakeFocus(w xproto.Window) error { f.focused = w; return nil }
func (f *fakeGateway) SetInputFocus(w xproto.Window) { f.focused = w }
func (f *fakeGateway) FocusRoot() { f.focused = 0 }
func (f *fakeGateway) WarpPointer(x, y int) { f.pointerX, f.pointerY = x, y }
func (f *fakeGateway) PointerPosition() (int, int, error) { return f.pointerX, f.pointerY, nil }
func (f *fakeGateway) SelectClientEvents(xproto.Window) error {
	return nil
}
func (f *fakeGateway) ListenClient(xproto.Window) {}
func (f *fakeGateway) ForgetClient(xproto.Window) {}
func (f *fakeGateway) ConfigureNotifySynthetic(xproto.Window, geometry.Rect, int) {}

func (f *fakeGateway) SetClientList([]xproto.Window) {}
func (f *fakeGateway) SetClientListStacking([]xproto.Window) {}
func (f *fakeGateway) SetDesktops([]string, int) {}
func (f *fakeGateway) SetDesktopGeometry(int, int) {}
func (f *fakeGateway) SetViewports(int) {}
func (f *fakeGateway) SetWorkareas([]geometry.Rect) {}
func (f *fakeGateway) SetActiveWindow(w xproto.Window) { f.active = w }
func (f *fakeGateway) SetWindowDesktop(xproto.Window, uint) {}
func (f *fakeGateway) SetWindowStates(w xproto.Window, states []string) { f.netState[w] = states }
func (f *fakeGateway) SetIcccmState(xproto.Window, uint) {}
func (f *fakeGateway) ClearRootProperties() {}

func (f *fakeGateway) KeycodeForName(name string) (xproto.Keycode, bool) {
	kc, ok := f.keycodes[name]
	return kc, ok
}
func (f *fakeGateway) GrabKey(uint16, xproto.Keycode) error { return nil }
func (f *fakeGateway) GrabButton(uint16, xproto.Button) error { return nil }
func (f *fakeGateway) UngrabAll() {}
func (f *fakeGateway) Quit() { f.quit = true }

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestManager builds a manager over the fake with the default
// config, optionally mutated first.
func newTestManager(t *testing.T, gw *fakeGateway, mutate func(*config.Config)) *Manager {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	m, err := New(cfg, gw, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}
