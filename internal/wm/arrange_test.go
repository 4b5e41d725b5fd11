package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/geometry"
	"github.com/gravwm/gravwm/internal/x11"
)

func add(t *testing.T, m *Manager, gw *fakeGateway, win xproto.Window, w *fakeWindow) *Client {
	t.Helper()
	gw.addWindow(win, w)
	c := m.manage(win, false)
	if c == nil {
		t.Fatalf("manage(%d) returned nil", win)
	}
	return c
}

func TestArrangeHidesClientsOffTheVisibleViews(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, nil)

	term := add(t, m, gw, 1, &fakeWindow{meta: x11.WindowMeta{Class: "XTerm"}})
	browser := add(t, m, gw, 2, &fakeWindow{meta: x11.WindowMeta{Class: "Firefox"}})
	m.arrange()

	// The single screen shows view 0 (default+terms); the browser tag
	// is only on view 1.
	if !gw.mapped[term.Win] {
		t.Error("terminal should be mapped on view 0")
	}
	if gw.mapped[browser.Win] {
		t.Error("browser should be unmapped on view 0")
	}

	m.switchView(0, 1)
	if !gw.mapped[browser.Win] {
		t.Error("browser should be mapped after switching to view 1")
	}
	if gw.mapped[term.Win] {
		t.Error("terminal should be unmapped after switching to view 1")
	}
}

func TestStickyClientVisibleEverywhere(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, nil)

	c := add(t, m, gw, 1, &fakeWindow{meta: x11.WindowMeta{Class: "Firefox"}})
	m.arrange()
	if gw.mapped[c.Win] {
		t.Fatal("browser should start hidden on view 0")
	}

	m.setModes(c, ModeStick)
	m.arrange()
	if !gw.mapped[c.Win] {
		t.Error("sticky client must be visible regardless of tags")
	}
}

func TestGravityTilingSplitsMembers(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.GravityTiling = true
		cfg.BorderWidth = 0
	})

	leftID, ok := m.gravityID("left")
	if !ok {
		t.Fatal("left gravity missing")
	}

	var clients []*Client
	for win := xproto.Window(1); win <= 3; win++ {
		c := add(t, m, gw, win, &fakeWindow{})
		c.SetGravityFor(0, leftID)
		clients = append(clients, c)
	}
	m.arrange()

	// Left gravity is the vertical half column: x=0, w=400, h=600
	// split three ways with the remainder on the last member.
	total := 0
	for i, c := range clients {
		got := gw.geoms[c.Win]
		if got.X != 0 || got.Width != 400 {
			t.Errorf("client %d x/width = %d/%d, want 0/400", i, got.X, got.Width)
		}
		total += got.Height
	}
	if total != 600 {
		t.Errorf("slice heights sum to %d, want 600", total)
	}
	last := gw.geoms[clients[2].Win]
	if last.Y+last.Height != 600 {
		t.Errorf("last slice ends at %d, want 600", last.Y+last.Height)
	}
}

func TestGravityTilingDisabledStacksMembers(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.BorderWidth = 0
	})

	leftID, _ := m.gravityID("left")
	a := add(t, m, gw, 1, &fakeWindow{})
	b := add(t, m, gw, 2, &fakeWindow{})
	a.SetGravityFor(0, leftID)
	b.SetGravityFor(0, leftID)
	m.arrange()

	if gw.geoms[1] != gw.geoms[2] {
		t.Errorf("without tiling both members share the slot: %s vs %s", gw.geoms[1], gw.geoms[2])
	}
}

func TestZaphodSpansAllScreens(t *testing.T) {
	gw := newFakeGateway(
		x11.Output{ID: 0, Name: "left", Geom: geometry.Rect{Width: 800, Height: 600}},
		x11.Output{ID: 1, Name: "right", Geom: geometry.Rect{X: 800, Width: 1024, Height: 768}},
	)
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.BorderWidth = 0
	})

	c := add(t, m, gw, 1, &fakeWindow{})
	m.setModes(c, ModeZaphod)
	m.arrange()

	if got := gw.geoms[1]; got != (geometry.Rect{X: 0, Y: 0, Width: 1824, Height: 768}) {
		t.Errorf("zaphod geom = %s, want union of both screens", got)
	}
}

func TestFullscreenZaphodSpansAllScreens(t *testing.T) {
	gw := newFakeGateway(
		x11.Output{ID: 0, Name: "left", Geom: geometry.Rect{Width: 800, Height: 600}},
		x11.Output{ID: 1, Name: "right", Geom: geometry.Rect{X: 800, Width: 1024, Height: 768}},
	)
	m := newTestManager(t, gw, nil)

	c := add(t, m, gw, 1, &fakeWindow{})
	m.setModes(c, ModeFull|ModeZaphod)
	m.arrange()

	if got := gw.geoms[1]; got != (geometry.Rect{X: 0, Y: 0, Width: 1824, Height: 768}) {
		t.Errorf("fullscreen zaphod geom = %s, want union of both screens", got)
	}
	if gw.borders[1] != 0 {
		t.Errorf("fullscreen border = %d, want 0", gw.borders[1])
	}
}

func TestFloatSpillingOffScreenRecenters(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.BorderWidth = 0
	})

	c := add(t, m, gw, 1, &fakeWindow{geom: geometry.Rect{X: 700, Y: 550, Width: 300, Height: 200}})
	m.setModes(c, ModeFloat)
	m.arrange()

	// Both axes stick out, so both re-center on the 800x600 screen.
	want := geometry.Rect{X: 250, Y: 200, Width: 300, Height: 200}
	if c.Geom != want {
		t.Errorf("float geom = %s, want %s", c.Geom, want)
	}
}

func TestOversizedFloatShrinksToScreen(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.BorderWidth = 0
	})

	c := add(t, m, gw, 1, &fakeWindow{geom: geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 700}})
	m.setModes(c, ModeFloat)
	m.arrange()

	if c.Geom != (geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}) {
		t.Errorf("float geom = %s, want clamped to the screen", c.Geom)
	}
}

func TestFloatKeepsOffsetAcrossScreens(t *testing.T) {
	gw := newFakeGateway(
		x11.Output{ID: 0, Name: "left", Geom: geometry.Rect{Width: 800, Height: 600}},
		x11.Output{ID: 1, Name: "right", Geom: geometry.Rect{X: 800, Width: 1024, Height: 768}},
	)
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.BorderWidth = 0
	})

	c := add(t, m, gw, 1, &fakeWindow{geom: geometry.Rect{X: 100, Y: 50, Width: 200, Height: 150}})
	m.setModes(c, ModeFloat)
	m.arrange()

	c.Screen = 1
	m.arrange()

	// The offset from the old screen's origin carries over to the new
	// one instead of leaving the float at absolute coordinates.
	want := geometry.Rect{X: 900, Y: 50, Width: 200, Height: 150}
	if c.FloatGeom != want {
		t.Errorf("float geom = %s, want %s", c.FloatGeom, want)
	}
	if gw.geoms[1] != want {
		t.Errorf("issued geom = %s, want %s", gw.geoms[1], want)
	}
}

func TestSwitchViewRestoresRememberedFocus(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, nil)

	b1 := add(t, m, gw, 1, &fakeWindow{meta: x11.WindowMeta{Class: "Firefox"}})
	b2 := add(t, m, gw, 2, &fakeWindow{meta: x11.WindowMeta{Class: "Firefox"}})
	term := add(t, m, gw, 3, &fakeWindow{meta: x11.WindowMeta{Class: "XTerm"}})
	m.arrange()

	m.switchView(0, 1)
	m.focus(b1, false)
	m.focus(b2, false)

	m.switchView(0, 0)
	m.focus(term, false)

	// Coming back, the view hands focus to the client it remembers,
	// not whichever candidate a fresh search would pick.
	m.switchView(0, 1)
	if m.focused != b2.Win {
		t.Errorf("focused = %d, want %d restored from the view", m.focused, b2.Win)
	}

	// With the remembered client gone the view falls back to a search.
	m.switchView(0, 0)
	m.unmanage(b2)
	m.switchView(0, 1)
	if m.focused != b1.Win {
		t.Errorf("focused = %d, want %d after fallback", m.focused, b1.Win)
	}
}

func TestSwitchViewSwapsScreens(t *testing.T) {
	gw := newFakeGateway(
		x11.Output{ID: 0, Name: "left", Geom: geometry.Rect{Width: 800, Height: 600}},
		x11.Output{ID: 1, Name: "right", Geom: geometry.Rect{X: 800, Width: 800, Height: 600}},
	)
	m := newTestManager(t, gw, nil)

	// Screen 0 shows view 0, screen 1 shows view 1.
	m.switchView(0, 1)

	if m.screens[0].ViewIdx != 1 {
		t.Errorf("screen 0 view = %d, want 1", m.screens[0].ViewIdx)
	}
	if m.screens[1].ViewIdx != 0 {
		t.Errorf("screen 1 view = %d, want 0 (swapped)", m.screens[1].ViewIdx)
	}
}

func TestFullscreenClientCoversWholeScreen(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.Padding = config.Uniform(20)
		cfg.Screens = []config.ScreenConfig{{TopPanel: 24}}
	})

	c := add(t, m, gw, 1, &fakeWindow{})
	m.setModes(c, ModeFull)
	m.arrange()

	// Fullscreen ignores padding and panels.
	if got := gw.geoms[1]; got != (geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}) {
		t.Errorf("fullscreen geom = %s, want whole output", got)
	}
	if gw.borders[1] != 0 {
		t.Errorf("fullscreen border = %d, want 0", gw.borders[1])
	}
}

func TestPanelsShrinkTiledArea(t *testing.T) {
	gw := newFakeGateway()
	m := newTestManager(t, gw, func(cfg *config.Config) {
		cfg.BorderWidth = 0
		cfg.Screens = []config.ScreenConfig{{TopPanel: 20, BottomPanel: 30}}
	})

	add(t, m, gw, 1, &fakeWindow{})
	m.arrange()

	if got := gw.geoms[1]; got != (geometry.Rect{X: 0, Y: 20, Width: 800, Height: 550}) {
		t.Errorf("tiled geom = %s, want panel strips reserved", got)
	}
}

func TestStackRankOrder(t *testing.T) {
	desktop := &Client{Kind: KindDesktop}
	tiled := &Client{}
	float := &Client{Modes: ModeFloat}
	full := &Client{Modes: ModeFull}

	if !(stackRank(desktop) < stackRank(tiled) &&
		stackRank(tiled) < stackRank(float) &&
		stackRank(float) < stackRank(full)) {
		t.Errorf("stack ranks out of order: desktop=%d tiled=%d float=%d full=%d",
			stackRank(desktop), stackRank(tiled), stackRank(float), stackRank(full))
	}
}
