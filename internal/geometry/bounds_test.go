package geometry

import "testing"

func TestConstrainClampsToMinAndMax(t *testing.T) {
	hints := Hints{
		MinWidth:  100,
		MinHeight: 50,
		MaxWidth:  400,
		MaxHeight: 300,
		WidthInc:  1,
		HeightInc: 1,
	}
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	got := Constrain(Rect{X: 10, Y: 10, Width: 20, Height: 20}, hints, bounds, 0, false, false)
	if got.Width != 100 || got.Height != 50 {
		t.Fatalf("expected clamp to min 100x50, got %dx%d", got.Width, got.Height)
	}

	got = Constrain(Rect{X: 10, Y: 10, Width: 900, Height: 900}, hints, bounds, 0, false, false)
	if got.Width != 400 || got.Height != 300 {
		t.Fatalf("expected clamp to max 400x300, got %dx%d", got.Width, got.Height)
	}
}

func TestConstrainUnboundedMaxFallsBackToBounds(t *testing.T) {
	hints := Hints{
		MinWidth:  1,
		MinHeight: 1,
		MaxWidth:  Unbounded,
		MaxHeight: Unbounded,
		WidthInc:  1,
		HeightInc: 1,
	}
	bounds := Rect{X: 0, Y: 0, Width: 800, Height: 600}

	got := Constrain(Rect{X: 0, Y: 0, Width: 1000, Height: 1000}, hints, bounds, 4, false, false)
	if got.Width != 796 || got.Height != 596 {
		t.Fatalf("expected 796x596 (bounds minus frame), got %dx%d", got.Width, got.Height)
	}
}

func TestConstrainAlignsToIncrement(t *testing.T) {
	hints := Hints{
		MinWidth:   1,
		MinHeight:  1,
		MaxWidth:   Unbounded,
		MaxHeight:  Unbounded,
		WidthInc:   9,
		HeightInc:  17,
		BaseWidth:  2,
		BaseHeight: 4,
	}
	bounds := Rect{X: 0, Y: 0, Width: 2000, Height: 2000}

	got := Constrain(Rect{X: 50, Y: 60, Width: 100, Height: 100}, hints, bounds, 0, false, false)
	// (100-2)%9 = 8, (100-4)%17 = 11
	if got.Width != 92 || got.Height != 89 {
		t.Fatalf("expected 92x89 after increment alignment, got %dx%d", got.Width, got.Height)
	}
	if got.X != 50 || got.Y != 60 {
		t.Fatalf("origin must not move without adjust flags, got (%d,%d)", got.X, got.Y)
	}
}

func TestConstrainShiftsOriginForFarEdgeDrag(t *testing.T) {
	hints := Hints{
		MinWidth:  1,
		MinHeight: 1,
		MaxWidth:  Unbounded,
		MaxHeight: Unbounded,
		WidthInc:  10,
		HeightInc: 10,
	}
	bounds := Rect{X: 0, Y: 0, Width: 2000, Height: 2000}

	got := Constrain(Rect{X: 100, Y: 100, Width: 105, Height: 103}, hints, bounds, 0, true, true)
	if got.Width != 100 || got.Height != 100 {
		t.Fatalf("expected 100x100, got %dx%d", got.Width, got.Height)
	}
	if got.X != 105 || got.Y != 103 {
		t.Fatalf("expected origin shifted to keep far edge fixed, got (%d,%d)", got.X, got.Y)
	}
}

func TestConstrainAppliesAspectRatio(t *testing.T) {
	hints := Hints{
		MinWidth:  1,
		MinHeight: 1,
		MaxWidth:  Unbounded,
		MaxHeight: Unbounded,
		WidthInc:  1,
		HeightInc: 1,
		MinRatio:  2.0,
	}
	bounds := Rect{X: 0, Y: 0, Width: 2000, Height: 2000}

	got := Constrain(Rect{X: 0, Y: 0, Width: 100, Height: 100}, hints, bounds, 0, false, false)
	if got.Width != 200 {
		t.Fatalf("expected width widened to 200 by min aspect, got %d", got.Width)
	}

	hints.MinRatio = 0
	hints.MaxRatio = 0.5
	got = Constrain(Rect{X: 0, Y: 0, Width: 100, Height: 100}, hints, bounds, 0, false, false)
	if got.Width != 50 {
		t.Fatalf("expected width narrowed to 50 by max aspect, got %d", got.Width)
	}
}

func TestConstrainIsIdempotent(t *testing.T) {
	cases := []struct {
		name  string
		hints Hints
		geom  Rect
	}{
		{
			name: "increments and base",
			hints: Hints{
				MinWidth: 50, MinHeight: 50,
				MaxWidth: 800, MaxHeight: 600,
				WidthInc: 7, HeightInc: 13,
				BaseWidth: 3, BaseHeight: 1,
			},
			geom: Rect{X: 10, Y: 20, Width: 300, Height: 200},
		},
		{
			name: "aspect bounded",
			hints: Hints{
				MinWidth: 1, MinHeight: 1,
				MaxWidth: Unbounded, MaxHeight: Unbounded,
				WidthInc: 1, HeightInc: 1,
				MinRatio: 0.5, MaxRatio: 3.0,
			},
			geom: Rect{X: 0, Y: 0, Width: 123, Height: 77},
		},
	}

	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := Constrain(tc.geom, tc.hints, bounds, 2, false, false)
			second := Constrain(first, tc.hints, bounds, 2, false, false)
			if first != second {
				t.Fatalf("expected second pass to be a no-op: first=%v second=%v", first, second)
			}
		})
	}
}

func TestSnapPinsNearEdges(t *testing.T) {
	screen := Rect{X: 0, Y: 0, Width: 1000, Height: 800}

	got := Snap(Rect{X: 5, Y: 790, Width: 100, Height: 100}, screen, 2, 10)
	if got.X != 2 {
		t.Errorf("expected left edge snapped to border offset 2, got x=%d", got.X)
	}

	// Bottom edge: 800 - (610+100+2) = 88 > threshold, no snap on y.
	got = Snap(Rect{X: 500, Y: 610, Width: 100, Height: 100}, screen, 2, 10)
	if got.Y != 610 {
		t.Errorf("expected no vertical snap, got y=%d", got.Y)
	}

	// Bottom edge within threshold: 800 - (695+100+2) = 3.
	got = Snap(Rect{X: 500, Y: 695, Width: 100, Height: 100}, screen, 2, 10)
	if got.Y != 800-100-2 {
		t.Errorf("expected bottom edge pinned at %d, got y=%d", 800-100-2, got.Y)
	}
}

func TestSnapOutsideThresholdLeavesGeometry(t *testing.T) {
	screen := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	geom := Rect{X: 400, Y: 300, Width: 100, Height: 100}

	if got := Snap(geom, screen, 2, 10); got != geom {
		t.Fatalf("expected geometry untouched, got %v", got)
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	if !r.ContainsPoint(10, 10) || !r.ContainsPoint(110, 60) || !r.ContainsPoint(50, 30) {
		t.Fatal("expected points inside rect")
	}
	if r.ContainsPoint(9, 10) || r.ContainsPoint(111, 30) {
		t.Fatal("expected points outside rect")
	}
}
