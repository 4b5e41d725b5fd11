package gravity

import (
	"testing"

	"github.com/gravwm/gravwm/internal/geometry"
)

func TestNewClampsPercentages(t *testing.T) {
	tests := []struct {
		name                string
		x, y, width, height int
		want                geometry.Rect
	}{
		{"in range", 25, 25, 50, 50, geometry.Rect{X: 25, Y: 25, Width: 50, Height: 50}},
		{"negative origin", -10, -200, 100, 100, geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		{"oversized", 150, 101, 250, 300, geometry.Rect{X: 100, Y: 100, Width: 100, Height: 100}},
		{"zero size floored", 0, 0, 0, 0, geometry.Rect{X: 0, Y: 0, Width: 1, Height: 1}},
		{"negative size floored", 50, 50, -5, -1, geometry.Rect{X: 50, Y: 50, Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.name, tt.x, tt.y, tt.width, tt.height, None)
			if g.Geom != tt.want {
				t.Errorf("New(%d, %d, %d, %d) geom = %s, want %s",
					tt.x, tt.y, tt.width, tt.height, g.Geom, tt.want)
			}
		})
	}
}

func TestApplySize(t *testing.T) {
	bounds := geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	g := New("center", 25, 25, 50, 50, None)
	got := g.ApplySize(bounds)
	want := geometry.Rect{X: 200, Y: 150, Width: 400, Height: 300}
	if got != want {
		t.Errorf("ApplySize(%s) = %s, want %s", bounds, got, want)
	}
}

func TestApplySizeOffsetBounds(t *testing.T) {
	bounds := geometry.Rect{X: 1920, Y: 40, Width: 1000, Height: 1000}

	g := New("left", 0, 0, 50, 100, Vertical)
	got := g.ApplySize(bounds)
	want := geometry.Rect{X: 1920, Y: 40, Width: 500, Height: 1000}
	if got != want {
		t.Errorf("ApplySize(%s) = %s, want %s", bounds, got, want)
	}
}

func TestSlicesCoverGeometryExactly(t *testing.T) {
	geom := geometry.Rect{X: 100, Y: 50, Width: 1003, Height: 700}

	for n := 1; n <= 7; n++ {
		slices := Slices(n, geom, Horizontal)
		if len(slices) != n {
			t.Fatalf("Slices(%d) returned %d slices", n, len(slices))
		}

		total := 0
		for i, s := range slices {
			if s.Y != geom.Y || s.Height != geom.Height {
				t.Errorf("n=%d slice %d cross-axis = (%d, %d), want (%d, %d)",
					n, i, s.Y, s.Height, geom.Y, geom.Height)
			}
			if s.X != geom.X+total {
				t.Errorf("n=%d slice %d starts at %d, want %d", n, i, s.X, geom.X+total)
			}
			total += s.Width
		}
		if total != geom.Width {
			t.Errorf("n=%d slices span %d pixels, want %d", n, total, geom.Width)
		}
	}
}

func TestSlicesRemainderGoesToLast(t *testing.T) {
	geom := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 905}

	slices := Slices(3, geom, Vertical)
	if len(slices) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(slices))
	}
	for i := 0; i < 2; i++ {
		if slices[i].Height != 301 {
			t.Errorf("slice %d height = %d, want 301", i, slices[i].Height)
		}
	}
	if slices[2].Height != 303 {
		t.Errorf("last slice height = %d, want 303", slices[2].Height)
	}
	if slices[2].Y+slices[2].Height != 905 {
		t.Errorf("last slice ends at %d, want 905", slices[2].Y+slices[2].Height)
	}
}

func TestSlicesDegenerateInputs(t *testing.T) {
	geom := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	if got := Slices(0, geom, Horizontal); got != nil {
		t.Errorf("Slices(0) = %v, want nil", got)
	}
	if got := Slices(-2, geom, Vertical); got != nil {
		t.Errorf("Slices(-2) = %v, want nil", got)
	}
	if got := Slices(2, geom, None); got != nil {
		t.Errorf("Slices with orientation None = %v, want nil", got)
	}
}
