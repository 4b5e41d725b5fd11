package geometry

// Unbounded marks a maximum size hint that the client never set.
const Unbounded = -1

// Hints carries the ICCCM size constraints of a single window, already
// sanitized by the ingestion layer: minimums are at least 1, increments
// at least 1 and maximums either positive or Unbounded.
type Hints struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int // Unbounded when the client set no maximum
	MaxHeight int

	WidthInc  int
	HeightInc int

	BaseWidth  int
	BaseHeight int

	MinRatio float64 // width/height, 0 when unset
	MaxRatio float64

	// Requested placement from the US/P position and size flags,
	// honored only for clients that manage their own geometry.
	HasPosition bool
	HasSize     bool
	PosX        int
	PosY        int
	ReqWidth    int
	ReqHeight   int
}

// Constrain clamps geom against the size hints within bounds and returns
// the adjusted rectangle. frame is the total horizontal decoration
// (2*border plus left+right margin) subtracted from the bounds-derived
// maximum when the client declared none.
//
// Width and height are aligned to the increment step by subtracting
// (size-base) mod inc (ICCCM 4.1.2.3). When adjustX/adjustY is set the
// origin is shifted by the subtracted amount so the far edge stays fixed
// during an interactive resize from that edge. Finally the width is
// clamped against the aspect-ratio bounds relative to the height.
//
// Constrain is idempotent: applying it to its own result is a no-op.
func Constrain(geom Rect, hints Hints, bounds Rect, frame int, adjustX, adjustY bool) Rect {
	maxWidth := hints.MaxWidth
	if maxWidth == Unbounded {
		maxWidth = bounds.Width - frame
	}
	maxHeight := hints.MaxHeight
	if maxHeight == Unbounded {
		maxHeight = bounds.Height - frame
	}

	if geom.Width < hints.MinWidth {
		geom.Width = hints.MinWidth
	}
	if geom.Width > maxWidth {
		geom.Width = maxWidth
	}
	if geom.Height < hints.MinHeight {
		geom.Height = hints.MinHeight
	}
	if geom.Height > maxHeight {
		geom.Height = maxHeight
	}

	widthInc, heightInc := hints.WidthInc, hints.HeightInc
	if widthInc < 1 {
		widthInc = 1
	}
	if heightInc < 1 {
		heightInc = 1
	}

	diffWidth := (geom.Width - hints.BaseWidth) % widthInc
	diffHeight := (geom.Height - hints.BaseHeight) % heightInc

	if adjustX {
		geom.X += diffWidth
	}
	if adjustY {
		geom.Y += diffHeight
	}

	geom.Width -= diffWidth
	geom.Height -= diffHeight

	if hints.MinRatio > 0 && float64(geom.Height)*hints.MinRatio > float64(geom.Width) {
		geom.Width = int(float64(geom.Height) * hints.MinRatio)
	}
	if hints.MaxRatio > 0 && float64(geom.Height)*hints.MaxRatio < float64(geom.Width) {
		geom.Width = int(float64(geom.Height) * hints.MaxRatio)
	}

	return geom
}

// Snap pins geom edges that lie within threshold pixels of the matching
// screen edge exactly onto that edge, accounting for the border width.
// Each axis and each near/far edge is evaluated independently.
func Snap(geom Rect, screen Rect, border, threshold int) Rect {
	if abs(screen.X-geom.X) <= threshold {
		geom.X = screen.X + border
	} else if abs((screen.X+screen.Width)-(geom.X+geom.Width+border)) <= threshold {
		geom.X = screen.X + screen.Width - geom.Width - border
	}

	if abs(screen.Y-geom.Y) <= threshold {
		geom.Y = screen.Y + border
	} else if abs((screen.Y+screen.Height)-(geom.Y+geom.Height+border)) <= threshold {
		geom.Y = screen.Y + screen.Height - geom.Height - border
	}

	return geom
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
