package scene

import "strings"

// Gesture constants.
const (
	// DragThreshold is how far, in pixels on either axis, the pointer must
	// travel before a press becomes a move.
	DragThreshold = 5

	// Sizes used for clamping when a layer has no size of its own.
	DefaultDragWidth  = 100
	DefaultDragHeight = 40

	// MinOverlaySize is the smallest overlay edge a resize can produce.
	MinOverlaySize = 20
	// MinTextSize is the smallest text box edge a resize can produce.
	MinTextSize = 10
)

// Handle is a resize handle: a compass direction such as "e" or "nw".
type Handle string

// Handles.
const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

func (h Handle) corner() bool { return len(h) == 2 }

func (h Handle) has(dir string) bool { return strings.Contains(string(h), dir) }

// Box is a layer's position and size in canvas pixels.
type Box struct {
	X, Y, Width, Height float64
}

// PastThreshold reports whether a pointer displacement starts a move.
func PastThreshold(dx, dy float64) bool {
	return abs(dx) > DragThreshold || abs(dy) > DragThreshold
}

// DragPosition returns the new top-left corner of a dragged layer of size
// w x h, clamped so the layer stays inside a container of size cw x ch.
// A zero w or h uses the default drag size.
func DragPosition(x, y, w, h, cw, ch float64) (float64, float64) {
	if w == 0 {
		w = DefaultDragWidth
	}
	if h == 0 {
		h = DefaultDragHeight
	}
	return max(0, min(x, cw-w)), max(0, min(y, ch-h))
}

// ResizeOverlay resizes an overlay box from its state at gesture start by
// a pointer displacement. West and north handles move the box origin.
func ResizeOverlay(start Box, h Handle, dx, dy float64) Box {
	b := start
	if h.has("e") {
		b.Width = max(MinOverlaySize, start.Width+dx)
	}
	if h.has("w") {
		b.Width = max(MinOverlaySize, start.Width-dx)
		b.X = start.X + dx
	}
	if h.has("s") {
		b.Height = max(MinOverlaySize, start.Height+dy)
	}
	if h.has("n") {
		b.Height = max(MinOverlaySize, start.Height-dy)
		b.Y = start.Y + dy
	}
	return b
}

// ResizeText resizes a text box. Corner handles grow both edges by the
// larger displacement and report the height ratio as a font scale; edge
// handles resize one edge and leave the font unchanged (scale 1).
func ResizeText(start Box, h Handle, dx, dy float64) (Box, float64) {
	b := start
	if h.corner() {
		delta := max(dx, dy)
		b.Width = max(MinTextSize, start.Width+delta)
		b.Height = max(MinTextSize, start.Height+delta)
		if h == HandleNW || h == HandleSW {
			b.X = start.X - delta
		}
		if h == HandleNW || h == HandleNE {
			b.Y = start.Y - delta
		}
		scale := 1.0
		if start.Height > 0 {
			scale = b.Height / start.Height
		}
		return b, scale
	}
	if h.has("e") {
		b.Width = max(MinTextSize, start.Width+dx)
	}
	if h.has("s") {
		b.Height = max(MinTextSize, start.Height+dy)
	}
	if h.has("w") {
		b.Width = max(MinTextSize, start.Width-dx)
		b.X = start.X + dx
	}
	if h.has("n") {
		b.Height = max(MinTextSize, start.Height-dy)
		b.Y = start.Y + dy
	}
	return b, 1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
