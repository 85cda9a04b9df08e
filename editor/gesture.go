package editor

import (
	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/scene"
)

type gestureKind int

const (
	gestureSpan gestureKind = iota
	gestureDrag
	gestureResize
)

// gesture is an open span of edits recorded as one history entry.
type gesture struct {
	kind   gestureKind
	id     int64
	text   bool
	handle scene.Handle
	origin imgedit.Point
	box    scene.Box
	size   float64
	moved  bool
}

// BeginGesture starts coalescing: state changes until [Editor.EndGesture]
// are applied at once but recorded as a single history entry. Use it
// around continuous inputs such as slider drags.
func (e *Editor) BeginGesture() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.gesture == nil {
		e.gesture = &gesture{kind: gestureSpan}
	}
	return nil
}

// EndGesture finishes the open gesture and records the resulting state.
// A gesture that changed nothing records nothing.
func (e *Editor) EndGesture() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.gesture == nil {
		return ErrNoGesture
	}
	e.gesture = nil
	e.record()
	return nil
}

// BeginDrag presses the pointer on a layer at p, in display pixels, and
// selects it. The layer moves only once the pointer has travelled more
// than [scene.DragThreshold] pixels on either axis.
func (e *Editor) BeginDrag(id int64, p imgedit.Point) error {
	return e.beginLayerGesture(gestureDrag, id, "", p)
}

// BeginResize presses the pointer on a resize handle of a layer at p.
func (e *Editor) BeginResize(id int64, h scene.Handle, p imgedit.Point) error {
	return e.beginLayerGesture(gestureResize, id, h, p)
}

func (e *Editor) beginLayerGesture(kind gestureKind, id int64, h scene.Handle, p imgedit.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("gesture"); err != nil {
		return err
	}
	g := &gesture{kind: kind, id: id, handle: h, origin: p}
	if i := e.state.TextIndex(id); i >= 0 {
		l := e.state.Texts[i]
		g.text = true
		g.box = scene.Box{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
		g.size = l.Size
		e.selText, e.selOverlay = id, 0
	} else if i := e.state.OverlayIndex(id); i >= 0 {
		l := e.state.Overlays[i]
		g.box = scene.Box{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
		e.selOverlay, e.selText = id, 0
	} else {
		return ErrNoLayer
	}
	e.gesture = g
	return nil
}

// PointerMove moves or resizes the layer under an open drag or resize.
// It reports whether the state changed.
func (e *Editor) PointerMove(p imgedit.Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	g := e.gesture
	if e.closed || g == nil || g.kind == gestureSpan {
		return false
	}
	d := p.Sub(g.origin)
	if !g.moved {
		if g.kind == gestureDrag && !scene.PastThreshold(d.X, d.Y) {
			return false
		}
		g.moved = true
	}

	next := e.state.Clone()
	var box scene.Box
	scale := 1.0
	switch g.kind {
	case gestureDrag:
		c := e.containerSize()
		box = g.box
		box.X, box.Y = scene.DragPosition(g.box.X+d.X, g.box.Y+d.Y, g.box.Width, g.box.Height, c.Width, c.Height)
	case gestureResize:
		if g.text {
			box, scale = scene.ResizeText(g.box, g.handle, d.X, d.Y)
		} else {
			box = scene.ResizeOverlay(g.box, g.handle, d.X, d.Y)
		}
	}

	if g.text {
		i := next.TextIndex(g.id)
		if i < 0 {
			return false
		}
		l := &next.Texts[i]
		l.X, l.Y, l.Width, l.Height = box.X, box.Y, box.Width, box.Height
		l.Size = g.size * scale
	} else {
		i := next.OverlayIndex(g.id)
		if i < 0 {
			return false
		}
		l := &next.Overlays[i]
		l.X, l.Y, l.Width, l.Height = box.X, box.Y, box.Width, box.Height
	}
	e.commit(next)
	return true
}

// PointerUp ends an open drag or resize. If the layer moved, the final
// state is recorded once. A press without movement only selects.
func (e *Editor) PointerUp() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	g := e.gesture
	if g == nil || g.kind == gestureSpan {
		return ErrNoGesture
	}
	e.gesture = nil
	if g.moved {
		e.record()
	}
	return nil
}
