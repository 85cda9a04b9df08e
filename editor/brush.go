package editor

import (
	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/scene"
)

// EnableBrush turns brush mode on with the given settings.
func (e *Editor) EnableBrush(s brush.Settings) error {
	s.Enabled = true
	return e.setBrush("enable brush", s)
}

// UpdateBrush changes the brush settings without changing whether brush
// mode is on.
func (e *Editor) UpdateBrush(s brush.Settings) error {
	e.mu.Lock()
	s.Enabled = e.state.Brush.Enabled
	e.mu.Unlock()
	return e.setBrush("update brush", s)
}

// DisableBrush turns brush mode off. The mask is kept.
func (e *Editor) DisableBrush() error {
	return e.edit("disable brush", func(st *scene.State) error {
		e.stroker.End()
		st.Brush.Enabled = false
		return nil
	})
}

func (e *Editor) setBrush(cmd string, s brush.Settings) error {
	if !s.Mode.Valid() {
		s.Mode = brush.AddBlur
	}
	return e.edit(cmd, func(st *scene.State) error {
		st.Brush = s
		return nil
	})
}

// ResetBrush clears the brush mask.
func (e *Editor) ResetBrush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("reset brush"); err != nil {
		return err
	}
	e.stroker.End()
	e.engine.Clear()
	e.changed()
	return nil
}

// BeginStroke starts a brush stroke at p, in display pixels over the
// canvas. Nothing is painted until the pointer moves.
func (e *Editor) BeginStroke(p imgedit.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("stroke"); err != nil {
		return err
	}
	if !e.state.Brush.Enabled {
		return ErrBrushDisabled
	}
	sp, err := e.toSource(p)
	if err != nil {
		return err
	}
	e.stroker.Begin(sp, e.state.Brush)
	return nil
}

// StrokeTo extends the stroke to p. Moves arriving faster than the stroke
// interval are coalesced. It reports whether a segment was painted.
func (e *Editor) StrokeTo(p imgedit.Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.stroker.Active() {
		return false
	}
	sp, err := e.toSource(p)
	if err != nil {
		return false
	}
	return e.stroker.MoveTo(sp)
}

// EndStroke finishes the stroke and records the edit once.
func (e *Editor) EndStroke() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if !e.stroker.Active() {
		return ErrNoGesture
	}
	n := e.stroker.End()
	imgedit.Logger().Debug("editor: stroke", "segments", n)
	e.record()
	e.changed()
	return nil
}

// toSource maps a display point to source pixels through the current
// canvas transform.
func (e *Editor) toSource(p imgedit.Point) (imgedit.Point, error) {
	tr := geometry.NewTransform(e.srcSize.Width, e.srcSize.Height, e.state.Crop, e.state.Shadow.Bleed())
	cp := geometry.DisplayToCanvas(p, e.display, tr.Canvas)
	return tr.Invert(cp)
}
