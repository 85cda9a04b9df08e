package editor

import (
	"context"
	"fmt"
	"slices"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/scene"
	"github.com/gogpu/imgedit/text"
)

// Heading selects a preset text size.
type Heading string

// Headings.
const (
	H1   Heading = "h1"
	H2   Heading = "h2"
	Body Heading = "body"
)

// Size returns the font size of h in pixels; unknown headings are body
// text.
func (h Heading) Size() float64 {
	switch h {
	case H1:
		return scene.SizeH1
	case H2:
		return scene.SizeH2
	}
	return scene.SizeBody
}

// NewText describes a text layer to add. Zero fields take defaults: the
// heading's size, the Go font family, black, opacity 1, normal weight and
// style, and no decoration.
type NewText struct {
	Text       string
	Heading    Heading
	Size       float64
	Family     string
	Color      string
	Opacity    float64
	Weight     string
	FontStyle  string
	Decoration string
}

// AddText adds a text layer at (50, 50), selects it and opens the text
// tool. It returns the new layer's ID.
func (e *Editor) AddText(t NewText) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("add text"); err != nil {
		return 0, err
	}

	size := t.Size
	if size <= 0 {
		size = t.Heading.Size()
	}
	w, h := scene.DefaultTextBox(size)
	l := scene.TextLayer{
		ID:         e.newID(),
		Text:       t.Text,
		X:          50,
		Y:          50,
		Width:      w,
		Height:     h,
		Size:       size,
		Family:     or(t.Family, text.DefaultFamily),
		Color:      or(t.Color, "#000000"),
		Opacity:    t.Opacity,
		Weight:     or(t.Weight, "normal"),
		FontStyle:  or(t.FontStyle, "normal"),
		Decoration: or(t.Decoration, text.DecorationNone),
	}
	if l.Opacity <= 0 {
		l.Opacity = 1
	}

	next := e.state.Clone()
	next.Texts = append(next.Texts, l)
	next.ActiveTool = scene.ToolText
	e.selText, e.selOverlay = l.ID, 0
	e.commit(next)
	return l.ID, nil
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// TextPatch changes the selected text layer. Nil fields are left as they
// are.
type TextPatch struct {
	Text       *string
	Size       *float64
	Family     *string
	Color      *string
	Opacity    *float64
	Weight     *string
	FontStyle  *string
	Decoration *string
}

// UpdateSelectedText applies p to the selected text layer and re-estimates
// its box from the font size and text length.
func (e *Editor) UpdateSelectedText(p TextPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("update text"); err != nil {
		return err
	}
	next := e.state.Clone()
	i := next.TextIndex(e.selText)
	if i < 0 {
		imgedit.Logger().Warn("editor: command ignored", "cmd", "update text", "err", ErrNoSelection)
		return ErrNoSelection
	}

	l := &next.Texts[i]
	set(&l.Text, p.Text)
	set(&l.Family, p.Family)
	set(&l.Color, p.Color)
	set(&l.Weight, p.Weight)
	set(&l.FontStyle, p.FontStyle)
	set(&l.Decoration, p.Decoration)
	set(&l.Opacity, p.Opacity)
	if p.Size != nil && *p.Size > 0 {
		l.Size = *p.Size
	}
	l.Width, l.Height = scene.EstimateTextBox(l.Size, l.Text)

	e.commit(next)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Fitted text box limits.
const (
	maxFitWidth  = 300
	maxFitHeight = 150
)

// FitSelectedText sizes the selected text layer's box to its measured
// text: the measured width plus 8 pixels, no narrower than the estimate,
// and at most 300x150.
func (e *Editor) FitSelectedText() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("fit text"); err != nil {
		return err
	}
	next := e.state.Clone()
	i := next.TextIndex(e.selText)
	if i < 0 {
		return ErrNoSelection
	}
	l := &next.Texts[i]
	m := e.comp.Fonts().Measure(l.Text, l.Style())
	est, _ := scene.EstimateTextBox(l.Size, l.Text)
	l.Width = min(max(m.Width+8, est), maxFitWidth)
	l.Height = min(m.Height(), maxFitHeight)
	e.commit(next)
	return nil
}

// AddOverlay decodes an image and adds it as an overlay layer at
// (50, 50), at most 200 pixels wide with its aspect ratio kept, and
// selects it. It returns the new layer's ID.
func (e *Editor) AddOverlay(ctx context.Context, name, mime string, data []byte) (int64, error) {
	e.mu.Lock()
	if err := e.ready("add overlay"); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if err := e.overlayRoom(name, mime, data); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if err := e.validate(name, mime, data); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	seq := e.upload
	e.mu.Unlock()

	ref := scene.NewImageRef(mime, data)
	img, err := e.loader.Load(ref).Wait(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.closed:
		return 0, ErrClosed
	case seq != e.upload:
		imgedit.Logger().Debug("editor: overlay for replaced image dropped", "name", name)
		return 0, ErrNoImage
	case err != nil:
		imgedit.Logger().Warn("editor: overlay decode failed", "name", name, "err", err)
		return 0, fmt.Errorf("editor: overlay %q: %w", name, err)
	}
	// The limit is checked again: other overlays may have been added
	// while this one decoded.
	if err := e.overlayRoom(name, mime, data); err != nil {
		return 0, err
	}

	iw, ih := float64(img.Width()), float64(img.Height())
	l := scene.OverlayLayer{
		ID:      e.newID(),
		Image:   ref,
		X:       50,
		Y:       50,
		Width:   min(iw, 200),
		Height:  min(ih, 200*ih/iw),
		Opacity: 1,
	}
	next := e.state.Clone()
	next.Overlays = append(next.Overlays, l)
	if next.ActiveTool == scene.ToolNone || next.ActiveTool == "" {
		next.ActiveTool = scene.ToolOverlay
	}
	e.selOverlay, e.selText = l.ID, 0
	e.commit(next)
	return l.ID, nil
}

func (e *Editor) overlayRoom(name, mime string, data []byte) error {
	if len(e.state.Overlays) < e.opts.maxOverlays {
		return nil
	}
	imgedit.Logger().Warn("editor: overlay rejected", "name", name, "limit", e.opts.maxOverlays)
	return &RejectError{Name: name, MIME: mime, Size: len(data), Err: ErrOverlayLimit}
}

// Select selects the text or overlay layer with id. Selecting 0 clears
// the selection.
func (e *Editor) Select(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.selText, e.selOverlay = 0, 0
	switch {
	case id == 0:
	case e.state.TextIndex(id) >= 0:
		e.selText = id
	case e.state.OverlayIndex(id) >= 0:
		e.selOverlay = id
	default:
		return ErrNoLayer
	}
	return nil
}

// Selected returns the ID of the selected layer, or 0.
func (e *Editor) Selected() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return max(e.selText, e.selOverlay)
}

// DeleteSelected removes the selected layer.
func (e *Editor) DeleteSelected() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("delete"); err != nil {
		return err
	}
	next := e.state.Clone()
	ti, oi := next.TextIndex(e.selText), next.OverlayIndex(e.selOverlay)
	switch {
	case e.selText != 0 && ti >= 0:
		next.Texts = slices.Delete(next.Texts, ti, ti+1)
	case e.selOverlay != 0 && oi >= 0:
		next.Overlays = slices.Delete(next.Overlays, oi, oi+1)
	default:
		imgedit.Logger().Warn("editor: command ignored", "cmd", "delete", "err", ErrNoSelection)
		return ErrNoSelection
	}
	e.selText, e.selOverlay = 0, 0
	e.commit(next)
	return nil
}

// dropStaleSelection clears a selection whose layer no longer exists.
func (e *Editor) dropStaleSelection() {
	if e.selText != 0 && e.state.TextIndex(e.selText) < 0 {
		e.selText = 0
	}
	if e.selOverlay != 0 && e.state.OverlayIndex(e.selOverlay) < 0 {
		e.selOverlay = 0
	}
}
