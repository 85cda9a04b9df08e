// Package editor is the command surface of an image editing session.
//
// An [Editor] owns the current edit state, its undo history, the brush
// mask and the compositor. Every command produces a new state; discrete
// commands record it in history at once, while gestures (layer drags and
// resizes, brush strokes, or any span opened with [Editor.BeginGesture])
// record a single entry when they end.
//
// Commands that cannot apply, such as cropping with no region set, return
// a precondition error and leave the state untouched. After Close every
// command returns [ErrClosed] and late decode completions are dropped.
package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/history"
	"github.com/gogpu/imgedit/render"
	"github.com/gogpu/imgedit/scene"
)

// Editor is an editing session. It is safe for concurrent use.
type Editor struct {
	mu sync.Mutex

	opts       options
	ownsLoader bool
	loader     *render.Loader
	comp       *render.Compositor
	engine     *brush.Engine
	stroker    *brush.Stroker

	state   scene.State
	hist    *history.History[scene.State]
	srcSize geometry.Size
	display geometry.Size
	frame   *render.Frame

	selText    int64
	selOverlay int64
	gesture    *gesture

	nextID int64
	// upload counts uploads so a decode finishing after a newer upload
	// is dropped.
	upload uint64
	closed bool
}

// New creates an editor with no image loaded.
func New(opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Editor{
		opts:   o,
		loader: o.loader,
		engine: brush.NewEngine(0, 0),
		hist:   history.New(scene.State.Equal),
		state:  scene.State{ActiveTool: scene.ToolNone},
	}
	if e.loader == nil {
		e.loader = render.NewLoader()
		e.ownsLoader = true
	}
	e.comp = render.NewCompositor(render.WithLoader(e.loader), render.WithFonts(o.fonts))
	e.stroker = brush.NewStroker(e.engine, brush.NewThrottle(o.strokeInterval, o.now))
	return e
}

// Close ends the session. Pending decodes complete but their results are
// ignored. Close is safe to call more than once.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stroker.End()
	e.mu.Unlock()

	if e.ownsLoader {
		e.loader.Close()
	}
}

// State returns a copy of the current edit state.
func (e *Editor) State() scene.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// CanUndo reports whether Undo would change the state.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether Redo would change the state.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// Undo restores the previous recorded state with no tool active. It
// reports whether anything changed.
func (e *Editor) Undo() bool {
	return e.travel("undo", e.hist.Undo)
}

// Redo restores the next recorded state with no tool active. It reports
// whether anything changed.
func (e *Editor) Redo() bool {
	return e.travel("redo", e.hist.Redo)
}

func (e *Editor) travel(dir string, step func() (scene.State, bool)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.gesture != nil {
		return false
	}
	st, ok := step()
	if !ok {
		return false
	}
	prev := e.state.Source
	e.state = st.Clone()
	e.state.ActiveTool = scene.ToolNone
	if e.state.Source.ID != prev.ID {
		e.sourceChanged()
	}
	e.dropStaleSelection()
	imgedit.Logger().Debug("editor: "+dir, "cursor", e.hist.Cursor(), "entries", e.hist.Len())
	e.changed()
	return true
}

// SetActiveTool opens a tool panel. The active tool is not part of the
// history.
func (e *Editor) SetActiveTool(t scene.Tool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.state.ActiveTool == t {
		return nil
	}
	e.state.ActiveTool = t
	e.changed()
	return nil
}

// SetDisplaySize tells the editor the on-screen size of the canvas.
// Pointer positions and layer boxes are measured in display pixels; a zero
// size means display pixels equal canvas pixels.
func (e *Editor) SetDisplaySize(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.display = geometry.Size{Width: max(width, 0), Height: max(height, 0)}
}

// Preview renders the current state for display. When the source cannot
// be decoded it returns the last good frame, possibly nil, with the error.
func (e *Editor) Preview(ctx context.Context) (*render.Frame, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	if !e.state.HasImage() {
		e.mu.Unlock()
		return nil, ErrNoImage
	}
	st := e.state.Clone()
	stencil := e.stencil()
	e.mu.Unlock()

	f, err := e.comp.Preview(ctx, st, stencil, st.ActiveTool)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		return e.frame, err
	}
	e.frame = f
	return f, nil
}

// stencil snapshots the brush mask when the brush affects rendering.
func (e *Editor) stencil() *imgedit.Mask {
	if !e.state.Brush.Enabled {
		return nil
	}
	return e.engine.Stencil()
}

// ready checks the common preconditions of a command.
func (e *Editor) ready(cmd string) error {
	if e.closed {
		return ErrClosed
	}
	if !e.state.HasImage() {
		imgedit.Logger().Warn("editor: command ignored", "cmd", cmd, "err", ErrNoImage)
		return ErrNoImage
	}
	return nil
}

// commit replaces the current state and records it unless a gesture is
// open.
func (e *Editor) commit(next scene.State) {
	e.state = next
	if e.gesture == nil {
		e.record()
	}
	e.changed()
}

// record pushes the current state onto the history.
func (e *Editor) record() {
	snap := e.state.Clone()
	snap.ActiveTool = scene.ToolNone

	prev, hasPrev := e.hist.Current()
	if !e.hist.Push(snap) {
		return
	}
	log := imgedit.Logger()
	if hasPrev && log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("editor: history push",
			"cursor", e.hist.Cursor(),
			"entries", e.hist.Len(),
			"diff", scene.Diff(prev, snap))
	}
}

func (e *Editor) changed() {
	if e.opts.onChange != nil {
		e.opts.onChange(e.state.Clone())
	}
}

func (e *Editor) newID() int64 {
	e.nextID++
	return e.nextID
}

// sourceChanged resizes the brush mask to the current source image.
func (e *Editor) sourceChanged() {
	w, h := e.sourceDims(e.state.Source)
	e.srcSize = geometry.Size{Width: float64(w), Height: float64(h)}
	e.engine.Resize(w, h)
	e.frame = nil
}

func (e *Editor) sourceDims(ref scene.ImageRef) (int, int) {
	if img, ok := e.loader.Cached(ref); ok {
		return img.Width(), img.Height()
	}
	w, h, _, err := render.DecodeConfig(ref.Data)
	if err != nil {
		imgedit.Logger().Warn("editor: source size unknown", "err", err)
		return 0, 0
	}
	return w, h
}

// canvasSize returns the backing size of the rendered canvas.
func (e *Editor) canvasSize() geometry.Size {
	tr := geometry.NewTransform(e.srcSize.Width, e.srcSize.Height, e.state.Crop, e.state.Shadow.Bleed())
	return tr.Canvas
}

// containerSize returns the area layers are dragged within, in display
// pixels.
func (e *Editor) containerSize() geometry.Size {
	if e.display.Width > 0 && e.display.Height > 0 {
		return e.display
	}
	return e.canvasSize()
}
