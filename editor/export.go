package editor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/render"
	"github.com/gogpu/imgedit/scene"
)

// Download renders the whole edit, overlays and text included, and
// encodes it.
func (e *Editor) Download(ctx context.Context, f render.Format) ([]byte, error) {
	e.mu.Lock()
	if err := e.ready("download"); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	st := e.state.Clone()
	stencil := e.stencil()
	target := render.DownloadTarget{DisplayWidth: e.display.Width, DisplayHeight: e.display.Height}
	e.mu.Unlock()

	img, err := e.comp.Export(ctx, st, stencil, target)
	if err != nil {
		return nil, fmt.Errorf("editor: download: %w", err)
	}
	var buf bytes.Buffer
	if err := render.Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FinalizeCrop flattens the crop region, overlays and text included, into
// a new source image. Everything baked into the pixels is reset: layers,
// geometry, adjustments, duotone, shadow and the brush mask. Brush
// settings and the active tool are kept.
func (e *Editor) FinalizeCrop(ctx context.Context) error {
	e.mu.Lock()
	if err := e.ready("finalize crop"); err != nil {
		e.mu.Unlock()
		return err
	}
	if !e.state.Crop.Active() {
		e.mu.Unlock()
		imgedit.Logger().Warn("editor: command ignored", "cmd", "finalize crop", "err", ErrNoCrop)
		return ErrNoCrop
	}
	st := e.state.Clone()
	stencil := e.stencil()
	seq := e.upload
	target := render.CropTarget{DisplayWidth: e.display.Width, DisplayHeight: e.display.Height}
	e.mu.Unlock()

	img, err := e.comp.Export(ctx, st, stencil, target)
	if err != nil {
		return fmt.Errorf("editor: finalize crop: %w", err)
	}
	var buf bytes.Buffer
	if err := render.Encode(&buf, img, render.FormatPNG); err != nil {
		return err
	}
	ref := scene.NewImageRef(render.FormatPNG.MIME(), buf.Bytes())
	e.loader.Prime(ref, img)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if seq != e.upload || !e.state.Equal(st) {
		imgedit.Logger().Warn("editor: crop dropped", "err", ErrStale)
		return ErrStale
	}

	next := scene.New(ref)
	next.Brush = e.state.Brush
	next.ActiveTool = e.state.ActiveTool
	e.selText, e.selOverlay = 0, 0
	e.state = next
	e.sourceChanged()
	imgedit.Logger().Info("editor: crop finalized", "size", [2]int{img.Width(), img.Height()})
	e.record()
	e.changed()
	return nil
}
