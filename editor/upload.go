package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/scene"
)

// validate checks an upload before it is decoded.
func (e *Editor) validate(name, mime string, data []byte) error {
	var err error
	switch {
	case !strings.HasPrefix(mime, "image/"):
		err = ErrNotImage
	case len(data) > e.opts.maxFileSize:
		err = ErrFileTooLarge
	default:
		return nil
	}
	imgedit.Logger().Warn("editor: upload rejected", "name", name, "mime", mime, "size", len(data), "err", err)
	return &RejectError{Name: name, MIME: mime, Size: len(data), Err: err}
}

// Upload replaces the edited image. The new state has every parameter at
// its default, the history holds only that state and the brush mask is
// cleared to the image size. Upload blocks until the image is decoded or
// ctx is done; a rejected or undecodable upload leaves the session as it
// was.
func (e *Editor) Upload(ctx context.Context, name, mime string, data []byte) error {
	seq, ref, err := e.beginUpload(name, mime, data)
	if err != nil {
		return err
	}
	img, err := e.loader.Load(ref).Wait(ctx)
	return e.finishUpload(seq, name, ref, img, err)
}

// UploadAsync validates the upload, then decodes in the background and
// calls done, if non-nil, with the result. A decode that completes after
// Close or after a newer upload is dropped and done receives [ErrClosed]
// or nil respectively.
func (e *Editor) UploadAsync(name, mime string, data []byte, done func(error)) error {
	seq, ref, err := e.beginUpload(name, mime, data)
	if err != nil {
		return err
	}
	e.loader.Load(ref).Then(func(img *imgedit.Pixmap, err error) {
		err = e.finishUpload(seq, name, ref, img, err)
		if done != nil {
			done(err)
		}
	})
	return nil
}

func (e *Editor) beginUpload(name, mime string, data []byte) (uint64, scene.ImageRef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, scene.ImageRef{}, ErrClosed
	}
	if err := e.validate(name, mime, data); err != nil {
		return 0, scene.ImageRef{}, err
	}
	e.upload++
	return e.upload, scene.NewImageRef(mime, data), nil
}

func (e *Editor) finishUpload(seq uint64, name string, ref scene.ImageRef, img *imgedit.Pixmap, err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		imgedit.Logger().Debug("editor: late decode dropped", "name", name)
		return ErrClosed
	}
	if seq != e.upload {
		imgedit.Logger().Debug("editor: superseded upload dropped", "name", name)
		return nil
	}
	if err != nil {
		imgedit.Logger().Warn("editor: upload decode failed", "name", name, "err", err)
		return fmt.Errorf("editor: upload %q: %w", name, err)
	}

	e.stroker.End()
	e.gesture = nil
	e.selText, e.selOverlay = 0, 0
	e.forgetImages(ref)
	e.state = scene.New(ref)
	e.sourceChanged()
	e.hist.Reset()
	e.record()
	imgedit.Logger().Info("editor: image loaded", "name", name, "size", [2]int{img.Width(), img.Height()})
	e.changed()
	return nil
}

// forgetImages drops the outgoing session's source and overlays from the
// decode cache. next stays cached.
func (e *Editor) forgetImages(next scene.ImageRef) {
	if old := e.state.Source; !old.IsZero() && old.ID != next.ID {
		e.loader.Forget(old)
	}
	for _, o := range e.state.Overlays {
		if o.Image.ID != next.ID {
			e.loader.Forget(o.Image)
		}
	}
}
