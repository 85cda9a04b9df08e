package editor

import (
	"errors"
	"fmt"

	"github.com/gogpu/imgedit/render"
)

// Validation errors. They are returned inside a [*RejectError].
var (
	// ErrNotImage is returned when an upload's media type is not image/*.
	ErrNotImage = errors.New("editor: not an image")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("editor: file too large")

	// ErrOverlayLimit is returned when adding an overlay beyond the limit.
	ErrOverlayLimit = errors.New("editor: overlay limit reached")
)

// ErrDecode is returned when uploaded bytes cannot be decoded.
var ErrDecode = render.ErrDecode

// Precondition errors. The command is a no-op and the state is unchanged.
var (
	ErrNoImage       = errors.New("editor: no image loaded")
	ErrNoCrop        = errors.New("editor: no crop region")
	ErrNoSelection   = errors.New("editor: no layer selected")
	ErrNoLayer       = errors.New("editor: no such layer")
	ErrBrushDisabled = errors.New("editor: brush mode is off")
	ErrNoGesture     = errors.New("editor: no gesture in progress")
)

// ErrStale is returned when the state changed while a crop was rendering;
// the crop is discarded.
var ErrStale = errors.New("editor: state changed during render")

// ErrClosed is returned by every command after Close.
var ErrClosed = errors.New("editor: closed")

// RejectError reports an upload refused before decoding.
type RejectError struct {
	Name string
	MIME string
	Size int
	Err  error
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("editor: rejected %q (%s, %d bytes): %v", e.Name, e.MIME, e.Size, e.Err)
}

func (e *RejectError) Unwrap() error { return e.Err }
