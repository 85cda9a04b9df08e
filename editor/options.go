package editor

import (
	"time"

	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/render"
	"github.com/gogpu/imgedit/scene"
	"github.com/gogpu/imgedit/text"
)

// Defaults.
const (
	// DefaultMaxFileSize is the largest accepted upload, 5 MiB.
	DefaultMaxFileSize = 5 << 20

	// DefaultMaxOverlays is the most overlay images an edit may hold.
	DefaultMaxOverlays = 10
)

type options struct {
	maxFileSize    int
	maxOverlays    int
	loader         *render.Loader
	fonts          *text.FontSet
	now            func() time.Time
	strokeInterval time.Duration
	onChange       func(scene.State)
}

func defaultOptions() options {
	return options{
		maxFileSize:    DefaultMaxFileSize,
		maxOverlays:    DefaultMaxOverlays,
		now:            time.Now,
		strokeInterval: brush.DefaultStrokeInterval,
	}
}

// Option configures an Editor.
type Option func(*options)

// WithMaxFileSize sets the upload size limit in bytes.
func WithMaxFileSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxFileSize = n
		}
	}
}

// WithMaxOverlays sets the overlay image limit.
func WithMaxOverlays(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxOverlays = n
		}
	}
}

// WithLoader shares an image loader. The editor does not close a loader
// it did not create.
func WithLoader(l *render.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithFonts sets the fonts used to draw and measure text layers.
func WithFonts(fs *text.FontSet) Option {
	return func(o *options) {
		o.fonts = fs
	}
}

// WithClock sets the time source of the brush stroke throttle.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithStrokeInterval sets the minimum spacing between painted brush
// segments. Zero paints every pointer move.
func WithStrokeInterval(d time.Duration) Option {
	return func(o *options) {
		o.strokeInterval = max(d, 0)
	}
}

// WithOnChange registers a callback run after every state change with a
// copy of the new state. It runs with the editor locked and must not call
// back into the Editor.
func WithOnChange(fn func(scene.State)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}
