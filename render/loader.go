package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"sync"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/cache"
	"github.com/gogpu/imgedit/internal/parallel"
	"github.com/gogpu/imgedit/scene"
)

// Loader errors.
var (
	// ErrDecode is returned when image bytes cannot be decoded.
	ErrDecode = errors.New("render: decode failed")

	// ErrNoImage is returned when loading an empty image reference.
	ErrNoImage = errors.New("render: no image")

	// ErrLoaderClosed is returned by loads started after Close.
	ErrLoaderClosed = errors.New("render: loader closed")
)

// DefaultCacheSize is the number of decoded images a Loader keeps.
const DefaultCacheSize = 16

// Future is the pending result of a decode.
type Future struct {
	done chan struct{}
	img  *imgedit.Pixmap
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolved(img *imgedit.Pixmap, err error) *Future {
	f := newFuture()
	f.resolve(img, err)
	return f
}

func (f *Future) resolve(img *imgedit.Pixmap, err error) {
	f.img, f.err = img, err
	close(f.done)
}

// Done returns a channel closed when the decode has finished.
func (f *Future) Done() <-chan struct{} { return f.done }

// Ready reports whether the decode has finished.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the decode finishes or ctx is done. A ctx that is
// already done wins over a finished decode.
//
// The returned pixmap is shared with the loader cache and must not be
// modified.
func (f *Future) Wait(ctx context.Context) (*imgedit.Pixmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Then calls fn from a new goroutine once the decode has finished.
func (f *Future) Then(fn func(*imgedit.Pixmap, error)) {
	go func() {
		<-f.done
		fn(f.img, f.err)
	}()
}

// Loader decodes image references in the background and caches the
// results by [scene.ImageRef.ID]. Concurrent loads of the same image share
// one decode.
//
// Loader is safe for concurrent use.
type Loader struct {
	cache *cache.Cache[string, *imgedit.Pixmap]
	pool  *parallel.Pool

	mu      sync.Mutex
	pending map[string]*Future
}

type loaderConfig struct {
	cacheSize int
	workers   int
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

// WithCacheSize sets how many decoded images are kept. 0 means unlimited.
func WithCacheSize(n int) LoaderOption {
	return func(c *loaderConfig) {
		c.cacheSize = max(n, 0)
	}
}

// WithWorkers sets the number of decode goroutines.
// 0 or negative uses GOMAXPROCS.
func WithWorkers(n int) LoaderOption {
	return func(c *loaderConfig) {
		c.workers = n
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := loaderConfig{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader{
		cache:   cache.New[string, *imgedit.Pixmap](cfg.cacheSize),
		pool:    parallel.NewPool(cfg.workers),
		pending: make(map[string]*Future),
	}
}

// Load starts decoding ref and returns immediately.
func (l *Loader) Load(ref scene.ImageRef) *Future {
	if ref.IsZero() {
		return resolved(nil, ErrNoImage)
	}
	if img, ok := l.cache.Get(ref.ID); ok {
		return resolved(img, nil)
	}

	l.mu.Lock()
	if f, ok := l.pending[ref.ID]; ok {
		l.mu.Unlock()
		return f
	}
	f := newFuture()
	l.pending[ref.ID] = f
	l.mu.Unlock()

	if !l.pool.Submit(func() { l.decode(ref, f) }) {
		l.finish(ref.ID, f, nil, ErrLoaderClosed)
	}
	return f
}

func (l *Loader) decode(ref scene.ImageRef, f *Future) {
	img, format, err := Decode(ref.Data)
	if err != nil {
		imgedit.Logger().Warn("render: image decode failed", "id", short(ref.ID), "mime", ref.MIME, "err", err)
		l.finish(ref.ID, f, nil, err)
		return
	}
	l.cache.Set(ref.ID, img)
	imgedit.Logger().Debug("render: image decoded",
		"id", short(ref.ID),
		"format", format,
		"size", [2]int{img.Width(), img.Height()})
	l.finish(ref.ID, f, img, nil)
}

func (l *Loader) finish(id string, f *Future, img *imgedit.Pixmap, err error) {
	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()
	f.resolve(img, err)
}

// Cached returns the decoded image for ref if it is in the cache.
func (l *Loader) Cached(ref scene.ImageRef) (*imgedit.Pixmap, bool) {
	if ref.IsZero() {
		return nil, false
	}
	return l.cache.Get(ref.ID)
}

// Prime stores an already decoded image for ref so later loads skip the
// decode. img must not be modified afterwards.
func (l *Loader) Prime(ref scene.ImageRef, img *imgedit.Pixmap) {
	if ref.IsZero() || img == nil {
		return
	}
	l.cache.Set(ref.ID, img)
}

// Forget drops ref from the cache.
func (l *Loader) Forget(ref scene.ImageRef) {
	l.cache.Delete(ref.ID)
}

// Len returns the number of cached images.
func (l *Loader) Len() int { return l.cache.Len() }

// Close waits for running decodes and stops the workers. Loads started
// afterwards fail with [ErrLoaderClosed] unless already cached.
func (l *Loader) Close() {
	l.pool.Close()
}

// Decode decodes PNG, JPEG, GIF, WebP, BMP or TIFF bytes into a pixmap and
// reports the format name.
func Decode(data []byte) (*imgedit.Pixmap, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty data", ErrDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return imgedit.FromImage(img), format, nil
}

// DecodeConfig reads the dimensions and format of encoded image bytes
// without decoding the pixels.
func DecodeConfig(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

func short(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
