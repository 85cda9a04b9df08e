package brush

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/imgedit"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936

// Engine owns the blur mask surface.
//
// The surface is premultiplied RGBA. Add strokes paint white and remove
// strokes paint black, both source-over, so the premultiplied luminance of
// the surface is the blur coverage.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	surface *imgedit.Pixmap
	raster  *vector.Rasterizer
}

// NewEngine creates an engine with a transparent mask of the given size.
func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.resize(width, height)
	return e
}

// Resize replaces the mask with a transparent one of the given size.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resize(width, height)
}

func (e *Engine) resize(width, height int) {
	e.surface = imgedit.NewPixmap(width, height)
	e.raster = vector.NewRasterizer(e.surface.Width(), e.surface.Height())
	e.raster.DrawOp = draw.Over
}

// Clear makes the whole mask transparent without changing its size.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surface.Clear(imgedit.Transparent)
}

// Size returns the mask dimensions.
func (e *Engine) Size() (width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface.Width(), e.surface.Height()
}

// Empty reports whether nothing is painted.
func (e *Engine) Empty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.surface.Data() {
		if v != 0 {
			return false
		}
	}
	return true
}

// PaintStroke draws a round-capped segment of width size from one source
// point to another. Intensity in [0, 100] is the stroke alpha.
// A zero-length segment paints a dot.
func (e *Engine) PaintStroke(from, to imgedit.Point, size, intensity float64, mode Mode) {
	if size <= 0 {
		size = 1
	}
	a := uint8(math.Round(min(max(intensity, 0), 100) / 100 * 255))
	if a == 0 {
		return
	}
	paint := color.NRGBA{R: 255, G: 255, B: 255, A: a}
	if mode == RemoveBlur {
		paint = color.NRGBA{A: a}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.surface.Empty() {
		return
	}
	z := e.raster
	z.Reset(e.surface.Width(), e.surface.Height())
	z.DrawOp = draw.Over
	capsule(z, from, to, size/2)
	z.Draw(e.surface.RGBA(), e.surface.Bounds(), image.NewUniform(paint), image.Point{})
}

// Stencil returns a snapshot of the blur coverage.
func (e *Engine) Stencil() *imgedit.Mask {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := imgedit.NewMask(e.surface.Width(), e.surface.Height())
	src, dst := e.surface.Data(), m.Data()
	for i := range dst {
		p := src[i*4:]
		dst[i] = uint8((299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2]) + 500) / 1000)
	}
	return m
}

// capsule adds the outline of a thick round-capped segment to z.
func capsule(z *vector.Rasterizer, from, to imgedit.Point, r float64) {
	d := to.Sub(from)
	if d.Length() == 0 {
		circle(z, from, r)
		return
	}
	u := d.Normalize().Mul(r)
	n := u.Perp()

	moveTo(z, from.Add(n))
	lineTo(z, to.Add(n))
	arc(z, to, n, u)
	arc(z, to, u, n.Mul(-1))
	lineTo(z, from.Sub(n))
	arc(z, from, n.Mul(-1), u.Mul(-1))
	arc(z, from, u.Mul(-1), n)
	z.ClosePath()
}

func circle(z *vector.Rasterizer, c imgedit.Point, r float64) {
	x, y := imgedit.Pt(r, 0), imgedit.Pt(0, r)
	moveTo(z, c.Add(x))
	arc(z, c, x, y)
	arc(z, c, y, x.Mul(-1))
	arc(z, c, x.Mul(-1), y.Mul(-1))
	arc(z, c, y.Mul(-1), x)
	z.ClosePath()
}

// arc appends a quarter circle around c from c+a to c+b. a and b must be
// perpendicular and of equal length.
func arc(z *vector.Rasterizer, c, a, b imgedit.Point) {
	c1 := c.Add(a).Add(b.Mul(kappa))
	c2 := c.Add(b).Add(a.Mul(kappa))
	end := c.Add(b)
	z.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(end.X), float32(end.Y))
}

func moveTo(z *vector.Rasterizer, p imgedit.Point) { z.MoveTo(float32(p.X), float32(p.Y)) }
func lineTo(z *vector.Rasterizer, p imgedit.Point) { z.LineTo(float32(p.X), float32(p.Y)) }
