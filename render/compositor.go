package render

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/duotone"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/scene"
	"github.com/gogpu/imgedit/shadow"
	"github.com/gogpu/imgedit/text"
)

// Crop mask defaults.
var (
	DefaultCropMaskColor   = imgedit.RGBA{A: 0.5}
	DefaultCropBorderColor = imgedit.RGB(0x8B/255.0, 0x5C/255.0, 0xF6/255.0)
)

// DefaultCropBorderWidth is the crop rectangle outline width in pixels.
const DefaultCropBorderWidth = 2

// Compositor renders edit states. It holds no per-render state and is
// safe for concurrent use.
type Compositor struct {
	loader      *Loader
	fonts       *text.FontSet
	maskColor   imgedit.RGBA
	borderColor imgedit.RGBA
	borderWidth float64
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLoader sets the image loader. By default the compositor creates
// its own.
func WithLoader(l *Loader) Option {
	return func(c *Compositor) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithFonts sets the font set used to draw text layers.
func WithFonts(fs *text.FontSet) Option {
	return func(c *Compositor) {
		if fs != nil {
			c.fonts = fs
		}
	}
}

// WithCropMaskColor sets the color drawn outside the crop rectangle while
// the crop tool is open.
func WithCropMaskColor(col imgedit.RGBA) Option {
	return func(c *Compositor) {
		c.maskColor = col
	}
}

// WithCropBorder sets the color and width of the crop rectangle outline.
func WithCropBorder(col imgedit.RGBA, width float64) Option {
	return func(c *Compositor) {
		c.borderColor = col
		c.borderWidth = max(width, 0)
	}
}

// NewCompositor creates a compositor.
func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{
		maskColor:   DefaultCropMaskColor,
		borderColor: DefaultCropBorderColor,
		borderWidth: DefaultCropBorderWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loader == nil {
		c.loader = NewLoader()
	}
	if c.fonts == nil {
		c.fonts = text.NewFontSet()
	}
	return c
}

// Loader returns the compositor's image loader.
func (c *Compositor) Loader() *Loader { return c.loader }

// Fonts returns the compositor's font set.
func (c *Compositor) Fonts() *text.FontSet { return c.fonts }

// Subject runs the per-pixel stages over src in source coordinates: the
// filter chain, then duotone, then the brush blur when the brush is
// enabled. stencil may be nil. src is not modified.
func Subject(src *imgedit.Pixmap, st scene.State, stencil *imgedit.Mask) *imgedit.Pixmap {
	ch := adjust.Compile(st.Tone, st.Color)
	if len(ch) > 0 {
		imgedit.Logger().Debug("render: filter chain", "knobs", ch.Knobs(), "stages", len(ch))
	}
	out := ch.Apply(src)
	if st.Duotone != nil {
		out = duotone.Apply(out, *st.Duotone)
	}
	if st.Brush.Enabled && stencil != nil {
		out = brush.Composite(out, stencil, st.Brush.Intensity)
	}
	return out
}

// Canvas places the processed subject on a canvas sized for its rotation,
// perspective and shadow, and paints the shadow under it.
func Canvas(subject *imgedit.Pixmap, st scene.State) (*imgedit.Pixmap, geometry.Transform) {
	tr := geometry.NewTransform(float64(subject.Width()), float64(subject.Height()), st.Crop, st.Shadow.Bleed())
	w, h := tr.Canvas.Pixels()

	var layer *imgedit.Pixmap
	if w == subject.Width() && h == subject.Height() && tr.Rotation == 0 && tr.HScale == 1 && tr.VScale == 1 {
		layer = subject
	} else {
		layer = imgedit.NewPixmap(w, h)
		draw.BiLinear.Transform(layer.RGBA(), tr.Aff3(), subject.RGBA(), subject.Bounds(), draw.Over, nil)
	}

	if st.Shadow.Visible() {
		layer = shadow.Apply(layer, st.Shadow)
	}
	return layer, tr
}

// base decodes the source image and renders the canvas shared by preview
// and export.
func (c *Compositor) base(ctx context.Context, st scene.State, stencil *imgedit.Mask) (*imgedit.Pixmap, geometry.Transform, error) {
	f := c.loader.Load(st.Source)
	if !f.Ready() {
		imgedit.Logger().Debug("render: waiting for source decode", "id", short(st.Source.ID))
	}
	src, err := f.Wait(ctx)
	if err != nil {
		return nil, geometry.Transform{}, fmt.Errorf("render: source image: %w", err)
	}
	canvas, tr := Canvas(Subject(src, st, stencil), st)
	return canvas, tr, nil
}

// ElementKind tells overlay and text elements apart.
type ElementKind string

// Element kinds.
const (
	ElementOverlay ElementKind = "overlay"
	ElementText    ElementKind = "text"
)

// Element is a layer the caller displays above the preview canvas.
type Element struct {
	Kind    ElementKind
	ID      int64
	Box     scene.Box
	Opacity float64

	// Text elements.
	Text  string
	Font  string
	Color string

	// Overlay elements.
	Image scene.ImageRef
}

// Frame is a rendered preview.
type Frame struct {
	Canvas    *imgedit.Pixmap
	Transform geometry.Transform
	// Filter is the CSS form of the filter chain that was applied.
	Filter string
	// Elements lists overlays then text layers, in drawing order.
	Elements []Element
}

// Preview renders st for on-screen display. Text and overlay layers are
// not rasterized; they are returned as elements. With tool set to the crop
// tool and a crop region set, everything outside the region is darkened
// and the region is outlined.
//
// stencil is read, never modified. When the source image cannot be decoded
// Preview returns an error wrapping [ErrDecode]; callers keep showing the
// previous frame.
func (c *Compositor) Preview(ctx context.Context, st scene.State, stencil *imgedit.Mask, tool scene.Tool) (*Frame, error) {
	start := time.Now()
	canvas, tr, err := c.base(ctx, st, stencil)
	if err != nil {
		imgedit.Logger().Warn("render: preview skipped", "err", err)
		return nil, err
	}
	if tool == scene.ToolCrop && st.Crop.Active() {
		c.drawCropMask(canvas, st.Crop.Rect())
	}

	f := &Frame{
		Canvas:    canvas,
		Transform: tr,
		Filter:    adjust.Compile(st.Tone, st.Color).String(),
		Elements:  elements(st),
	}
	imgedit.Logger().Debug("render: preview",
		"size", [2]int{canvas.Width(), canvas.Height()},
		"filter", f.Filter,
		"elements", len(f.Elements),
		"elapsed", time.Since(start))
	return f, nil
}

func elements(st scene.State) []Element {
	els := make([]Element, 0, len(st.Overlays)+len(st.Texts))
	for _, o := range st.Overlays {
		els = append(els, Element{
			Kind:    ElementOverlay,
			ID:      o.ID,
			Box:     scene.Box{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height},
			Opacity: o.Opacity,
			Image:   o.Image,
		})
	}
	for _, t := range st.Texts {
		els = append(els, Element{
			Kind:    ElementText,
			ID:      t.ID,
			Box:     scene.Box{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height},
			Opacity: t.Opacity,
			Text:    t.Text,
			Font:    t.Style().Font(),
			Color:   t.Color,
		})
	}
	return els
}

// drawCropMask darkens the canvas outside r and strokes r's border
// centered on its edges.
func (c *Compositor) drawCropMask(canvas *imgedit.Pixmap, r image.Rectangle) {
	shade := imgedit.NewPixmap(canvas.Width(), canvas.Height())
	shade.Clear(c.maskColor)
	shade.ClearRect(r)
	canvas.DrawOver(shade, 0, 0)

	if c.borderWidth == 0 || r.Empty() {
		return
	}
	hw := float32(c.borderWidth / 2)
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)

	z := vector.NewRasterizer(canvas.Width(), canvas.Height())
	// Outer edge clockwise, inner edge counter-clockwise: the ring
	// between them has nonzero winding.
	z.MoveTo(x0-hw, y0-hw)
	z.LineTo(x1+hw, y0-hw)
	z.LineTo(x1+hw, y1+hw)
	z.LineTo(x0-hw, y1+hw)
	z.ClosePath()
	if x1-x0 > 2*hw && y1-y0 > 2*hw {
		z.MoveTo(x0+hw, y0+hw)
		z.LineTo(x0+hw, y1-hw)
		z.LineTo(x1-hw, y1-hw)
		z.LineTo(x1-hw, y0+hw)
		z.ClosePath()
	}
	z.Draw(canvas.RGBA(), canvas.Bounds(), image.NewUniform(c.borderColor.Color()), image.Point{})
}
