package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/scene"
)

// Export errors.
var (
	// ErrNoCrop is returned when exporting a crop with no crop region set.
	ErrNoCrop = errors.New("render: no crop region")

	// ErrTarget is returned for an unknown export target.
	ErrTarget = errors.New("render: unknown export target")
)

// Target selects the output of [Compositor.Export]: a [CropTarget] or a
// [DownloadTarget].
type Target interface {
	display() geometry.Size
}

// CropTarget exports the pending crop region at canvas resolution. The
// output becomes the next source image.
//
// DisplayWidth and DisplayHeight are the on-screen size of the canvas that
// layer positions were measured against; zero means the canvas size.
type CropTarget struct {
	DisplayWidth, DisplayHeight float64
}

func (t CropTarget) display() geometry.Size {
	return geometry.Size{Width: t.DisplayWidth, Height: t.DisplayHeight}
}

// DownloadTarget exports the whole canvas at its backing resolution.
// Layer positions and font sizes are scaled from the display size to the
// backing size; zero display dimensions mean no scaling.
type DownloadTarget struct {
	DisplayWidth, DisplayHeight float64
}

func (t DownloadTarget) display() geometry.Size {
	return geometry.Size{Width: t.DisplayWidth, Height: t.DisplayHeight}
}

// Export renders st into one flattened pixmap: the processed image, then
// every overlay in list order, then every text layer.
//
// Overlay images are decoded concurrently; all of them finish before any
// text is drawn. An overlay that fails to decode is skipped with a
// warning. Export fails if the source image cannot be decoded or ctx ends.
func (c *Compositor) Export(ctx context.Context, st scene.State, stencil *imgedit.Mask, target Target) (*imgedit.Pixmap, error) {
	start := time.Now()

	var origin image.Point
	switch target.(type) {
	case CropTarget:
		if !st.Crop.Active() {
			return nil, ErrNoCrop
		}
		origin = st.Crop.Rect().Min
	case DownloadTarget:
	default:
		return nil, fmt.Errorf("%w: %T", ErrTarget, target)
	}

	// Start the source decode so it overlaps with the overlays.
	c.loader.Load(st.Source)
	overlays, err := c.decodeOverlays(ctx, st.Overlays)
	if err != nil {
		return nil, err
	}

	canvas, tr, err := c.base(ctx, st, stencil)
	if err != nil {
		return nil, err
	}
	out := canvas
	if _, ok := target.(CropTarget); ok {
		out = canvas.SubPixmap(st.Crop.Rect())
	}

	sx, sy := layerScale(target.display(), tr.Canvas)
	place := func(x, y float64) (float64, float64) {
		return x*sx - float64(origin.X), y*sy - float64(origin.Y)
	}

	for i, o := range st.Overlays {
		img := overlays[i]
		if img == nil {
			continue
		}
		x, y := place(o.X, o.Y)
		drawOverlay(out, img, x, y, o.Width*sx, o.Height*sy, o.Opacity)
	}
	for _, t := range st.Texts {
		col, ok := imgedit.ParseColor(t.Color)
		if !ok {
			imgedit.Logger().Warn("render: bad text color, using black", "id", t.ID, "color", t.Color)
			col = imgedit.Black
		}
		style := t.Style()
		style.Size *= sy
		x, y := place(t.X, t.Y)
		c.fonts.Draw(out.RGBA(), t.Text, x, y, style, col.Color(), t.Opacity)
	}

	imgedit.Logger().Info("render: export",
		"target", fmt.Sprintf("%T", target),
		"size", [2]int{out.Width(), out.Height()},
		"overlays", len(st.Overlays),
		"texts", len(st.Texts),
		"elapsed", time.Since(start))
	return out, nil
}

// decodeOverlays loads every overlay image concurrently. The result is
// indexed like overlays; failed decodes leave a nil entry.
func (c *Compositor) decodeOverlays(ctx context.Context, overlays []scene.OverlayLayer) ([]*imgedit.Pixmap, error) {
	imgs := make([]*imgedit.Pixmap, len(overlays))
	g, gctx := errgroup.WithContext(ctx)
	for i, o := range overlays {
		g.Go(func() error {
			img, err := c.loader.Load(o.Image).Wait(gctx)
			switch {
			case err == nil:
				imgs[i] = img
			case gctx.Err() != nil:
				return gctx.Err()
			default:
				imgedit.Logger().Warn("render: overlay skipped", "id", o.ID, "err", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: overlays: %w", err)
	}
	return imgs, nil
}

// drawOverlay scales img into the w x h box at (x, y) and draws it over
// dst with the given opacity.
func drawOverlay(dst, img *imgedit.Pixmap, x, y, w, h, opacity float64) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	if r.Empty() || opacity <= 0 || !r.Overlaps(dst.Bounds()) {
		return
	}
	scaled := imgedit.NewPixmap(r.Dx(), r.Dy())
	draw.CatmullRom.Scale(scaled.RGBA(), scaled.Bounds(), img.RGBA(), img.Bounds(), draw.Src, nil)

	a := uint8(math.Round(min(opacity, 1) * 255))
	draw.DrawMask(dst.RGBA(), r, scaled.RGBA(), image.Point{},
		image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Over)
}

// layerScale returns the factors from display to canvas pixels.
func layerScale(display, canvas geometry.Size) (sx, sy float64) {
	p := geometry.DisplayToCanvas(imgedit.Pt(1, 1), display, canvas)
	return p.X, p.Y
}
