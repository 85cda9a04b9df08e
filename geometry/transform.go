package geometry

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/imgedit"
)

// ErrSingular is returned when a perspective scale of zero collapses the
// image and the transform has no inverse.
var ErrSingular = errors.New("geometry: transform is not invertible")

// Size is a width and height in pixels, possibly fractional.
type Size struct {
	Width, Height float64
}

// Pixels returns the size truncated to whole pixels, at least 1x1.
func (s Size) Pixels() (w, h int) {
	return max(int(s.Width), 1), max(int(s.Height), 1)
}

// Bounds returns the axis-aligned bounding box of a srcW x srcH rectangle
// rotated by rotation degrees, padded by bleed on every side.
func Bounds(srcW, srcH, rotation, bleed float64) Size {
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return Size{
		Width:  srcW*cos + srcH*sin + 2*bleed,
		Height: srcW*sin + srcH*cos + 2*bleed,
	}
}

// CanvasBounds returns [Bounds] multiplied by the perspective scales of c.
func CanvasBounds(srcW, srcH float64, c Crop, bleed float64) Size {
	b := Bounds(srcW, srcH, c.Rotation, bleed)
	h, v := c.Scales()
	return Size{Width: b.Width * h, Height: b.Height * v}
}

// Transform maps source pixels onto the canvas.
type Transform struct {
	// Rotation in degrees.
	Rotation       float64
	HScale, VScale float64
	Source         Size
	// Canvas is the backing pixel size of the canvas.
	Canvas Size
}

// NewTransform builds the transform for a srcW x srcH image drawn with the
// rotation and perspective of c, on a canvas padded by bleed. The canvas is
// sized in whole pixels.
func NewTransform(srcW, srcH float64, c Crop, bleed float64) Transform {
	h, v := c.Scales()
	w, ht := CanvasBounds(srcW, srcH, c, bleed).Pixels()
	return Transform{
		Rotation: c.Rotation,
		HScale:   h,
		VScale:   v,
		Source:   Size{Width: srcW, Height: srcH},
		Canvas:   Size{Width: float64(w), Height: float64(ht)},
	}
}

// Aff3 returns the source-to-canvas matrix in the row-major layout used by
// golang.org/x/image/draw.
func (t Transform) Aff3() f64.Aff3 {
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	a, b := t.HScale*cos, -t.HScale*sin
	d, e := t.VScale*sin, t.VScale*cos
	scx, scy := t.Source.Width/2, t.Source.Height/2
	ccx, ccy := t.Canvas.Width/2, t.Canvas.Height/2
	return f64.Aff3{
		a, b, ccx - (a*scx + b*scy),
		d, e, ccy - (d*scx + e*scy),
	}
}

// Apply maps a source point to the canvas.
func (t Transform) Apply(p imgedit.Point) imgedit.Point {
	m := t.Aff3()
	return imgedit.Pt(m[0]*p.X+m[1]*p.Y+m[2], m[3]*p.X+m[4]*p.Y+m[5])
}

// Invert maps a canvas point back to the source through the numeric
// inverse of [Transform.Matrix].
func (t Transform) Invert(p imgedit.Point) (imgedit.Point, error) {
	m, err := t.InverseAff3()
	if err != nil {
		return imgedit.Point{}, err
	}
	return imgedit.Pt(m[0]*p.X+m[1]*p.Y+m[2], m[3]*p.X+m[4]*p.Y+m[5]), nil
}

// Matrix returns the forward transform as a 3x3 homogeneous matrix.
func (t Transform) Matrix() *mat.Dense {
	m := t.Aff3()
	return mat.NewDense(3, 3, []float64{
		m[0], m[1], m[2],
		m[3], m[4], m[5],
		0, 0, 1,
	})
}

// InverseAff3 returns the canvas-to-source matrix. A zero determinant
// yields [ErrSingular].
func (t Transform) InverseAff3() (f64.Aff3, error) {
	fwd := t.Matrix()
	if mat.Det(fwd) == 0 {
		return f64.Aff3{}, ErrSingular
	}
	var inv mat.Dense
	if err := inv.Inverse(fwd); err != nil {
		return f64.Aff3{}, errors.Join(ErrSingular, err)
	}
	return f64.Aff3{
		inv.At(0, 0), inv.At(0, 1), inv.At(0, 2),
		inv.At(1, 0), inv.At(1, 1), inv.At(1, 2),
	}, nil
}

// ScreenToSource is the closed-form inverse of the canvas transform: it
// translates relative to the canvas center, undoes the perspective scale,
// rotates by -rotation and translates to the source origin.
//
// Both scales must be nonzero.
func ScreenToSource(p imgedit.Point, canvas Size, rotation, vScale, hScale, srcW, srcH float64) imgedit.Point {
	x := (p.X - canvas.Width/2) / hScale
	y := (p.Y - canvas.Height/2) / vScale
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	return imgedit.Pt(
		x*cos+y*sin+srcW/2,
		-x*sin+y*cos+srcH/2,
	)
}

// DisplayToCanvas converts a point on the displayed canvas to backing
// pixels, correcting for a display size that differs from the canvas size.
func DisplayToCanvas(p imgedit.Point, display, canvas Size) imgedit.Point {
	sx, sy := 1.0, 1.0
	if display.Width > 0 {
		sx = canvas.Width / display.Width
	}
	if display.Height > 0 {
		sy = canvas.Height / display.Height
	}
	return imgedit.Pt(p.X*sx, p.Y*sy)
}
