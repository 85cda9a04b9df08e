package filter

import (
	"image"
	"math"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/parallel"
)

// ColorMatrixFilter applies a 4x5 color transformation matrix to an image.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values.
// Color values are straight-alpha in [0, 255] during transformation,
// then clamped back to valid range.
type ColorMatrixFilter struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float32
}

// Luminance coefficients used by the Filter Effects color matrices.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// NewColorMatrixFilter creates a color matrix filter with the given matrix.
func NewColorMatrixFilter(matrix [20]float32) *ColorMatrixFilter {
	return &ColorMatrixFilter{Matrix: matrix}
}

// NewIdentityColorMatrix creates a color matrix filter that passes through unchanged.
func NewIdentityColorMatrix() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			1, 0, 0, 0, 0, // R
			0, 1, 0, 0, 0, // G
			0, 0, 1, 0, 0, // B
			0, 0, 0, 1, 0, // A
		},
	}
}

// NewBrightnessFilter creates a linear brightness filter.
// amount: 0 = black, 1 = unchanged, 2 = twice as bright. Negative amounts
// are treated as 0.
func NewBrightnessFilter(amount float64) *ColorMatrixFilter {
	a := float32(max(amount, 0))
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			a, 0, 0, 0, 0,
			0, a, 0, 0, 0,
			0, 0, a, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewContrastFilter creates a filter that scales color around mid-gray.
// amount: 0 = flat gray, 1 = unchanged, 2 = high contrast.
func NewContrastFilter(amount float64) *ColorMatrixFilter {
	a := float32(max(amount, 0))
	offset := 255 * (0.5 - 0.5*a)
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			a, 0, 0, 0, offset,
			0, a, 0, 0, offset,
			0, 0, a, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSaturateFilter creates a saturation filter.
// amount: 0 = grayscale, 1 = unchanged, >1 = oversaturated.
func NewSaturateFilter(amount float64) *ColorMatrixFilter {
	s := float32(max(amount, 0))
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			lumR + (1-lumR)*s, lumG - lumG*s, lumB - lumB*s, 0, 0,
			lumR - lumR*s, lumG + (1-lumG)*s, lumB - lumB*s, 0, 0,
			lumR - lumR*s, lumG - lumG*s, lumB + (1-lumB)*s, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewHueRotateFilter creates a filter that rotates hue by degrees.
func NewHueRotateFilter(degrees float64) *ColorMatrixFilter {
	sin64, cos64 := math.Sincos(degrees * math.Pi / 180)
	cos, sin := float32(cos64), float32(sin64)
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0, 0,
			lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0, 0,
			lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSepiaFilter creates a sepia filter. amount is clamped to [0, 1];
// 1 is full sepia.
func NewSepiaFilter(amount float64) *ColorMatrixFilter {
	k := float32(1 - min(max(amount, 0), 1))
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k, 0, 0,
			0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k, 0, 0,
			0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscaleFilter creates a grayscale filter using Rec. 709 weights.
// amount is clamped to [0, 1]; 1 is fully gray.
func NewGrayscaleFilter(amount float64) *ColorMatrixFilter {
	k := float32(1 - min(max(amount, 0), 1))
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			0.2126 + 0.7874*k, 0.7152 - 0.7152*k, 0.0722 - 0.0722*k, 0, 0,
			0.2126 - 0.2126*k, 0.7152 + 0.2848*k, 0.0722 - 0.0722*k, 0, 0,
			0.2126 - 0.2126*k, 0.7152 - 0.7152*k, 0.0722 + 0.9278*k, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvertFilter creates a filter that inverts colors. amount is clamped
// to [0, 1]; 1 is a full inversion.
func NewInvertFilter(amount float64) *ColorMatrixFilter {
	a := float32(min(max(amount, 0), 1))
	slope := 1 - 2*a
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			slope, 0, 0, 0, 255 * a,
			0, slope, 0, 0, 255 * a,
			0, 0, slope, 0, 255 * a,
			0, 0, 0, 1, 0,
		},
	}
}

// NewOpacityFilter creates a filter that multiplies alpha by the given factor.
// factor: 0.0 = fully transparent, 1.0 = unchanged
func NewOpacityFilter(factor float64) *ColorMatrixFilter {
	f := float32(min(max(factor, 0), 1))
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, f, 0,
		},
	}
}

// Apply applies the color matrix transformation to the image.
func (f *ColorMatrixFilter) Apply(src, dst *imgedit.Pixmap, bounds image.Rectangle) {
	if src == nil || dst == nil {
		return
	}
	r := clip(src, dst, bounds)
	if r.Empty() {
		return
	}

	srcData := src.Data()
	dstData := dst.Data()
	srcWidth := src.Width()
	dstWidth := dst.Width()
	m := &f.Matrix

	parallel.Rows(r.Dy(), func(y0, y1 int) {
		for y := r.Min.Y + y0; y < r.Min.Y+y1; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				srcIdx := (y*srcWidth + x) * 4
				dstIdx := (y*dstWidth + x) * 4

				pr := float32(srcData[srcIdx+0])
				pg := float32(srcData[srcIdx+1])
				pb := float32(srcData[srcIdx+2])
				a := float32(srcData[srcIdx+3])

				// The matrix coefficients assume straight-alpha color values.
				var cr, cg, cb float32
				if a > 0 {
					cr = pr * 255 / a
					cg = pg * 255 / a
					cb = pb * 255 / a
				}

				newR := clamp255f(m[0]*cr + m[1]*cg + m[2]*cb + m[3]*a + m[4])
				newG := clamp255f(m[5]*cr + m[6]*cg + m[7]*cb + m[8]*a + m[9])
				newB := clamp255f(m[10]*cr + m[11]*cg + m[12]*cb + m[13]*a + m[14])
				newA := clamp255f(m[15]*cr + m[16]*cg + m[17]*cb + m[18]*a + m[19])

				factor := newA / 255
				dstData[dstIdx+0] = clampUint8(newR * factor)
				dstData[dstIdx+1] = clampUint8(newG * factor)
				dstData[dstIdx+2] = clampUint8(newB * factor)
				dstData[dstIdx+3] = clampUint8(newA)
			}
		}
	})
}

// ExpandBounds returns the input bounds unchanged (color matrix doesn't expand).
func (f *ColorMatrixFilter) ExpandBounds(input image.Rectangle) image.Rectangle {
	return input
}

// clamp255f clamps a straight-alpha channel before re-premultiplication.
func clamp255f(x float32) float32 {
	return min(max(x, 0), 255)
}
