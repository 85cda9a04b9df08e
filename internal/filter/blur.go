package filter

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/parallel"
)

// BlurFilter applies separable Gaussian blur to an image.
// The separable algorithm processes horizontal and vertical passes
// independently, achieving O(w*h*(rx+ry)) complexity instead of O(w*h*rx*ry).
//
// Radii are Gaussian standard deviations in pixels, the unit of the CSS
// blur() function. Pixels outside the blurred region are sampled by edge
// extension, so opaque images keep opaque borders.
type BlurFilter struct {
	// RadiusX is the horizontal blur radius in pixels.
	RadiusX float64

	// RadiusY is the vertical blur radius in pixels.
	RadiusY float64
}

// NewBlurFilter creates a new blur filter with equal radius in both directions.
func NewBlurFilter(radius float64) *BlurFilter {
	return &BlurFilter{
		RadiusX: radius,
		RadiusY: radius,
	}
}

// Apply applies the Gaussian blur to src and writes the result to dst.
// The operation uses a two-pass separable algorithm:
//  1. Horizontal pass: convolve each row with 1D kernel
//  2. Vertical pass: convolve each column with 1D kernel
func (f *BlurFilter) Apply(src, dst *imgedit.Pixmap, bounds image.Rectangle) {
	if src == nil || dst == nil {
		return
	}
	if f.RadiusX <= 0 && f.RadiusY <= 0 {
		copyRegion(src, dst, bounds)
		return
	}

	r := clip(src, dst, bounds)
	if r.Empty() {
		return
	}
	width, height := r.Dx(), r.Dy()

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	kernelX := CachedGaussianKernel(f.RadiusX)
	kernelY := CachedGaussianKernel(f.RadiusY)

	parallel.Rows(height, func(y0, y1 int) {
		blurHorizontal(src, temp, r.Min.X, r.Min.Y, width, y0, y1, kernelX)
	})
	parallel.Rows(height, func(y0, y1 int) {
		blurVertical(temp, dst, r.Min.X, r.Min.Y, width, height, y0, y1, kernelY)
	})
}

// ExpandBounds returns the expanded bounds after blur application.
// Blur expands the output region by three standard deviations.
func (f *BlurFilter) ExpandBounds(input image.Rectangle) image.Rectangle {
	ex := int(math.Ceil(f.RadiusX * 3))
	ey := int(math.Ceil(f.RadiusY * 3))
	return image.Rect(input.Min.X-ex, input.Min.Y-ey, input.Max.X+ex, input.Max.Y+ey)
}

// blurHorizontal convolves rows [y0, y1) of the region into temp.
func blurHorizontal(src *imgedit.Pixmap, temp []float32, minX, minY, width, y0, y1 int, kernel []float32) {
	half := len(kernel) / 2
	srcWidth := src.Width()
	srcData := src.Data()

	for y := y0; y < y1; y++ {
		row := (minY + y) * srcWidth
		for x := range width {
			srcX := minX + x
			var r, g, b, a float32
			for k, weight := range kernel {
				kx := min(max(srcX+k-half, 0), srcWidth-1)
				i := (row + kx) * 4
				r += float32(srcData[i+0]) * weight
				g += float32(srcData[i+1]) * weight
				b += float32(srcData[i+2]) * weight
				a += float32(srcData[i+3]) * weight
			}
			t := (y*width + x) * 4
			temp[t+0] = r
			temp[t+1] = g
			temp[t+2] = b
			temp[t+3] = a
		}
	}
}

// blurVertical convolves columns of temp and writes rows [y0, y1) to dst.
func blurVertical(temp []float32, dst *imgedit.Pixmap, minX, minY, width, height, y0, y1 int, kernel []float32) {
	half := len(kernel) / 2
	dstData := dst.Data()
	dstWidth := dst.Width()

	for y := y0; y < y1; y++ {
		for x := range width {
			var r, g, b, a float32
			for k, weight := range kernel {
				ky := min(max(y+k-half, 0), height-1)
				t := (ky*width + x) * 4
				r += temp[t+0] * weight
				g += temp[t+1] * weight
				b += temp[t+2] * weight
				a += temp[t+3] * weight
			}
			i := ((minY+y)*dstWidth + minX + x) * 4
			// Premultiplied channels must not exceed alpha after rounding.
			av := clampUint8(a)
			dstData[i+0] = min(clampUint8(r), av)
			dstData[i+1] = min(clampUint8(g), av)
			dstData[i+2] = min(clampUint8(b), av)
			dstData[i+3] = av
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 1024*1024*4)}
	},
}

// getTempBuffer retrieves a temporary buffer with at least width*height*4
// elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
