package filter

import (
	"image"
	"math"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/parallel"
)

// DropShadowFilter creates a drop shadow effect beneath an image.
// The filter extracts the alpha channel, blurs it, colorizes it,
// and composites it under the original image with an offset.
type DropShadowFilter struct {
	// OffsetX is the horizontal shadow offset in pixels.
	OffsetX float64

	// OffsetY is the vertical shadow offset in pixels.
	OffsetY float64

	// BlurRadius is the Gaussian standard deviation of the shadow in pixels.
	BlurRadius float64

	// Color is the shadow color; its alpha scales the shadow coverage.
	Color imgedit.RGBA
}

// NewDropShadowFilter creates a new drop shadow filter.
func NewDropShadowFilter(offsetX, offsetY, blurRadius float64, color imgedit.RGBA) *DropShadowFilter {
	return &DropShadowFilter{
		OffsetX:    offsetX,
		OffsetY:    offsetY,
		BlurRadius: blurRadius,
		Color:      color,
	}
}

// Apply applies the drop shadow filter.
// The algorithm:
//  1. Extract alpha channel from source, shifted by the offset
//  2. Apply Gaussian blur to alpha
//  3. Colorize with shadow color
//  4. Composite source over the shadow into dst
//
// Pixels of dst outside the expanded bounds are left untouched.
func (f *DropShadowFilter) Apply(src, dst *imgedit.Pixmap, bounds image.Rectangle) {
	if src == nil || dst == nil {
		return
	}

	r := f.ExpandBounds(bounds).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	width, height := r.Dx(), r.Dy()

	alpha := make([]float32, width*height)
	extractAlpha(src, alpha, r, int(math.Round(f.OffsetX)), int(math.Round(f.OffsetY)))

	if f.BlurRadius > 0 {
		blurred := make([]float32, width*height)
		blurAlphaChannel(alpha, blurred, width, height, f.BlurRadius)
		alpha = blurred
	}

	compositeShadow(src, dst, alpha, r, f.Color)
}

// ExpandBounds returns the expanded bounds after shadow application.
// Shadow expands by offset + blur extent on the offset side, blur extent
// elsewhere.
func (f *DropShadowFilter) ExpandBounds(input image.Rectangle) image.Rectangle {
	blur := int(math.Ceil(f.BlurRadius * 3))
	ox := int(math.Round(f.OffsetX))
	oy := int(math.Round(f.OffsetY))

	out := image.Rect(input.Min.X-blur, input.Min.Y-blur, input.Max.X+blur, input.Max.Y+blur)
	if ox < 0 {
		out.Min.X += ox
	} else {
		out.Max.X += ox
	}
	if oy < 0 {
		out.Min.Y += oy
	} else {
		out.Max.Y += oy
	}
	return out
}

// extractAlpha reads source alpha for region r, shifted by the offset.
func extractAlpha(src *imgedit.Pixmap, alpha []float32, r image.Rectangle, offsetX, offsetY int) {
	srcWidth := src.Width()
	srcHeight := src.Height()
	srcData := src.Data()
	width := r.Dx()

	for y := range r.Dy() {
		srcY := r.Min.Y + y - offsetY
		if srcY < 0 || srcY >= srcHeight {
			continue
		}
		for x := range width {
			srcX := r.Min.X + x - offsetX
			if srcX < 0 || srcX >= srcWidth {
				continue
			}
			alpha[y*width+x] = float32(srcData[(srcY*srcWidth+srcX)*4+3]) / 255.0
		}
	}
}

// blurAlphaChannel applies Gaussian blur to a single-channel alpha buffer.
// Samples outside the buffer read as 0.
func blurAlphaChannel(src, dst []float32, width, height int, radius float64) {
	kernel := CachedGaussianKernel(radius)
	half := len(kernel) / 2
	temp := make([]float32, width*height)

	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range width {
				var sum float32
				for k, w := range kernel {
					kx := x + k - half
					if kx < 0 || kx >= width {
						continue
					}
					sum += src[y*width+kx] * w
				}
				temp[y*width+x] = sum
			}
		}
	})

	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range width {
				var sum float32
				for k, w := range kernel {
					ky := y + k - half
					if ky < 0 || ky >= height {
						continue
					}
					sum += temp[ky*width+x] * w
				}
				dst[y*width+x] = sum
			}
		}
	})
}

// compositeShadow colorizes the shadow coverage and composites the source
// over it into dst.
func compositeShadow(src, dst *imgedit.Pixmap, shadowAlpha []float32, r image.Rectangle, color imgedit.RGBA) {
	srcWidth := src.Width()
	srcHeight := src.Height()
	srcData := src.Data()
	dstWidth := dst.Width()
	dstData := dst.Data()
	width := r.Dx()

	shadowR := float32(color.R * 255)
	shadowG := float32(color.G * 255)
	shadowB := float32(color.B * 255)
	shadowBaseA := float32(color.A)

	parallel.Rows(r.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dstY := r.Min.Y + y
			for x := range width {
				dstX := r.Min.X + x
				shadowA := min(shadowAlpha[y*width+x], 1) * shadowBaseA

				var srcR, srcG, srcB, srcA float32
				if dstX < srcWidth && dstY < srcHeight {
					i := (dstY*srcWidth + dstX) * 4
					srcR = float32(srcData[i+0])
					srcG = float32(srcData[i+1])
					srcB = float32(srcData[i+2])
					srcA = float32(srcData[i+3])
				}

				// Source over premultiplied shadow.
				inv := 1 - srcA/255
				d := (dstY*dstWidth + dstX) * 4
				dstData[d+0] = clampUint8(srcR + shadowR*shadowA*inv)
				dstData[d+1] = clampUint8(srcG + shadowG*shadowA*inv)
				dstData[d+2] = clampUint8(srcB + shadowB*shadowA*inv)
				dstData[d+3] = clampUint8(srcA + 255*shadowA*inv)
			}
		}
	})
}
