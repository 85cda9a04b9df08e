package brush

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/filter"
)

// Composite returns sharp with a blurred copy of itself drawn over it
// through stencil. Where the stencil is 0 the result equals sharp; where it
// is 255 the result is fully blurred.
//
// The blur sigma is [BlurRadius](intensity). A nil or empty stencil yields
// a copy of sharp. Neither input is modified.
func Composite(sharp *imgedit.Pixmap, stencil *imgedit.Mask, intensity float64) *imgedit.Pixmap {
	out := sharp.Clone()
	if stencil == nil || stencil.IsEmpty() || sharp.Empty() {
		return out
	}

	blurred := imgedit.NewPixmap(sharp.Width(), sharp.Height())
	filter.NewBlurFilter(BlurRadius(intensity)).Apply(sharp, blurred, sharp.Bounds())

	draw.DrawMask(out.RGBA(), out.Bounds(), blurred.RGBA(), image.Point{},
		stencil.Alpha(), image.Point{}, draw.Over)
	return out
}
