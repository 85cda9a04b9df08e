package filter

import (
	"image"

	"github.com/gogpu/imgedit"
)

// Filter is a pixel operation from src into dst over bounds.
//
// Implementations never read outside src and never write outside dst.
// src and dst may not alias.
type Filter interface {
	Apply(src, dst *imgedit.Pixmap, bounds image.Rectangle)

	// ExpandBounds returns the region of dst affected by input.
	ExpandBounds(input image.Rectangle) image.Rectangle
}

// clip returns bounds intersected with both pixmaps.
func clip(src, dst *imgedit.Pixmap, bounds image.Rectangle) image.Rectangle {
	return bounds.Intersect(src.Bounds()).Intersect(dst.Bounds())
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}

// copyRegion copies pixels from src to dst within r.
func copyRegion(src, dst *imgedit.Pixmap, r image.Rectangle) {
	r = clip(src, dst, r)
	sd, dd := src.Data(), dst.Data()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		s := (y*src.Width() + r.Min.X) * 4
		d := (y*dst.Width() + r.Min.X) * 4
		copy(dd[d:d+r.Dx()*4], sd[s:s+r.Dx()*4])
	}
}
