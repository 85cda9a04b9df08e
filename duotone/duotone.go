// Package duotone maps an image onto a two-color gradient by luminance.
package duotone

import (
	"image/color"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/parallel"
)

// Params configures a duotone pass.
type Params struct {
	// Highlight is the "#rrggbb" color at luminance 1.
	Highlight string `yaml:"highlight" json:"highlight"`
	// Shadow is the "#rrggbb" color at luminance 0.
	Shadow string `yaml:"shadow" json:"shadow"`
	// Intensity blends from the original (0) to the full gradient (100).
	Intensity float64 `yaml:"intensity" json:"intensity"`
}

// Apply returns the duotone of src.
//
// Every pixel's Rec. 601 luminance t selects a color between p.Shadow
// (t = 0) and p.Highlight (t = 1); the result moves each channel from its
// original value toward that color by p.Intensity percent. Alpha is
// untouched. Luminance is always read from src, never from pixels already
// written. Malformed hex colors read as black.
//
// With Intensity 0 the result is a bit-identical copy of src.
func Apply(src *imgedit.Pixmap, p Params) *imgedit.Pixmap {
	out := src.Clone()
	if p.Intensity == 0 || out.Empty() {
		return out
	}

	hi := imgedit.ParseHex(p.Highlight)
	lo := imgedit.ParseHex(p.Shadow)
	k := p.Intensity / 100

	srcData := src.Data()
	outData := out.Data()
	w := src.Width()

	parallel.Rows(src.Height(), func(y0, y1 int) {
		for i := y0 * w * 4; i < y1*w*4; i += 4 {
			a := srcData[i+3]
			if a == 0 {
				continue
			}
			r, g, b := unpremultiply(srcData[i], srcData[i+1], srcData[i+2], a)
			c := mapColor(color.NRGBA{R: r, G: g, B: b, A: a}, lo, hi, k)
			outData[i+0], outData[i+1], outData[i+2] = premultiply(c.R, c.G, c.B, a)
		}
	})
	return out
}

// mapColor moves one straight-alpha pixel toward its point on the lo..hi
// gradient by k.
func mapColor(c, lo, hi color.NRGBA, k float64) color.NRGBA {
	t := imgedit.Luminance(c.R, c.G, c.B)
	return color.NRGBA{
		R: mix(c.R, lo.R, hi.R, t, k),
		G: mix(c.G, lo.G, hi.G, t, k),
		B: mix(c.B, lo.B, hi.B, t, k),
		A: c.A,
	}
}

// mix moves orig toward lerp(lo, hi, t) by k, rounding to the nearest byte.
func mix(orig, lo, hi uint8, t, k float64) uint8 {
	target := float64(lo) + (float64(hi)-float64(lo))*t
	v := float64(orig) + (target-float64(orig))*k
	return uint8(min(max(v+0.5, 0), 255))
}

func unpremultiply(r, g, b, a uint8) (uint8, uint8, uint8) {
	if a == 255 {
		return r, g, b
	}
	f := 255 / float64(a)
	return clamp8(float64(r) * f), clamp8(float64(g) * f), clamp8(float64(b) * f)
}

func premultiply(r, g, b, a uint8) (uint8, uint8, uint8) {
	if a == 255 {
		return r, g, b
	}
	f := float64(a) / 255
	return clamp8(float64(r) * f), clamp8(float64(g) * f), clamp8(float64(b) * f)
}

func clamp8(v float64) uint8 {
	return uint8(min(max(v+0.5, 0), 255))
}
