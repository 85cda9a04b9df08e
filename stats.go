package imgedit

import "gonum.org/v1/gonum/stat"

// Rec. 601 luma weights.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luminance returns the Rec. 601 luma of straight-alpha 8-bit channels,
// normalized to [0, 1].
func Luminance(r, g, b uint8) float64 {
	return (LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b)) / 255
}

// MeanLuminance returns the alpha-weighted mean luminance of p.
// Fully transparent pixels do not contribute. An empty or fully
// transparent pixmap yields 0.
func MeanLuminance(p *Pixmap) float64 {
	if p.Empty() {
		return 0
	}
	n := p.width * p.height
	lum := make([]float64, n)
	weights := make([]float64, n)
	var total float64
	for i := range n {
		a := p.data[i*4+3]
		if a == 0 {
			continue
		}
		c := p.GetPixel(i%p.width, i/p.width).NRGBA()
		lum[i] = Luminance(c.R, c.G, c.B)
		weights[i] = float64(a) / 255
		total += weights[i]
	}
	if total == 0 {
		return 0
	}
	return stat.Mean(lum, weights)
}
