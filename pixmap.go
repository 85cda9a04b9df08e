package imgedit

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Pixmap represents a rectangular pixel buffer.
//
// Pixels are stored as premultiplied RGBA, 4 bytes per pixel, in the same
// layout as [image.RGBA]. [Pixmap.RGBA] exposes the buffer without copying so
// the x/image resamplers can read from and write into it directly.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Empty reports whether the pixmap has no pixels.
func (p *Pixmap) Empty() bool {
	return p == nil || p.width == 0 || p.height == 0
}

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets a single pixel from a straight-alpha color.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	pm := c.Premultiply()
	p.data[i+0] = to8(pm.R)
	p.data[i+1] = to8(pm.G)
	p.data[i+2] = to8(pm.B)
	p.data[i+3] = to8(pm.A)
}

// GetPixel returns the straight-alpha color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}.Unpremultiply()
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	pm := c.Premultiply()
	r, g, b, a := to8(pm.R), to8(pm.G), to8(pm.B), to8(pm.A)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ClearRect makes every pixel inside r fully transparent.
func (p *Pixmap) ClearRect(r image.Rectangle) {
	r = r.Intersect(p.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.data[(y*p.width+r.Min.X)*4 : (y*p.width+r.Max.X)*4]
		clear(row)
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// SubPixmap copies the pixels inside r into a new pixmap of r's size.
// Parts of r outside the pixmap come out transparent.
func (p *Pixmap) SubPixmap(r image.Rectangle) *Pixmap {
	out := NewPixmap(r.Dx(), r.Dy())
	draw.Copy(out.RGBA(), image.Point{}, p.RGBA(), r, draw.Src, nil)
	return out
}

// RGBA returns an [image.RGBA] that shares memory with the pixmap.
func (p *Pixmap) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// DrawOver composites src onto p with source-over, placing src's origin
// at (x, y).
func (p *Pixmap) DrawOver(src *Pixmap, x, y int) {
	r := image.Rect(x, y, x+src.width, y+src.height)
	draw.Draw(p.RGBA(), r, src.RGBA(), image.Point{}, draw.Over)
}

// FromImage creates a pixmap from any image, converting to premultiplied
// RGBA. The result is anchored at the origin.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	draw.Draw(pm.RGBA(), pm.Bounds(), img, b.Min, draw.Src)
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

// to8 converts a [0, 1] component to a rounded byte.
func to8(v float64) uint8 {
	return uint8(clamp255(v*255 + 0.5))
}
