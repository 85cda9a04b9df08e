package imgedit

import (
	"image"
	"slices"
)

// Mask is a plane of 8-bit coverage values, 0 for none and 255 for full.
// The brush engine produces masks and the compositor reads them as the
// blur stencil.
type Mask struct {
	w, h int
	pix  []uint8
}

// NewMask returns a zeroed mask. Negative sizes are treated as zero.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	return &Mask{w: width, h: height, pix: make([]uint8, width*height)}
}

// Bounds returns the mask rectangle, anchored at the origin.
func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

// Width returns the mask width.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height.
func (m *Mask) Height() int { return m.h }

func (m *Mask) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.w && y < m.h
}

// At returns the coverage at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if !m.inside(x, y) {
		return 0
	}
	return m.pix[y*m.w+x]
}

// Set stores the coverage at (x, y). Points outside the mask are dropped.
func (m *Mask) Set(x, y int, v uint8) {
	if m.inside(x, y) {
		m.pix[y*m.w+x] = v
	}
}

// Fill sets every value to v.
func (m *Mask) Fill(v uint8) {
	for i := range m.pix {
		m.pix[i] = v
	}
}

// Clear zeroes every value.
func (m *Mask) Clear() { clear(m.pix) }

// IsEmpty reports whether no value is set.
func (m *Mask) IsEmpty() bool {
	return !slices.ContainsFunc(m.pix, func(v uint8) bool { return v != 0 })
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	return &Mask{w: m.w, h: m.h, pix: slices.Clone(m.pix)}
}

// Data returns the values row by row, without padding. The slice is
// shared with the mask.
func (m *Mask) Data() []uint8 { return m.pix }

// Alpha returns an [image.Alpha] sharing memory with the mask, for use as
// the mask argument of draw.DrawMask.
func (m *Mask) Alpha() *image.Alpha {
	return &image.Alpha{Pix: m.pix, Stride: m.w, Rect: m.Bounds()}
}
