package geometry

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// ErrBadRatio is returned for aspect ratio labels that are not "W:H" with
// positive W and H.
var ErrBadRatio = errors.New("geometry: invalid aspect ratio")

// Aspect ratio labels with special meaning.
const (
	Freeform = "freeform"
	Original = "original"
)

// Crop is the crop and transform state of an edit.
//
// X, Y, Width and Height are in canvas pixels. A zero Width or Height means
// no crop region is pending.
type Crop struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	// AspectRatio is the label the region was fitted to, empty for none.
	AspectRatio string `yaml:"aspectRatio,omitempty" json:"aspectRatio,omitempty"`
	// Rotation in degrees, clockwise on screen.
	Rotation float64 `yaml:"rotation" json:"rotation"`
	// Perspective values are percentages; the scale factor is 1+p/100.
	VerticalPerspective   float64 `yaml:"verticalPerspective" json:"verticalPerspective"`
	HorizontalPerspective float64 `yaml:"horizontalPerspective" json:"horizontalPerspective"`
}

// Active reports whether a crop region is pending.
func (c Crop) Active() bool {
	return c.Width > 0 && c.Height > 0
}

// Scales returns the horizontal and vertical perspective scale factors.
func (c Crop) Scales() (h, v float64) {
	return 1 + c.HorizontalPerspective/100, 1 + c.VerticalPerspective/100
}

// Rect returns the crop region rounded to whole canvas pixels.
func (c Crop) Rect() image.Rectangle {
	x0, y0 := math.Round(c.X), math.Round(c.Y)
	return image.Rect(int(x0), int(y0), int(math.Round(c.X+c.Width)), int(math.Round(c.Y+c.Height)))
}

// WithRegion returns c with its crop rectangle and label replaced by r.
func (c Crop) WithRegion(r Region) Crop {
	c.X, c.Y, c.Width, c.Height = r.X, r.Y, r.Width, r.Height
	c.AspectRatio = r.AspectRatio
	return c
}

// Region is a crop rectangle in canvas pixels.
type Region struct {
	X, Y, Width, Height float64
	AspectRatio         string
}

// CropRegion fits a crop region for an aspect ratio label.
//
// A "W:H" label yields the largest centered rectangle of that ratio inside
// the canvas. Original uses the source image's own ratio. Freeform and the
// empty label yield the full canvas with no label.
func CropRegion(label string, canvasW, canvasH, srcW, srcH float64) (Region, error) {
	switch label {
	case "", Freeform:
		return ResetRegion(canvasW, canvasH), nil
	case Original:
		if srcW <= 0 || srcH <= 0 {
			return Region{}, fmt.Errorf("%w: source is %vx%v", ErrBadRatio, srcW, srcH)
		}
		r := fit(srcW/srcH, canvasW, canvasH)
		r.AspectRatio = Original
		return r, nil
	}
	ratio, err := ParseRatio(label)
	if err != nil {
		return Region{}, err
	}
	r := fit(ratio, canvasW, canvasH)
	r.AspectRatio = label
	return r, nil
}

// ResetRegion returns the full canvas with no aspect ratio.
func ResetRegion(canvasW, canvasH float64) Region {
	return Region{Width: canvasW, Height: canvasH}
}

func fit(ratio, canvasW, canvasH float64) Region {
	w := canvasW
	h := w / ratio
	if h > canvasH {
		h = canvasH
		w = h * ratio
	}
	return Region{
		X:      (canvasW - w) / 2,
		Y:      (canvasH - h) / 2,
		Width:  w,
		Height: h,
	}
}

// ParseRatio parses a "W:H" label into W/H.
func ParseRatio(label string) (float64, error) {
	ws, hs, ok := strings.Cut(label, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadRatio, label)
	}
	w, err1 := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	h, err2 := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err1 != nil || err2 != nil || !(w > 0) || !(h > 0) {
		return 0, fmt.Errorf("%w: %q", ErrBadRatio, label)
	}
	return w / h, nil
}

// AspectRatio is a crop ratio choice.
type AspectRatio struct {
	ID    string
	Label string
}

// AspectRatios is the crop ratio catalog in menu order.
var AspectRatios = []AspectRatio{
	{ID: Freeform, Label: "Freeform"},
	{ID: Original, Label: "Original"},
	{ID: "1:1", Label: "1:1"},
	{ID: "16:9", Label: "16:9"},
	{ID: "9:16", Label: "9:16"},
	{ID: "5:4", Label: "5:4"},
	{ID: "3:4", Label: "3:4"},
	{ID: "3:2", Label: "3:2"},
	{ID: "2:3", Label: "2:3"},
}
