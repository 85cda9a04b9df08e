package adjust

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/imgedit/internal/filter"
)

// Op is a filter primitive.
type Op uint8

const (
	OpBrightness Op = iota + 1
	OpContrast
	OpSaturate
	OpHueRotate
	OpInvert
	OpSepia
	OpGrayscale
	OpBlur
)

var opNames = [...]string{
	OpBrightness: "brightness",
	OpContrast:   "contrast",
	OpSaturate:   "saturate",
	OpHueRotate:  "hue-rotate",
	OpInvert:     "invert",
	OpSepia:      "sepia",
	OpGrayscale:  "grayscale",
	OpBlur:       "blur",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Knob names the adjustment a stage was derived from.
type Knob string

const (
	KnobBrightness  Knob = "brightness"
	KnobContrast    Knob = "contrast"
	KnobSaturation  Knob = "saturation"
	KnobVibrance    Knob = "vibrance"
	KnobHue         Knob = "hue"
	KnobInvert      Knob = "invert"
	KnobTemperature Knob = "temperature"
	KnobTint        Knob = "tint"
	KnobHighlights  Knob = "highlights"
	KnobShadows     Knob = "shadows"
	KnobWhites      Knob = "whites"
	KnobBlacks      Knob = "blacks"
	KnobClarity     Knob = "clarity"
	KnobSharpness   Knob = "sharpness"
	KnobGrayscale   Knob = "grayscale"
	KnobSepia       Knob = "sepia"
)

// Stage is one filter primitive of a chain.
//
// Amount is a fraction for brightness, contrast, saturate, invert, sepia and
// grayscale (1 = 100%), degrees for hue-rotate and pixels for blur.
type Stage struct {
	Op     Op
	Amount float64
	Knob   Knob
}

// String renders the stage as a CSS filter function.
func (s Stage) String() string {
	switch s.Op {
	case OpHueRotate:
		return fmt.Sprintf("%s(%sdeg)", s.Op, formatNum(s.Amount))
	case OpBlur:
		return fmt.Sprintf("%s(%spx)", s.Op, formatNum(s.Amount))
	default:
		return fmt.Sprintf("%s(%s%%)", s.Op, formatNum(s.Amount*100))
	}
}

// filter returns the pixel kernel implementing the stage, or nil when the
// stage leaves pixels unchanged.
func (s Stage) filter() filter.Filter {
	switch s.Op {
	case OpBrightness:
		return filter.NewBrightnessFilter(s.Amount)
	case OpContrast:
		return filter.NewContrastFilter(s.Amount)
	case OpSaturate:
		return filter.NewSaturateFilter(s.Amount)
	case OpHueRotate:
		return filter.NewHueRotateFilter(s.Amount)
	case OpInvert:
		return filter.NewInvertFilter(s.Amount)
	case OpSepia:
		return filter.NewSepiaFilter(s.Amount)
	case OpGrayscale:
		return filter.NewGrayscaleFilter(s.Amount)
	case OpBlur:
		if s.Amount <= 0 {
			return nil
		}
		return filter.NewBlurFilter(s.Amount)
	}
	return nil
}

// formatNum prints v with at most six decimals so that fractions scaled
// back to percent print cleanly.
func formatNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
