package shadow

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/imgedit"
)

// ErrUnknownEffect is returned for effect names outside [Effects].
var ErrUnknownEffect = errors.New("shadow: unknown effect")

// Effect is a shadow preset.
type Effect string

const (
	Glow     Effect = "Glow"
	Drop     Effect = "Drop"
	Outline  Effect = "Outline"
	Curved   Effect = "Curved"
	PageLift Effect = "Page Lift"
	Angled   Effect = "Angled"
	Backdrop Effect = "Backdrop"
)

// Effects lists the presets in catalog order.
var Effects = []Effect{Glow, Drop, Outline, Curved, PageLift, Angled, Backdrop}

// Options are the user-facing controls of an effect. Each effect reads a
// subset; angles are in degrees and Intensity is a percentage.
type Options struct {
	Size       float64 `yaml:"size" json:"size"`
	BlurAmount float64 `yaml:"blurAmount" json:"blurAmount"`
	Angle      float64 `yaml:"angle" json:"angle"`
	Distance   float64 `yaml:"distance" json:"distance"`
	Curve      float64 `yaml:"curve" json:"curve"`
	Rotation   float64 `yaml:"rotation" json:"rotation"`
	Direction  float64 `yaml:"direction" json:"direction"`
	Color      string  `yaml:"color" json:"color"`
	Intensity  float64 `yaml:"intensity" json:"intensity"`
}

// DefaultOptions returns the initial controls for an effect.
func DefaultOptions(e Effect) (Options, error) {
	switch e {
	case Glow:
		return Options{Size: 20, BlurAmount: 15, Color: "#ff0000", Intensity: 50}, nil
	case Drop:
		return Options{BlurAmount: 10, Angle: 45, Distance: 15, Color: "#000000", Intensity: 50}, nil
	case Outline:
		return Options{Size: 15, Color: "#0000ff", Intensity: 50}, nil
	case Curved:
		return Options{BlurAmount: 10, Distance: 20, Curve: 30, Color: "#000000", Intensity: 30}, nil
	case PageLift:
		return Options{BlurAmount: 5, Distance: 15, Curve: 20, Color: "#000000", Intensity: 30}, nil
	case Angled:
		return Options{BlurAmount: 10, Rotation: 30, Color: "#000000", Intensity: 30}, nil
	case Backdrop:
		return Options{BlurAmount: 15, Direction: 0, Color: "#000000", Intensity: 50}, nil
	}
	return Options{}, fmt.Errorf("%w: %q", ErrUnknownEffect, e)
}

// Derive computes the shadow for an effect from its controls.
//
// Directional effects decompose a polar offset as
// (cos(angle)*distance, sin(angle)*distance). Glow and Outline are
// centered and widen their blur with Size. The color carries
// Intensity/100 as alpha.
func Derive(e Effect, o Options) (Shadow, error) {
	op := o.Intensity / 100
	s := Shadow{
		Color:   imgedit.HexRGBA(o.Color, op),
		Opacity: op,
	}
	switch e {
	case Glow:
		s.Blur = o.BlurAmount + o.Size/5
		s.Size = o.Size
	case Drop:
		s.OffsetX, s.OffsetY = polar(o.Angle, o.Distance)
		s.Blur = o.BlurAmount
	case Outline:
		s.Blur = o.Size / 5
		s.Size = o.Size
	case Curved, PageLift:
		s.OffsetX, s.OffsetY = polar(o.Curve, o.Distance)
		s.Blur = o.BlurAmount
	case Angled:
		s.OffsetX, s.OffsetY = polar(o.Rotation, 10)
		s.Blur = o.BlurAmount
	case Backdrop:
		s.OffsetX, s.OffsetY = polar(o.Direction, 5)
		s.Blur = o.BlurAmount
	default:
		return Shadow{}, fmt.Errorf("%w: %q", ErrUnknownEffect, e)
	}
	return s, nil
}

func polar(degrees, distance float64) (x, y float64) {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return cos * distance, sin * distance
}
