package brush

import "math"

// Mode selects whether a stroke adds blur to or removes blur from the mask.
type Mode string

const (
	AddBlur    Mode = "add-blur"
	RemoveBlur Mode = "remove-blur"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == AddBlur || m == RemoveBlur
}

// Settings are the brush controls stored in the edit state.
type Settings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Size is the stroke width in source pixels.
	Size float64 `yaml:"size" json:"size"`
	// Intensity in [0, 100] sets both stroke alpha and blur strength.
	Intensity float64 `yaml:"intensity" json:"intensity"`
	Mode      Mode    `yaml:"mode" json:"mode"`
}

// DefaultSettings returns a disabled brush of width 1 in add-blur mode.
func DefaultSettings() Settings {
	return Settings{Size: 1, Mode: AddBlur}
}

// BlurRadius returns the Gaussian sigma used for the blurred copy.
// It depends on intensity only; brush size controls stroke width.
func BlurRadius(intensity float64) float64 {
	return math.Max(5, intensity/10)
}
