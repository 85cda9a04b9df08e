package adjust

// Tone holds the tonal adjustment knobs. The zero value is neutral.
//
// Grayscale and Sepia are percentages, not CSS filter amounts: Grayscale
// 100 is fully gray and Grayscale 1 is one percent gray.
type Tone struct {
	Temperature float64 `yaml:"temperature" json:"temperature"`
	Tint        float64 `yaml:"tint" json:"tint"`
	Brightness  float64 `yaml:"brightness" json:"brightness"`
	Contrast    float64 `yaml:"contrast" json:"contrast"`
	Highlights  float64 `yaml:"highlights" json:"highlights"`
	Shadows     float64 `yaml:"shadows" json:"shadows"`
	Whites      float64 `yaml:"whites" json:"whites"`
	Blacks      float64 `yaml:"blacks" json:"blacks"`
	Vibrance    float64 `yaml:"vibrance" json:"vibrance"`
	Saturation  float64 `yaml:"saturation" json:"saturation"`
	Sharpness   float64 `yaml:"sharpness" json:"sharpness"`
	Clarity     float64 `yaml:"clarity" json:"clarity"`
	Grayscale   float64 `yaml:"grayscale" json:"grayscale"`
	Sepia       float64 `yaml:"sepia" json:"sepia"`
	Invert      bool    `yaml:"invert" json:"invert"`
}

// IsZero reports whether every knob is neutral.
func (t Tone) IsZero() bool {
	return t == Tone{}
}

// Color is a secondary HSL-style nudge applied on top of [Tone].
// Brightness and Saturation add to the tone knobs of the same name; Hue
// is an extra rotation in degrees.
type Color struct {
	Hue        float64 `yaml:"hue" json:"hue"`
	Saturation float64 `yaml:"saturation" json:"saturation"`
	Brightness float64 `yaml:"brightness" json:"brightness"`
}

// IsZero reports whether every knob is neutral.
func (c Color) IsZero() bool {
	return c == Color{}
}
