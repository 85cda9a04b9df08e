// Package preset holds the catalog of one-click looks: duotone filters,
// focus and retouch effects, shadow effects and the auto-adjust tone.
package preset

import (
	"errors"
	"fmt"

	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/duotone"
	"github.com/gogpu/imgedit/shadow"
)

// ErrUnknown is returned for names not in the catalog.
var ErrUnknown = errors.New("preset: unknown preset")

// Bundle is a filter preset. Applying it replaces tone, color and duotone
// as a unit; knobs it leaves unset return to neutral.
type Bundle struct {
	Name    string          `yaml:"name" json:"name"`
	Tone    adjust.Tone     `yaml:"tone" json:"tone"`
	Color   adjust.Color    `yaml:"color" json:"color"`
	Duotone *duotone.Params `yaml:"duotone,omitempty" json:"duotone,omitempty"`
}

// Category groups preset names for display.
type Category struct {
	Name    string
	Presets []string
}

// Special preset names.
const (
	None      = "None"
	BrushBlur = "Brush Blur"
)

// Categories lists the effect presets in menu order.
var Categories = []Category{
	{Name: "Reset", Presets: []string{None}},
	{Name: "Shadows", Presets: effectNames()},
	{Name: "Duotone", Presets: names(duotones)},
	{Name: "Blur", Presets: []string{BrushBlur}},
	{Name: "Auto Focus", Presets: names(focus)},
	{Name: "Face Retouch", Presets: names(retouch)},
}

func duo(name string, hue, sat float64, hi, lo string) Bundle {
	return Bundle{
		Name:    name,
		Tone:    adjust.Tone{Sepia: 100},
		Color:   adjust.Color{Hue: hue, Saturation: sat},
		Duotone: &duotone.Params{Highlight: hi, Shadow: lo, Intensity: 100},
	}
}

var duotones = []Bundle{
	duo("Custom", 150, 20, "#eeeeee", "#111111"),
	duo("Cherry", 0, 50, "#e05353", "#25184f"),
	duo("Fuchsia", 330, 60, "#ff4076", "#021f53"),
	duo("Pop", 300, 70, "#fa50cb", "#1a0b8c"),
	duo("Violet", 280, 40, "#935eb2", "#242659"),
	duo("Sea Blue", 200, 50, "#2887bf", "#242659"),
	duo("Sea Green", 160, 60, "#02aa6d", "#251863"),
	duo("Mustard", 50, 80, "#fdcf21", "#311955"),
	duo("Amber", 45, 70, "#fce746", "#fb452f"),
	duo("Pomelo", 50, 75, "#fada15", "#fa5181"),
	duo("Blush", 350, 30, "#f6d2d4", "#f24578"),
	duo("Peppermint", 180, 60, "#86f8fc", "#472468"),
	duo("Mystic", 190, 65, "#85f8fc", "#c7156e"),
	duo("Pastel", 180, 40, "#ade6e6", "#d4476b"),
	duo("Coral", 30, 35, "#eeead0", "#ca3d33"),
	duo("Lavender", 320, 40, "#ebc6d9", "#035fa5"),
	duo("Dusk", 200, 30, "#ade6e6", "#964880"),
	duo("Dawn", 30, 45, "#dbb58f", "#944a7f"),
	duo("Myrtle", 140, 50, "#cdfab1", "#1d9371"),
	duo("Mint Choc", 150, 55, "#caf5b0", "#301854"),
	duo("Sepia", 30, 20, "#d1ba8e", "#2b1c34"),
	{
		Name:    "Mono",
		Tone:    adjust.Tone{Sepia: 100, Grayscale: 100},
		Duotone: &duotone.Params{Highlight: "#939ba9", Shadow: "#041f23", Intensity: 100},
	},
	duo("Classic", 0, 0, "#ffffff", "#22060d"),
}

var focus = []Bundle{
	{Name: "Tilt Shift", Tone: adjust.Tone{Sharpness: -20, Contrast: 30, Saturation: 20}},
	{Name: "Focus Point", Tone: adjust.Tone{Sharpness: -10, Brightness: 10}},
	{Name: "Depth of Field", Tone: adjust.Tone{Sharpness: -25, Contrast: 10}},
	{Name: "Bokeh", Tone: adjust.Tone{Sharpness: -30, Brightness: 20, Saturation: 30}},
}

var retouch = []Bundle{
	{Name: "Smooth Skin", Tone: adjust.Tone{Sharpness: -5, Brightness: 5}},
	{Name: "Brighten Eyes", Tone: adjust.Tone{Brightness: 20, Contrast: 10}},
	{Name: "Whiten Teeth", Tone: adjust.Tone{Brightness: 30, Saturation: -20}},
	{Name: "Remove Blemishes", Tone: adjust.Tone{Sharpness: -3, Brightness: 2}},
}

func names(bs []Bundle) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func effectNames() []string {
	out := make([]string, len(shadow.Effects))
	for i, e := range shadow.Effects {
		out[i] = string(e)
	}
	return out
}

// Lookup returns the filter bundle for a preset name. None and Brush Blur
// are neutral bundles; shadow effects are not bundles, see [Shadow].
func Lookup(name string) (Bundle, error) {
	if name == None || name == BrushBlur {
		return Bundle{Name: name}, nil
	}
	for _, list := range [][]Bundle{duotones, focus, retouch} {
		for _, b := range list {
			if b.Name == name {
				if b.Duotone != nil {
					d := *b.Duotone
					b.Duotone = &d
				}
				return b, nil
			}
		}
	}
	return Bundle{}, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Shadow returns the shadow of an effect preset at its default options.
func Shadow(name string) (shadow.Shadow, error) {
	e := shadow.Effect(name)
	opts, err := shadow.DefaultOptions(e)
	if err != nil {
		return shadow.Shadow{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return shadow.Derive(e, opts)
}

// WholeImageBlur returns a bundle that blurs the entire image. Intensity
// is in [0, 100].
func WholeImageBlur(intensity float64) Bundle {
	return Bundle{Name: "Whole Image Blur", Tone: adjust.Tone{Sharpness: -intensity}}
}

// AutoAdjust returns the one-click tone correction.
func AutoAdjust() adjust.Tone {
	return adjust.Tone{
		Temperature: 10,
		Tint:        5,
		Brightness:  10,
		Contrast:    10,
		Highlights:  20,
		Shadows:     -10,
		Whites:      15,
		Blacks:      -15,
		Vibrance:    20,
		Saturation:  10,
		Sharpness:   25,
		Clarity:     10,
	}
}
