package adjust

import (
	"math"
	"strings"
	"time"

	"github.com/gogpu/imgedit"
)

// Chain is an ordered filter chain.
type Chain []Stage

// Compile maps tone and color knobs to a filter chain.
//
// Stage order is fixed: brightness, contrast, saturate, vibrance saturate,
// hue-rotate, invert, temperature (sepia then hue-rotate), tint,
// highlights, shadows, whites, blacks, clarity, sharpness blur, grayscale,
// sepia. A knob at its neutral value contributes no stage.
//
// Positive sharpness emits a zero-radius blur: there is no sharpen kernel.
func Compile(t Tone, c Color) Chain {
	var ch Chain
	add := func(op Op, amount float64, k Knob) {
		ch = append(ch, Stage{Op: op, Amount: amount, Knob: k})
	}
	pct := func(v float64) float64 { return (100 + v) / 100 }

	if t.Brightness != 0 || c.Brightness != 0 {
		add(OpBrightness, pct(t.Brightness+c.Brightness), KnobBrightness)
	}
	if t.Contrast != 0 {
		add(OpContrast, pct(t.Contrast), KnobContrast)
	}
	if t.Saturation != 0 || c.Saturation != 0 {
		add(OpSaturate, pct(t.Saturation+c.Saturation), KnobSaturation)
	}
	if t.Vibrance != 0 {
		add(OpSaturate, pct(t.Vibrance), KnobVibrance)
	}
	if c.Hue != 0 {
		add(OpHueRotate, c.Hue, KnobHue)
	}
	if t.Invert {
		add(OpInvert, 1, KnobInvert)
	}
	if t.Temperature != 0 {
		v := t.Temperature / 100
		add(OpSepia, math.Abs(v)*0.5, KnobTemperature)
		if v > 0 {
			add(OpHueRotate, 20, KnobTemperature)
		} else {
			add(OpHueRotate, -20, KnobTemperature)
		}
	}
	if t.Tint != 0 {
		add(OpHueRotate, t.Tint, KnobTint)
	}
	if t.Highlights != 0 {
		add(OpBrightness, pct(t.Highlights/2), KnobHighlights)
	}
	if t.Shadows != 0 {
		add(OpContrast, pct(t.Shadows/2), KnobShadows)
	}
	if t.Whites != 0 {
		add(OpBrightness, pct(t.Whites/2), KnobWhites)
	}
	if t.Blacks != 0 {
		add(OpContrast, pct(-t.Blacks/2), KnobBlacks)
	}
	if t.Clarity != 0 {
		add(OpContrast, pct(t.Clarity), KnobClarity)
	}
	if t.Sharpness != 0 {
		add(OpBlur, max(0, -t.Sharpness/10), KnobSharpness)
	}
	if t.Grayscale != 0 {
		add(OpGrayscale, min(max(t.Grayscale/100, 0), 1), KnobGrayscale)
	}
	if t.Sepia != 0 {
		add(OpSepia, t.Sepia/100, KnobSepia)
	}
	return ch
}

// String renders the chain as a CSS filter value, "none" when empty.
func (ch Chain) String() string {
	if len(ch) == 0 {
		return "none"
	}
	parts := make([]string, len(ch))
	for i, s := range ch {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Knobs returns the distinct knobs contributing to the chain, in order.
func (ch Chain) Knobs() []Knob {
	var out []Knob
	for _, s := range ch {
		if len(out) == 0 || out[len(out)-1] != s.Knob {
			out = append(out, s.Knob)
		}
	}
	return out
}

// Apply rasterizes the chain over src and returns a new pixmap.
// src is never modified. Stages run in order, each reading the previous
// stage's clamped output.
func (ch Chain) Apply(src *imgedit.Pixmap) *imgedit.Pixmap {
	out := src.Clone()
	if len(ch) == 0 || out.Empty() {
		return out
	}

	start := time.Now()
	tmp := imgedit.NewPixmap(out.Width(), out.Height())
	for _, s := range ch {
		f := s.filter()
		if f == nil {
			continue
		}
		f.Apply(out, tmp, out.Bounds())
		out, tmp = tmp, out
	}
	imgedit.Logger().Debug("adjust: chain applied",
		"filter", ch.String(),
		"size", [2]int{out.Width(), out.Height()},
		"elapsed", time.Since(start))
	return out
}
