package adjust

import (
	"reflect"
	"testing"

	"github.com/gogpu/imgedit"
)

func TestCompileString(t *testing.T) {
	tests := []struct {
		name  string
		tone  Tone
		color Color
		want  string
	}{
		{"neutral", Tone{}, Color{}, "none"},
		{"brightness", Tone{Brightness: 20}, Color{}, "brightness(120%)"},
		{"combined brightness", Tone{Brightness: 10}, Color{Brightness: 5}, "brightness(115%)"},
		{"cancelling brightness still emits", Tone{Brightness: 10}, Color{Brightness: -10}, "brightness(100%)"},
		{"saturation and vibrance", Tone{Saturation: -20, Vibrance: 30}, Color{Saturation: 5}, "saturate(85%) saturate(130%)"},
		{"warm temperature", Tone{Temperature: 40}, Color{}, "sepia(20%) hue-rotate(20deg)"},
		{"cool temperature", Tone{Temperature: -100}, Color{}, "sepia(50%) hue-rotate(-20deg)"},
		{"half weighted", Tone{Highlights: 20, Shadows: -10, Whites: 4, Blacks: 30}, Color{},
			"brightness(110%) contrast(95%) brightness(102%) contrast(85%)"},
		{"negative sharpness blurs", Tone{Sharpness: -25}, Color{}, "blur(2.5px)"},
		{"positive sharpness", Tone{Sharpness: 40}, Color{}, "blur(0px)"},
		{"grayscale and sepia", Tone{Grayscale: 100, Sepia: 35}, Color{}, "grayscale(100%) sepia(35%)"},
		{"grayscale is a percentage", Tone{Grayscale: 1}, Color{}, "grayscale(1%)"},
		{"grayscale clamps", Tone{Grayscale: 250}, Color{}, "grayscale(100%)"},
		{"hue and tint", Tone{Tint: 5}, Color{Hue: -30}, "hue-rotate(-30deg) hue-rotate(5deg)"},
		{"invert", Tone{Invert: true}, Color{}, "invert(100%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compile(tt.tone, tt.color).String(); got != tt.want {
				t.Errorf("Compile().String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileOrder(t *testing.T) {
	tone := Tone{
		Temperature: 10, Tint: 5, Brightness: 10, Contrast: 10, Highlights: 20,
		Shadows: -10, Whites: 15, Blacks: -15, Vibrance: 20, Saturation: 10,
		Sharpness: -25, Clarity: 10, Grayscale: 50, Sepia: 10, Invert: true,
	}
	got := Compile(tone, Color{Hue: 15}).Knobs()
	want := []Knob{
		KnobBrightness, KnobContrast, KnobSaturation, KnobVibrance, KnobHue,
		KnobInvert, KnobTemperature, KnobTint, KnobHighlights, KnobShadows,
		KnobWhites, KnobBlacks, KnobClarity, KnobSharpness, KnobGrayscale, KnobSepia,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("knob order = %v\nwant %v", got, want)
	}
}

func TestCompileIdempotent(t *testing.T) {
	tone := Tone{Brightness: 12, Temperature: -33, Clarity: 7}
	color := Color{Hue: 90, Saturation: 3}
	a, b := Compile(tone, color), Compile(tone, color)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Compile not deterministic: %v vs %v", a, b)
	}
}

func TestCompileZeroValueSkip(t *testing.T) {
	full := Tone{
		Temperature: 10, Tint: 5, Brightness: 10, Contrast: 10, Highlights: 20,
		Shadows: -10, Whites: 15, Blacks: -15, Vibrance: 20, Saturation: 10,
		Sharpness: -25, Clarity: 10, Grayscale: 50, Sepia: 10, Invert: true,
	}
	zeroers := map[Knob]func(*Tone){
		KnobTemperature: func(t *Tone) { t.Temperature = 0 },
		KnobTint:        func(t *Tone) { t.Tint = 0 },
		KnobBrightness:  func(t *Tone) { t.Brightness = 0 },
		KnobContrast:    func(t *Tone) { t.Contrast = 0 },
		KnobHighlights:  func(t *Tone) { t.Highlights = 0 },
		KnobShadows:     func(t *Tone) { t.Shadows = 0 },
		KnobWhites:      func(t *Tone) { t.Whites = 0 },
		KnobBlacks:      func(t *Tone) { t.Blacks = 0 },
		KnobVibrance:    func(t *Tone) { t.Vibrance = 0 },
		KnobSaturation:  func(t *Tone) { t.Saturation = 0 },
		KnobSharpness:   func(t *Tone) { t.Sharpness = 0 },
		KnobClarity:     func(t *Tone) { t.Clarity = 0 },
		KnobGrayscale:   func(t *Tone) { t.Grayscale = 0 },
		KnobSepia:       func(t *Tone) { t.Sepia = 0 },
		KnobInvert:      func(t *Tone) { t.Invert = false },
	}

	tone := full
	prev := len(Compile(tone, Color{}))
	for k, zero := range zeroers {
		zero(&tone)
		ch := Compile(tone, Color{})
		if len(ch) >= prev {
			t.Errorf("zeroing %s did not shrink the chain (%d -> %d)", k, prev, len(ch))
		}
		for _, s := range ch {
			if s.Knob == k {
				t.Errorf("chain still has a %s stage after zeroing it", k)
			}
		}
		prev = len(ch)
	}
	if prev != 0 {
		t.Errorf("all-zero tone compiled to %d stages", prev)
	}
}

func TestChainApply(t *testing.T) {
	src := imgedit.NewPixmap(4, 4)
	src.Clear(imgedit.RGB(0.5, 0.5, 0.5))
	orig := src.Clone()

	t.Run("empty chain copies", func(t *testing.T) {
		out := Compile(Tone{}, Color{}).Apply(src)
		if out == src {
			t.Fatal("Apply returned its input")
		}
		for i, v := range out.Data() {
			if v != src.Data()[i] {
				t.Fatalf("byte %d changed", i)
			}
		}
	})

	t.Run("brightness brightens", func(t *testing.T) {
		out := Compile(Tone{Brightness: 20}, Color{}).Apply(src)
		if got, base := imgedit.MeanLuminance(out), imgedit.MeanLuminance(src); got <= base {
			t.Errorf("mean luminance %v, want > %v", got, base)
		}
	})

	t.Run("positive sharpness is a no-op", func(t *testing.T) {
		out := Compile(Tone{Sharpness: 50}, Color{}).Apply(src)
		for i, v := range out.Data() {
			if v != src.Data()[i] {
				t.Fatalf("byte %d changed", i)
			}
		}
	})

	t.Run("invert twice restores", func(t *testing.T) {
		ch := Chain{{Op: OpInvert, Amount: 1}, {Op: OpInvert, Amount: 1}}
		out := ch.Apply(src)
		for i, v := range out.Data() {
			if d := int(v) - int(src.Data()[i]); d < -1 || d > 1 {
				t.Fatalf("byte %d = %d, want %d", i, v, src.Data()[i])
			}
		}
	})

	for i, v := range src.Data() {
		if v != orig.Data()[i] {
			t.Fatalf("Apply mutated its input at byte %d", i)
		}
	}
}

func TestOpString(t *testing.T) {
	if OpHueRotate.String() != "hue-rotate" || Op(99).String() != "Op(99)" {
		t.Errorf("unexpected Op names: %s %s", OpHueRotate, Op(99))
	}
}
