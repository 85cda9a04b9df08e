package preset

import (
	"errors"
	"testing"

	"github.com/gogpu/imgedit/adjust"
)

func TestCatalogSizes(t *testing.T) {
	want := map[string]int{
		"Reset":        1,
		"Shadows":      7,
		"Duotone":      23,
		"Blur":         1,
		"Auto Focus":   4,
		"Face Retouch": 4,
	}
	for _, c := range Categories {
		if got := len(c.Presets); got != want[c.Name] {
			t.Errorf("%s has %d presets, want %d", c.Name, got, want[c.Name])
		}
	}
}

func TestEveryPresetResolves(t *testing.T) {
	for _, c := range Categories {
		for _, name := range c.Presets {
			if c.Name == "Shadows" {
				s, err := Shadow(name)
				if err != nil || !s.Visible() {
					t.Errorf("Shadow(%q) = %+v, %v", name, s, err)
				}
				continue
			}
			b, err := Lookup(name)
			if err != nil || b.Name != name {
				t.Errorf("Lookup(%q) = %+v, %v", name, b, err)
			}
		}
	}
}

func TestLookupValues(t *testing.T) {
	b, err := Lookup("Cherry")
	if err != nil {
		t.Fatal(err)
	}
	if b.Tone != (adjust.Tone{Sepia: 100}) || b.Color != (adjust.Color{Saturation: 50}) {
		t.Errorf("Cherry = %+v", b)
	}
	if b.Duotone == nil || b.Duotone.Highlight != "#e05353" || b.Duotone.Shadow != "#25184f" || b.Duotone.Intensity != 100 {
		t.Errorf("Cherry duotone = %+v", b.Duotone)
	}

	mono, _ := Lookup("Mono")
	if mono.Tone.Grayscale != 100 || mono.Tone.Sepia != 100 {
		t.Errorf("Mono tone = %+v", mono.Tone)
	}

	bokeh, _ := Lookup("Bokeh")
	if bokeh.Duotone != nil || bokeh.Tone != (adjust.Tone{Sharpness: -30, Brightness: 20, Saturation: 30}) {
		t.Errorf("Bokeh = %+v", bokeh)
	}

	none, _ := Lookup(None)
	if !none.Tone.IsZero() || !none.Color.IsZero() || none.Duotone != nil {
		t.Errorf("None = %+v", none)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	a, _ := Lookup("Pop")
	a.Duotone.Intensity = 1
	b, _ := Lookup("Pop")
	if b.Duotone.Intensity != 100 {
		t.Error("Lookup shares duotone params between calls")
	}
}

func TestUnknown(t *testing.T) {
	if _, err := Lookup("Vaporwave"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Lookup err = %v", err)
	}
	if _, err := Shadow("Cherry"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Shadow err = %v", err)
	}
}

func TestWholeImageBlur(t *testing.T) {
	b := WholeImageBlur(40)
	if b.Tone.Sharpness != -40 {
		t.Errorf("sharpness = %v", b.Tone.Sharpness)
	}
	if got := adjust.Compile(b.Tone, b.Color).String(); got != "blur(4px)" {
		t.Errorf("chain = %q", got)
	}
}

func TestAutoAdjust(t *testing.T) {
	a := AutoAdjust()
	if a.Sharpness != 25 || a.Blacks != -15 || a.Invert {
		t.Errorf("AutoAdjust = %+v", a)
	}
}
