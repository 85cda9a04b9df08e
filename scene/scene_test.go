package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/duotone"
	"github.com/gogpu/imgedit/shadow"
)

func sampleState() State {
	s := New(NewImageRef("image/png", []byte("source")))
	s.Tone.Brightness = 20
	s.Duotone = &duotone.Params{Highlight: "#ffffff", Shadow: "#000000", Intensity: 100}
	s.Texts = []TextLayer{{ID: 1, Text: "Hello", X: 50, Y: 50, Size: 32, Family: "Arial", Color: "#000000", Opacity: 1}}
	s.Overlays = []OverlayLayer{{ID: 2, Image: NewImageRef("image/png", []byte("logo")), Width: 100, Height: 50, Opacity: 1}}
	return s
}

func TestNewDefaults(t *testing.T) {
	s := New(NewImageRef("image/jpeg", []byte{1, 2, 3}))
	if !s.HasImage() || s.ActiveTool != ToolNone {
		t.Errorf("New() = %+v", s)
	}
	if s.Shadow != shadow.None() || s.Brush != brush.DefaultSettings() || s.Duotone != nil {
		t.Errorf("New() defaults = %+v", s)
	}
	if (State{}).HasImage() {
		t.Error("zero state has image")
	}
}

func TestImageRefID(t *testing.T) {
	a := NewImageRef("image/png", []byte("abc"))
	b := NewImageRef("image/jpeg", []byte("abc"))
	c := NewImageRef("image/png", []byte("abd"))
	if a.ID != b.ID || a.ID == c.ID || len(a.ID) != 64 {
		t.Errorf("IDs: %s %s %s", a.ID, b.ID, c.ID)
	}
	if !(ImageRef{}).IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := sampleState()
	c := s.Clone()
	c.Texts[0].Text = "Changed"
	c.Overlays[0].X = 99
	c.Duotone.Intensity = 10
	if s.Texts[0].Text != "Hello" || s.Overlays[0].X != 0 || s.Duotone.Intensity != 100 {
		t.Error("Clone shares mutable parts with original")
	}
}

func TestEqual(t *testing.T) {
	base := sampleState()
	tests := []struct {
		name   string
		mutate func(*State)
		equal  bool
	}{
		{"identical", func(*State) {}, true},
		{"active tool ignored", func(s *State) { s.ActiveTool = ToolCrop }, true},
		{"image bytes ignored", func(s *State) { s.Source.Data = nil }, true},
		{"tone", func(s *State) { s.Tone.Contrast = 1 }, false},
		{"color", func(s *State) { s.Color = adjust.Color{Hue: 5} }, false},
		{"duotone removed", func(s *State) { s.Duotone = nil }, false},
		{"duotone changed", func(s *State) { s.Duotone.Shadow = "#111111" }, false},
		{"text moved", func(s *State) { s.Texts[0].X++ }, false},
		{"text removed", func(s *State) { s.Texts = nil }, false},
		{"overlay image", func(s *State) { s.Overlays[0].Image = NewImageRef("image/png", []byte("other")) }, false},
		{"crop", func(s *State) { s.Crop.Rotation = 90 }, false},
		{"brush", func(s *State) { s.Brush.Enabled = true }, false},
		{"shadow", func(s *State) { s.Shadow.Blur = 2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base.Clone()
			tt.mutate(&o)
			if got := base.Equal(o); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	a := sampleState()
	if d := Diff(a, a.Clone()); d != "" {
		t.Errorf("Diff of equal states = %q", d)
	}
	b := a.Clone()
	b.Tone.Brightness = 35
	b.ActiveTool = ToolAdjust
	d := Diff(a, b)
	if !strings.Contains(d, "- ") || !strings.Contains(d, "brightness: 20") || !strings.Contains(d, "brightness: 35") {
		t.Errorf("Diff = %q", d)
	}
	if strings.Contains(d, "texts") {
		t.Errorf("Diff includes unchanged lines: %q", d)
	}
}

func TestDescribeOmitsImageBytes(t *testing.T) {
	d := sampleState().Describe()
	if strings.Contains(d, "logo") {
		t.Errorf("Describe includes image data: %s", d)
	}
	if !strings.Contains(d, "text: Hello") {
		t.Errorf("Describe = %s", d)
	}
}

func TestIndexes(t *testing.T) {
	s := sampleState()
	if s.TextIndex(1) != 0 || s.TextIndex(2) != -1 {
		t.Error("TextIndex mismatch")
	}
	if s.OverlayIndex(2) != 0 || s.OverlayIndex(1) != -1 {
		t.Error("OverlayIndex mismatch")
	}
}

func TestTextBoxes(t *testing.T) {
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	if w, h := DefaultTextBox(20); !near(w, 100) || !near(h, 28) {
		t.Errorf("DefaultTextBox = %v, %v", w, h)
	}
	if w, h := EstimateTextBox(20, "Hi"); !near(w, 100) || !near(h, 32) {
		t.Errorf("short EstimateTextBox = %v, %v", w, h)
	}
	if w, _ := EstimateTextBox(10, "Hello, world"); !near(w, 72) {
		t.Errorf("long EstimateTextBox width = %v", w)
	}
}
