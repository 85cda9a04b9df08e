package scene

import (
	"slices"
	"unicode/utf8"

	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/duotone"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/shadow"
	"github.com/gogpu/imgedit/text"
)

// Tool is the open editing panel.
type Tool string

const (
	ToolNone    Tool = "none"
	ToolCrop    Tool = "crop"
	ToolAdjust  Tool = "adjust"
	ToolFilters Tool = "filters"
	ToolEffects Tool = "effects"
	ToolText    Tool = "text"
	ToolOverlay Tool = "overlay"
	ToolBrush   Tool = "brush"
)

// Text heading sizes in pixels.
const (
	SizeH1   = 32
	SizeH2   = 24
	SizeBody = 20
)

// DefaultTextBox returns the box size of a newly added text layer.
func DefaultTextBox(size float64) (w, h float64) {
	return size * 5, size * 1.4
}

// EstimateTextBox returns the box size of a text layer after an edit,
// before the text is measured.
func EstimateTextBox(size float64, s string) (w, h float64) {
	return size * max(float64(utf8.RuneCountInString(s))*0.6, 5), size * 1.6
}

// TextLayer is a line of text drawn over the image. X and Y locate the
// top-left corner of its box in canvas pixels.
type TextLayer struct {
	ID         int64   `yaml:"id" json:"id"`
	Text       string  `yaml:"text" json:"text"`
	X          float64 `yaml:"x" json:"x"`
	Y          float64 `yaml:"y" json:"y"`
	Width      float64 `yaml:"width" json:"width"`
	Height     float64 `yaml:"height" json:"height"`
	Size       float64 `yaml:"size" json:"size"`
	Family     string  `yaml:"family" json:"family"`
	Color      string  `yaml:"color" json:"color"`
	Opacity    float64 `yaml:"opacity" json:"opacity"`
	Weight     string  `yaml:"weight" json:"weight"`
	FontStyle  string  `yaml:"fontStyle" json:"fontStyle"`
	Decoration string  `yaml:"decoration" json:"decoration"`
}

// Style returns the text style of the layer.
func (l TextLayer) Style() text.Style {
	return text.Style{
		Size:       l.Size,
		Family:     l.Family,
		Weight:     l.Weight,
		FontStyle:  l.FontStyle,
		Decoration: l.Decoration,
	}
}

// OverlayLayer is an image placed over the edited image, in canvas pixels.
type OverlayLayer struct {
	ID      int64    `yaml:"id" json:"id"`
	Image   ImageRef `yaml:"image" json:"image"`
	X       float64  `yaml:"x" json:"x"`
	Y       float64  `yaml:"y" json:"y"`
	Width   float64  `yaml:"width" json:"width"`
	Height  float64  `yaml:"height" json:"height"`
	Opacity float64  `yaml:"opacity" json:"opacity"`
}

// Equal reports whether two overlays match, comparing images by ID.
func (l OverlayLayer) Equal(o OverlayLayer) bool {
	return l.ID == o.ID && l.Image.ID == o.Image.ID &&
		l.X == o.X && l.Y == o.Y &&
		l.Width == o.Width && l.Height == o.Height &&
		l.Opacity == o.Opacity
}

// State is a complete edit description.
type State struct {
	Source   ImageRef        `yaml:"source" json:"source"`
	Tone     adjust.Tone     `yaml:"tone" json:"tone"`
	Color    adjust.Color    `yaml:"color" json:"color"`
	Duotone  *duotone.Params `yaml:"duotone,omitempty" json:"duotone,omitempty"`
	Shadow   shadow.Shadow   `yaml:"shadow" json:"shadow"`
	Crop     geometry.Crop   `yaml:"crop" json:"crop"`
	Texts    []TextLayer     `yaml:"texts" json:"texts"`
	Overlays []OverlayLayer  `yaml:"overlays" json:"overlays"`
	Brush    brush.Settings  `yaml:"brush" json:"brush"`

	// ActiveTool is UI-only and excluded from equality and history.
	ActiveTool Tool `yaml:"-" json:"activeTool"`
}

// New returns the default state for a freshly loaded image.
func New(src ImageRef) State {
	return State{
		Source:     src,
		Shadow:     shadow.None(),
		Brush:      brush.DefaultSettings(),
		ActiveTool: ToolNone,
	}
}

// Clone returns a deep copy of s. Image bytes are shared; they are
// immutable.
func (s State) Clone() State {
	c := s
	if s.Duotone != nil {
		d := *s.Duotone
		c.Duotone = &d
	}
	c.Texts = slices.Clone(s.Texts)
	c.Overlays = slices.Clone(s.Overlays)
	return c
}

// Equal reports whether two states describe the same edit. The active
// tool is ignored and images compare by ID.
func (s State) Equal(o State) bool {
	if s.Source.ID != o.Source.ID ||
		s.Tone != o.Tone ||
		s.Color != o.Color ||
		s.Shadow != o.Shadow ||
		s.Crop != o.Crop ||
		s.Brush != o.Brush {
		return false
	}
	if (s.Duotone == nil) != (o.Duotone == nil) {
		return false
	}
	if s.Duotone != nil && *s.Duotone != *o.Duotone {
		return false
	}
	if !slices.Equal(s.Texts, o.Texts) {
		return false
	}
	return slices.EqualFunc(s.Overlays, o.Overlays, OverlayLayer.Equal)
}

// HasImage reports whether a source image is loaded.
func (s State) HasImage() bool {
	return !s.Source.IsZero()
}

// TextIndex returns the index of the text layer with id, or -1.
func (s State) TextIndex(id int64) int {
	return slices.IndexFunc(s.Texts, func(l TextLayer) bool { return l.ID == id })
}

// OverlayIndex returns the index of the overlay layer with id, or -1.
func (s State) OverlayIndex(id int64) int {
	return slices.IndexFunc(s.Overlays, func(l OverlayLayer) bool { return l.ID == id })
}
