package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/brush"
	"github.com/gogpu/imgedit/editor"
	"github.com/gogpu/imgedit/preset"
	"github.com/gogpu/imgedit/render"
	"github.com/gogpu/imgedit/shadow"
	"github.com/gogpu/imgedit/text"
)

// Recipe is an edit session described in YAML. Steps run in field order.
type Recipe struct {
	Display    *Display      `yaml:"display"`
	Preset     string        `yaml:"preset"`
	Blur       float64       `yaml:"blur"`
	AutoAdjust bool          `yaml:"autoAdjust"`
	Tone       *adjust.Tone  `yaml:"tone"`
	Color      *adjust.Color `yaml:"color"`
	Shadow     *ShadowStep   `yaml:"shadow"`
	Crop       *CropStep     `yaml:"crop"`
	Texts      []TextStep    `yaml:"texts"`
	Overlays   []OverlayStep `yaml:"overlays"`
	Brush      *BrushStep    `yaml:"brush"`
	Format     string        `yaml:"format"`
}

// Display is the on-screen canvas size layer coordinates refer to.
type Display struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShadowStep applies a shadow effect. Without options the effect's
// defaults are used.
type ShadowStep struct {
	Effect  string          `yaml:"effect"`
	Options *shadow.Options `yaml:"options"`
}

// CropStep sets the geometry. Finalize bakes the crop into the image after
// every other step.
type CropStep struct {
	Ratio      string  `yaml:"ratio"`
	Rotation   float64 `yaml:"rotation"`
	Vertical   float64 `yaml:"vertical"`
	Horizontal float64 `yaml:"horizontal"`
	Finalize   bool    `yaml:"finalize"`
}

// TextStep adds a text layer with its top-left corner at (X, Y). Size is
// a CSS pixel size such as "32px" or 32.
type TextStep struct {
	Text       string  `yaml:"text"`
	Heading    string  `yaml:"heading"`
	Size       string  `yaml:"size"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Family     string  `yaml:"family"`
	Color      string  `yaml:"color"`
	Opacity    float64 `yaml:"opacity"`
	Weight     string  `yaml:"weight"`
	Style      string  `yaml:"style"`
	Decoration string  `yaml:"decoration"`
	Fit        bool    `yaml:"fit"`
}

// OverlayStep adds an image file as an overlay. Relative paths are
// resolved against the recipe's directory.
type OverlayStep struct {
	File string  `yaml:"file"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// BrushStep paints blur mask strokes. Each stroke is a list of [x, y]
// display points.
type BrushStep struct {
	Size      float64        `yaml:"size"`
	Intensity float64        `yaml:"intensity"`
	Mode      brush.Mode     `yaml:"mode"`
	Strokes   [][][2]float64 `yaml:"strokes"`
}

// layerOrigin is where the editor places new layers.
const layerOrigin = 50

// ParseRecipe decodes a recipe. Unknown keys are errors.
func ParseRecipe(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var rec Recipe
	if err := dec.Decode(&rec); err != nil && err != io.EOF {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	return &rec, nil
}

// LoadRecipe reads a recipe file.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRecipe(bytes.NewReader(data))
}

// Apply runs the recipe against e and returns the names of the steps it
// ran. Overlay paths are resolved against dir.
func (rec *Recipe) Apply(ctx context.Context, e *editor.Editor, dir string) ([]string, error) {
	var steps []string
	step := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		steps = append(steps, name)
		return nil
	}

	if d := rec.Display; d != nil {
		e.SetDisplaySize(d.Width, d.Height)
	}
	if rec.Preset != "" {
		if err := step("preset "+rec.Preset, e.ApplyPreset(rec.Preset)); err != nil {
			return steps, err
		}
	}
	if rec.Blur > 0 {
		if err := step("blur", e.ApplyFilter(preset.WholeImageBlur(rec.Blur))); err != nil {
			return steps, err
		}
	}
	if rec.AutoAdjust {
		if err := step("auto adjust", e.ApplyAdjustments(preset.AutoAdjust())); err != nil {
			return steps, err
		}
	}
	if rec.Tone != nil {
		if err := step("tone", e.ApplyAdjustments(*rec.Tone)); err != nil {
			return steps, err
		}
	}
	if rec.Color != nil {
		if err := step("color", e.ApplyColorAdjustments(*rec.Color)); err != nil {
			return steps, err
		}
	}
	if s := rec.Shadow; s != nil {
		if err := step("shadow "+s.Effect, applyShadow(e, s)); err != nil {
			return steps, err
		}
	}
	if c := rec.Crop; c != nil {
		if err := step("geometry", applyGeometry(e, c)); err != nil {
			return steps, err
		}
	}
	for i, t := range rec.Texts {
		if err := step(fmt.Sprintf("text %d", i+1), addText(e, t)); err != nil {
			return steps, err
		}
	}
	for _, o := range rec.Overlays {
		if err := step("overlay "+filepath.Base(o.File), addOverlay(ctx, e, dir, o)); err != nil {
			return steps, err
		}
	}
	if b := rec.Brush; b != nil {
		if err := step("brush", paint(e, b)); err != nil {
			return steps, err
		}
	}
	if c := rec.Crop; c != nil && c.Finalize {
		if err := step("finalize crop", e.FinalizeCrop(ctx)); err != nil {
			return steps, err
		}
	}
	return steps, nil
}

func applyShadow(e *editor.Editor, s *ShadowStep) error {
	if s.Options == nil {
		return e.ApplyPreset(s.Effect)
	}
	sh, err := shadow.Derive(shadow.Effect(s.Effect), *s.Options)
	if err != nil {
		return err
	}
	return e.ApplyShadow(sh)
}

func applyGeometry(e *editor.Editor, c *CropStep) error {
	if c.Rotation != 0 {
		if err := e.ApplyRotation(c.Rotation); err != nil {
			return err
		}
	}
	if c.Vertical != 0 || c.Horizontal != 0 {
		if err := e.ApplyPerspective(c.Vertical, c.Horizontal); err != nil {
			return err
		}
	}
	if c.Ratio != "" {
		return e.ApplyCrop(c.Ratio)
	}
	return nil
}

func addText(e *editor.Editor, t TextStep) error {
	var size float64
	if t.Size != "" {
		var ok bool
		if size, ok = text.ParseSize(t.Size); !ok {
			return fmt.Errorf("size %q: not a pixel size", t.Size)
		}
	}
	id, err := e.AddText(editor.NewText{
		Text:       t.Text,
		Heading:    editor.Heading(t.Heading),
		Size:       size,
		Family:     t.Family,
		Color:      t.Color,
		Opacity:    t.Opacity,
		Weight:     t.Weight,
		FontStyle:  t.Style,
		Decoration: t.Decoration,
	})
	if err != nil {
		return err
	}
	if t.Fit {
		if err := e.FitSelectedText(); err != nil {
			return err
		}
	}
	return move(e, id, t.X, t.Y)
}

func addOverlay(ctx context.Context, e *editor.Editor, dir string, o OverlayStep) error {
	path := o.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	id, err := e.AddOverlay(ctx, filepath.Base(path), sniff(data), data)
	if err != nil {
		return err
	}
	return move(e, id, o.X, o.Y)
}

// move drags a freshly added layer from the default origin to (x, y).
// Targets within the drag threshold of the origin leave it in place.
func move(e *editor.Editor, id int64, x, y float64) error {
	if x == 0 && y == 0 {
		return nil
	}
	if err := e.BeginDrag(id, imgedit.Pt(layerOrigin, layerOrigin)); err != nil {
		return err
	}
	e.PointerMove(imgedit.Pt(x, y))
	return e.PointerUp()
}

func paint(e *editor.Editor, b *BrushStep) error {
	err := e.EnableBrush(brush.Settings{Size: b.Size, Intensity: b.Intensity, Mode: b.Mode})
	if err != nil {
		return err
	}
	for _, stroke := range b.Strokes {
		if len(stroke) == 0 {
			continue
		}
		if err := e.BeginStroke(imgedit.Pt(stroke[0][0], stroke[0][1])); err != nil {
			return err
		}
		for _, p := range stroke[1:] {
			e.StrokeTo(imgedit.Pt(p[0], p[1]))
		}
		if err := e.EndStroke(); err != nil {
			return err
		}
	}
	return nil
}

// sniff returns the media type of encoded image bytes. Data no decoder
// recognizes is reported as octet-stream, which the editor rejects.
func sniff(data []byte) string {
	if _, _, format, err := render.DecodeConfig(data); err == nil {
		return "image/" + format
	}
	return "application/octet-stream"
}
