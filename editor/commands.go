package editor

import (
	"errors"
	"fmt"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/adjust"
	"github.com/gogpu/imgedit/geometry"
	"github.com/gogpu/imgedit/preset"
	"github.com/gogpu/imgedit/scene"
	"github.com/gogpu/imgedit/shadow"
)

// ApplyCrop fits a crop region for an aspect ratio label: "freeform",
// "original" or "W:H". The region is in canvas pixels.
func (e *Editor) ApplyCrop(ratio string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("crop"); err != nil {
		return err
	}
	c := e.canvasSize()
	r, err := geometry.CropRegion(ratio, c.Width, c.Height, e.srcSize.Width, e.srcSize.Height)
	if err != nil {
		return err
	}
	next := e.state.Clone()
	next.Crop = next.Crop.WithRegion(r)
	e.commit(next)
	return nil
}

// ResetCrop sets the crop region to the whole canvas with no ratio.
func (e *Editor) ResetCrop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready("reset crop"); err != nil {
		return err
	}
	c := e.canvasSize()
	next := e.state.Clone()
	next.Crop = next.Crop.WithRegion(geometry.ResetRegion(c.Width, c.Height))
	e.commit(next)
	return nil
}

// ApplyRotation sets the rotation in degrees.
func (e *Editor) ApplyRotation(degrees float64) error {
	return e.edit("rotate", func(s *scene.State) error {
		s.Crop.Rotation = degrees
		return nil
	})
}

// ApplyPerspective sets the vertical and horizontal perspective, in
// percent. Values at or below -100 would collapse the image and are
// rejected.
func (e *Editor) ApplyPerspective(vertical, horizontal float64) error {
	return e.edit("perspective", func(s *scene.State) error {
		if vertical <= -100 || horizontal <= -100 {
			return geometry.ErrSingular
		}
		s.Crop.VerticalPerspective = vertical
		s.Crop.HorizontalPerspective = horizontal
		return nil
	})
}

// ApplyAdjustments replaces the tonal adjustments. Knobs left at zero in t
// return to neutral.
func (e *Editor) ApplyAdjustments(t adjust.Tone) error {
	return e.edit("adjust", func(s *scene.State) error {
		s.Tone = t
		return nil
	})
}

// ApplyColorAdjustments replaces the color adjustments. Knobs left at zero
// in c return to neutral.
func (e *Editor) ApplyColorAdjustments(c adjust.Color) error {
	return e.edit("color", func(s *scene.State) error {
		s.Color = c
		return nil
	})
}

// ApplyFilter replaces tone, color and duotone with a bundle.
func (e *Editor) ApplyFilter(b preset.Bundle) error {
	return e.edit("filter", func(s *scene.State) error {
		s.Tone = b.Tone
		s.Color = b.Color
		s.Duotone = nil
		if b.Duotone != nil {
			d := *b.Duotone
			s.Duotone = &d
		}
		return nil
	})
}

// ApplyShadow replaces the shadow. An empty color means transparent.
func (e *Editor) ApplyShadow(sh shadow.Shadow) error {
	if sh.Color == "" {
		sh.Color = shadow.None().Color
	}
	return e.edit("shadow", func(s *scene.State) error {
		s.Shadow = sh
		return nil
	})
}

// ApplyPreset applies a named preset from the catalog: a filter bundle or
// a shadow effect at its default options.
func (e *Editor) ApplyPreset(name string) error {
	b, err := preset.Lookup(name)
	if err == nil {
		return e.ApplyFilter(b)
	}
	if !errors.Is(err, preset.ErrUnknown) {
		return err
	}
	sh, serr := preset.Shadow(name)
	if serr != nil {
		return fmt.Errorf("editor: preset: %w", serr)
	}
	return e.ApplyShadow(sh)
}

// ResetAll removes the shadow and filters, clears the brush mask and turns
// the brush off. Layers and geometry are kept.
func (e *Editor) ResetAll() error {
	return e.edit("reset", func(s *scene.State) error {
		none, _ := preset.Lookup(preset.None)
		s.Tone, s.Color, s.Duotone = none.Tone, none.Color, nil
		s.Shadow = shadow.None()
		s.Brush.Enabled = false
		e.stroker.End()
		e.engine.Clear()
		return nil
	})
}

// edit applies fn to a copy of the state and commits it.
func (e *Editor) edit(cmd string, fn func(*scene.State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready(cmd); err != nil {
		return err
	}
	next := e.state.Clone()
	if err := fn(&next); err != nil {
		imgedit.Logger().Warn("editor: command failed", "cmd", cmd, "err", err)
		return err
	}
	e.commit(next)
	return nil
}
