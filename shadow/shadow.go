// Package shadow renders drop shadows, glows and outlines around the
// composited subject and derives shadow parameters from effect presets.
//
// A [Shadow] is a draw-time attribute: it affects exactly one draw, the
// one that paints the subject, and never the layers drawn afterwards.
package shadow

import (
	"math"
	"strings"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/internal/filter"
)

// Shadow describes a shadow painted under the subject.
type Shadow struct {
	OffsetX float64 `yaml:"offsetX" json:"offsetX"`
	OffsetY float64 `yaml:"offsetY" json:"offsetY"`
	// Blur is the canvas shadow blur; the Gaussian sigma is Blur/2.
	Blur float64 `yaml:"blur" json:"blur"`
	// Color is a CSS color. An empty or unparsable color draws nothing.
	Color string `yaml:"color" json:"color"`
	// Opacity in [0, 1] scales colors that carry no alpha of their own.
	Opacity float64 `yaml:"opacity" json:"opacity"`
	// Size is the spread of glow and outline effects. It is informational:
	// those effects fold it into Blur when derived.
	Size float64 `yaml:"size" json:"size"`
}

// None is the default, fully transparent shadow.
func None() Shadow {
	return Shadow{Color: "rgba(0,0,0,0)"}
}

// Bleed returns the padding the canvas needs around the subject so the
// shadow is not clipped: the blur plus the larger offset magnitude.
func (s Shadow) Bleed() float64 {
	return s.Blur + max(math.Abs(s.OffsetX), math.Abs(s.OffsetY))
}

// RGBA returns the effective straight-alpha shadow color.
func (s Shadow) RGBA() imgedit.RGBA {
	c, ok := imgedit.ParseColor(s.Color)
	if !ok {
		return imgedit.Transparent
	}
	if !hasOwnAlpha(s.Color) {
		c.A *= min(max(s.Opacity, 0), 1)
	}
	return c
}

// Visible reports whether drawing with s paints any shadow pixels.
func (s Shadow) Visible() bool {
	return s.RGBA().A > 0
}

// hasOwnAlpha reports whether a CSS color string specifies alpha.
func hasOwnAlpha(color string) bool {
	c := strings.ToLower(strings.TrimSpace(color))
	if strings.HasPrefix(c, "rgba(") || c == "transparent" {
		return true
	}
	if hex, ok := strings.CutPrefix(c, "#"); ok {
		return len(hex) == 4 || len(hex) == 8
	}
	return false
}

// Composite draws subject onto dst at the origin with s painted under it.
// dst and subject must have the same size; subject is not modified.
func Composite(dst, subject *imgedit.Pixmap, s Shadow) {
	dst.DrawOver(Apply(subject, s), 0, 0)
}

// Apply returns subject with s painted under it, clipped to subject's
// bounds. When s is invisible the result is a copy of subject.
func Apply(subject *imgedit.Pixmap, s Shadow) *imgedit.Pixmap {
	out := imgedit.NewPixmap(subject.Width(), subject.Height())
	if !s.Visible() {
		copy(out.Data(), subject.Data())
		return out
	}
	f := filter.NewDropShadowFilter(s.OffsetX, s.OffsetY, s.Blur/2, s.RGBA())
	f.Apply(subject, out, subject.Bounds())
	return out
}
