package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/bidi"
)

// glyph is a shaped glyph positioned relative to the line origin, y down.
type glyph struct {
	id   sfnt.GlyphIndex
	x, y float64
}

// shapeLine shapes s as a single run and returns glyphs in visual order
// with the total advance.
func (fs *FontSet) shapeLine(f *Font, s string, size float64) ([]glyph, float64) {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: Direction(s),
		Face:      font.NewFace(f.shape),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := fs.shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	fs.shapers.Put(hb)

	glyphs := make([]glyph, len(out.Glyphs))
	var pen float64
	for i, g := range out.Glyphs {
		glyphs[i] = glyph{
			id: sfnt.GlyphIndex(g.GlyphID),
			x:  pen + fromFixed(g.XOffset),
			y:  -fromFixed(g.YOffset),
		}
		pen += fromFixed(g.Advance)
	}
	return glyphs, pen
}

// Direction returns the paragraph direction of s from its first strong
// character. Text without strong characters is left-to-right.
func Direction(s string) di.Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
