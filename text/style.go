package text

import (
	"strconv"
	"strings"
)

// Decorations.
const (
	DecorationNone        = "none"
	DecorationUnderline   = "underline"
	DecorationLineThrough = "line-through"
)

// Style describes how a text layer is drawn. Values use CSS keywords.
type Style struct {
	// Size is the font size in pixels.
	Size float64
	// Family is a font family name, matched case-insensitively.
	Family string
	// Weight is "normal", "bold" or a numeric weight such as "700".
	Weight string
	// FontStyle is "normal" or "italic"; "oblique" is treated as italic.
	FontStyle string
	// Decoration is one of the Decoration constants. Several may be given
	// separated by spaces.
	Decoration string
}

// Bold reports whether the weight selects a bold face.
func (s Style) Bold() bool {
	switch w := strings.ToLower(strings.TrimSpace(s.Weight)); w {
	case "bold", "bolder":
		return true
	case "", "normal", "lighter":
		return false
	default:
		n, err := strconv.Atoi(w)
		return err == nil && n >= 600
	}
}

// Italic reports whether the style selects an italic face.
func (s Style) Italic() bool {
	st := strings.ToLower(strings.TrimSpace(s.FontStyle))
	return st == "italic" || strings.HasPrefix(st, "oblique")
}

// Underline reports whether the decoration includes an underline.
func (s Style) Underline() bool { return s.hasDecoration(DecorationUnderline) }

// LineThrough reports whether the decoration includes a strike line.
func (s Style) LineThrough() bool { return s.hasDecoration(DecorationLineThrough) }

func (s Style) hasDecoration(d string) bool {
	for _, f := range strings.Fields(strings.ToLower(s.Decoration)) {
		if f == d {
			return true
		}
	}
	return false
}

// Font returns the CSS font shorthand, e.g. "italic bold 32px Arial".
func (s Style) Font() string {
	style := s.FontStyle
	if style == "" {
		style = "normal"
	}
	weight := s.Weight
	if weight == "" {
		weight = "normal"
	}
	return style + " " + weight + " " + strconv.FormatFloat(s.Size, 'f', -1, 64) + "px " + s.Family
}

// ParseSize reads a CSS pixel size such as "32px" or "32". It returns
// false when no leading number is present.
func ParseSize(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && (v[end] == '.' || v[end] == '-' || '0' <= v[end] && v[end] <= '9') {
		end++
	}
	n, err := strconv.ParseFloat(v[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
