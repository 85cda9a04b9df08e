package imgedit

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGBA represents a straight-alpha color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = RGBA{}
	Black       = RGBA{A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
)

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return c.NRGBA()
}

// NRGBA converts c to an 8-bit straight-alpha color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}.Unpremultiply()
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// Unpremultiply returns an unpremultiplied color.
func (c RGBA) Unpremultiply() RGBA {
	if c.A == 0 {
		return RGBA{}
	}
	return RGBA{
		R: c.R / c.A,
		G: c.G / c.A,
		B: c.B / c.A,
		A: c.A,
	}
}

// String formats c as a CSS rgba() color.
func (c RGBA) String() string {
	n := c.NRGBA()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", n.R, n.G, n.B,
		strconv.FormatFloat(clamp01(c.A), 'f', -1, 64))
}

// ParseHex decodes a "#rrggbb" color.
//
// Parsing is lenient: each channel is read from its own two-character slot
// and a slot without a leading hex digit reads as 0, so malformed input
// degrades toward black instead of failing. The leading '#' is optional.
func ParseHex(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	return color.NRGBA{
		R: hexSlot(s, 0),
		G: hexSlot(s, 2),
		B: hexSlot(s, 4),
		A: 255,
	}
}

// hexSlot parses the leading hex digits of s[i:i+2].
func hexSlot(s string, i int) uint8 {
	if i >= len(s) {
		return 0
	}
	end := min(i+2, len(s))
	var v uint8
	for _, c := range []byte(s[i:end]) {
		d, ok := hexDigit(c)
		if !ok {
			break
		}
		v = v*16 + d
	}
	return v
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// HexRGBA converts a "#rrggbb" color and an alpha in [0, 1] to a CSS
// rgba() string. Malformed channels read as 0.
func HexRGBA(hex string, alpha float64) string {
	c := ParseHex(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(alpha, 'f', -1, 64))
}

var namedColors = map[string]RGBA{
	"transparent": Transparent,
	"black":       Black,
	"white":       White,
	"red":         RGB(1, 0, 0),
	"green":       RGB(0, 128.0/255, 0),
	"blue":        RGB(0, 0, 1),
	"yellow":      RGB(1, 1, 0),
	"gray":        RGB(128.0/255, 128.0/255, 128.0/255),
	"grey":        RGB(128.0/255, 128.0/255, 128.0/255),
}

// ParseColor parses a CSS color: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// "rgb(r, g, b)", "rgba(r, g, b, a)" or a basic color name.
// It returns false when s is not a recognized color.
func ParseColor(s string) (RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if args, ok := cutFunc(s, "rgba"); ok {
		return parseRGBArgs(args)
	}
	if args, ok := cutFunc(s, "rgb"); ok {
		return parseRGBArgs(args)
	}
	return RGBA{}, false
}

func cutFunc(s, name string) (string, bool) {
	rest, ok := strings.CutPrefix(s, name+"(")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, ")")
}

func parseRGBArgs(args string) (RGBA, bool) {
	parts := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		pct := strings.HasSuffix(p, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return RGBA{}, false
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		ch[i] = clamp01(v)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}

func parseHexColor(hex string) (RGBA, bool) {
	var v [4]uint8
	v[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			d, ok := hexDigit(hex[i])
			if !ok {
				return RGBA{}, false
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return RGBA{}, false
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return RGBA{}, false
	}
	return RGBA{
		R: float64(v[0]) / 255,
		G: float64(v[1]) / 255,
		B: float64(v[2]) / 255,
		A: float64(v[3]) / 255,
	}, true
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
