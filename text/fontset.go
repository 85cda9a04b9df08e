package text

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/imgedit"
)

// DefaultFamily is the family registered by [NewFontSet] and used when a
// style names no known family.
const DefaultFamily = "Go"

// Font is one parsed face of a family.
//
// The same font data backs two parsers: sfnt for outlines and metrics,
// go-text for shaping. Both index glyphs identically.
type Font struct {
	family string
	bold   bool
	italic bool
	outln  *sfnt.Font
	shape  *font.Font
}

// Family returns the family the font was registered under.
func (f *Font) Family() string { return f.family }

// Bold reports whether the font is the bold variant.
func (f *Font) Bold() bool { return f.bold }

// Italic reports whether the font is the italic variant.
func (f *Font) Italic() bool { return f.italic }

// FontSet resolves styles to fonts and draws text.
//
// FontSet is safe for concurrent use.
type FontSet struct {
	mu       sync.RWMutex
	families map[string]*[4]*Font

	shapers sync.Pool
	buffers sync.Pool
}

// NewFontSet creates a font set with the Go fonts registered as
// [DefaultFamily].
func NewFontSet() *FontSet {
	fs := &FontSet{
		families: make(map[string]*[4]*Font),
		shapers:  sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		buffers:  sync.Pool{New: func() any { return &sfnt.Buffer{} }},
	}
	for _, v := range []struct {
		bold, italic bool
		data         []byte
	}{
		{false, false, goregular.TTF},
		{true, false, gobold.TTF},
		{false, true, goitalic.TTF},
		{true, true, gobolditalic.TTF},
	} {
		if err := fs.Register(DefaultFamily, v.bold, v.italic, v.data); err != nil {
			imgedit.Logger().Warn("text: embedded font rejected", "err", err)
		}
	}
	return fs
}

// Register adds a TrueType or OpenType face under family, replacing any
// face already registered for the same variant.
func (fs *FontSet) Register(family string, bold, italic bool, data []byte) error {
	family = normalizeFamily(family)
	if family == "" {
		return ErrEmptyFamily
	}
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	outln, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	f := &Font{family: family, bold: bold, italic: italic, outln: outln, shape: face.Font}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.families[family]
	if !ok {
		v = new([4]*Font)
		fs.families[family] = v
	}
	v[variant(bold, italic)] = f
	return nil
}

// Families returns the registered family names, sorted.
func (fs *FontSet) Families() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	names := make([]string, 0, len(fs.families))
	for name := range fs.families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve returns the font for a style. Family may be a CSS family list;
// the first registered entry wins, then [DefaultFamily]. Within a family a
// missing variant falls back to the one with the same slant, then regular.
func (fs *FontSet) Resolve(st Style) *Font {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	want := variant(st.Bold(), st.Italic())
	for name := range strings.SplitSeq(st.Family, ",") {
		if v, ok := fs.families[normalizeFamily(name)]; ok {
			if f := pick(v, want); f != nil {
				return f
			}
		}
	}
	if v, ok := fs.families[normalizeFamily(DefaultFamily)]; ok {
		return pick(v, want)
	}
	return nil
}

func pick(v *[4]*Font, want int) *Font {
	for _, i := range []int{want, want &^ 1, want & 1, 0} {
		if v[i] != nil {
			return v[i]
		}
	}
	for _, f := range v {
		if f != nil {
			return f
		}
	}
	return nil
}

// variant indexes a family's faces: bit 1 is bold, bit 0 italic.
func variant(bold, italic bool) int {
	i := 0
	if bold {
		i |= 2
	}
	if italic {
		i |= 1
	}
	return i
}

func normalizeFamily(name string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
}

// Metrics are the vertical metrics and advance of a line of text, in
// pixels.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
	XHeight float64
}

// Height returns Ascent + Descent.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

// Measure shapes s in st and returns its metrics.
func (fs *FontSet) Measure(s string, st Style) Metrics {
	f := fs.Resolve(st)
	if f == nil || st.Size <= 0 {
		return Metrics{}
	}
	m := fs.metrics(f, st.Size)
	_, m.Width = fs.shapeLine(f, s, st.Size)
	return m
}

func (fs *FontSet) metrics(f *Font, size float64) Metrics {
	buf := fs.buffers.Get().(*sfnt.Buffer)
	defer fs.buffers.Put(buf)
	fm, err := f.outln.Metrics(buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, XHeight: size * 0.5}
	}
	return Metrics{
		Ascent:  fromFixed(fm.Ascent),
		Descent: fromFixed(fm.Descent),
		XHeight: fromFixed(fm.XHeight),
	}
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
