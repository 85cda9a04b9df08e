package text

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"

	"github.com/gogpu/imgedit"
)

// Draw fills s into dst with (x, y) as the top-left corner of the text
// box; the baseline sits one ascent below y. The fill is c with its alpha
// multiplied by opacity. Glyphs missing from the font are skipped.
func (fs *FontSet) Draw(dst draw.Image, s string, x, y float64, st Style, c color.Color, opacity float64) {
	if s == "" || st.Size <= 0 || opacity <= 0 {
		return
	}
	f := fs.Resolve(st)
	if f == nil {
		return
	}
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	src := image.NewUniform(fade(c, opacity))

	m := fs.metrics(f, st.Size)
	glyphs, advance := fs.shapeLine(f, s, st.Size)
	ox, oy := x-float64(b.Min.X), y+m.Ascent-float64(b.Min.Y)

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	buf := fs.buffers.Get().(*sfnt.Buffer)
	ppem := toFixed(st.Size)
	for _, g := range glyphs {
		segs, err := f.outln.LoadGlyph(buf, g.id, ppem, nil)
		if err != nil {
			imgedit.Logger().Debug("text: glyph skipped", "gid", g.id, "err", err)
			continue
		}
		addSegments(z, segs, ox+g.x, oy+g.y)
	}
	fs.buffers.Put(buf)
	z.Draw(dst, b, src, image.Point{})

	if !st.Underline() && !st.LineThrough() {
		return
	}
	thick := max(1, st.Size/16)
	z.Reset(b.Dx(), b.Dy())
	if st.Underline() {
		addRect(z, ox, oy+thick, advance, thick)
	}
	if st.LineThrough() {
		addRect(z, ox, oy-m.XHeight/2-thick/2, advance, thick)
	}
	z.Draw(dst, b, src, image.Point{})
}

func addSegments(z *vector.Rasterizer, segs sfnt.Segments, dx, dy float64) {
	pt := func(i int, s sfnt.Segment) (float32, float32) {
		return float32(fromFixed(s.Args[i].X) + dx), float32(fromFixed(s.Args[i].Y) + dy)
	}
	for i, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				z.ClosePath()
			}
			z.MoveTo(pt(0, s))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(0, s))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(0, s)
			cx, cy := pt(1, s)
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(0, s)
			cx, cy := pt(1, s)
			ex, ey := pt(2, s)
			z.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	z.ClosePath()
}

func addRect(z *vector.Rasterizer, x, y, w, h float64) {
	z.MoveTo(float32(x), float32(y))
	z.LineTo(float32(x+w), float32(y))
	z.LineTo(float32(x+w), float32(y+h))
	z.LineTo(float32(x), float32(y+h))
	z.ClosePath()
}

// fade returns c as a straight-alpha color with alpha scaled by opacity.
func fade(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * min(opacity, 1)))
	return n
}
