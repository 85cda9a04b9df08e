package render

import (
	"bytes"
	"math"
	"testing"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/scene"
)

func solid(w, h int, c imgedit.RGBA) *imgedit.Pixmap {
	p := imgedit.NewPixmap(w, h)
	p.Clear(c)
	return p
}

func encodeRef(t *testing.T, p *imgedit.Pixmap) scene.ImageRef {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, p, FormatPNG); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return scene.NewImageRef("image/png", buf.Bytes())
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertColor(t *testing.T, p *imgedit.Pixmap, x, y int, want imgedit.RGBA) {
	t.Helper()
	got := p.GetPixel(x, y)
	const tol = 2.0 / 255
	if !near(got.R, want.R, tol) || !near(got.G, want.G, tol) ||
		!near(got.B, want.B, tol) || !near(got.A, want.A, tol) {
		t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
	}
}
