package filter

import (
	"image"
	"testing"

	"github.com/gogpu/imgedit"
)

func TestBlurFilterExpandBounds(t *testing.T) {
	tests := []struct {
		name   string
		rx, ry float64
		input  image.Rectangle
		want   image.Rectangle
	}{
		{"zero radius", 0, 0, image.Rect(10, 10, 100, 100), image.Rect(10, 10, 100, 100)},
		{"symmetric radius", 5, 5, image.Rect(0, 0, 100, 100), image.Rect(-15, -15, 115, 115)},
		{"asymmetric radius", 3, 10, image.Rect(50, 50, 150, 150), image.Rect(41, 20, 159, 180)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &BlurFilter{RadiusX: tt.rx, RadiusY: tt.ry}
			if got := f.ExpandBounds(tt.input); got != tt.want {
				t.Errorf("ExpandBounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlurFilterZeroRadiusCopies(t *testing.T) {
	src := createTestPixmap(10, 10, imgedit.RGB(1, 0, 0))
	dst := imgedit.NewPixmap(10, 10)
	NewBlurFilter(0).Apply(src, dst, src.Bounds())
	if got := dst.GetPixel(5, 5); got != imgedit.RGB(1, 0, 0) {
		t.Errorf("zero blur = %+v", got)
	}
}

func TestBlurFilterUniformStaysUniform(t *testing.T) {
	c := imgedit.RGB(0.2, 0.4, 0.6)
	src := createTestPixmap(20, 20, c)
	dst := imgedit.NewPixmap(20, 20)
	NewBlurFilter(4).Apply(src, dst, src.Bounds())

	for _, p := range []image.Point{{0, 0}, {10, 10}, {19, 19}} {
		if got := dst.GetPixel(p.X, p.Y); !colorApproxEqual(got, c, tol) {
			t.Errorf("pixel %v = %+v, want %+v", p, got, c)
		}
	}
}

func TestBlurFilterSpreadsEdge(t *testing.T) {
	src := imgedit.NewPixmap(20, 1)
	for x := 10; x < 20; x++ {
		src.SetPixel(x, 0, imgedit.White)
	}
	dst := imgedit.NewPixmap(20, 1)
	NewBlurFilter(2).Apply(src, dst, src.Bounds())

	left := dst.GetPixel(8, 0).A
	right := dst.GetPixel(11, 0).A
	if left <= 0 || left >= 0.5 {
		t.Errorf("alpha left of edge = %v, want in (0, 0.5)", left)
	}
	if right <= 0.5 || right >= 1 {
		t.Errorf("alpha right of edge = %v, want in (0.5, 1)", right)
	}
	if dst.GetPixel(0, 0).A != 0 || dst.GetPixel(19, 0).A != 1 {
		t.Error("far pixels should be unaffected")
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, r := range []float64{0, 0.5, 1, 3, 7.25} {
		k := GaussianKernel(r)
		var sum float32
		for _, v := range k {
			sum += v
		}
		if absf(float64(sum)-1) > 1e-5 {
			t.Errorf("radius %v: kernel sums to %v", r, sum)
		}
		if len(k)%2 != 1 {
			t.Errorf("radius %v: even kernel size %d", r, len(k))
		}
	}
	if a, b := CachedGaussianKernel(2.5), CachedGaussianKernel(2.5); &a[0] != &b[0] {
		t.Error("CachedGaussianKernel did not reuse the kernel")
	}
}
