package imgedit

import (
	"math"
	"testing"
)

func TestMeanLuminance(t *testing.T) {
	tests := []struct {
		name string
		fill func(p *Pixmap)
		want float64
	}{
		{"empty", func(*Pixmap) {}, 0},
		{"white", func(p *Pixmap) { p.Clear(White) }, 1},
		{"black", func(p *Pixmap) { p.Clear(Black) }, 0},
		{"half", func(p *Pixmap) {
			p.Clear(Black)
			p.SetPixel(0, 0, White)
			p.SetPixel(1, 0, White)
		}, 0.5},
		{"transparent ignored", func(p *Pixmap) {
			p.SetPixel(0, 0, White)
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPixmap(2, 2)
			tt.fill(p)
			if got := MeanLuminance(p); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("MeanLuminance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLuminanceWeights(t *testing.T) {
	if got := Luminance(255, 255, 255); math.Abs(got-1) > 1e-12 {
		t.Errorf("white luminance = %v", got)
	}
	if got := Luminance(255, 0, 0); math.Abs(got-LumaR) > 1e-12 {
		t.Errorf("red luminance = %v", got)
	}
}
