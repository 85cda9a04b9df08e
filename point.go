package imgedit

import "math"

// Point is a position or displacement in pixels, y pointing down.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Length returns the Euclidean length of p.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Normalize returns p scaled to unit length. The zero vector stays zero.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return p.Mul(1 / l)
}

// Perp returns p turned a quarter.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }
