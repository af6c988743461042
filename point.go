package slabgrid

import "math"

// Point represents a 2D point in a region's parameter space.
// U and V follow the region's two parametric axes.
type Point struct {
	U, V float64
}

// Pt is a convenience function to create a Point.
func Pt(u, v float64) Point {
	return Point{U: u, V: v}
}

// Add returns the sum of two parameter points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{U: p.U + q.U, V: p.V + q.V}
}

// Sub returns the difference of two parameter points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{U: p.U - q.U, V: p.V - q.V}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{U: p.U * s, V: p.V * s}
}

// Dot returns the dot product of two parameter vectors.
func (p Point) Dot(q Point) float64 {
	return p.U*q.U + p.V*q.V
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.U*q.V - p.V*q.U
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.U, p.V)
}

// Dist returns the distance between two parameter points.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Length()
}

// Interval is a closed 1-D parameter range.
type Interval struct {
	Min, Max float64
}

// Length returns the extent of the interval. Negative if Max < Min.
func (iv Interval) Length() float64 {
	return iv.Max - iv.Min
}

// Clamp returns t limited to the interval.
func (iv Interval) Clamp(t float64) float64 {
	if t < iv.Min {
		return iv.Min
	}
	if t > iv.Max {
		return iv.Max
	}
	return t
}

// Domain is a region's 2-D parametric domain: one interval per axis.
type Domain struct {
	U, V Interval
}

// Center returns the parametric midpoint of the domain.
func (d Domain) Center() Point {
	return Point{
		U: (d.U.Min + d.U.Max) / 2,
		V: (d.V.Min + d.V.Max) / 2,
	}
}

// Valid reports whether both intervals have positive extent.
func (d Domain) Valid() bool {
	return d.U.Length() > 0 && d.V.Length() > 0
}
