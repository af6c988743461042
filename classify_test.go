package slabgrid

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// brokenRegion simulates a kernel whose containment and closest-point
// solves fail. failDomain additionally reports domain extraction failure.
type brokenRegion struct {
	failDomain bool
}

func (b *brokenRegion) Domain() (Domain, bool) {
	if b.failDomain {
		return Domain{}, false
	}
	return Domain{U: Interval{0, 10}, V: Interval{0, 10}}, true
}

func (b *brokenRegion) PointAt(u, v float64) r3.Vec         { return r3.Vec{X: u, Y: v} }
func (b *brokenRegion) ClosestParam(p r3.Vec) (Point, bool) { return Point{}, false }
func (b *brokenRegion) Loops() []Loop                       { return nil }
func (b *brokenRegion) Contains(r3.Vec, float64, bool) bool { return false }
func (b *brokenRegion) IntersectSegment(Segment) []r3.Vec   { return nil }
func (b *brokenRegion) ClosestBoundary(r3.Vec, float64) (r3.Vec, float64, bool) {
	return r3.Vec{}, 0, false
}

func TestClassificationString(t *testing.T) {
	tests := []struct {
		c    Classification
		want string
	}{
		{Inside, "Inside"},
		{OnBoundary, "OnBoundary"},
		{Outside, "Outside"},
		{Classification(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Classification(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	reg := mustRegion(t, 10, 6, rectHole(4, 2, 6, 4))
	tol := 0.1
	tests := []struct {
		name string
		p    r3.Vec
		want Classification
	}{
		{"deep interior", r3.Vec{X: 2, Y: 3}, Inside},
		{"exactly on outer edge", r3.Vec{X: 0, Y: 3}, OnBoundary},
		{"just outside, within accept radius", r3.Vec{X: -0.15, Y: 3}, OnBoundary},
		{"outside accept, within search radius", r3.Vec{X: -0.3, Y: 3}, Outside},
		{"far outside", r3.Vec{X: -50, Y: 3}, Outside},
		{"hole center", r3.Vec{X: 5, Y: 3}, Outside},
		{"on hole edge", r3.Vec{X: 4, Y: 3}, OnBoundary},
		{"near interior, within tol of edge", r3.Vec{X: 0.05, Y: 3}, OnBoundary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(reg, tt.p, tol); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// A failed containment or boundary solve must classify Outside, never
// Inside: classification fails closed.
func TestClassifyFailsClosed(t *testing.T) {
	reg := &brokenRegion{}
	for _, p := range []r3.Vec{{}, {X: 5, Y: 5}, {X: -100}} {
		if got := Classify(reg, p, 0.1); got != Outside {
			t.Errorf("Classify(%+v) on broken kernel = %v, want Outside", p, got)
		}
	}
}
