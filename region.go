package slabgrid

import "gonum.org/v1/gonum/spatial/r3"

// Region is the geometry-kernel contract the grid generator consumes.
// A Region is one bounded planar face: an outer boundary loop plus zero or
// more inner (hole) loops, with a two-axis parameterization covering it.
//
// Implementations must be safe for concurrent read-only use; Generate may
// issue classification queries from multiple goroutines. The generator
// never mutates a Region.
//
// Hosts with a CAD kernel adapt their surface type to this interface;
// [PolyRegion] is a self-contained implementation for polygonal boundaries.
type Region interface {
	// Domain returns the region's parametric domain. The second result is
	// false when the region does not reduce to a single bounded planar
	// face, or the domain cannot be extracted.
	Domain() (Domain, bool)

	// PointAt evaluates the parameter pair to a world point.
	PointAt(u, v float64) r3.Vec

	// ClosestParam returns the parameter pair closest to a world point.
	// The second result is false when the solve fails.
	ClosestParam(p r3.Vec) (Point, bool)

	// Loops returns the boundary loops, outer loop first, as closed
	// world-space polylines (last point equals first).
	Loops() []Loop

	// Contains reports whether a world point lies in the region at the
	// given tolerance. With strict set, only points in the interior (not
	// within tol of a boundary, not off-plane by more than tol) qualify.
	Contains(p r3.Vec, tol float64, strict bool) bool

	// ClosestBoundary returns the closest point on any boundary loop, and
	// its distance, searching no farther than maxDist. The third result is
	// false when nothing is found within maxDist or the solve fails.
	ClosestBoundary(p r3.Vec, maxDist float64) (r3.Vec, float64, bool)

	// IntersectSegment returns the points where a world segment crosses
	// any boundary loop, in no particular order. An empty result means the
	// segment crosses no boundary.
	IntersectSegment(s Segment) []r3.Vec
}

// Loop is a closed boundary polyline in world space.
// The last point coincides with the first.
type Loop []r3.Vec

// Segment is a straight line between two world points.
type Segment struct {
	A, B r3.Vec
}

// At returns the point at normalized parameter t, with A at 0 and B at 1.
func (s Segment) At(t float64) r3.Vec {
	return r3.Add(s.A, r3.Scale(t, r3.Sub(s.B, s.A)))
}

// Midpoint returns the segment's midpoint.
func (s Segment) Midpoint() r3.Vec {
	return s.At(0.5)
}

// Length returns the segment's length.
func (s Segment) Length() float64 {
	return r3.Norm(r3.Sub(s.B, s.A))
}

// paramOf returns the normalized parameter of the projection of p onto the
// segment's carrier line. No clamping is applied.
func (s Segment) paramOf(p r3.Vec) float64 {
	d := r3.Sub(s.B, s.A)
	dd := r3.Dot(d, d)
	if dd == 0 {
		return 0
	}
	return r3.Dot(r3.Sub(p, s.A), d) / dd
}
