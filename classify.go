package slabgrid

import "gonum.org/v1/gonum/spatial/r3"

// Classification is the result of testing a world point against a region.
type Classification uint8

const (
	// Outside means the point is neither in the interior nor close enough
	// to a boundary. Failed containment solves also classify Outside:
	// classification fails closed, never open.
	Outside Classification = iota

	// OnBoundary means the point is within the acceptance radius of a
	// boundary loop.
	OnBoundary

	// Inside means the point is strictly interior to the region.
	Inside
)

// String returns the name of the classification.
func (c Classification) String() string {
	switch c {
	case Inside:
		return "Inside"
	case OnBoundary:
		return "OnBoundary"
	case Outside:
		return "Outside"
	}
	return "Unknown"
}

// InsideOrOn reports whether the point counts as part of the region.
func (c Classification) InsideOrOn() bool {
	return c != Outside
}

// Classification radii relative to the caller's tolerance. The boundary
// search casts a wider net than it accepts, to absorb closest-point solver
// noise near the boundary.
const (
	boundarySearchFactor = 5
	boundaryAcceptFactor = 2
)

// Classify decides whether a world point lies inside, on, or outside a
// trimmed region, within tol. It is the package's single containment
// policy: every stage that needs inside/outside goes through here.
//
// A point is Inside when the region reports strict interior containment at
// tol. Otherwise the boundary loops are searched out to 5x tol, and the
// point is OnBoundary when the closest boundary point lies within 2x tol.
// Anything else, including a failed boundary solve, is Outside.
func Classify(reg Region, p r3.Vec, tol float64) Classification {
	if reg.Contains(p, tol, true) {
		return Inside
	}
	if _, dist, ok := reg.ClosestBoundary(p, boundarySearchFactor*tol); ok && dist <= boundaryAcceptFactor*tol {
		return OnBoundary
	}
	return Outside
}
