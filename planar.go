package slabgrid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r3"
)

// PolyRegion is a self-contained [Region] over a plane frame with polygonal
// boundaries: one outer ring and zero or more hole rings, given in the
// plane's parameter space. It serves hosts that have no CAD kernel of their
// own, and the package's own tests.
//
// A PolyRegion is immutable after construction and therefore safe for
// concurrent use.
type PolyRegion struct {
	origin r3.Vec
	axisU  r3.Vec // unit
	axisV  r3.Vec // unit, perpendicular to axisU
	normal r3.Vec // unit, axisU x axisV

	outer orb.Ring
	holes []orb.Ring

	domain Domain
}

// NewPolyRegion builds a planar region from a frame and boundary rings.
// axisU and axisV must be non-degenerate and mutually perpendicular; they
// are normalized internally. The outer ring needs at least three vertices;
// rings are closed automatically. Hole rings lie inside the outer ring;
// that is the caller's responsibility and is not validated here.
func NewPolyRegion(origin, axisU, axisV r3.Vec, outer []Point, holes ...[]Point) (*PolyRegion, error) {
	if r3.Norm(axisU) == 0 || r3.Norm(axisV) == 0 {
		return nil, fmt.Errorf("%w: degenerate plane axis", ErrInvalidArgument)
	}
	u := r3.Unit(axisU)
	v := r3.Unit(axisV)
	if math.Abs(r3.Dot(u, v)) > 1e-9 {
		return nil, fmt.Errorf("%w: plane axes are not perpendicular", ErrInvalidArgument)
	}
	if len(outer) < 3 {
		return nil, fmt.Errorf("%w: outer boundary needs at least 3 vertices", ErrRegionShape)
	}

	reg := &PolyRegion{
		origin: origin,
		axisU:  u,
		axisV:  v,
		normal: r3.Unit(r3.Cross(u, v)),
		outer:  closedRing(outer),
	}
	for _, h := range holes {
		if len(h) < 3 {
			return nil, fmt.Errorf("%w: hole boundary needs at least 3 vertices", ErrRegionShape)
		}
		reg.holes = append(reg.holes, closedRing(h))
	}

	b := reg.outer.Bound()
	reg.domain = Domain{
		U: Interval{Min: b.Min.X(), Max: b.Max.X()},
		V: Interval{Min: b.Min.Y(), Max: b.Max.Y()},
	}
	if !reg.domain.Valid() {
		return nil, fmt.Errorf("%w: outer boundary has zero extent", ErrRegionShape)
	}
	return reg, nil
}

// closedRing converts parameter points to an orb ring, closing it if the
// first and last vertices differ.
func closedRing(pts []Point) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.U, p.V})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// Domain returns the parametric bounding box of the outer ring.
func (r *PolyRegion) Domain() (Domain, bool) {
	return r.domain, true
}

// PointAt evaluates a parameter pair to a world point.
func (r *PolyRegion) PointAt(u, v float64) r3.Vec {
	return r3.Add(r.origin, r3.Add(r3.Scale(u, r.axisU), r3.Scale(v, r.axisV)))
}

// ClosestParam projects a world point onto the plane frame.
// The solve cannot fail for a plane, so the second result is always true.
func (r *PolyRegion) ClosestParam(p r3.Vec) (Point, bool) {
	uv, _ := r.project(p)
	return uv, true
}

// project returns the in-plane parameters of p and its signed off-plane
// distance.
func (r *PolyRegion) project(p r3.Vec) (Point, float64) {
	d := r3.Sub(p, r.origin)
	return Point{U: r3.Dot(d, r.axisU), V: r3.Dot(d, r.axisV)}, r3.Dot(d, r.normal)
}

// Loops returns the boundary rings as closed world polylines, outer first.
func (r *PolyRegion) Loops() []Loop {
	loops := make([]Loop, 0, 1+len(r.holes))
	loops = append(loops, r.liftRing(r.outer))
	for _, h := range r.holes {
		loops = append(loops, r.liftRing(h))
	}
	return loops
}

func (r *PolyRegion) liftRing(ring orb.Ring) Loop {
	loop := make(Loop, len(ring))
	for i, pt := range ring {
		loop[i] = r.PointAt(pt.X(), pt.Y())
	}
	return loop
}

// Contains reports whether p lies in the region at tol. Strict containment
// additionally requires p to clear every boundary by more than tol.
func (r *PolyRegion) Contains(p r3.Vec, tol float64, strict bool) bool {
	uv, off := r.project(p)
	if math.Abs(off) > tol {
		return false
	}
	pt := orb.Point{uv.U, uv.V}
	inside := planar.RingContains(r.outer, pt)
	if inside {
		for _, h := range r.holes {
			if planar.RingContains(h, pt) {
				inside = false
				break
			}
		}
	}
	d := r.boundaryDist(uv)
	if strict {
		return inside && d > tol
	}
	return inside || d <= tol
}

// boundaryDist returns the in-plane distance from uv to the nearest
// boundary edge of any ring.
func (r *PolyRegion) boundaryDist(uv Point) float64 {
	best := math.Inf(1)
	visit := func(ring orb.Ring) {
		for i := 0; i+1 < len(ring); i++ {
			_, d := closestOnEdge(uv, ring[i], ring[i+1])
			if d < best {
				best = d
			}
		}
	}
	visit(r.outer)
	for _, h := range r.holes {
		visit(h)
	}
	return best
}

// closestOnEdge returns the point on edge a-b closest to uv, and its
// distance.
func closestOnEdge(uv Point, a, b orb.Point) (Point, float64) {
	pa := Point{U: a.X(), V: a.Y()}
	pb := Point{U: b.X(), V: b.Y()}
	e := pb.Sub(pa)
	ee := e.Dot(e)
	t := 0.0
	if ee > 0 {
		t = uv.Sub(pa).Dot(e) / ee
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	q := pa.Add(e.Mul(t))
	return q, uv.Dist(q)
}

// ClosestBoundary returns the closest boundary point within maxDist of p.
// The returned distance is measured in world space, including any off-plane
// component of p.
func (r *PolyRegion) ClosestBoundary(p r3.Vec, maxDist float64) (r3.Vec, float64, bool) {
	uv, _ := r.project(p)
	best := math.Inf(1)
	var bestPt Point
	visit := func(ring orb.Ring) {
		for i := 0; i+1 < len(ring); i++ {
			q, d := closestOnEdge(uv, ring[i], ring[i+1])
			if d < best {
				best = d
				bestPt = q
			}
		}
	}
	visit(r.outer)
	for _, h := range r.holes {
		visit(h)
	}
	if math.IsInf(best, 1) {
		return r3.Vec{}, 0, false
	}
	world := r.PointAt(bestPt.U, bestPt.V)
	dist := r3.Norm(r3.Sub(p, world))
	if dist > maxDist {
		return r3.Vec{}, 0, false
	}
	return world, dist, true
}

// IntersectSegment returns the boundary crossings of a world segment. The
// segment is projected onto the plane; crossings are solved edge by edge in
// parameter space and lifted back to world points.
func (r *PolyRegion) IntersectSegment(s Segment) []r3.Vec {
	a, _ := r.project(s.A)
	b, _ := r.project(s.B)
	dir := b.Sub(a)

	var hits []r3.Vec
	visit := func(ring orb.Ring) {
		for i := 0; i+1 < len(ring); i++ {
			c := Point{U: ring[i].X(), V: ring[i].Y()}
			e := Point{U: ring[i+1].X(), V: ring[i+1].Y()}.Sub(c)
			denom := dir.Cross(e)
			if math.Abs(denom) < 1e-12 {
				continue // parallel or collinear edge
			}
			ca := c.Sub(a)
			t := ca.Cross(e) / denom
			u := ca.Cross(dir) / denom
			if t < 0 || t > 1 || u < 0 || u > 1 {
				continue
			}
			q := a.Add(dir.Mul(t))
			hits = append(hits, r.PointAt(q.U, q.V))
		}
	}
	visit(r.outer)
	for _, h := range r.holes {
		visit(h)
	}
	return hits
}
