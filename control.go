package slabgrid

import (
	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"
)

// Control-point policy constants, all relative to the resolved target
// spacing or the caller's tolerance.
const (
	// projectionDriftFraction bounds how far a raw input point may sit
	// from its surface projection before it is flagged as off-plane
	// input. Prevents far off-plane points from silently dragging the
	// grid to an unintended station.
	projectionDriftFraction = 0.2

	// controlLooseFactor relaxes classification for control-point
	// acceptance; support points live at slab edges, where solver noise
	// is worst.
	controlLooseFactor = 5

	// connectorRadiusFraction bounds the node search for connector lines.
	connectorRadiusFraction = 0.8

	// connectorCoverage is the minimum clipped/unclipped length ratio for
	// a connector to be kept. A connector truncated by a hole is dropped,
	// not shortened: a partial structural tie is misleading.
	connectorCoverage = 0.8

	// connectorFanout is the maximum number of grid nodes a control point
	// connects to.
	connectorFanout = 4
)

// ControlPoint is a support location that survived validation against the
// region.
type ControlPoint struct {
	// Raw is the caller-supplied world point.
	Raw r3.Vec

	// Param is the region parameter pair closest to Raw.
	Param Point

	// World is the surface point the grid actually uses. Always on the
	// region's surface, so mesh vertices built from it keep the
	// containment invariant even for off-plane input.
	World r3.Vec
}

// integrateControlPoints validates and projects the raw support points.
// Points whose closest-parameter solve fails, or whose chosen point does
// not classify inside-or-on at the loosened tolerance, are dropped
// silently: rejected points never influence the grid.
func integrateControlPoints(reg Region, raw []r3.Vec, spacing, tol float64) []ControlPoint {
	out := make([]ControlPoint, 0, len(raw))
	for _, p := range raw {
		param, ok := reg.ClosestParam(p)
		if !ok {
			Logger().Debug("slabgrid: control point dropped, no closest parameter", "point", p)
			continue
		}
		surface := reg.PointAt(param.U, param.V)
		if d := r3.Norm(r3.Sub(p, surface)); d >= projectionDriftFraction*spacing {
			// Far off-plane input. The surface point is still used, but
			// this usually means the caller picked the wrong reference.
			Logger().Debug("slabgrid: control point far off surface", "point", p, "dist", d)
		}
		if !Classify(reg, surface, controlLooseFactor*tol).InsideOrOn() {
			Logger().Debug("slabgrid: control point dropped, off region", "point", p)
			continue
		}
		out = append(out, ControlPoint{Raw: p, Param: param, World: surface})
	}
	return out
}

// nodeEntry is the R-tree record for one inside grid node.
type nodeEntry struct {
	node   *gridNode
	bounds rtreego.Rect
}

func (e *nodeEntry) Bounds() rtreego.Rect { return e.bounds }

// buildConnectors synthesizes straight ties from each control point to its
// nearest grid nodes.
//
// Candidates are the up-to-4 nearest inside nodes within 80% of the
// spacing, found through an R-tree over the node set. A candidate is kept
// only when its clipped portion covers at least 80% of its length;
// otherwise it crosses a hole or leaves the region and is dropped whole.
func buildConnectors(reg Region, ctrl []ControlPoint, g *gridLayout, spacing, tol float64) []Segment {
	nodes := g.insideNodes()
	if len(nodes) == 0 || len(ctrl) == 0 {
		return nil
	}

	tree := rtreego.NewTree(3, 2, 8)
	for _, n := range nodes {
		tree.Insert(&nodeEntry{
			node:   n,
			bounds: rtreego.Point{n.world.X, n.world.Y, n.world.Z}.ToRect(tol),
		})
	}

	radius := connectorRadiusFraction * spacing
	var out []Segment
	for _, c := range ctrl {
		// One extra neighbor: a control point sitting on a station owns
		// the coincident node, which must not consume a fanout slot.
		near := tree.NearestNeighbors(connectorFanout+1, rtreego.Point{c.World.X, c.World.Y, c.World.Z})
		kept := 0
		for _, hit := range near {
			if kept == connectorFanout {
				break
			}
			n := hit.(*nodeEntry).node
			seg := Segment{A: c.World, B: n.world}
			length := seg.Length()
			if length < tol || length > radius {
				continue
			}
			if clippedLength(seg, reg, tol) < connectorCoverage*length {
				Logger().Debug("slabgrid: connector dropped, truncated by boundary",
					"from", c.World, "to", n.world)
				continue
			}
			out = append(out, seg)
			kept++
		}
	}
	return out
}

// clippedLength returns the total inside-region length of a segment.
func clippedLength(seg Segment, reg Region, tol float64) float64 {
	var sum float64
	for _, s := range Clip(seg, reg, tol) {
		sum += s.Length()
	}
	return sum
}
