// Package slabgrid generates strut-and-tie idealization grids over trimmed
// planar regions.
//
// # Overview
//
// slabgrid is a pure geometry transform: given a bounded planar region
// (optionally containing holes), a set of structural control points
// (columns, walls) and a spacing policy, it produces a quad mesh together
// with orthogonal and diagonal tie lines, all clipped to the region. It is
// intended as the core of a parametric CAD authoring step; the host supplies
// geometry through the [Region] interface and receives native meshes and
// line segments back.
//
// # Quick Start
//
//	import "github.com/gridworks/slabgrid"
//
//	// A 10 x 6 m slab in the XY plane with a column at (2, 3).
//	region, _ := slabgrid.NewPolyRegion(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1},
//	    []slabgrid.Point{{0, 0}, {10000, 0}, {10000, 6000}, {0, 6000}})
//
//	res, err := slabgrid.Generate(region,
//	    []r3.Vec{{X: 2000, Y: 3000}},
//	    slabgrid.WithUnits(slabgrid.Metric),
//	    slabgrid.WithDiagonals(true))
//
// # Architecture
//
// The package is organized around small, independently testable stages:
//   - Classification: Classify decides Inside / OnBoundary / Outside
//   - Clipping: Clip trims candidate lines to the region
//   - Stations: BuildStations lays out 1-D grid coordinates with pivots
//   - Mesh assembly: Mesh accumulates deduplicated vertices and quad faces
//   - Orchestration: Generate validates inputs and sequences the stages
//
// All stages share a single containment policy (Classify); none of them
// re-derives inside/outside on its own. Per-element robustness failures
// (a point off the region, a line fully outside) are excluded from the
// result rather than reported as errors.
//
// # Concurrency
//
// One call to Generate is synchronous and keeps all intermediate state
// call-local. With WithWorkers, independent per-cell and per-line
// classification fans out across a worker pool; results are assembled by
// grid index, so output is identical regardless of worker count. Region
// implementations must support concurrent read-only queries for this to be
// safe ([PolyRegion] does).
package slabgrid
