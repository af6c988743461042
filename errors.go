package slabgrid

import "errors"

// Errors returned by [Generate]. All three abort the whole call at the
// orchestrator boundary; per-element robustness issues (an off-region
// control point, a line fully outside) never surface as errors and are
// excluded from the result instead.
var (
	// ErrInvalidArgument reports a nil region or an empty control-point
	// collection.
	ErrInvalidArgument = errors.New("slabgrid: invalid argument")

	// ErrRegionShape reports a region that does not reduce to a single
	// bounded planar face, or whose parametric domain cannot be extracted.
	ErrRegionShape = errors.New("slabgrid: region is not a single bounded planar face")

	// ErrMeshEmpty reports that grid assembly produced no vertices and no
	// tie lines, so there is no usable result to return.
	ErrMeshEmpty = errors.New("slabgrid: grid assembly produced an empty result")
)
