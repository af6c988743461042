package slabgrid

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gridworks/slabgrid/internal/parallel"
)

// UnitSystem selects the default grid spacing when no explicit spacing is
// supplied.
type UnitSystem int

const (
	// Metric defaults to 1000 length units between grid lines.
	Metric UnitSystem = iota

	// Imperial defaults to 48 length units between grid lines.
	Imperial
)

// String returns the name of the unit system.
func (u UnitSystem) String() string {
	switch u {
	case Metric:
		return "Metric"
	case Imperial:
		return "Imperial"
	}
	return "Unknown"
}

// Default spacings per unit system. These are the package's only
// unit-aware values; everything else scales off the resolved spacing.
const (
	defaultSpacingMetric   = 1000
	defaultSpacingImperial = 48
)

// defaultTolerance matches the absolute tolerance common to CAD document
// settings in millimeter-scale models.
const defaultTolerance = 1e-6

// config holds resolved per-call settings.
type config struct {
	units     UnitSystem
	spacing   float64 // 0 means resolve from units
	diagonals bool
	tol       float64
	workers   int
	sampled   bool
	pitch     float64
}

func defaultConfig() config {
	return config{
		units:   Metric,
		tol:     defaultTolerance,
		workers: 1,
	}
}

// Option configures a Generate call.
type Option func(*config)

// WithUnits selects the unit system used to resolve the default spacing.
// It has no effect when WithSpacing supplies an explicit value.
func WithUnits(u UnitSystem) Option {
	return func(c *config) { c.units = u }
}

// WithSpacing overrides the target grid spacing, in the region's length
// units. Non-positive values are ignored and the unit-system default
// applies.
func WithSpacing(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.spacing = s
		}
	}
}

// WithDiagonals adds both diagonals of every usable grid cell to the
// result, clipped like the orthogonal lines.
func WithDiagonals(on bool) Option {
	return func(c *config) { c.diagonals = on }
}

// WithTolerance sets the absolute geometric tolerance. Non-positive values
// are ignored.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// WithWorkers fans per-cell and per-line classification out across the
// given number of goroutines. Zero or negative selects GOMAXPROCS. The
// result is identical for any worker count; the region must support
// concurrent read-only queries.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithSampledClipping replaces exact line clipping with sampling at the
// given pitch, for regions whose kernel cannot intersect lines against the
// boundary. A hole narrower than the pitch may be bridged by the output;
// see [ClipSampled]. Non-positive pitches are ignored.
func WithSampledClipping(pitch float64) Option {
	return func(c *config) {
		if pitch > 0 {
			c.sampled = true
			c.pitch = pitch
		}
	}
}

// Result is the generated idealization grid.
type Result struct {
	// Mesh is the compacted quad mesh over the inside grid cells.
	Mesh *Mesh

	// Orthogonal holds the clipped station lines of both axes, plus the
	// control-point connector ties.
	Orthogonal []Segment

	// Diagonal holds the clipped cell diagonals; empty unless
	// WithDiagonals was set.
	Diagonal []Segment
}

// Generate builds a strut-and-tie grid over a trimmed planar region.
//
// supports are the structural control points (columns, walls); accepted
// points snap grid stations to themselves on both axes and gain connector
// ties to nearby grid nodes. Support points off the region are excluded
// silently, as are lines fully outside; only a nil region, an invalid
// region shape, a missing support set or an entirely empty result abort
// the call.
//
// The call is synchronous and leaves no shared state behind; the region
// and support slice are never mutated.
func Generate(reg Region, supports []r3.Vec, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if reg == nil {
		return nil, fmt.Errorf("%w: nil region", ErrInvalidArgument)
	}
	if len(supports) == 0 {
		return nil, fmt.Errorf("%w: empty control-point collection", ErrInvalidArgument)
	}
	dom, ok := reg.Domain()
	if !ok || !dom.Valid() {
		return nil, ErrRegionShape
	}

	spacing := cfg.spacing
	if spacing == 0 {
		switch cfg.units {
		case Imperial:
			spacing = defaultSpacingImperial
		default:
			spacing = defaultSpacingMetric
		}
	}
	tol := cfg.tol
	pool := parallel.New(cfg.workers)

	clip := func(seg Segment) []Segment { return Clip(seg, reg, tol) }
	if cfg.sampled {
		Logger().Warn("slabgrid: sampled clipping in use, holes narrower than the pitch may be bridged",
			"pitch", cfg.pitch)
		clip = func(seg Segment) []Segment { return ClipSampled(seg, reg, tol, cfg.pitch) }
	}

	ctrl := integrateControlPoints(reg, supports, spacing, tol)

	pivotU := make([]float64, len(ctrl))
	pivotV := make([]float64, len(ctrl))
	for i, c := range ctrl {
		pivotU[i] = c.Param.U - dom.U.Min
		pivotV[i] = c.Param.V - dom.V.Min
	}
	us := offsetStations(BuildStations(dom.U.Length(), spacing, pivotU, tol), dom.U.Min)
	vs := offsetStations(BuildStations(dom.V.Length(), spacing, pivotV, tol), dom.V.Min)

	mesh := NewMesh(tol)
	ctrlWorld := make([]r3.Vec, len(ctrl))
	ctrlVertex := make([]int, len(ctrl))
	for i, c := range ctrl {
		ctrlWorld[i] = c.World
		ctrlVertex[i] = mesh.AddVertex(c.World)
	}

	layout := buildGrid(mesh, reg, us, vs, ctrlWorld, ctrlVertex, tol, pool)

	// Candidate station lines span the full domain extent on the other
	// axis; clipping trims them to the region.
	candidates := make([]Segment, 0, len(us)+len(vs))
	for _, u := range us {
		candidates = append(candidates, Segment{
			A: reg.PointAt(u, dom.V.Min),
			B: reg.PointAt(u, dom.V.Max),
		})
	}
	for _, v := range vs {
		candidates = append(candidates, Segment{
			A: reg.PointAt(dom.U.Min, v),
			B: reg.PointAt(dom.U.Max, v),
		})
	}
	ortho := clipAll(pool, candidates, clip)

	var diag []Segment
	if cfg.diagonals {
		var dcand []Segment
		for i := 0; i+1 < len(us); i++ {
			for j := 0; j+1 < len(vs); j++ {
				if layout.cellOK == nil || !layout.cellOK[i][j] {
					continue
				}
				dcand = append(dcand,
					Segment{A: layout.nodes[i][j].world, B: layout.nodes[i+1][j+1].world},
					Segment{A: layout.nodes[i+1][j].world, B: layout.nodes[i][j+1].world},
				)
			}
		}
		diag = clipAll(pool, dcand, clip)
	}

	ortho = append(ortho, buildConnectors(reg, ctrl, layout, spacing, tol)...)

	mesh.ComputeNormals()
	mesh.Compact()

	if len(mesh.Vertices) == 0 && len(ortho) == 0 && len(diag) == 0 {
		return nil, ErrMeshEmpty
	}

	Logger().Info("slabgrid: grid generated",
		"stationsU", len(us), "stationsV", len(vs),
		"controlPoints", len(ctrl),
		"vertices", len(mesh.Vertices), "faces", len(mesh.Quads),
		"orthogonal", len(ortho), "diagonal", len(diag))

	return &Result{Mesh: mesh, Orthogonal: ortho, Diagonal: diag}, nil
}

// offsetStations shifts relative station values onto the axis interval.
func offsetStations(stations []float64, min float64) []float64 {
	for i := range stations {
		stations[i] += min
	}
	return stations
}

// clipAll clips candidate lines on the pool, assembling results in
// candidate order.
func clipAll(pool *parallel.Pool, candidates []Segment, clip func(Segment) []Segment) []Segment {
	slots := make([][]Segment, len(candidates))
	pool.For(len(candidates), func(i int) {
		slots[i] = clip(candidates[i])
	})
	var out []Segment
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}
