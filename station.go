package slabgrid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// maxStationsPerAxis bounds the regular subdivision count so that a
// pathological spacing input (spacing << domain length) cannot request
// unbounded work.
const maxStationsPerAxis = 200

// pivotSnapFraction is the fraction of the regular spacing within which a
// pivot is considered already represented by an existing station.
const pivotSnapFraction = 0.4

// BuildStations computes the ordered 1-D grid coordinates along one
// parametric axis, measured from 0 to length.
//
// The regular stations divide the length into round(length/spacing) equal
// spans, clamped to [1, 200] spans. Each pivot is then inserted unless an
// existing station already lies within 40% of the regular spacing of it.
// Pivots outside [0, length] are clamped onto the axis before insertion.
//
// The result is strictly increasing and duplicate-free: no two stations
// lie within tol of each other.
func BuildStations(length, spacing float64, pivots []float64, tol float64) []float64 {
	if length <= 0 || spacing <= 0 {
		return nil
	}

	n := int(math.Round(length / spacing))
	if n < 1 {
		n = 1
	} else if n > maxStationsPerAxis {
		n = maxStationsPerAxis
	}

	stations := make([]float64, n+1)
	floats.Span(stations, 0, length)

	snap := pivotSnapFraction * length / float64(n)
	for _, p := range pivots {
		if p < -tol || p > length+tol {
			continue
		}
		p = math.Max(0, math.Min(length, p))
		represented := false
		for _, s := range stations {
			if math.Abs(s-p) <= snap {
				represented = true
				break
			}
		}
		if !represented {
			stations = append(stations, p)
		}
	}

	sort.Float64s(stations)

	// Collapse anything closer than tol; pivots that survived the snap
	// test cannot land here, so this only removes numeric duplicates.
	out := stations[:1]
	for _, s := range stations[1:] {
		if s-out[len(out)-1] > tol {
			out = append(out, s)
		}
	}
	return out
}
