package slabgrid

import (
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
)

// Clip computes the inside-region sub-segments of a straight line using
// exact boundary intersections.
//
// The segment is intersected against every boundary loop; the hit points
// become parameters along the segment, which are merged with the two
// endpoint parameters, sorted and deduplicated. Each adjacent parameter
// pair is kept only when its midpoint classifies Inside or OnBoundary, so
// a segment crossing a hole comes back split into the parts on either
// side. A degenerate (near-zero-length) segment yields nil, not an error.
func Clip(seg Segment, reg Region, tol float64) []Segment {
	length := seg.Length()
	if length < tol {
		return nil
	}

	params := []float64{0, 1}
	for _, hit := range reg.IntersectSegment(seg) {
		t := seg.paramOf(hit)
		if t > 0 && t < 1 {
			params = append(params, t)
		}
	}
	sort.Float64s(params)

	// Two parameters closer than tol along the segment are one crossing.
	ptol := tol / length

	var out []Segment
	prev := params[0]
	for _, t := range params[1:] {
		if scalar.EqualWithinAbs(t, prev, ptol) {
			continue
		}
		sub := Segment{A: seg.At(prev), B: seg.At(t)}
		if Classify(reg, sub.Midpoint(), tol).InsideOrOn() {
			out = append(out, sub)
		}
		prev = t
	}
	return out
}

// ClipSampled computes inside-region sub-segments by sampling instead of
// exact intersection. It exists for regions whose kernel cannot intersect
// a line against the boundary; [Clip] is the primary strategy.
//
// The segment is sampled at the given pitch, each sample is classified,
// and maximal runs of at least two consecutive inside samples become one
// sub-segment spanning the first to the last sample of the run.
//
// This is a documented approximation: a hole narrower than the sampling
// pitch can fall between two samples and be bridged by the output. Callers
// needing hole-exact clipping must use Clip.
func ClipSampled(seg Segment, reg Region, tol, pitch float64) []Segment {
	length := seg.Length()
	if length < tol || pitch <= 0 {
		return nil
	}

	n := int(length/pitch) + 1
	if n < 2 {
		n = 2
	}

	var out []Segment
	runStart := -1
	flush := func(end int) {
		// Runs of a single sample are noise, not a segment.
		if runStart >= 0 && end-runStart >= 1 {
			t0 := float64(runStart) / float64(n)
			t1 := float64(end) / float64(n)
			out = append(out, Segment{A: seg.At(t0), B: seg.At(t1)})
		}
		runStart = -1
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		if Classify(reg, seg.At(t), tol).InsideOrOn() {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i - 1)
	}
	flush(n)
	return out
}
