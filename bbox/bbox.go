// Package bbox implements component B, the bounding-box engine: the
// axis-aligned (u,v,w) extent in wavelengths a baseline's trajectory sweeps
// across a given time range x frequency range.
//
// The approximation samples only the two time endpoints (exact in
// frequency, first-order in time within one chunk). Callers are
// responsible for keeping chunks small enough that this is accurate.
package bbox

import "github.com/oskar-imaging/uvwsched/geometry"

// BoundingBox returns the component-wise min and max, across the four
// corners {t0,t1} x {f0,f1}, of bl's UVW position in wavelengths. If negate
// is true, all four corners are sign-flipped first (this is how the +u and
// -u halves of a baseline's trajectory are folded onto the same subgrid
// half by the caller).
func BoundingBox(bl *geometry.BaselineData, negate bool, t0, t1, f0, f1 int) (min, max [3]float64) {
	uvw0 := bl.UVWM[t0]
	uvw1 := bl.UVWM[t1]

	scale0 := bl.Freq[f0] / geometry.SpeedOfLight
	scale1 := bl.Freq[f1] / geometry.SpeedOfLight
	if negate {
		scale0 = -scale0
		scale1 = -scale1
	}

	for i := 0; i < 3; i++ {
		a := uvw0[i] * scale0
		b := uvw0[i] * scale1
		c := uvw1[i] * scale0
		d := uvw1[i] * scale1
		min[i] = mmin(a, b, c, d)
		max[i] = mmax(a, b, c, d)
	}
	return min, max
}

func mmin(a, b, c, d float64) float64 { return min(a, min(b, min(c, d))) }
func mmax(a, b, c, d float64) float64 { return max(a, max(b, max(c, d))) }

// BoundingSubgrids computes the subgrid-index bounding box bl's full time x
// frequency range covers, by calling BoundingBox over the whole baseline and
// rounding each axis to the nearest subgrid index via lam_sg / wstep_sg.
func BoundingSubgrids(bl *geometry.BaselineData, negate bool, lamSg, wstepSg float64) (sgMin, sgMax [3]int) {
	uvwMin, uvwMax := BoundingBox(bl, negate, 0, bl.TimeCount-1, 0, bl.FreqCount-1)
	sgMin = [3]int{
		roundToInt(uvwMin[0] / lamSg),
		roundToInt(uvwMin[1] / lamSg),
		roundToInt(uvwMin[2] / wstepSg),
	}
	sgMax = [3]int{
		roundToInt(uvwMax[0] / lamSg),
		roundToInt(uvwMax[1] / lamSg),
		roundToInt(uvwMax[2] / wstepSg),
	}
	return sgMin, sgMax
}

func roundToInt(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return -int(-x + 0.5)
}
