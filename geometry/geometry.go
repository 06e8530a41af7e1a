// Package geometry implements component A: per-baseline UVW-vs-time tables
// derived from antenna positions and the observation's cached hour-angle
// trigonometry. The core calls the antenna-pair geometry (ha_to_uvw) only
// through HAToUVWFunc; NewStandardHAToUVW provides a standard equatorial
// implementation, and any other implementation can be passed in instead.
package geometry

import "github.com/oskar-imaging/uvwsched/core"

// SpeedOfLight in metres/second, used to convert UVW from metres to
// wavelengths.
const SpeedOfLight = 299792458.0

// HAToUVWFunc computes a baseline's (u, v, w) vector in metres at one time
// sample, given the cached hour-angle and declination trigonometry.
// NewStandardHAToUVW is the implementation this package provides; callers
// may supply their own (it depends on antenna positions and array geometry
// the core does not otherwise need).
type HAToUVWFunc func(a1, a2 int, haSin, haCos, decSin, decCos float64) (u, v, w float64)

// BaselineData holds one ordered antenna pair's UVW-vs-time table (in
// metres) and its frequency channel table.
type BaselineData struct {
	Antenna1, Antenna2 int
	TimeCount, FreqCount int
	UVWM []([3]float64) // metres, one entry per time sample
	Freq []float64      // Hz, one entry per channel
}

// UVWWavelengths converts UVWM[t] to wavelengths at channel f:
// uvw_l = uvw_m * (freq / c).
func (b *BaselineData) UVWWavelengths(t, f int) [3]float64 {
	scale := b.Freq[f] / SpeedOfLight
	m := b.UVWM[t]
	return [3]float64{m[0] * scale, m[1] * scale, m[2] * scale}
}

// ComputeBaseline builds the BaselineData for one ordered pair a1<a2: the
// UVW-in-metres table from the cached hour-angle/declination trigonometry via
// haToUVW, and a linear frequency table.
func ComputeBaseline(spec *core.VisSpec, a1, a2 int, haToUVW HAToUVWFunc) *BaselineData {
	bl := &BaselineData{
		Antenna1:  a1,
		Antenna2:  a2,
		TimeCount: spec.TimeCount,
		FreqCount: spec.FreqCount,
		UVWM:      make([]([3]float64), spec.TimeCount),
		Freq:      make([]float64, spec.FreqCount),
	}
	for i := 0; i < spec.TimeCount; i++ {
		u, v, w := haToUVW(a1, a2, spec.HASin[i], spec.HACos[i], spec.DecSin, spec.DecCos)
		bl.UVWM[i] = [3]float64{u, v, w}
	}
	for i := 0; i < spec.FreqCount; i++ {
		bl.Freq[i] = spec.FreqStart + spec.FreqStep*float64(i)
	}
	return bl
}

// Matrix is the flat a1+N*a2-indexed baseline-data matrix; only entries with
// a1<a2 are populated. N is AntennaConfig.Count.
type Matrix struct {
	N    int
	data []*BaselineData
}

// NewMatrix allocates an empty N x N matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{N: n, data: make([]*BaselineData, n*n)}
}

// Get returns the BaselineData for ordered pair (a1, a2), or nil if unset.
func (m *Matrix) Get(a1, a2 int) *BaselineData {
	return m.data[a1+m.N*a2]
}

func (m *Matrix) set(a1, a2 int, bl *BaselineData) {
	m.data[a1+m.N*a2] = bl
}

// ComputeAll computes BaselineData for every ordered pair a1<a2, in
// canonical (a1, a2) order, and returns the populated Matrix. Iteration must
// be deterministic; it is, being a plain sequential loop.
func ComputeAll(ants core.AntennaConfig, spec *core.VisSpec, haToUVW HAToUVWFunc) *Matrix {
	m := NewMatrix(ants.Count)
	for a1 := 0; a1 < ants.Count; a1++ {
		for a2 := a1 + 1; a2 < ants.Count; a2++ {
			m.set(a1, a2, ComputeBaseline(spec, a1, a2, haToUVW))
		}
	}
	return m
}
