// Package core holds the configuration and derived-geometry types shared by
// the scheduling packages (geometry, binning, schedule): antenna and
// visibility specs, recombination geometry, and the worker-pool config. It
// is a leaf package so that those packages can depend on it without the
// root package depending back on them.
package core

import (
	"fmt"
	"math"
)

// ConfigError reports caller-supplied configuration that the core refuses to
// run against (as opposed to an assertion failure, which indicates a bug in
// the core itself and panics instead).
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// AntennaConfig describes the antennas of the observation. The core only
// consumes Count; Positions is carried through for external collaborators
// (e.g. the HAToUVWFunc implementation) that need it.
type AntennaConfig struct {
	Count     int
	Positions [][3]float64 // metres, antenna-frame; opaque to the core
}

// NumBaselines returns N*(N-1)/2, the number of ordered pairs a1<a2.
func (a AntennaConfig) NumBaselines() int {
	return a.Count * (a.Count - 1) / 2
}

// VisSpec describes the observation's time and frequency sampling.
type VisSpec struct {
	TimeCount int
	TimeStart float64 // hours
	TimeStep  float64 // hours
	TimeChunk int      // >= 1

	FreqCount int
	FreqStart float64 // Hz
	FreqStep  float64 // Hz
	FreqChunk int      // >= 1

	Dec float64 // declination, radians
	FOV float64 // field of view, radians

	// Cached trigonometric values, populated by CacheTrig. Nil until then.
	HASin, HACos []float64
	DecSin, DecCos float64
}

// TimeChunks returns ceil(TimeCount/TimeChunk).
func (v *VisSpec) TimeChunks() int {
	return ceilDiv(v.TimeCount, v.TimeChunk)
}

// FreqChunks returns ceil(FreqCount/FreqChunk).
func (v *VisSpec) FreqChunks() int {
	return ceilDiv(v.FreqCount, v.FreqChunk)
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// CacheTrig fills HASin, HACos, DecSin and DecCos from TimeStart/TimeStep/Dec.
// Hour angle is sampled at time_start + time_step*i (hours) and converted to
// radians of Earth rotation via the pi/12 factor (24h == 2*pi).
func (v *VisSpec) CacheTrig() {
	v.HASin = make([]float64, v.TimeCount)
	v.HACos = make([]float64, v.TimeCount)
	for i := 0; i < v.TimeCount; i++ {
		t := v.TimeStart + v.TimeStep*float64(i)
		ha := t * math.Pi / 12
		v.HASin[i] = math.Sin(ha)
		v.HACos[i] = math.Cos(ha)
	}
	v.DecSin = math.Sin(v.Dec)
	v.DecCos = math.Cos(v.Dec)
}

// RecombConfig carries the recombination/gridder geometry parameters that
// the core reads but never computes: they belong to the FFT/recombination
// subsystem out of this spec's scope.
type RecombConfig struct {
	ImageSize int
	XASize    int // subgrid spacing in the image grid -> SgStep
	YBSize    int // facet spacing in the image grid
	GridderX0 float64 // default 0.5
	WGridderX0 float64 // default 0.5
}

// NewRecombConfig returns a RecombConfig with the conventional gridder x0
// defaults (0.5).
func NewRecombConfig(imageSize, xaSize, ybSize int) RecombConfig {
	return RecombConfig{
		ImageSize:  imageSize,
		XASize:     xaSize,
		YBSize:     ybSize,
		GridderX0:  0.5,
		WGridderX0: 0.5,
	}
}

// GeometryConstants are the derived uvw-space quantities every downstream
// component needs: the grid resolution theta, the w-projection step wstep,
// and the per-subgrid steps lam_sg/wstep_sg.
type GeometryConstants struct {
	Theta    float64
	MaxN     float64
	WStep    float64
	Lam      float64
	SgStep   float64
	SgStepW  float64
	LamSg    float64
	WStepSg  float64
}

// DeriveGeometry computes GeometryConstants from the field of view and the
// recombination configuration. Returns a ConfigError if 2*(fov/2)^2 > 1 (the
// w-projection's max_n term would be imaginary).
func DeriveGeometry(fov float64, rc RecombConfig) (GeometryConstants, error) {
	maxLM := fov / 2
	if 2*maxLM*maxLM > 1 {
		return GeometryConstants{}, configErrorf("field of view too large: fov/2 = %g must satisfy 2*(fov/2)^2 <= 1", maxLM)
	}
	theta := maxLM / rc.GridderX0
	maxN := 1 - math.Sqrt(1-2*maxLM*maxLM)
	wstep := rc.WGridderX0 / maxN
	lam := 1 / theta
	sgStep := float64(rc.XASize)
	sgStepW := 1.0
	return GeometryConstants{
		Theta:   theta,
		MaxN:    maxN,
		WStep:   wstep,
		Lam:     lam,
		SgStep:  sgStep,
		SgStepW: sgStepW,
		LamSg:   sgStep / theta,
		WStepSg: sgStepW * wstep,
	}, nil
}

// ScheduleConfig groups the worker-pool sizes and diagnostic dump flags that
// drive the splitter/balancer/facet-assignment stage.
type ScheduleConfig struct {
	SubgridWorkers int
	FacetWorkers   int

	DumpBaselineBins bool
	DumpSubgridWork  bool
}

// Validate returns a ConfigError for worker-pool configurations the core
// refuses to run, given whether the observation carries visibilities
// (TimeCount > 0) or is a pure facet<->subgrid redistribution (TimeCount == 0).
func (s ScheduleConfig) Validate(hasVisibilities bool) error {
	if hasVisibilities && s.SubgridWorkers == 0 {
		return configErrorf("subgrid_workers == 0 with time_count > 0")
	}
	if !hasVisibilities && s.SubgridWorkers == 0 && s.FacetWorkers == 0 {
		return configErrorf("both subgrid_workers and facet_workers are 0 with time_count == 0: nothing to redistribute")
	}
	return nil
}
