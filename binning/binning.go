// Package binning implements components C and D: the adaptive chunk
// counter (bin_baseline) and the bin collector (collect_work /
// collect_baselines) that sweeps every (subgrid-cube, baseline) pair.
//
// The per-cube sweep in CollectBaselines is embarrassingly parallel: each
// cube index is touched by exactly one goroutine, writing disjoint output
// cells.
package binning

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/oskar-imaging/uvwsched/bbox"
	"github.com/oskar-imaging/uvwsched/core"
	"github.com/oskar-imaging/uvwsched/geometry"
)

// blockSize is the number of cube indices handed to a goroutine per unit of
// work.
const blockSize = 8

// WorkBL is one baseline's contribution to one subgrid cube.
type WorkBL struct {
	A1, A2   int
	Chunks   int
	MinW     float64
	Baseline *geometry.BaselineData
}

// CountChunks implements component C (bin_baseline): the number of
// overlapping (time-chunk x frequency-chunk) pairs between bl and the cube
// (iu, iv, iw), plus the minimum w coordinate any overlapping chunk touches.
func CountChunks(spec *core.VisSpec, bl *geometry.BaselineData, geo core.GeometryConstants, nsubgrid, nwlevels, iu, iv, iw int) (chunks int, minW float64) {
	sgMinU := geo.LamSg*float64(iu-nsubgrid/2) - geo.LamSg/2
	sgMaxU := geo.LamSg*float64(iu-nsubgrid/2) + geo.LamSg/2
	sgMinV := geo.LamSg*float64(iv-nsubgrid/2) - geo.LamSg/2
	sgMaxV := geo.LamSg*float64(iv-nsubgrid/2) + geo.LamSg/2
	sgMinW := geo.WStepSg*float64(iw-nwlevels/2) - geo.WStepSg/2
	sgMaxW := geo.WStepSg*float64(iw-nwlevels/2) + geo.WStepSg/2

	ntchunk := spec.TimeChunks()
	nfchunk := spec.FreqChunks()
	minW = sgMaxW

	for tchunk := 0; tchunk < ntchunk; tchunk++ {
		tstepMid := tchunk*spec.TimeChunk + spec.TimeChunk/2
		if tstepMid >= spec.TimeCount {
			tstepMid = spec.TimeCount - 1
		}
		positiveU := bl.UVWM[tstepMid][0] >= 0

		t0 := tchunk * spec.TimeChunk
		t1 := min(spec.TimeCount, (tchunk+1)*spec.TimeChunk) - 1

		fstep := 1
		for fchunk := 0; fchunk < nfchunk; fchunk += fstep {
			f0 := fchunk * spec.FreqChunk
			f1 := min(spec.FreqCount, (fchunk+fstep)*spec.FreqChunk) - 1

			uvwMin, uvwMax := bbox.BoundingBox(bl, !positiveU, t0, t1, f0, f1)

			overlaps := uvwMin[0] < sgMaxU && uvwMax[0] > sgMinU &&
				uvwMin[1] < sgMaxV && uvwMax[1] > sgMinV &&
				uvwMin[2] < sgMaxW && uvwMax[2] > sgMinW

			if overlaps {
				if fstep == 1 {
					chunks++
					minW = min(minW, uvwMin[2])
				} else {
					fstep /= 2
					fchunk -= fstep
				}
			} else {
				fchunk -= fstep
				fstep *= 2
			}
		}
	}
	return chunks, minW
}

// CubeBins is the per-cube binning result: a dense nsubgrid x nsubgrid x
// nwlevels array of chunk counts and baseline-work lists, indexed by Index.
type CubeBins struct {
	NSubgrid, NWLevels int
	NChunks            []int
	Bls                [][]WorkBL
}

// Index returns the flat index of cube (iu, iv, iw) within an
// nsubgrid x nsubgrid x nwlevels array, laid out iw-major (matching the
// original's ix = iw*nsubgrid^2 + iv*nsubgrid + iu).
func Index(nsubgrid, iu, iv, iw int) int {
	return iw*nsubgrid*nsubgrid + iv*nsubgrid + iu
}

// Stats summarises Phase 1 (the per-baseline envelope pass).
type Stats struct {
	MaxSgU, MaxSgV, MaxSgW int
	NSubgrid, NWLevels     int
	Warnings               []string
}

// CollectBaselines implements component D. Phase 1 computes each baseline's
// full-range bounding subgrid box and sizes the cube grid; Phase 2 sweeps
// every (cube, baseline) pair in parallel, populating CubeBins.
func CollectBaselines(ants core.AntennaConfig, baselines *geometry.Matrix, spec *core.VisSpec, geo core.GeometryConstants) (*CubeBins, *Stats, error) {
	if ants.Count < 2 {
		return nil, nil, &core.ConfigError{Msg: "at least two antennas are required to form a baseline"}
	}

	nant := ants.Count
	sgMins := make([][3]int, nant*nant)
	sgMaxs := make([][3]int, nant*nant)

	maxSgU, maxSgV, maxSgW := 0, 0, 0
	for a1 := 0; a1 < nant; a1++ {
		for a2 := a1 + 1; a2 < nant; a2++ {
			bl := baselines.Get(a1, a2)
			mn, mx := bbox.BoundingSubgrids(bl, false, geo.LamSg, geo.WStepSg)
			idx := a1 + nant*a2
			sgMins[idx], sgMaxs[idx] = mn, mx
			maxSgU = max(maxSgU, max(-mn[0], mx[0]))
			maxSgV = max(maxSgV, max(-mn[1], mx[1]))
			maxSgW = max(maxSgW, max(-mn[2], mx[2]))
		}
	}

	nsubgridCap := 2*int(math.Ceil(1/(2*geo.LamSg/geo.Lam))) + 3
	nsubgrid := min(nsubgridCap, max(2*maxSgU+1, 2*maxSgV+1))
	nwlevels := 2*maxSgW + 1

	var warnings []string
	if maxSgU > nsubgrid/2 {
		warnings = append(warnings, fmt.Sprintf("max_sg_u=%d was clipped by nsubgrid=%d: bounding-box underestimate", maxSgU, nsubgrid))
	}
	if maxSgV > nsubgrid/2 {
		warnings = append(warnings, fmt.Sprintf("max_sg_v=%d was clipped by nsubgrid=%d: bounding-box underestimate", maxSgV, nsubgrid))
	}

	bins := collectPhase2(ants, baselines, spec, geo, nsubgrid, nwlevels, sgMins, sgMaxs)

	return bins, &Stats{MaxSgU: maxSgU, MaxSgV: maxSgV, MaxSgW: maxSgW, NSubgrid: nsubgrid, NWLevels: nwlevels, Warnings: warnings}, nil
}

type cubeRange struct{ start, end int }

func collectPhase2(ants core.AntennaConfig, baselines *geometry.Matrix, spec *core.VisSpec, geo core.GeometryConstants, nsubgrid, nwlevels int, sgMins, sgMaxs [][3]int) *CubeBins {
	total := nsubgrid * nsubgrid * nwlevels
	bins := &CubeBins{
		NSubgrid: nsubgrid,
		NWLevels: nwlevels,
		NChunks:  make([]int, total),
		Bls:      make([][]WorkBL, total),
	}
	if total == 0 {
		return bins
	}

	blocks := make(chan cubeRange, (total+blockSize-1)/blockSize)
	for start := 0; start < total; start += blockSize {
		end := min(start+blockSize, total)
		blocks <- cubeRange{start, end}
	}
	close(blocks)

	numWorkers := min(runtime.GOMAXPROCS(0), (total+blockSize-1)/blockSize)
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range blocks {
				for ix := r.start; ix < r.end; ix++ {
					iw := ix / (nsubgrid * nsubgrid)
					rem := ix % (nsubgrid * nsubgrid)
					iv := rem / nsubgrid
					iu := rem % nsubgrid
					n, bls := collectCube(ants, baselines, spec, geo, nsubgrid, nwlevels, sgMins, sgMaxs, iu, iv, iw)
					bins.NChunks[ix] = n
					bins.Bls[ix] = bls
				}
			}
		}()
	}
	wg.Wait()

	return bins
}

// collectCube implements collect_work for a single cube: walk every
// baseline in canonical (a1, a2) order, keep those whose bounding box (or
// its negation, for conjugate symmetry) touches the cube, and count their
// actual overlapping chunks.
func collectCube(ants core.AntennaConfig, baselines *geometry.Matrix, spec *core.VisSpec, geo core.GeometryConstants, nsubgrid, nwlevels int, sgMins, sgMaxs [][3]int, iu, iv, iw int) (int, []WorkBL) {
	nant := ants.Count
	half := nsubgrid / 2
	halfW := nwlevels / 2

	nchunks := 0
	var bls []WorkBL
	seen := make(map[[2]int]bool)

	for a1 := 0; a1 < nant; a1++ {
		for a2 := a1 + 1; a2 < nant; a2++ {
			idx := a1 + nant*a2
			mn, mx := sgMins[idx], sgMaxs[idx]

			inPositive := iv >= half+mn[1] && iv <= half+mx[1] &&
				iu >= half+mn[0] && iu <= half+mx[0] &&
				iw >= halfW+mn[2] && iw <= halfW+mx[2]
			inNegative := iv >= half-mx[1] && iv <= half-mn[1] &&
				iu >= half-mx[0] && iu <= half-mn[0] &&
				iw >= halfW-mx[2] && iw <= halfW-mn[2]
			if !inPositive && !inNegative {
				continue
			}

			bl := baselines.Get(a1, a2)
			chunks, minW := CountChunks(spec, bl, geo, nsubgrid, nwlevels, iu, iv, iw)
			if chunks == 0 {
				continue
			}

			key := [2]int{a1, a2}
			if seen[key] {
				panic(fmt.Sprintf("baseline (%d,%d) counted twice in cube (%d,%d,%d)", a1, a2, iu, iv, iw))
			}
			seen[key] = true

			nchunks += chunks
			bls = append(bls, WorkBL{A1: a1, A2: a2, Chunks: chunks, MinW: minW, Baseline: bl})
		}
	}

	sort.SliceStable(bls, func(i, j int) bool { return bls[i].MinW < bls[j].MinW })
	return nchunks, bls
}
