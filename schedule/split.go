package schedule

import (
	"github.com/oskar-imaging/uvwsched/binning"
	"github.com/oskar-imaging/uvwsched/core"
)

// WorkSplitThreshold is the multiple of the average chunk count per
// populated cube that one work item may hold; it gives one of the two terms
// of work_max_nbl (the other is ceil(nbl_max/subgrid_workers)).
const WorkSplitThreshold = 3

// SplitResult is the flat, cube-ordered list of work items the splitter
// produced, along with the threshold it used.
type SplitResult struct {
	Items      []SubgridWork
	WorkMaxNBL int
}

// Split implements component E: computes work_max_nbl and slices every
// populated cube's baseline list into items of about work_max_nbl chunks
// each (the limit is soft — see popChunks). A cube always yields exactly
// ceil(NChunks[ix]/work_max_nbl) items: if a soft over-pop drains its list
// before that many iterations run out, the remaining iterations still fire
// and produce zero-chunk pad items, matching the original's fixed-iteration
// assignment loop. Items are produced in the canonical iw-outer, iu-middle,
// iv-inner order that Deal consumes.
func Split(bins *binning.CubeBins, geo core.GeometryConstants, subgridWorkers int) SplitResult {
	totalChunks, populatedCubes, nblMax := 0, 0, 0
	for _, n := range bins.NChunks {
		if n > 0 {
			populatedCubes++
		}
		totalChunks += n
		nblMax = max(nblMax, n)
	}
	if populatedCubes == 0 {
		return SplitResult{}
	}

	workMaxNBL := max(WorkSplitThreshold*totalChunks/populatedCubes, ceilDiv(nblMax, subgridWorkers))
	if workMaxNBL < 1 {
		workMaxNBL = 1
	}

	var items []SubgridWork
	nsubgrid, nwlevels := bins.NSubgrid, bins.NWLevels
	for iw := 0; iw < nwlevels; iw++ {
		for iu := 0; iu < nsubgrid; iu++ {
			for iv := 0; iv < nsubgrid; iv++ {
				ix := binning.Index(nsubgrid, iu, iv, iw)
				if bins.NChunks[ix] == 0 {
					continue
				}
				remaining := bins.Bls[ix]
				nItems := ceilDiv(bins.NChunks[ix], workMaxNBL)
				signedIU, signedIV, signedIW := iu-nsubgrid/2, iv-nsubgrid/2, iw-nwlevels/2
				for k := 0; k < nItems; k++ {
					popped, n, rest := popChunks(remaining, workMaxNBL)
					items = append(items, SubgridWork{
						IU: signedIU, IV: signedIV, IW: signedIW,
						OffU: int(geo.SgStep) * signedIU,
						OffV: int(geo.SgStep) * signedIV,
						OffW: int(geo.SgStepW) * signedIW,
						NBL:  n,
						Bls:  popped,
					})
					remaining = rest
				}
			}
		}
	}

	return SplitResult{Items: items, WorkMaxNBL: workMaxNBL}
}

// popChunks removes whole WorkBL records from the head of bls until the
// next one would exceed n chunks (the record that crosses the threshold is
// still included — the limit is soft). Returns the popped prefix, its total
// chunk count, and the remaining suffix. An empty bls returns an empty
// popped slice and zero chunks: Split's fixed iteration count can call this
// on an already-drained cube when a prior soft over-pop took more than its
// nominal share.
func popChunks(bls []binning.WorkBL, n int) (popped []binning.WorkBL, nchunks int, rest []binning.WorkBL) {
	if len(bls) == 0 {
		return nil, 0, bls
	}
	i := 0
	for i < len(bls)-1 && n > bls[i].Chunks {
		nchunks += bls[i].Chunks
		n -= bls[i].Chunks
		i++
	}
	nchunks += bls[i].Chunks
	return bls[:i+1], nchunks, bls[i+1:]
}

// Deal implements the deal phase of component F: items are handed to
// worker 0, 1, ..., W-1, 0, 1, ... in order, filling the assignment matrix
// in diagonal stripes over (u,v,w) space.
func Deal(items []SubgridWork, subgridWorkers int) *Schedule {
	nwork := len(items)
	subgridMaxWork := ceilDiv(nwork, subgridWorkers)

	sched := &Schedule{
		SubgridWorkers: subgridWorkers,
		SubgridMaxWork: subgridMaxWork,
		Subgrid:        newSubgridMatrix(subgridWorkers, subgridMaxWork),
	}

	iworker, iwork := 0, 0
	for _, item := range items {
		sched.Subgrid[iworker][iwork] = item
		iworker++
		if iworker >= subgridWorkers {
			iworker = 0
			iwork++
		}
	}

	sched.computeBounds()
	return sched
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
