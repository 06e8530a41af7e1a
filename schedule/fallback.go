package schedule

import (
	"github.com/oskar-imaging/uvwsched/binning"
	"github.com/oskar-imaging/uvwsched/core"
)

// FullRedistribute implements component G: when the observation carries no
// visibilities (VisSpec.TimeCount == 0), this is a pure facet<->subgrid
// data-redistribution test. It tiles the image plane into a subgrid and a
// facet grid and deals both round-robin across their respective worker
// pools (tile i -> worker i%W, slot i/W), each with exactly one dummy
// baseline record so the work item is non-empty.
func FullRedistribute(recomb core.RecombConfig, geo core.GeometryConstants, subgridWorkers, facetWorkers int) *Schedule {
	sched := &Schedule{}

	if subgridWorkers > 0 {
		nsubgrid := recomb.ImageSize / int(geo.SgStep)
		total := nsubgrid * nsubgrid
		maxWork := ceilDiv(total, subgridWorkers)

		sched.SubgridWorkers = subgridWorkers
		sched.SubgridMaxWork = maxWork
		sched.Subgrid = newSubgridMatrix(subgridWorkers, maxWork)

		for i := 0; i < total; i++ {
			iworker, iwork := i%subgridWorkers, i/subgridWorkers
			iu := i / nsubgrid
			iv := i % nsubgrid
			sched.Subgrid[iworker][iwork] = SubgridWork{
				IU: iu, IV: iv, IW: 0,
				OffU: iu * int(geo.SgStep),
				OffV: iv * int(geo.SgStep),
				OffW: 0,
				NBL:  1,
				Bls:  []binning.WorkBL{{A1: 0, A2: 0, Chunks: 1}},
			}
		}

		sched.IUMin, sched.IUMax = 0, nsubgrid-1
		sched.IVMin, sched.IVMax = 0, nsubgrid-1
	}

	if facetWorkers > 0 {
		nfacet := recomb.ImageSize / recomb.YBSize
		total := nfacet * nfacet
		maxWork := ceilDiv(total, facetWorkers)

		sched.FacetWorkers = facetWorkers
		sched.FacetMaxWork = maxWork
		sched.Facet = newFacetMatrix(facetWorkers, maxWork)

		for i := 0; i < total; i++ {
			iworker, iwork := i%facetWorkers, i/facetWorkers
			il := i / nfacet
			im := i % nfacet
			sched.Facet[iworker][iwork] = FacetWork{
				IL: il, IM: im,
				OffL: il * recomb.YBSize,
				OffM: im * recomb.YBSize,
				Set:  true,
			}
		}
	}

	return sched
}
