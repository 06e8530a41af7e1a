package schedule

import (
	"math"

	"github.com/oskar-imaging/uvwsched/core"
)

// FacetResult is the facet-work assignment output: the dense matrix, its
// per-worker slot count (facet_max_work, checked by the facet_max_work > 1
// deadlock-risk warning), and the total facet count.
type FacetResult struct {
	Work    [][]FacetWork
	MaxWork int
	Count   int
}

// GenerateFacetWork implements component H. All facets within the field of
// view are assumed set (theta is generally larger than FOV, so this will
// not cover the entire image). Facets are dealt round-robin to facet
// workers: facet i -> worker i%W, slot i/W.
func GenerateFacetWork(spec *core.VisSpec, recomb core.RecombConfig, geo core.GeometryConstants, facetWorkers int) FacetResult {
	if facetWorkers == 0 {
		return FacetResult{}
	}

	yB := float64(recomb.YBSize) / float64(recomb.ImageSize)
	nfacet := 2*int(math.Ceil(spec.FOV/geo.Theta/yB/2-0.5)) + 1
	count := nfacet * nfacet
	maxWork := ceilDiv(count, facetWorkers)

	work := newFacetMatrix(facetWorkers, maxWork)
	for i := 0; i < count; i++ {
		iworker, iwork := i%facetWorkers, i/facetWorkers
		il := i/nfacet - nfacet/2
		im := i%nfacet - nfacet/2
		work[iworker][iwork] = FacetWork{
			IL: il, IM: im,
			OffL: il * recomb.YBSize,
			OffM: im * recomb.YBSize,
			Set:  true,
		}
	}

	return FacetResult{Work: work, MaxWork: maxWork, Count: count}
}
