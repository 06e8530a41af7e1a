// Package schedule implements components E, F, G and H: the splitter, the
// balancer, the full-redistribute fallback and the facet-work assignment.
// It turns binning.CubeBins into a dense per-worker Schedule.
package schedule

import "github.com/oskar-imaging/uvwsched/binning"

// SubgridWork is one work item: a subgrid cube and the slice of baseline
// chunks assigned to it in this item (about work_max_nbl chunks total; the
// limit is soft, see popChunks).
type SubgridWork struct {
	IU, IV, IW          int
	OffU, OffV, OffW    int
	NBL                 int
	Bls                 []binning.WorkBL
}

// FacetWork is one facet tile assigned to one facet-worker slot. Set is
// false for pad slots that hold no real facet.
type FacetWork struct {
	IL, IM         int
	OffL, OffM     int
	Set            bool
}

// Schedule is the final dense work assignment: one subgrid matrix and one
// facet matrix, each [worker][slot].
type Schedule struct {
	SubgridWorkers, SubgridMaxWork int
	FacetWorkers, FacetMaxWork     int

	Subgrid [][]SubgridWork
	Facet   [][]FacetWork

	IUMin, IUMax, IVMin, IVMax int
}

func newSubgridMatrix(workers, maxWork int) [][]SubgridWork {
	m := make([][]SubgridWork, workers)
	for i := range m {
		m[i] = make([]SubgridWork, maxWork)
	}
	return m
}

func newFacetMatrix(workers, maxWork int) [][]FacetWork {
	m := make([][]FacetWork, workers)
	for i := range m {
		m[i] = make([]FacetWork, maxWork)
	}
	return m
}

// TotalNBL sums NBL across every slot of every worker. Splitting, dealing,
// balancing and the full-redistribute fallback must all preserve this sum.
func (s *Schedule) TotalNBL() int {
	total := 0
	for _, row := range s.Subgrid {
		for _, w := range row {
			total += w.NBL
		}
	}
	return total
}

// WorkerTotals returns, for each subgrid worker, the sum of NBL across its
// slots.
func (s *Schedule) WorkerTotals() []int {
	totals := make([]int, s.SubgridWorkers)
	for i, row := range s.Subgrid {
		sum := 0
		for _, w := range row {
			sum += w.NBL
		}
		totals[i] = sum
	}
	return totals
}

// computeBounds recomputes IUMin/IUMax/IVMin/IVMax from the current subgrid
// matrix contents (only non-empty slots count).
func (s *Schedule) computeBounds() {
	s.IUMin, s.IVMin = int(^uint(0)>>1), int(^uint(0)>>1)
	s.IUMax, s.IVMax = -s.IUMin-1, -s.IVMin-1
	any := false
	for _, row := range s.Subgrid {
		for _, w := range row {
			if w.NBL == 0 {
				continue
			}
			any = true
			s.IUMin = min(s.IUMin, w.IU)
			s.IUMax = max(s.IUMax, w.IU)
			s.IVMin = min(s.IVMin, w.IV)
			s.IVMax = max(s.IVMax, w.IV)
		}
	}
	if !any {
		s.IUMin, s.IUMax, s.IVMin, s.IVMax = 0, 0, 0, 0
	}
}
