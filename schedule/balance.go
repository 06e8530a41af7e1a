package schedule

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// workerPrio pairs a worker index with its current total chunk count, the
// unit the swap phase sorts and walks.
type workerPrio struct {
	worker int
	nbl    int
}

// BalanceResult reports how much the swap phase changed the load profile.
type BalanceResult struct {
	Swaps              int
	L1DeviationBefore  float64
	L1DeviationAfter   float64
}

// Balance implements the swap phase of component F: repeatedly sorts
// workers by total load, and for the most- and least-loaded pair looks for
// a single slot swap that brings their totals closer together, until a full
// sweep finds no improving swap. The comparator is a strict ascending sort;
// the original's compare_prio_nbl is not a strict weak order and is not
// reproduced here.
func Balance(sched *Schedule) BalanceResult {
	w := sched.SubgridWorkers
	totalsBefore := sched.WorkerTotals()
	l1Before := l1DeviationFromMean(totalsBefore)

	if w < 2 {
		return BalanceResult{L1DeviationBefore: l1Before, L1DeviationAfter: l1Before}
	}

	prios := make([]workerPrio, w)
	sum := 0
	for i, n := range totalsBefore {
		prios[i] = workerPrio{worker: i, nbl: n}
		sum += n
	}
	average := sum / w

	swaps := 0
	for {
		sort.Slice(prios, func(i, j int) bool {
			if prios[i].nbl != prios[j].nbl {
				return prios[i].nbl < prios[j].nbl
			}
			return prios[i].worker < prios[j].worker
		})

		improvement := false
		lo, hi := 0, w-1
		for lo < hi {
			diff := prios[hi].nbl - prios[lo].nbl
			worker1, worker2 := prios[lo].worker, prios[hi].worker
			work1, work2 := sched.Subgrid[worker1], sched.Subgrid[worker2]

			best := -1
			bestDiff := diff
			for s := 0; s < sched.SubgridMaxWork; s++ {
				wdiff := work2[s].NBL - work1[s].NBL
				if d := iabs(diff - 2*wdiff); d < bestDiff {
					best = s
					bestDiff = d
				}
			}

			if best != -1 {
				work1[best], work2[best] = work2[best], work1[best]
				prios[lo].nbl += work1[best].NBL - work2[best].NBL
				prios[hi].nbl += work2[best].NBL - work1[best].NBL
				improvement = true
				swaps++
				break
			}

			if iabs(prios[hi].nbl-average) > iabs(prios[lo].nbl-average) {
				lo++
			} else {
				hi--
			}
		}

		if !improvement {
			break
		}
	}

	sched.computeBounds()
	l1After := l1DeviationFromMean(sched.WorkerTotals())
	return BalanceResult{Swaps: swaps, L1DeviationBefore: l1Before, L1DeviationAfter: l1After}
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// l1DeviationFromMean computes sum_i |totals[i] - mean(totals)|, the load
// imbalance metric the swap phase is expected to shrink (or leave unchanged).
func l1DeviationFromMean(totals []int) float64 {
	if len(totals) == 0 {
		return 0
	}
	fs := make([]float64, len(totals))
	for i, t := range totals {
		fs[i] = float64(t)
	}
	mean := stat.Mean(fs, nil)
	dev := make([]float64, len(fs))
	for i, f := range fs {
		dev[i] = math.Abs(f - mean)
	}
	return floats.Sum(dev)
}
