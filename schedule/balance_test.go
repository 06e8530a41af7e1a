package schedule

import "testing"

func schedWithTotals(totals []int) *Schedule {
	maxWork := 1
	for _, n := range totals {
		if n > maxWork {
			maxWork = n
		}
	}
	sched := &Schedule{SubgridWorkers: len(totals), SubgridMaxWork: maxWork, Subgrid: newSubgridMatrix(len(totals), maxWork)}
	for w, n := range totals {
		for s := 0; s < n; s++ {
			sched.Subgrid[w][s] = SubgridWork{IU: w, IV: s, NBL: 1}
		}
	}
	return sched
}

func TestBalanceReducesSpread(t *testing.T) {
	sched := schedWithTotals([]int{10, 0})
	before := sched.WorkerTotals()

	result := Balance(sched)

	after := sched.WorkerTotals()
	if result.L1DeviationAfter > result.L1DeviationBefore {
		t.Errorf("L1 deviation increased: before=%g after=%g", result.L1DeviationBefore, result.L1DeviationAfter)
	}
	if sched.TotalNBL() != 10 {
		t.Errorf("total chunks changed across balancing: got %d, want 10 (before=%v after=%v)", sched.TotalNBL(), before, after)
	}
}

func TestBalanceAlreadyEvenIsNoOp(t *testing.T) {
	sched := schedWithTotals([]int{5, 5, 5})
	result := Balance(sched)
	if result.Swaps != 0 {
		t.Errorf("expected no swaps for an already-even schedule, got %d", result.Swaps)
	}
}

func TestBalanceSingleWorkerIsNoOp(t *testing.T) {
	sched := schedWithTotals([]int{7})
	result := Balance(sched)
	if result.Swaps != 0 {
		t.Errorf("expected no swaps with fewer than two workers, got %d", result.Swaps)
	}
}

func TestIabs(t *testing.T) {
	if iabs(-5) != 5 || iabs(5) != 5 || iabs(0) != 0 {
		t.Error("iabs did not return the absolute value")
	}
}
