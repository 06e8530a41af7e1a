package schedule

import (
	"testing"

	"github.com/oskar-imaging/uvwsched/binning"
	"github.com/oskar-imaging/uvwsched/core"
)

func makeBins(nsubgrid, nwlevels int, populated map[[3]int]int) *binning.CubeBins {
	total := nsubgrid * nsubgrid * nwlevels
	bins := &binning.CubeBins{NSubgrid: nsubgrid, NWLevels: nwlevels, NChunks: make([]int, total), Bls: make([][]binning.WorkBL, total)}
	for coord, n := range populated {
		ix := binning.Index(nsubgrid, coord[0], coord[1], coord[2])
		bins.NChunks[ix] = n
		bls := make([]binning.WorkBL, 0, n)
		for i := 0; i < n; i++ {
			bls = append(bls, binning.WorkBL{A1: i, A2: i + 1, Chunks: 1})
		}
		bins.Bls[ix] = bls
	}
	return bins
}

func TestPopChunksSoftLimit(t *testing.T) {
	bls := []binning.WorkBL{{A1: 0, A2: 1, Chunks: 5}, {A1: 0, A2: 2, Chunks: 5}, {A1: 0, A2: 3, Chunks: 5}}
	popped, n, rest := popChunks(bls, 7)
	if len(popped) != 2 || n != 10 {
		t.Errorf("popChunks(7) = (%d items, %d chunks), want (2 items, 10 chunks)", len(popped), n)
	}
	if len(rest) != 1 {
		t.Errorf("rest = %d items, want 1", len(rest))
	}
}

func TestPopChunksTakesAtLeastOne(t *testing.T) {
	bls := []binning.WorkBL{{A1: 0, A2: 1, Chunks: 100}}
	popped, n, rest := popChunks(bls, 1)
	if len(popped) != 1 || n != 100 || len(rest) != 0 {
		t.Errorf("popChunks should always take at least one record even over threshold, got %d items, %d chunks, %d rest", len(popped), n, len(rest))
	}
}

func TestPopChunksEmptyInput(t *testing.T) {
	popped, n, rest := popChunks(nil, 5)
	if popped != nil || n != 0 || rest != nil {
		t.Errorf("popChunks(nil) = (%v, %d, %v), want (nil, 0, nil)", popped, n, rest)
	}
}

func TestSplitPreservesTotalChunks(t *testing.T) {
	bins := makeBins(5, 3, map[[3]int]int{
		{1, 1, 1}: 4,
		{2, 2, 1}: 9,
		{3, 0, 0}: 2,
	})
	geo := core.GeometryConstants{SgStep: 32, SgStepW: 1}

	result := Split(bins, geo, 4)

	total := 0
	for _, item := range result.Items {
		total += item.NBL
	}
	if total != 15 {
		t.Errorf("total chunks across items = %d, want 15", total)
	}
}

// TestPopChunksCanOverpopBothRecords is the exact scenario a fixed item
// count must tolerate: two 2-chunk records against a work_max_nbl of 3. The
// soft limit lets the first record through (3 > 2) and then always takes
// the next record regardless, so both are popped in a single call even
// though their combined 4 chunks exceed the threshold.
func TestPopChunksCanOverpopBothRecords(t *testing.T) {
	bls := []binning.WorkBL{{A1: 0, A2: 1, Chunks: 2}, {A1: 0, A2: 2, Chunks: 2}}
	popped, n, rest := popChunks(bls, 3)
	if len(popped) != 2 || n != 4 || len(rest) != 0 {
		t.Errorf("popChunks([2,2], 3) = (%d items, %d chunks, %d rest), want (2 items, 4 chunks, 0 rest)", len(popped), n, len(rest))
	}
}

// TestSplitPadsOverpoppedCube reproduces the original's fixed-iteration
// assignment loop for a cube whose records overpop in a single call (the
// [2,2] vs work_max_nbl=3 scenario above): the cube still contributes
// ceil(NChunks/work_max_nbl) = 2 items, the second a zero-chunk pad, rather
// than stopping after the one item that drained its list.
func TestSplitPadsOverpoppedCube(t *testing.T) {
	const nsubgrid = 4
	bins := makeBins(nsubgrid, 1, nil)

	// Cube (0,0,0) carries the two 2-chunk records that overpop together.
	ix := binning.Index(nsubgrid, 0, 0, 0)
	bins.NChunks[ix] = 4
	bins.Bls[ix] = []binning.WorkBL{{A1: 0, A2: 1, Chunks: 2}, {A1: 0, A2: 2, Chunks: 2}}

	// Ten single-chunk cubes dilute the average so the computed
	// work_max_nbl comes out to exactly 3.
	filled := 0
	for iu := 0; iu < nsubgrid && filled < 10; iu++ {
		for iv := 0; iv < nsubgrid && filled < 10; iv++ {
			if iu == 0 && iv == 0 {
				continue
			}
			jx := binning.Index(nsubgrid, iu, iv, 0)
			bins.NChunks[jx] = 1
			bins.Bls[jx] = []binning.WorkBL{{A1: iu, A2: 10 + iv, Chunks: 1}}
			filled++
		}
	}

	geo := core.GeometryConstants{SgStep: 32, SgStepW: 1}
	result := Split(bins, geo, 2)
	if result.WorkMaxNBL != 3 {
		t.Fatalf("test setup expects work_max_nbl = 3, got %d (adjust the dilution cubes)", result.WorkMaxNBL)
	}

	signedIU, signedIV := 0-nsubgrid/2, 0-nsubgrid/2
	var cubeItems []SubgridWork
	for _, item := range result.Items {
		if item.IU == signedIU && item.IV == signedIV {
			cubeItems = append(cubeItems, item)
		}
	}

	if len(cubeItems) != 2 {
		t.Fatalf("cube (0,0,0) produced %d items, want ceil(4/3) = 2", len(cubeItems))
	}
	if cubeItems[0].NBL != 4 || len(cubeItems[0].Bls) != 2 {
		t.Errorf("first item = %+v, want the whole overpopped 4-chunk pair", cubeItems[0])
	}
	if cubeItems[1].NBL != 0 || len(cubeItems[1].Bls) != 0 {
		t.Errorf("second item = %+v, want a zero-chunk pad", cubeItems[1])
	}
}

func TestSplitEmptyBins(t *testing.T) {
	bins := makeBins(5, 3, nil)
	geo := core.GeometryConstants{SgStep: 32, SgStepW: 1}
	result := Split(bins, geo, 4)
	if len(result.Items) != 0 {
		t.Errorf("expected no work items for empty bins, got %d", len(result.Items))
	}
}

func TestDealRoundRobin(t *testing.T) {
	items := make([]SubgridWork, 10)
	for i := range items {
		items[i] = SubgridWork{NBL: 1}
	}
	sched := Deal(items, 3)

	if sched.TotalNBL() != 10 {
		t.Errorf("TotalNBL() = %d, want 10", sched.TotalNBL())
	}
	totals := sched.WorkerTotals()
	// 10 items dealt round-robin over 3 workers: 4,3,3
	want := []int{4, 3, 3}
	for i, w := range want {
		if totals[i] != w {
			t.Errorf("worker %d total = %d, want %d", i, totals[i], w)
		}
	}
}
