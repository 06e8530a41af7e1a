package schedule

import (
	"testing"

	"github.com/oskar-imaging/uvwsched/core"
)

func TestFullRedistributeCoversEveryTile(t *testing.T) {
	recomb := core.NewRecombConfig(256, 32, 64)
	geo, err := core.DeriveGeometry(0.1, recomb)
	if err != nil {
		t.Fatalf("DeriveGeometry: %v", err)
	}

	sched := FullRedistribute(recomb, geo, 4, 2)

	nsubgrid := recomb.ImageSize / int(geo.SgStep)
	wantSubgridTiles := nsubgrid * nsubgrid
	gotSubgridTiles := 0
	seen := make(map[[2]int]bool)
	for _, row := range sched.Subgrid {
		for _, w := range row {
			if w.NBL == 0 {
				continue
			}
			gotSubgridTiles++
			key := [2]int{w.IU, w.IV}
			if seen[key] {
				t.Errorf("tile (%d,%d) assigned more than once", w.IU, w.IV)
			}
			seen[key] = true
		}
	}
	if gotSubgridTiles != wantSubgridTiles {
		t.Errorf("assigned %d subgrid tiles, want %d", gotSubgridTiles, wantSubgridTiles)
	}

	nfacet := recomb.ImageSize / recomb.YBSize
	wantFacetTiles := nfacet * nfacet
	gotFacetTiles := 0
	for _, row := range sched.Facet {
		for _, w := range row {
			if w.Set {
				gotFacetTiles++
			}
		}
	}
	if gotFacetTiles != wantFacetTiles {
		t.Errorf("assigned %d facet tiles, want %d", gotFacetTiles, wantFacetTiles)
	}
}

func TestFullRedistributeRoundRobinsAcrossWorkers(t *testing.T) {
	recomb := core.NewRecombConfig(256, 32, 64)
	geo, err := core.DeriveGeometry(0.1, recomb)
	if err != nil {
		t.Fatalf("DeriveGeometry: %v", err)
	}

	sched := FullRedistribute(recomb, geo, 4, 0)
	nsubgrid := recomb.ImageSize / int(geo.SgStep)

	// tile index 0 and 1 (adjacent in raster order) should land on different
	// workers when there are more than one worker, per the round-robin deal.
	if nsubgrid*nsubgrid < 2 {
		t.Skip("not enough tiles to exercise round-robin dealing")
	}
	var worker0, worker1 int
	found0, found1 := false, false
	for w, row := range sched.Subgrid {
		for _, work := range row {
			if work.IU == 0 && work.IV == 0 {
				worker0, found0 = w, true
			}
			if work.IU == 0 && work.IV == 1 {
				worker1, found1 = w, true
			}
		}
	}
	if !found0 || !found1 {
		t.Fatal("expected tiles (0,0) and (0,1) to be assigned")
	}
	if worker0 == worker1 {
		t.Errorf("adjacent tiles landed on the same worker %d: round-robin dealing expected them apart", worker0)
	}
}

func TestFullRedistributeZeroWorkers(t *testing.T) {
	recomb := core.NewRecombConfig(256, 32, 64)
	geo, err := core.DeriveGeometry(0.1, recomb)
	if err != nil {
		t.Fatalf("DeriveGeometry: %v", err)
	}

	sched := FullRedistribute(recomb, geo, 0, 0)
	if sched.Subgrid != nil || sched.Facet != nil {
		t.Error("expected no work assigned when both worker counts are zero")
	}
}
