// Package trace implements two optional diagnostic dumps: the per-cube
// baseline-bin table and the per-worker subgrid-work table. Neither is part
// of the scheduler's machine-readable output — they are advisory,
// stdout-oriented diagnostics.
package trace

import (
	"fmt"
	"io"

	"github.com/oskar-imaging/uvwsched/binning"
	"github.com/oskar-imaging/uvwsched/schedule"
)

// DumpBaselineBins writes the per-cube (iu, iv, iw, chunks) table for the
// +u subgrid half (iu >= nsubgrid/2), matching the original's
// config_dump_baseline_bins output: only cubes with chunks > 0 are listed.
func DumpBaselineBins(w io.Writer, bins *binning.CubeBins) error {
	if _, err := fmt.Fprintln(w, "Baseline bins:\n---\niu,iv,iw,chunks"); err != nil {
		return err
	}
	nsubgrid, nwlevels := bins.NSubgrid, bins.NWLevels
	for iv := 0; iv < nsubgrid; iv++ {
		for iu := nsubgrid / 2; iu < nsubgrid; iu++ {
			for iw := 0; iw < nwlevels; iw++ {
				n := bins.NChunks[binning.Index(nsubgrid, iu, iv, iw)]
				if n == 0 {
					continue
				}
				if _, err := fmt.Fprintf(w, "%d,%d,%d,%d\n", iu, iv, iw, n); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintln(w, "---")
	return err
}

// DumpSubgridWork writes the per-worker, per-slot work list for non-empty
// slots, matching the original's config_dump_subgrid_work output.
func DumpSubgridWork(w io.Writer, sched *schedule.Schedule) error {
	if _, err := fmt.Fprintln(w, "Subgrid work (after swaps):\n---\nworker,work,chunks,iu,iv,iw"); err != nil {
		return err
	}
	for worker, slots := range sched.Subgrid {
		for slot, work := range slots {
			if work.NBL == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d\n", worker, slot, work.NBL, work.IU, work.IV, work.IW); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "---")
	return err
}
