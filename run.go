package uvwsched

import (
	"github.com/sirupsen/logrus"

	"github.com/oskar-imaging/uvwsched/binning"
	"github.com/oskar-imaging/uvwsched/core"
	"github.com/oskar-imaging/uvwsched/geometry"
	"github.com/oskar-imaging/uvwsched/schedule"
)

// Result is everything one scheduling run produces: the derived geometry,
// the binning statistics, and the final dense work assignment.
type Result struct {
	Geometry core.GeometryConstants
	Bins     *binning.CubeBins
	Stats    *binning.Stats
	Schedule *schedule.Schedule
	Split    schedule.SplitResult
	Balance  schedule.BalanceResult
	Facet    schedule.FacetResult
}

// Run executes the full pipeline end to end: geometry derivation, baseline
// binning, splitting, dealing and balancing when the observation carries
// visibilities (spec.TimeCount > 0), or the full-redistribute fallback when
// it does not. log receives progress at Info level and warnings (clipped
// bounding boxes, deadlock-risk facet counts) at Warn level; a nil log
// discards them.
func Run(ants core.AntennaConfig, spec *core.VisSpec, recomb core.RecombConfig, sc core.ScheduleConfig, haToUVW geometry.HAToUVWFunc, log *logrus.Logger) (*Result, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(discard{})
	}

	hasVisibilities := spec.TimeCount > 0
	if err := sc.Validate(hasVisibilities); err != nil {
		return nil, err
	}

	geo, err := core.DeriveGeometry(spec.FOV, recomb)
	if err != nil {
		return nil, err
	}
	log.Infof("derived geometry: theta=%.6g wstep=%.6g lam=%.6g sg_step=%.6g", geo.Theta, geo.WStep, geo.Lam, geo.SgStep)

	if !hasVisibilities {
		log.Info("time_count == 0: running full-redistribute fallback")
		sched := schedule.FullRedistribute(recomb, geo, sc.SubgridWorkers, sc.FacetWorkers)
		return &Result{Geometry: geo, Schedule: sched}, nil
	}

	if spec.HASin == nil {
		spec.CacheTrig()
	}

	baselines := geometry.ComputeAll(ants, spec, haToUVW)

	bins, stats, err := binning.CollectBaselines(ants, baselines, spec, geo)
	if err != nil {
		return nil, err
	}
	for _, w := range stats.Warnings {
		log.Warn(w)
	}
	log.Infof("binned %d baselines into %dx%dx%d cubes", ants.NumBaselines(), stats.NSubgrid, stats.NSubgrid, stats.NWLevels)

	split := schedule.Split(bins, geo, sc.SubgridWorkers)
	log.Infof("split into %d work items (work_max_nbl=%d)", len(split.Items), split.WorkMaxNBL)

	sched := schedule.Deal(split.Items, sc.SubgridWorkers)
	balance := schedule.Balance(sched)
	log.Infof("balanced with %d swaps (L1 deviation %.3f -> %.3f)", balance.Swaps, balance.L1DeviationBefore, balance.L1DeviationAfter)

	facet := schedule.GenerateFacetWork(spec, recomb, geo, sc.FacetWorkers)
	sched.Facet = facet.Work
	sched.FacetWorkers, sched.FacetMaxWork = sc.FacetWorkers, facet.MaxWork
	if facet.MaxWork > 1 {
		log.Warnf("facet_max_work=%d > 1: facet workers may deadlock waiting on more than one subgrid pass", facet.MaxWork)
	}

	return &Result{
		Geometry: geo,
		Bins:     bins,
		Stats:    stats,
		Schedule: sched,
		Split:    split,
		Balance:  balance,
		Facet:    facet,
	}, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
