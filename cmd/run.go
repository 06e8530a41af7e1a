package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oskar-imaging/uvwsched"
	"github.com/oskar-imaging/uvwsched/core"
	"github.com/oskar-imaging/uvwsched/geometry"
	"github.com/oskar-imaging/uvwsched/trace"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Derive geometry, bin baselines and produce a work schedule",
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		cf, err := core.LoadConfigFile(configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}

		ants := cf.AntennaConfig()
		spec := cf.VisSpec()
		recomb := cf.RecombConfig()
		sc := cf.ScheduleConfig()

		haToUVW := geometry.NewStandardHAToUVW(ants.Positions)
		result, err := uvwsched.Run(ants, spec, recomb, sc, haToUVW, log)
		if err != nil {
			log.Fatalf("scheduling run failed: %v", err)
		}

		if sc.DumpBaselineBins {
			if result.Bins == nil {
				log.Warn("dump_baseline_bins requested but run had no baseline bins (fallback path)")
			} else if err := trace.DumpBaselineBins(os.Stdout, result.Bins); err != nil {
				log.Fatalf("dumping baseline bins: %v", err)
			}
		}
		if sc.DumpSubgridWork {
			if err := trace.DumpSubgridWork(os.Stdout, result.Schedule); err != nil {
				log.Fatalf("dumping subgrid work: %v", err)
			}
		}

		fmt.Printf("subgrid_workers=%d facet_workers=%d total_chunks=%d\n",
			result.Schedule.SubgridWorkers, result.Schedule.FacetWorkers, result.Schedule.TotalNBL())
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML scheduling configuration file")
	runCmd.MarkFlagRequired("config")
}
