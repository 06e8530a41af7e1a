package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oskar-imaging/uvwsched/core"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scheduling configuration file without running it",
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		cf, err := core.LoadConfigFile(validateConfigPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}

		spec := cf.VisSpec()
		hasVisibilities := spec.TimeCount > 0
		if err := cf.ScheduleConfig().Validate(hasVisibilities); err != nil {
			log.Fatalf("invalid schedule configuration: %v", err)
		}
		if _, err := core.DeriveGeometry(spec.FOV, cf.RecombConfig()); err != nil {
			log.Fatalf("invalid geometry configuration: %v", err)
		}

		fmt.Println("configuration is valid")
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to a YAML scheduling configuration file")
	validateCmd.MarkFlagRequired("config")
}
