// Package cmd implements the command-line tool: a thin cobra wrapper around
// the uvwsched package.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "uvwsched",
	Short: "Bounding-box baseline scheduler for radio-interferometric imaging",
}

// Execute runs the command-line tool, exiting the process with status 1 on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	log.SetLevel(level)
	return log
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
