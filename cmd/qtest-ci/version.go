package main

import (
	"github.com/spf13/cobra"

	"github.com/qasymphony/qtest-ci/internal/cli"
	"github.com/qasymphony/qtest-ci/internal/logging"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of qtest-ci",
	Args:  cobra.NoArgs,
	// Printing the version works without (valid) configuration.
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		qtestCLI = cli.Service{Log: logging.NewProductionLogger()}
		serviceInitialized = true
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		qtestCLI.PrintVersion()
	},
}
