package main

import (
	"github.com/spf13/cobra"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

var (
	// parseCmd represents the `parse` sub-command itself
	parseCmd = &cobra.Command{
		Use:    "parse",
		Short:  "Inspect test results files",
		Hidden: true,
	}

	// parseResultsCmd is the 'results' sub-command of 'parse'
	parseResultsCmd = &cobra.Command{
		Use:   "results [file]...",
		Short: "Print the qTest test logs JUnit XML files would be submitted as",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return errors.WithStack(err)
			}

			return errors.WithStack(qtestCLI.Parse(cmd.Context(), args, cfg.Results.TestCasePerClass))
		},
	}
)

func init() {
	parseCmd.AddCommand(parseResultsCmd)
}
