package main

import (
	"github.com/spf13/cobra"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit test results to qTest",
	Long:  descriptionSubmit,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := getConfig(cmd)
		if err != nil {
			return errors.WithStack(err)
		}

		// An incomplete configuration is reported as a whole before the API client complains about its parts.
		if err := qtestCLI.Validate(cfg.Pipeline()); err != nil {
			return err
		}

		if err := initAPIClient(cfg); err != nil {
			return err
		}

		return errors.WithStack(qtestCLI.Submit(cmd.Context(), cfg.SubmitConfig()))
	},
}

func init() {
	submitCmd.Flags().BoolVar(&cliArgs.skipSetting, "skip-setting", false,
		"don't save the CI setting in qTest after submitting")
	submitCmd.Flags().BoolVar(&cliArgs.oldSetting, "old-setting", false,
		"save the CI setting in the shape of qTest versions before 8.9.4")
}
