package main

import (
	"github.com/spf13/cobra"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Print the CI setting saved in qTest",
	Long:  descriptionSetting,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := getConfig(cmd)
		if err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(qtestCLI.PrintSetting(
			cfg.Pipeline(),
			cfg.Setting.Old,
			cfg.Build.ServerURL,
			cfg.Build.ProjectName,
		))
	},
}

func init() {
	settingCmd.Flags().BoolVar(&cliArgs.oldSetting, "old", false,
		"print the shape of qTest versions before 8.9.4")
}
