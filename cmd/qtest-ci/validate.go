package main

import (
	"github.com/spf13/cobra"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration without submitting anything",
	Long:  descriptionValidate,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := getConfig(cmd)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := qtestCLI.Validate(cfg.Pipeline()); err != nil {
			return err
		}

		qtestCLI.Log.Infof("The configuration is valid: %s", cfg.Pipeline())
		return nil
	},
}
