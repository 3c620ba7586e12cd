// Package main holds the main command line interface for qtest-ci. The package itself is mainly concerned with
// configuring the necessary options before passing control to `internal/cli`, which holds the business logic itself.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

func main() {
	if err := ConfigureRootCmd(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.AddCommand(submitCmd, validateCmd, settingCmd, parseCmd, versionCmd)

	// Logging is expected to take place in `internal/cli`, as text output is the primary way of communicating
	// to a user on the terminal. Configuration errors and anything failing before the service exists are printed here.
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if _, ok := errors.AsConfigurationError(err); ok {
			fmt.Fprintln(os.Stderr, errors.WithDecoration(err))
		} else if !serviceInitialized {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
