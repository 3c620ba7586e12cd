//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default is the default build target.
var Default = Build

// Build builds the qtest-ci CLI
func Build(ctx context.Context) error {
	args := []string{"-o", "qtest-ci", "./cmd/qtest-ci"}

	ldflags := os.Getenv("LDFLAGS")
	if version := os.Getenv("VERSION"); version != "" {
		ldflags = fmt.Sprintf("%s -X github.com/qasymphony/qtest-ci.Version=%s", ldflags, version)
	}

	if ldflags != "" {
		args = append([]string{"-ldflags", ldflags}, args...)
	}

	if cgoEnabled := os.Getenv("CGO_ENABLED"); cgoEnabled == "0" {
		args = append([]string{"-a"}, args...)
	}

	return sh.RunV("go", append([]string{"build"}, args...)...)
}

// Clean removes any generated artifacts from the repository.
func Clean(ctx context.Context) error {
	for _, artifact := range []string{"./qtest-ci", "./report.xml"} {
		if err := sh.Rm(artifact); err != nil {
			return err
		}
	}

	return nil
}

// Lint runs the linter & performs static-analysis checks.
func Lint(ctx context.Context) error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Test executes the test-suite for the qtest-ci CLI.
func Test(ctx context.Context) error {
	if report := os.Getenv("REPORT"); report != "" {
		return sh.RunV("ginkgo", "--junit-report=report.xml", "./...")
	}

	cmd := exec.Command("command", "-v", "ginkgo")
	if err := cmd.Run(); err != nil {
		return sh.RunV("go", "test", "./...")
	}

	return sh.RunV("ginkgo", "./...")
}

// IntegrationTest builds the CLI and runs it against a fake qTest API.
func IntegrationTest(ctx context.Context) error {
	mg.CtxDeps(ctx, Build)

	return sh.RunV("go", "test", "-tags", "integration", "./test/...")
}

// All lints, tests and builds the CLI.
func All(ctx context.Context) {
	mg.SerialCtxDeps(ctx, Lint, Test, Build)
}
