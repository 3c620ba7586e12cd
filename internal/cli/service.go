// Package cli holds the main business logic in our CLI. This is mainly:
// 1. Triggering the right API calls based on the provided input parameters.
// 2. User-friendly logging
// However, this package _does not_ implement the actual terminal UI. That part is handled by `cmd/qtest-ci`.
package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	qtestci "github.com/qasymphony/qtest-ci"
	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
	"github.com/qasymphony/qtest-ci/internal/parsing"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
	"github.com/qasymphony/qtest-ci/internal/qtest"
)

// maxConcurrentParses bounds how many results files are open at once.
const maxConcurrentParses = 8

// Service is the main CLI service.
type Service struct {
	API        APIClient
	Log        *zap.SugaredLogger
	FileSystem FileSystem
	Parser     parsing.Parser
	Codec      *jsonutil.Codec
}

func (s Service) logError(err error) error {
	s.Log.Error(err.Error())
	return err
}

func (s Service) codec() *jsonutil.Codec {
	if s.Codec == nil {
		return jsonutil.New(s.Log)
	}

	return s.Codec
}

// Submit finds & parses the test results files of a build and submits them to qTest. Afterwards, the CI setting of
// the pipeline is saved unless disabled. Failing to save the setting does not fail the submission.
func (s Service) Submit(ctx context.Context, cfg SubmitConfig) error {
	if err := s.Validate(cfg.Pipeline); err != nil {
		return err
	}

	patterns, err := cfg.ResultsFilePatterns()
	if err != nil {
		return err
	}

	results, err := s.parseMatching(ctx, patterns)
	if err != nil {
		return err
	}

	request := cfg.Pipeline.ToSubmissionRequest().WithBuildContext(cfg.BuildContext())
	logs := qtest.BuildTestLogs(results, request, cfg.Pipeline.CreateTestCaseForEachJUnitTestClass)

	s.Log.Debugf("Submitting %d test logs using %s", len(logs), cfg.Pipeline)

	result, err := s.API.SubmitTestLogs(ctx, request, logs)
	if err != nil {
		return errors.WithStack(err)
	}

	s.Log.Infof("Submitted %d test logs to qTest project %d", len(logs), request.ProjectID)
	if result.TaskID != 0 {
		s.Log.Infof("qTest is processing them as job %d (%s)", result.TaskID, strings.ToLower(result.State))
	}

	if cfg.SkipSetting {
		return nil
	}

	setting := cfg.Pipeline.ToSetting(cfg.SaveOldSetting, request.ServerURL, request.ProjectName)
	if err := s.API.SaveSetting(ctx, request.ProjectID, setting); err != nil {
		s.Log.Warnf("Unable to save the CI setting in qTest: %s", err)
	}

	return nil
}

// Validate checks whether a pipeline configuration is complete enough to submit with.
func (s Service) Validate(cfg pipeline.Configuration) error {
	if cfg.Validate() {
		if !pipeline.ContainerType(cfg.ContainerType).IsKnown() {
			s.Log.Warnf("Container type %q is not one of %s, %s or %s. qTest will likely reject it.",
				cfg.ContainerType,
				pipeline.ContainerTypeRelease,
				pipeline.ContainerTypeTestCycle,
				pipeline.ContainerTypeTestSuite,
			)
		}

		return nil
	}

	problems := cfg.Problems()
	for i, problem := range problems {
		problems[i] = fmt.Sprintf("- %s", problem)
	}

	return errors.NewConfigurationError(
		"Invalid qTest configuration",
		fmt.Sprintf("The configuration is incomplete:\n%s", strings.Join(problems, "\n")),
		"Set the missing values using flags, environment variables, or the configuration file. Run "+
			"'qtest-ci validate' to check the configuration without submitting anything.",
	)
}

// PrintSetting prints the CI setting a submission would save, as JSON.
func (s Service) PrintSetting(cfg pipeline.Configuration, saveOldSetting bool, serverURL, projectName string) error {
	output := s.codec().ToJSON(cfg.ToSetting(saveOldSetting, serverURL, projectName))
	if output == "" {
		return s.logError(errors.NewInternalError("Unable to output the setting as JSON"))
	}

	s.Log.Infoln(output)
	return nil
}

// Parse parses the files supplied in `filepaths` and prints the test logs they would be submitted as.
func (s Service) Parse(ctx context.Context, filepaths []string, createTestCaseForEachClass bool) error {
	results, err := s.parseFiles(ctx, filepaths)
	if err != nil {
		return err
	}

	logs := qtest.BuildTestLogs(results, pipeline.SubmissionRequest{}, createTestCaseForEachClass)

	output := s.codec().ToJSON(logs)
	if output == "" {
		return s.logError(errors.NewInternalError("Unable to output test logs as JSON"))
	}

	s.Log.Infoln(output)
	return nil
}

// PrintVersion prints the CLI version
func (s Service) PrintVersion() {
	s.Log.Infoln(qtestci.Version)
}

func (s Service) parseMatching(ctx context.Context, patterns []string) (parsing.TestResults, error) {
	filepaths, err := s.FileSystem.GlobMany(patterns)
	if err != nil {
		return parsing.TestResults{}, s.logError(errors.NewSystemError("unable to expand %q: %s", patterns, err))
	}

	if len(filepaths) == 0 {
		return parsing.TestResults{}, s.logError(errors.NewInputError(
			"No test results files found matching %s", strings.Join(patterns, ", "),
		))
	}

	return s.parseFiles(ctx, filepaths)
}

// parseFiles parses all files concurrently. The suites of the result keep the order of filepaths.
func (s Service) parseFiles(ctx context.Context, filepaths []string) (parsing.TestResults, error) {
	parsed := make([]parsing.TestResults, len(filepaths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentParses)

	for i, testResultsFilePath := range filepaths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.WithStack(err)
			}

			results, err := s.parseFile(testResultsFilePath)
			if err != nil {
				return err
			}

			parsed[i] = *results
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return parsing.TestResults{}, s.logError(err)
	}

	return parsing.Merge(parsed...), nil
}

func (s Service) parseFile(testResultsFilePath string) (*parsing.TestResults, error) {
	s.Log.Debugf("Attempting to parse %q", testResultsFilePath)

	fd, err := s.FileSystem.Open(testResultsFilePath)
	if err != nil {
		return nil, errors.NewSystemError("unable to open file %q: %s", testResultsFilePath, err)
	}
	defer fd.Close()

	results, err := s.Parser.Parse(fd)
	if err != nil {
		return nil, errors.NewInputError("Unable to parse %q: %s", testResultsFilePath, err)
	}

	s.Log.Debugf("Parsed %d test cases from %q", len(results.Cases()), testResultsFilePath)
	return results, nil
}
