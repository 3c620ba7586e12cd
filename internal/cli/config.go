package cli

import (
	"strings"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
)

// DefaultResultsFilePatterns are the report locations of common JUnit-reporting build tools. They are searched when
// results aren't read from a testing tool's own pattern.
var DefaultResultsFilePatterns = []string{
	"**/surefire-reports/*.xml",
	"**/failsafe-reports/*.xml",
	"**/test-results/**/*.xml",
}

// SubmitConfig holds the configuration for submitting test results (used by `Submit`)
type SubmitConfig struct {
	Pipeline pipeline.Configuration
	Build    pipeline.BuildContext
	// SkipSetting disables saving the CI setting after a successful submission.
	SkipSetting    bool
	SaveOldSetting bool
}

// ResultsFilePatterns returns the glob patterns test results files are searched with. With
// ParseTestResultsFromTestingTools, these are the comma-separated entries of ResultsFilePattern; otherwise, the
// DefaultResultsFilePatterns.
func (sc SubmitConfig) ResultsFilePatterns() ([]string, error) {
	if !sc.Pipeline.ParseTestResultsFromTestingTools {
		return DefaultResultsFilePatterns, nil
	}

	patterns := make([]string, 0)
	for _, pattern := range strings.Split(sc.Pipeline.ResultsFilePattern, ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}

	if len(patterns) == 0 {
		return nil, errors.NewConfigurationError(
			"Missing results file pattern",
			"Test results are read from testing tools, but no pattern to find their results files was configured.",
			"Set the pattern using the --results-file-pattern flag, the QTEST_RESULTS_FILE_PATTERN environment "+
				"variable, or the 'results.pattern' field of the configuration file.",
		)
	}

	return patterns, nil
}

// BuildContext returns the build context of the submission. A module set on the pipeline applies unless the build
// names one itself.
func (sc SubmitConfig) BuildContext() pipeline.BuildContext {
	bc := sc.Build
	if bc.ModuleID == 0 {
		bc.ModuleID = sc.Pipeline.ModuleID
	}

	return bc
}
