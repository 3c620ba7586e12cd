package cli

import (
	"context"

	"github.com/qasymphony/qtest-ci/internal/fs"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
	"github.com/qasymphony/qtest-ci/internal/qtest"
)

// APIClient is the interface of the qTest API client (see `internal/qtest`).
type APIClient interface {
	SubmitTestLogs(context.Context, pipeline.SubmissionRequest, []qtest.AutomationTestLog) (qtest.SubmitResult, error)
	SaveSetting(context.Context, int64, pipeline.Setting) error
}

// FileSystem is the part of `fs.FileSystem` the CLI needs to find & read test results files.
type FileSystem interface {
	Open(name string) (fs.File, error)
	GlobMany(patterns []string) ([]string, error)
}
