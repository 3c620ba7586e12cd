package mocks

import (
	"context"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
	"github.com/qasymphony/qtest-ci/internal/qtest"
)

// API is a mocked implementation of 'cli.APIClient'.
type API struct {
	MockSubmitTestLogs func(context.Context, pipeline.SubmissionRequest, []qtest.AutomationTestLog) (
		qtest.SubmitResult, error,
	)
	MockSaveSetting func(context.Context, int64, pipeline.Setting) error
}

// SubmitTestLogs either calls the configured mock of itself or returns an error if that doesn't exist.
func (a *API) SubmitTestLogs(
	ctx context.Context,
	request pipeline.SubmissionRequest,
	logs []qtest.AutomationTestLog,
) (qtest.SubmitResult, error) {
	if a.MockSubmitTestLogs != nil {
		return a.MockSubmitTestLogs(ctx, request, logs)
	}

	return qtest.SubmitResult{}, errors.NewInternalError("MockSubmitTestLogs was not configured")
}

// SaveSetting either calls the configured mock of itself or returns an error if that doesn't exist.
func (a *API) SaveSetting(ctx context.Context, projectID int64, setting pipeline.Setting) error {
	if a.MockSaveSetting != nil {
		return a.MockSaveSetting(ctx, projectID, setting)
	}

	return errors.NewInternalError("MockSaveSetting was not configured")
}
