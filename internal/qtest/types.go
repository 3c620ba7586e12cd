package qtest

import (
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
	"github.com/qasymphony/qtest-ci/internal/parsing"
)

// LogStatus is the execution status of a test log as qTest's default status set names it.
type LogStatus string

const (
	LogStatusPass LogStatus = "PASS"
	LogStatusFail LogStatus = "FAIL"
	LogStatusSkip LogStatus = "SKIP"
)

func logStatus(status parsing.Status) LogStatus {
	switch status {
	case parsing.StatusFailed:
		return LogStatusFail
	case parsing.StatusSkipped:
		return LogStatusSkip
	default:
		return LogStatusPass
	}
}

// AutomationTestLog is a single test log of an automation submission. qTest links it to a test case by
// AutomationContent, creating the test case if needed.
type AutomationTestLog struct {
	Name              string             `json:"name"`
	Status            LogStatus          `json:"status"`
	AutomationContent string             `json:"automation_content"`
	ExeStartDate      jsonutil.Timestamp `json:"exe_start_date"`
	ExeEndDate        jsonutil.Timestamp `json:"exe_end_date"`
	ModuleNames       []string           `json:"module_names,omitempty"`
	Note              string             `json:"note,omitempty"`
	TestStepLogs      []TestStepLog      `json:"test_step_logs,omitempty"`
}

// TestStepLog is one step of a test log. When test cases are created per class, every test method is a step.
type TestStepLog struct {
	Order          int       `json:"order"`
	Description    string    `json:"description"`
	ExpectedResult string    `json:"expected_result"`
	ActualResult   string    `json:"actual_result"`
	Status         LogStatus `json:"status"`
}

// SubmitResult is what qTest answered to a submission. Submissions are processed asynchronously, TaskID identifies
// the queued job.
type SubmitResult struct {
	TaskID int64
	State  string
	Raw    *jsonutil.Node
}

type submitBody struct {
	ExecutionDate                   jsonutil.Timestamp  `json:"execution_date"`
	TestCycle                       *int64              `json:"test_cycle,omitempty"`
	TestSuite                       *int64              `json:"test_suite,omitempty"`
	Release                         *int64              `json:"release,omitempty"`
	EnvironmentID                   int64               `json:"environment_id,omitempty"`
	EnvironmentParentID             int64               `json:"environment_parent_id,omitempty"`
	ModuleID                        int64               `json:"parent_module_id,omitempty"`
	BuildNumber                     string              `json:"build_number,omitempty"`
	BuildURL                        string              `json:"build_url,omitempty"`
	CreateNewTestRunsEveryBuildDate *bool               `json:"create_new_test_runs_every_build_date,omitempty"`
	TestLogs                        []AutomationTestLog `json:"test_logs"`
}
