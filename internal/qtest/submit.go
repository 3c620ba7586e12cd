package qtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
	"github.com/qasymphony/qtest-ci/internal/parsing"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
)

// BuildTestLogs turns parsed results into automation test logs. By default every test case becomes a test log. With
// createTestCaseForEachClass, every class becomes one test log whose steps are the test cases of that class; the
// log's status is the worst status of its steps.
func BuildTestLogs(
	results parsing.TestResults,
	request pipeline.SubmissionRequest,
	createTestCaseForEachClass bool,
) []AutomationTestLog {
	now := time.Now().UTC()

	if createTestCaseForEachClass {
		return buildClassLogs(results, request, now)
	}

	logs := make([]AutomationTestLog, 0)
	for _, suite := range results.Suites {
		start := suiteStart(suite, now)

		for _, testCase := range suite.Cases {
			className := caseClassName(testCase, suite)
			logs = append(logs, AutomationTestLog{
				Name:              testCase.Name,
				Status:            logStatus(testCase.Status),
				AutomationContent: fmt.Sprintf("%s#%s", className, testCase.Name),
				ExeStartDate:      jsonutil.Timestamp{Time: start},
				ExeEndDate:        jsonutil.Timestamp{Time: start.Add(testCase.Duration)},
				ModuleNames:       moduleNames(className, request),
				Note:              note(testCase),
			})
		}
	}

	return logs
}

type classLog struct {
	className string
	start     time.Time
	duration  time.Duration
	status    parsing.Status
	cases     []parsing.Case
}

func buildClassLogs(results parsing.TestResults, request pipeline.SubmissionRequest, now time.Time) []AutomationTestLog {
	classes := make(map[string]*classLog)
	order := make([]string, 0)

	for _, suite := range results.Suites {
		start := suiteStart(suite, now)

		for _, testCase := range suite.Cases {
			className := caseClassName(testCase, suite)

			class, ok := classes[className]
			if !ok {
				class = &classLog{className: className, start: start, status: parsing.StatusPassed}
				classes[className] = class
				order = append(order, className)
			}

			if start.Before(class.start) {
				class.start = start
			}
			class.duration += testCase.Duration
			class.status = class.status.Worse(testCase.Status)
			class.cases = append(class.cases, testCase)
		}
	}

	logs := make([]AutomationTestLog, 0, len(order))
	for _, className := range order {
		class := classes[className]

		steps := make([]TestStepLog, 0, len(class.cases))
		notes := make([]string, 0)
		for i, testCase := range class.cases {
			steps = append(steps, TestStepLog{
				Order:          i + 1,
				Description:    testCase.Name,
				ExpectedResult: string(LogStatusPass),
				ActualResult:   actualResult(testCase),
				Status:         logStatus(testCase.Status),
			})

			if n := note(testCase); n != "" {
				notes = append(notes, fmt.Sprintf("%s: %s", testCase.Name, n))
			}
		}

		logs = append(logs, AutomationTestLog{
			Name:              shortName(className),
			Status:            logStatus(class.status),
			AutomationContent: className,
			ExeStartDate:      jsonutil.Timestamp{Time: class.start},
			ExeEndDate:        jsonutil.Timestamp{Time: class.start.Add(class.duration)},
			ModuleNames:       moduleNames(className, request),
			Note:              strings.Join(notes, "\n\n"),
			TestStepLogs:      steps,
		})
	}

	return logs
}

// SubmitTestLogs submits test logs as one automation batch. The container is only named when submitting to an
// existing one; otherwise qTest creates test runs below the project's default release.
func (c Client) SubmitTestLogs(
	ctx context.Context,
	request pipeline.SubmissionRequest,
	logs []AutomationTestLog,
) (SubmitResult, error) {
	if request.ProjectID <= 0 {
		return SubmitResult{}, errors.NewInputError("project ID required")
	}

	endpoint := fmt.Sprintf("/api/v3/projects/%d/auto-test-logs", request.ProjectID)

	resp, err := c.postJSON(ctx, endpoint, map[string]string{"type": "automation"}, newSubmitBody(request, logs))
	if err != nil {
		return SubmitResult{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(endpoint, resp); err != nil {
		return SubmitResult{}, c.logError(err)
	}

	node, err := c.readBody(endpoint, resp)
	if err != nil {
		return SubmitResult{}, err
	}

	return SubmitResult{
		TaskID: jsonutil.GetLong(node, "id"),
		State:  jsonutil.GetText(node, "state"),
		Raw:    node,
	}, nil
}

func newSubmitBody(request pipeline.SubmissionRequest, logs []AutomationTestLog) submitBody {
	body := submitBody{
		ExecutionDate:       jsonutil.Timestamp{Time: time.Now().UTC()},
		EnvironmentID:       request.EnvironmentID,
		EnvironmentParentID: request.EnvironmentParentID,
		ModuleID:            request.ModuleID,
		BuildNumber:         request.BuildNumber,
		BuildURL:            request.BuildURL,
		TestLogs:            logs,
	}

	if logs == nil {
		body.TestLogs = []AutomationTestLog{}
	}

	if !request.SubmitToExistingContainer {
		return body
	}

	containerID := request.ContainerID
	containerType, _ := pipeline.ParseContainerType(request.ContainerType)
	switch containerType {
	case pipeline.ContainerTypeTestCycle:
		body.TestCycle = &containerID
	case pipeline.ContainerTypeTestSuite:
		body.TestSuite = &containerID
	default:
		body.Release = &containerID
	}
	body.CreateNewTestRunsEveryBuildDate = request.CreateNewTestRunsEveryBuildDate

	return body
}

func (c Client) logError(err error) error {
	c.Log.Error(err.Error())
	return err
}

func suiteStart(suite parsing.Suite, now time.Time) time.Time {
	if suite.Timestamp != nil {
		return suite.Timestamp.UTC()
	}

	return now
}

func caseClassName(testCase parsing.Case, suite parsing.Suite) string {
	if testCase.ClassName != "" {
		return testCase.ClassName
	}

	return suite.Name
}

// moduleNames places test cases below a module per package segment, prefixed by the CI project name if known.
func moduleNames(className string, request pipeline.SubmissionRequest) []string {
	names := make([]string, 0)
	if request.ProjectName != "" {
		names = append(names, request.ProjectName)
	}

	segments := strings.Split(className, ".")
	for _, segment := range segments[:len(segments)-1] {
		if segment != "" {
			names = append(names, segment)
		}
	}

	if len(names) == 0 {
		return nil
	}

	return names
}

func shortName(className string) string {
	return className[strings.LastIndex(className, ".")+1:]
}

func note(testCase parsing.Case) string {
	if testCase.Status != parsing.StatusFailed {
		return testCase.Message
	}

	parts := make([]string, 0, 1+len(testCase.Backtrace))
	if testCase.Message != "" {
		parts = append(parts, testCase.Message)
	}
	parts = append(parts, testCase.Backtrace...)

	return strings.Join(parts, "\n")
}

func actualResult(testCase parsing.Case) string {
	if testCase.Message != "" {
		return testCase.Message
	}

	return string(logStatus(testCase.Status))
}
