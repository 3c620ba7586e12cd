// Package parsing reads test results files into a framework-neutral model that can be mapped onto qTest test logs.
package parsing

import (
	"io"
	"time"
)

// Status is the outcome of a single test case.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Worse returns the more severe of two statuses. Failed beats skipped beats passed.
func (s Status) Worse(other Status) Status {
	if severity(other) > severity(s) {
		return other
	}

	return s
}

func severity(s Status) int {
	switch s {
	case StatusFailed:
		return 2
	case StatusSkipped:
		return 1
	default:
		return 0
	}
}

// Case is a single test case.
type Case struct {
	ClassName string
	Name      string
	File      string
	Status    Status
	Duration  time.Duration
	Message   string
	Backtrace []string
	Stdout    string
	Stderr    string
}

// Suite groups test cases the way the results file did.
type Suite struct {
	Name      string
	Timestamp *time.Time
	Cases     []Case
}

// TestResults is everything parsed from one or more files.
type TestResults struct {
	Suites []Suite
}

// Cases returns every test case of every suite, in order.
func (r TestResults) Cases() []Case {
	cases := make([]Case, 0)
	for _, suite := range r.Suites {
		cases = append(cases, suite.Cases...)
	}

	return cases
}

// Merge returns results holding the suites of all inputs, in order.
func Merge(results ...TestResults) TestResults {
	merged := TestResults{Suites: make([]Suite, 0)}
	for _, r := range results {
		merged.Suites = append(merged.Suites, r.Suites...)
	}

	return merged
}

// Parser is the interface a results parser needs to implement.
type Parser interface {
	Parse(io.Reader) (*TestResults, error)
}
