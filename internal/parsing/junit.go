package parsing

import (
	"encoding/xml"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/acarl005/stripansi"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
)

// JUnitParser parses JUnit XML. Both a <testsuites> root (with arbitrarily nested suites) and a bare <testsuite> root
// are accepted.
type JUnitParser struct {
	// Codec is used to read suite timestamps. Optional.
	Codec *jsonutil.Codec
}

type junitFailure struct {
	Type     string `xml:"type,attr"`
	Message  string `xml:"message,attr"`
	Contents string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

type junitTestCase struct {
	ClassName string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	File      string        `xml:"file,attr"`
	Time      string        `xml:"time,attr"`
	Error     *junitFailure `xml:"error"`
	Failure   *junitFailure `xml:"failure"`
	Skipped   *junitSkipped `xml:"skipped"`
	SystemErr string        `xml:"system-err"`
	SystemOut string        `xml:"system-out"`
}

type junitTestSuite struct {
	Name       string           `xml:"name,attr"`
	Timestamp  string           `xml:"timestamp,attr"`
	TestCases  []junitTestCase  `xml:"testcase"`
	TestSuites []junitTestSuite `xml:"testsuite"`
}

type junitTestSuites struct {
	TestSuites []junitTestSuite `xml:"testsuite"`
}

var junitNewlineRegexp = regexp.MustCompile(`\r?\n`)

// Parse reads a JUnit XML document.
func (p JUnitParser) Parse(data io.Reader) (*TestResults, error) {
	decoder := xml.NewDecoder(data)

	root, err := firstStartElement(decoder)
	if err != nil {
		return nil, errors.NewInputError("Unable to parse test results as XML: %s", err)
	}

	var suites []junitTestSuite
	switch root.Name.Local {
	case "testsuites":
		var document junitTestSuites
		if err := decoder.DecodeElement(&document, &root); err != nil {
			return nil, errors.NewInputError("Unable to parse test results as XML: %s", err)
		}
		suites = document.TestSuites
	case "testsuite":
		var suite junitTestSuite
		if err := decoder.DecodeElement(&suite, &root); err != nil {
			return nil, errors.NewInputError("Unable to parse test results as XML: %s", err)
		}
		suites = []junitTestSuite{suite}
	default:
		return nil, errors.NewInputError("Unable to parse test results as XML: unexpected root element <%s>", root.Name.Local)
	}

	results := &TestResults{Suites: make([]Suite, 0)}
	for _, suite := range suites {
		results.Suites = append(results.Suites, p.flatten(suite)...)
	}

	return results, nil
}

func firstStartElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		token, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, errors.New("document is empty")
			}
			return xml.StartElement{}, err
		}

		if start, ok := token.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// flatten turns nested suites into a flat list. Nested suites keep their own name; cases directly below a suite stay
// with it.
func (p JUnitParser) flatten(suite junitTestSuite) []Suite {
	flattened := make([]Suite, 0, 1+len(suite.TestSuites))

	if len(suite.TestCases) > 0 || len(suite.TestSuites) == 0 {
		cases := make([]Case, 0, len(suite.TestCases))
		for _, testCase := range suite.TestCases {
			cases = append(cases, p.toCase(testCase))
		}

		flattened = append(flattened, Suite{
			Name:      suite.Name,
			Timestamp: p.parseTimestamp(suite.Timestamp),
			Cases:     cases,
		})
	}

	for _, nested := range suite.TestSuites {
		flattened = append(flattened, p.flatten(nested)...)
	}

	return flattened
}

func (p JUnitParser) toCase(testCase junitTestCase) Case {
	c := Case{
		ClassName: testCase.ClassName,
		Name:      testCase.Name,
		File:      testCase.File,
		Status:    StatusPassed,
		Duration:  parseDuration(testCase.Time),
		Stdout:    clean(testCase.SystemOut),
		Stderr:    clean(testCase.SystemErr),
	}

	switch {
	case testCase.Failure != nil:
		c.Status = StatusFailed
		c.Message, c.Backtrace = failureDetails(*testCase.Failure)
	case testCase.Error != nil:
		c.Status = StatusFailed
		c.Message, c.Backtrace = failureDetails(*testCase.Error)
	case testCase.Skipped != nil:
		c.Status = StatusSkipped
		c.Message = clean(testCase.Skipped.Message)
	}

	return c
}

func (p JUnitParser) parseTimestamp(text string) *time.Time {
	if p.Codec == nil || text == "" {
		return nil
	}

	return p.Codec.ParseTimestamp(text)
}

func failureDetails(failure junitFailure) (string, []string) {
	message := clean(failure.Message)
	if message == "" {
		message = failure.Type
	}

	contents := clean(failure.Contents)
	if contents == "" {
		return message, nil
	}

	backtrace := make([]string, 0)
	for _, line := range junitNewlineRegexp.Split(contents, -1) {
		if line = strings.TrimSpace(line); line != "" {
			backtrace = append(backtrace, line)
		}
	}

	return message, backtrace
}

// parseDuration reads the "time" attribute, in seconds. Some reporters add thousands separators. Values that are
// negative, not numbers, or beyond what a time.Duration holds yield 0.
func parseDuration(seconds string) time.Duration {
	seconds = strings.ReplaceAll(strings.TrimSpace(seconds), ",", "")
	if seconds == "" {
		return 0
	}

	value, err := strconv.ParseFloat(seconds, 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	nanos := math.Round(value * float64(time.Second))
	if nanos >= math.MaxInt64 {
		return 0
	}

	return time.Duration(nanos)
}

func clean(text string) string {
	return strings.TrimSpace(stripansi.Strip(text))
}
