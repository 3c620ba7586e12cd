// Package pipeline maps the configuration of a CI pipeline step onto the values the qTest submission and the qTest
// settings endpoints expect. Nothing in here performs I/O.
package pipeline

import (
	"fmt"
	"strings"
)

// Configuration is the flat configuration of a single pipeline step. The container type is stored normalized (see
// NormalizeContainerType); use NewConfiguration or SetContainerType instead of assigning it directly.
type Configuration struct {
	ServiceURL         string
	APIKey             string
	ProjectID          int64
	ContainerID        int64
	ContainerType      string
	EnvironmentID      int64
	ResultsFilePattern string
	// ModuleID is where new test cases get created. Reserved, always 0 for now.
	ModuleID int64

	OverwriteExistingTestSteps          bool
	CreateNewTestRunsEveryBuildDate     bool
	ParseTestResultsFromTestingTools    bool
	CreateTestCaseForEachJUnitTestClass bool
	SubmitToExistingContainer           bool
}

// NewConfiguration returns a copy of cfg with its container type normalized.
func NewConfiguration(cfg Configuration) Configuration {
	cfg.ContainerType = NormalizeContainerType(cfg.ContainerType)
	return cfg
}

// DefaultConfiguration is the empty configuration a new pipeline step starts out with. It is not valid.
func DefaultConfiguration() Configuration {
	return Configuration{}
}

// Validate reports whether the configuration holds everything a submission needs: a qTest URL, an API key, a
// container type and positive project & container IDs. Environment and module are optional.
func Validate(cfg Configuration) bool {
	return cfg.Validate()
}

// Validate reports whether the configuration holds everything a submission needs. See the package-level Validate.
func (c Configuration) Validate() bool {
	return c.ServiceURL != "" &&
		c.APIKey != "" &&
		c.ProjectID > 0 &&
		c.ContainerID > 0 &&
		c.ContainerType != ""
}

// Problems lists the conditions Validate checks that don't hold. It is empty iff Validate returns true.
func (c Configuration) Problems() []string {
	problems := make([]string, 0)

	if c.ServiceURL == "" {
		problems = append(problems, "the qTest URL is empty")
	}

	if c.APIKey == "" {
		problems = append(problems, "the API key is empty")
	}

	if c.ProjectID <= 0 {
		problems = append(problems, fmt.Sprintf("the project ID must be greater than 0, got %d", c.ProjectID))
	}

	if c.ContainerID <= 0 {
		problems = append(problems, fmt.Sprintf("the container ID must be greater than 0, got %d", c.ContainerID))
	}

	if c.ContainerType == "" {
		problems = append(problems, "the container type is empty")
	}

	return problems
}

// SetServiceURL sets the qTest URL
func (c *Configuration) SetServiceURL(url string) { c.ServiceURL = url }

// SetAPIKey sets the qTest API key
func (c *Configuration) SetAPIKey(apiKey string) { c.APIKey = apiKey }

// SetProjectID sets the qTest project ID
func (c *Configuration) SetProjectID(id int64) { c.ProjectID = id }

// SetContainerID sets the ID of the release, test cycle or test suite
func (c *Configuration) SetContainerID(id int64) { c.ContainerID = id }

// SetContainerType normalizes & sets the container type
func (c *Configuration) SetContainerType(containerType string) {
	c.ContainerType = NormalizeContainerType(containerType)
}

// SetEnvironmentID sets the qTest environment ID
func (c *Configuration) SetEnvironmentID(id int64) { c.EnvironmentID = id }

// SetResultsFilePattern sets the glob used to find JUnit result files
func (c *Configuration) SetResultsFilePattern(pattern string) { c.ResultsFilePattern = pattern }

// SetModuleID sets the qTest module ID
func (c *Configuration) SetModuleID(id int64) { c.ModuleID = id }

// SetOverwriteExistingTestSteps sets the matching flag
func (c *Configuration) SetOverwriteExistingTestSteps(v bool) { c.OverwriteExistingTestSteps = v }

// SetCreateNewTestRunsEveryBuildDate sets the matching flag
func (c *Configuration) SetCreateNewTestRunsEveryBuildDate(v bool) { c.CreateNewTestRunsEveryBuildDate = v }

// SetParseTestResultsFromTestingTools sets the matching flag
func (c *Configuration) SetParseTestResultsFromTestingTools(v bool) { c.ParseTestResultsFromTestingTools = v }

// SetCreateTestCaseForEachJUnitTestClass sets the matching flag
func (c *Configuration) SetCreateTestCaseForEachJUnitTestClass(v bool) {
	c.CreateTestCaseForEachJUnitTestClass = v
}

// SetSubmitToExistingContainer sets the matching flag
func (c *Configuration) SetSubmitToExistingContainer(v bool) { c.SubmitToExistingContainer = v }

// String renders the configuration for debug output. The API key is redacted.
func (c Configuration) String() string {
	fields := []string{
		fmt.Sprintf("qtestURL=%q", c.ServiceURL),
		fmt.Sprintf("apiKey=%q", redact(c.APIKey)),
		fmt.Sprintf("projectID=%d", c.ProjectID),
		fmt.Sprintf("containerID=%d", c.ContainerID),
		fmt.Sprintf("containerType=%q", c.ContainerType),
		fmt.Sprintf("environmentID=%d", c.EnvironmentID),
		fmt.Sprintf("resultsFilePattern=%q", c.ResultsFilePattern),
		fmt.Sprintf("moduleID=%d", c.ModuleID),
		fmt.Sprintf("overwriteExistingTestSteps=%t", c.OverwriteExistingTestSteps),
		fmt.Sprintf("createNewTestRunsEveryBuildDate=%t", c.CreateNewTestRunsEveryBuildDate),
		fmt.Sprintf("submitToExistingContainer=%t", c.SubmitToExistingContainer),
		fmt.Sprintf("parseTestResultsFromTestingTools=%t", c.ParseTestResultsFromTestingTools),
		fmt.Sprintf("createTestCaseForEachJUnitTestClass=%t", c.CreateTestCaseForEachJUnitTestClass),
	}

	return "{" + strings.Join(fields, ", ") + "}"
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}

	return "<redacted>"
}
