package pipeline

// SubmissionRequest is everything the qTest submitter needs to know about where test logs go. The mapper only fills in
// what the configuration knows; the build context (module, server, project name, build) is added by the caller through
// WithBuildContext once a build actually runs.
type SubmissionRequest struct {
	ServiceURL                string
	APIKey                    string
	ConfigurationID           *int64
	SubmitToExistingContainer bool
	ContainerID               int64
	ContainerType             string
	// CreateNewTestRunsEveryBuildDate is nil unless SubmitToExistingContainer is set.
	CreateNewTestRunsEveryBuildDate *bool
	EnvironmentID                   int64
	ProjectID                       int64

	ModuleID            int64
	EnvironmentParentID int64
	ServerURL           string
	ProjectName         string
	BuildNumber         string
	BuildURL            string
}

// BuildContext describes the build a submission belongs to.
type BuildContext struct {
	ModuleID            int64
	EnvironmentParentID int64
	ServerURL           string
	ProjectName         string
	BuildNumber         string
	BuildURL            string
}

// ToSubmissionRequest copies the statically known parts of the configuration into a SubmissionRequest.
//
// It does not validate. An invalid configuration produces a request with e.g. a zero container ID; call Validate
// first.
func (c Configuration) ToSubmissionRequest() SubmissionRequest {
	var createNewTestRuns *bool
	if c.SubmitToExistingContainer {
		v := c.CreateNewTestRunsEveryBuildDate
		createNewTestRuns = &v
	}

	return SubmissionRequest{
		ServiceURL:                      c.ServiceURL,
		APIKey:                          c.APIKey,
		ConfigurationID:                 nil,
		SubmitToExistingContainer:       c.SubmitToExistingContainer,
		ContainerID:                     c.ContainerID,
		ContainerType:                   c.ContainerType,
		CreateNewTestRunsEveryBuildDate: createNewTestRuns,
		EnvironmentID:                   c.EnvironmentID,
		ProjectID:                       c.ProjectID,
	}
}

// WithBuildContext returns a copy of the request with the build context filled in.
func (r SubmissionRequest) WithBuildContext(bc BuildContext) SubmissionRequest {
	r.ModuleID = bc.ModuleID
	r.EnvironmentParentID = bc.EnvironmentParentID
	r.ServerURL = bc.ServerURL
	r.ProjectName = bc.ProjectName
	r.BuildNumber = bc.BuildNumber
	r.BuildURL = bc.BuildURL
	return r
}
