package pipeline

import "strings"

// Setting is the CI setting stored in qTest for a pipeline. It is either a LegacySetting, for qTest versions before
// 8.9.4, or a CurrentSetting.
type Setting interface {
	// Common returns the fields shared by both shapes.
	Common() SettingBase
	isSetting()
}

// SettingBase holds the fields present in both setting shapes.
type SettingBase struct {
	ID                 int64  `json:"id"`
	JenkinsServer      string `json:"jenkins_server"`
	JenkinsProjectName string `json:"jenkins_name"`
	ProjectID          int64  `json:"project_id"`
	ModuleID           int64  `json:"module_id"`
	EnvironmentID      int64  `json:"environment_id"`
	TestSuiteID        int64  `json:"test_suite_id"`
}

// LegacySetting always points at a release.
type LegacySetting struct {
	SettingBase
	ReleaseID int64 `json:"release_id"`
}

// CurrentSetting points either at an existing container or, when submitting to a new one, at a release.
// Exactly one of Container and ReleaseID is set.
type CurrentSetting struct {
	SettingBase
	OverwriteExistingTestSteps bool           `json:"overwrite_existing_test_steps"`
	Container                  *ContainerInfo `json:"container,omitempty"`
	ReleaseID                  *int64         `json:"release_id,omitempty"`
}

// ContainerInfo is the existing container test runs are submitted to. Type is lowercase, as the settings endpoint
// expects.
type ContainerInfo struct {
	ID                           int64  `json:"id"`
	Type                         string `json:"type"`
	CreateNewTestSuiteEveryBuild bool   `json:"create_new_test_suite_every_build"`
}

func (s LegacySetting) Common() SettingBase  { return s.SettingBase }
func (s CurrentSetting) Common() SettingBase { return s.SettingBase }

func (LegacySetting) isSetting()  {}
func (CurrentSetting) isSetting() {}

// ToSetting maps the configuration onto the setting stored in qTest. saveOldSetting selects the legacy shape.
// serverURL and projectName identify the CI server & job owning the setting.
func (c Configuration) ToSetting(saveOldSetting bool, serverURL, projectName string) Setting {
	base := SettingBase{
		ID:                 0,
		JenkinsServer:      serverURL,
		JenkinsProjectName: projectName,
		ProjectID:          c.ProjectID,
		ModuleID:           0,
		EnvironmentID:      c.EnvironmentID,
		TestSuiteID:        0,
	}

	if saveOldSetting {
		return LegacySetting{SettingBase: base, ReleaseID: c.ContainerID}
	}

	setting := CurrentSetting{
		SettingBase:                base,
		OverwriteExistingTestSteps: c.OverwriteExistingTestSteps,
	}

	if c.SubmitToExistingContainer {
		containerType := c.ContainerType
		if known, ok := ParseContainerType(containerType); ok {
			containerType = string(known)
		}

		setting.Container = &ContainerInfo{
			ID:                           c.ContainerID,
			Type:                         strings.ToLower(containerType),
			CreateNewTestSuiteEveryBuild: c.CreateNewTestRunsEveryBuildDate,
		}
	} else {
		releaseID := c.ContainerID
		setting.ReleaseID = &releaseID
	}

	return setting
}
