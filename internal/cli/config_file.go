package cli

import "github.com/qasymphony/qtest-ci/internal/pipeline"

// ConfigFile holds all options that can be set over the config file. The same options can be set over the
// environment, which takes precedence.
type ConfigFile struct {
	QTest struct {
		URL    string `yaml:"url" env:"QTEST_URL"`
		APIKey string `yaml:"api-key" env:"QTEST_API_KEY"`
	} `yaml:"qtest"`
	Project struct {
		ID            int64 `yaml:"id" env:"QTEST_PROJECT_ID"`
		EnvironmentID int64 `yaml:"environment-id" env:"QTEST_ENVIRONMENT_ID"`
		ModuleID      int64 `yaml:"module-id" env:"QTEST_MODULE_ID"`
	} `yaml:"project"`
	Container struct {
		ID                          int64  `yaml:"id" env:"QTEST_CONTAINER_ID"`
		Type                        string `yaml:"type" env:"QTEST_CONTAINER_TYPE"`
		SubmitToExisting            bool   `yaml:"submit-to-existing" env:"QTEST_SUBMIT_TO_EXISTING_CONTAINER"`
		CreateNewTestRunsEveryBuild bool   `yaml:"create-new-test-runs-every-build" env:"QTEST_CREATE_NEW_TEST_RUNS_EVERY_BUILD"`
	} `yaml:"container"`
	Results struct {
		Pattern                    string `yaml:"pattern" env:"QTEST_RESULTS_FILE_PATTERN"`
		FromTestingTools           bool   `yaml:"from-testing-tools" env:"QTEST_PARSE_FROM_TESTING_TOOLS"`
		TestCasePerClass           bool   `yaml:"test-case-per-class" env:"QTEST_TEST_CASE_PER_CLASS"`
		OverwriteExistingTestSteps bool   `yaml:"overwrite-existing-test-steps" env:"QTEST_OVERWRITE_EXISTING_TEST_STEPS"`
	} `yaml:"results"`
	Build struct {
		ServerURL   string `yaml:"server-url" env:"QTEST_CI_SERVER_URL"`
		ProjectName string `yaml:"project-name" env:"QTEST_CI_PROJECT_NAME"`
		Number      string `yaml:"number" env:"QTEST_BUILD_NUMBER"`
		URL         string `yaml:"url" env:"QTEST_BUILD_URL"`
	} `yaml:"build"`
	Setting struct {
		Skip bool `yaml:"skip" env:"QTEST_SKIP_SETTING"`
		Old  bool `yaml:"old" env:"QTEST_SAVE_OLD_SETTING"`
	} `yaml:"setting"`
	Output struct {
		Debug bool `yaml:"debug" env:"QTEST_DEBUG"`
	} `yaml:"output"`
}

// Pipeline returns the pipeline configuration the file describes.
func (cf ConfigFile) Pipeline() pipeline.Configuration {
	return pipeline.NewConfiguration(pipeline.Configuration{
		ServiceURL:                          cf.QTest.URL,
		APIKey:                              cf.QTest.APIKey,
		ProjectID:                           cf.Project.ID,
		ContainerID:                         cf.Container.ID,
		ContainerType:                       cf.Container.Type,
		EnvironmentID:                       cf.Project.EnvironmentID,
		ResultsFilePattern:                  cf.Results.Pattern,
		ModuleID:                            cf.Project.ModuleID,
		OverwriteExistingTestSteps:          cf.Results.OverwriteExistingTestSteps,
		CreateNewTestRunsEveryBuildDate:     cf.Container.CreateNewTestRunsEveryBuild,
		ParseTestResultsFromTestingTools:    cf.Results.FromTestingTools,
		CreateTestCaseForEachJUnitTestClass: cf.Results.TestCasePerClass,
		SubmitToExistingContainer:           cf.Container.SubmitToExisting,
	})
}

// SubmitConfig returns the submit configuration the file describes.
func (cf ConfigFile) SubmitConfig() SubmitConfig {
	return SubmitConfig{
		Pipeline: cf.Pipeline(),
		Build: pipeline.BuildContext{
			ModuleID:    cf.Project.ModuleID,
			ServerURL:   cf.Build.ServerURL,
			ProjectName: cf.Build.ProjectName,
			BuildNumber: cf.Build.Number,
			BuildURL:    cf.Build.URL,
		},
		SkipSetting:    cf.Setting.Skip,
		SaveOldSetting: cf.Setting.Old,
	}
}
