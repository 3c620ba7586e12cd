package main

import (
	"github.com/spf13/cobra"

	"github.com/qasymphony/qtest-ci/internal/cli"
	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/fs"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
	"github.com/qasymphony/qtest-ci/internal/logging"
	"github.com/qasymphony/qtest-ci/internal/parsing"
	"github.com/qasymphony/qtest-ci/internal/qtest"
)

// CliArgs holds the values of all flags. Flags only override other configuration sources if they were set.
type CliArgs struct {
	configFilePath string
	debug          bool

	url           string
	apiKey        string
	projectID     int64
	environmentID int64
	moduleID      int64

	containerID                 int64
	containerType               string
	submitToExistingContainer   bool
	createNewTestRunsEveryBuild bool

	resultsFilePattern         string
	parseFromTestingTools      bool
	testCasePerClass           bool
	overwriteExistingTestSteps bool

	serverURL   string
	projectName string
	buildNumber string
	buildURL    string

	skipSetting bool
	oldSetting  bool
}

var (
	cliArgs            CliArgs
	qtestCLI           cli.Service
	serviceInitialized bool

	rootCmd = &cobra.Command{
		Use:               "qtest-ci",
		Short:             "qtest-ci submits CI test results to qTest",
		Long:              descriptionQTestCI,
		PersistentPreRunE: initCLIService,
		SilenceErrors:     true, // Errors are manually printed in 'main'
		SilenceUsage:      true, // Disables usage text on error
	}
)

// ConfigureRootCmd adds the flags every sub-command shares.
func ConfigureRootCmd(rootCmd *cobra.Command) error {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cliArgs.configFilePath, "config-file", "", "the config file for qtest-ci")
	flags.BoolVar(&cliArgs.debug, "debug", false, "enable debug output")

	flags.StringVar(&cliArgs.url, "url", "", "the URL of the qTest site (default $QTEST_URL)")
	flags.StringVar(&cliArgs.apiKey, "api-key", "", "the qTest API key (default $QTEST_API_KEY)")
	flags.Int64Var(&cliArgs.projectID, "project-id", 0, "the qTest project to submit to")
	flags.Int64Var(&cliArgs.environmentID, "environment-id", 0, "the qTest environment of the test runs")
	flags.Int64Var(&cliArgs.moduleID, "module-id", 0, "the qTest module new test cases are created in")

	flags.Int64Var(&cliArgs.containerID, "container-id", 0, "the release, test cycle or test suite to submit to")
	flags.StringVar(&cliArgs.containerType, "container-type", "",
		"the type of the container: 'release', 'test-cycle' or 'test-suite'")
	flags.BoolVar(&cliArgs.submitToExistingContainer, "submit-to-existing-container", false,
		"submit to the configured container instead of a new one below the release")
	flags.BoolVar(&cliArgs.createNewTestRunsEveryBuild, "create-new-test-runs-every-build", false,
		"create new test runs for every build instead of updating existing ones")

	flags.StringVar(&cliArgs.resultsFilePattern, "results-file-pattern", "",
		"comma-separated glob patterns of JUnit XML results files, '**' matches any number of directories")
	flags.BoolVar(&cliArgs.parseFromTestingTools, "parse-from-testing-tools", false,
		"find results files using --results-file-pattern instead of the default report locations")
	flags.BoolVar(&cliArgs.testCasePerClass, "test-case-per-class", false,
		"create one qTest test case per test class instead of one per test method")
	flags.BoolVar(&cliArgs.overwriteExistingTestSteps, "overwrite-existing-test-steps", false,
		"overwrite the test steps of existing test cases")

	flags.StringVar(&cliArgs.serverURL, "server-url", "", "the URL of the CI server")
	flags.StringVar(&cliArgs.projectName, "project-name", "", "the name of the CI job")
	flags.StringVar(&cliArgs.buildNumber, "build-number", "", "the number of the current build")
	flags.StringVar(&cliArgs.buildURL, "build-url", "", "the URL of the current build")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return nil
}

func initCLIService(cmd *cobra.Command, _ []string) error {
	cfg, err := InitConfig(cmd, cliArgs)
	if err != nil {
		return errors.WithStack(err)
	}

	logger := logging.New(cfg.Output.Debug)
	codec := jsonutil.New(logger)

	qtestCLI = cli.Service{
		Log:        logger,
		FileSystem: fs.Local{},
		Parser:     parsing.JUnitParser{Codec: codec},
		Codec:      codec,
	}
	serviceInitialized = true

	return nil
}

// initAPIClient adds the qTest API client to the service. Only sub-commands talking to qTest need it.
func initAPIClient(cfg Config) error {
	apiClient, err := qtest.NewClient(qtest.ClientConfig{
		Debug: cfg.Output.Debug,
		Host:  cfg.QTest.URL,
		Log:   qtestCLI.Log,
		Token: cfg.QTest.APIKey,
		Codec: qtestCLI.Codec,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	qtestCLI.API = apiClient
	return nil
}
