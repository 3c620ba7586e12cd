package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v7"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/qasymphony/qtest-ci/internal/cli"
	"github.com/qasymphony/qtest-ci/internal/errors"
)

// Config is the internal representation of the configuration.
type Config struct {
	cli.ConfigFile
}

type contextKey string

var configKey = contextKey("qtestConfig")

func getConfig(cmd *cobra.Command) (Config, error) {
	val := cmd.Context().Value(configKey)
	if val == nil {
		return Config{}, errors.NewInternalError(
			"Tried to fetch config from the command but it wasn't set. This should never happen!")
	}

	cfg, ok := val.(Config)
	if !ok {
		return Config{}, errors.NewInternalError(
			"Tried to fetch config from the command but it was of the wrong type. This should never happen!")
	}

	return cfg, nil
}

// adds config to cmd's context
func setConfigContext(cmd *cobra.Command, cfg Config) error {
	if _, err := getConfig(cmd); err == nil {
		return errors.NewInternalError("Tried to set config on the command but it was already set. This should never happen!")
	}

	ctx := context.WithValue(cmd.Context(), configKey, cfg)
	cmd.SetContext(ctx)
	return nil
}

const (
	qtestDirectory = ".qtest"
	configFileName = "config"
)

var configFileExtensions = []string{"yaml", "yml"}

// findInParentDir starts at the current working directory and walk up to the root, trying
// to find the specified fileName
func findInParentDir(fileName string) (string, error) {
	var match string
	var walk func(string, string) error

	walk = func(base, root string) error {
		if base == root {
			return errors.WithStack(os.ErrNotExist)
		}

		match = path.Join(base, fileName)

		info, err := os.Stat(match)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.WithStack(err)
		}

		if info != nil {
			return nil
		}

		return walk(filepath.Dir(base), root)
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", errors.WithStack(err)
	}

	volumeName := filepath.VolumeName(pwd)
	if volumeName == "" {
		volumeName = string(os.PathSeparator)
	}

	if err := walk(pwd, volumeName); err != nil {
		return "", errors.WithStack(err)
	}

	return match, nil
}

// findConfigFile looks for .qtest/config.yaml or .qtest/config.yml. It returns "" if neither exists.
func findConfigFile() (string, error) {
	possibleConfigFilePaths := make([]string, 0, 2)

	for _, extension := range configFileExtensions {
		configFilePath, err := findInParentDir(
			filepath.Join(qtestDirectory, fmt.Sprintf("%s.%s", configFileName, extension)),
		)
		if err == nil {
			possibleConfigFilePaths = append(possibleConfigFilePaths, configFilePath)
			continue
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", errors.NewConfigurationError(
				"Unable to read configuration file",
				fmt.Sprintf("The following system error occurred while looking for the config file: %s", err.Error()),
				"Please make sure that qtest-ci has the correct permissions to access the config file.",
			)
		}
	}

	if len(possibleConfigFilePaths) > 1 {
		return "", errors.NewConfigurationError(
			"Unable to identify configuration file",
			fmt.Sprintf(
				"qtest-ci found multiple configuration files in your environment: %s\n",
				strings.Join(possibleConfigFilePaths, ", "),
			),
			"Please make sure only one config file is present in your environment or explicitly specify "+
				"one using the '--config-file' flag.",
		)
	}

	if len(possibleConfigFilePaths) == 0 {
		return "", nil
	}

	return possibleConfigFilePaths[0], nil
}

// InitConfig reads our configuration from the system.
// Environment variables take precedence over a config file.
// Flags take precedence over all other options.
func InitConfig(cmd *cobra.Command, cliArgs CliArgs) (cfg Config, err error) {
	configFilePath := cliArgs.configFilePath
	if configFilePath == "" {
		if configFilePath, err = findConfigFile(); err != nil {
			return cfg, err
		}
	}

	if configFilePath != "" {
		fd, err := os.Open(configFilePath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) || cliArgs.configFilePath != "" {
				return cfg, errors.Wrap(err, fmt.Sprintf("unable to open config file %q", configFilePath))
			}
		} else {
			defer fd.Close()

			decoder := yaml.NewDecoder(fd)
			decoder.KnownFields(true)
			if err = decoder.Decode(&cfg.ConfigFile); err != nil && !errors.Is(err, io.EOF) {
				typeError := new(yaml.TypeError)
				if errors.As(err, &typeError) {
					err = errors.NewConfigurationError(
						"Parsing Error",
						strings.Join(typeError.Errors, "\n"),
						"Please refer to the 'qtest-ci --help' output for the available options and the "+
							"configuration file layout.",
					)
				}

				return cfg, errors.Wrap(err, "unable to parse config file")
			}
		}
	}

	if err = env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "unable to parse environment variables")
	}

	cfg = bindRootCmdFlags(cfg, cliArgs, cmd.Flags())

	if err = setConfigContext(cmd, cfg); err != nil {
		return cfg, errors.WithStack(err)
	}

	return cfg, nil
}

// bindRootCmdFlags applies all flags that were set on the command line.
func bindRootCmdFlags(cfg Config, cliArgs CliArgs, flags *pflag.FlagSet) Config {
	if flags.Changed("debug") {
		cfg.Output.Debug = cliArgs.debug
	}

	if flags.Changed("url") {
		cfg.QTest.URL = cliArgs.url
	}

	if flags.Changed("api-key") {
		cfg.QTest.APIKey = cliArgs.apiKey
	}

	if flags.Changed("project-id") {
		cfg.Project.ID = cliArgs.projectID
	}

	if flags.Changed("environment-id") {
		cfg.Project.EnvironmentID = cliArgs.environmentID
	}

	if flags.Changed("module-id") {
		cfg.Project.ModuleID = cliArgs.moduleID
	}

	if flags.Changed("container-id") {
		cfg.Container.ID = cliArgs.containerID
	}

	if flags.Changed("container-type") {
		cfg.Container.Type = cliArgs.containerType
	}

	if flags.Changed("submit-to-existing-container") {
		cfg.Container.SubmitToExisting = cliArgs.submitToExistingContainer
	}

	if flags.Changed("create-new-test-runs-every-build") {
		cfg.Container.CreateNewTestRunsEveryBuild = cliArgs.createNewTestRunsEveryBuild
	}

	if flags.Changed("results-file-pattern") {
		cfg.Results.Pattern = cliArgs.resultsFilePattern
	}

	if flags.Changed("parse-from-testing-tools") {
		cfg.Results.FromTestingTools = cliArgs.parseFromTestingTools
	}

	if flags.Changed("test-case-per-class") {
		cfg.Results.TestCasePerClass = cliArgs.testCasePerClass
	}

	if flags.Changed("overwrite-existing-test-steps") {
		cfg.Results.OverwriteExistingTestSteps = cliArgs.overwriteExistingTestSteps
	}

	if flags.Changed("server-url") {
		cfg.Build.ServerURL = cliArgs.serverURL
	}

	if flags.Changed("project-name") {
		cfg.Build.ProjectName = cliArgs.projectName
	}

	if flags.Changed("build-number") {
		cfg.Build.Number = cliArgs.buildNumber
	}

	if flags.Changed("build-url") {
		cfg.Build.URL = cliArgs.buildURL
	}

	if flags.Changed("skip-setting") {
		cfg.Setting.Skip = cliArgs.skipSetting
	}

	if flags.Changed("old-setting") || flags.Changed("old") {
		cfg.Setting.Old = cliArgs.oldSetting
	}

	return cfg
}
