package cli_test

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/qasymphony/qtest-ci/internal/cli"
	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/fs"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
	"github.com/qasymphony/qtest-ci/internal/mocks"
	"github.com/qasymphony/qtest-ci/internal/parsing"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
	"github.com/qasymphony/qtest-ci/internal/qtest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Service", func() {
	var (
		service    cli.Service
		api        *mocks.API
		fileSystem *mocks.FileSystem
		logs       *observer.ObservedLogs
		cfg        cli.SubmitConfig
		fixtures   map[string][]byte
		calls      []string

		submittedRequest pipeline.SubmissionRequest
		submittedLogs    []qtest.AutomationTestLog
		savedSetting     pipeline.Setting
		globbedPatterns  []string
	)

	readFixture := func(name string) []byte {
		contents, err := os.ReadFile("../../test/fixtures/" + name)
		Expect(err).ToNot(HaveOccurred())
		return contents
	}

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		log := zap.New(core).Sugar()

		calls = nil
		fixtures = map[string][]byte{
			"build/test-results/junit.xml":           readFixture("junit.xml"),
			"build/test-results/junit-testsuite.xml": readFixture("junit-testsuite.xml"),
		}

		fileSystem = &mocks.FileSystem{
			MockGlobMany: func(patterns []string) ([]string, error) {
				globbedPatterns = patterns
				return []string{"build/test-results/junit.xml", "build/test-results/junit-testsuite.xml"}, nil
			},
			MockOpen: func(name string) (fs.File, error) {
				contents, ok := fixtures[name]
				if !ok {
					return nil, errors.NewSystemError("no such file %q", name)
				}

				return fs.NewVirtualReadOnlyFile(name, contents), nil
			},
		}

		api = &mocks.API{
			MockSubmitTestLogs: func(
				_ context.Context,
				request pipeline.SubmissionRequest,
				testLogs []qtest.AutomationTestLog,
			) (qtest.SubmitResult, error) {
				calls = append(calls, "submit")
				submittedRequest = request
				submittedLogs = testLogs
				return qtest.SubmitResult{TaskID: 4711, State: "IN_WAITING"}, nil
			},
			MockSaveSetting: func(_ context.Context, _ int64, setting pipeline.Setting) error {
				calls = append(calls, "setting")
				savedSetting = setting
				return nil
			},
		}

		service = cli.Service{
			API:        api,
			Log:        log,
			FileSystem: fileSystem,
			Parser:     parsing.JUnitParser{Codec: jsonutil.New(log)},
			Codec:      jsonutil.New(log),
		}

		cfg = cli.SubmitConfig{
			Pipeline: pipeline.NewConfiguration(pipeline.Configuration{
				ServiceURL:    "https://acme.qtestnet.com",
				APIKey:        "secret",
				ProjectID:     42,
				ContainerID:   7,
				ContainerType: "release",
			}),
			Build: pipeline.BuildContext{
				ServerURL:   "https://ci.example.com",
				ProjectName: "shop-backend",
				BuildNumber: "17",
				BuildURL:    "https://ci.example.com/job/shop-backend/17",
			},
		}
	})

	Describe("Submit", func() {
		It("submits the parsed results, then saves the setting", func() {
			Expect(service.Submit(context.Background(), cfg)).To(Succeed())

			Expect(calls).To(Equal([]string{"submit", "setting"}))
			Expect(submittedLogs).To(HaveLen(6))
			Expect(submittedRequest.ProjectID).To(Equal(int64(42)))
			Expect(submittedRequest.APIKey).To(Equal("secret"))
			Expect(submittedRequest.BuildNumber).To(Equal("17"))
			Expect(submittedRequest.ProjectName).To(Equal("shop-backend"))

			current, ok := savedSetting.(pipeline.CurrentSetting)
			Expect(ok).To(BeTrue())
			Expect(current.JenkinsServer).To(Equal("https://ci.example.com"))
			Expect(current.JenkinsProjectName).To(Equal("shop-backend"))

			Expect(logs.FilterMessageSnippet("Submitted 6 test logs").Len()).To(Equal(1))
		})

		It("keeps the order of the results files", func() {
			Expect(service.Submit(context.Background(), cfg)).To(Succeed())

			Expect(submittedLogs[0].AutomationContent).To(Equal("com.example.shop.CartTest#addsItem"))
			Expect(submittedLogs[5].AutomationContent).To(HavePrefix("com.example.shop.InventoryTest#"))
		})

		It("searches the default report locations", func() {
			Expect(service.Submit(context.Background(), cfg)).To(Succeed())
			Expect(globbedPatterns).To(Equal(cli.DefaultResultsFilePatterns))
		})

		It("searches the configured patterns when reading results from testing tools", func() {
			cfg.Pipeline.ParseTestResultsFromTestingTools = true
			cfg.Pipeline.ResultsFilePattern = "build/test-results/*.xml, ,reports/**/*.xml"

			Expect(service.Submit(context.Background(), cfg)).To(Succeed())
			Expect(globbedPatterns).To(Equal([]string{"build/test-results/*.xml", "reports/**/*.xml"}))
		})

		It("creates one test log per class when configured to", func() {
			cfg.Pipeline.CreateTestCaseForEachJUnitTestClass = true

			Expect(service.Submit(context.Background(), cfg)).To(Succeed())
			Expect(submittedLogs).To(HaveLen(3))
		})

		It("saves the legacy setting shape when asked to", func() {
			cfg.SaveOldSetting = true

			Expect(service.Submit(context.Background(), cfg)).To(Succeed())
			Expect(savedSetting).To(BeAssignableToTypeOf(pipeline.LegacySetting{}))
		})

		It("doesn't save the setting when skipped", func() {
			cfg.SkipSetting = true

			Expect(service.Submit(context.Background(), cfg)).To(Succeed())
			Expect(calls).To(Equal([]string{"submit"}))
		})

		It("refuses an incomplete configuration without calling qTest", func() {
			cfg.Pipeline.APIKey = ""
			cfg.Pipeline.ContainerID = 0

			err := service.Submit(context.Background(), cfg)

			configErr, ok := errors.AsConfigurationError(err)
			Expect(ok).To(BeTrue())
			Expect(configErr.Description()).To(ContainSubstring("- the API key is empty"))
			Expect(configErr.Description()).To(ContainSubstring("- the container ID must be greater than 0, got 0"))
			Expect(calls).To(BeEmpty())
		})

		It("requires a pattern when reading results from testing tools", func() {
			cfg.Pipeline.ParseTestResultsFromTestingTools = true

			_, ok := errors.AsConfigurationError(service.Submit(context.Background(), cfg))
			Expect(ok).To(BeTrue())
			Expect(calls).To(BeEmpty())
		})

		It("fails when no results files exist", func() {
			fileSystem.MockGlobMany = func([]string) ([]string, error) {
				return []string{}, nil
			}

			_, ok := errors.AsInputError(service.Submit(context.Background(), cfg))
			Expect(ok).To(BeTrue())
			Expect(calls).To(BeEmpty())
		})

		It("fails when a results file isn't JUnit XML", func() {
			fixtures["build/test-results/junit-testsuite.xml"] = []byte(`<coverage line-rate="0.9"/>`)

			_, ok := errors.AsInputError(service.Submit(context.Background(), cfg))
			Expect(ok).To(BeTrue())
			Expect(calls).To(BeEmpty())
		})

		It("passes on submission errors", func() {
			api.MockSubmitTestLogs = func(
				context.Context,
				pipeline.SubmissionRequest,
				[]qtest.AutomationTestLog,
			) (qtest.SubmitResult, error) {
				return qtest.SubmitResult{}, errors.NewInternalError("status code 401")
			}

			_, ok := errors.AsInternalError(service.Submit(context.Background(), cfg))
			Expect(ok).To(BeTrue())
		})

		It("only warns when the setting can't be saved", func() {
			api.MockSaveSetting = func(context.Context, int64, pipeline.Setting) error {
				return errors.NewInternalError("status code 500")
			}

			Expect(service.Submit(context.Background(), cfg)).To(Succeed())
			Expect(logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("CI setting").Len()).To(Equal(1))
		})
	})

	Describe("Validate", func() {
		It("accepts a complete configuration", func() {
			Expect(service.Validate(cfg.Pipeline)).To(Succeed())
			Expect(logs.FilterLevelExact(zapcore.WarnLevel).Len()).To(Equal(0))
		})

		It("warns about container types qTest doesn't know", func() {
			cfg.Pipeline.SetContainerType("sprint")

			Expect(service.Validate(cfg.Pipeline)).To(Succeed())
			Expect(logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet(`"SPRINT"`).Len()).To(Equal(1))
		})
	})

	Describe("PrintSetting", func() {
		It("prints the setting as JSON", func() {
			cfg.Pipeline.SubmitToExistingContainer = true

			Expect(service.PrintSetting(cfg.Pipeline, false, "https://ci.example.com", "shop-backend")).To(Succeed())

			printed := logs.FilterLevelExact(zapcore.InfoLevel).All()
			Expect(printed).To(HaveLen(1))

			node, err := jsonutil.New(nil).ParseTree(printed[0].Message)
			Expect(err).ToNot(HaveOccurred())
			Expect(jsonutil.GetText(node.Get("container"), "type")).To(Equal("release"))
			Expect(jsonutil.GetText(node, "jenkins_name")).To(Equal("shop-backend"))
		})
	})

	Describe("Parse", func() {
		It("prints the test logs the files would be submitted as", func() {
			Expect(service.Parse(context.Background(), []string{"build/test-results/junit.xml"}, false)).To(Succeed())

			printed := logs.FilterLevelExact(zapcore.InfoLevel).All()
			Expect(printed).To(HaveLen(1))

			node, err := jsonutil.New(nil).ParseTree(printed[0].Message)
			Expect(err).ToNot(HaveOccurred())
			Expect(node.Len()).To(Equal(4))
			Expect(calls).To(BeEmpty())
		})
	})
})
