package pipeline_test

import (
	"github.com/qasymphony/qtest-ci/internal/pipeline"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ToSetting", func() {
	var cfg pipeline.Configuration

	BeforeEach(func() {
		cfg = pipeline.NewConfiguration(pipeline.Configuration{
			ServiceURL:                      "https://qtest.example.com",
			APIKey:                          "api-key",
			ProjectID:                       12,
			ContainerID:                     34,
			ContainerType:                   "Test-Suite",
			EnvironmentID:                   56,
			ModuleID:                        78,
			OverwriteExistingTestSteps:      true,
			CreateNewTestRunsEveryBuildDate: true,
		})
	})

	expectedBase := pipeline.SettingBase{
		ID:                 0,
		JenkinsServer:      "https://ci.example.com",
		JenkinsProjectName: "shop-backend",
		ProjectID:          12,
		ModuleID:           0,
		EnvironmentID:      56,
		TestSuiteID:        0,
	}

	Context("with the old setting shape", func() {
		It("only populates the base fields and the release", func() {
			for _, submitToExisting := range []bool{true, false} {
				cfg.SubmitToExistingContainer = submitToExisting

				setting := cfg.ToSetting(true, "https://ci.example.com", "shop-backend")

				Expect(setting).To(Equal(pipeline.LegacySetting{SettingBase: expectedBase, ReleaseID: 34}))
				Expect(setting.Common()).To(Equal(expectedBase))
			}
		})
	})

	Context("with the new setting shape", func() {
		It("references the existing container in lowercase", func() {
			cfg.SubmitToExistingContainer = true

			setting := cfg.ToSetting(false, "https://ci.example.com", "shop-backend")

			current, ok := setting.(pipeline.CurrentSetting)
			Expect(ok).To(BeTrue())
			Expect(current.Common()).To(Equal(expectedBase))
			Expect(current.OverwriteExistingTestSteps).To(BeTrue())
			Expect(current.ReleaseID).To(BeNil())
			Expect(current.Container).To(Equal(&pipeline.ContainerInfo{
				ID:                           34,
				Type:                         "test-suite",
				CreateNewTestSuiteEveryBuild: true,
			}))
		})

		It("keeps the submission request uppercase at the same time", func() {
			cfg.SubmitToExistingContainer = true

			Expect(cfg.ToSubmissionRequest().ContainerType).To(Equal("TEST-SUITE"))
			Expect(cfg.ToSetting(false, "", "").(pipeline.CurrentSetting).Container.Type).To(Equal("test-suite"))
		})

		DescribeTable("stores the container type in its dashed form",
			func(raw, expected string) {
				cfg.SetContainerType(raw)
				cfg.SubmitToExistingContainer = true

				Expect(cfg.ToSetting(false, "", "").(pipeline.CurrentSetting).Container.Type).To(Equal(expected))
			},
			Entry("underscored test cycle", "test_cycle", "test-cycle"),
			Entry("spaced test suite", "Test Suite", "test-suite"),
			Entry("release", "RELEASE", "release"),
			Entry("unknown type", "Sprint", "sprint"),
		)

		It("falls back to the release when not submitting to an existing container", func() {
			cfg.SubmitToExistingContainer = false
			cfg.OverwriteExistingTestSteps = false

			setting := cfg.ToSetting(false, "https://ci.example.com", "shop-backend")

			current, ok := setting.(pipeline.CurrentSetting)
			Expect(ok).To(BeTrue())
			Expect(current.OverwriteExistingTestSteps).To(BeFalse())
			Expect(current.Container).To(BeNil())
			Expect(current.ReleaseID).To(HaveValue(Equal(int64(34))))
		})
	})
})
