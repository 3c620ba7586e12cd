package main

// These constants hold the "long" description of a subcommand. These get printed when running `--help`, for example.
const (
	descriptionQTestCI = `qtest-ci submits test results of CI builds to qTest Manager.

Configuration is read from .qtest/config.yaml (searched from the working
directory upwards), QTEST_* environment variables and flags, in increasing
order of precedence.`

	descriptionSubmit = `'qtest-ci submit' finds the JUnit XML results of a build, submits them to qTest as
automation test logs and saves the CI setting of the pipeline.

Example use:

	qtest-ci submit --project-id 42 --container-type release --container-id 7 \
		--build-number "$BUILD_NUMBER" --build-url "$BUILD_URL"`

	descriptionValidate = `'qtest-ci validate' checks whether the configuration is complete enough to submit
test results, without contacting qTest.`

	descriptionSetting = `'qtest-ci setting' prints the CI setting 'qtest-ci submit' saves in qTest.

Example use:

	qtest-ci setting --old`
)
