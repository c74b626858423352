package testing

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/suite"

	"dockerizer-benchmark/benchmark"
	"dockerizer-benchmark/catalog"
	"dockerizer-benchmark/config"
	"dockerizer-benchmark/dockerizer"
	"dockerizer-benchmark/internal/models"
	"dockerizer-benchmark/prompt"
	"dockerizer-benchmark/reporter"
)

// TestSuite exercises the benchmark end to end with real runners, prompts and reports
type TestSuite struct {
	suite.Suite
	helper     *TestHelper
	generators *PropertyTestGenerators
}

// SetupTest runs before each test
func (s *TestSuite) SetupTest() {
	s.helper = NewTestHelper(s.T())
	s.generators = NewPropertyTestGenerators()
}

// runBenchmark wires the real components together and renders the report into the returned buffer
func (s *TestSuite) runBenchmark(shell, command string, repos []models.Repository, answers []string) (*models.Report, string, error) {
	var out bytes.Buffer
	runner := dockerizer.New(shell, dockerizer.IO{Stdout: &out, Stderr: &out})
	prompter := prompt.NewPrompter(strings.NewReader(AnswerInput(answers)), &out)

	report, err := benchmark.NewRunner(command, runner, prompter, &out).Run(context.Background(), repos)
	if err != nil {
		return nil, out.String(), err
	}
	if err := reporter.WriteReport(&out, report); err != nil {
		return nil, out.String(), err
	}
	return report, out.String(), nil
}

// TestConfigurationManagement checks config files produced by the helper load correctly
func (s *TestSuite) TestConfigurationManagement() {
	s.Run("ValidConfiguration", func() {
		configPath := s.helper.CreateValidConfigFile("auto-dockerize --dry-run", "virtual")

		cfg, err := config.LoadConfig(configPath)
		s.Require().NoError(err)
		s.Equal("auto-dockerize --dry-run", cfg.Dockerizer.Command)
		s.Equal(dockerizer.VirtualShell, cfg.Dockerizer.Shell)
	})

	s.Run("InvalidConfiguration", func() {
		configPath := s.helper.CreateTempConfigFile("broken.yaml", "dockerizer: [")

		_, err := config.LoadConfig(configPath)
		s.Error(err)
	})
}

// TestScenarioTwoRepositories runs the two repository scenario with answers y then n
func (s *TestSuite) TestScenarioTwoRepositories() {
	repos := []models.Repository{
		{Name: "a", URL: "u1", Tags: []string{"x"}},
		{Name: "b", URL: "u2", Tags: []string{"x", "y"}},
	}
	command, logPath := s.helper.CreateFakeDockerizer()

	report, output, err := s.runBenchmark(dockerizer.DefaultShell, command, repos, []string{"y", "n"})
	s.Require().NoError(err)

	s.Equal(2, report.TotalBenchmarked)
	s.Equal(1, report.Successful)
	s.Equal(1, report.Failed)
	s.Equal(models.TagStats{Successful: 1, Failed: 1}, report.Tags["x"])
	s.Equal(models.TagStats{Successful: 0, Failed: 1}, report.Tags["y"])

	s.Contains(output, "dockerized u1\n")
	s.Contains(output, "dockerized u2\n")
	s.Contains(output, "  Overall Success Rate: 50.00%\n")
	s.Contains(output, "  y:\n    Successful: 0\n    Failed: 1\n    Success Rate: 0.00%\n")
	s.Equal([]string{"u1", "u2"}, s.helper.ReadInvocations(logPath))
}

// TestInvocationOrder checks repositories are dockerized in catalog order
func (s *TestSuite) TestInvocationOrder() {
	repos := []models.Repository{
		{Name: "zeta", URL: "https://example.com/zeta", Tags: []string{}},
		{Name: "alpha", URL: "https://example.com/alpha", Tags: []string{}},
		{Name: "mid", URL: "https://example.com/mid", Tags: []string{}},
	}
	command, logPath := s.helper.CreateFakeDockerizer()

	_, _, err := s.runBenchmark(dockerizer.DefaultShell, command, repos, []string{"y", "y", "y"})
	s.Require().NoError(err)

	s.Equal([]string{
		"https://example.com/zeta",
		"https://example.com/alpha",
		"https://example.com/mid",
	}, s.helper.ReadInvocations(logPath))
}

// TestEmptyRepositoryList checks an empty catalog yields an all-zero report
func (s *TestSuite) TestEmptyRepositoryList() {
	report, output, err := s.runBenchmark(dockerizer.DefaultShell, "true", []models.Repository{}, nil)
	s.Require().NoError(err)

	s.Equal(0, report.TotalBenchmarked)
	s.Empty(report.Tags)
	s.Contains(output, "  Overall Success Rate: 0.00%\n")
}

// TestSpawnFailure checks an unlaunchable shell aborts before any verdict or report
func (s *TestSuite) TestSpawnFailure() {
	repos := []models.Repository{{Name: "a", URL: "u1", Tags: []string{"x"}}}

	report, output, err := s.runBenchmark("/nonexistent/shell", "dockerize", repos, []string{"y"})
	s.Require().Error(err)
	s.True(errors.Is(err, dockerizer.ErrSpawn))
	s.Nil(report)
	s.NotContains(output, "Was dockerization successful")
	s.NotContains(output, "Overall Performance")
}

// TestEmbeddedCatalog benchmarks the bundled catalog with every answer accepted
func (s *TestSuite) TestEmbeddedCatalog() {
	repos, err := catalog.Load()
	s.Require().NoError(err)

	answers := make([]string, len(repos))
	for i := range answers {
		answers[i] = "y"
	}

	report, output, err := s.runBenchmark(dockerizer.VirtualShell, "true", repos, answers)
	s.Require().NoError(err)

	s.Equal(len(repos), report.TotalBenchmarked)
	s.Equal(len(repos), report.Successful)
	s.Equal(catalog.CountByTag(repos), tagTotals(report))
	s.Contains(output, "  Overall Success Rate: 100.00%\n")
}

// TestProperty_ReportMatchesAnswers checks totals and tag counters for random catalogs
func (s *TestSuite) TestProperty_ReportMatchesAnswers() {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("report counters follow the operator answers", prop.ForAll(
		func(repos []models.Repository, pool []string) bool {
			answers := make([]string, len(repos))
			for i := range answers {
				if len(pool) > 0 {
					answers[i] = pool[i%len(pool)]
				}
			}

			report, _, err := s.runBenchmark(dockerizer.VirtualShell, "true", repos, answers)
			if err != nil {
				return false
			}

			expected := ExpectedReport(repos, answers)
			if report.TotalBenchmarked != len(repos) ||
				report.Successful != expected.Successful ||
				report.Successful+report.Failed != report.TotalBenchmarked {
				return false
			}

			totals := tagTotals(report)
			for tag, count := range catalog.CountByTag(repos) {
				if totals[tag] != count {
					return false
				}
			}
			return len(totals) == len(catalog.CountByTag(repos))
		},
		s.generators.GenRepositorySlice(),
		s.generators.GenAnswerSlice(10),
	))

	properties.TestingRun(s.T(), gopter.ConsoleReporter(false))
}

// tagTotals flattens the tag counters of a report into carrier counts
func tagTotals(report *models.Report) map[string]int {
	totals := make(map[string]int, len(report.Tags))
	for tag, stats := range report.Tags {
		totals[tag] = stats.Total()
	}
	return totals
}

