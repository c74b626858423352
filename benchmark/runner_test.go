package benchmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dockerizer-benchmark/dockerizer"
	"dockerizer-benchmark/internal/models"
	"dockerizer-benchmark/prompt"
)

// mockDockerizer is a mock implementation of the dockerizer.Runner interface.
type mockDockerizer struct {
	mock.Mock
	calls []string
}

func (m *mockDockerizer) Run(ctx context.Context, command string, repo models.Repository) error {
	m.calls = append(m.calls, "run:"+repo.Name)
	args := m.Called(ctx, command, repo)
	return args.Error(0)
}

// mockVerdicts is a mock implementation of the VerdictReader interface.
type mockVerdicts struct {
	mock.Mock
	log *[]string
}

func (m *mockVerdicts) Ask(name string) (models.Verdict, error) {
	if m.log != nil {
		*m.log = append(*m.log, "ask:"+name)
	}
	args := m.Called(name)
	return args.Get(0).(models.Verdict), args.Error(1)
}

// sequenceVerdicts answers from a fixed list of verdicts.
type sequenceVerdicts struct {
	answers []models.Verdict
	next    int
}

func (s *sequenceVerdicts) Ask(string) (models.Verdict, error) {
	verdict := s.answers[s.next]
	s.next++
	return verdict, nil
}

// noopDockerizer accepts every repository.
type noopDockerizer struct{}

func (noopDockerizer) Run(context.Context, string, models.Repository) error { return nil }

func scenarioRepositories() []models.Repository {
	return []models.Repository{
		{Name: "a", URL: "u1", Tags: []string{"x"}},
		{Name: "b", URL: "u2", Tags: []string{"x", "y"}},
	}
}

func TestRunner_Run(t *testing.T) {
	testCases := []struct {
		name            string
		repositories    []models.Repository
		verdicts        []models.Verdict
		runErr          error
		askErr          error
		expectedReport  *models.Report
		expectedErrType error
	}{
		{
			name:         "two repositories answered y then n",
			repositories: scenarioRepositories(),
			verdicts:     []models.Verdict{models.VerdictSuccessful, models.VerdictFailed},
			expectedReport: &models.Report{
				TotalBenchmarked: 2,
				Successful:       1,
				Failed:           1,
				Tags: map[string]models.TagStats{
					"x": {Successful: 1, Failed: 1},
					"y": {Successful: 0, Failed: 1},
				},
			},
		},
		{
			name:         "empty repository list",
			repositories: []models.Repository{},
			expectedReport: &models.Report{
				Tags: map[string]models.TagStats{},
			},
		},
		{
			name:            "dockerizer cannot be spawned",
			repositories:    scenarioRepositories(),
			runErr:          fmt.Errorf("%w: exec: \"nosuchshell\": executable file not found", dockerizer.ErrSpawn),
			expectedErrType: dockerizer.ErrSpawn,
		},
		{
			name:            "operator input fails",
			repositories:    scenarioRepositories(),
			verdicts:        []models.Verdict{models.VerdictFailed},
			askErr:          fmt.Errorf("%w: stdin closed", prompt.ErrIO),
			expectedErrType: prompt.ErrIO,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			runner := new(mockDockerizer)
			verdicts := new(mockVerdicts)
			var out bytes.Buffer

			for i, repo := range tc.repositories {
				runner.On("Run", mock.Anything, "dockerize", repo).Return(tc.runErr).Maybe()
				if i < len(tc.verdicts) {
					verdicts.On("Ask", repo.Name).Return(tc.verdicts[i], tc.askErr).Maybe()
				}
			}

			benchmarkRunner := NewRunner("dockerize", runner, verdicts, &out)
			report, err := benchmarkRunner.Run(context.Background(), tc.repositories)

			if tc.expectedErrType != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.expectedErrType))
				assert.Nil(t, report)
				assert.Len(t, runner.calls, 1, "run must stop at the first failure")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, tc.expectedReport.TotalBenchmarked, report.TotalBenchmarked)
			assert.Equal(t, tc.expectedReport.Successful, report.Successful)
			assert.Equal(t, tc.expectedReport.Failed, report.Failed)
			assert.Equal(t, tc.expectedReport.Tags, report.Tags)
			runner.AssertExpectations(t)
			verdicts.AssertExpectations(t)
		})
	}
}

func TestRunner_ProcessesRepositoriesInOrder(t *testing.T) {
	var events []string
	runner := &orderedDockerizer{log: &events}
	verdicts := &mockVerdicts{log: &events}
	verdicts.On("Ask", mock.Anything).Return(models.VerdictSuccessful, nil)

	repositories := []models.Repository{
		{Name: "first", URL: "u1"},
		{Name: "second", URL: "u2"},
		{Name: "third", URL: "u3"},
	}

	_, err := NewRunner("dockerize", runner, verdicts, &bytes.Buffer{}).Run(context.Background(), repositories)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"run:first", "ask:first",
		"run:second", "ask:second",
		"run:third", "ask:third",
	}, events)
}

// orderedDockerizer appends to a shared event log so ordering against prompts can be checked.
type orderedDockerizer struct {
	log *[]string
}

func (o *orderedDockerizer) Run(_ context.Context, _ string, repo models.Repository) error {
	*o.log = append(*o.log, "run:"+repo.Name)
	return nil
}

func TestRunner_WritesProgressLines(t *testing.T) {
	var out bytes.Buffer
	verdicts := &sequenceVerdicts{answers: []models.Verdict{models.VerdictSuccessful, models.VerdictFailed}}

	_, err := NewRunner("auto-dockerize", noopDockerizer{}, verdicts, &out).Run(context.Background(), scenarioRepositories())
	require.NoError(t, err)

	expected := ReportBanner + "\n" +
		"\nBenchmarking repository: a\nExecuting dockerizer command: auto-dockerize u1\n" +
		"\nBenchmarking repository: b\nExecuting dockerizer command: auto-dockerize u2\n"
	assert.Equal(t, expected, out.String())
}

func TestRunner_RecordsDurations(t *testing.T) {
	verdicts := &sequenceVerdicts{answers: []models.Verdict{models.VerdictSuccessful, models.VerdictSuccessful}}
	runner := NewRunner("dockerize", noopDockerizer{}, verdicts, &bytes.Buffer{})

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	runner.clock = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	report, err := runner.Run(context.Background(), scenarioRepositories())
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, report.Durations)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	verdicts := &sequenceVerdicts{}
	report, err := NewRunner("dockerize", noopDockerizer{}, verdicts, &bytes.Buffer{}).Run(ctx, scenarioRepositories())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestRunner_NilCollaborators(t *testing.T) {
	_, err := NewRunner("dockerize", nil, &sequenceVerdicts{}, &bytes.Buffer{}).Run(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewRunner("dockerize", noopDockerizer{}, nil, &bytes.Buffer{}).Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestProperty_TotalsMatchInput(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every repository is counted once and every tag counts its carriers", prop.ForAll(
		func(answers []bool) bool {
			tagPool := []string{"go", "python", "web"}
			repositories := make([]models.Repository, len(answers))
			verdicts := make([]models.Verdict, len(answers))
			carriers := make(map[string]int)
			successes := 0

			for i, ok := range answers {
				tags := []string{tagPool[i%len(tagPool)]}
				if i%2 == 0 {
					tags = append(tags, "even")
				}
				for _, tag := range tags {
					carriers[tag]++
				}
				repositories[i] = models.Repository{Name: fmt.Sprintf("repo-%d", i), URL: fmt.Sprintf("u%d", i), Tags: tags}
				if ok {
					verdicts[i] = models.VerdictSuccessful
					successes++
				}
			}

			report, err := NewRunner("dockerize", noopDockerizer{}, &sequenceVerdicts{answers: verdicts}, &bytes.Buffer{}).
				Run(context.Background(), repositories)
			if err != nil {
				return false
			}

			if report.TotalBenchmarked != len(repositories) || report.Successful != successes {
				return false
			}
			if report.Successful+report.Failed != report.TotalBenchmarked {
				return false
			}
			for tag, count := range carriers {
				if report.Tags[tag].Total() != count {
					return false
				}
			}
			return len(report.Tags) == len(carriers)
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
