// Package benchmark drives the sequential benchmark loop over the repository catalog.
package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"dockerizer-benchmark/dockerizer"
	"dockerizer-benchmark/internal/models"
)

// ReportBanner is printed when the run starts and again above the final report
const ReportBanner = "--- Auto-Dockerizer Benchmark Report ---"

// VerdictReader collects the operator verdict for a repository
type VerdictReader interface {
	Ask(name string) (models.Verdict, error)
}

// Runner benchmarks repositories one after another
type Runner struct {
	dockerizer dockerizer.Runner
	verdicts   VerdictReader
	command    string
	out        io.Writer
	clock      func() time.Time
}

// NewRunner creates a benchmark runner for the given dockerizer command
func NewRunner(command string, runner dockerizer.Runner, verdicts VerdictReader, out io.Writer) *Runner {
	return &Runner{
		dockerizer: runner,
		verdicts:   verdicts,
		command:    command,
		out:        out,
		clock:      time.Now,
	}
}

// Run benchmarks every repository in order and returns the accumulated report.
// The first dockerizer or prompt failure aborts the run and no report is returned.
func (r *Runner) Run(ctx context.Context, repositories []models.Repository) (*models.Report, error) {
	if r.dockerizer == nil {
		return nil, fmt.Errorf("dockerizer runner cannot be nil")
	}
	if r.verdicts == nil {
		return nil, fmt.Errorf("verdict reader cannot be nil")
	}

	if _, err := fmt.Fprintln(r.out, ReportBanner); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	report := models.NewReport()
	for i, repo := range repositories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slog.Debug("Benchmarking repository", "index", i+1, "total", len(repositories), "repository", repo.Name)

		result, err := r.benchmarkRepository(ctx, repo)
		if err != nil {
			return nil, err
		}
		report.AddResult(result)

		slog.Debug("Recorded verdict",
			"repository", repo.Name,
			"verdict", result.Verdict.String(),
			"duration", result.Duration)
	}

	return report, nil
}

// benchmarkRepository runs the dockerizer for one repository and asks for its verdict
func (r *Runner) benchmarkRepository(ctx context.Context, repo models.Repository) (models.Result, error) {
	commandLine := dockerizer.CommandLine(r.command, repo)
	if _, err := fmt.Fprintf(r.out, "\nBenchmarking repository: %s\nExecuting dockerizer command: %s\n", repo.Name, commandLine); err != nil {
		return models.Result{}, fmt.Errorf("failed to write output: %w", err)
	}

	started := r.clock()
	if err := r.dockerizer.Run(ctx, r.command, repo); err != nil {
		return models.Result{}, fmt.Errorf("failed to benchmark repository %s: %w", repo.Name, err)
	}
	duration := r.clock().Sub(started)

	verdict, err := r.verdicts.Ask(repo.Name)
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to read verdict for repository %s: %w", repo.Name, err)
	}

	return models.Result{
		Repository: repo,
		Verdict:    verdict,
		Duration:   duration,
	}, nil
}
