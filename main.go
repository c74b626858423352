package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dockerizer-benchmark/benchmark"
	"dockerizer-benchmark/catalog"
	"dockerizer-benchmark/config"
	"dockerizer-benchmark/dockerizer"
	"dockerizer-benchmark/internal/models"
	"dockerizer-benchmark/prompt"
	"dockerizer-benchmark/reporter"
)

// Version information - can be set at build time using ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errMissingCommand is returned when neither the flag nor the config file names a dockerizer
var errMissingCommand = errors.New("a dockerizer command is required: pass --dockerizer-command or set dockerizer.command in the config file")

// options holds the parsed command line flags
type options struct {
	dockerizerCommand string
	configPath        string
	verbose           bool
	debug             bool
}

// environment holds the process streams and the repository source used by run
type environment struct {
	stdin            io.Reader
	stdout           io.Writer
	stderr           io.Writer
	loadRepositories func() ([]models.Repository, error)
}

func main() {
	root := newRootCommand(&environment{
		stdin:            os.Stdin,
		stdout:           os.Stdout,
		stderr:           os.Stderr,
		loadRepositories: catalog.Load,
	})

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the benchmark command bound to env
func newRootCommand(env *environment) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dockerizer-benchmark",
		Short: "Benchmark an auto-dockerizer against a fixed set of repositories",
		Long: titleStyle.Render("dockerizer-benchmark") + subtitleStyle.Render(" - benchmark an auto-dockerizer") + `

Runs the dockerizer command once per bundled repository, asks you whether
each dockerization succeeded, and prints success rates overall and per tag.

` + subtitleStyle.Render("Example:") + `
  ` + commandStyle.Render(`dockerizer-benchmark --dockerizer-command "auto-dockerize --push=false"`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, env)
		},
	}

	cmd.Flags().StringVarP(&opts.dockerizerCommand, "dockerizer-command", "d", "", "Command to run the auto-dockerizer tool; the repository URL is appended")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or TOML configuration file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging output")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging with per-repository trace information")

	return cmd
}

// run loads configuration and the catalog, benchmarks every repository and prints the report
func run(ctx context.Context, opts *options, env *environment) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	logger, err := setupLogger(env.stderr, cfg, opts)
	if err != nil {
		return err
	}

	command := opts.dockerizerCommand
	if command == "" {
		command = cfg.Dockerizer.Command
	}
	if command == "" {
		return errMissingCommand
	}

	logger.Info("Dockerizer benchmark starting", "command", command, "shell", cfg.Dockerizer.Shell)

	// 1. Load the bundled repository list
	repositories, err := env.loadRepositories()
	if err != nil {
		return fmt.Errorf("failed to load repositories: %w", err)
	}
	logger.Info("Repository catalog loaded",
		"repositories", len(repositories),
		"tags", len(catalog.CountByTag(repositories)))

	// 2. Benchmark each repository in order
	runner := dockerizer.New(cfg.Dockerizer.Shell, dockerizer.IO{
		Stdout: env.stdout,
		Stderr: env.stderr,
	})
	prompter := prompt.NewPrompter(env.stdin, env.stdout)
	benchmarkRunner := benchmark.NewRunner(command, runner, prompter, env.stdout)

	report, err := benchmarkRunner.Run(ctx, repositories)
	if err != nil {
		return fmt.Errorf("benchmark aborted: %w", err)
	}

	// 3. Print the report
	if err := reporter.WriteReport(env.stdout, report); err != nil {
		return err
	}

	reporter.LogTimings(logger, report)
	total, successful, failed := report.GetSummaryStats()
	logger.Info("Benchmark completed",
		"total", total,
		"successful", successful,
		"failed", failed)

	return nil
}

// setupLogger installs a charmbracelet/log backed slog logger as the default.
// Flags take precedence over the configured level.
func setupLogger(w io.Writer, cfg *config.Config, opts *options) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		level = slog.LevelInfo
	}
	if opts.debug {
		level = slog.LevelDebug
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		Prefix:          "benchmark",
		ReportTimestamp: opts.debug,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// versionString returns a formatted version string for display
func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}
