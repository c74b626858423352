package dockerizer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"dockerizer-benchmark/internal/models"
)

// ShellRunner executes the dockerizer through a system shell with `-c`
type ShellRunner struct {
	shell   string
	streams IO
}

// NewShellRunner creates a runner that invokes the given shell binary
func NewShellRunner(shell string, streams IO) *ShellRunner {
	return &ShellRunner{
		shell:   shell,
		streams: streams,
	}
}

// Shell returns the shell binary used by the runner
func (r *ShellRunner) Shell() string {
	return r.shell
}

// Run executes `<shell> -c "<command> <url>"` and waits for it to exit
func (r *ShellRunner) Run(ctx context.Context, command string, repo models.Repository) error {
	cmd := exec.CommandContext(ctx, r.shell, "-c", CommandLine(command, repo))
	cmd.Stdout = r.streams.Stdout
	cmd.Stderr = r.streams.Stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w for %s: %w", ErrSpawn, repo.Name, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logExit(repo, exitErr.ExitCode())
			return nil
		}
		return fmt.Errorf("%w for %s: %w", ErrSpawn, repo.Name, err)
	}

	return nil
}
