package dockerizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"dockerizer-benchmark/internal/models"
)

// VirtualRunner executes the dockerizer with the embedded mvdan/sh interpreter.
// External programs are still started as child processes by the interpreter.
type VirtualRunner struct {
	streams IO
}

// NewVirtualRunner creates a runner backed by the embedded interpreter
func NewVirtualRunner(streams IO) *VirtualRunner {
	return &VirtualRunner{streams: streams}
}

// Run parses and interprets "<command> <url>"
func (r *VirtualRunner) Run(ctx context.Context, command string, repo models.Repository) error {
	line := CommandLine(command, repo)

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "dockerizer")
	if err != nil {
		return fmt.Errorf("%w for %s: failed to parse command: %w", ErrSpawn, repo.Name, err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, r.streams.Stdout, r.streams.Stderr),
	)
	if err != nil {
		return fmt.Errorf("%w for %s: failed to create interpreter: %w", ErrSpawn, repo.Name, err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) && ctx.Err() == nil {
			logExit(repo, int(exitStatus))
			return nil
		}
		return fmt.Errorf("%w for %s: %w", ErrSpawn, repo.Name, err)
	}

	return nil
}
