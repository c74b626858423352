// Package dockerizer runs the external dockerizer command against a repository.
package dockerizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dockerizer-benchmark/internal/models"
)

// VirtualShell selects the embedded shell interpreter instead of a system shell
const VirtualShell = "virtual"

// DefaultShell is the system shell used when none is configured
const DefaultShell = "sh"

// ErrSpawn is wrapped by every error caused by failing to launch the dockerizer
var ErrSpawn = errors.New("failed to execute dockerizer command")

// Runner executes the dockerizer for one repository and blocks until it exits.
// A non-zero exit of the dockerizer itself is not an error.
type Runner interface {
	Run(ctx context.Context, command string, repo models.Repository) error
}

// IO holds the output streams connected to the dockerizer process.
// The dockerizer never reads stdin; operator input is reserved for verdicts.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns the runner matching the configured shell
func New(shell string, streams IO) Runner {
	switch shell {
	case VirtualShell:
		return NewVirtualRunner(streams)
	case "":
		return NewShellRunner(DefaultShell, streams)
	default:
		return NewShellRunner(shell, streams)
	}
}

// CommandLine joins the dockerizer command and the repository URL into one shell string.
// The URL is not escaped, so shell features in the command keep working.
func CommandLine(command string, repo models.Repository) string {
	return fmt.Sprintf("%s %s", command, repo.URL)
}

// logExit records a non-zero dockerizer exit status
func logExit(repo models.Repository, code int) {
	if code != 0 {
		slog.Debug("Dockerizer exited with non-zero status", "repository", repo.Name, "exit_code", code)
	}
}
