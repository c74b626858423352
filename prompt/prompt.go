// Package prompt asks the operator for a verdict on each dockerization attempt.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"dockerizer-benchmark/internal/models"
)

// ErrIO is wrapped by every failure to write the prompt or read the answer
var ErrIO = errors.New("operator prompt I/O failure")

// Prompter reads one verdict line per question
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing questions to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask writes the question for the repository and blocks until the operator answers.
// Reaching end of input without an answer counts as a failed verdict.
func (p *Prompter) Ask(name string) (models.Verdict, error) {
	if _, err := fmt.Fprintf(p.out, "Was dockerization successful for %s? (y/n): ", name); err != nil {
		return models.VerdictFailed, fmt.Errorf("%w: failed to write prompt: %w", ErrIO, err)
	}
	if err := flush(p.out); err != nil {
		return models.VerdictFailed, fmt.Errorf("%w: failed to flush prompt: %w", ErrIO, err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return models.VerdictFailed, fmt.Errorf("%w: failed to read answer: %w", ErrIO, err)
	}

	return ParseVerdict(line), nil
}

// ParseVerdict interprets an answer; only "y" after trimming and lower-casing is a success
func ParseVerdict(answer string) models.Verdict {
	if strings.ToLower(strings.TrimSpace(answer)) == "y" {
		return models.VerdictSuccessful
	}
	return models.VerdictFailed
}

// flush pushes buffered prompt output through when the writer is buffered.
// os.Stdout is unbuffered, so a plain write already reaches the terminal.
func flush(w io.Writer) error {
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
