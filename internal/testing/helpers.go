package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dockerizer-benchmark/internal/models"
)

// TestHelper provides common testing utilities and helpers
type TestHelper struct {
	t       *testing.T
	tempDir string
}

// NewTestHelper creates a new test helper instance
func NewTestHelper(t *testing.T) *TestHelper {
	tempDir, err := os.MkdirTemp("", "dockerizer-benchmark-test")
	require.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(tempDir)
	})

	return &TestHelper{
		t:       t,
		tempDir: tempDir,
	}
}

// GetTempDir returns the temporary directory for this test
func (h *TestHelper) GetTempDir() string {
	return h.tempDir
}

// CreateTempConfigFile creates a temporary config file with the given name and content
func (h *TestHelper) CreateTempConfigFile(name, content string) string {
	configFile := filepath.Join(h.tempDir, name)
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(h.t, err)
	return configFile
}

// CreateValidConfigFile creates a YAML config file for the given command and shell
func (h *TestHelper) CreateValidConfigFile(command, shell string) string {
	yamlContent := fmt.Sprintf(`dockerizer:
  command: %q
  shell: %q
`, command, shell)
	return h.CreateTempConfigFile("config.yaml", yamlContent)
}

// CreateFakeDockerizer writes a shell script that appends every URL it is given
// to a log file and prints a line per invocation. It returns the dockerizer command and the log path.
func (h *TestHelper) CreateFakeDockerizer() (string, string) {
	logPath := filepath.Join(h.tempDir, "invocations.log")
	scriptPath := filepath.Join(h.tempDir, "fake-dockerizer.sh")

	script := fmt.Sprintf(`#!/bin/sh
echo "$1" >> %q
echo "dockerized $1"
`, logPath)
	require.NoError(h.t, os.WriteFile(scriptPath, []byte(script), 0755))

	return fmt.Sprintf("sh %q", scriptPath), logPath
}

// ReadInvocations returns the URLs recorded by the fake dockerizer, in call order
func (h *TestHelper) ReadInvocations(logPath string) []string {
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(h.t, err)

	return strings.Fields(string(data))
}

// AnswerInput joins answers into the newline separated text an operator would type
func AnswerInput(answers []string) string {
	if len(answers) == 0 {
		return ""
	}
	return strings.Join(answers, "\n") + "\n"
}

// ExpectedReport computes the report a run over repos with the given answers must produce
func ExpectedReport(repos []models.Repository, answers []string) *models.Report {
	report := models.NewReport()
	for i, repo := range repos {
		verdict := models.VerdictFailed
		if i < len(answers) && strings.ToLower(strings.TrimSpace(answers[i])) == "y" {
			verdict = models.VerdictSuccessful
		}
		report.AddResult(models.Result{Repository: repo, Verdict: verdict})
	}
	return report
}
