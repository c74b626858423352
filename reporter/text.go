package reporter

import (
	"fmt"
	"io"
	"strings"

	"dockerizer-benchmark/internal/models"
)

const (
	reportHeader = "--- Auto-Dockerizer Benchmark Report ---"
	reportFooter = "--- End Report ---"
)

// WriteReport renders the benchmark report as plain text to w
func WriteReport(w io.Writer, report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if _, err := io.WriteString(w, generateTextContent(report)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// generateTextContent creates the text content for the report
func generateTextContent(report *models.Report) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("\n%s\n", reportHeader))

	// Overall statistics
	content.WriteString("\nOverall Performance:\n")
	content.WriteString(fmt.Sprintf("  Total Repositories Benchmarked: %d\n", report.TotalBenchmarked))
	content.WriteString(fmt.Sprintf("  Successful Dockerizations: %d\n", report.Successful))
	content.WriteString(fmt.Sprintf("  Failed Dockerizations: %d\n", report.Failed))
	content.WriteString(fmt.Sprintf("  Overall Success Rate: %s\n", formatRate(report.SuccessRate())))

	// Per-tag breakdown, sorted for deterministic output
	content.WriteString("\nBreakdown by Tag:\n")
	for _, tag := range report.SortedTags() {
		content.WriteString(generateTagSection(tag, report.Tags[tag]))
	}

	content.WriteString(fmt.Sprintf("\n%s\n", reportFooter))

	return content.String()
}

// generateTagSection creates the text section for a single tag
func generateTagSection(tag string, stats models.TagStats) string {
	var section strings.Builder

	section.WriteString(fmt.Sprintf("  %s:\n", tag))
	section.WriteString(fmt.Sprintf("    Successful: %d\n", stats.Successful))
	section.WriteString(fmt.Sprintf("    Failed: %d\n", stats.Failed))
	section.WriteString(fmt.Sprintf("    Success Rate: %s\n", formatRate(stats.SuccessRate())))

	return section.String()
}

// formatRate formats a percentage with two decimals
func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}
