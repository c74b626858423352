package reporter

import (
	"log/slog"
	"time"

	"github.com/montanaflynn/stats"

	"dockerizer-benchmark/internal/models"
)

// TimingSummary describes how long the dockerizer took across a run
type TimingSummary struct {
	Min    time.Duration
	Mean   time.Duration
	Median time.Duration
	Max    time.Duration
}

// SummarizeTimings computes the dockerizer duration statistics of a report.
// ok is false when the report has no recorded durations.
func SummarizeTimings(report *models.Report) (summary TimingSummary, ok bool) {
	if report == nil || len(report.Durations) == 0 {
		return TimingSummary{}, false
	}

	data := make(stats.Float64Data, 0, len(report.Durations))
	for _, d := range report.Durations {
		data = append(data, float64(d))
	}

	// The statistics functions only fail on empty input, which is excluded above.
	minimum, _ := data.Min()
	mean, _ := data.Mean()
	median, _ := data.Median()
	maximum, _ := data.Max()

	return TimingSummary{
		Min:    time.Duration(minimum),
		Mean:   time.Duration(mean),
		Median: time.Duration(median),
		Max:    time.Duration(maximum),
	}, true
}

// LogTimings logs the dockerizer duration statistics of a report
func LogTimings(logger *slog.Logger, report *models.Report) {
	summary, ok := SummarizeTimings(report)
	if !ok {
		return
	}

	logger.Info("Dockerizer timings",
		"runs", len(report.Durations),
		"min", summary.Min.Round(time.Millisecond),
		"mean", summary.Mean.Round(time.Millisecond),
		"median", summary.Median.Round(time.Millisecond),
		"max", summary.Max.Round(time.Millisecond))
}
