package models

import (
	"sort"
	"time"
)

// TagStats holds the verdict counters for a single tag
type TagStats struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Total returns the number of repositories counted for the tag
func (s TagStats) Total() int {
	return s.Successful + s.Failed
}

// SuccessRate returns the tag success percentage
func (s TagStats) SuccessRate() float64 {
	return SuccessRate(s.Successful, s.Total())
}

// Report represents the accumulated statistics of one benchmark run
type Report struct {
	TotalBenchmarked int                 `json:"total_benchmarked"`
	Successful       int                 `json:"successful"`
	Failed           int                 `json:"failed"`
	Tags             map[string]TagStats `json:"tags"`
	Durations        []time.Duration     `json:"-"`
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{
		Tags: make(map[string]TagStats),
	}
}

// AddResult records a repository verdict in the totals and in every tag of the repository
func (r *Report) AddResult(result Result) {
	if r.Tags == nil {
		r.Tags = make(map[string]TagStats)
	}

	r.TotalBenchmarked++
	success := result.Verdict.IsSuccess()
	if success {
		r.Successful++
	} else {
		r.Failed++
	}

	for _, tag := range result.Repository.UniqueTags() {
		stats := r.Tags[tag]
		if success {
			stats.Successful++
		} else {
			stats.Failed++
		}
		r.Tags[tag] = stats
	}

	r.Durations = append(r.Durations, result.Duration)
}

// SuccessRate returns the overall success percentage
func (r *Report) SuccessRate() float64 {
	return SuccessRate(r.Successful, r.TotalBenchmarked)
}

// SortedTags returns the report tags in ascending lexicographic order
func (r *Report) SortedTags() []string {
	tags := make([]string, 0, len(r.Tags))
	for tag := range r.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// GetSummaryStats returns the summary statistics for the report
func (r *Report) GetSummaryStats() (int, int, int) {
	return r.TotalBenchmarked, r.Successful, r.Failed
}

// SuccessRate computes successful/total as a percentage, 0 when total is 0
func SuccessRate(successful, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return float64(successful) / float64(total) * 100.0
}
