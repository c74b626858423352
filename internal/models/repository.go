package models

import "time"

// Verdict represents the operator's judgment of a single dockerization attempt
type Verdict int

const (
	VerdictFailed Verdict = iota
	VerdictSuccessful
)

// String returns the string representation of Verdict
func (v Verdict) String() string {
	switch v {
	case VerdictSuccessful:
		return "Successful"
	case VerdictFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsSuccess returns true if the operator confirmed the dockerization
func (v Verdict) IsSuccess() bool {
	return v == VerdictSuccessful
}

// Repository represents one benchmark subject from the embedded catalog
type Repository struct {
	Name string   `json:"name"`
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

// UniqueTags returns the repository tags in their original order with duplicates removed
func (r Repository) UniqueTags() []string {
	seen := make(map[string]bool, len(r.Tags))
	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// Result is the outcome of benchmarking a single repository
type Result struct {
	Repository Repository    `json:"repository"`
	Verdict    Verdict       `json:"verdict"`
	Duration   time.Duration `json:"duration"`
}
