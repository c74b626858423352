package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"dockerizer-benchmark/internal/models"
)

// ErrInvalidCatalog is wrapped by every error caused by a malformed repository list
var ErrInvalidCatalog = errors.New("invalid repository catalog")

//go:embed repositories.json
var embeddedRepositories []byte

// rawRepository mirrors models.Repository with pointer fields so missing keys can be told apart from empty values
type rawRepository struct {
	Name *string   `json:"name"`
	URL  *string   `json:"url"`
	Tags *[]string `json:"tags"`
}

// Load parses the repository list bundled into the binary at build time
func Load() ([]models.Repository, error) {
	return Parse(embeddedRepositories)
}

// Parse decodes a JSON array of repositories and validates every entry
func Parse(data []byte) ([]models.Repository, error) {
	var raw *[]rawRepository
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrInvalidCatalog, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array, got %s", ErrInvalidCatalog, describe(data))
	}

	repositories := make([]models.Repository, 0, len(*raw))
	for i, entry := range *raw {
		repo, err := entry.toRepository()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i, err)
		}
		repositories = append(repositories, repo)
	}

	return repositories, nil
}

// toRepository validates the required fields and converts the entry
func (r rawRepository) toRepository() (models.Repository, error) {
	if r.Name == nil {
		return models.Repository{}, fmt.Errorf("missing field \"name\"")
	}
	if r.URL == nil {
		return models.Repository{}, fmt.Errorf("missing field \"url\" for repository %q", *r.Name)
	}
	if r.Tags == nil {
		return models.Repository{}, fmt.Errorf("missing field \"tags\" for repository %q", *r.Name)
	}

	tags := make([]string, len(*r.Tags))
	copy(tags, *r.Tags)

	return models.Repository{
		Name: *r.Name,
		URL:  *r.URL,
		Tags: tags,
	}, nil
}

// describe returns a short description of a non-array document for error messages
func describe(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 20 {
		trimmed = append(trimmed[:20:20], "..."...)
	}
	return string(trimmed)
}

// CountByTag returns how many repositories carry each tag
func CountByTag(repositories []models.Repository) map[string]int {
	counts := make(map[string]int)
	for _, repo := range repositories {
		for _, tag := range repo.UniqueTags() {
			counts[tag]++
		}
	}
	return counts
}
