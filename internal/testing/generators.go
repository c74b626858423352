package testing

import (
	"fmt"
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"dockerizer-benchmark/internal/models"
)

// PropertyTestGenerators provides gopter generators for property-based testing
type PropertyTestGenerators struct{}

// NewPropertyTestGenerators creates a new property test generators instance
func NewPropertyTestGenerators() *PropertyTestGenerators {
	return &PropertyTestGenerators{}
}

// GenRepository generates random Repository instances
func (g *PropertyTestGenerators) GenRepository() gopter.Gen {
	return gopter.CombineGens(
		g.GenRepositoryName(), // Name
		g.GenTagList(),        // Tags
	).Map(func(values []interface{}) models.Repository {
		name := values[0].(string)
		return models.Repository{
			Name: name,
			URL:  fmt.Sprintf("https://github.com/example/%s", name),
			Tags: values[1].([]string),
		}
	})
}

// GenRepositorySlice generates slices of at most 30 repositories
func (g *PropertyTestGenerators) GenRepositorySlice() gopter.Gen {
	return gen.SliceOf(g.GenRepository()).Map(func(repos []models.Repository) []models.Repository {
		if len(repos) > 30 {
			return repos[:30]
		}
		return repos
	})
}

// GenRepositoryName generates short lowercase repository names
func (g *PropertyTestGenerators) GenRepositoryName() gopter.Gen {
	return gen.Identifier().Map(func(s string) string {
		if len(s) > 20 {
			return s[:20]
		}
		return s
	})
}

// GenTag generates tags from a small pool so repositories share them
func (g *PropertyTestGenerators) GenTag() gopter.Gen {
	return gen.OneConstOf(
		"go", "python", "rust", "node", "java", "ruby",
		"web", "cli", "api", "database", "monorepo",
	)
}

// GenTagList generates up to four tags, possibly empty and possibly with repeats
func (g *PropertyTestGenerators) GenTagList() gopter.Gen {
	return gen.SliceOf(g.GenTag(), reflect.TypeOf("")).Map(func(tags []string) []string {
		if len(tags) > 4 {
			return tags[:4]
		}
		return tags
	})
}

// GenAnswer generates operator answers, both accepted and rejected spellings
func (g *PropertyTestGenerators) GenAnswer() gopter.Gen {
	return gen.OneConstOf(
		"y", "Y", " y", "y ", "\ty",
		"n", "N", "yes", "Yes", "no", "", "maybe",
	)
}

// GenAnswerSlice generates exactly n answers
func (g *PropertyTestGenerators) GenAnswerSlice(n int) gopter.Gen {
	return gen.SliceOfN(n, g.GenAnswer())
}
