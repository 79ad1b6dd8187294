package tasks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveGenre finds the genre best matching name. An exact (case-insensitive) name wins;
// otherwise the closest fuzzy match is used, so "scifi" finds "Science Fiction".
func ResolveGenre(genres []models.Genre, name string) (models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Genre{}, fmt.Errorf("%w: genre name", shared.ErrMissingArgument)
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
		names[i] = g.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) == 0 {
		return models.Genre{}, fmt.Errorf("%w: %q", shared.ErrGenreNotFound, name)
	}
	sort.Sort(ranks)
	return genres[ranks[0].OriginalIndex], nil
}

// GenreName returns the name for id, or "" when id is not in genres.
func GenreName(genres []models.Genre, id int) string {
	for _, g := range genres {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}
