package tasks

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// SortOrder orders search results.
type SortOrder int

const (
	// SortRelevance keeps the order the gateway returned.
	SortRelevance SortOrder = iota
	SortRating
	SortDate
)

// SortOrders lists every order in display order.
var SortOrders = []SortOrder{SortRelevance, SortRating, SortDate}

func (s SortOrder) String() string {
	switch s {
	case SortRating:
		return "rating"
	case SortDate:
		return "date"
	default:
		return "relevance"
	}
}

// Next cycles to the following order.
func (s SortOrder) Next() SortOrder {
	return SortOrders[(int(s)+1)%len(SortOrders)]
}

// ParseSortOrder parses "relevance", "rating" or "date". An empty name is relevance.
func ParseSortOrder(name string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "relevance":
		return SortRelevance, nil
	case "rating":
		return SortRating, nil
	case "date", "release_date":
		return SortDate, nil
	default:
		return SortRelevance, fmt.Errorf("%w: unknown sort order %q", shared.ErrInvalidFlag, name)
	}
}

// SearchOpts narrows and orders search results. A zero GenreID means all genres.
type SearchOpts struct {
	GenreID int
	Sort    SortOrder
}

// Search runs the gateway search, then filters and sorts the results. A blank query is rejected;
// any other failure degrades to an empty section.
func (c *Catalog) Search(ctx context.Context, query string, opts SearchOpts) (SectionResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return SectionResult{}, shared.ErrEmptyQuery
	}

	res := c.LoadSection(ctx, SearchKey(q))
	res.Section.Movies = Refine(res.Section.Movies, opts)
	return res, nil
}

// Refine applies opts to movies, returning a new slice.
func Refine(movies []models.Movie, opts SearchOpts) []models.Movie {
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if opts.GenreID == 0 || m.HasGenre(opts.GenreID) {
			out = append(out, m)
		}
	}

	switch opts.Sort {
	case SortRating:
		slices.SortStableFunc(out, func(a, b models.Movie) int {
			return cmp.Compare(b.VoteAverage, a.VoteAverage)
		})
	case SortDate:
		// YYYY-MM-DD sorts lexically; undated movies go last.
		slices.SortStableFunc(out, func(a, b models.Movie) int {
			return cmp.Compare(b.ReleaseDate, a.ReleaseDate)
		})
	}
	return out
}
