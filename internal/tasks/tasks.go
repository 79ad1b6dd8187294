// package tasks loads catalog sections for the CLI and the TUI.
//
// Every gateway failure degrades to an empty section. Callers render "No movies found" rather than an error.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/services"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// Section keys. Genre and search sections take an argument: "genre:28", "search:dark knight".
const (
	TrendingKey  = "trending"
	TopRatedKey  = "top-rated"
	PopularKey   = "popular"
	GenrePrefix  = "genre:"
	SearchPrefix = "search:"
)

// HomeKeys lists the fixed home page sections in display order.
var HomeKeys = []string{TrendingKey, TopRatedKey, PopularKey}

var sectionTitles = map[string]string{
	TrendingKey: "Trending Now",
	TopRatedKey: "Top Rated",
	PopularKey:  "Popular",
}

// SectionResult is a loaded section. Err records why the section is empty and is for logging only.
type SectionResult struct {
	Section models.Section
	Err     error
}

// Degraded reports whether the section fell back to empty because of a failure.
func (r SectionResult) Degraded() bool {
	return r.Err != nil && !errors.Is(r.Err, shared.ErrEmptyResult)
}

// HomeResult holds every home page section.
type HomeResult struct {
	Trending  SectionResult
	TopRated  SectionResult
	Popular   SectionResult
	Genres    []models.Genre
	GenresErr error
}

// Sections returns the list sections in display order.
func (h *HomeResult) Sections() []SectionResult {
	return []SectionResult{h.Trending, h.TopRated, h.Popular}
}

// Catalog applies the degrade-to-empty policy on top of a [services.Gateway].
type Catalog struct {
	gateway services.Gateway
	logger  *log.Logger
}

// NewCatalog creates a Catalog backed by gw.
func NewCatalog(gw services.Gateway, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Catalog{gateway: gw, logger: shared.WithLogger(logger, "component", "catalog")}
}

// Gateway returns the underlying gateway.
func (c *Catalog) Gateway() services.Gateway {
	return c.gateway
}

// SectionTitle returns the display title for key.
func SectionTitle(key string) string {
	if t, ok := sectionTitles[key]; ok {
		return t
	}
	switch {
	case strings.HasPrefix(key, GenrePrefix):
		return "By Genre"
	case strings.HasPrefix(key, SearchPrefix):
		return fmt.Sprintf("Results for %q", strings.TrimPrefix(key, SearchPrefix))
	default:
		return key
	}
}

// GenreKey builds the section key for a genre id.
func GenreKey(id int) string {
	return GenrePrefix + strconv.Itoa(id)
}

// SearchKey builds the section key for a query.
func SearchKey(query string) string {
	return SearchPrefix + strings.TrimSpace(query)
}

// ValidateKey reports whether key names a loadable section.
func ValidateKey(key string) error {
	switch {
	case key == TrendingKey, key == TopRatedKey, key == PopularKey:
		return nil
	case strings.HasPrefix(key, GenrePrefix):
		if id, err := strconv.Atoi(strings.TrimPrefix(key, GenrePrefix)); err != nil || id <= 0 {
			return fmt.Errorf("%w: genre section needs a positive id, got %q", shared.ErrInvalidArgument, key)
		}
		return nil
	case strings.HasPrefix(key, SearchPrefix):
		if strings.TrimSpace(strings.TrimPrefix(key, SearchPrefix)) == "" {
			return fmt.Errorf("%w: %q", shared.ErrEmptyQuery, key)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown section %q", shared.ErrInvalidArgument, key)
	}
}

// LoadSection fetches the section named by key. It never returns an error: unknown keys and
// gateway failures both yield an empty section with Err set.
func (c *Catalog) LoadSection(ctx context.Context, key string) SectionResult {
	if c.gateway == nil {
		return c.degrade(key, nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable))
	}
	if err := ValidateKey(key); err != nil {
		return c.degrade(key, nil, err)
	}

	var (
		movies []models.Movie
		err    error
	)
	switch {
	case key == TrendingKey:
		movies, err = c.gateway.ListTrending(ctx)
	case key == TopRatedKey:
		movies, err = c.gateway.ListTopRated(ctx)
	case key == PopularKey:
		movies, err = c.gateway.ListPopular(ctx)
	case strings.HasPrefix(key, GenrePrefix):
		id, _ := strconv.Atoi(strings.TrimPrefix(key, GenrePrefix))
		movies, err = c.gateway.ListByGenre(ctx, id)
	case strings.HasPrefix(key, SearchPrefix):
		movies, err = c.gateway.Search(ctx, strings.TrimPrefix(key, SearchPrefix))
	}
	return c.degrade(key, movies, err)
}

// LoadGenre fetches the movies for one genre.
func (c *Catalog) LoadGenre(ctx context.Context, genreID int) SectionResult {
	return c.LoadSection(ctx, GenreKey(genreID))
}

// LoadGenres fetches the genre list, falling back to an empty list.
func (c *Catalog) LoadGenres(ctx context.Context) ([]models.Genre, error) {
	if c.gateway == nil {
		return []models.Genre{}, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}
	genres, err := c.gateway.ListGenres(ctx)
	if err != nil {
		c.logger.Warn("genres unavailable", "err", err)
		return []models.Genre{}, err
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	return genres, nil
}

// LoadDetail fetches the full record for a movie. Unlike lists, a failed detail is returned as an error
// so the detail view can say so.
func (c *Catalog) LoadDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	if c.gateway == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}
	detail, err := c.gateway.GetDetail(ctx, movieID)
	if err != nil {
		c.logger.Warn("detail unavailable", "movie_id", movieID, "err", err)
		return nil, err
	}
	return detail, nil
}

// LoadHome fetches the three home sections and the genre list concurrently. Each one degrades on its own.
func (c *Catalog) LoadHome(ctx context.Context) *HomeResult {
	result := &HomeResult{}

	var wg sync.WaitGroup
	targets := []*SectionResult{&result.Trending, &result.TopRated, &result.Popular}
	for i, key := range HomeKeys {
		wg.Add(1)
		go func(key string, dst *SectionResult) {
			defer wg.Done()
			*dst = c.LoadSection(ctx, key)
		}(key, targets[i])
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Genres, result.GenresErr = c.LoadGenres(ctx)
	}()

	wg.Wait()
	return result
}

func (c *Catalog) degrade(key string, movies []models.Movie, err error) SectionResult {
	if movies == nil {
		movies = []models.Movie{}
	}

	switch {
	case err == nil && len(movies) == 0:
		err = fmt.Errorf("%w: %s", shared.ErrEmptyResult, key)
		c.logger.Debug("section empty", "section", key)
	case errors.Is(err, context.Canceled):
		c.logger.Debug("section cancelled", "section", key)
	case errors.Is(err, shared.ErrNetwork):
		c.logger.Warn("section unavailable", "section", key, "err", err)
	case err != nil:
		c.logger.Warn("section failed", "section", key, "err", err)
	}

	if err != nil {
		movies = []models.Movie{}
	}

	return SectionResult{
		Section: models.Section{Key: key, Title: SectionTitle(key), Movies: movies},
		Err:     err,
	}
}
