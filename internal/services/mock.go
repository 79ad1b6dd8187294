// Bundled catalog implementation of [Gateway]
//
// Serves a small fixed dataset from memory so the application works without TMDb credentials.
package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
)

var bundledMovies = []models.Movie{
	{
		ID:          1,
		Title:       "The Dark Knight",
		PosterPath:  "/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
		ReleaseDate: "2008-07-18",
		VoteAverage: 9.0,
		Overview:    "Batman raises the stakes in his war on crime. With the help of Lt. Jim Gordon and District Attorney Harvey Dent, Batman sets out to destroy the remaining criminal organizations that plague the streets.",
		GenreIDs:    []int{28, 80, 18},
	},
	{
		ID:          2,
		Title:       "Inception",
		PosterPath:  "/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg",
		ReleaseDate: "2010-07-16",
		VoteAverage: 8.8,
		Overview:    "Dom Cobb is a skilled thief, the absolute best in the dangerous art of extraction, stealing valuable secrets from deep within the subconscious during the dream state.",
		GenreIDs:    []int{28, 878, 12},
	},
	{
		ID:          3,
		Title:       "Interstellar",
		PosterPath:  "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
		ReleaseDate: "2014-11-07",
		VoteAverage: 8.6,
		Overview:    "The adventures of a group of explorers who make use of a newly discovered wormhole to surpass the limitations on human space travel and conquer the vast distances involved in an interstellar voyage.",
		GenreIDs:    []int{12, 18, 878},
	},
	{
		ID:          4,
		Title:       "The Matrix",
		PosterPath:  "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
		ReleaseDate: "1999-03-31",
		VoteAverage: 8.7,
		Overview:    "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
		GenreIDs:    []int{28, 878},
	},
	{
		ID:          5,
		Title:       "Pulp Fiction",
		PosterPath:  "/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
		ReleaseDate: "1994-10-14",
		VoteAverage: 8.9,
		Overview:    "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.",
		GenreIDs:    []int{53, 80},
	},
	{
		ID:          6,
		Title:       "The Shawshank Redemption",
		PosterPath:  "/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
		ReleaseDate: "1994-09-23",
		VoteAverage: 9.3,
		Overview:    "Framed in the 1940s for the double murder of his wife and her lover, upstanding banker Andy Dufresne begins a new life at the Shawshank prison.",
		GenreIDs:    []int{18, 80},
	},
	{
		ID:          7,
		Title:       "Fight Club",
		PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
		ReleaseDate: "1999-10-15",
		VoteAverage: 8.8,
		Overview:    "An insomniac office worker and a devil-may-care soap maker form an underground fight club that evolves into much more.",
		GenreIDs:    []int{18},
	},
	{
		ID:          8,
		Title:       "Goodfellas",
		PosterPath:  "/aKuFiU82s5ISJpGZp7YkIr3kCUd.jpg",
		ReleaseDate: "1990-09-21",
		VoteAverage: 8.7,
		Overview:    "The story of Henry Hill and his life in the mob, covering his relationship with his wife Karen Hill and his mob partners.",
		GenreIDs:    []int{18, 80},
	},
}

var bundledGenres = []models.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

const bundledRuntime = 148

var bundledCompanies = []models.Company{
	{Name: "Warner Bros. Pictures"},
	{Name: "Legendary Entertainment"},
}

// MockService implements [Gateway] over the bundled dataset.
type MockService struct {
	movies []models.Movie
	genres []models.Genre
}

// NewMockService creates a gateway serving the bundled catalog.
func NewMockService() *MockService {
	return &MockService{movies: bundledMovies, genres: bundledGenres}
}

// NewMockServiceWith creates a gateway serving the given records.
func NewMockServiceWith(movies []models.Movie, genres []models.Genre) *MockService {
	return &MockService{movies: movies, genres: genres}
}

// Name returns the gateway name.
func (m *MockService) Name() string {
	return "Bundled catalog"
}

func (m *MockService) window(from, to int) []models.Movie {
	from = min(from, len(m.movies))
	to = min(to, len(m.movies))
	return slices.Clone(m.movies[from:to])
}

// ListTrending returns every bundled movie.
func (m *MockService) ListTrending(ctx context.Context) ([]models.Movie, error) {
	return m.window(0, len(m.movies)), ctx.Err()
}

// ListTopRated returns the first six bundled movies.
func (m *MockService) ListTopRated(ctx context.Context) ([]models.Movie, error) {
	return m.window(0, 6), ctx.Err()
}

// ListPopular returns bundled movies three through eight.
func (m *MockService) ListPopular(ctx context.Context) ([]models.Movie, error) {
	return m.window(2, 8), ctx.Err()
}

// ListByGenre returns bundled movies tagged with genreID.
func (m *MockService) ListByGenre(ctx context.Context, genreID int) ([]models.Movie, error) {
	var movies []models.Movie
	for _, movie := range m.movies {
		if movie.HasGenre(genreID) {
			movies = append(movies, movie)
		}
	}
	return movies, ctx.Err()
}

// Search filters bundled titles case-insensitively by substring.
func (m *MockService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, shared.ErrEmptyQuery
	}

	var movies []models.Movie
	for _, movie := range m.movies {
		if movie.MatchesTitle(query) {
			movies = append(movies, movie)
		}
	}
	return movies, ctx.Err()
}

// ListGenres returns the bundled genres.
func (m *MockService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return slices.Clone(m.genres), ctx.Err()
}

// GetDetail returns the bundled movie with a fixed runtime and production companies.
func (m *MockService) GetDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(m.movies, func(movie models.Movie) bool { return movie.ID == movieID })
	if idx < 0 {
		return nil, fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, movieID)
	}

	movie := m.movies[idx]
	detail := &models.MovieDetail{
		Movie:     movie,
		Runtime:   bundledRuntime,
		Companies: slices.Clone(bundledCompanies),
	}
	for _, id := range movie.GenreIDs {
		if g := slices.IndexFunc(m.genres, func(genre models.Genre) bool { return genre.ID == id }); g >= 0 {
			detail.Genres = append(detail.Genres, m.genres[g])
		}
	}

	return detail, nil
}
