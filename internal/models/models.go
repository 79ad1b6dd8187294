// package models defines the data model for the movie catalog
package models

import (
	"slices"
	"strings"
)

// Movie represents a catalog list entry.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"` // YYYY-MM-DD, may be empty
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
}

// HasGenre reports whether the movie is tagged with the genre id.
func (m Movie) HasGenre(id int) bool {
	return slices.Contains(m.GenreIDs, id)
}

// Year returns the four digit release year or an empty string.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// MatchesTitle reports whether query is a case-insensitive substring of the title.
func (m Movie) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(m.Title), strings.ToLower(strings.TrimSpace(query)))
}

// Section is a titled list of movies, such as a home page row or an exported collection.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Movies []Movie `json:"movies"`
}

// Empty reports whether the section has nothing to show.
func (s Section) Empty() bool {
	return len(s.Movies) == 0
}

// Genre represents a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company represents a production company.
type Company struct {
	Name string `json:"name"`
}

// MovieDetail is a [Movie] with the fields only the detail endpoint returns.
type MovieDetail struct {
	Movie
	Runtime   int       `json:"runtime"` // minutes
	Genres    []Genre   `json:"genres"`
	Companies []Company `json:"production_companies"`
	Tagline   string    `json:"tagline,omitempty"`
}

// GenreNames returns the genre names in order.
func (d MovieDetail) GenreNames() []string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return names
}

// CompanyNames returns the production company names in order.
func (d MovieDetail) CompanyNames() []string {
	names := make([]string, len(d.Companies))
	for i, c := range d.Companies {
		names[i] = c.Name
	}
	return names
}

// ProfileTab enumerates the collections shown on the profile page.
type ProfileTab int

const (
	WatchlistTab ProfileTab = iota
	RatingsTab
	FavoritesTab
)

// ProfileTabs lists every tab in display order.
var ProfileTabs = []ProfileTab{WatchlistTab, RatingsTab, FavoritesTab}

func (t ProfileTab) String() string {
	switch t {
	case WatchlistTab:
		return "Watchlist"
	case RatingsTab:
		return "My Ratings"
	case FavoritesTab:
		return "Favorites"
	default:
		return ""
	}
}

// Profile is the account shown on the profile page.
type Profile struct {
	Name           string
	Email          string
	MemberSince    string
	TotalRatings   int
	TotalReviews   int
	FavoriteGenres []string
	Watchlist      []Movie
	Ratings        []Movie
	Favorites      []Movie
}

// Collection returns the movies listed under tab.
func (p Profile) Collection(tab ProfileTab) []Movie {
	switch tab {
	case WatchlistTab:
		return p.Watchlist
	case RatingsTab:
		return p.Ratings
	case FavoritesTab:
		return p.Favorites
	default:
		return nil
	}
}

// DefaultProfile returns the placeholder account; no profile data is stored anywhere.
func DefaultProfile() Profile {
	return Profile{
		Name:           "Movie Enthusiast",
		Email:          "user@bingeverse.com",
		MemberSince:    "2023",
		TotalRatings:   42,
		TotalReviews:   15,
		FavoriteGenres: []string{"Action", "Drama", "Sci-Fi"},
	}
}
