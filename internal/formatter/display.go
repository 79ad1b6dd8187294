package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/desertthunder/bingeverse/internal/models"
)

const (
	// PosterBaseURL is the TMDb image path prefix for w500 posters.
	PosterBaseURL = "https://image.tmdb.org/t/p/w500"
	// PosterPlaceholder is shown for movies without a poster.
	PosterPlaceholder = "https://images.pexels.com/photos/274937/pexels-photo-274937.jpeg"

	moviePageURL = "https://www.themoviedb.org/movie/%d"
)

// RatingBand groups a vote average for coloring.
type RatingBand int

const (
	LowRating RatingBand = iota
	MidRating
	HighRating
)

func (b RatingBand) String() string {
	switch b {
	case HighRating:
		return "high"
	case MidRating:
		return "mid"
	default:
		return "low"
	}
}

// BandFor places a vote average in its band: 8 and up is high, 6 and up is mid.
func BandFor(rating float64) RatingBand {
	switch {
	case rating >= 8:
		return HighRating
	case rating >= 6:
		return MidRating
	default:
		return LowRating
	}
}

// FormatRating renders a vote average with one decimal.
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// FormatRuntime renders minutes as "2h 28m". Zero or negative runtimes render as "N/A".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// PosterURL joins base and path, falling back to [PosterPlaceholder] when path is empty.
func PosterURL(base, path string) string {
	if path == "" {
		return PosterPlaceholder
	}
	if base == "" {
		base = PosterBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// MoviePageURL returns the public TMDb page for a movie.
func MoviePageURL(id int) string {
	return fmt.Sprintf(moviePageURL, id)
}

// Label renders "Title (Year)", or just the title when the release date is unknown.
func Label(m models.Movie) string {
	if y := m.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", m.Title, y)
	}
	return m.Title
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Slug turns a section key such as "search:dark knight" into a file-safe name.
func Slug(key string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "section"
	}
	return out
}
