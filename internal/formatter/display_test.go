package formatter

import (
	"testing"

	"github.com/desertthunder/bingeverse/internal/models"
)

func TestDisplayHelpers(t *testing.T) {
	t.Run("BandFor", func(t *testing.T) {
		tc := []struct {
			rating float64
			want   RatingBand
		}{
			{9.1, HighRating},
			{8.0, HighRating},
			{7.99, MidRating},
			{6.0, MidRating},
			{5.9, LowRating},
			{0, LowRating},
		}
		for _, tt := range tc {
			if got := BandFor(tt.rating); got != tt.want {
				t.Errorf("BandFor(%v) = %s, want %s", tt.rating, got, tt.want)
			}
		}
	})

	t.Run("FormatRuntime", func(t *testing.T) {
		tc := map[int]string{148: "2h 28m", 120: "2h 0m", 45: "45m", 0: "N/A", -3: "N/A"}
		for in, want := range tc {
			if got := FormatRuntime(in); got != want {
				t.Errorf("FormatRuntime(%d) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("FormatRating", func(t *testing.T) {
		if got := FormatRating(8.456); got != "8.5" {
			t.Errorf("expected 8.5, got %s", got)
		}
	})

	t.Run("PosterURL", func(t *testing.T) {
		if got := PosterURL("", ""); got != PosterPlaceholder {
			t.Errorf("expected placeholder, got %s", got)
		}
		if got := PosterURL("", "/abc.jpg"); got != "https://image.tmdb.org/t/p/w500/abc.jpg" {
			t.Errorf("unexpected default poster url %s", got)
		}
		if got := PosterURL("https://img.example/w92/", "abc.jpg"); got != "https://img.example/w92/abc.jpg" {
			t.Errorf("unexpected custom poster url %s", got)
		}
	})

	t.Run("MoviePageURL", func(t *testing.T) {
		if got := MoviePageURL(550); got != "https://www.themoviedb.org/movie/550" {
			t.Errorf("unexpected url %s", got)
		}
	})

	t.Run("Label", func(t *testing.T) {
		if got := Label(models.Movie{Title: "Heat", ReleaseDate: "1995-12-15"}); got != "Heat (1995)" {
			t.Errorf("unexpected label %q", got)
		}
		if got := Label(models.Movie{Title: "Untitled"}); got != "Untitled" {
			t.Errorf("unexpected label %q", got)
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		if got := Truncate("Interstellar", 6); got != "Inter…" {
			t.Errorf("unexpected truncation %q", got)
		}
		if got := Truncate("Heat", 10); got != "Heat" {
			t.Errorf("expected short string untouched, got %q", got)
		}
	})

	t.Run("Slug", func(t *testing.T) {
		tc := map[string]string{
			"trending":           "trending",
			"genre:28":           "genre-28",
			"search:Dark Knight": "search-dark-knight",
			"  ::  ":             "section",
		}
		for in, want := range tc {
			if got := Slug(in); got != want {
				t.Errorf("Slug(%q) = %q, want %q", in, got, want)
			}
		}
	})
}
