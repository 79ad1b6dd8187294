package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/bingeverse/internal/formatter"
	"github.com/desertthunder/bingeverse/internal/models"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = genreItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return formatter.Label(i.movie) }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("★ %s", formatter.FormatRating(i.movie.VoteAverage))
	if i.movie.Overview != "" {
		desc = fmt.Sprintf("%s • %s", desc, formatter.Truncate(i.movie.Overview, 80))
	}
	return desc
}

// genreItem wraps [models.Genre] to implement [list.Item].
type genreItem struct {
	genre models.Genre
}

func (i genreItem) FilterValue() string { return i.genre.Name }
func (i genreItem) Title() string       { return i.genre.Name }
func (i genreItem) Description() string { return "" }

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}

func genreItems(genres []models.Genre) []list.Item {
	items := make([]list.Item, len(genres))
	for i, g := range genres {
		items[i] = genreItem{genre: g}
	}
	return items
}

// newList builds a list with the built-in filter and help turned off; the model draws its own help
// and "/" belongs to the search bar.
func newList(title string, items []list.Item, compact bool) list.Model {
	d := list.NewDefaultDelegate()
	if compact {
		d.ShowDescription = false
		d.SetSpacing(0)
	}
	l := list.New(items, d, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
