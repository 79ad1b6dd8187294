package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/bingeverse/internal/formatter"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/nav"
	"github.com/desertthunder/bingeverse/internal/tasks"
)

const noMovies = "No movies found"

var profileEmpty = map[models.ProfileTab]string{
	models.WatchlistTab: "Your watchlist is empty",
	models.RatingsTab:   "No ratings yet",
	models.FavoritesTab: "No favorites yet",
}

// View renders the UI based on the current page.
func (m *Model) View() string {
	page := m.nav.Page()

	var body string
	switch page {
	case nav.Home:
		body = m.renderHome()
	case nav.Detail:
		body = m.renderDetail()
	case nav.Search:
		body = m.renderSearch()
	case nav.Genres:
		body = m.renderGenres()
	case nav.Profile:
		body = m.renderProfile()
	case nav.SignIn:
		body = m.renderForm(m.signIn, "No account? ctrl+t to sign up")
	case nav.SignUp:
		body = m.renderForm(m.signUp, "Have an account? ctrl+t to sign in")
	}

	parts := make([]string, 0, 4)
	if page.ShowsChrome() {
		parts = append(parts, m.renderNavBar())
	}
	parts = append(parts, body)
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, styles.err.Render(m.status))
		} else {
			parts = append(parts, styles.warn.Render(m.status))
		}
	}
	parts = append(parts, m.renderHelp(page))
	return strings.Join(parts, "\n\n")
}

// renderNavBar draws the brand, page links, search input and session controls. Profile is
// listed only while signed in.
func (m *Model) renderNavBar() string {
	page := m.nav.Page()
	link := func(label string, active bool) string {
		if active {
			return styles.active.Render(label)
		}
		return styles.muted.Render(label)
	}

	items := []string{
		styles.brand.Render("BINGEVERSE"),
		link("Home", page == nav.Home),
		link("Genres", page == nav.Genres),
		link("Trending", false),
	}
	if m.nav.Session().SignedIn() {
		items = append(items, link("Profile", page == nav.Profile), link("Sign Out", false))
	} else {
		items = append(items, link("Sign In", page == nav.SignIn), link("Sign Up", page == nav.SignUp))
	}
	items = append(items, m.searchBar.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  "))
}

func (m *Model) renderHelp(page nav.Page) string {
	keys := []key.Binding{m.keys.back, m.keys.quit}
	switch page {
	case nav.Home:
		keys = []key.Binding{m.keys.up, m.keys.left, m.keys.enter, m.keys.prevRow, m.keys.nextRow, m.keys.search, m.keys.genres, m.keys.trending, m.keys.quit}
	case nav.Detail:
		keys = []key.Binding{m.keys.open, m.keys.back, m.keys.quit}
	case nav.Search:
		keys = []key.Binding{m.keys.enter, m.keys.sort, m.keys.filter, m.keys.search, m.keys.back, m.keys.quit}
	case nav.Genres:
		keys = []key.Binding{m.keys.tab, m.keys.enter, m.keys.layout, m.keys.jump, m.keys.back, m.keys.quit}
	case nav.Profile:
		keys = []key.Binding{m.keys.left, m.keys.right, m.keys.signOut, m.keys.back, m.keys.quit}
	case nav.SignIn, nav.SignUp:
		keys = []key.Binding{m.keys.tab, m.keys.enter, m.keys.switchTo, m.keys.back}
	}
	if page.ShowsChrome() && page != nav.SignIn && page != nav.SignUp {
		if m.nav.Session().SignedIn() {
			keys = append(keys, m.keys.profile, m.keys.signOut)
		} else {
			keys = append(keys, m.keys.signIn, m.keys.signUp)
		}
	}
	return m.help.ShortHelpView(keys)
}

func (m *Model) empty() string {
	return styles.muted.Render(noMovies)
}

func (m *Model) spin(label string) string {
	return fmt.Sprintf("%s %s", m.spinner.View(), styles.muted.Render(label))
}

func (m *Model) renderHome() string {
	if m.homeLoading && m.home == nil {
		return m.spin("Loading movies...")
	}

	rows := make([]string, 0, homeRows+1)
	rows = append(rows, m.renderFeatured())
	for i := range homeRows {
		title := "By Genre"
		switch {
		case i < len(tasks.HomeKeys):
			title = tasks.SectionTitle(tasks.HomeKeys[i])
		case len(m.genres) > 0:
			title = fmt.Sprintf("By Genre ‹ %s ›", m.genres[m.homeGenre].Name)
		}
		if i == m.row {
			title = styles.active.Render(title)
		} else {
			title = styles.title.UnsetMarginBottom().Render(title)
		}

		var strip string
		if i == homeRows-1 && m.genreRowBusy {
			strip = m.spin("Loading...")
		} else {
			strip = m.renderStrip(m.homeRow(i).Section.Movies, i == m.row)
		}
		rows = append(rows, title+"\n"+strip)
	}
	return strings.Join(rows, "\n\n")
}

// renderFeatured draws the rotating banner over the first trending movies.
func (m *Model) renderFeatured() string {
	movies := m.featuredMovies()
	if len(movies) == 0 {
		return styles.panel.Render(styles.muted.Render("Loading featured movies..."))
	}
	mv := movies[m.featured%len(movies)]

	dots := make([]string, len(movies))
	for i := range movies {
		if i == m.featured%len(movies) {
			dots[i] = styles.accent.Render("●")
		} else {
			dots[i] = styles.muted.Render("○")
		}
	}

	var b strings.Builder
	b.WriteString(styles.accent.Render("FEATURED") + "\n")
	b.WriteString(styles.title.UnsetMarginBottom().Render(formatter.Label(mv)))
	b.WriteString("  " + styles.rating(mv.VoteAverage) + "\n")
	if mv.Overview != "" {
		b.WriteString(formatter.Truncate(mv.Overview, max(m.width-8, 40)) + "\n")
	}
	b.WriteString(strings.Join(dots, " "))
	return styles.panel.Render(b.String())
}

// renderStrip draws one home row as a horizontal run of cards, scrolled so the focused card is visible.
func (m *Model) renderStrip(movies []models.Movie, focused bool) string {
	if len(movies) == 0 {
		return m.empty()
	}

	visible := max((m.width-4)/24, 3)
	start := 0
	if focused && m.col >= visible {
		start = m.col - visible + 1
	}
	end := min(start+visible, len(movies))

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.renderCard(movies[i], focused && i == m.col, 20))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderCard(mv models.Movie, selected bool, width int) string {
	title := formatter.Truncate(mv.Title, width)
	if selected {
		title = styles.selected.Render(title)
	}
	year := mv.Year()
	if year == "" {
		year = "TBA"
	}
	meta := fmt.Sprintf("%s %s", styles.muted.Render(year), styles.rating(mv.VoteAverage))
	return lipgloss.NewStyle().Width(width+2).PaddingRight(2).Render(title + "\n" + meta)
}

func (m *Model) renderDetail() string {
	st := m.nav.State()
	if m.detailLoading {
		return m.spin("Loading movie...")
	}

	d := m.detail
	if d == nil {
		if st.Selected == nil {
			return m.empty()
		}
		d = &models.MovieDetail{Movie: *st.Selected}
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(d.Title))
	b.WriteString("\n")
	if d.Tagline != "" {
		b.WriteString(styles.help.Render(d.Tagline) + "\n\n")
	}

	year := d.Year()
	if year == "" {
		year = "TBA"
	}
	fmt.Fprintf(&b, "%s  •  %s  •  %s\n\n", year, formatter.FormatRuntime(d.Runtime), styles.rating(d.VoteAverage))

	if names := d.GenreNames(); len(names) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.accent.Render("Genres:"), strings.Join(names, ", "))
	}
	if names := d.CompanyNames(); len(names) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.accent.Render("Production:"), strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "%s %s\n", styles.accent.Render("Poster:"), formatter.PosterURL(formatter.PosterBaseURL, d.PosterPath))

	overview := d.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString("\n" + styles.title.UnsetMarginBottom().Render("Overview") + "\n")
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 40)).Render(overview))
	return b.String()
}

func (m *Model) renderSearch() string {
	st := m.nav.State()
	header := styles.title.Render(fmt.Sprintf("Search results for %q", st.Query))

	filter := "All genres"
	if m.searchOpts.GenreID != 0 {
		filter = tasks.GenreName(m.genres, m.searchOpts.GenreID)
	}
	controls := fmt.Sprintf("%s %s   %s %s",
		styles.muted.Render("Sort:"), styles.accent.Render(m.searchOpts.Sort.String()),
		styles.muted.Render("Genre:"), styles.accent.Render(filter))

	if m.searchLoading {
		return header + "\n" + controls + "\n\n" + m.spin("Searching...")
	}
	if len(m.results.Items()) == 0 {
		hint := styles.help.Render("Try adjusting your search or removing filters")
		return header + "\n" + controls + "\n\n" + m.empty() + "\n" + hint
	}

	count := styles.muted.Render(fmt.Sprintf("%d movies", len(m.results.Items())))
	return header + "\n" + controls + "  " + count + "\n\n" + m.results.View()
}

func (m *Model) renderGenres() string {
	if len(m.genres) == 0 {
		if m.genreLoading {
			return m.spin("Loading genres...")
		}
		return styles.muted.Render("No genres available")
	}

	sidebar := m.genreList.View()
	if m.pane == 0 {
		sidebar = styles.panel.BorderForeground(styles.accent.GetForeground()).Render(sidebar)
	} else {
		sidebar = styles.panel.Render(sidebar)
	}

	var name string
	if i := m.genreList.Index(); i >= 0 && i < len(m.genres) {
		name = m.genres[i].Name
	}
	mode := "grid"
	if m.layout == ListLayout {
		mode = "list"
	}
	header := styles.title.Render(name+" Movies") + "  " + styles.muted.Render("["+mode+"]")
	if m.jump.Focused() {
		header += "\n" + m.jump.View()
	}

	var content string
	switch {
	case m.genreLoading:
		content = m.spin("Loading...")
	case m.genreResult.Section.Empty():
		content = styles.muted.Render(noMovies + " for this genre")
	case m.layout == ListLayout:
		content = m.genreMovies.View()
	default:
		content = m.renderGrid(m.genreResult.Section.Movies)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", header+"\n"+content)
}

func (m *Model) renderGrid(movies []models.Movie) string {
	rows := make([]string, 0, len(movies)/gridCols+1)
	for start := 0; start < len(movies); start += gridCols {
		end := min(start+gridCols, len(movies))
		cards := make([]string, 0, gridCols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(movies[i], m.pane == 1 && i == m.cell, 18))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n\n")
}

func (m *Model) renderProfile() string {
	p := m.profile
	var b strings.Builder
	b.WriteString(styles.title.Render(p.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n%s %s\n", p.Email, styles.muted.Render("Member since"), p.MemberSince)
	fmt.Fprintf(&b, "%s %d   %s %d\n", styles.muted.Render("Ratings"), p.TotalRatings, styles.muted.Render("Reviews"), p.TotalReviews)
	fmt.Fprintf(&b, "%s %s\n\n", styles.muted.Render("Favorite genres:"), strings.Join(p.FavoriteGenres, ", "))

	tabs := make([]string, len(models.ProfileTabs))
	for i, tab := range models.ProfileTabs {
		label := fmt.Sprintf(" %s (%d) ", tab, len(p.Collection(tab)))
		if i == m.profileTab {
			tabs[i] = styles.selected.Render(label)
		} else {
			tabs[i] = styles.muted.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	tab := models.ProfileTabs[m.profileTab]
	movies := p.Collection(tab)
	if len(movies) == 0 {
		b.WriteString(styles.muted.Render(profileEmpty[tab]))
		return b.String()
	}
	for i, mv := range movies {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, formatter.Label(mv), styles.rating(mv.VoteAverage))
	}
	return b.String()
}

func (m *Model) renderForm(f *form, hint string) string {
	return f.view() + "\n" + styles.help.Render(hint)
}
