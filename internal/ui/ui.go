package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/formatter"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/nav"
	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/desertthunder/bingeverse/internal/tasks"
)

// LayoutMode is how the genres page lays out its movies.
type LayoutMode int

const (
	GridLayout LayoutMode = iota
	ListLayout
)

const (
	homeRows   = 4 // trending, top rated, popular, by genre
	gridCols   = 4
	genrePanes = 2

	featuredCount  = 5
	featuredRotate = 8 * time.Second
)

// openBrowser is swapped in tests.
var openBrowser = shared.OpenBrowser

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	catalog *tasks.Catalog
	nav     *nav.Controller
	tracker *nav.Tracker
	logger  *log.Logger
	pending []nav.Transition
	width   int
	height  int

	searchBar textinput.Model

	home         *tasks.HomeResult
	homeLoading  bool
	featured     int
	rotateEvery  time.Duration
	row, col     int
	homeGenre    int
	genreRow     tasks.SectionResult
	genreRowBusy bool

	genres       []models.Genre
	genreList    list.Model
	genreMovies  list.Model
	genreResult  tasks.SectionResult
	genreLoading bool
	layout       LayoutMode
	pane         int
	cell         int
	jump         textinput.Model

	results       list.Model
	rawResults    []models.Movie
	searchOpts    tasks.SearchOpts
	searchLoading bool

	detail        *models.MovieDetail
	detailLoading bool

	profile    models.Profile
	profileTab int

	signIn *form
	signUp *form

	status    string
	statusErr bool
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
}

// NewModel creates a TUI model that drives controller and loads data through catalog.
func NewModel(ctx context.Context, catalog *tasks.Catalog, controller *nav.Controller, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if controller == nil {
		controller = nav.NewController(nil, logger)
	}

	bar := textinput.New()
	bar.Placeholder = "Search movies..."
	bar.Prompt = "🔍 "
	bar.CharLimit = 100
	bar.Width = 30

	jump := textinput.New()
	jump.Placeholder = "genre name"
	jump.Prompt = ": "
	jump.CharLimit = 40

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.accent))

	m := &Model{
		ctx:         ctx,
		catalog:     catalog,
		nav:         controller,
		tracker:     nav.NewTracker(),
		logger:      logger.With("component", "ui"),
		searchBar:   bar,
		jump:        jump,
		rotateEvery: featuredRotate,
		genreList:   newList("Genres", nil, true),
		genreMovies: newList("", nil, false),
		results:     newList("", nil, false),
		profile:     models.DefaultProfile(),
		signIn:      newSignInForm(),
		signUp:      newSignUpForm(),
		spinner:     sp,
		help:        help.New(),
		keys:        newKeyMap(),
	}
	controller.Subscribe(func(_ nav.State, tr nav.Transition) {
		m.pending = append(m.pending, tr)
	})
	return m
}

// Init starts the spinner, loads the home page and schedules the featured banner rotation.
func (m *Model) Init() tea.Cmd {
	m.homeLoading = true
	return tea.Batch(m.spinner.Tick, m.fetchHome(), m.rotateFeatured())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKeys(msg)
		return m, tea.Batch(cmd, m.drain())

	case Msg:
		return m, m.handleMsg(msg)
	}
	return m, nil
}

// drain reacts to every transition committed since the last call.
func (m *Model) drain() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	pending := m.pending
	m.pending = nil

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, tr := range pending {
		cmds = append(cmds, m.enter(tr))
	}
	return tea.Batch(cmds...)
}

// enter prepares the destination page of tr and returns the fetch it needs.
func (m *Model) enter(tr nav.Transition) tea.Cmd {
	m.logger.Debug("entering page", "from", tr.From, "to", tr.To, "effect", tr.Effect)
	m.status, m.statusErr = "", false
	if tr.Redirected {
		m.status = "Sign in to view your profile"
	}

	if tr.From != tr.To {
		switch tr.From {
		case nav.Detail:
			m.tracker.Invalidate(nav.DetailSlot)
			m.detail, m.detailLoading = nil, false
		case nav.Search:
			m.tracker.Invalidate(nav.SearchSlot)
			m.searchLoading = false
		case nav.Genres:
			m.tracker.Invalidate(nav.GenresSlot)
			m.genreLoading = false
			m.jump.Blur()
		}
	}

	switch tr.To {
	case nav.Home:
		if tr.Effect == nav.ScrollToTrending {
			m.row, m.col = 0, 0
		}
		if m.home == nil && !m.homeLoading {
			m.homeLoading = true
			return m.fetchHome()
		}
	case nav.Detail:
		st := m.nav.State()
		if st.Selected == nil {
			return nil
		}
		m.detail, m.detailLoading = nil, true
		return m.fetchDetail(m.tracker.Begin(nav.DetailSlot), st.Selected.ID)
	case nav.Search:
		m.searchOpts = tasks.SearchOpts{}
		m.rawResults = nil
		m.results.SetItems(nil)
		m.searchLoading = true
		return m.fetchSearch(m.tracker.Begin(nav.SearchSlot), m.nav.State().Query)
	case nav.Genres:
		m.pane, m.cell = 0, 0
		if len(m.genres) == 0 {
			m.genreLoading = true
			return m.fetchGenres()
		}
		return m.selectGenre(0)
	case nav.Profile:
		m.profileTab = 0
		if email := m.nav.Session().Email(); email != "" {
			m.profile.Email = email
		}
	case nav.SignIn:
		m.signIn.reset()
	case nav.SignUp:
		m.signUp.reset()
	}
	return nil
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgHomeLoaded:
		res := msg.data.(*tasks.HomeResult)
		m.home, m.homeLoading = res, false
		m.featured = 0
		if res.GenresErr != nil {
			m.logger.Warn("genre list unavailable", "error", res.GenresErr)
		}
		if len(res.Genres) > 0 {
			return m.setGenres(res.Genres)
		}

	case MsgGenresLoaded:
		p := msg.data.(genresPayload)
		if p.err != nil {
			m.logger.Warn("genre list unavailable", "error", p.err)
		}
		m.genreLoading = false
		cmd := m.setGenres(p.genres)
		if m.nav.Page() == nav.Genres && len(m.genres) > 0 {
			return tea.Batch(cmd, m.selectGenre(0))
		}
		return cmd

	case MsgSectionLoaded:
		p := msg.data.(sectionPayload)
		if !m.tracker.Current(p.ticket) {
			m.logger.Debug("discarding stale section", "key", p.result.Section.Key, "slot", p.ticket.Slot)
			return nil
		}
		if p.result.Degraded() {
			m.logger.Warn("section degraded", "key", p.result.Section.Key, "error", p.result.Err)
		}
		switch p.ticket.Slot {
		case nav.HomeGenreSlot:
			m.genreRow, m.genreRowBusy = p.result, false
		case nav.GenresSlot:
			m.genreResult, m.genreLoading = p.result, false
			m.cell = 0
			return m.genreMovies.SetItems(movieItems(p.result.Section.Movies))
		case nav.SearchSlot:
			m.rawResults, m.searchLoading = p.result.Section.Movies, false
			return m.refineResults()
		}

	case MsgFeaturedTick:
		if n := len(m.featuredMovies()); n > 0 {
			m.featured = (m.featured + 1) % n
		}
		return m.rotateFeatured()

	case MsgDetailLoaded:
		p := msg.data.(detailPayload)
		if !m.tracker.Current(p.ticket) {
			return nil
		}
		m.detailLoading = false
		if p.err != nil {
			m.logger.Warn("detail unavailable", "error", p.err)
			m.setStatus("Could not load movie details", true)
			return nil
		}
		m.detail = p.detail

	case MsgBrowserOpened:
		if err, _ := msg.data.(error); err != nil {
			m.setStatus("Could not open browser: "+err.Error(), true)
		}
	}
	return nil
}

func (m *Model) setGenres(genres []models.Genre) tea.Cmd {
	m.genres = genres
	if m.homeGenre >= len(genres) {
		m.homeGenre = 0
	}
	cmd := m.genreList.SetItems(genreItems(genres))
	if len(genres) > 0 && m.genreRow.Section.Key == "" && !m.genreRowBusy {
		return tea.Batch(cmd, m.selectHomeGenre(m.homeGenre))
	}
	return cmd
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	bodyH := max(h-8, 4)
	m.genreList.SetSize(max(w/4, 18), bodyH)
	m.genreMovies.SetSize(max(w-w/4-6, 20), bodyH)
	m.results.SetSize(max(w-4, 20), bodyH-2)
}

// loading reports whether the current page is waiting on a fetch.
func (m *Model) loading() bool {
	switch m.nav.Page() {
	case nav.Home:
		return m.homeLoading
	case nav.Detail:
		return m.detailLoading
	case nav.Search:
		return m.searchLoading
	case nav.Genres:
		return m.genreLoading
	default:
		return false
	}
}

// handleKeys routes a key press to the focused input, the global shortcuts, then the page.
func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.searchBar.Focused() {
		return m.handleSearchBarKeys(msg)
	}

	page := m.nav.Page()
	switch page {
	case nav.SignIn, nav.SignUp:
		return m.handleFormKeys(msg)
	}
	if m.jump.Focused() {
		return m.handleJumpKeys(msg)
	}
	if cmd, ok := m.handleGlobalKeys(msg); ok {
		return cmd
	}

	switch page {
	case nav.Home:
		return m.handleHomeKeys(msg)
	case nav.Detail:
		return m.handleDetailKeys(msg)
	case nav.Search:
		return m.handleSearchKeys(msg)
	case nav.Genres:
		return m.handleGenresKeys(msg)
	case nav.Profile:
		return m.handleProfileKeys(msg)
	}
	return nil
}

// handleGlobalKeys applies the nav bar shortcuts. The detail page has no nav bar and only
// understands back, open, and quit.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	page := m.nav.Page()
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.back):
		if page != nav.Home {
			m.nav.Back()
		}
		return nil, true
	}
	if !page.ShowsChrome() {
		return nil, false
	}

	signedIn := m.nav.Session().SignedIn()
	switch {
	case key.Matches(msg, m.keys.search):
		m.searchBar.SetValue("")
		return m.searchBar.Focus(), true
	case key.Matches(msg, m.keys.home):
		m.nav.Navigate(nav.TargetHome)
	case key.Matches(msg, m.keys.genres):
		m.nav.Navigate(nav.TargetGenres)
	case key.Matches(msg, m.keys.trending):
		m.nav.Navigate(nav.TargetTrending)
	case key.Matches(msg, m.keys.profile):
		m.nav.Navigate(nav.TargetProfile)
	case key.Matches(msg, m.keys.signIn) && !signedIn:
		m.nav.Navigate(nav.TargetSignIn)
	case key.Matches(msg, m.keys.signUp) && !signedIn:
		m.nav.Navigate(nav.TargetSignUp)
	case key.Matches(msg, m.keys.signOut) && signedIn:
		m.nav.SignOut()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleSearchBarKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searchBar.Blur()
		return nil
	case "enter":
		if _, err := m.nav.Search(m.searchBar.Value()); err != nil {
			if errors.Is(err, shared.ErrEmptyQuery) {
				return nil
			}
			m.setStatus(err.Error(), true)
			return nil
		}
		m.searchBar.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	return cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	f := m.signIn
	if m.nav.Page() == nav.SignUp {
		f = m.signUp
	}

	if key.Matches(msg, m.keys.switchTo) {
		if m.nav.Page() == nav.SignIn {
			m.nav.Navigate(nav.TargetSignUp)
		} else {
			m.nav.Navigate(nav.TargetSignIn)
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		m.nav.Back()
		return nil
	case "tab", "down":
		f.move(1)
		return nil
	case "shift+tab", "up":
		f.move(-1)
		return nil
	case "enter":
		if !f.last() {
			f.move(1)
			return nil
		}
		return m.submit(f)
	}
	return f.update(msg)
}

func (m *Model) submit(f *form) tea.Cmd {
	var err error
	if f == m.signUp {
		_, err = m.nav.SignUp(m.ctx, f.registration())
	} else {
		_, err = m.nav.SignIn(m.ctx, f.credentials())
	}
	if err != nil {
		f.err = formError(err)
		return nil
	}
	f.reset()
	return nil
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.up):
		m.row = max(m.row-1, 0)
		m.col = 0
	case key.Matches(msg, m.keys.down):
		m.row = min(m.row+1, homeRows-1)
		m.col = 0
	case key.Matches(msg, m.keys.left):
		m.col = max(m.col-1, 0)
	case key.Matches(msg, m.keys.right):
		if n := len(m.homeRow(m.row).Section.Movies); m.col < n-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.prevRow):
		if len(m.genres) > 0 {
			return m.selectHomeGenre((m.homeGenre - 1 + len(m.genres)) % len(m.genres))
		}
	case key.Matches(msg, m.keys.nextRow):
		if len(m.genres) > 0 {
			return m.selectHomeGenre((m.homeGenre + 1) % len(m.genres))
		}
	case key.Matches(msg, m.keys.enter):
		movies := m.homeRow(m.row).Section.Movies
		if m.col < len(movies) {
			m.nav.Select(movies[m.col])
		}
	}
	return nil
}

// homeRow returns row i of the home page; rows without data are empty sections.
func (m *Model) homeRow(i int) tasks.SectionResult {
	if i == homeRows-1 {
		return m.genreRow
	}
	if m.home == nil {
		return tasks.SectionResult{}
	}
	return m.home.Sections()[i]
}

// featuredMovies is the head of the trending section shown in the home banner.
func (m *Model) featuredMovies() []models.Movie {
	if m.home == nil {
		return nil
	}
	movies := m.home.Trending.Section.Movies
	return movies[:min(featuredCount, len(movies))]
}

// rotateFeatured schedules the next banner advance. A zero interval disables rotation.
func (m *Model) rotateFeatured() tea.Cmd {
	if m.rotateEvery <= 0 {
		return nil
	}
	return tea.Tick(m.rotateEvery, func(time.Time) tea.Msg {
		return featuredTickMsg()
	})
}

func (m *Model) selectHomeGenre(i int) tea.Cmd {
	m.homeGenre = i
	m.genreRowBusy = true
	if m.row == homeRows-1 {
		m.col = 0
	}
	return m.fetchSection(m.tracker.Begin(nav.HomeGenreSlot), tasks.GenreKey(m.genres[i].ID))
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.open) {
		st := m.nav.State()
		if st.Selected != nil {
			return m.openInBrowser(formatter.MoviePageURL(st.Selected.ID))
		}
	}
	return nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.sort):
		m.searchOpts.Sort = m.searchOpts.Sort.Next()
		return m.refineResults()
	case key.Matches(msg, m.keys.filter):
		m.searchOpts.GenreID = m.nextFilter()
		return m.refineResults()
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.results.SelectedItem().(movieItem); ok {
			m.nav.Select(it.movie)
		}
		return nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

// nextFilter cycles the genre filter: all genres, then each genre in order, then all again.
func (m *Model) nextFilter() int {
	if len(m.genres) == 0 {
		return 0
	}
	if m.searchOpts.GenreID == 0 {
		return m.genres[0].ID
	}
	for i, g := range m.genres {
		if g.ID == m.searchOpts.GenreID && i+1 < len(m.genres) {
			return m.genres[i+1].ID
		}
	}
	return 0
}

func (m *Model) refineResults() tea.Cmd {
	return m.results.SetItems(movieItems(tasks.Refine(m.rawResults, m.searchOpts)))
}

func (m *Model) handleGenresKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.layout):
		if m.layout == GridLayout {
			m.layout = ListLayout
		} else {
			m.layout = GridLayout
		}
		return nil
	case key.Matches(msg, m.keys.jump):
		m.jump.SetValue("")
		return m.jump.Focus()
	case key.Matches(msg, m.keys.tab):
		m.pane = (m.pane + 1) % genrePanes
		return nil
	}

	if m.pane == 0 {
		if key.Matches(msg, m.keys.enter) || key.Matches(msg, m.keys.right) {
			m.pane = 1
			return nil
		}
		before := m.genreList.Index()
		var cmd tea.Cmd
		m.genreList, cmd = m.genreList.Update(msg)
		if after := m.genreList.Index(); after != before {
			return tea.Batch(cmd, m.selectGenre(after))
		}
		return cmd
	}

	if key.Matches(msg, m.keys.enter) {
		if mv, ok := m.focusedGenreMovie(); ok {
			m.nav.Select(mv)
		}
		return nil
	}
	if m.layout == ListLayout {
		if key.Matches(msg, m.keys.left) {
			m.pane = 0
			return nil
		}
		var cmd tea.Cmd
		m.genreMovies, cmd = m.genreMovies.Update(msg)
		return cmd
	}

	n := len(m.genreResult.Section.Movies)
	switch {
	case key.Matches(msg, m.keys.left):
		if m.cell%gridCols == 0 {
			m.pane = 0
		} else {
			m.cell--
		}
	case key.Matches(msg, m.keys.right):
		if m.cell+1 < n {
			m.cell++
		}
	case key.Matches(msg, m.keys.up):
		if m.cell-gridCols >= 0 {
			m.cell -= gridCols
		}
	case key.Matches(msg, m.keys.down):
		if m.cell+gridCols < n {
			m.cell += gridCols
		}
	}
	return nil
}

func (m *Model) focusedGenreMovie() (models.Movie, bool) {
	if m.layout == ListLayout {
		it, ok := m.genreMovies.SelectedItem().(movieItem)
		return it.movie, ok
	}
	movies := m.genreResult.Section.Movies
	if m.cell < len(movies) {
		return movies[m.cell], true
	}
	return models.Movie{}, false
}

// selectGenre highlights genre i and fetches its movies. Responses for earlier selections are
// discarded on arrival.
func (m *Model) selectGenre(i int) tea.Cmd {
	if i < 0 || i >= len(m.genres) {
		return nil
	}
	m.genreList.Select(i)
	m.genreLoading = true
	m.cell = 0
	return m.fetchSection(m.tracker.Begin(nav.GenresSlot), tasks.GenreKey(m.genres[i].ID))
}

func (m *Model) handleJumpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.jump.Blur()
		return nil
	case "enter":
		m.jump.Blur()
		g, err := tasks.ResolveGenre(m.genres, m.jump.Value())
		if err != nil {
			m.setStatus("No genre matches "+m.jump.Value(), true)
			return nil
		}
		for i := range m.genres {
			if m.genres[i].ID == g.ID {
				m.setStatus("", false)
				return m.selectGenre(i)
			}
		}
		return nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return cmd
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) tea.Cmd {
	n := len(models.ProfileTabs)
	switch {
	case key.Matches(msg, m.keys.left):
		m.profileTab = (m.profileTab - 1 + n) % n
	case key.Matches(msg, m.keys.right), key.Matches(msg, m.keys.tab):
		m.profileTab = (m.profileTab + 1) % n
	}
	return nil
}

func (m *Model) fetchHome() tea.Cmd {
	return func() tea.Msg {
		return homeLoadedMsg(m.catalog.LoadHome(m.ctx))
	}
}

func (m *Model) fetchGenres() tea.Cmd {
	return func() tea.Msg {
		genres, err := m.catalog.LoadGenres(m.ctx)
		return genresLoadedMsg(genres, err)
	}
}

func (m *Model) fetchSection(ticket nav.Ticket, key string) tea.Cmd {
	return func() tea.Msg {
		return sectionLoadedMsg(ticket, m.catalog.LoadSection(m.ctx, key))
	}
}

func (m *Model) fetchSearch(ticket nav.Ticket, query string) tea.Cmd {
	return m.fetchSection(ticket, tasks.SearchKey(query))
}

func (m *Model) fetchDetail(ticket nav.Ticket, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.LoadDetail(m.ctx, id)
		return detailLoadedMsg(ticket, detail, err)
	}
}

func (m *Model) openInBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(openBrowser(url))
	}
}
