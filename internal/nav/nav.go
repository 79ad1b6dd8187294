package nav

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/session"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// Page identifies which view is active.
type Page int

const (
	Home Page = iota
	Detail
	Search
	Genres
	Profile
	SignIn
	SignUp
)

var pageNames = [...]string{"home", "detail", "search", "genres", "profile", "sign-in", "sign-up"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pageNames[p]
}

// RequiresSession reports whether entering p needs a signed-in session.
func (p Page) RequiresSession() bool {
	return p == Profile
}

// ShowsChrome reports whether the nav bar and footer are drawn around p.
func (p Page) ShowsChrome() bool {
	return p != Detail
}

// Target names a nav bar or footer destination.
type Target string

const (
	TargetHome     Target = "home"
	TargetGenres   Target = "genres"
	TargetTrending Target = "trending"
	TargetProfile  Target = "profile"
	TargetUser     Target = "user"
	TargetSignIn   Target = "sign-in"
	TargetSignUp   Target = "sign-up"
)

// resolve maps a target to its page. Unknown targets resolve to Home.
func (t Target) resolve() (Page, Effect) {
	switch Target(strings.ToLower(strings.TrimSpace(string(t)))) {
	case TargetGenres:
		return Genres, NoEffect
	case TargetTrending:
		return Home, ScrollToTrending
	case TargetProfile, TargetUser:
		return Profile, NoEffect
	case TargetSignIn:
		return SignIn, NoEffect
	case TargetSignUp:
		return SignUp, NoEffect
	default:
		return Home, NoEffect
	}
}

// Effect is a presentation side effect requested alongside a transition.
type Effect int

const (
	NoEffect Effect = iota
	// ScrollToTrending asks the home view to bring its trending section into view.
	ScrollToTrending
)

func (e Effect) String() string {
	switch e {
	case ScrollToTrending:
		return "scroll-to-trending"
	default:
		return "none"
	}
}

// State is a snapshot of the navigation state.
//
// Selected is non-nil only on [Detail]. Query is non-empty only on [Search].
type State struct {
	Page     Page
	Selected *models.Movie
	Query    string
	SignedIn bool
}

// Transition records one committed intent.
type Transition struct {
	Intent     string
	From       Page
	To         Page
	Effect     Effect
	Redirected bool // a guard replaced the requested page
}

// Listener observes committed transitions.
type Listener func(State, Transition)

// Controller is the single owner of page state. Every intent commits synchronously, so no
// view ever renders a page the guard would have refused.
//
// Controller is not safe for concurrent use; drive it from one goroutine (the bubbletea update loop).
type Controller struct {
	page      Page
	selected  *models.Movie
	query     string
	session   *session.Session
	logger    *log.Logger
	listeners []Listener
}

// NewController starts on [Home] with nothing selected.
func NewController(sess *session.Session, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if sess == nil {
		sess = session.New(session.Permissive{}, logger)
	}
	return &Controller{page: Home, session: sess, logger: logger}
}

// Session returns the session the guard consults.
func (c *Controller) Session() *session.Session {
	return c.session
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	st := State{Page: c.page, Query: c.query, SignedIn: c.session.SignedIn()}
	if c.selected != nil {
		m := *c.selected
		st.Selected = &m
	}
	return st
}

// Page returns the current page.
func (c *Controller) Page() Page {
	return c.page
}

// Subscribe registers l to be called after every commit.
func (c *Controller) Subscribe(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// Navigate moves to the page named by target.
func (c *Controller) Navigate(target Target) Transition {
	page, effect := target.resolve()
	return c.commit("navigate:"+string(target), page, effect, nil, "")
}

// Select opens the detail page for movie.
func (c *Controller) Select(movie models.Movie) Transition {
	return c.commit("select", Detail, NoEffect, &movie, "")
}

// Search moves to the results page for query. A blank query is rejected and leaves state untouched.
func (c *Controller) Search(query string) (Transition, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Transition{Intent: "search", From: c.page, To: c.page}, shared.ErrEmptyQuery
	}
	return c.commit("search", Search, NoEffect, nil, q), nil
}

// Back returns to [Home], clearing the selection and the query.
func (c *Controller) Back() Transition {
	return c.commit("back", Home, NoEffect, nil, "")
}

// SignIn authenticates creds and, on success, moves to [Home].
// On failure the page does not change and the error is returned for display.
func (c *Controller) SignIn(ctx context.Context, creds session.Credentials) (Transition, error) {
	if err := c.session.SignIn(ctx, creds); err != nil {
		return Transition{Intent: "sign-in", From: c.page, To: c.page}, err
	}
	return c.commit("sign-in", Home, NoEffect, nil, ""), nil
}

// SignUp registers reg and, on success, moves to [Home].
func (c *Controller) SignUp(ctx context.Context, reg session.Registration) (Transition, error) {
	if err := c.session.SignUp(ctx, reg); err != nil {
		return Transition{Intent: "sign-up", From: c.page, To: c.page}, err
	}
	return c.commit("sign-up", Home, NoEffect, nil, ""), nil
}

// SignOut clears the session and returns to [Home].
func (c *Controller) SignOut() Transition {
	c.session.SignOut()
	return c.commit("sign-out", Home, NoEffect, nil, "")
}

// guard applies the session rule before anything is committed.
func (c *Controller) guard(to Page) (Page, bool) {
	if to.RequiresSession() && !c.session.SignedIn() {
		return SignIn, true
	}
	return to, false
}

func (c *Controller) commit(intent string, to Page, effect Effect, selected *models.Movie, query string) Transition {
	tr := Transition{Intent: intent, From: c.page, Effect: effect}
	tr.To, tr.Redirected = c.guard(to)
	if tr.Redirected {
		tr.Effect = NoEffect
	}

	c.page = tr.To
	c.selected = nil
	c.query = ""
	switch tr.To {
	case Detail:
		c.selected = selected
	case Search:
		c.query = query
	}

	c.logger.Debug("navigate", "intent", intent, "from", tr.From, "to", tr.To, "effect", tr.Effect, "redirected", tr.Redirected)

	st := c.State()
	for _, l := range c.listeners {
		l(st, tr)
	}
	return tr
}
