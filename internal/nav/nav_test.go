package nav

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/session"
	"github.com/desertthunder/bingeverse/internal/shared"
)

func newTestController() *Controller {
	logger := shared.NewLogger(&bytes.Buffer{})
	return NewController(session.New(session.Permissive{}, logger), logger)
}

var creds = session.Credentials{Email: "a@b.c", Password: "pw"}

func TestController(t *testing.T) {
	ctx := context.Background()
	movie := models.Movie{ID: 2, Title: "Inception"}

	t.Run("Starts On Home", func(t *testing.T) {
		st := newTestController().State()
		if st.Page != Home || st.Selected != nil || st.Query != "" || st.SignedIn {
			t.Errorf("unexpected initial state %+v", st)
		}
	})

	t.Run("Navigate", func(t *testing.T) {
		tc := []struct {
			target Target
			page   Page
			effect Effect
		}{
			{TargetHome, Home, NoEffect},
			{TargetGenres, Genres, NoEffect},
			{TargetTrending, Home, ScrollToTrending},
			{TargetSignIn, SignIn, NoEffect},
			{TargetSignUp, SignUp, NoEffect},
			{"Genres ", Genres, NoEffect},
			{"unknown", Home, NoEffect},
			{"", Home, NoEffect},
		}

		for _, tt := range tc {
			t.Run(string(tt.target), func(t *testing.T) {
				c := newTestController()
				c.Navigate(TargetGenres)

				tr := c.Navigate(tt.target)
				if tr.To != tt.page || c.Page() != tt.page {
					t.Errorf("expected page %s, got %s", tt.page, c.Page())
				}
				if tr.Effect != tt.effect {
					t.Errorf("expected effect %s, got %s", tt.effect, tr.Effect)
				}
				if tr.From != Genres {
					t.Errorf("expected transition from genres, got %s", tr.From)
				}
			})
		}
	})

	t.Run("Profile Guard", func(t *testing.T) {
		t.Run("signed out lands on sign in", func(t *testing.T) {
			for _, target := range []Target{TargetProfile, TargetUser} {
				c := newTestController()
				tr := c.Navigate(target)
				if tr.To != SignIn || c.Page() != SignIn {
					t.Errorf("%s: expected sign-in, got %s", target, c.Page())
				}
				if !tr.Redirected {
					t.Errorf("%s: expected transition to be marked redirected", target)
				}
			}
		})

		t.Run("profile is never observed while signed out", func(t *testing.T) {
			c := newTestController()
			var seen []Page
			c.Subscribe(func(st State, _ Transition) { seen = append(seen, st.Page) })

			c.Navigate(TargetProfile)
			c.Navigate(TargetHome)
			c.Navigate(TargetUser)

			for _, p := range seen {
				if p == Profile {
					t.Fatalf("observed profile while signed out: %v", seen)
				}
			}
		})

		t.Run("signed in reaches profile", func(t *testing.T) {
			c := newTestController()
			if _, err := c.SignIn(ctx, creds); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			c.Navigate(TargetHome)

			tr := c.Navigate(TargetProfile)
			if tr.To != Profile || tr.Redirected {
				t.Errorf("expected unredirected profile, got %+v", tr)
			}
		})
	})

	t.Run("Select", func(t *testing.T) {
		c := newTestController()
		tr := c.Select(movie)

		st := c.State()
		if tr.To != Detail || st.Page != Detail {
			t.Fatalf("expected detail, got %s", st.Page)
		}
		if st.Selected == nil || st.Selected.ID != movie.ID {
			t.Errorf("expected selected movie %d, got %+v", movie.ID, st.Selected)
		}
		if st.Page.ShowsChrome() {
			t.Error("expected detail to hide chrome")
		}
	})

	t.Run("State Returns A Copy", func(t *testing.T) {
		c := newTestController()
		c.Select(movie)

		st := c.State()
		st.Selected.Title = "changed"
		if c.State().Selected.Title != "Inception" {
			t.Error("expected controller state to be unaffected by snapshot mutation")
		}
	})

	t.Run("Back Clears Selection", func(t *testing.T) {
		c := newTestController()
		c.Select(movie)
		c.Back()

		st := c.State()
		if st.Page != Home || st.Selected != nil {
			t.Errorf("expected home with no selection, got %+v", st)
		}
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("carries trimmed query", func(t *testing.T) {
			c := newTestController()
			if _, err := c.Search("  dark knight "); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			st := c.State()
			if st.Page != Search || st.Query != "dark knight" {
				t.Errorf("unexpected state %+v", st)
			}
		})

		t.Run("blank query is rejected", func(t *testing.T) {
			c := newTestController()
			c.Navigate(TargetGenres)

			calls := 0
			c.Subscribe(func(State, Transition) { calls++ })

			if _, err := c.Search("   "); !errors.Is(err, shared.ErrEmptyQuery) {
				t.Errorf("expected ErrEmptyQuery, got %v", err)
			}
			if c.Page() != Genres || calls != 0 {
				t.Errorf("expected no transition, page %s, calls %d", c.Page(), calls)
			}
		})

		t.Run("query cleared on leaving", func(t *testing.T) {
			c := newTestController()
			_, _ = c.Search("matrix")
			c.Back()
			if c.State().Query != "" {
				t.Error("expected query to be cleared")
			}
		})
	})

	t.Run("SignIn", func(t *testing.T) {
		t.Run("any non-empty credentials", func(t *testing.T) {
			c := newTestController()
			c.Navigate(TargetSignIn)

			tr, err := c.SignIn(ctx, session.Credentials{Email: "x", Password: "y"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tr.To != Home || !c.State().SignedIn {
				t.Errorf("expected signed in on home, got %+v", c.State())
			}
		})

		t.Run("empty field keeps page", func(t *testing.T) {
			c := newTestController()
			c.Navigate(TargetSignIn)

			_, err := c.SignIn(ctx, session.Credentials{Email: "x"})
			if !errors.Is(err, shared.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
			if c.Page() != SignIn || c.State().SignedIn {
				t.Errorf("expected to stay signed out on sign-in, got %+v", c.State())
			}
		})
	})

	t.Run("SignUp", func(t *testing.T) {
		c := newTestController()
		c.Navigate(TargetSignUp)

		_, err := c.SignUp(ctx, session.Registration{Email: "x", Password: "a", Confirm: "b"})
		if !errors.Is(err, shared.ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
		if c.Page() != SignUp {
			t.Errorf("expected to stay on sign-up, got %s", c.Page())
		}

		tr, err := c.SignUp(ctx, session.Registration{Email: "x", Password: "a", Confirm: "a"})
		if err != nil || tr.To != Home || !c.State().SignedIn {
			t.Errorf("expected home after sign up, got %+v, %v", tr, err)
		}
	})

	t.Run("SignOut", func(t *testing.T) {
		c := newTestController()
		_, _ = c.SignIn(ctx, creds)

		tr := c.SignOut()
		st := c.State()
		if tr.To != Home || st.Page != Home || st.SignedIn {
			t.Errorf("expected signed out on home, got %+v", st)
		}

		if c.Navigate(TargetProfile).To != SignIn {
			t.Error("expected guard to apply again after sign out")
		}
	})

	t.Run("Subscribe", func(t *testing.T) {
		c := newTestController()
		var got []Transition
		c.Subscribe(func(_ State, tr Transition) { got = append(got, tr) })
		c.Subscribe(nil)

		c.Navigate(TargetTrending)
		c.Select(movie)

		if len(got) != 2 {
			t.Fatalf("expected 2 transitions, got %d", len(got))
		}
		if got[0].Effect != ScrollToTrending || got[1].To != Detail {
			t.Errorf("unexpected transitions %+v", got)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		run := func() []Page {
			c := newTestController()
			var pages []Page
			c.Subscribe(func(st State, _ Transition) { pages = append(pages, st.Page) })
			c.Navigate(TargetProfile)
			_, _ = c.SignIn(ctx, creds)
			c.Select(movie)
			c.Back()
			_, _ = c.Search("x")
			c.SignOut()
			return pages
		}

		a, b := run(), run()
		if len(a) != len(b) {
			t.Fatalf("expected equal runs, got %v and %v", a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("expected equal runs, got %v and %v", a, b)
			}
		}
	})
}

func TestPage(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		if Genres.String() != "genres" || SignUp.String() != "sign-up" {
			t.Errorf("unexpected names %s, %s", Genres, SignUp)
		}
		if Page(42).String() != "page(42)" {
			t.Errorf("unexpected name for unknown page: %s", Page(42))
		}
	})

	t.Run("RequiresSession", func(t *testing.T) {
		for _, p := range []Page{Home, Detail, Search, Genres, SignIn, SignUp} {
			if p.RequiresSession() {
				t.Errorf("%s should not require a session", p)
			}
		}
		if !Profile.RequiresSession() {
			t.Error("profile should require a session")
		}
	})
}
