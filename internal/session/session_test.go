package session

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/bingeverse/internal/shared"
)

type rejectAll struct{ err error }

func (r rejectAll) Authenticate(context.Context, Credentials) error { return r.err }
func (r rejectAll) Register(context.Context, Registration) error    { return r.err }

func TestPermissive(t *testing.T) {
	ctx := context.Background()
	auth := Permissive{}

	t.Run("Authenticate", func(t *testing.T) {
		tc := []struct {
			name  string
			creds Credentials
			ok    bool
		}{
			{"any non-empty fields", Credentials{Email: "a", Password: "b"}, true},
			{"both empty", Credentials{}, false},
			{"missing password", Credentials{Email: "a@b.c"}, false},
			{"whitespace only", Credentials{Email: " ", Password: "\t"}, false},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				err := auth.Authenticate(ctx, tt.creds)
				if tt.ok && err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if !tt.ok && !errors.Is(err, shared.ErrInvalidCredentials) {
					t.Errorf("expected ErrInvalidCredentials, got %v", err)
				}
			})
		}
	})

	t.Run("Register", func(t *testing.T) {
		if err := auth.Register(ctx, Registration{Email: "a", Password: "b", Confirm: "b"}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if err := auth.Register(ctx, Registration{Email: "a", Password: "b"}); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if err := auth.Register(ctx, Registration{Email: "a", Password: "b", Confirm: "c"}); !errors.Is(err, shared.ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
	})
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(&bytes.Buffer{})

	t.Run("Defaults To Signed Out", func(t *testing.T) {
		if New(nil, logger).SignedIn() {
			t.Error("expected new session to be signed out")
		}
		var zero Session
		if zero.SignedIn() {
			t.Error("expected zero session to be signed out")
		}
	})

	t.Run("SignIn Sets Flag", func(t *testing.T) {
		s := New(nil, logger)
		if err := s.SignIn(ctx, Credentials{Email: " a ", Password: "b"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !s.SignedIn() {
			t.Error("expected session to be signed in")
		}
		if s.Email() != "a" {
			t.Errorf("expected trimmed email, got %q", s.Email())
		}
	})

	t.Run("Rejected SignIn Leaves Flag", func(t *testing.T) {
		s := New(nil, logger)
		if err := s.SignIn(ctx, Credentials{}); err == nil {
			t.Fatal("expected error")
		}
		if s.SignedIn() {
			t.Error("expected session to stay signed out")
		}
	})

	t.Run("SignUp Sets Flag", func(t *testing.T) {
		s := New(nil, logger)
		if err := s.SignUp(ctx, Registration{Email: "a", Password: "b", Confirm: "b"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !s.SignedIn() {
			t.Error("expected session to be signed in")
		}
	})

	t.Run("Custom Authenticator", func(t *testing.T) {
		denied := errors.New("denied")
		s := New(rejectAll{err: denied}, logger)
		if err := s.SignIn(ctx, Credentials{Email: "a", Password: "b"}); !errors.Is(err, denied) {
			t.Errorf("expected custom error, got %v", err)
		}
		if s.SignedIn() {
			t.Error("expected session to stay signed out")
		}
	})

	t.Run("SignOut Clears Flag", func(t *testing.T) {
		s := New(nil, logger)
		_ = s.SignIn(ctx, Credentials{Email: "a", Password: "b"})
		s.SignOut()
		if s.SignedIn() || s.Email() != "" {
			t.Error("expected session to be cleared")
		}
		s.SignOut()
		if s.SignedIn() {
			t.Error("expected repeated sign out to keep flag false")
		}
	})
}
