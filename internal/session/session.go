// package session holds the advisory sign-in flag and the authenticator that gates it
//
// The flag only drives UI gating. It carries no token, no expiry, and is never validated by a server.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// Credentials is a submitted sign-in form.
type Credentials struct {
	Email    string
	Password string
}

// Registration is a submitted sign-up form.
type Registration struct {
	Email    string
	Password string
	Confirm  string
}

// Authenticator decides whether a submitted form signs the user in.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) error
	Register(ctx context.Context, reg Registration) error
}

// Permissive accepts any form whose fields are non-empty.
//
// It is a mock: there is no account store behind it.
type Permissive struct{}

var _ Authenticator = Permissive{}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Authenticate requires a non-empty email and password.
func (Permissive) Authenticate(_ context.Context, creds Credentials) error {
	if blank(creds.Email) || blank(creds.Password) {
		return fmt.Errorf("%w: please enter both email and password", shared.ErrInvalidCredentials)
	}
	return nil
}

// Register requires every field to be non-empty and the confirmation to match.
func (Permissive) Register(_ context.Context, reg Registration) error {
	if blank(reg.Email) || blank(reg.Password) || blank(reg.Confirm) {
		return fmt.Errorf("%w: please fill in all fields", shared.ErrInvalidCredentials)
	}
	if reg.Password != reg.Confirm {
		return shared.ErrPasswordMismatch
	}
	return nil
}

// Session owns the sign-in flag. The zero value is signed out and uses [Permissive].
type Session struct {
	signedIn bool
	email    string
	auth     Authenticator
	logger   *log.Logger
}

// New creates a signed-out session backed by auth.
func New(auth Authenticator, logger *log.Logger) *Session {
	if auth == nil {
		auth = Permissive{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{auth: auth, logger: logger}
}

func (s *Session) authenticator() Authenticator {
	if s.auth == nil {
		return Permissive{}
	}
	return s.auth
}

func (s *Session) log() *log.Logger {
	if s.logger == nil {
		s.logger = shared.NewLogger(nil)
	}
	return s.logger
}

// SignedIn reports the flag.
func (s *Session) SignedIn() bool {
	return s.signedIn
}

// Email returns the address used to sign in, or "".
func (s *Session) Email() string {
	return s.email
}

// SignIn sets the flag when the authenticator accepts creds. On failure the flag is unchanged.
func (s *Session) SignIn(ctx context.Context, creds Credentials) error {
	if err := s.authenticator().Authenticate(ctx, creds); err != nil {
		s.log().Debug("sign in rejected", "err", err)
		return err
	}
	s.signedIn = true
	s.email = strings.TrimSpace(creds.Email)
	s.log().Info("signed in", "email", s.email)
	return nil
}

// SignUp sets the flag when the authenticator accepts reg. On failure the flag is unchanged.
func (s *Session) SignUp(ctx context.Context, reg Registration) error {
	if err := s.authenticator().Register(ctx, reg); err != nil {
		s.log().Debug("sign up rejected", "err", err)
		return err
	}
	s.signedIn = true
	s.email = strings.TrimSpace(reg.Email)
	s.log().Info("signed up", "email", s.email)
	return nil
}

// SignOut clears the flag.
func (s *Session) SignOut() {
	if s.signedIn {
		s.log().Info("signed out", "email", s.email)
	}
	s.signedIn = false
	s.email = ""
}
