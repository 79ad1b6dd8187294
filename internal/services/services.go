// package services defines interface Gateway for reading the movie catalog
//
// TMDb (live over HTTP), bundled catalog (in memory)
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// Gateway defines the read-only catalog operations consumed by the views.
//
// Every call may block for an unbounded time and fails with an error wrapping [shared.ErrNetwork]
// when the remote service answers with a non-success status.
type Gateway interface {
	// ListTrending returns the movies trending this week.
	ListTrending(ctx context.Context) ([]models.Movie, error)

	// ListTopRated returns the highest rated movies.
	ListTopRated(ctx context.Context) ([]models.Movie, error)

	// ListPopular returns the most popular movies.
	ListPopular(ctx context.Context) ([]models.Movie, error)

	// ListByGenre returns movies tagged with the genre id.
	ListByGenre(ctx context.Context, genreID int) ([]models.Movie, error)

	// Search returns movies whose title matches query.
	Search(ctx context.Context, query string) ([]models.Movie, error)

	// ListGenres returns every movie genre.
	ListGenres(ctx context.Context) ([]models.Genre, error)

	// GetDetail returns a single movie with its extended fields.
	GetDetail(ctx context.Context, movieID int) (*models.MovieDetail, error)

	// Name returns the name of the gateway (e.g., "TMDb")
	Name() string
}

// NewGateway builds the [Gateway] selected by cfg.
//
// In auto mode the live TMDb gateway is used when credentials are configured, otherwise the bundled catalog.
func NewGateway(cfg *shared.Config, client *http.Client, logger *log.Logger) (Gateway, error) {
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	creds := cfg.Credentials.TMDb
	live := func() Gateway {
		return NewTMDbService(TMDbOpts{
			BaseURL:     creds.BaseURL,
			APIKey:      creds.APIKey,
			AccessToken: creds.AccessToken,
			Language:    creds.Language,
			Timeout:     cfg.Gateway.TimeoutDuration(),
			HTTPClient:  client,
			Logger:      logger,
		})
	}

	switch cfg.Gateway.Mode {
	case shared.GatewayMock:
		return NewMockService(), nil
	case shared.GatewayLive:
		if !creds.HasCredentials() {
			return nil, fmt.Errorf("%w: live gateway requires TMDb api_key or access_token", shared.ErrMissingCredentials)
		}
		return live(), nil
	case shared.GatewayAuto, "":
		if creds.HasCredentials() {
			return live(), nil
		}
		logger.Warn("no TMDb credentials configured, using bundled catalog")
		return NewMockService(), nil
	default:
		return nil, fmt.Errorf("%w: unknown gateway mode %q", shared.ErrInvalidConfig, cfg.Gateway.Mode)
	}
}
