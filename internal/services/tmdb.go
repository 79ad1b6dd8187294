// TMDb API implementation of [Gateway]
//
// Response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
	"golang.org/x/oauth2"
)

const (
	tmdbBaseURL     = "https://api.themoviedb.org/3"
	tmdbLanguage    = "en-US"
	requestIDHeader = "X-Request-ID"
)

// NetworkError reports a failed catalog request: a transport failure or a non-success status.
type NetworkError struct {
	Endpoint   string
	StatusCode int    // zero for transport failures
	Message    string // TMDb status_message, when present
	Err        error  // underlying transport error, when present
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("network error on %s: %v", e.Endpoint, e.Err)
	case e.Message != "":
		return fmt.Sprintf("network error on %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("network error on %s: status %d", e.Endpoint, e.StatusCode)
	}
}

// Is matches [shared.ErrNetwork].
func (e *NetworkError) Is(target error) bool { return target == shared.ErrNetwork }

func (e *NetworkError) Unwrap() error { return e.Err }

type tmdbPage struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type tmdbGenres struct {
	Genres []models.Genre `json:"genres"`
}

type tmdbStatus struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// TMDbOpts contains configuration options for creating a [TMDbService].
type TMDbOpts struct {
	BaseURL     string
	APIKey      string // v3 key, sent as the api_key query parameter
	AccessToken string // v4 read token, sent as a bearer token
	Language    string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *log.Logger
}

// TMDbService implements the [Gateway] interface against The Movie Database API.
//
// Uses an [oauth2.Transport] with a static token source to attach the bearer token.
type TMDbService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewTMDbService creates a new TMDb gateway.
func NewTMDbService(opts TMDbOpts) *TMDbService {
	if opts.BaseURL == "" {
		opts.BaseURL = tmdbBaseURL
	}
	if opts.Language == "" {
		opts.Language = tmdbLanguage
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &TMDbService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		language:   opts.Language,
		httpClient: BearerClient(client, opts.AccessToken),
		logger:     shared.WithLogger(opts.Logger, "gateway", "tmdb"),
	}
}

// BearerClient wraps client so every request carries accessToken as a bearer token.
// An empty token returns client unchanged.
func BearerClient(client *http.Client, accessToken string) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}
	if accessToken == "" {
		return client
	}
	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	return &http.Client{
		Timeout:   client.Timeout,
		Transport: &oauth2.Transport{Source: oauth2.StaticTokenSource(token), Base: client.Transport},
	}
}

// Name returns the gateway name.
func (s *TMDbService) Name() string {
	return "TMDb"
}

// doRequest performs a GET to endpoint and decodes the JSON body into result.
func (s *TMDbService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	params.Set("language", s.language)

	apiURL := s.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("request failed", "endpoint", endpoint, "request_id", requestID, "err", err)
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	s.logger.Debug("request completed",
		"endpoint", endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var status tmdbStatus
		if err := json.NewDecoder(resp.Body).Decode(&status); err == nil && status.StatusMessage != "" {
			return &NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: status.StatusMessage}
		}
		return &NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (s *TMDbService) listMovies(ctx context.Context, endpoint string, params url.Values) ([]models.Movie, error) {
	var page tmdbPage
	if err := s.doRequest(ctx, endpoint, params, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// ListTrending calls GET /trending/movie/week.
func (s *TMDbService) ListTrending(ctx context.Context) ([]models.Movie, error) {
	return s.listMovies(ctx, "/trending/movie/week", nil)
}

// ListTopRated calls GET /movie/top_rated.
func (s *TMDbService) ListTopRated(ctx context.Context) ([]models.Movie, error) {
	return s.listMovies(ctx, "/movie/top_rated", nil)
}

// ListPopular calls GET /movie/popular.
func (s *TMDbService) ListPopular(ctx context.Context) ([]models.Movie, error) {
	return s.listMovies(ctx, "/movie/popular", nil)
}

// ListByGenre calls GET /discover/movie with the with_genres filter.
func (s *TMDbService) ListByGenre(ctx context.Context, genreID int) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	return s.listMovies(ctx, "/discover/movie", params)
}

// Search calls GET /search/movie.
func (s *TMDbService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("query", query)
	return s.listMovies(ctx, "/search/movie", params)
}

// ListGenres calls GET /genre/movie/list.
func (s *TMDbService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var response tmdbGenres
	if err := s.doRequest(ctx, "/genre/movie/list", nil, &response); err != nil {
		return nil, err
	}
	return response.Genres, nil
}

// GetDetail calls GET /movie/{id}.
//
// The detail endpoint returns genre objects instead of ids; GenreIDs is filled from them.
func (s *TMDbService) GetDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	if err := s.doRequest(ctx, endpoint, nil, &detail); err != nil {
		return nil, err
	}

	if len(detail.GenreIDs) == 0 {
		for _, g := range detail.Genres {
			detail.GenreIDs = append(detail.GenreIDs, g.ID)
		}
	}

	return &detail, nil
}
