// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/bingeverse/internal/models"
)

// MockGateway is a test double for [services.Gateway].
//
// Lists are keyed by section name ("trending", "top-rated", "popular", "search") and genre id.
// Errs holds per-section failures; an entry in Errs wins over an entry in Lists.
type MockGateway struct {
	mu      sync.Mutex
	Lists   map[string][]models.Movie
	Genre   map[int][]models.Movie
	Genres  []models.Genre
	Details map[int]*models.MovieDetail
	Errs    map[string]error
	Calls   []string
}

func (m *MockGateway) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	return m.Errs[call]
}

// CallCount returns how many times call was made.
func (m *MockGateway) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *MockGateway) list(call string) ([]models.Movie, error) {
	if err := m.record(call); err != nil {
		return nil, err
	}
	return m.Lists[call], nil
}

func (m *MockGateway) ListTrending(ctx context.Context) ([]models.Movie, error) {
	return m.list("trending")
}

func (m *MockGateway) ListTopRated(ctx context.Context) ([]models.Movie, error) {
	return m.list("top-rated")
}

func (m *MockGateway) ListPopular(ctx context.Context) ([]models.Movie, error) {
	return m.list("popular")
}

func (m *MockGateway) ListByGenre(ctx context.Context, genreID int) ([]models.Movie, error) {
	if err := m.record("genre"); err != nil {
		return nil, err
	}
	return m.Genre[genreID], nil
}

// Search filters Lists["search"] by case-insensitive substring, like the real catalog.
func (m *MockGateway) Search(ctx context.Context, query string) ([]models.Movie, error) {
	if err := m.record("search"); err != nil {
		return nil, err
	}
	var out []models.Movie
	for _, movie := range m.Lists["search"] {
		if movie.MatchesTitle(query) {
			out = append(out, movie)
		}
	}
	return out, nil
}

func (m *MockGateway) ListGenres(ctx context.Context) ([]models.Genre, error) {
	if err := m.record("genres"); err != nil {
		return nil, err
	}
	return m.Genres, nil
}

func (m *MockGateway) GetDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	if err := m.record("detail"); err != nil {
		return nil, err
	}
	if d, ok := m.Details[movieID]; ok {
		return d, nil
	}
	return nil, errors.New("movie not found")
}

func (m *MockGateway) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
