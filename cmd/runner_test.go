package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/services"
	"github.com/desertthunder/bingeverse/internal/shared"
	tu "github.com/desertthunder/bingeverse/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestGateway() *tu.MockGateway {
	return &tu.MockGateway{
		Lists: map[string][]models.Movie{
			"trending": {
				{ID: 1, Title: "Dune: Part Two", ReleaseDate: "2024-02-27", VoteAverage: 8.2, GenreIDs: []int{878}},
				{ID: 2, Title: "Oppenheimer", ReleaseDate: "2023-07-19", VoteAverage: 8.1, GenreIDs: []int{18}},
			},
			"search": {
				{ID: 1, Title: "Dune: Part Two", ReleaseDate: "2024-02-27", VoteAverage: 8.2, GenreIDs: []int{878}},
				{ID: 3, Title: "Dune", ReleaseDate: "2021-09-15", VoteAverage: 7.8, GenreIDs: []int{878, 12}},
				{ID: 4, Title: "Dune Drifter", ReleaseDate: "2020-11-10", VoteAverage: 9.0, GenreIDs: []int{27}},
			},
		},
		Genre: map[int][]models.Movie{
			28: {{ID: 5, Title: "John Wick", ReleaseDate: "2014-10-22", VoteAverage: 7.4, GenreIDs: []int{28}}},
		},
		Genres: []models.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}, {ID: 18, Name: "Drama"}},
		Details: map[int]*models.MovieDetail{
			1: {
				Movie:     models.Movie{ID: 1, Title: "Dune: Part Two", ReleaseDate: "2024-02-27", VoteAverage: 8.2},
				Runtime:   166,
				Genres:    []models.Genre{{ID: 878, Name: "Science Fiction"}},
				Companies: []models.Company{{Name: "Legendary Pictures"}},
				Tagline:   "Long live the fighters.",
			},
		},
	}
}

// run executes args against a fresh command tree and returns what was written.
func run(t *testing.T, runner *Runner, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner.output = output
	app := &cli.Command{Name: "bingeverse", Commands: runner.register()}
	err := app.Run(context.Background(), append([]string{"bingeverse"}, args...))
	return output.String(), err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			gateway := newTestGateway()
			api := &services.APIService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Gateway:    gateway,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.gateway != gateway {
				t.Error("expected gateway to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.catalog == nil {
				t.Error("expected catalog to be built from gateway")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("without gateway has no catalog", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.catalog != nil {
				t.Error("expected nil catalog without a gateway")
			}
			if err := runner.requireCatalog(); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("SetLogger rebuilds catalog", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Gateway: newTestGateway()})
		before := runner.catalog
		logger := shared.NewLogger(&bytes.Buffer{})

		runner.SetLogger(logger)

		if runner.logger != logger {
			t.Error("expected logger to be replaced")
		}
		if runner.catalog == before {
			t.Error("expected a new catalog")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestMoviesCommands(t *testing.T) {
	newRunner := func(gw *tu.MockGateway) *Runner {
		return NewRunner(RunnerOpts{Gateway: gw, Logger: shared.NewLogger(&bytes.Buffer{})})
	}

	t.Run("trending prints numbered list", func(t *testing.T) {
		out, err := run(t, newRunner(newTestGateway()), "movies", "trending")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Trending Now") {
			t.Errorf("expected section title, got %q", out)
		}
		if !strings.Contains(out, " 1. Dune: Part Two (2024)") {
			t.Errorf("expected first movie, got %q", out)
		}
	})

	t.Run("trending as JSON honors limit", func(t *testing.T) {
		out, err := run(t, newRunner(newTestGateway()), "movies", "trending", "--json", "--limit", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sec models.Section
		if err := json.Unmarshal([]byte(out), &sec); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out, err)
		}
		if len(sec.Movies) != 1 || sec.Movies[0].ID != 1 {
			t.Errorf("expected only the first movie, got %+v", sec.Movies)
		}
	})

	t.Run("failed section prints empty message", func(t *testing.T) {
		gw := newTestGateway()
		gw.Errs = map[string]error{"popular": errors.New("boom")}

		out, err := run(t, newRunner(gw), "movies", "popular")
		if err != nil {
			t.Fatalf("expected failure to degrade to an empty list, got %v", err)
		}
		if !strings.Contains(out, "No movies found") {
			t.Errorf("expected empty message, got %q", out)
		}
	})

	t.Run("genres lists every genre", func(t *testing.T) {
		out, err := run(t, newRunner(newTestGateway()), "movies", "genres")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, name := range []string{"Action", "Science Fiction", "Drama"} {
			if !strings.Contains(out, name) {
				t.Errorf("expected %s in %q", name, out)
			}
		}
	})

	t.Run("genre by name", func(t *testing.T) {
		out, err := run(t, newRunner(newTestGateway()), "movies", "genre", "--name", "Action")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "John Wick") {
			t.Errorf("expected genre movie, got %q", out)
		}
	})

	t.Run("genre requires id or name", func(t *testing.T) {
		_, err := run(t, newRunner(newTestGateway()), "movies", "genre")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("genre rejects both id and name", func(t *testing.T) {
		_, err := run(t, newRunner(newTestGateway()), "movies", "genre", "--id", "28", "--name", "Action")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("search sorts and filters", func(t *testing.T) {
		out, err := run(t, newRunner(newTestGateway()), "movies", "search", "--sort", "rating", "--genre", "Science Fiction", "--json", "dune")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sec models.Section
		if err := json.Unmarshal([]byte(out), &sec); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out, err)
		}
		if len(sec.Movies) != 2 {
			t.Fatalf("expected 2 science fiction results, got %+v", sec.Movies)
		}
		if sec.Movies[0].ID != 1 || sec.Movies[1].ID != 3 {
			t.Errorf("expected rating order [1 3], got [%d %d]", sec.Movies[0].ID, sec.Movies[1].ID)
		}
	})

	t.Run("search without query", func(t *testing.T) {
		_, err := run(t, newRunner(newTestGateway()), "movies", "search")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("search with bad sort", func(t *testing.T) {
		_, err := run(t, newRunner(newTestGateway()), "movies", "search", "--sort", "loudness", "dune")
		if err == nil {
			t.Error("expected error for unknown sort order")
		}
	})

	t.Run("detail prints fields", func(t *testing.T) {
		out, err := run(t, newRunner(newTestGateway()), "movies", "detail", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Long live the fighters.", "2h 46m", "Science Fiction", "Legendary Pictures", "https://www.themoviedb.org/movie/1"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("detail with bad id", func(t *testing.T) {
		_, err := run(t, newRunner(newTestGateway()), "movies", "detail", "abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("detail for unknown movie", func(t *testing.T) {
		_, err := run(t, newRunner(newTestGateway()), "movies", "detail", "999")
		if !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected ErrMovieNotFound, got %v", err)
		}
	})

	t.Run("without gateway", func(t *testing.T) {
		_, err := run(t, NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})}), "movies", "trending")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("writes sections and manifest", func(t *testing.T) {
		dir := t.TempDir()
		runner := NewRunner(RunnerOpts{Gateway: newTestGateway(), Logger: shared.NewLogger(&bytes.Buffer{})})

		out, err := run(t, runner, "export", "--dir", dir, "trending", "genre:28")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Export Complete!") {
			t.Errorf("expected summary, got %q", out)
		}
		if !strings.Contains(out, "Exported:  2/2 sections") {
			t.Errorf("expected both sections exported, got %q", out)
		}

		for _, name := range []string{"trending.json", "genre-28.json", "export_manifest.json"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected %s to exist: %v", name, err)
			}
		}
	})

	t.Run("rejects unknown section", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Gateway: newTestGateway(), Logger: shared.NewLogger(&bytes.Buffer{})})

		_, err := run(t, runner, "export", "--dir", t.TempDir(), "upcoming")
		if err == nil {
			t.Error("expected error for unknown section key")
		}
	})

	t.Run("all genres adds genre sections", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Gateway: newTestGateway(), Logger: shared.NewLogger(&bytes.Buffer{})})

		keys, err := runner.exportKeys(context.Background(), nil, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"genre:28", "genre:878", "genre:18"}
		if strings.Join(keys, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, keys)
		}
	})

	t.Run("defaults to home sections", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Gateway: newTestGateway(), Logger: shared.NewLogger(&bytes.Buffer{})})

		keys, err := runner.exportKeys(context.Background(), nil, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(keys) != 3 {
			t.Errorf("expected the three home sections, got %v", keys)
		}
	})
}

func TestAPICommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/1":
			if r.URL.Query().Get("api_key") != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":1,"title":"Dune: Part Two"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status_message":"not found"}`))
		}
	}))
	defer server.Close()

	newRunner := func() *Runner {
		return NewRunner(RunnerOpts{
			API:    services.NewAPIService(server.URL, "secret", server.Client()),
			Logger: shared.NewLogger(&bytes.Buffer{}),
		})
	}

	t.Run("prints compact JSON", func(t *testing.T) {
		out, err := run(t, newRunner(), "api", "get", "--json", "/movie/1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(out) != `{"id":1,"title":"Dune: Part Two"}` {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		_, err := run(t, newRunner(), "api", "get", "/movie/2")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := run(t, newRunner(), "api", "get")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("init then check", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

		out, err := run(t, runner, "setup", "init", "--config", path)
		if err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if !strings.Contains(out, "Config written") {
			t.Errorf("expected confirmation, got %q", out)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected config file: %v", err)
		}

		out, err = run(t, runner, "setup", "init", "--config", path)
		if err != nil {
			t.Fatalf("second init failed: %v", err)
		}
		if !strings.Contains(out, "already exists") {
			t.Errorf("expected existing config notice, got %q", out)
		}

		out, err = run(t, runner, "setup", "check", "--config", path)
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if !strings.Contains(out, "Catalog reachable") {
			t.Errorf("expected reachable catalog, got %q", out)
		}
	})

	t.Run("check without config", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

		_, err := run(t, runner, "setup", "check", "--config", filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}
