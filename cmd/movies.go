package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/bingeverse/internal/formatter"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/desertthunder/bingeverse/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MoviesSection prints one of the fixed lists; the section key is the subcommand name.
func (r *Runner) MoviesSection(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	r.logger.Info("loading section", "key", cmd.Name, "gateway", r.gateway.Name())
	res := r.catalog.LoadSection(ctx, cmd.Name)
	return r.printSection(cmd, res.Section)
}

// MoviesGenres prints every genre.
func (r *Runner) MoviesGenres(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	genres, err := r.catalog.LoadGenres(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d genres:\n\n", len(genres))
	for _, g := range genres {
		r.writePlain("%6d  %s\n", g.ID, g.Name)
	}
	return nil
}

// MoviesGenre prints the movies in the genre given by --id or --name.
func (r *Runner) MoviesGenre(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.Int("id")
	name := cmd.String("name")
	if id != 0 && name != "" {
		return fmt.Errorf("%w: cannot specify both --id and --name", shared.ErrInvalidArgument)
	}

	title := ""
	if id == 0 {
		if name == "" {
			return fmt.Errorf("%w: either --id or --name must be provided", shared.ErrMissingArgument)
		}
		g, err := r.resolveGenre(ctx, name)
		if err != nil {
			return err
		}
		id, title = g.ID, g.Name
	}

	res := r.catalog.LoadGenre(ctx, id)
	if title != "" {
		res.Section.Title = title
	}
	return r.printSection(cmd, res.Section)
}

// MoviesSearch prints movies matching the query argument.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: search query argument is required", shared.ErrMissingArgument)
	}

	order, err := tasks.ParseSortOrder(cmd.String("sort"))
	if err != nil {
		return err
	}
	opts := tasks.SearchOpts{Sort: order}

	if name := cmd.String("genre"); name != "" {
		g, err := r.resolveGenre(ctx, name)
		if err != nil {
			return err
		}
		opts.GenreID = g.ID
	}

	r.logger.Info("searching", "query", query, "sort", order, "genre", opts.GenreID)
	res, err := r.catalog.Search(ctx, query, opts)
	if err != nil {
		return err
	}
	return r.printSection(cmd, res.Section)
}

// MoviesDetail prints one movie.
func (r *Runner) MoviesDetail(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: movie id argument is required", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: movie id must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}

	detail, err := r.catalog.LoadDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMovieNotFound, err)
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(formatter.MoviePageURL(id)); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(formatter.Label(detail.Movie))
	if detail.Tagline != "" {
		r.writePlain("%s\n\n", detail.Tagline)
	}
	r.writePlain("Rating:     %s\n", formatter.FormatRating(detail.VoteAverage))
	r.writePlain("Runtime:    %s\n", formatter.FormatRuntime(detail.Runtime))
	if names := detail.GenreNames(); len(names) > 0 {
		r.writePlain("Genres:     %s\n", strings.Join(names, ", "))
	}
	if names := detail.CompanyNames(); len(names) > 0 {
		r.writePlain("Production: %s\n", strings.Join(names, ", "))
	}
	r.writePlain("Poster:     %s\n", formatter.PosterURL(r.config.Credentials.TMDb.ImageBaseURL, detail.PosterPath))
	r.writePlain("Page:       %s\n", formatter.MoviePageURL(id))
	if detail.Overview != "" {
		r.writePlainln("%s", detail.Overview)
	}
	return nil
}

func (r *Runner) resolveGenre(ctx context.Context, name string) (models.Genre, error) {
	genres, err := r.catalog.LoadGenres(ctx)
	if err != nil {
		return models.Genre{}, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	g, err := tasks.ResolveGenre(genres, name)
	if err != nil {
		return models.Genre{}, err
	}
	r.logger.Debug("resolved genre", "input", name, "genre", g.Name, "id", g.ID)
	return g, nil
}

// printSection writes sec as JSON or as a numbered list honoring --limit.
func (r *Runner) printSection(cmd *cli.Command, sec models.Section) error {
	if limit := cmd.Int("limit"); limit > 0 && limit < len(sec.Movies) {
		sec.Movies = sec.Movies[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(sec, cmd.Bool("pretty"))
	}

	r.writePlainHeader(sec.Title)
	if sec.Empty() {
		r.writePlain("No movies found\n")
		return nil
	}
	for i, m := range sec.Movies {
		r.writePlain("%2d. %s  ★ %s\n", i+1, formatter.Label(m), formatter.FormatRating(m.VoteAverage))
	}
	return nil
}
