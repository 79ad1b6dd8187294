// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/bingeverse/internal/tasks"
	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func listFlags() []cli.Flag {
	return append(outputFlags(), &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of movies to print (0 for all)",
	})
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

// setupCommand handles configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a default config.toml",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupInit,
			},
			{
				Name:   "check",
				Usage:  "Validate the configuration and reach the catalog",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupCheck,
			},
		},
	}
}

// moviesCommand handles catalog browsing
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:   tasks.TrendingKey,
				Usage:  "List movies trending this week",
				Flags:  listFlags(),
				Action: r.MoviesSection,
			},
			{
				Name:   tasks.TopRatedKey,
				Usage:  "List the highest rated movies",
				Flags:  listFlags(),
				Action: r.MoviesSection,
			},
			{
				Name:   tasks.PopularKey,
				Usage:  "List the most popular movies",
				Flags:  listFlags(),
				Action: r.MoviesSection,
			},
			{
				Name:   "genres",
				Usage:  "List every genre",
				Flags:  outputFlags(),
				Action: r.MoviesGenres,
			},
			{
				Name:  "genre",
				Usage: "List movies in one genre",
				Flags: append(listFlags(),
					&cli.IntFlag{
						Name:  "id",
						Usage: "Genre ID",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Genre name (loosely matched)",
					},
				),
				Action: r.MoviesGenre,
			},
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: append(listFlags(),
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: relevance, rating, or date",
						Value: tasks.SortRelevance.String(),
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Only keep movies in this genre (loosely matched)",
					},
				),
				Action: r.MoviesSearch,
			},
			{
				Name:  "detail",
				Usage: "Show one movie",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: append(outputFlags(),
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the movie page in a browser",
					},
				),
				Action: r.MoviesDetail,
			},
		},
	}
}

// exportCommand writes catalog sections to disk
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export sections (trending, top-rated, popular, genre:{id}, search:{query}) to files",
		ArgsUsage: "[section...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   tasks.FormatJSON,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: bingeverse_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers (1-10)",
				Value: 4,
			},
			&cli.BoolFlag{
				Name:  "covers",
				Usage: "Download a poster for each markdown section",
			},
			&cli.BoolFlag{
				Name:  "all-genres",
				Usage: "Also export one section per genre",
			},
		},
		Action: r.Export,
	}
}

// apiCommand handles direct catalog API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the TMDb API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the TMDb API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie browser",
		Action:  r.TUI,
	}
}
