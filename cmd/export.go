package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/desertthunder/bingeverse/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the requested sections, the home sections by default, to a directory.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	keys, err := r.exportKeys(ctx, cmd.Args().Slice(), cmd.Bool("all-genres"))
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:       cmd.String("format"),
		OutputDir:    cmd.String("dir"),
		NumWorkers:   cmd.Int("workers"),
		Covers:       cmd.Bool("covers"),
		ImageBaseURL: r.config.Credentials.TMDb.ImageBaseURL,
	}

	r.logger.Info("starting export", "sections", len(keys), "format", opts.Format)
	r.writePlain("Exporting %d sections...\n\n", len(keys))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSection:
				r.writePlain("📥 [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.ExportSection:
				r.writePlain("💾 [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.catalog.BulkExport(ctx, progressCh, keys, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported:  %d/%d sections\n", result.SuccessfulExports, result.TotalSections)
	if result.ManifestPath != "" {
		r.writePlain("Manifest:  %s\n", result.ManifestPath)
	}

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d sections:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.Key, res.Error)
			}
		}
	}
	return nil
}

// exportKeys validates args as section keys, defaulting to the home sections, and appends a
// genre section per genre when allGenres is set.
func (r *Runner) exportKeys(ctx context.Context, args []string, allGenres bool) ([]string, error) {
	keys := make([]string, 0, len(args))
	for _, arg := range args {
		key := strings.TrimSpace(arg)
		if err := tasks.ValidateKey(key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 && !allGenres {
		keys = append(keys, tasks.HomeKeys...)
	}

	if allGenres {
		genres, err := r.catalog.LoadGenres(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		for _, g := range genres {
			keys = append(keys, tasks.GenreKey(g.ID))
		}
	}
	return keys, nil
}
