package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/bingeverse/internal/formatter"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// ParseFormat normalizes an export format name. An empty name is json.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatMarkdown, FormatText:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, name)
	}
}

// BulkExportOpts contains configuration for bulk section exports.
type BulkExportOpts struct {
	Format       string // Export format: json, csv, markdown, txt
	OutputDir    string // Base output directory (default: bingeverse_export_{epoch})
	NumWorkers   int    // Concurrent workers (default: 4, max: 10)
	Covers       bool   // Download the first poster of each section as a markdown cover
	ImageBaseURL string // Poster URL prefix
}

// SectionJob is one fetched section waiting to be written.
type SectionJob struct {
	Key     string
	Section models.Section
}

// SectionExportResult is the outcome of writing one section.
type SectionExportResult struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Count   int      `json:"count"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   error    `json:"-"`
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalSections     int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []SectionExportResult
}

type manifestEntry struct {
	SectionExportResult
	Error string `json:"error,omitempty"`
}

type manifest struct {
	Format     string          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Sections   []manifestEntry `json:"sections"`
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// BulkExport fetches each section in keys and writes it to opts.OutputDir using a worker pool.
//
// Sections are fetched in order by a single producer so the gateway sees one request at a time.
// A section that fails to load or write is recorded in the result and the rest carry on.
// An export_manifest.json summarizing every section is written last.
func (c *Catalog) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, keys []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if c.gateway == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no sections to export", shared.ErrMissingArgument)
	}

	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	opts.Format = format

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("bingeverse_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSections:   len(keys),
		OutputDirectory: opts.OutputDir,
		Results:         make([]SectionExportResult, 0, len(keys)),
	}

	jobs := make(chan SectionJob, len(keys))
	results := make(chan SectionExportResult, len(keys))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go c.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, key := range keys {
			select {
			case <-ctx.Done():
				return
			default:
			}

			sendProgress(prog, fetchingSectionUpdate(i+1, len(keys), key))

			res := c.LoadSection(ctx, key)
			if res.Degraded() {
				results <- SectionExportResult{
					Key:   key,
					Title: res.Section.Title,
					Error: fmt.Errorf("failed to fetch section: %w", res.Err),
				}
				continue
			}

			sendProgress(prog, fetchedSectionUpdate(i+1, len(keys), &res.Section))
			jobs <- SectionJob{Key: key, Section: res.Section}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(keys), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(keys), res.Title, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	c.logger.Info("export finished", "dir", opts.OutputDir, "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker is a worker goroutine that writes sections from the jobs channel.
func (c *Catalog) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan SectionJob,
	results chan<- SectionExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- SectionExportResult{Key: job.Key, Title: job.Section.Title, Error: ctx.Err()}
			continue
		default:
		}

		results <- c.exportSection(job, opts)
	}
}

// exportSection writes a single section in the configured format.
func (c *Catalog) exportSection(j SectionJob, opts BulkExportOpts) SectionExportResult {
	result := SectionExportResult{
		Key:   j.Key,
		Title: j.Section.Title,
		Count: len(j.Section.Movies),
		Files: []string{},
	}

	slug := formatter.Slug(j.Key)
	sec := &j.Section

	switch opts.Format {
	case FormatCSV:
		csvRes, err := formatter.WriteCSVExport(sec, filepath.Join(opts.OutputDir, slug))
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.MoviesFile, csvRes.MetadataFile}

	case FormatMarkdown:
		var imageURL string
		if opts.Covers && !sec.Empty() && sec.Movies[0].PosterPath != "" {
			imageURL = formatter.PosterURL(opts.ImageBaseURL, sec.Movies[0].PosterPath)
		}

		mdRes, err := formatter.WriteMarkdownExport(sec, filepath.Join(opts.OutputDir, slug), imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files

	case FormatText:
		path, err := formatter.WriteTextExport(sec, filepath.Join(opts.OutputDir, slug+"_movies.txt"))
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}

	default:
		path, err := formatter.WriteJSONExport(sec, filepath.Join(opts.OutputDir, slug+".json"))
		if err != nil {
			result.Error = err
			return result
		}
		result.Files = []string{path}
	}

	result.Success = true
	return result
}

func writeManifest(result *BulkExportResult, format, path string) error {
	m := manifest{
		Format:     format,
		ExportedAt: time.Now().UTC(),
		Total:      result.TotalSections,
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
		Sections:   make([]manifestEntry, len(result.Results)),
	}
	for i, r := range result.Results {
		entry := manifestEntry{SectionExportResult: r}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		m.Sections[i] = entry
	}

	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
