// package formatter exports movie sections to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingeverse/internal/models"
	"github.com/desertthunder/bingeverse/internal/shared"
)

// ExportToCSV converts a Section to CSV format with columns: ID, Title, Year, Rating, Genres, Poster
func ExportToCSV(sec *models.Section) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Genres", "Poster"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range sec.Movies {
		genres := make([]string, len(m.GenreIDs))
		for i, id := range m.GenreIDs {
			genres[i] = strconv.Itoa(id)
		}

		record := []string{
			strconv.Itoa(m.ID),
			m.Title,
			m.Year(),
			FormatRating(m.VoteAverage),
			strings.Join(genres, ";"),
			m.PosterPath,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Section to Markdown with an optional cover image
func ExportToMarkdown(sec *models.Section, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", sectionTitle(sec)))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(sec.Movies)))

	if sec.Empty() {
		buf.WriteString("_No movies found._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Movies\n\n")
	for i, m := range sec.Movies {
		year := ""
		if y := m.Year(); y != "" {
			year = fmt.Sprintf(" (%s)", y)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](%s)%s ★ %s\n", i+1, m.Title, MoviePageURL(m.ID), year, FormatRating(m.VoteAverage)))
		if m.Overview != "" {
			buf.WriteString(fmt.Sprintf("   > %s\n", m.Overview))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Section to plain text format
func ExportToText(sec *models.Section) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Section: %s\n", sectionTitle(sec)))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(sec.Movies)))

	if sec.Empty() {
		buf.WriteString("No movies found\n")
		return buf.Bytes(), nil
	}

	for i, m := range sec.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, Label(m), FormatRating(m.VoteAverage)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a Section to indented JSON
func ExportToJSON(sec *models.Section) ([]byte, error) {
	return shared.MarshalJSON(sec, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidArgument)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

type sectionMetadata struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// ToMetadataJSON generates a JSON representation of section metadata (without movies)
func ToMetadataJSON(sec *models.Section) ([]byte, error) {
	return shared.MarshalJSON(sectionMetadata{Key: sec.Key, Title: sec.Title, Count: len(sec.Movies)}, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// WriteCSVExport exports a section to CSV with an accompanying metadata JSON file.
//
// Defaults to the slugged section key as the base filename & creates {base}_movies.csv and {base}_metadata.json
func WriteCSVExport(sec *models.Section, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = Slug(sec.Key)
	}

	csvData, err := ExportToCSV(sec)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(sec)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		MoviesFile:   moviesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a section to Markdown in a dedicated directory.
//
// Directory name defaults to the slugged section key.
// The imageURL parameter is optional. When set, the image is saved as {dir}/cover.jpg; a failed download only logs a warning.
func WriteMarkdownExport(sec *models.Section, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = Slug(sec.Key)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			log.Warn("failed to download cover image", "url", imageURL, "err", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				log.Warn("failed to save cover image", "path", coverImagePath, "err", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(sec, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a section to plain text format.
//
// Defaults to {slug}_movies.txt as the filename.
func WriteTextExport(sec *models.Section, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_movies.txt", Slug(sec.Key))
	}

	textData, err := ExportToText(sec)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports a section to indented JSON. Defaults to {slug}.json as the filename.
func WriteJSONExport(sec *models.Section, path string) (string, error) {
	if path == "" {
		path = Slug(sec.Key) + ".json"
	}

	data, err := ExportToJSON(sec)
	if err != nil {
		return "", fmt.Errorf("JSON marshal failed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("JSON write failed: %w", err)
	}

	return path, nil
}

func sectionTitle(sec *models.Section) string {
	if sec.Title != "" {
		return sec.Title
	}
	return sec.Key
}
