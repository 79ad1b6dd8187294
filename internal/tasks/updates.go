package tasks

import (
	"fmt"

	"github.com/desertthunder/bingeverse/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSection Phase = iota
	ExportSection
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchSection:
		return "fetch_section"
	case ExportSection:
		return "export_section"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingSectionUpdate(step, total int, key string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, key),
	}
}

func fetchedSectionUpdate(step, total int, sec *models.Section) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Found %s (%d movies)", step, total, sec.Title, len(sec.Movies)),
		Data:    sec,
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
