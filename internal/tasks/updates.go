package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Percent float64
}

// Operation phase enumeration
type Phase int

const (
	ScanFiles Phase = iota
	UploadFile
	AnalyzeFile
)

func (p Phase) String() string {
	switch p {
	case ScanFiles:
		return "scan_files"
	case UploadFile:
		return "upload_file"
	case AnalyzeFile:
		return "analyze_file"
	default:
		return ""
	}
}

func scanningUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanFiles,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Found %d video files", total),
	}
}

func uploadingUpdate(step, total int, name string, percent float64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading %s (%.0f%%)", step, total, name, percent),
		Percent: percent,
	}
}

func analyzedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AnalyzeFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, name),
	}
}

func analyzeFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AnalyzeFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
