// package tasks implements long-running client-side operations against the dashboard backend.
//
// The core abstraction is Engine, which orchestrates batch video analysis.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"

	"github.com/nocturnedev/lantern/internal/api"
)

// Analyzer defines the slice of the API client that tasks depend on.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, req api.AnalyzeRequest, onProgress api.ProgressFunc) (string, error)
}

// FileAnalysisResult describes the outcome for a single analyzed file.
type FileAnalysisResult struct {
	Path       string // Input file path
	OutputPath string // Where the analysis text was written, empty on failure
	Success    bool
	Error      error
}

// BatchAnalyzeResult summarizes a batch analysis run.
type BatchAnalyzeResult struct {
	TotalFiles      int
	Succeeded       int
	Failed          int
	OutputDirectory string
	Results         []FileAnalysisResult
}

// Engine orchestrates batch operations through the API client.
type Engine struct {
	analyzer Analyzer
}

// NewEngine creates an Engine backed by the given analyzer.
func NewEngine(analyzer Analyzer) *Engine {
	return &Engine{analyzer: analyzer}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
