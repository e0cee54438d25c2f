package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/shared"
	"golang.org/x/time/rate"
)

// videoExtensions are the file types picked up by directory scans.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
}

// BatchAnalyzeOpts contains configuration for batch video analysis.
type BatchAnalyzeOpts struct {
	OutputDir  string  // Base output directory (default: lantern_analysis_{epoch})
	NumWorkers int     // Concurrent workers (default: 3)
	RateLimit  float64 // Requests per second (default: 1)
	Prompt     string  // Optional analysis instruction applied to every file
}

type analyzeJob struct {
	index int
	path  string
}

// BatchAnalyze uploads and analyzes multiple video files concurrently with
// rate limiting and progress tracking.
//
// This method implements a worker pool pattern. It respects API rate
// limits, handles partial failures gracefully, and writes one analysis
// text file per input video into the output directory.
func (e *Engine) BatchAnalyze(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	paths []string,
	opts BatchAnalyzeOpts,
) (*BatchAnalyzeResult, error) {
	if e.analyzer == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no video files to analyze", shared.ErrMissingArgument)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("lantern_analysis_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BatchAnalyzeResult{
		TotalFiles:      len(paths),
		OutputDirectory: opts.OutputDir,
		Results:         make([]FileAnalysisResult, 0, len(paths)),
	}

	e.sendProgress(prog, scanningUpdate(len(paths)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan analyzeJob, len(paths))
	results := make(chan FileAnalysisResult, len(paths))

	var completed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if err := limiter.Wait(ctx); err != nil {
					return
				}

				res := e.analyzeSingleFile(ctx, prog, job, len(paths), opts)
				step := int(completed.Add(1))
				if res.Success {
					e.sendProgress(prog, analyzedUpdate(step, len(paths), filepath.Base(job.path)))
				} else {
					e.sendProgress(prog, analyzeFailedUpdate(step, len(paths), filepath.Base(job.path), res.Error))
				}
				results <- res
			}
		}()
	}

	for i, path := range paths {
		jobs <- analyzeJob{index: i, path: path}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		result.Results = append(result.Results, res)
		if res.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	return result, nil
}

// analyzeSingleFile uploads one file and writes its analysis next to the batch output.
func (e *Engine) analyzeSingleFile(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	job analyzeJob,
	total int,
	opts BatchAnalyzeOpts,
) FileAnalysisResult {
	res := FileAnalysisResult{Path: job.path}

	content, err := os.ReadFile(job.path)
	if err != nil {
		res.Error = fmt.Errorf("failed to read video: %w", err)
		return res
	}

	name := filepath.Base(job.path)
	analysis, err := e.analyzer.AnalyzeVideo(ctx, api.AnalyzeRequest{
		Filename:    name,
		ContentType: ContentTypeFor(job.path),
		Content:     content,
		Prompt:      opts.Prompt,
	}, func(percent float64) {
		e.sendProgress(prog, uploadingUpdate(job.index+1, total, name, percent))
	})
	if err != nil {
		res.Error = err
		return res
	}

	outPath := filepath.Join(opts.OutputDir, strings.TrimSuffix(name, filepath.Ext(name))+"_analysis.json")
	if err := os.WriteFile(outPath, []byte(analysis), 0644); err != nil {
		res.Error = fmt.Errorf("analysis succeeded but failed to write output: %w", err)
		return res
	}

	res.OutputPath = outPath
	res.Success = true
	return res
}

// ScanVideoFiles returns the video files directly inside dir, sorted by
// directory order.
func ScanVideoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if videoExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	return paths, nil
}

// ContentTypeFor maps a video file extension to its MIME type.
func ContentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "application/octet-stream"
	}
}
