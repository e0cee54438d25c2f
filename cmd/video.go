package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/formatter"
	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/shared"
	"github.com/nocturnedev/lantern/internal/tasks"
	"github.com/urfave/cli/v3"
)

// trackJob records a local job row when the database is available.
func (r *Runner) trackJob(source string) *models.VideoJob {
	if r.jobs == nil {
		return nil
	}
	job := models.NewVideoJob(0, source)
	if err := r.jobs.Create(job); err != nil {
		r.logger.Warn("failed to record job", "error", err)
		return nil
	}
	return job
}

// settleJob moves a tracked job to its terminal status.
func (r *Runner) settleJob(job *models.VideoJob, status string) {
	if job == nil {
		return
	}
	job.SetStatus(status)
	if err := r.jobs.Update(job); err != nil {
		r.logger.Warn("failed to update job", "id", job.ID(), "error", err)
	}
}

// VideoAnalyze uploads a single video file and prints the analysis.
func (r *Runner) VideoAnalyze(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory, use `lantern video batch`", shared.ErrInvalidArgument, path)
	}

	req := api.AnalyzeRequest{
		Filename:    filepath.Base(path),
		ContentType: tasks.ContentTypeFor(path),
		Prompt:      cmd.String("prompt"),
	}

	var onProgress api.ProgressFunc
	if cmd.Bool("stream-upload") {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open video: %w", err)
		}
		defer f.Close()
		req.Reader = f
	} else {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read video: %w", err)
		}
		req.Content = content
		onProgress = func(percent float64) {
			r.writePlain("\rUploading %s... %3.0f%%", req.Filename, percent)
		}
	}

	r.logger.Info("uploading video", "file", path, "size", info.Size())
	job := r.trackJob(path)

	analysis, err := r.client.AnalyzeVideo(ctx, req, onProgress)
	if onProgress != nil {
		r.writePlain("\n")
	}

	if err != nil {
		if api.IsAborted(err) {
			r.settleJob(job, models.JobStatusAborted)
			return r.writePlain("✗ Upload canceled\n")
		}
		r.settleJob(job, models.JobStatusFailed)
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.settleJob(job, models.JobStatusComplete)

	if outPath := cmd.String("output"); outPath != "" {
		if err := os.WriteFile(outPath, []byte(analysis), 0644); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
		return r.writePlain("✓ Analysis written to %s\n", outPath)
	}

	return r.writePlain("%s\n", analysis)
}

// VideoSubmit submits a video by URL for server-side processing.
func (r *Runner) VideoSubmit(ctx context.Context, cmd *cli.Command) error {
	sourceURL := cmd.String("url")

	r.logger.Info("submitting video", "url", sourceURL)

	receipt, err := r.client.SubmitVideo(ctx, sourceURL)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if job := r.trackJob(sourceURL); job != nil {
		job.SetRemoteID(receipt.JobID)
		if err := r.jobs.Update(job); err != nil {
			r.logger.Warn("failed to record remote id", "error", err)
		}
	}

	r.writePlain("✓ Submitted\n")
	return r.writeJSON(receipt, true)
}

// VideoJobs lists locally tracked analysis jobs.
func (r *Runner) VideoJobs(ctx context.Context, cmd *cli.Command) error {
	if r.jobs == nil {
		return fmt.Errorf("%w: database not initialized, run `lantern setup database`", shared.ErrServiceUnavailable)
	}

	criteria := map[string]any{}
	if status := cmd.String("status"); status != "" {
		criteria["status"] = status
	}

	jobs, err := r.jobs.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if cmd.Bool("json") {
		rows := make([]map[string]any, 0, len(jobs))
		for _, job := range jobs {
			rows = append(rows, map[string]any{
				"id":         job.ID(),
				"sequence":   job.Sequence(),
				"source":     job.Source(),
				"remote_id":  job.RemoteID(),
				"status":     job.Status(),
				"created_at": job.CreatedAt(),
			})
		}
		return r.writeJSON(rows, true)
	}

	if len(jobs) == 0 {
		return r.writePlain("No jobs recorded\n")
	}

	if cmd.String("format") == "markdown" {
		return r.writePlain("%s", formatter.JobsToMarkdown(jobs))
	}
	return r.writePlain("%s", formatter.JobsToText(jobs))
}

// VideoBatch analyzes every video in a directory with the worker pool engine.
func (r *Runner) VideoBatch(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")

	paths, err := tasks.ScanVideoFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return r.writePlain("No video files found in %s\n", dir)
	}

	r.writePlain("Analyzing %d videos from %s\n\n", len(paths), dir)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ScanFiles:
				r.writePlain("📁 %s\n", update.Message)
			case tasks.UploadFile:
				r.writePlain("\r⬆  %s %3.0f%%", update.Message, update.Percent)
			case tasks.AnalyzeFile:
				r.writePlain("\r   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := r.engine.BatchAnalyze(ctx, progressCh, paths, tasks.BatchAnalyzeOpts{
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		Prompt:     cmd.String("prompt"),
	})
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Batch Analysis Complete")
	r.writePlain("%s", formatter.ReportToText(result))
	r.writePlain("Output: %s\n", result.OutputDirectory)

	if reportPath, err := formatter.WriteMarkdownReport(result); err != nil {
		r.logger.Warn("failed to write report", "error", err)
	} else {
		r.writePlain("Report: %s\n", reportPath)
	}

	return nil
}
