// package formatter provides functions to render job listings and batch
// analysis results to various formats (Markdown, plain text)
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/tasks"
)

// JobsToText renders a job listing as aligned plain text, newest first.
func JobsToText(jobs []*models.VideoJob) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Jobs: %d\n\n", len(jobs)))
	for _, job := range jobs {
		remote := job.RemoteID()
		if remote == "" {
			remote = "-"
		}
		buf.WriteString(fmt.Sprintf("%4d  %-10s  %-12s  %s\n", job.Sequence(), job.Status(), remote, job.Source()))
	}

	return buf.Bytes()
}

// JobsToMarkdown renders a job listing as a Markdown table.
func JobsToMarkdown(jobs []*models.VideoJob) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Analysis Jobs\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", len(jobs)))
	buf.WriteString("| # | Status | Remote ID | Source | Submitted |\n")
	buf.WriteString("|---|--------|-----------|--------|-----------|\n")
	for _, job := range jobs {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			job.Sequence(), job.Status(), job.RemoteID(), job.Source(),
			job.CreatedAt().Format("2006-01-02 15:04")))
	}

	return buf.Bytes()
}

// ReportToMarkdown renders a batch analysis result as a Markdown summary.
func ReportToMarkdown(result *tasks.BatchAnalyzeResult) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Batch Analysis Report\n\n")
	buf.WriteString(fmt.Sprintf("**Files**: %d\n", result.TotalFiles))
	buf.WriteString(fmt.Sprintf("**Succeeded**: %d\n", result.Succeeded))
	buf.WriteString(fmt.Sprintf("**Failed**: %d\n\n", result.Failed))

	buf.WriteString("## Results\n\n")
	for i, res := range result.Results {
		if res.Success {
			buf.WriteString(fmt.Sprintf("%d. ✓ %s → %s\n", i+1, filepath.Base(res.Path), res.OutputPath))
		} else {
			buf.WriteString(fmt.Sprintf("%d. ✗ %s: %v\n", i+1, filepath.Base(res.Path), res.Error))
		}
	}

	return buf.Bytes()
}

// ReportToText renders a batch analysis result as plain text.
func ReportToText(result *tasks.BatchAnalyzeResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Analyzed: %d files (%d succeeded, %d failed)\n\n",
		result.TotalFiles, result.Succeeded, result.Failed))
	for _, res := range result.Results {
		if res.Success {
			buf.WriteString(fmt.Sprintf("  ok    %s\n", res.Path))
		} else {
			buf.WriteString(fmt.Sprintf("  fail  %s (%v)\n", res.Path, res.Error))
		}
	}

	return buf.Bytes()
}

// WriteMarkdownReport writes the batch summary as README.md in the batch
// output directory and returns the file path.
func WriteMarkdownReport(result *tasks.BatchAnalyzeResult) (string, error) {
	if err := os.MkdirAll(result.OutputDirectory, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdFile := filepath.Join(result.OutputDirectory, "README.md")
	if err := os.WriteFile(mdFile, ReportToMarkdown(result), 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}
