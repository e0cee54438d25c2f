package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nocturnedev/lantern/internal/models"
)

// AnalyzeRequest describes a video upload for POST /api/video/analyze.
type AnalyzeRequest struct {
	Filename    string
	ContentType string
	Content     []byte    // buffered file content; total size known, progress enabled
	Reader      io.Reader // streamed alternative; total size unknown, progress disabled
	Prompt      string    // optional analysis instruction
}

// AnalyzeVideo uploads a video for analysis, reporting progress through
// onProgress while the total upload size is known. Canceling ctx aborts
// the transfer with an [ErrAborted] outcome. The result is the raw
// response text; its shape is defined by the analysis backend, so parsing
// is left to the caller.
func (c *Client) AnalyzeVideo(ctx context.Context, req AnalyzeRequest, onProgress ProgressFunc) (string, error) {
	if req.Content == nil && req.Reader == nil {
		return "", fmt.Errorf("video content is required")
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}

	form := NewForm()
	if req.Prompt != "" {
		form.Text("prompt", req.Prompt)
	}
	if req.Content != nil {
		form.File("file", req.Filename, contentType, req.Content)
	} else {
		form.FileReader("file", req.Filename, contentType, req.Reader)
	}

	return c.upload(ctx, "/api/video/analyze", form, onProgress)
}

// SubmitVideo submits a URL-sourced video job via POST /api/video/submit.
func (c *Client) SubmitVideo(ctx context.Context, sourceURL string) (*models.SubmitReceipt, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("video URL is required")
	}

	form := NewForm().Text("url", sourceURL)

	var receipt models.SubmitReceipt
	if err := c.do(ctx, http.MethodPost, "/api/video/submit", form, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
