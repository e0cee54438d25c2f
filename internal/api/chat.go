package api

import (
	"context"
	"fmt"

	"github.com/nocturnedev/lantern/internal/models"
)

// Attachment is a file carried alongside a chat message or video request.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ChatRequest describes one chat turn sent to POST /api/chat.
type ChatRequest struct {
	Model      string
	Message    string
	Attachment *Attachment         // optional file for the model to consider
	Options    *models.ChatOptions // optional per-request tuning, sent as a JSON part
}

// Chat submits a chat turn and returns the incremental response stream.
// The request is always multipart since it may carry an attachment. The
// caller consumes fragments via [Stream.Recv], concatenating them into the
// growing assistant message, and must Close the stream when done.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*Stream, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("chat message is required")
	}

	form := NewForm().
		Text("model", req.Model).
		Text("message", req.Message).
		JSON("config", req.Options)

	if req.Attachment != nil {
		form.File("file", req.Attachment.Filename, req.Attachment.ContentType, req.Attachment.Content)
	}

	return c.stream(ctx, "/api/chat", form)
}
