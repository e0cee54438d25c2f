package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// ProgressFunc receives upload progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

// progressReader counts bytes handed to the transport and reports them
// against a known total. It is never constructed when the total is
// unknown, so progress is measured, not fabricated.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	mu         sync.Mutex
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.sent += int64(n)
		sent := p.sent
		p.mu.Unlock()
		p.onProgress(100 * float64(sent) / float64(p.total))
	}
	return n, err
}

// upload performs a multipart upload with progress reporting and
// mid-flight cancellation via ctx. Canceling ctx aborts the transfer and
// yields an outcome wrapping [ErrAborted], distinct from a network
// failure. On success the raw response text is returned; the endpoint's
// payload shape is caller-defined.
func (c *Client) upload(ctx context.Context, path string, form *Form, onProgress ProgressFunc) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", abortedOr(ctx, fmt.Errorf("rate limiter: %w", err))
		}
	}

	enc, err := form.encode()
	if err != nil {
		return "", err
	}

	body := enc.reader
	if onProgress != nil && enc.length > 0 {
		body = &progressReader{r: enc.reader, total: enc.length, onProgress: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", enc.contentType)
	if enc.length >= 0 {
		req.ContentLength = enc.length
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", abortedOr(ctx, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.fail(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", abortedOr(ctx, fmt.Errorf("failed to read response: %w", err))
	}

	return string(data), nil
}

// abortedOr maps a failure during a canceled call to the distinguished
// aborted outcome; any other failure passes through unchanged.
func abortedOr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("upload %w", ErrAborted)
	}
	return err
}
