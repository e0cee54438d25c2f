package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8080"

// Client talks to the Lantern dashboard backend. All request modes share
// one http.Client, so cancellation and progress both ride on the standard
// transport. Concurrent requests issued by the caller are independent: the
// client imposes no ordering or mutual exclusion between them, and never
// retries on its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	limiter    *rate.Limiter
}

// Opts contains configuration options for creating a Client.
type Opts struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
	// RequestsPerSecond bounds outgoing request rate; zero disables limiting.
	RequestsPerSecond float64
}

// New creates a Client for the backend at opts.BaseURL.
func New(opts Opts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Session == nil {
		opts.Session, _ = NewSession(nil)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		session:    opts.Session,
		limiter:    limiter,
	}
}

// Session returns the session owned by this client.
func (c *Client) Session() *Session {
	return c.session
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest builds an HTTP request with the encoded body and the bearer
// token header when a token is present.
func (c *Client) newRequest(ctx context.Context, method, path string, body Body) (*http.Request, error) {
	var enc *encoded
	if body != nil {
		var err error
		if enc, err = body.encode(); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if enc != nil {
		reader = enc.reader
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if enc != nil {
		req.Header.Set("Content-Type", enc.contentType)
		if enc.length >= 0 {
			req.ContentLength = enc.length
		}
	}

	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// fail converts a non-success response into a typed *Error. A
// credential-category failure clears the local session token so the next
// request starts unauthenticated without another round trip.
func (c *Client) fail(resp *http.Response) error {
	apiErr := statusError(resp.StatusCode, resp.Body)
	if apiErr.Kind == KindCredential {
		// Best effort: losing the stale token matters more than the store write.
		_ = c.session.Clear()
	}
	return apiErr
}

// do performs one request/response cycle, decoding a JSON response into
// out when out is non-nil. A 204 response is success with no payload: out
// is left untouched and no parse is attempted.
func (c *Client) do(ctx context.Context, method, path string, body Body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doText performs one request/response cycle and returns the raw response
// text, for endpoints whose payload shape is caller-defined.
func (c *Client) doText(ctx context.Context, method, path string, body Body) (string, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.fail(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return "", nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}

// send issues the request after waiting on the client rate limiter.
func (c *Client) send(ctx context.Context, method, path string, body Body) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
