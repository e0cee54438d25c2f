package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// Stream is a lazy, single-pass sequence of text fragments decoded from a
// chunked response body. It is non-seekable and cannot be restarted; a
// caller that needs the sequence again must re-issue the request.
//
// Fragments are decoded with a stateful incremental UTF-8 decoder: a
// multi-byte character split across two network reads is held back until
// its remaining bytes arrive, so fragment boundaries never corrupt text.
type Stream struct {
	body    io.ReadCloser
	buf     []byte
	pending []byte // trailing bytes of an incomplete UTF-8 sequence
	done    bool
}

// stream submits a multipart request whose response is an indefinite
// sequence of text chunks. It fails before yielding anything when the
// response status is non-success or the response carries no body.
//
// Cancellation is not supported at this layer; a caller that stops
// consuming simply closes the stream and lets the transport drain.
func (c *Client) stream(ctx context.Context, path string, form *Form) (*Stream, error) {
	resp, err := c.send(ctx, http.MethodPost, path, form)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.fail(resp)
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, &Error{
			Kind:    KindNetwork,
			Status:  resp.StatusCode,
			Message: "response carries no body",
		}
	}

	return &Stream{body: resp.Body, buf: make([]byte, 4096)}, nil
}

// Recv returns the next text fragment. It returns io.EOF when the
// underlying transport signals end-of-stream; there is no in-band
// termination sentinel.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for {
		n, err := s.body.Read(s.buf)
		if n > 0 {
			chunk := append(s.pending, s.buf[:n]...)
			complete := completePrefix(chunk)
			s.pending = append([]byte(nil), chunk[complete:]...)
			if complete > 0 {
				return string(chunk[:complete]), nil
			}
			// Only partial bytes of one character so far; keep reading.
			continue
		}

		if err == io.EOF {
			s.done = true
			s.body.Close()
			if len(s.pending) > 0 {
				// Truncated trailing sequence: surface the raw bytes rather
				// than dropping them silently.
				text := string(s.pending)
				s.pending = nil
				return text, nil
			}
			return "", io.EOF
		}
		if err != nil {
			s.done = true
			s.body.Close()
			return "", fmt.Errorf("stream read failed: %w", err)
		}
	}
}

// Close releases the underlying connection. Safe to call more than once.
func (s *Stream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}

// completePrefix returns the length of the longest prefix of b that does
// not end in the middle of a multi-byte UTF-8 sequence.
func completePrefix(b []byte) int {
	n := len(b)
	for i := n - 1; i >= 0 && n-i <= utf8.UTFMax; i-- {
		c := b[i]
		if c < utf8.RuneSelf {
			// ASCII byte: everything up to the end is complete.
			return n
		}
		if c >= 0xC0 {
			// Start byte of a multi-byte sequence.
			if need := seqLen(c); n-i < need {
				return i
			}
			return n
		}
		// Continuation byte; keep scanning backwards.
	}
	return n
}

// seqLen returns the expected byte length of a UTF-8 sequence beginning
// with start. Invalid start bytes count as length 1 so they pass through.
func seqLen(start byte) int {
	switch {
	case start >= 0xF0:
		return 4
	case start >= 0xE0:
		return 3
	case start >= 0xC0:
		return 2
	default:
		return 1
	}
}
