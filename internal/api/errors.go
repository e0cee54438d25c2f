package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrAborted marks an upload canceled by the caller. It is an outcome, not a
// failure category: callers present it as a cancellation, never as an error
// from the backend.
var ErrAborted = errors.New("aborted by user")

// Kind categorizes a failed request by its HTTP status.
type Kind int

const (
	// KindNetwork covers every non-success status without a more specific
	// mapping (404, 500, 502, 503, 504, ...), plus transport failures.
	KindNetwork Kind = iota
	// KindCredential covers 401 and 403; re-authentication is required.
	KindCredential
	// KindGeneric covers 400; the caller's input was the problem.
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindGeneric:
		return "generic"
	default:
		return "network"
	}
}

// Error is a typed failure derived from an HTTP response.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s (status %d)", e.Kind, e.Message, e.Status)
}

// classify maps an HTTP status to an error Kind. The mapping is total:
// every non-success status lands in exactly one category.
func classify(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindCredential
	case http.StatusBadRequest:
		return KindGeneric
	default:
		return KindNetwork
	}
}

// statusError builds an *Error for a non-success response, preferring the
// server-provided message over the HTTP status text.
func statusError(status int, body io.Reader) *Error {
	msg := serverMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", status)
	}
	return &Error{Kind: classify(status), Status: status, Message: msg}
}

// serverMessage extracts a human-readable message from an error response
// body. Backends vary between {"error": ...}, {"message": ...} and
// {"detail": ...}; a non-JSON body is used verbatim when short.
func serverMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 8<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil {
		for _, m := range []string{parsed.Error, parsed.Message, parsed.Detail} {
			if m != "" {
				return m
			}
		}
		return ""
	}

	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		return ""
	}
	return text
}

// IsCredential reports whether err is a credential-category API error.
func IsCredential(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindCredential
}

// IsGeneric reports whether err is a generic-category API error.
func IsGeneric(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindGeneric
}

// IsNetwork reports whether err is a network-category API error.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsAborted reports whether err represents a user-initiated cancellation.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
