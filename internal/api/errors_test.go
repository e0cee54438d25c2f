package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Run("Credential Statuses", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			if kind := classify(status); kind != KindCredential {
				t.Errorf("expected %d to classify as credential, got %s", status, kind)
			}
		}
	})

	t.Run("Generic Status", func(t *testing.T) {
		if kind := classify(http.StatusBadRequest); kind != KindGeneric {
			t.Errorf("expected 400 to classify as generic, got %s", kind)
		}
	})

	t.Run("Everything Else Is Network", func(t *testing.T) {
		for _, status := range []int{404, 405, 409, 418, 429, 500, 502, 503, 504} {
			if kind := classify(status); kind != KindNetwork {
				t.Errorf("expected %d to classify as network, got %s", status, kind)
			}
		}
	})
}

func TestStatusError(t *testing.T) {
	t.Run("Prefers Server Error Field", func(t *testing.T) {
		err := statusError(400, strings.NewReader(`{"error": "model is required"}`))
		if err.Message != "model is required" {
			t.Errorf("expected server message, got %q", err.Message)
		}
		if err.Kind != KindGeneric {
			t.Errorf("expected generic kind, got %s", err.Kind)
		}
	})

	t.Run("Falls Back Through Message and Detail", func(t *testing.T) {
		err := statusError(500, strings.NewReader(`{"message": "internal failure"}`))
		if err.Message != "internal failure" {
			t.Errorf("expected message field, got %q", err.Message)
		}

		err = statusError(500, strings.NewReader(`{"detail": "worker crashed"}`))
		if err.Message != "worker crashed" {
			t.Errorf("expected detail field, got %q", err.Message)
		}
	})

	t.Run("Uses Short Plain Text Body Verbatim", func(t *testing.T) {
		err := statusError(503, strings.NewReader("backend warming up"))
		if err.Message != "backend warming up" {
			t.Errorf("expected plain text body, got %q", err.Message)
		}
	})

	t.Run("Falls Back To Status Text", func(t *testing.T) {
		err := statusError(404, strings.NewReader(""))
		if err.Message != "Not Found" {
			t.Errorf("expected status text, got %q", err.Message)
		}
	})

	t.Run("Ignores Long Plain Text Body", func(t *testing.T) {
		err := statusError(502, strings.NewReader(strings.Repeat("x", 500)))
		if err.Message != "Bad Gateway" {
			t.Errorf("expected status text for oversized body, got %q", err.Message)
		}
	})

	t.Run("Nil Body", func(t *testing.T) {
		err := statusError(401, nil)
		if err.Message != "Unauthorized" {
			t.Errorf("expected status text, got %q", err.Message)
		}
		if err.Kind != KindCredential {
			t.Errorf("expected credential kind, got %s", err.Kind)
		}
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Run("Match Wrapped Errors", func(t *testing.T) {
		base := &Error{Kind: KindCredential, Status: 401, Message: "Unauthorized"}
		wrapped := fmt.Errorf("profile: %w", base)

		if !IsCredential(wrapped) {
			t.Error("expected wrapped error to match credential")
		}
		if IsGeneric(wrapped) || IsNetwork(wrapped) {
			t.Error("expected wrapped error to match exactly one category")
		}
	})

	t.Run("Aborted Is Not A Category", func(t *testing.T) {
		err := fmt.Errorf("upload %w", ErrAborted)
		if !IsAborted(err) {
			t.Error("expected aborted outcome to match IsAborted")
		}
		if IsNetwork(err) || IsCredential(err) || IsGeneric(err) {
			t.Error("expected aborted outcome to match no failure category")
		}
	})

	t.Run("Plain Errors Match Nothing", func(t *testing.T) {
		err := errors.New("dial tcp: connection refused")
		if IsCredential(err) || IsGeneric(err) || IsNetwork(err) || IsAborted(err) {
			t.Error("expected plain error to match no category")
		}
	})
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: KindGeneric, Status: 400, Message: "bad input"}
	want := "generic error: bad input (status 400)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
