package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestProgressReader(t *testing.T) {
	t.Run("Reports Exact Fractions Of The Total", func(t *testing.T) {
		var percents []float64
		pr := &progressReader{
			r:     strings.NewReader("0123456789"),
			total: 10,
			onProgress: func(p float64) {
				percents = append(percents, p)
			},
		}

		buf := make([]byte, 2)
		for {
			if _, err := pr.Read(buf); err == io.EOF {
				break
			}
		}

		want := []float64{20, 40, 60, 80, 100}
		if len(percents) != len(want) {
			t.Fatalf("expected %d callbacks, got %d: %v", len(want), len(percents), percents)
		}
		for i := range want {
			if percents[i] != want[i] {
				t.Errorf("callback %d: expected %v, got %v", i, want[i], percents[i])
			}
		}
	})

	t.Run("No Callback On Empty Read", func(t *testing.T) {
		calls := 0
		pr := &progressReader{
			r:          strings.NewReader(""),
			total:      1,
			onProgress: func(float64) { calls++ },
		}

		if _, err := pr.Read(make([]byte, 8)); err != io.EOF {
			t.Fatalf("expected EOF, got %v", err)
		}
		if calls != 0 {
			t.Errorf("expected no callbacks, got %d", calls)
		}
	})
}

func TestAnalyzeVideo(t *testing.T) {
	content := bytes.Repeat([]byte("frame"), 4096)

	t.Run("Uploads and Returns Analysis Text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 22); err != nil {
				t.Errorf("expected multipart request: %v", err)
			}
			if got := r.FormValue("prompt"); got != "summarize" {
				t.Errorf("expected prompt field, got %q", got)
			}

			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("expected file part: %v", err)
			}
			defer file.Close()

			if header.Filename != "clip.mp4" {
				t.Errorf("expected filename clip.mp4, got %s", header.Filename)
			}
			data, _ := io.ReadAll(file)
			if !bytes.Equal(data, content) {
				t.Errorf("uploaded content mismatch: %d bytes vs %d", len(data), len(content))
			}

			fmt.Fprint(w, `{"summary": "a video"}`)
		}))
		defer server.Close()

		client := New(Opts{BaseURL: server.URL})
		analysis, err := client.AnalyzeVideo(context.Background(), AnalyzeRequest{
			Filename:    "clip.mp4",
			ContentType: "video/mp4",
			Content:     content,
			Prompt:      "summarize",
		}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if analysis != `{"summary": "a video"}` {
			t.Errorf("expected raw response text, got %q", analysis)
		}
	})

	t.Run("Progress Ends At One Hundred", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			fmt.Fprint(w, "ok")
		}))
		defer server.Close()

		var mu sync.Mutex
		var percents []float64

		client := New(Opts{BaseURL: server.URL})
		_, err := client.AnalyzeVideo(context.Background(), AnalyzeRequest{
			Filename: "clip.mp4",
			Content:  content,
		}, func(p float64) {
			mu.Lock()
			percents = append(percents, p)
			mu.Unlock()
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if len(percents) == 0 {
			t.Fatal("expected progress callbacks with a known total")
		}
		for i := 1; i < len(percents); i++ {
			if percents[i] < percents[i-1] {
				t.Errorf("expected monotonic progress, got %v before %v", percents[i-1], percents[i])
			}
		}
		if last := percents[len(percents)-1]; last != 100 {
			t.Errorf("expected final callback at 100, got %v", last)
		}
	})

	t.Run("Unknown Total Disables Progress", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			fmt.Fprint(w, "ok")
		}))
		defer server.Close()

		calls := 0
		client := New(Opts{BaseURL: server.URL})
		_, err := client.AnalyzeVideo(context.Background(), AnalyzeRequest{
			Filename: "clip.mp4",
			Reader:   bytes.NewReader(content),
		}, func(float64) { calls++ })
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 0 {
			t.Errorf("expected no progress callbacks for streamed upload, got %d", calls)
		}
	})

	t.Run("Cancellation Is Aborted, Not A Network Failure", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)

		client := New(Opts{BaseURL: server.URL})
		_, err := client.AnalyzeVideo(ctx, AnalyzeRequest{
			Filename: "clip.mp4",
			Content:  content,
		}, nil)

		if !IsAborted(err) {
			t.Fatalf("expected aborted outcome, got %v", err)
		}
		if IsNetwork(err) || IsCredential(err) || IsGeneric(err) {
			t.Error("expected cancellation to match no failure category")
		}
	})

	t.Run("Error Status Maps To Category", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := New(Opts{BaseURL: server.URL})
		client.Session().SetToken("stale", nil)

		_, err := client.AnalyzeVideo(context.Background(), AnalyzeRequest{
			Filename: "clip.mp4",
			Content:  content,
		}, nil)

		if !IsCredential(err) {
			t.Fatalf("expected credential error, got %v", err)
		}
		if client.Session().Authenticated() {
			t.Error("expected session to be cleared")
		}
	})

	t.Run("Missing Content Rejected Locally", func(t *testing.T) {
		client := New(Opts{})
		if _, err := client.AnalyzeVideo(context.Background(), AnalyzeRequest{Filename: "x.mp4"}, nil); err == nil {
			t.Error("expected error for missing content")
		}
	})
}

func TestSubmitVideo(t *testing.T) {
	t.Run("Submits URL and Decodes Receipt", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/video/submit" {
				t.Errorf("expected submit path, got %s", r.URL.Path)
			}
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("expected multipart request: %v", err)
			}
			if got := r.FormValue("url"); got != "https://example.com/v.mp4" {
				t.Errorf("expected url field, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]string{"job_id": "j-9", "status": "queued"})
		}))
		defer server.Close()

		client := New(Opts{BaseURL: server.URL})
		receipt, err := client.SubmitVideo(context.Background(), "https://example.com/v.mp4")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if receipt.JobID != "j-9" || receipt.Status != "queued" {
			t.Errorf("unexpected receipt: %+v", receipt)
		}
	})

	t.Run("Empty URL Rejected Locally", func(t *testing.T) {
		client := New(Opts{})
		if _, err := client.SubmitVideo(context.Background(), ""); err == nil {
			t.Error("expected error for empty URL")
		}
	})
}
