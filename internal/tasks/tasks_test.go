package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nocturnedev/lantern/internal/api"
)

type mockAnalyzer struct {
	mu         sync.Mutex
	calls      []api.AnalyzeRequest
	analysis   string
	analyzeErr error
	failFor    string // filename that should fail, empty for none
	progress   []float64
}

func (m *mockAnalyzer) AnalyzeVideo(ctx context.Context, req api.AnalyzeRequest, onProgress api.ProgressFunc) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if onProgress != nil {
		for _, p := range m.progress {
			onProgress(p)
		}
	}

	if m.analyzeErr != nil {
		return "", m.analyzeErr
	}
	if m.failFor != "" && req.Filename == m.failFor {
		return "", errors.New("analysis rejected")
	}
	return m.analysis, nil
}

func (m *mockAnalyzer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// writeVideos creates empty video files and returns their paths.
func writeVideos(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("frames"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestBatchAnalyze(t *testing.T) {
	t.Run("Analyzes Every File", func(t *testing.T) {
		dir := t.TempDir()
		paths := writeVideos(t, dir, "a.mp4", "b.mp4", "c.mp4")

		analyzer := &mockAnalyzer{analysis: `{"summary": "ok"}`}
		engine := NewEngine(analyzer)

		result, err := engine.BatchAnalyze(context.Background(), nil, paths, BatchAnalyzeOpts{
			OutputDir: filepath.Join(dir, "out"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Succeeded != 3 || result.Failed != 0 {
			t.Errorf("expected 3 successes, got %d/%d", result.Succeeded, result.Failed)
		}
		if analyzer.callCount() != 3 {
			t.Errorf("expected 3 analyzer calls, got %d", analyzer.callCount())
		}

		for _, res := range result.Results {
			data, err := os.ReadFile(res.OutputPath)
			if err != nil {
				t.Errorf("expected analysis file for %s: %v", res.Path, err)
				continue
			}
			if string(data) != `{"summary": "ok"}` {
				t.Errorf("unexpected analysis content: %s", data)
			}
		}
	})

	t.Run("Partial Failure Does Not Stop The Batch", func(t *testing.T) {
		dir := t.TempDir()
		paths := writeVideos(t, dir, "good.mp4", "bad.mp4")

		analyzer := &mockAnalyzer{analysis: "ok", failFor: "bad.mp4"}
		engine := NewEngine(analyzer)

		result, err := engine.BatchAnalyze(context.Background(), nil, paths, BatchAnalyzeOpts{
			OutputDir: filepath.Join(dir, "out"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Succeeded != 1 || result.Failed != 1 {
			t.Errorf("expected 1 success and 1 failure, got %d/%d", result.Succeeded, result.Failed)
		}
		for _, res := range result.Results {
			if strings.HasSuffix(res.Path, "bad.mp4") && res.Error == nil {
				t.Error("expected error recorded for failing file")
			}
		}
	})

	t.Run("Emits Progress Updates", func(t *testing.T) {
		dir := t.TempDir()
		paths := writeVideos(t, dir, "a.mp4")

		analyzer := &mockAnalyzer{analysis: "ok", progress: []float64{50, 100}}
		engine := NewEngine(analyzer)

		prog := make(chan ProgressUpdate, 50)
		_, err := engine.BatchAnalyze(context.Background(), prog, paths, BatchAnalyzeOpts{
			OutputDir: filepath.Join(dir, "out"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(prog)

		var phases []Phase
		for update := range prog {
			phases = append(phases, update.Phase)
		}

		if len(phases) == 0 || phases[0] != ScanFiles {
			t.Errorf("expected scan update first, got %v", phases)
		}

		var sawUpload, sawAnalyzed bool
		for _, phase := range phases {
			if phase == UploadFile {
				sawUpload = true
			}
			if phase == AnalyzeFile {
				sawAnalyzed = true
			}
		}
		if !sawUpload || !sawAnalyzed {
			t.Errorf("expected upload and analyze phases, got %v", phases)
		}
	})

	t.Run("No Files", func(t *testing.T) {
		engine := NewEngine(&mockAnalyzer{})
		if _, err := engine.BatchAnalyze(context.Background(), nil, nil, BatchAnalyzeOpts{}); err == nil {
			t.Error("expected error for empty path list")
		}
	})

	t.Run("Nil Analyzer", func(t *testing.T) {
		engine := NewEngine(nil)
		if _, err := engine.BatchAnalyze(context.Background(), nil, []string{"a.mp4"}, BatchAnalyzeOpts{}); err == nil {
			t.Error("expected error for missing analyzer")
		}
	})
}

func TestScanVideoFiles(t *testing.T) {
	t.Run("Picks Up Video Extensions Only", func(t *testing.T) {
		dir := t.TempDir()
		writeVideos(t, dir, "a.mp4", "b.MOV", "c.webm", "notes.txt", "d.mkv")
		os.Mkdir(filepath.Join(dir, "nested.mp4"), 0755)

		paths, err := ScanVideoFiles(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(paths) != 4 {
			t.Errorf("expected 4 videos, got %d: %v", len(paths), paths)
		}
		for _, path := range paths {
			if strings.HasSuffix(path, ".txt") {
				t.Errorf("expected non-video files to be skipped, got %s", path)
			}
		}
	})

	t.Run("Missing Directory", func(t *testing.T) {
		if _, err := ScanVideoFiles("/does/not/exist"); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"clip.mp4":  "video/mp4",
		"clip.MOV":  "video/quicktime",
		"clip.mkv":  "video/x-matroska",
		"clip.webm": "video/webm",
		"clip.avi":  "video/x-msvideo",
		"clip.bin":  "application/octet-stream",
	}

	for path, want := range cases {
		if got := ContentTypeFor(path); got != want {
			t.Errorf("ContentTypeFor(%s) = %s, want %s", path, got, want)
		}
	}
}
