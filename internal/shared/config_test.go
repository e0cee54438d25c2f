package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("expected default base URL, got %s", config.Server.BaseURL)
	}
	if config.Database.Path != "lantern.db" {
		t.Errorf("expected default database path, got %s", config.Database.Path)
	}
	if config.Chat.Model == "" {
		t.Error("expected a default chat model")
	}
	if config.Video.Workers != 3 {
		t.Errorf("expected 3 default workers, got %d", config.Video.Workers)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Parses TOML File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[server]
base_url = "https://dash.example.com"
rate_limit = 2.5

[database]
path = "/tmp/test.db"
max_open_conns = 10

[chat]
model = "claude-sonnet"
temperature = 0.2
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Server.BaseURL != "https://dash.example.com" {
			t.Errorf("expected parsed base URL, got %s", config.Server.BaseURL)
		}
		if config.Server.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Server.RateLimit)
		}
		if config.Chat.Model != "claude-sonnet" {
			t.Errorf("expected parsed model, got %s", config.Chat.Model)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/does/not/exist.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("[server\nbase_url"), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Writes Template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read created config: %v", err)
		}
		if !strings.Contains(string(data), "[server]") {
			t.Error("expected template to contain server section")
		}

		// The template must itself be loadable.
		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected template to parse, got %v", err)
		}
		if config.Server.BaseURL == "" {
			t.Error("expected template base URL")
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("existing"), 0644)

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
