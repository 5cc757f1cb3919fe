package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `{
	// This is a JSONC comment
	"storage": {
		"driver": "sqlite",
		"path": "/tmp/minute-test/minute.db"
	},
	"models": {
		"default": "gpt",
		"providers": {
			"gpt": {
				"driver": "openai",
				"model": "gpt-4o-mini",
				"auth": {
					"api_key": "${{ .Env.OPENAI_API_KEY }}"
				},
				"max_tokens": 4096,
				"timeout": "90s"
			}
		}
	},
	"reminder": {
		"interval": "10s",
		"sweep_spec": "30 8 * * *"
	}
}`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "test-key-123")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("expected driver sqlite, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "/tmp/minute-test/minute.db" {
		t.Errorf("unexpected storage path %s", cfg.Storage.Path)
	}
	if cfg.Models.Default != "gpt" {
		t.Errorf("expected default gpt, got %s", cfg.Models.Default)
	}

	p, ok := cfg.Models.Providers["gpt"]
	if !ok {
		t.Fatal("expected gpt provider")
	}
	if p.Auth.APIKey != "test-key-123" {
		t.Errorf("expected api_key test-key-123, got %s", p.Auth.APIKey)
	}
	if p.MaxTokens != 4096 {
		t.Errorf("expected max_tokens 4096, got %d", p.MaxTokens)
	}
	if p.Timeout.Duration() != 90*time.Second {
		t.Errorf("expected timeout 90s, got %v", p.Timeout.Duration())
	}

	if cfg.Reminder.Interval.Duration() != 10*time.Second {
		t.Errorf("expected interval 10s, got %v", cfg.Reminder.Interval.Duration())
	}
	if cfg.Reminder.SweepSpec != "30 8 * * *" {
		t.Errorf("unexpected sweep_spec %q", cfg.Reminder.SweepSpec)
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `{}`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MINUTE_PATH", "/tmp/test-minute")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Storage.Driver != "file" {
		t.Errorf("expected default driver file, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "/tmp/test-minute/data" {
		t.Errorf("unexpected default storage path %s", cfg.Storage.Path)
	}
	if cfg.Reminder.Interval.Duration() != 30*time.Second {
		t.Errorf("expected default interval 30s, got %v", cfg.Reminder.Interval.Duration())
	}
	if cfg.Reminder.ExpireAfter.Duration() != 7*24*time.Hour {
		t.Errorf("expected default expire_after 7d, got %v", cfg.Reminder.ExpireAfter.Duration())
	}
	if cfg.Events.BufferSize != 1024 {
		t.Errorf("expected default buffer 1024, got %d", cfg.Events.BufferSize)
	}
	if cfg.Summary.MaxTranscriptChars != 24000 {
		t.Errorf("expected default max_transcript_chars 24000, got %d", cfg.Summary.MaxTranscriptChars)
	}
	if _, ok := cfg.Models.Providers["local"]; !ok {
		t.Error("expected default local provider")
	}
}

func TestLoadDefaults_SqliteDriverPath(t *testing.T) {
	content := `{"storage": {"driver": "sqlite"}}`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MINUTE_PATH", "/tmp/test-minute")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Storage.Path != "/tmp/test-minute/minute.db" {
		t.Errorf("unexpected sqlite default path %s", cfg.Storage.Path)
	}
}

func TestExpandEnvTemplates(t *testing.T) {
	t.Setenv("TEST_KEY", "my-secret")
	result := expandEnvTemplates(`{"key": "${{ .Env.TEST_KEY }}"}`)
	expected := `{"key": "my-secret"}`
	if result != expected {
		t.Errorf("expected %s, got %s", expected, result)
	}
}
