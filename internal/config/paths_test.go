package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMinutePath_Default(t *testing.T) {
	t.Setenv("MINUTE_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := MinutePath()
	want := filepath.Join(home, ".minute")
	if got != want {
		t.Errorf("MinutePath() = %q, want %q", got, want)
	}
}

func TestMinutePath_EnvOverride(t *testing.T) {
	t.Setenv("MINUTE_PATH", "/tmp/custom-minute")

	got := MinutePath()
	want := "/tmp/custom-minute"
	if got != want {
		t.Errorf("MinutePath() = %q, want %q", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("MINUTE_PATH", "/tmp/test-minute")

	got := ConfigPath()
	want := "/tmp/test-minute/config.jsonc"
	if got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestDotenvPath(t *testing.T) {
	t.Setenv("MINUTE_PATH", "/tmp/test-minute")

	got := DotenvPath()
	want := "/tmp/test-minute/.env"
	if got != want {
		t.Errorf("DotenvPath() = %q, want %q", got, want)
	}
}
