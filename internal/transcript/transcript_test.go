package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Txt(t *testing.T) {
	path := writeFile(t, "meeting.txt", "Alice: hello\nBob: hi")
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Alice: hello\nBob: hi" {
		t.Errorf("got %q", got)
	}
}

func TestLoad_JSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"transcript key", `{"transcript": "the text"}`, "the text"},
		{"text key", `{"text": "the text"}`, "the text"},
		{"content key", `{"content": "the text"}`, "the text"},
		{"bare string", `"the text"`, "the text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "meeting.json", tt.content)
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_JSONSegments(t *testing.T) {
	content := `[
		{"speaker": "Alice", "text": "let's start"},
		{"speaker": "Bob", "text": "I'll send the report by Friday"},
		"closing remarks"
	]`
	path := writeFile(t, "meeting.json", content)

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := "Alice: let's start\nBob: I'll send the report by Friday\nclosing remarks"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_JSONMissingTextField(t *testing.T) {
	path := writeFile(t, "meeting.json", `{"title": "standup"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for object without a text field")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeFile(t, "meeting.json", `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/meeting.txt")
	if err == nil || !strings.Contains(err.Error(), "read transcript") {
		t.Fatalf("expected read error, got %v", err)
	}
}
