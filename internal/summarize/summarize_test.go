package summarize

import (
	"strings"
	"testing"
)

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := buildSummaryPrompt("Alice: let's ship Friday.", "Sprint Planning")

	for _, want := range []string{
		"Meeting: Sprint Planning",
		"Alice: let's ship Friday.",
		"200-300 words",
		"Summary:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("summary prompt missing %q", want)
		}
	}
}

func TestBuildSummaryPrompt_NoTitle(t *testing.T) {
	prompt := buildSummaryPrompt("text", "")
	if strings.Contains(prompt, "Meeting: ") {
		t.Error("untitled meeting should not emit a title line")
	}
}

func TestBuildActionItemsPrompt(t *testing.T) {
	prompt := buildActionItemsPrompt("Bob: I'll update the docs by Friday.", "Docs need updating.")

	for _, want := range []string{
		"Meeting Summary: Docs need updating.",
		"Bob: I'll update the docs by Friday.",
		`"task"`,
		`"assignee"`,
		`"deadline"`,
		`"priority"`,
		"empty array: []",
		"Action Items:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("action items prompt missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("line of transcript text\n", 100)

	got, truncated := truncate(long, 500)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if len(got) > 500+len("\n... (truncated)") {
		t.Errorf("truncated length %d exceeds limit", len(got))
	}
	if !strings.HasSuffix(got, "... (truncated)") {
		t.Errorf("missing truncation marker: %q", got[len(got)-30:])
	}

	short := "short transcript"
	got, truncated = truncate(short, 500)
	if truncated || got != short {
		t.Errorf("short input must pass through unchanged, got %q", got)
	}
}

func TestTruncate_CutsAtLineBoundary(t *testing.T) {
	in := strings.Repeat("aaaa bbbb cccc dddd\n", 50)
	got, _ := truncate(in, 300)
	body := strings.TrimSuffix(got, "\n... (truncated)")
	if strings.Count(body, "\n") == 0 {
		t.Fatal("expected multi-line truncated body")
	}
	lines := strings.Split(body, "\n")
	last := lines[len(lines)-1]
	if last != "aaaa bbbb cccc dddd" && last != "" {
		t.Errorf("cut mid-line: %q", last)
	}
}
