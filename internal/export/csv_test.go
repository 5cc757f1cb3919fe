package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/scribelabs/minute/internal/meetings"
	"github.com/scribelabs/minute/internal/tasks"
)

func TestTasks(t *testing.T) {
	due := time.Date(2026, 3, 6, 23, 59, 59, 0, time.UTC)
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	list := []*tasks.Task{
		{
			ID:          "task_aaa",
			MeetingID:   "mtg_bbb",
			Title:       "Send the report, final version",
			Assignee:    "Sarah",
			Priority:    tasks.PriorityHigh,
			Status:      tasks.StatusPending,
			RawDeadline: "by Friday",
			DueAt:       &due,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:        "task_ccc",
			Title:     "Review auth flow",
			Assignee:  "Unassigned",
			Priority:  tasks.PriorityMedium,
			Status:    tasks.StatusCompleted,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	var buf bytes.Buffer
	if err := Tasks(&buf, list); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Task" {
		t.Errorf("unexpected header %v", rows[0])
	}

	// Commas in titles survive the round trip.
	if rows[1][2] != "Send the report, final version" {
		t.Errorf("title = %q", rows[1][2])
	}
	if rows[1][7] != "2026-03-06 23:59:59" {
		t.Errorf("due at = %q", rows[1][7])
	}
	// A task without a due time exports an empty cell, not a zero time.
	if rows[2][7] != "" {
		t.Errorf("empty due expected, got %q", rows[2][7])
	}
}

func TestTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Tasks(&buf, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestMeetings(t *testing.T) {
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	list := []*meetings.Meeting{
		{
			ID:              "mtg_aaa",
			Title:           "Sprint Planning",
			Summary:         "Planned the sprint.\nTwo lines.",
			ModelUsed:       "local",
			TranscriptChars: 1234,
			TaskIDs:         []string{"task_a", "task_b"},
			CreatedAt:       created,
		},
	}

	var buf bytes.Buffer
	if err := Meetings(&buf, list); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1][2] != "Planned the sprint.\nTwo lines." {
		t.Errorf("multiline summary mangled: %q", rows[1][2])
	}
	if rows[1][5] != "2" {
		t.Errorf("task count = %q, want 2", rows[1][5])
	}
}
