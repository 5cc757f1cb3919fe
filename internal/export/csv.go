// Package export renders tasks and meetings as CSV for spreadsheets and
// downstream tooling.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/scribelabs/minute/internal/meetings"
	"github.com/scribelabs/minute/internal/tasks"
)

const timeLayout = "2006-01-02 15:04:05"

var taskHeader = []string{"ID", "Meeting", "Task", "Assignee", "Priority", "Status", "Deadline", "Due At", "Context", "Created At", "Updated At"}

// Tasks writes the task list as CSV, header included.
func Tasks(w io.Writer, list []*tasks.Task) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(taskHeader); err != nil {
		return fmt.Errorf("export tasks: %w", err)
	}
	for _, t := range list {
		row := []string{
			t.ID,
			t.MeetingID,
			t.Title,
			t.Assignee,
			string(t.Priority),
			string(t.Status),
			t.RawDeadline,
			formatDue(t.DueAt),
			t.Context,
			t.CreatedAt.Format(timeLayout),
			t.UpdatedAt.Format(timeLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export tasks: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var meetingHeader = []string{"ID", "Title", "Summary", "Model", "Transcript Chars", "Tasks", "Created At"}

// Meetings writes the meeting list as CSV, header included.
func Meetings(w io.Writer, list []*meetings.Meeting) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(meetingHeader); err != nil {
		return fmt.Errorf("export meetings: %w", err)
	}
	for _, m := range list {
		row := []string{
			m.ID,
			m.Title,
			m.Summary,
			m.ModelUsed,
			strconv.Itoa(m.TranscriptChars),
			strconv.Itoa(len(m.TaskIDs)),
			m.CreatedAt.Format(timeLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export meetings: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}
