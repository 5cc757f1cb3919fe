package meetings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scribelabs/minute/internal/deadline"
	"github.com/scribelabs/minute/internal/events"
	"github.com/scribelabs/minute/internal/extract"
	"github.com/scribelabs/minute/internal/reminder"
	"github.com/scribelabs/minute/internal/summarize"
	"github.com/scribelabs/minute/internal/tasks"
)

// Summarizer is the model collaborator the pipeline depends on.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, meetingTitle string) (*summarize.Result, error)
	ExtractActionItems(ctx context.Context, transcript, summary string) (string, error)
}

// Registrar receives schedule entries for newly created tasks.
type Registrar interface {
	Register(taskID string, fireAt time.Time)
}

// TaskFailure records one action item that could not be persisted. The
// pipeline keeps going; failures are reported, never silently dropped.
type TaskFailure struct {
	Title string
	Err   error
}

// ProcessResult is the outcome of one pipeline run.
type ProcessResult struct {
	Meeting *Meeting
	Tasks   []*tasks.Task
	Failed  []TaskFailure
}

// Processor turns a transcript into a stored meeting with scheduled tasks.
type Processor struct {
	Summarizer Summarizer
	Meetings   *Store
	Tasks      tasks.Store
	Scheduler  Registrar   // optional
	Bus        *events.Bus // optional
	Clock      reminder.Clock
}

// Process runs the pipeline: summarize, extract action items, resolve
// deadlines against the current time, persist tasks, register reminders.
func (p *Processor) Process(ctx context.Context, title, transcript string) (*ProcessResult, error) {
	clock := p.Clock
	if clock == nil {
		clock = reminder.SystemClock()
	}

	sum, err := p.Summarizer.Summarize(ctx, transcript, title)
	if err != nil {
		return nil, fmt.Errorf("process meeting: %w", err)
	}

	meeting := &Meeting{
		Title:           title,
		Summary:         sum.Summary,
		ModelUsed:       sum.ModelUsed,
		TranscriptChars: sum.TranscriptChars,
		CreatedAt:       clock.Now(),
	}
	if err := p.Meetings.Create(meeting, transcript); err != nil {
		return nil, fmt.Errorf("process meeting: %w", err)
	}

	raw, err := p.Summarizer.ExtractActionItems(ctx, transcript, sum.Summary)
	if err != nil {
		// The summary is already stored; extraction failure yields a
		// meeting without tasks rather than losing the whole run.
		slog.Error("processor: action item extraction failed", "meeting_id", meeting.ID, "error", err)
		return &ProcessResult{Meeting: meeting}, nil
	}

	candidates := extract.Parse(raw)
	ref := clock.Now()

	result := &ProcessResult{Meeting: meeting}
	for _, c := range candidates {
		resolved := deadline.Normalize(c.RawDeadline, ref)

		t := &tasks.Task{
			MeetingID:   meeting.ID,
			Title:       c.Title,
			Assignee:    c.Assignee,
			Priority:    tasks.ParsePriority(c.Priority),
			RawDeadline: c.RawDeadline,
			DueAt:       resolved.Time(),
			Context:     c.Context,
		}
		if err := p.Tasks.Create(t); err != nil {
			slog.Error("processor: task create failed", "meeting_id", meeting.ID, "title", c.Title, "error", err)
			result.Failed = append(result.Failed, TaskFailure{Title: c.Title, Err: err})
			continue
		}

		if t.DueAt != nil && p.Scheduler != nil {
			p.Scheduler.Register(t.ID, *t.DueAt)
		}
		if p.Bus != nil {
			p.Bus.Publish(events.NewTaskCreated(t.ID, meeting.ID, t.Title))
		}

		meeting.TaskIDs = append(meeting.TaskIDs, t.ID)
		result.Tasks = append(result.Tasks, t)
	}

	if len(meeting.TaskIDs) > 0 {
		if err := p.Meetings.Update(meeting); err != nil {
			slog.Error("processor: meeting update failed", "meeting_id", meeting.ID, "error", err)
		}
	}

	if p.Bus != nil {
		p.Bus.Publish(events.NewMeetingProcessed(meeting.ID, len(result.Tasks)))
	}
	slog.Info("processor: meeting processed",
		"meeting_id", meeting.ID,
		"tasks", len(result.Tasks),
		"failed", len(result.Failed))

	return result, nil
}
