package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Reminder is the payload handed to the delivery collaborator.
type Reminder struct {
	TaskID   string
	Title    string
	Assignee string
	DueAt    time.Time
	// Missed marks a reminder whose fire time elapsed while no scheduler was
	// running; it is delivered late rather than dropped.
	Missed bool
}

// Deliverer delivers one reminder. A returned error keeps the schedule entry
// so delivery is retried on the next wake check; the task is marked reminded
// only after delivery succeeds.
type Deliverer interface {
	Deliver(ctx context.Context, r Reminder) error
}

// LogDeliverer writes reminders to the structured log. It is the default sink
// when no notification channel is configured.
type LogDeliverer struct{}

// Deliver logs the reminder and always succeeds.
func (LogDeliverer) Deliver(_ context.Context, r Reminder) error {
	slog.Info("reminder",
		"task_id", r.TaskID,
		"title", r.Title,
		"assignee", r.Assignee,
		"due_at", r.DueAt.Format(time.RFC3339),
		"missed", r.Missed)
	return nil
}
