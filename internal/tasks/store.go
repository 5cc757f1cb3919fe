package tasks

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an operation references an unknown task.
	ErrNotFound = errors.New("task not found")
	// ErrUnavailable wraps backend failures. Callers must surface it: a task
	// whose write failed is reported as not created, never silently dropped.
	ErrUnavailable = errors.New("task store unavailable")
	// ErrInvalidTransition is returned for a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status    Status
	MeetingID string
	Assignee  string
}

// Store is the narrow persistence contract the scheduler and the pipeline
// depend on. Any backend satisfying it is interchangeable.
type Store interface {
	// Create persists a new task and assigns its ID when empty.
	Create(t *Task) error
	// Get reads a task by ID.
	Get(id string) (*Task, error)
	// List returns tasks matching the filter, newest first.
	List(f Filter) ([]*Task, error)
	// UpdateStatus transitions a task's status, enforcing ValidTransition.
	UpdateStatus(id string, to Status) error
	// UpdateDueAt replaces a task's due time. The scheduler must be told to
	// replace, not duplicate, its entry afterwards.
	UpdateDueAt(id string, dueAt time.Time) error
	// ListPendingWithDue returns pending tasks with a due time, due_at
	// ascending. Used at scheduler startup and reconciliation.
	ListPendingWithDue() ([]*Task, error)
	// Delete removes a task.
	Delete(id string) error
}
