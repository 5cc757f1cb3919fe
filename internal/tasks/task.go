// Package tasks provides the persisted task model and the storage adapters
// the reminder scheduler depends on.
package tasks

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReminded  Status = "reminded"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// ValidTransition reports whether a status change is allowed.
// pending → reminded → completed, pending/reminded → expired;
// completed and expired are terminal.
func ValidTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusReminded || to == StatusCompleted || to == StatusExpired
	case StatusReminded:
		return to == StatusCompleted || to == StatusExpired
	default:
		return false
	}
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority clamps arbitrary input to the priority enum, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task is an action item persisted for scheduling.
// DueAt is nil when the deadline phrase could not be resolved; such a task is
// still valid, it just never enters the reminder schedule.
type Task struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meeting_id,omitempty"`
	SummaryID   string     `json:"summary_id,omitempty"`
	Title       string     `json:"title"`
	Assignee    string     `json:"assignee"`
	Priority    Priority   `json:"priority"`
	RawDeadline string     `json:"raw_deadline,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Status      Status     `json:"status"`
	Context     string     `json:"context,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StatusChange records one status transition in a task's history log.
type StatusChange struct {
	Ts   time.Time `json:"ts"`
	From Status    `json:"from"`
	To   Status    `json:"to"`
}

// GenerateTaskID creates a unique task identifier.
func GenerateTaskID() string {
	u := uuid.New().String()
	return "task_" + strings.ReplaceAll(u[:8], "-", "")
}
