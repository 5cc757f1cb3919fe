package events

import "time"

// NewTaskCreated builds a task.created event.
func NewTaskCreated(taskID, meetingID, title string) Event {
	return NewEvent(EventTaskCreated, SourcePipeline, map[string]any{
		"task_id":    taskID,
		"meeting_id": meetingID,
		"title":      title,
	})
}

// NewMeetingProcessed builds a meeting.processed event.
func NewMeetingProcessed(meetingID string, taskCount int) Event {
	return NewEvent(EventMeetingProcessed, SourcePipeline, map[string]any{
		"meeting_id": meetingID,
		"task_count": taskCount,
	})
}

// NewReminderFired builds a reminder.fired event. missed marks reminders
// delivered late because no scheduler was running at fire time.
func NewReminderFired(taskID, title string, dueAt time.Time, missed bool) Event {
	typ := EventReminderFired
	if missed {
		typ = EventReminderMissed
	}
	return NewEvent(typ, SourceScheduler, map[string]any{
		"task_id": taskID,
		"title":   title,
		"due_at":  dueAt,
	})
}

// NewTaskExpired builds a task.expired event.
func NewTaskExpired(taskID string, dueAt time.Time) Event {
	return NewEvent(EventTaskExpired, SourceScheduler, map[string]any{
		"task_id": taskID,
		"due_at":  dueAt,
	})
}
