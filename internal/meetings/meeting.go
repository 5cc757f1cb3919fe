// Package meetings stores processed meeting records and runs the transcript
// processing pipeline: summarize, extract action items, resolve deadlines,
// create tasks, schedule reminders.
package meetings

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is one processed meeting transcript.
type Meeting struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	ModelUsed       string    `json:"model_used,omitempty"`
	TranscriptChars int       `json:"transcript_chars"`
	TaskIDs         []string  `json:"task_ids,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// GenerateMeetingID returns a short unique meeting id.
func GenerateMeetingID() string {
	return "mtg_" + uuid.NewString()[:8]
}
