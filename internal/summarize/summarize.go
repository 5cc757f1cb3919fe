// Package summarize drives the LLM collaborator: it builds the meeting
// summary and action-item extraction prompts, calls the configured chat
// model, and hands raw text back to the caller. Parsing the model output
// lives in the extract package.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/scribelabs/minute/internal/models"
)

// DefaultMaxTranscriptChars bounds the transcript slice sent to the model.
const DefaultMaxTranscriptChars = 24000

// Result holds a generated meeting summary plus metadata.
type Result struct {
	Summary         string
	ModelUsed       string
	TranscriptChars int
	Truncated       bool
}

// Summarizer generates meeting summaries and action-item listings through
// a model registry.
type Summarizer struct {
	models   *models.Registry
	maxChars int
}

// New creates a Summarizer. maxChars <= 0 uses DefaultMaxTranscriptChars.
func New(registry *models.Registry, maxChars int) *Summarizer {
	if maxChars <= 0 {
		maxChars = DefaultMaxTranscriptChars
	}
	return &Summarizer{models: registry, maxChars: maxChars}
}

// Summarize generates a concise summary of the transcript.
func (s *Summarizer) Summarize(ctx context.Context, transcript, meetingTitle string) (*Result, error) {
	truncated, wasTruncated := truncate(transcript, s.maxChars)
	prompt := buildSummaryPrompt(truncated, meetingTitle)

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", models.HandleError(err))
	}

	return &Result{
		Summary:         strings.TrimSpace(content),
		ModelUsed:       s.models.DefaultName(),
		TranscriptChars: len(transcript),
		Truncated:       wasTruncated,
	}, nil
}

// ExtractActionItems asks the model for the transcript's action items as a
// JSON array and returns the raw response text.
func (s *Summarizer) ExtractActionItems(ctx context.Context, transcript, summary string) (string, error) {
	truncated, wasTruncated := truncate(transcript, s.maxChars)
	if wasTruncated {
		slog.Debug("summarize: transcript truncated for extraction", "limit", s.maxChars)
	}
	prompt := buildActionItemsPrompt(truncated, summary)

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("extract action items: %w", models.HandleError(err))
	}
	return content, nil
}

func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	chatModel, err := s.models.Default(ctx)
	if err != nil {
		return "", fmt.Errorf("get model: %w", err)
	}

	msgs := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}

	result, err := chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

func buildSummaryPrompt(transcript, meetingTitle string) string {
	var sb strings.Builder

	sb.WriteString("Please provide a concise summary of the following meeting transcript.\n")
	sb.WriteString("Focus on key decisions, important discussions, and main outcomes.\n\n")
	if meetingTitle != "" {
		sb.WriteString(fmt.Sprintf("Meeting: %s\n\n", meetingTitle))
	}
	sb.WriteString("Meeting Transcript:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\nPlease provide a summary that:\n")
	sb.WriteString("1. Captures the main topics discussed\n")
	sb.WriteString("2. Highlights key decisions made\n")
	sb.WriteString("3. Notes important outcomes or conclusions\n")
	sb.WriteString("4. Is approximately 200-300 words\n")
	sb.WriteString("5. Is clear and professional\n\n")
	sb.WriteString("Summary:")

	return sb.String()
}

func buildActionItemsPrompt(transcript, summary string) string {
	var sb strings.Builder

	sb.WriteString("Please extract action items from the following meeting transcript.\n")
	sb.WriteString("For each action item, identify the task, assignee (if mentioned), deadline, and priority level.\n\n")
	if summary != "" {
		sb.WriteString(fmt.Sprintf("Meeting Summary: %s\n\n", summary))
	}
	sb.WriteString("Meeting Transcript:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\nPlease extract action items in the following JSON format:\n")
	sb.WriteString(`[
    {
        "task": "Description of the task",
        "assignee": "Person responsible (or 'TBD' if not specified)",
        "deadline": "Deadline as stated in the meeting (or '' if none)",
        "priority": "high/medium/low",
        "context": "Brief context or additional notes"
    }
]`)
	sb.WriteString("\n\nIf no action items are found, return an empty array: []\n\n")
	sb.WriteString("Focus on:\n")
	sb.WriteString("- Specific tasks that need to be completed\n")
	sb.WriteString("- Who is responsible for each task\n")
	sb.WriteString("- When each task is due, in the speaker's own words\n")
	sb.WriteString("- Priority level based on urgency and importance\n\n")
	sb.WriteString("Action Items:")

	return sb.String()
}

// truncate cuts s to max bytes at a line boundary when possible.
func truncate(s string, max int) (string, bool) {
	if len(s) <= max {
		return s, false
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, '\n'); idx > max/2 {
		cut = cut[:idx]
	}
	return cut + "\n... (truncated)", true
}
