// Package extract parses raw model output into structured action-item candidates.
//
// The summarization model is instructed to emit a JSON array, but small local
// models drift: broken JSON, markdown fences, labeled bullet lists. Parse is the
// tolerant boundary: it repairs what it can, degrades to line extraction for the
// rest, and never fails for input-shape reasons.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Field defaults applied to candidates with missing labels.
const (
	DefaultAssignee = "Unassigned"
	DefaultPriority = "medium"
)

// Candidate is one action item recovered from model output. It is transient:
// deadline resolution and persistence happen downstream.
type Candidate struct {
	Title       string
	Assignee    string
	RawDeadline string
	Priority    string
	Context     string
}

// bulletRe strips list markers: "- ", "* ", "• ", "1. ", "2) ".
var bulletRe = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// labelRe matches a "Key: value" segment with a tolerant key.
var labelRe = regexp.MustCompile(`^([A-Za-z][A-Za-z _-]{0,20}):\s*(.*)$`)

// Parse extracts action-item candidates from model output, preserving the
// order items appeared. It returns an empty slice for unusable input and
// never returns an error.
func Parse(output string) []Candidate {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}

	if items, ok := parseJSONArray(output); ok {
		return items
	}
	return parseLabeledLines(output)
}

// parseJSONArray locates a JSON array in the output and decodes it,
// repairing malformed JSON before giving up.
func parseJSONArray(output string) ([]Candidate, bool) {
	start := strings.Index(output, "[")
	end := strings.LastIndex(output, "]")
	if start < 0 || end <= start {
		return nil, false
	}
	raw := output[start : end+1]

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, false
		}
		if err := json.Unmarshal([]byte(repaired), &items); err != nil {
			return nil, false
		}
	}

	var out []Candidate
	for _, item := range items {
		c := Candidate{
			Title:       field(item, "task", "title", "action", "item", "description"),
			Assignee:    field(item, "assignee", "owner", "who", "assigned_to"),
			RawDeadline: field(item, "deadline", "due", "due_date", "suggested_deadline"),
			Priority:    field(item, "priority"),
			Context:     field(item, "context", "notes"),
		}
		if c.Title == "" {
			continue
		}
		out = append(out, normalize(c))
	}
	return out, true
}

// parseLabeledLines is the fallback for non-JSON output: bullet or numbered
// lines with "Task: ... | Assignee: ... | Deadline: ... | Priority: ..."
// segments, or plain "Key: value" lines attached to the preceding item.
func parseLabeledLines(output string) []Candidate {
	var out []Candidate
	var cur *Candidate

	flush := func() {
		if cur != nil && cur.Title != "" {
			out = append(out, normalize(*cur))
		}
		cur = nil
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		bulleted := bulletRe.MatchString(line)
		line = bulletRe.ReplaceAllString(line, "")

		segments := strings.Split(line, "|")
		startedItem := false
		for _, seg := range segments {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}

			m := labelRe.FindStringSubmatch(seg)
			if m == nil {
				// A bare bulleted line is a title on its own.
				if bulleted && !startedItem && len(segments) == 1 {
					flush()
					cur = &Candidate{Title: seg}
					startedItem = true
				}
				continue
			}

			key := canonicalKey(m[1])
			if key == "" {
				// "- Review auth flow: blocked on backend" has an unknown label;
				// keep the whole segment as a title when it opens a bullet.
				if bulleted && !startedItem && len(segments) == 1 {
					flush()
					cur = &Candidate{Title: seg}
					startedItem = true
				}
				continue
			}
			value := strings.TrimSpace(m[2])
			switch key {
			case "title":
				flush()
				cur = &Candidate{Title: value}
				startedItem = true
			case "assignee":
				if cur != nil {
					cur.Assignee = value
				}
			case "deadline":
				if cur != nil {
					cur.RawDeadline = value
				}
			case "priority":
				if cur != nil {
					cur.Priority = value
				}
			case "context":
				if cur != nil {
					cur.Context = value
				}
			}
		}
	}
	flush()

	return out
}

// canonicalKey maps label variants to a canonical field name.
// Unknown labels map to "" and are ignored.
func canonicalKey(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "task", "action", "action item", "todo", "title", "item":
		return "title"
	case "assignee", "owner", "who", "assigned to", "responsible":
		return "assignee"
	case "deadline", "due", "due date", "by", "when":
		return "deadline"
	case "priority":
		return "priority"
	case "context", "notes", "note":
		return "context"
	default:
		return ""
	}
}

// normalize applies field defaults and clamps priority to its enum.
func normalize(c Candidate) Candidate {
	c.Title = strings.TrimSpace(c.Title)

	switch strings.ToLower(strings.TrimSpace(c.Assignee)) {
	case "", "tbd", "none", "n/a", "unassigned":
		c.Assignee = DefaultAssignee
	default:
		c.Assignee = strings.TrimSpace(c.Assignee)
	}

	switch strings.ToLower(strings.TrimSpace(c.RawDeadline)) {
	case "none", "n/a", "tbd", "null":
		c.RawDeadline = ""
	default:
		c.RawDeadline = strings.TrimSpace(c.RawDeadline)
	}

	switch strings.ToLower(strings.TrimSpace(c.Priority)) {
	case "high", "urgent", "critical":
		c.Priority = "high"
	case "low":
		c.Priority = "low"
	default:
		c.Priority = DefaultPriority
	}

	c.Context = strings.TrimSpace(c.Context)
	return c
}

// field returns the first non-empty string value among the given keys.
func field(item map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := item[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
