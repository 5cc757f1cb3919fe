// Package transcript loads meeting transcripts from text files. Audio and
// video transcription happens upstream; this package only accepts the text
// formats produced by those tools.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a transcript file (.txt or .json) and returns its text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		text, err := fromJSON(data)
		if err != nil {
			return "", fmt.Errorf("parse transcript %s: %w", path, err)
		}
		return text, nil
	}

	return string(data), nil
}

// fromJSON extracts transcript text from a JSON document. Objects are probed
// for the conventional keys; arrays are joined segment by segment.
func fromJSON(data []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", err
	}

	switch v := doc.(type) {
	case map[string]any:
		for _, key := range []string{"transcript", "text", "content"} {
			if s, ok := v[key].(string); ok {
				return s, nil
			}
		}
		return "", fmt.Errorf("no transcript, text or content field")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, segmentText(item))
		}
		return strings.Join(parts, "\n"), nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported JSON shape %T", doc)
	}
}

// segmentText renders one array element. Speaker/text objects become
// "Speaker: text" lines; anything else is used verbatim.
func segmentText(item any) string {
	switch seg := item.(type) {
	case string:
		return seg
	case map[string]any:
		text, _ := seg["text"].(string)
		if text == "" {
			text, _ = seg["content"].(string)
		}
		if speaker, ok := seg["speaker"].(string); ok && speaker != "" {
			return speaker + ": " + text
		}
		return text
	default:
		return fmt.Sprint(item)
	}
}
