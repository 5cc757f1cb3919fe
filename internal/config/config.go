package config

import "time"

// Config is the root configuration for Minute.
type Config struct {
	Storage  StorageConfig  `json:"storage"`
	Models   ModelsConfig   `json:"models"`
	Reminder ReminderConfig `json:"reminder"`
	Events   EventsConfig   `json:"events"`
	Summary  SummaryConfig  `json:"summary"`
}

// StorageConfig selects and locates the task/meeting backend.
type StorageConfig struct {
	Driver string `json:"driver"` // "file", "sqlite"
	Path   string `json:"path"`   // data dir (file) or db file (sqlite); default under MinutePath()
}

// ModelsConfig holds model provider configuration.
type ModelsConfig struct {
	Default   string                    `json:"default"`
	Providers map[string]ProviderConfig `json:"providers"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Driver    string     `json:"driver"` // "ollama", "openai"
	Model     string     `json:"model"`
	BaseURL   string     `json:"base_url,omitempty"`
	Auth      AuthConfig `json:"auth"`
	MaxTokens int        `json:"max_tokens,omitempty"`
	Timeout   Duration   `json:"timeout,omitempty"`
}

// AuthConfig configures API key resolution.
type AuthConfig struct {
	APIKey string `json:"api_key,omitempty"` // Direct API key or ${{ .Env.VAR }} template
}

// ReminderConfig holds scheduler settings.
type ReminderConfig struct {
	Interval    Duration `json:"interval"`     // wake-check period
	SweepSpec   string   `json:"sweep_spec"`   // cron expression for the overdue sweep; "off" disables
	ExpireAfter Duration `json:"expire_after"` // grace past due before a task is marked expired
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int `json:"buffer_size"`
}

// SummaryConfig holds summarization settings.
type SummaryConfig struct {
	MaxTranscriptChars int `json:"max_transcript_chars"` // transcript truncation limit for prompts
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
