package config

// Config is the full bot configuration.
//
// The on-disk format is a single JSON object; YAML files are accepted and
// coerced to JSON before decoding. Unknown keys are rejected.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "1m").
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Source   SourceConfig   `json:"source"`
	State    StateConfig    `json:"state"`
	Schedule ScheduleConfig `json:"schedule,omitempty"`
	Logging  LoggingConfig  `json:"logging,omitempty"`
}

// TelegramConfig holds delivery credentials and send knobs.
//
// Token and ChatID may be left empty in the file and supplied via the
// TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID environment variables; the
// environment always wins. Validation fails if neither provides a value.
type TelegramConfig struct {
	Token  string `json:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`

	// ParseMode defaults to "HTML".
	ParseMode string `json:"parse_mode,omitempty"`

	// RatePerSec caps outgoing sendMessage calls. Default 1.
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// SourceConfig describes the quote page to scrape.
type SourceConfig struct {
	URL string `json:"url,omitempty"` // default: https://www.greatday.com/

	// Timeout is a Go duration string. Default "30s".
	Timeout string `json:"timeout,omitempty"`

	UserAgent string `json:"user_agent,omitempty"`
}

// StateConfig controls where the last-sent record lives.
//
// Driver values:
//   - "file" (default): single JSON object, written via temp-file + rename
//   - "sqlite": SQLite database file
type StateConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`         // default: ./quote_state.json
	BusyTimeout string `json:"busy_timeout,omitempty"` // sqlite only; Go duration string
}

// ScheduleConfig is only consulted in daemon mode.
type ScheduleConfig struct {
	// Spec is a standard 5-field cron expression or a descriptor
	// like "@daily". Default "0 7 * * *".
	Spec string `json:"spec,omitempty"`

	// Timezone is an IANA zone name for the cron clock. Default: local.
	Timezone string `json:"timezone,omitempty"`

	// RunOnStart triggers one dispatch immediately after startup.
	RunOnStart bool `json:"run_on_start,omitempty"`
}

type LoggingConfig struct {
	Level   string        `json:"level,omitempty"` // trace|debug|info|warn|error
	Console *bool         `json:"console,omitempty"`
	File    LogFileConfig `json:"file,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}
