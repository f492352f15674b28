package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvToken and EnvChatID supply Telegram credentials; they take
	// precedence over the config file.
	EnvToken  = "TELEGRAM_BOT_TOKEN"
	EnvChatID = "TELEGRAM_CHAT_ID"

	DefaultSourceURL = "https://www.greatday.com/"
	DefaultStatePath = "./quote_state.json"
	DefaultSchedule  = "0 7 * * *"
)

// Load reads, decodes, and validates the configuration.
//
// path may be empty: credentials then come from the environment and every
// other setting keeps its default. Environment variables always override
// file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		jb, _, err := coerceToJSONBytes(path, b)
		if err != nil {
			return nil, err
		}

		dec := json.NewDecoder(bytes.NewReader(jb))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		// reject trailing tokens (e.g. concatenated JSON)
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return nil, fmt.Errorf("config %s: trailing data", path)
			}
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvChatID)); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: not a chat id: %q", EnvChatID, v)
		}
		cfg.Telegram.ChatID = id
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Telegram.ParseMode == "" {
		cfg.Telegram.ParseMode = "HTML"
	}
	if cfg.Telegram.RatePerSec <= 0 {
		cfg.Telegram.RatePerSec = 1
	}
	if cfg.Source.URL == "" {
		cfg.Source.URL = DefaultSourceURL
	}
	if cfg.State.Driver == "" {
		cfg.State.Driver = "file"
	}
	if cfg.State.Path == "" {
		cfg.State.Path = DefaultStatePath
	}
	if cfg.Schedule.Spec == "" {
		cfg.Schedule.Spec = DefaultSchedule
	}
}

// Validate fails fast on missing credentials and malformed fields, so a
// scheduled run dies with a clear message instead of partway through.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("telegram token missing: set %s or telegram.token", EnvToken)
	}
	if cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat id missing: set %s or telegram.chat_id", EnvChatID)
	}
	if !strings.HasPrefix(cfg.Source.URL, "http://") && !strings.HasPrefix(cfg.Source.URL, "https://") {
		return fmt.Errorf("source.url: not an http(s) URL: %q", cfg.Source.URL)
	}
	switch d := strings.ToLower(strings.TrimSpace(cfg.State.Driver)); d {
	case "file", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("state.driver: unknown driver %q", cfg.State.Driver)
	}
	if _, err := ParseDurationField("source.timeout", cfg.Source.Timeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("state.busy_timeout", cfg.State.BusyTimeout); err != nil {
		return err
	}
	return nil
}
