package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "telegram": {"token": "123:abc", "chat_id": -100200300},
  "source": {"url": "https://example.com/", "timeout": "10s"},
  "state": {"driver": "sqlite", "path": "./state.db", "busy_timeout": "2s"},
  "schedule": {"spec": "30 6 * * *", "timezone": "UTC", "run_on_start": true},
  "logging": {"level": "debug"}
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.ChatID != -100200300 {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Source.URL != "https://example.com/" {
		t.Errorf("source.url = %q", cfg.Source.URL)
	}
	if cfg.State.Driver != "sqlite" {
		t.Errorf("state.driver = %q", cfg.State.Driver)
	}
	if cfg.Schedule.Spec != "30 6 * * *" || !cfg.Schedule.RunOnStart {
		t.Errorf("schedule = %+v", cfg.Schedule)
	}
	// Defaults fill the gaps.
	if cfg.Telegram.ParseMode != "HTML" || cfg.Telegram.RatePerSec != 1 {
		t.Errorf("telegram defaults = %+v", cfg.Telegram)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
telegram:
  token: "123:abc"
  chat_id: 42
source:
  timeout: 5s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.ChatID != 42 {
		t.Errorf("chat_id = %d", cfg.Telegram.ChatID)
	}
	if cfg.Source.URL != DefaultSourceURL {
		t.Errorf("source.url default not applied: %q", cfg.Source.URL)
	}
	if cfg.State.Driver != "file" || cfg.State.Path != DefaultStatePath {
		t.Errorf("state defaults = %+v", cfg.State)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "telegram": {"token": "t", "chat_id": 1},
  "quotes": {"per_day": 2}
}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsTrailingData(t *testing.T) {
	path := writeConfig(t, "config.json",
		`{"telegram": {"token": "t", "chat_id": 1}} {"extra": true}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvToken, "999:env")
	t.Setenv(EnvChatID, "777")

	path := writeConfig(t, "config.json",
		`{"telegram": {"token": "file-token", "chat_id": 1}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "999:env" || cfg.Telegram.ChatID != 777 {
		t.Fatalf("env did not win: %+v", cfg.Telegram)
	}
}

func TestEnvOnlyNoFile(t *testing.T) {
	t.Setenv(EnvToken, "999:env")
	t.Setenv(EnvChatID, "777")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "999:env" || cfg.Telegram.ChatID != 777 {
		t.Fatalf("telegram = %+v", cfg.Telegram)
	}
}

func TestMissingCredentialsFailFast(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvChatID, "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error with no credentials anywhere")
	}
	if !strings.Contains(err.Error(), EnvToken) {
		t.Fatalf("error should name the missing variable: %v", err)
	}
}

func TestBadChatIDEnv(t *testing.T) {
	t.Setenv(EnvToken, "t")
	t.Setenv(EnvChatID, "not-a-number")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for malformed chat id")
	}
}

func TestValidateRejections(t *testing.T) {
	t.Setenv(EnvToken, "t")
	t.Setenv(EnvChatID, "1")

	tests := []struct {
		name string
		body string
	}{
		{name: "bad source url", body: `{"source": {"url": "ftp://example.com"}}`},
		{name: "bad driver", body: `{"state": {"driver": "redis"}}`},
		{name: "bad timeout", body: `{"source": {"timeout": "fast"}}`},
		{name: "negative busy timeout", body: `{"state": {"busy_timeout": "-1s"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.json", tt.body)
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
