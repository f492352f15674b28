// Package state persists the record of the last successfully sent quote.
//
// It currently supports:
//   - "file": a single JSON object, rewritten atomically (temp + rename)
//   - "sqlite": a one-row SQLite table
package state

import (
	"context"
	"errors"
	"strings"
	"time"

	"quotebot/pkg/logx"
)

// Record is the persisted dedup state. All fields are strings; the zero
// value means "nothing sent yet". Hash always reflects the most recently
// *sent* quote, never a merely fetched one.
type Record struct {
	Hash      string `json:"hash"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	SentAt    string `json:"sent_at"`
	FetchDate string `json:"fetch_date"`
}

// IsZero reports whether no quote has ever been recorded.
func (r Record) IsZero() bool { return r == Record{} }

// Store is the minimal persistence API used by the dispatcher.
// Load returns a zero Record when no state exists yet.
type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, r Record) error
	Close() error
}

// Config configures the store.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown state driver: " + driver)
	}
}
