// Package dispatch runs the fetch-compare-notify pipeline.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotebot/internal/notify"
	"quotebot/internal/source"
	"quotebot/internal/state"
	"quotebot/pkg/logx"
)

// Outcome describes how a run ended.
type Outcome int

const (
	// outcomeNone is the zero value, returned alongside errors.
	outcomeNone Outcome = iota
	// OutcomeSent means a new quote was delivered and the record rewritten.
	OutcomeSent
	// OutcomeUnchanged means the fetched quote matched the stored
	// fingerprint; nothing was sent, nothing was written.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Dispatcher wires the three collaborators behind their narrow interfaces
// so each can be stubbed independently in tests.
type Dispatcher struct {
	store    state.Store
	fetcher  source.Fetcher
	notifier notify.Notifier
	log      logx.Logger

	// now is a clock hook for tests; nil means time.Now.
	now func() time.Time
}

func New(store state.Store, fetcher source.Fetcher, notifier notify.Notifier, log logx.Logger) *Dispatcher {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Dispatcher{store: store, fetcher: fetcher, notifier: notifier, log: log}
}

// Run executes one dispatch cycle:
// load record, fetch, fingerprint, compare, send if new, persist.
//
// Failure at any step leaves the stored record untouched. The record is
// only rewritten after a successful send, so a delivery failure means a
// possible duplicate send on the next run rather than a lost quote.
// No retries happen here; the scheduler's next invocation is the retry.
func (d *Dispatcher) Run(ctx context.Context) (Outcome, error) {
	prev, err := d.store.Load(ctx)
	if err != nil {
		return outcomeNone, fmt.Errorf("load state: %w", err)
	}

	q, err := d.fetcher.FetchQuote(ctx)
	if errors.Is(err, source.ErrNoQuote) {
		d.log.Error("quote extraction found nothing; page layout may have changed")
		return outcomeNone, err
	}
	if err != nil {
		return outcomeNone, fmt.Errorf("fetch quote: %w", err)
	}

	hash := source.FingerprintQuote(q)
	if hash == prev.Hash {
		d.log.Info("quote unchanged, nothing to send",
			logx.String("hash", hash),
			logx.String("last_sent", prev.SentAt))
		return OutcomeUnchanged, nil
	}

	if err := d.notifier.Send(ctx, notify.NewQuoteMessage(q)); err != nil {
		return outcomeNone, fmt.Errorf("send quote: %w", err)
	}

	rec := state.Record{
		Hash:      hash,
		Date:      q.Date,
		Title:     q.Title,
		SentAt:    d.clock().UTC().Format(time.RFC3339),
		FetchDate: q.FetchDate,
	}
	if err := d.store.Save(ctx, rec); err != nil {
		// The quote went out but the record didn't stick; next run will
		// re-send. Surface the error so the run still reports failure.
		return outcomeNone, fmt.Errorf("persist state after send: %w", err)
	}

	d.log.Info("new quote sent",
		logx.String("title", q.Title),
		logx.String("hash", hash))
	return OutcomeSent, nil
}

func (d *Dispatcher) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
