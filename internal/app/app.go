// Package app wires configuration into the running bot.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"

	"quotebot/internal/config"
	"quotebot/internal/dispatch"
	"quotebot/internal/notify"
	"quotebot/internal/source"
	"quotebot/internal/state"
	"quotebot/pkg/logx"
)

// App owns the wired collaborators for one bot process.
type App struct {
	cfg *config.Config
	log logx.Logger

	logCloser io.Closer
	store     state.Store
	disp      *dispatch.Dispatcher
}

func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	console := true
	if cfg.Logging.Console != nil {
		console = *cfg.Logging.Console
	}
	log, logCloser, err := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	if err != nil {
		return nil, err
	}

	busy, err := config.ParseDurationField("state.busy_timeout", cfg.State.BusyTimeout)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	store, err := state.Open(state.Config{
		Driver:      cfg.State.Driver,
		Path:        cfg.State.Path,
		BusyTimeout: busy,
	}, log.With(logx.String("component", "state")))
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open state store: %w", err)
	}

	timeout, err := config.ParseDurationOrDefault("source.timeout", cfg.Source.Timeout, 30*time.Second)
	if err != nil {
		store.Close()
		logCloser.Close()
		return nil, err
	}
	fetcher, err := source.NewHTTPFetcher(source.Config{
		URL:       cfg.Source.URL,
		Timeout:   timeout,
		UserAgent: cfg.Source.UserAgent,
	}, log.With(logx.String("component", "source")))
	if err != nil {
		store.Close()
		logCloser.Close()
		return nil, err
	}

	notifier, err := notify.NewTelegram(notify.Config{
		Token:      cfg.Telegram.Token,
		ChatID:     cfg.Telegram.ChatID,
		ParseMode:  cfg.Telegram.ParseMode,
		RatePerSec: cfg.Telegram.RatePerSec,
	}, log.With(logx.String("component", "notify")))
	if err != nil {
		store.Close()
		logCloser.Close()
		return nil, fmt.Errorf("init telegram: %w", err)
	}

	return &App{
		cfg:       cfg,
		log:       log,
		logCloser: logCloser,
		store:     store,
		disp:      dispatch.New(store, fetcher, notifier, log.With(logx.String("component", "dispatch"))),
	}, nil
}

// RunOnce executes a single dispatch cycle. "No new quote" is success.
func (a *App) RunOnce(ctx context.Context) error {
	start := time.Now()
	outcome, err := a.disp.Run(ctx)
	if err != nil {
		return err
	}
	a.log.Info("run complete",
		logx.String("outcome", outcome.String()),
		logx.Duration("took", time.Since(start)))
	return nil
}

// RunDaemon schedules RunOnce on the configured cron spec and blocks
// until ctx is cancelled. A failed cycle is logged and left for the
// next tick; the daemon itself keeps running.
func (a *App) RunDaemon(ctx context.Context) error {
	loc := time.Local
	if tz := a.cfg.Schedule.Timezone; tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("schedule.timezone: %w", err)
		}
		loc = l
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithLocation(loc))

	job := func() {
		if err := a.RunOnce(ctx); err != nil {
			a.log.Error("scheduled run failed", logx.Err(err))
		}
	}
	if _, err := c.AddFunc(a.cfg.Schedule.Spec, job); err != nil {
		return fmt.Errorf("schedule.spec %q: %w", a.cfg.Schedule.Spec, err)
	}

	a.log.Info("daemon started",
		logx.String("spec", a.cfg.Schedule.Spec),
		logx.String("tz", loc.String()))
	if a.cfg.Schedule.RunOnStart {
		job()
	}
	c.Start()
	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return nil
}

func (a *App) Close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = err
		}
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
