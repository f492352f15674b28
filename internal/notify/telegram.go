package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"quotebot/pkg/logx"
)

const telegramTextLimit = 4000

// Config configures the Telegram notifier.
type Config struct {
	Token      string
	ChatID     int64
	ParseMode  string // default "HTML"
	RatePerSec int    // default 1
}

// Telegram sends messages through the Bot API via telebot.
type Telegram struct {
	cfg     Config
	log     logx.Logger
	bot     *tele.Bot
	limiter *rate.Limiter
}

func NewTelegram(cfg Config, log logx.Logger) (*Telegram, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat id is empty")
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	b, err := tele.NewBot(tele.Settings{Token: cfg.Token})
	if err != nil {
		return nil, err
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Telegram{
		cfg:     cfg,
		log:     log,
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (t *Telegram) Send(ctx context.Context, msg Message) error {
	parseMode := t.cfg.ParseMode
	if parseMode == "" {
		parseMode = tele.ModeHTML
	}

	chunks := splitTelegramText(msg.Text, telegramTextLimit, parseMode)
	if len(chunks) == 0 {
		return errors.New("empty message")
	}

	chat := &tele.Chat{ID: t.cfg.ChatID}
	start := time.Now()
	for _, chunk := range chunks {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
		_, err := t.bot.Send(chat, chunk, &tele.SendOptions{
			ParseMode:             parseMode,
			DisableWebPagePreview: true,
		})
		if err != nil {
			return err
		}
	}
	t.log.Debug("message delivered",
		logx.Int("chunks", len(chunks)),
		logx.Duration("took", time.Since(start)))
	return nil
}

// splitTelegramText splits long messages into chunks that are safe to send to Telegram.
// Prefers newline boundaries and avoids cutting inside an HTML tag.
func splitTelegramText(s string, limit int, parseMode string) []string {
	if limit <= 0 {
		limit = telegramTextLimit
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return []string{s}
	}

	out := make([]string, 0, (len(rs)+limit-1)/limit)
	start := 0
	for start < len(rs) {
		end := start + limit
		if end > len(rs) {
			end = len(rs)
		}

		// Prefer splitting on a newline near the end of the window.
		if end < len(rs) {
			cut := -1
			for i := end - 1; i > start; i-- {
				if rs[i] == '\n' {
					// Avoid extremely small chunks.
					if i-start >= limit/3 {
						cut = i + 1
						break
					}
				}
			}
			if cut != -1 {
				end = cut
			}
		}

		// Best-effort: don't split inside a tag for HTML parse mode.
		if strings.EqualFold(parseMode, "HTML") && end < len(rs) {
			lastOpen := -1
			lastClose := -1
			for i := start; i < end; i++ {
				if rs[i] == '<' {
					lastOpen = i
				} else if rs[i] == '>' {
					lastClose = i
				}
			}
			if lastOpen > lastClose && lastOpen > start+1 {
				// Move end to the start of the dangling tag.
				end = lastOpen
				if end <= start {
					end = start + limit
					if end > len(rs) {
						end = len(rs)
					}
				}
			}
		}

		chunk := string(rs[start:end])
		chunk = strings.TrimRight(chunk, "\n")
		out = append(out, chunk)

		start = end
		// Skip leading newlines to avoid empty chunks.
		for start < len(rs) && rs[start] == '\n' {
			start++
		}
	}
	return out
}
