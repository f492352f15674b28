package notify

import (
	"html"
	"strings"

	"quotebot/internal/source"
)

// FormatQuoteHTML renders a quote in Telegram HTML parse mode:
// header, italic date, bold title, body, author attribution.
// Page-derived text is escaped so stray angle brackets can't break the markup.
func FormatQuoteHTML(q source.Quote) string {
	var b strings.Builder
	b.WriteString("\U0001F31F <b>Daily Motivator</b>\n\n")
	if q.Date != "" {
		b.WriteString("\U0001F4C5 <i>")
		b.WriteString(html.EscapeString(q.Date))
		b.WriteString("</i>\n\n")
	}
	if q.Title != "" {
		b.WriteString("<b>")
		b.WriteString(html.EscapeString(q.Title))
		b.WriteString("</b>\n\n")
	}
	b.WriteString(html.EscapeString(q.Content))
	if q.Author != "" {
		b.WriteString("\n\n— <i>")
		b.WriteString(html.EscapeString(q.Author))
		b.WriteString("</i>")
	}
	return b.String()
}
