package source

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// The page carries no stable ids or classes, so extraction works on the
// flattened text: the date line names a weekday, the title follows it, and
// the body runs until the author signature or site boilerplate.

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var stopwords = []string{"copyright", "previous", "permission", "subscribe", "email"}

const (
	defaultAuthor = "Ralph Marston"
	maxParagraphs = 3
	minLineLen    = 10
)

// Extract pulls the quote of the day out of raw page markup.
// Returns ErrNoQuote when the expected structure is absent.
func Extract(page []byte) (Quote, error) {
	lines := textLines(page)

	var q Quote
	titleIdx := -1
	for i, line := range lines {
		if containsWeekday(line) {
			q.Date = line
			if i+1 < len(lines) {
				q.Title = lines[i+1]
				titleIdx = i + 1
			}
			break
		}
	}
	if titleIdx < 0 || q.Title == "" {
		return Quote{}, ErrNoQuote
	}

	q.Author = defaultAuthor
	var paras []string
	for _, line := range lines[titleIdx+1:] {
		if strings.HasPrefix(line, defaultAuthor) {
			q.Author = line
			break
		}
		if containsStopword(line) {
			break
		}
		if len(line) > minLineLen && !strings.HasPrefix(line, "http") {
			paras = append(paras, line)
		}
	}
	if len(paras) == 0 {
		return Quote{}, ErrNoQuote
	}
	if len(paras) > maxParagraphs {
		paras = paras[:maxParagraphs]
	}
	q.Content = strings.Join(paras, "\n\n")
	return q, nil
}

// textLines renders the document as trimmed, non-empty text lines.
// Script and style bodies are skipped; block-ish elements break lines.
func textLines(page []byte) []string {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "br", "p", "div", "tr", "li", "h1", "h2", "h3", "h4", "td", "table":
				b.WriteByte('\n')
			}
		case html.TextNode:
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "tr", "li", "h1", "h2", "h3", "h4", "table":
				b.WriteByte('\n')
			}
		}
	}
	walk(doc)

	raw := strings.Split(b.String(), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func containsWeekday(line string) bool {
	for _, d := range weekdays {
		if strings.Contains(line, d) {
			return true
		}
	}
	return false
}

func containsStopword(line string) bool {
	l := strings.ToLower(line)
	for _, w := range stopwords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}
