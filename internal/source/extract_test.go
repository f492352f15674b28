package source

import (
	"errors"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>The Daily Motivator</title>
<script>var tracking = "<div>not content</div>";</script>
<style>.q { color: #333; }</style>
</head>
<body>
<div id="header">The Daily Motivator</div>
<div id="quote">
<p>Monday, August 24, 2026</p>
<h2>Forward from here</h2>
<p>Wherever you are, you can move forward from here. Whatever has happened, you can choose what happens next.</p>
<p>The past is finished with you, and the future is yours to create with each thought and action.</p>
<p>Ralph Marston</p>
</div>
<div id="footer">
<p>Copyright 2026. Reproduced with permission.</p>
<a href="http://greatday.com/subscribe">Subscribe by email</a>
</div>
</body>
</html>`

func TestExtract(t *testing.T) {
	t.Parallel()

	q, err := Extract([]byte(samplePage))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if q.Date != "Monday, August 24, 2026" {
		t.Errorf("Date = %q", q.Date)
	}
	if q.Title != "Forward from here" {
		t.Errorf("Title = %q", q.Title)
	}
	if q.Author != "Ralph Marston" {
		t.Errorf("Author = %q", q.Author)
	}
	if !strings.Contains(q.Content, "move forward from here") {
		t.Errorf("Content missing first paragraph: %q", q.Content)
	}
	if !strings.Contains(q.Content, "future is yours") {
		t.Errorf("Content missing second paragraph: %q", q.Content)
	}
	if strings.Contains(q.Content, "Copyright") || strings.Contains(q.Content, "Subscribe") {
		t.Errorf("Content leaked boilerplate: %q", q.Content)
	}
	if strings.Contains(q.Content, "not content") {
		t.Errorf("Content leaked script text: %q", q.Content)
	}
}

func TestExtractCapsParagraphs(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<p>Tuesday, August 25, 2026</p>
<p>Many paragraphs</p>
<p>First paragraph of the body text.</p>
<p>Second paragraph of the body text.</p>
<p>Third paragraph of the body text.</p>
<p>Fourth paragraph must be dropped.</p>
<p>Ralph Marston</p>
</body></html>`

	q, err := Extract([]byte(page))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if got := strings.Count(q.Content, "\n\n") + 1; got != 3 {
		t.Fatalf("paragraphs = %d, want 3 (content %q)", got, q.Content)
	}
	if strings.Contains(q.Content, "Fourth") {
		t.Fatalf("fourth paragraph not dropped: %q", q.Content)
	}
}

func TestExtractNoQuote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		page string
	}{
		{name: "empty page", page: `<html><body></body></html>`},
		{name: "no weekday line", page: `<html><body><p>Nothing dated here at all.</p></body></html>`},
		{name: "weekday but no body", page: `<html><body><p>Friday, August 28, 2026</p><p>Lonely title</p></body></html>`},
		{name: "only short lines", page: `<html><body><p>Sunday, August 30, 2026</p><p>Title here</p><p>short</p><p>tiny</p></body></html>`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Extract([]byte(tt.page))
			if !errors.Is(err, ErrNoQuote) {
				t.Fatalf("Extract error = %v, want ErrNoQuote", err)
			}
		})
	}
}

func TestExtractAuthorLine(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<p>Wednesday, August 26, 2026</p>
<p>Keep going</p>
<p>There is real value in continuing past the point of comfort.</p>
<p>Ralph Marston, The Daily Motivator</p>
</body></html>`

	q, err := Extract([]byte(page))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if q.Author != "Ralph Marston, The Daily Motivator" {
		t.Fatalf("Author = %q", q.Author)
	}
	if strings.Contains(q.Content, "Ralph Marston") {
		t.Fatalf("author leaked into content: %q", q.Content)
	}
}
