package source

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapse whitespace", in: "a  b\n\tc", want: "a b c"},
		{name: "trim", in: "  hello  ", want: "hello"},
		{name: "casefold", in: "Keep Going", want: "keep going"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFingerprintStability(t *testing.T) {
	t.Parallel()

	// Reflowed or re-cased text is the same quote.
	a := Fingerprint("Every day is a\nnew opportunity.")
	b := Fingerprint("every day  is a new opportunity.")
	if a != b {
		t.Fatalf("fingerprints differ for normalized-equal text: %s vs %s", a, b)
	}

	// Different normalized content must differ.
	c := Fingerprint("every day is a new opportunity!")
	if a == c {
		t.Fatalf("fingerprint collision for distinct content")
	}
}

func TestFingerprintQuoteIgnoresDates(t *testing.T) {
	t.Parallel()

	q1 := Quote{Date: "Monday, August 24, 2026", Title: "Forward", Content: "Move on.", FetchDate: "2026-08-24"}
	q2 := Quote{Date: "Tuesday, August 25, 2026", Title: "Forward", Content: "Move on.", FetchDate: "2026-08-25"}
	if FingerprintQuote(q1) != FingerprintQuote(q2) {
		t.Fatal("same quote on different days must fingerprint equal")
	}

	q3 := q1
	q3.Title = "Backward"
	if FingerprintQuote(q1) == FingerprintQuote(q3) {
		t.Fatal("different titles must fingerprint differently")
	}
}
