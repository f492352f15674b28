package source

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize canonicalizes quote text before fingerprinting: whitespace
// runs collapse to single spaces and case is folded, so reflows and
// trivial markup changes on the page do not count as a new quote.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Fingerprint returns the hex SHA-256 digest of the normalized text.
// Equal fingerprints mean equal normalized text for practical purposes.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// FingerprintQuote digests the fields that constitute the quote's
// identity. Date and FetchDate are excluded: the same quote served on
// two calendar days must not look new.
func FingerprintQuote(q Quote) string {
	return Fingerprint(q.Title + "\n" + q.Content)
}
