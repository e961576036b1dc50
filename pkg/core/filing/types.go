// Package filing resolves a company ticker to its most recent annual-report
// filing via a filings-search service (sec-api.io query API).
package filing

import (
	"errors"
	"strings"
)

var (
	// ErrNoFiling is returned when the search service has no annual filing
	// for the requested ticker.
	ErrNoFiling = errors.New("no 10-K filing found")

	// ErrUpstream is returned when an external collaborator (filings search,
	// document host, or the model service) errors or times out. Callers match
	// it with errors.Is.
	ErrUpstream = errors.New("upstream service unavailable")
)

// Reference points at the located filing. Immutable once resolved: a session
// reuses the same Reference for every analysis task.
type Reference struct {
	// DisplayURL is the human-viewable link to the filing details page.
	DisplayURL string `json:"display_url"`
	// DocumentURL is a direct link to the raw filing document. May be empty
	// when the filing index does not expose one; callers must tolerate that.
	DocumentURL string `json:"document_url,omitempty"`
}

// NormalizeTicker uppercases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
