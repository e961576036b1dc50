package filing

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultDocumentLimit caps how much filing text is inlined into a prompt.
const DefaultDocumentLimit = 30000

// DocumentFetcher downloads a filing's raw document and reduces it to plain
// text suitable for inline prompting.
type DocumentFetcher struct {
	httpClient *http.Client
}

// NewDocumentFetcher creates a fetcher with a sane timeout.
func NewDocumentFetcher() *DocumentFetcher {
	return &DocumentFetcher{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchDocumentText downloads ref's raw document, strips HTML markup and
// returns at most maxLen runes of text. Returns an error when the reference
// carries no document link; upstream failures wrap ErrUpstream.
func (f *DocumentFetcher) FetchDocumentText(ctx context.Context, ref Reference, maxLen int) (string, error) {
	if ref.DocumentURL == "" {
		return "", fmt.Errorf("filing reference has no raw document link")
	}
	if maxLen <= 0 {
		maxLen = DefaultDocumentLimit
	}

	req, err := http.NewRequestWithContext(ctx, "GET", ref.DocumentURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: document host returned status %d", ErrUpstream, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse filing document: %w", err)
	}

	// Scripts, styles and hidden XBRL blobs are noise for the model.
	doc.Find("script, style, ix\\:header").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	// Collapse runs of whitespace; EDGAR HTML is full of layout padding.
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxLen {
		text = string(runes[:maxLen]) + "... [truncated]"
	}
	return text, nil
}
