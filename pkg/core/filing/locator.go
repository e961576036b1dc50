package filing

import (
	"context"
	"fmt"
)

// Locator resolves a ticker to its most recent 10-K filing reference.
type Locator struct {
	search SearchClient
}

// NewLocator creates a locator backed by the given search collaborator.
func NewLocator(search SearchClient) *Locator {
	return &Locator{search: search}
}

// Locate returns the FilingReference for the ticker's most recent 10-K.
// Collaborator failures are normalized: an empty result set becomes
// ErrNoFiling, any transport or decoding error becomes ErrUpstream. Raw
// transport errors never reach callers unwrapped.
func (l *Locator) Locate(ctx context.Context, ticker string) (Reference, error) {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return Reference{}, fmt.Errorf("ticker must not be empty")
	}

	query := fmt.Sprintf(`ticker:%s AND formType:"10-K"`, ticker)
	filings, err := l.search.Search(ctx, query, 1)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(filings) == 0 {
		return Reference{}, fmt.Errorf("%w for %s", ErrNoFiling, ticker)
	}

	// Result set is size-limited and sorted filedAt descending, so the top
	// entry is the filing we want.
	top := filings[0]
	if top.LinkToFilingDetails == "" {
		// Never hand back a partially-filled reference.
		return Reference{}, fmt.Errorf("%w for %s", ErrNoFiling, ticker)
	}

	ref := Reference{DisplayURL: top.LinkToFilingDetails}
	if len(top.DocumentFormatFiles) > 0 {
		ref.DocumentURL = top.DocumentFormatFiles[0].DocumentURL
	}
	return ref, nil
}
