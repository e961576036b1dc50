package filing

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// mockSearchClient fakes the filings-search collaborator.
type mockSearchClient struct {
	SearchFunc func(ctx context.Context, query string, limit int) ([]FilingMeta, error)

	lastQuery string
	lastLimit int
}

func (m *mockSearchClient) Search(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.SearchFunc(ctx, query, limit)
}

func TestLocateHappyPath(t *testing.T) {
	mock := &mockSearchClient{
		SearchFunc: func(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
			return []FilingMeta{{
				Ticker:              "MSFT",
				FormType:            "10-K",
				LinkToFilingDetails: "https://www.sec.gov/Archives/msft-10k-index.htm",
				DocumentFormatFiles: []DocumentFile{
					{Type: "10-K", DocumentURL: "https://www.sec.gov/Archives/msft-10k.htm"},
				},
			}}, nil
		},
	}

	ref, err := NewLocator(mock).Locate(context.Background(), "msft")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if ref.DisplayURL != "https://www.sec.gov/Archives/msft-10k-index.htm" {
		t.Errorf("DisplayURL = %q", ref.DisplayURL)
	}
	if ref.DocumentURL != "https://www.sec.gov/Archives/msft-10k.htm" {
		t.Errorf("DocumentURL = %q", ref.DocumentURL)
	}
	if want := `ticker:MSFT AND formType:"10-K"`; mock.lastQuery != want {
		t.Errorf("query = %q, want %q", mock.lastQuery, want)
	}
	if mock.lastLimit != 1 {
		t.Errorf("limit = %d, want 1", mock.lastLimit)
	}
}

func TestLocateNoFiling(t *testing.T) {
	mock := &mockSearchClient{
		SearchFunc: func(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
			return nil, nil
		},
	}

	_, err := NewLocator(mock).Locate(context.Background(), "ZZZZ")
	if !errors.Is(err, ErrNoFiling) {
		t.Fatalf("expected ErrNoFiling, got %v", err)
	}
}

func TestLocateMissingDetailsLink(t *testing.T) {
	// A hit with no filing-details link is useless; treat it as no filing
	// rather than returning a partial reference.
	mock := &mockSearchClient{
		SearchFunc: func(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
			return []FilingMeta{{Ticker: "AAPL", FormType: "10-K"}}, nil
		},
	}

	_, err := NewLocator(mock).Locate(context.Background(), "AAPL")
	if !errors.Is(err, ErrNoFiling) {
		t.Fatalf("expected ErrNoFiling, got %v", err)
	}
}

func TestLocateUpstreamError(t *testing.T) {
	mock := &mockSearchClient{
		SearchFunc: func(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
			return nil, fmt.Errorf("dial tcp: connection refused")
		},
	}

	_, err := NewLocator(mock).Locate(context.Background(), "AAPL")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if errors.Is(err, ErrNoFiling) {
		t.Fatalf("upstream error must not match ErrNoFiling: %v", err)
	}
}

func TestLocateEmptyTicker(t *testing.T) {
	mock := &mockSearchClient{
		SearchFunc: func(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
			t.Fatal("search must not be called for an empty ticker")
			return nil, nil
		},
	}

	if _, err := NewLocator(mock).Locate(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty ticker")
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"msft", "MSFT"},
		{"  aapl  ", "AAPL"},
		{"GOOG", "GOOG"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTicker(tt.input); got != tt.want {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
