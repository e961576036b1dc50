package filing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchDocumentText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><style>.x{color:red}</style></head>
			<body><script>var x = 1;</script>
			<h1>FORM 10-K</h1>
			<p>Item   1.    Business</p>
			</body></html>`))
	}))
	defer server.Close()

	f := NewDocumentFetcher()
	text, err := f.FetchDocumentText(context.Background(), Reference{DocumentURL: server.URL}, 0)
	if err != nil {
		t.Fatalf("FetchDocumentText returned error: %v", err)
	}

	if !strings.Contains(text, "FORM 10-K") {
		t.Errorf("text missing heading: %q", text)
	}
	if strings.Contains(text, "var x = 1") || strings.Contains(text, "color:red") {
		t.Errorf("script/style content leaked into text: %q", text)
	}
	// Whitespace runs collapse to single spaces.
	if !strings.Contains(text, "Item 1. Business") {
		t.Errorf("whitespace not collapsed: %q", text)
	}
}

func TestFetchDocumentTextTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + strings.Repeat("word ", 100) + "</body></html>"))
	}))
	defer server.Close()

	f := NewDocumentFetcher()
	text, err := f.FetchDocumentText(context.Background(), Reference{DocumentURL: server.URL}, 50)
	if err != nil {
		t.Fatalf("FetchDocumentText returned error: %v", err)
	}
	if !strings.HasSuffix(text, "... [truncated]") {
		t.Errorf("expected truncation marker, got %q", text)
	}
	if len([]rune(strings.TrimSuffix(text, "... [truncated]"))) != 50 {
		t.Errorf("truncated body length = %d, want 50", len(text))
	}
}

func TestFetchDocumentTextNoURL(t *testing.T) {
	f := NewDocumentFetcher()
	if _, err := f.FetchDocumentText(context.Background(), Reference{}, 0); err == nil {
		t.Fatal("expected error for missing document URL")
	}
}

func TestFetchDocumentTextUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusForbidden)
	}))
	defer server.Close()

	f := NewDocumentFetcher()
	_, err := f.FetchDocumentText(context.Background(), Reference{DocumentURL: server.URL}, 0)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
