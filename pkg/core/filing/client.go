package filing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	// sec-api.io query API endpoint
	SearchEndpoint = "https://api.sec-api.io"

	UserAgent = "StrategicAnalyst/1.0 (contact@example.com)"
)

// =============================================================================
// SEARCH SERVICE DATA TYPES
// =============================================================================

// FilingMeta is one filing record from the search response.
type FilingMeta struct {
	Ticker              string         `json:"ticker"`
	CompanyName         string         `json:"companyName"`
	FormType            string         `json:"formType"`
	FiledAt             string         `json:"filedAt"`
	LinkToFilingDetails string         `json:"linkToFilingDetails"`
	DocumentFormatFiles []DocumentFile `json:"documentFormatFiles"`
}

// DocumentFile is an entry in a filing's document file list.
type DocumentFile struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	DocumentURL string `json:"documentUrl"`
}

type searchResponse struct {
	Total struct {
		Value int `json:"value"`
	} `json:"total"`
	Filings []FilingMeta `json:"filings"`
}

// searchRequest mirrors the sec-api.io query JSON body.
// "from" and "size" are strings per the API's contract.
type searchRequest struct {
	Query struct {
		QueryString struct {
			Query string `json:"query"`
		} `json:"query_string"`
	} `json:"query"`
	From string                         `json:"from"`
	Size string                         `json:"size"`
	Sort []map[string]map[string]string `json:"sort"`
}

// SearchClient is the filings-search collaborator boundary.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]FilingMeta, error)
}

// =============================================================================
// SEC-API.IO CLIENT
// =============================================================================

// QueryClient calls the sec-api.io query API.
type QueryClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var _ SearchClient = (*QueryClient)(nil)

// NewQueryClient creates a search client authenticated with apiKey.
func NewQueryClient(apiKey string) *QueryClient {
	return &QueryClient{
		apiKey:   apiKey,
		endpoint: SearchEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewQueryClientWithEndpoint overrides the API endpoint (used by tests).
func NewQueryClientWithEndpoint(apiKey, endpoint string) *QueryClient {
	c := NewQueryClient(apiKey)
	c.endpoint = endpoint
	return c
}

// Search runs a full-text filing query sorted by filedAt descending and
// returns at most limit results.
func (c *QueryClient) Search(ctx context.Context, query string, limit int) ([]FilingMeta, error) {
	var reqBody searchRequest
	reqBody.Query.QueryString.Query = query
	reqBody.From = "0"
	reqBody.Size = strconv.Itoa(limit)
	reqBody.Sort = []map[string]map[string]string{
		{"filedAt": {"order": "desc"}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return result.Filings, nil
}
