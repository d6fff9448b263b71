// Package rugcheck proxies token risk reports from the RugCheck API.
package rugcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/solana-ai-terminal/backend/internal/apperrors"
)

// Client fetches token risk reports from the RugCheck API. Reports are passed
// through to callers as raw JSON since their schema changes frequently and
// the frontend renders them directly.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new RugCheck client against the given base URL
// (normally https://api.rugcheck.xyz/v1).
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

// Report fetches the risk report for a token mint address.
//
// Returns:
//   - json.RawMessage: The report body as returned by RugCheck
//   - error: apperrors.ErrReportNotFound when RugCheck has no report for the
//     mint, or a wrapped error for transport and upstream failures
func (c *Client) Report(ctx context.Context, address string) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/tokens/%s/report", c.baseURL, url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrReportNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rugcheck returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("rugcheck returned invalid JSON")
	}

	return json.RawMessage(data), nil
}
