// Package jupiter proxies swap quotes and transactions from the Jupiter
// aggregator API.
package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client fetches swap quotes and swap transactions from the Jupiter v6 API.
// Responses are passed through as raw JSON together with the upstream status
// code so the frontend sees Jupiter's own error payloads.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Jupiter client against the given base URL
// (normally https://quote-api.jup.ag/v6).
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
	}
}

// Quote fetches a swap quote, forwarding the caller's query parameters
// (inputMint, outputMint, amount, slippageBps) unchanged.
//
// Returns:
//   - json.RawMessage: Jupiter's response body
//   - int: The upstream HTTP status code
//   - error: For transport failures only; upstream errors surface via status
func (c *Client) Quote(ctx context.Context, params url.Values) (json.RawMessage, int, error) {
	reqURL := fmt.Sprintf("%s/quote?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// Swap requests a serialized swap transaction for a previously fetched quote.
// The request body is forwarded to Jupiter unchanged.
func (c *Client) Swap(ctx context.Context, body []byte) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/swap", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	if !json.Valid(data) {
		return nil, resp.StatusCode, fmt.Errorf("jupiter returned invalid JSON")
	}

	return json.RawMessage(data), resp.StatusCode, nil
}
