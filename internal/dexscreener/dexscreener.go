package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/solana-ai-terminal/backend/internal/model"
)

// Client provides methods for fetching token market data from the DexScreener API.
// It wraps an HTTP client and converts DexScreener's pair-oriented responses into
// per-token market snapshots.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new DexScreener client against the given base URL
// (normally https://api.dexscreener.com/latest/dex).
//
// Parameters:
//   - baseURL: API root without a trailing slash
//
// Returns:
//   - *Client: A new client instance ready for use
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

// TokenPairs fetches all known pairs for a token mint address.
//
// Parameters:
//   - ctx: Request context for cancellation and timeouts
//   - address: Token mint address
//
// Returns:
//   - []Pair: All pairs DexScreener knows for the token, possibly empty
//   - error: If the HTTP request fails or the response cannot be parsed
func (c *Client) TokenPairs(ctx context.Context, address string) ([]Pair, error) {
	result, err := c.query(ctx, fmt.Sprintf("%s/tokens/%s", c.baseURL, url.PathEscape(address)))
	if err != nil {
		return nil, err
	}
	return result.Pairs, nil
}

// Search fetches pairs matching a free-text query (symbol, name, or address).
//
// Parameters:
//   - ctx: Request context for cancellation and timeouts
//   - q: Search query
//
// Returns:
//   - []Pair: Matching pairs across all chains, possibly empty
//   - error: If the HTTP request fails or the response cannot be parsed
func (c *Client) Search(ctx context.Context, q string) ([]Pair, error) {
	result, err := c.query(ctx, fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(q)))
	if err != nil {
		return nil, err
	}
	return result.Pairs, nil
}

// MarketData fetches the current market snapshot for a token mint address.
// The snapshot is taken from the most liquid Solana pair where the token is
// the base asset, which avoids quoting a stale or thin pool.
//
// Parameters:
//   - ctx: Request context for cancellation and timeouts
//   - address: Token mint address
//
// Returns:
//   - *model.MarketData: Market snapshot, or nil if no usable pair exists
//   - error: If the HTTP request fails or the response cannot be parsed
func (c *Client) MarketData(ctx context.Context, address string) (*model.MarketData, error) {
	pairs, err := c.TokenPairs(ctx, address)
	if err != nil {
		return nil, err
	}

	best := BestSolanaPair(pairs, address)
	if best == nil {
		return nil, nil
	}

	return PairMarketData(best), nil
}

// BestSolanaPair selects the Solana pair with the highest USD liquidity where
// the given address is the base token. Returns nil when no pair qualifies.
func BestSolanaPair(pairs []Pair, address string) *Pair {
	var best *Pair
	for i := range pairs {
		p := &pairs[i]
		if p.ChainID != "solana" || p.BaseToken.Address != address {
			continue
		}
		if best == nil || p.Liquidity.Usd > best.Liquidity.Usd {
			best = p
		}
	}
	return best
}

// PairMarketData converts a DexScreener pair into a market snapshot for its
// base token. Market cap falls back to fully diluted valuation when the
// circulating figure is missing, and supply is derived from cap and price
// when both are known.
func PairMarketData(p *Pair) *model.MarketData {
	price, _ := strconv.ParseFloat(p.PriceUsd, 64)

	marketCap := p.MarketCap
	if marketCap <= 0 {
		marketCap = p.Fdv
	}

	var supply float64
	if price > 0 && marketCap > 0 {
		supply = marketCap / price
	}

	data := &model.MarketData{
		Symbol:         p.BaseToken.Symbol,
		Name:           p.BaseToken.Name,
		Price:          price,
		MarketCap:      marketCap,
		Supply:         supply,
		PriceChange24h: p.PriceChange.H24,
		Liquidity:      p.Liquidity.Usd,
		Volume24h:      p.Volume.H24,
	}
	if p.Info != nil {
		data.ImageURL = p.Info.ImageURL
	}

	return data
}

// query is an internal helper that executes a GET request against the
// DexScreener API and decodes the JSON response.
func (c *Client) query(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("dexscreener returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	return response, nil
}
