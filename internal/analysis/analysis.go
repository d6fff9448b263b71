// Package analysis generates AI trading plans for tokens using the Gemini API.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/solana-ai-terminal/backend/internal/model"
)

// Planner generates a structured trading plan for a token from its current
// market snapshot. Each call creates a client from the supplied API key so a
// key rotated at runtime takes effect immediately.
type Planner struct {
	model string
}

// NewPlanner creates a Planner that queries the given Gemini model name.
func NewPlanner(modelName string) *Planner {
	return &Planner{model: modelName}
}

// planSchema constrains the model to the trading plan shape. The schema keeps
// the model from inventing fields and lets us unmarshal the reply directly.
var planSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"verdict": {
			Type: genai.TypeString,
			Enum: []string{model.VerdictBuy, model.VerdictSell, model.VerdictWait, model.VerdictDegen},
		},
		"confidence": {Type: genai.TypeInteger},
		"riskLevel": {
			Type: genai.TypeString,
			Enum: []string{"LOW", "MEDIUM", "HIGH", "EXTREME"},
		},
		"action":     {Type: genai.TypeString},
		"entry":      {Type: genai.TypeString},
		"stopLoss":   {Type: genai.TypeString},
		"takeProfit": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"reasoning":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"verdict", "confidence", "riskLevel", "action", "entry", "stopLoss", "takeProfit", "reasoning"},
}

// Plan asks the model for a trading plan given a token and its market data.
//
// Parameters:
//   - ctx: Request context for cancellation and timeouts
//   - apiKey: Gemini API key, supplied per call
//   - token: Tracked token identity
//   - market: Current market snapshot for the token
//
// Returns:
//   - *model.TradingPlan: Parsed plan
//   - error: If the client cannot be created, the model call fails, or the
//     reply is not valid JSON for the plan shape
func (p *Planner) Plan(ctx context.Context, apiKey string, token *model.Token, market *model.MarketData) (*model.TradingPlan, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildPrompt(token, market)}},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   planSchema,
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trading plan: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var plan model.TradingPlan
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse trading plan: %w", err)
	}

	return &plan, nil
}

func buildPrompt(token *model.Token, market *model.MarketData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional Solana memecoin trader. Analyze this token and produce a concrete trading plan.\n\n")
	fmt.Fprintf(&b, "Token: %s (%s)\n", token.Name, token.Symbol)
	fmt.Fprintf(&b, "Address: %s\n", token.Address)
	fmt.Fprintf(&b, "Price: $%.10f\n", market.Price)
	fmt.Fprintf(&b, "Market cap: $%.0f\n", market.EffectiveMarketCap())
	fmt.Fprintf(&b, "Liquidity: $%.0f\n", market.Liquidity)
	fmt.Fprintf(&b, "24h volume: $%.0f\n", market.Volume24h)
	fmt.Fprintf(&b, "24h price change: %.2f%%\n\n", market.PriceChange24h)

	b.WriteString("Rules:\n")
	b.WriteString("- Entry, stop loss and take profit levels are market caps in USD, phrased for a human (e.g. \"Enter below $450k mcap\").\n")
	b.WriteString("- If liquidity is below $10k or volume is very low, mark the risk HIGH or EXTREME.\n")
	b.WriteString("- Confidence is 0-100.\n")
	b.WriteString("- Keep reasoning to 3-5 short bullet points.\n")

	return b.String()
}

// cleanModelJSON strips Markdown code fences a model sometimes wraps around
// its JSON reply despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
