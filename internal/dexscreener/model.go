package dexscreener

// Response is the top-level DexScreener API response shape shared by the
// token lookup and search endpoints.
type Response struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// Pair describes a single trading pair as reported by DexScreener.
// Numeric price fields arrive as strings and must be parsed by the caller.
type Pair struct {
	ChainID     string      `json:"chainId"`
	DexID       string      `json:"dexId"`
	PairAddress string      `json:"pairAddress"`
	BaseToken   PairToken   `json:"baseToken"`
	QuoteToken  PairToken   `json:"quoteToken"`
	PriceUsd    string      `json:"priceUsd"`
	Liquidity   Liquidity   `json:"liquidity"`
	Volume      Volume      `json:"volume"`
	PriceChange PriceChange `json:"priceChange"`
	Fdv         float64     `json:"fdv"`
	MarketCap   float64     `json:"marketCap"`
	Info        *PairInfo   `json:"info,omitempty"`
}

// PairToken identifies one side of a pair.
type PairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Liquidity holds pool liquidity figures in USD and native units.
type Liquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// Volume holds rolling trade volume in USD per window.
type Volume struct {
	H24 float64 `json:"h24"`
	H6  float64 `json:"h6"`
	H1  float64 `json:"h1"`
}

// PriceChange holds percentage price movement per window.
type PriceChange struct {
	H24 float64 `json:"h24"`
	H6  float64 `json:"h6"`
	H1  float64 `json:"h1"`
}

// PairInfo carries optional token metadata such as the logo image.
type PairInfo struct {
	ImageURL string `json:"imageUrl"`
}
