package model

// WalletHolding is a raw on-chain balance before price enrichment.
type WalletHolding struct {
	Address  string  `json:"address"`
	Balance  float64 `json:"balance"`
	Decimals uint8   `json:"decimals"`
	IsSol    bool    `json:"isSol,omitempty"`
}

// WalletAsset is a wallet holding joined with market data, as rendered by
// the wallet holdings view.
type WalletAsset struct {
	Address        string  `json:"address"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Decimals       uint8   `json:"decimals"`
	Balance        float64 `json:"balance"`
	BalanceUsd     float64 `json:"balanceUsd"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	IsSol          bool    `json:"isSol,omitempty"`
	PriceChange24h float64 `json:"priceChange24h,omitempty"`
}
