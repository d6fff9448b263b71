// Package wallet reads on-chain balances for a Solana wallet over RPC.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solana-ai-terminal/backend/internal/model"
)

// Client reads wallet holdings from a Solana RPC node. It reports the native
// SOL balance and all SPL token accounts with a non-zero balance.
type Client struct {
	rpc *rpc.Client
}

// NewClient creates a new wallet client against the given RPC URL
// (normally https://api.mainnet-beta.solana.com).
func NewClient(rpcURL string) *Client {
	return &Client{
		rpc: rpc.New(rpcURL),
	}
}

// parsedTokenAccount mirrors the jsonParsed encoding of an SPL token account.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				Amount   string  `json:"amount"`
				Decimals uint8   `json:"decimals"`
				UIAmount float64 `json:"uiAmount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// Holdings returns the SOL balance and all non-empty SPL token balances for a
// wallet address. The SOL entry is always first and flagged with IsSol.
//
// Parameters:
//   - ctx: Request context for cancellation and timeouts
//   - address: Base58 wallet address
//
// Returns:
//   - []model.WalletHolding: Native SOL followed by SPL token holdings
//   - error: If the address is malformed or an RPC call fails
func (c *Client) Holdings(ctx context.Context, address string) ([]model.WalletHolding, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet address: %w", err)
	}

	balance, err := c.rpc.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch SOL balance: %w", err)
	}

	holdings := []model.WalletHolding{{
		Address:  solana.SolMint.String(),
		Balance:  float64(balance.Value) / float64(solana.LAMPORTS_PER_SOL),
		Decimals: 9,
		IsSol:    true,
	}}

	accounts, err := c.rpc.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: solana.TokenProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token accounts: %w", err)
	}

	for _, account := range accounts.Value {
		var parsed parsedTokenAccount
		if err := json.Unmarshal(account.Account.Data.GetRawJSON(), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse token account: %w", err)
		}

		info := parsed.Parsed.Info
		if info.TokenAmount.UIAmount <= 0 {
			continue
		}

		holdings = append(holdings, model.WalletHolding{
			Address:  info.Mint,
			Balance:  info.TokenAmount.UIAmount,
			Decimals: info.TokenAmount.Decimals,
		})
	}

	return holdings, nil
}
