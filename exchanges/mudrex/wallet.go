package mudrex

import (
	"context"
	"net/http"

	"github.com/thrasher-corp/mudrex/types"
)

// GetSpotBalance returns the spot wallet balance
func (c *Client) GetSpotBalance(ctx context.Context) (*WalletBalance, error) {
	return newResource[WalletBalance](c).one(ctx, http.MethodGet, mudrexWalletFunds, nil, nil, nil)
}

// GetFuturesBalance returns the futures wallet balance
func (c *Client) GetFuturesBalance(ctx context.Context) (*FuturesBalance, error) {
	return newResource[FuturesBalance](c).one(ctx, http.MethodPost, mudrexFuturesFunds, nil, nil, nil)
}

// TransferToFutures moves funds from the spot wallet to the futures wallet
func (c *Client) TransferToFutures(ctx context.Context, amount types.Number) (*TransferResult, error) {
	return c.transfer(ctx, Spot, Futures, amount)
}

// TransferToSpot moves funds from the futures wallet to the spot wallet
func (c *Client) TransferToSpot(ctx context.Context, amount types.Number) (*TransferResult, error) {
	return c.transfer(ctx, Futures, Spot, amount)
}

// transfer reports the requested wallets and amount rather than any echoed
// by the service
func (c *Client) transfer(ctx context.Context, from, to WalletType, amount types.Number) (*TransferResult, error) {
	if !amount.IsSet() {
		return nil, validationError(errAmountEmpty)
	}
	env, err := c.SendHTTPRequest(ctx, http.MethodPost, mudrexWalletTransfer, nil, map[string]any{
		"from_wallet_type": string(from),
		"to_wallet_type":   string(to),
		"amount":           amount.String(),
	})
	if err != nil {
		return nil, err
	}
	return newResource[TransferResult](c).decode(env.DataOrEmpty(), map[string]any{
		"success":          env.Success,
		"from_wallet_type": string(from),
		"to_wallet_type":   string(to),
		"amount":           amount.String(),
	})
}
