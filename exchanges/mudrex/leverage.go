package mudrex

import (
	"context"
	"net/http"
	"strings"

	"github.com/thrasher-corp/mudrex/types"
)

// GetLeverage returns the current leverage settings of an asset
func (c *Client) GetLeverage(ctx context.Context, assetID string) (*Leverage, error) {
	if assetID == "" {
		return nil, validationError(errAssetIDEmpty)
	}
	return newResource[Leverage](c).one(ctx, http.MethodGet, endpoint(mudrexLeverage, assetID), nil, nil,
		map[string]any{"asset_id": assetID})
}

// SetLeverage sets the leverage and margin type of an asset. The margin type
// is matched case insensitively and an empty value selects ISOLATED; any
// other value fails before a request is sent.
func (c *Client) SetLeverage(ctx context.Context, assetID string, leverage types.Number, marginType MarginType) (*Leverage, error) {
	if assetID == "" {
		return nil, validationError(errAssetIDEmpty)
	}
	if !leverage.IsSet() {
		return nil, validationError(errLeverageEmpty)
	}
	if marginType == "" {
		marginType = Isolated
	}
	mt, err := ParseMarginType(strings.ToUpper(string(marginType)))
	if err != nil {
		return nil, validationError(err)
	}

	env, err := c.SendHTTPRequest(ctx, http.MethodPost, endpoint(mudrexLeverage, assetID), nil, map[string]any{
		"margin_type": string(mt),
		"leverage":    leverage.String(),
	})
	if err != nil {
		return nil, err
	}
	return newResource[Leverage](c).decode(env.DataOrEmpty(), map[string]any{
		"asset_id":    assetID,
		"leverage":    leverage.String(),
		"margin_type": string(mt),
	})
}
