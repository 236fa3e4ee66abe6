package mudrex

import (
	"context"
	"net/http"

	"github.com/thrasher-corp/mudrex/types"
)

// CreateMarketOrder places an order that executes at the current price. Any
// limit price in args is ignored.
func (c *Client) CreateMarketOrder(ctx context.Context, args *OrderArgs) (*Order, error) {
	return c.createOrder(ctx, args, Market)
}

// CreateLimitOrder places an order that executes once the limit price is
// reached
func (c *Client) CreateLimitOrder(ctx context.Context, args *OrderArgs) (*Order, error) {
	return c.createOrder(ctx, args, Limit)
}

func (c *Client) createOrder(ctx context.Context, args *OrderArgs, trigger TriggerType) (*Order, error) {
	req, err := args.orderRequest(trigger)
	if err != nil {
		return nil, err
	}
	body, err := req.Params()
	if err != nil {
		return nil, err
	}
	return newResource[Order](c).one(ctx, http.MethodPost, endpoint(mudrexCreateOrder, args.AssetID), nil, body,
		map[string]any{"asset_id": args.AssetID, "symbol": args.AssetID})
}

// CreateOrder places an order with full control over its parameters
func (c *Client) CreateOrder(ctx context.Context, assetID string, req *OrderRequest) (*Order, error) {
	if assetID == "" {
		return nil, validationError(errAssetIDEmpty)
	}
	body, err := req.Params()
	if err != nil {
		return nil, err
	}
	return newResource[Order](c).one(ctx, http.MethodPost, endpoint(mudrexCreateOrder, assetID), nil, body,
		map[string]any{"asset_id": assetID})
}

// ListOpenOrders returns every open order
func (c *Client) ListOpenOrders(ctx context.Context) ([]Order, error) {
	return newResource[Order](c).many(ctx, http.MethodGet, mudrexOrders, nil)
}

// GetOrder returns a single order
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, validationError(errOrderIDEmpty)
	}
	return newResource[Order](c).one(ctx, http.MethodGet, endpoint(mudrexOrder, orderID), nil, nil, nil)
}

// GetOrderHistory returns one page of historical orders
func (c *Client) GetOrderHistory(ctx context.Context, params ListParams) ([]Order, error) {
	return newResource[Order](c).many(ctx, http.MethodGet, mudrexOrderHistory, params.values())
}

// CancelOrder cancels an open order and reports whether the service
// confirmed the cancellation
func (c *Client) CancelOrder(ctx context.Context, orderID string) (bool, error) {
	if orderID == "" {
		return false, validationError(errOrderIDEmpty)
	}
	return newResource[Order](c).ack(ctx, http.MethodDelete, endpoint(mudrexOrder, orderID), nil)
}

// AmendOrder changes the price and/or quantity of an open order. Unset
// values are left unchanged.
func (c *Client) AmendOrder(ctx context.Context, orderID string, price, quantity types.Number) (*Order, error) {
	if orderID == "" {
		return nil, validationError(errOrderIDEmpty)
	}
	body := make(map[string]any, 2)
	if price.IsSet() {
		body["order_price"] = price.String()
	}
	if quantity.IsSet() {
		body["quantity"] = quantity.String()
	}
	if len(body) == 0 {
		return nil, validationError(errNothingToAmend)
	}
	return newResource[Order](c).one(ctx, http.MethodPatch, endpoint(mudrexOrder, orderID), nil, body, nil)
}
