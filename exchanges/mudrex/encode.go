package mudrex

import (
	"strings"

	"github.com/thrasher-corp/mudrex/types"
)

const defaultLeverage = types.Number("1")

// Params encodes the request as a wire map. Only set fields are emitted, the
// limit price is sent when present and each risk level is sent as a flag and
// price pair only when both the flag is set and a price is present.
func (o *OrderRequest) Params() (map[string]any, error) {
	if o == nil {
		return nil, validationError(errOrderRequestNil)
	}
	if !o.Quantity.IsSet() {
		return nil, validationError(errQuantityEmpty)
	}
	side, err := ParseOrderSide(string(o.Side))
	if err != nil {
		return nil, validationError(err)
	}
	trigger, err := ParseTriggerType(string(o.TriggerType))
	if err != nil {
		return nil, validationError(err)
	}
	leverage := o.Leverage
	if !leverage.IsSet() {
		leverage = defaultLeverage
	}

	params := map[string]any{
		"leverage":     leverage.String(),
		"quantity":     o.Quantity.String(),
		"order_type":   string(side),
		"trigger_type": string(trigger),
		"reduce_only":  o.ReduceOnly,
	}
	if o.Price.IsSet() {
		params["order_price"] = o.Price.String()
	}
	if o.IsStopLoss && o.StopLossPrice.IsSet() {
		params["is_stoploss"] = true
		params["stoploss_price"] = o.StopLossPrice.String()
	}
	if o.IsTakeProfit && o.TakeProfitPrice.IsSet() {
		params["is_takeprofit"] = true
		params["takeprofit_price"] = o.TakeProfitPrice.String()
	}
	return params, nil
}

// Params encodes the risk levels that are present
func (r *RiskOrder) Params() map[string]any {
	params := make(map[string]any, 2)
	if r == nil {
		return params
	}
	if r.StopLossPrice.IsSet() {
		params["stoploss_price"] = r.StopLossPrice.String()
	}
	if r.TakeProfitPrice.IsSet() {
		params["takeprofit_price"] = r.TakeProfitPrice.String()
	}
	return params
}

// orderRequest converts caller arguments into an order request for the given
// trigger type
func (a *OrderArgs) orderRequest(trigger TriggerType) (*OrderRequest, error) {
	if a == nil {
		return nil, validationError(errOrderArgsNil)
	}
	if a.AssetID == "" {
		return nil, validationError(errAssetIDEmpty)
	}
	side, err := ParseOrderSide(strings.ToUpper(string(a.Side)))
	if err != nil {
		return nil, validationError(err)
	}
	req := &OrderRequest{
		Quantity:        a.Quantity,
		Side:            side,
		TriggerType:     trigger,
		Leverage:        a.Leverage,
		IsStopLoss:      a.StopLossPrice.IsSet(),
		StopLossPrice:   a.StopLossPrice,
		IsTakeProfit:    a.TakeProfitPrice.IsSet(),
		TakeProfitPrice: a.TakeProfitPrice,
		ReduceOnly:      a.ReduceOnly,
	}
	if trigger == Limit {
		if !a.Price.IsSet() {
			return nil, validationError(errPriceEmpty)
		}
		req.Price = a.Price
	}
	return req, nil
}
