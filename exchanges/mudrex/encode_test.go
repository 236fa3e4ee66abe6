package mudrex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRequestParams(t *testing.T) {
	t.Parallel()
	_, err := (*OrderRequest)(nil).Params()
	assert.ErrorIs(t, err, errOrderRequestNil)
	_, err = (&OrderRequest{Side: Long, TriggerType: Market}).Params()
	assert.ErrorIs(t, err, errQuantityEmpty)
	_, err = (&OrderRequest{Quantity: "1", Side: "long", TriggerType: Market}).Params()
	assert.ErrorIs(t, err, errInvalidOrderSide)
	_, err = (&OrderRequest{Quantity: "1", Side: Long, TriggerType: "STOP"}).Params()
	assert.ErrorIs(t, err, errInvalidTriggerType)
	assert.ErrorIs(t, err, ErrValidation)

	p, err := (&OrderRequest{Quantity: "0.5", Side: Short, TriggerType: Market}).Params()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"leverage":     "1",
		"quantity":     "0.5",
		"order_type":   "SHORT",
		"trigger_type": "MARKET",
		"reduce_only":  false,
	}, p)

	p, err = (&OrderRequest{
		Quantity:        "0.5",
		Side:            Long,
		TriggerType:     Limit,
		Leverage:        "10",
		Price:           "65000",
		IsStopLoss:      true,
		StopLossPrice:   "60000",
		IsTakeProfit:    true,
		TakeProfitPrice: "70000",
		ReduceOnly:      true,
	}).Params()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"leverage":         "10",
		"quantity":         "0.5",
		"order_type":       "LONG",
		"trigger_type":     "LIMIT",
		"reduce_only":      true,
		"order_price":      "65000",
		"is_stoploss":      true,
		"stoploss_price":   "60000",
		"is_takeprofit":    true,
		"takeprofit_price": "70000",
	}, p)
}

func TestOrderRequestParamsRiskFlags(t *testing.T) {
	t.Parallel()
	p, err := (&OrderRequest{Quantity: "1", Side: Long, TriggerType: Market, StopLossPrice: "60000", TakeProfitPrice: "70000"}).Params()
	require.NoError(t, err)
	assert.NotContains(t, p, "stoploss_price", "a price without its flag must not be sent")
	assert.NotContains(t, p, "is_stoploss")
	assert.NotContains(t, p, "takeprofit_price")
	assert.NotContains(t, p, "is_takeprofit")

	p, err = (&OrderRequest{Quantity: "1", Side: Long, TriggerType: Market, IsStopLoss: true, IsTakeProfit: true}).Params()
	require.NoError(t, err)
	assert.NotContains(t, p, "is_stoploss", "a flag without its price must not be sent")
	assert.NotContains(t, p, "is_takeprofit")
}

func TestRiskOrderParams(t *testing.T) {
	t.Parallel()
	assert.Empty(t, (*RiskOrder)(nil).Params())
	assert.Empty(t, (&RiskOrder{PositionID: "p"}).Params())
	assert.Equal(t, map[string]any{"stoploss_price": "1"}, (&RiskOrder{StopLossPrice: "1"}).Params())
	assert.Equal(t, map[string]any{"stoploss_price": "1", "takeprofit_price": "2"}, (&RiskOrder{StopLossPrice: "1", TakeProfitPrice: "2"}).Params())
}

func TestOrderArgsOrderRequest(t *testing.T) {
	t.Parallel()
	_, err := (&OrderArgs{Side: Long, Quantity: "1"}).orderRequest(Market)
	assert.ErrorIs(t, err, errAssetIDEmpty)

	r, err := (&OrderArgs{AssetID: "BTCUSDT", Side: "Short", Quantity: "1", Price: "5", TakeProfitPrice: "4"}).orderRequest(Market)
	require.NoError(t, err)
	assert.Equal(t, Short, r.Side)
	assert.Equal(t, Market, r.TriggerType)
	assert.False(t, r.Price.IsSet(), "market orders must not carry a price")
	assert.False(t, r.IsStopLoss)
	assert.True(t, r.IsTakeProfit)

	r, err = (&OrderArgs{AssetID: "BTCUSDT", Side: Long, Quantity: "1", Price: "5"}).orderRequest(Limit)
	require.NoError(t, err)
	assert.Equal(t, "5", r.Price.String())
}
