package mudrex

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/mudrex/types"
)

// ListOpenPositions returns every open position
func (c *Client) ListOpenPositions(ctx context.Context) ([]Position, error) {
	return newResource[Position](c).many(ctx, http.MethodGet, mudrexPositions, nil)
}

// GetPosition returns a single position
func (c *Client) GetPosition(ctx context.Context, positionID string) (*Position, error) {
	if positionID == "" {
		return nil, validationError(errPositionIDEmpty)
	}
	return newResource[Position](c).one(ctx, http.MethodGet, endpoint(mudrexPosition, positionID), nil, nil, nil)
}

// ClosePosition fully closes a position and reports whether the service
// confirmed it
func (c *Client) ClosePosition(ctx context.Context, positionID string) (bool, error) {
	if positionID == "" {
		return false, validationError(errPositionIDEmpty)
	}
	return newResource[Position](c).ack(ctx, http.MethodPost, endpoint(mudrexPositionClose, positionID), nil)
}

// ClosePositionPartial closes quantity of a position and returns what
// remains
func (c *Client) ClosePositionPartial(ctx context.Context, positionID string, quantity types.Number) (*Position, error) {
	if positionID == "" {
		return nil, validationError(errPositionIDEmpty)
	}
	if !quantity.IsSet() {
		return nil, validationError(errQuantityEmpty)
	}
	return newResource[Position](c).one(ctx, http.MethodPost, endpoint(mudrexPositionClosePartial, positionID), nil,
		map[string]any{"quantity": quantity.String()}, nil)
}

// ReversePosition closes a position and opens the opposite side with the same
// quantity
func (c *Client) ReversePosition(ctx context.Context, positionID string) (*Position, error) {
	if positionID == "" {
		return nil, validationError(errPositionIDEmpty)
	}
	return newResource[Position](c).one(ctx, http.MethodPost, endpoint(mudrexPositionReverse, positionID), nil, nil, nil)
}

// SetRiskOrder sets the stop loss and/or take profit of a position
func (c *Client) SetRiskOrder(ctx context.Context, r *RiskOrder) (bool, error) {
	return c.riskOrder(ctx, http.MethodPost, r)
}

// SetStopLoss sets the stop loss of a position
func (c *Client) SetStopLoss(ctx context.Context, positionID string, price types.Number) (bool, error) {
	return c.SetRiskOrder(ctx, &RiskOrder{PositionID: positionID, StopLossPrice: price})
}

// SetTakeProfit sets the take profit of a position
func (c *Client) SetTakeProfit(ctx context.Context, positionID string, price types.Number) (bool, error) {
	return c.SetRiskOrder(ctx, &RiskOrder{PositionID: positionID, TakeProfitPrice: price})
}

// EditRiskOrder changes existing stop loss and/or take profit levels
func (c *Client) EditRiskOrder(ctx context.Context, r *RiskOrder) (bool, error) {
	return c.riskOrder(ctx, http.MethodPatch, r)
}

func (c *Client) riskOrder(ctx context.Context, method string, r *RiskOrder) (bool, error) {
	if r == nil || r.PositionID == "" {
		return false, validationError(errPositionIDEmpty)
	}
	body := r.Params()
	if len(body) == 0 {
		return false, validationError(errNoRiskPrices)
	}
	return newResource[Position](c).ack(ctx, method, endpoint(mudrexPositionRiskOrder, r.PositionID), body)
}

// GetPositionHistory returns one page of closed positions
func (c *Client) GetPositionHistory(ctx context.Context, params ListParams) ([]Position, error) {
	return newResource[Position](c).many(ctx, http.MethodGet, mudrexPositionHistory, params.values())
}

// PnLPercentage returns the unrealised PnL as a percentage of margin. It is
// zero when the margin is not a positive number or the PnL is not numeric.
func (p *Position) PnLPercentage() float64 {
	margin, err := p.Margin.Decimal()
	if err != nil || !margin.IsPositive() {
		return 0
	}
	pnl, err := p.UnrealizedPnL.Decimal()
	if err != nil {
		return 0
	}
	pct, _ := pnl.Div(margin).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
