package mudrex

import (
	"errors"
	"fmt"

	"github.com/thrasher-corp/mudrex/types"
)

var (
	errAssetIDEmpty         = errors.New("asset id cannot be empty")
	errOrderIDEmpty         = errors.New("order id cannot be empty")
	errPositionIDEmpty      = errors.New("position id cannot be empty")
	errQuantityEmpty        = errors.New("quantity cannot be empty")
	errPriceEmpty           = errors.New("limit price cannot be empty")
	errAmountEmpty          = errors.New("amount cannot be empty")
	errLeverageEmpty        = errors.New("leverage cannot be empty")
	errOrderArgsNil         = errors.New("order arguments cannot be nil")
	errOrderRequestNil      = errors.New("order request cannot be nil")
	errNothingToAmend       = errors.New("price or quantity must be supplied")
	errNoRiskPrices         = errors.New("stop loss or take profit price must be supplied")
	errInvalidOrderSide     = errors.New("invalid order side")
	errInvalidTriggerType   = errors.New("invalid trigger type")
	errInvalidMarginType    = errors.New("invalid margin type")
	errInvalidOrderStatus   = errors.New("invalid order status")
	errInvalidPosStatus     = errors.New("invalid position status")
	errInvalidWalletType    = errors.New("invalid wallet type")
	errQuantityOutOfRange   = errors.New("quantity outside allowed range")
	errQuantityStepMismatch = errors.New("quantity is not a multiple of the quantity step")
	errLeverageOutOfRange   = errors.New("leverage outside allowed range")
	errNotANumber           = errors.New("value is not a number")
)

// OrderSide is the direction of an order or position
type OrderSide string

// Order sides
const (
	Long  OrderSide = "LONG"
	Short OrderSide = "SHORT"
)

// TriggerType is the execution type of an order
type TriggerType string

// Trigger types
const (
	Market TriggerType = "MARKET"
	Limit  TriggerType = "LIMIT"
)

// MarginType is the margin mode of a position
type MarginType string

// Margin types
const (
	Isolated MarginType = "ISOLATED"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

// Order statuses
const (
	OrderOpen            OrderStatus = "OPEN"
	OrderFilled          OrderStatus = "FILLED"
	OrderPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderCancelled       OrderStatus = "CANCELLED"
	OrderExpired         OrderStatus = "EXPIRED"
)

// PositionStatus is the lifecycle state of a position
type PositionStatus string

// Position statuses
const (
	PositionOpen   PositionStatus = "OPEN"
	PositionClosed PositionStatus = "CLOSED"
)

// WalletType identifies a wallet for transfers
type WalletType string

// Wallet types
const (
	Spot    WalletType = "SPOT"
	Futures WalletType = "FUTURES"
)

// ParseOrderSide parses a wire value. The match is exact.
func ParseOrderSide(s string) (OrderSide, error) {
	switch OrderSide(s) {
	case Long, Short:
		return OrderSide(s), nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidOrderSide, s)
}

// ParseTriggerType parses a wire value. The match is exact.
func ParseTriggerType(s string) (TriggerType, error) {
	switch TriggerType(s) {
	case Market, Limit:
		return TriggerType(s), nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidTriggerType, s)
}

// ParseMarginType parses a wire value. The match is exact.
func ParseMarginType(s string) (MarginType, error) {
	if MarginType(s) == Isolated {
		return Isolated, nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidMarginType, s)
}

// ParseOrderStatus parses a wire value. The match is exact.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderOpen, OrderFilled, OrderPartiallyFilled, OrderCancelled, OrderExpired:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidOrderStatus, s)
}

// ParsePositionStatus parses a wire value. The match is exact.
func ParsePositionStatus(s string) (PositionStatus, error) {
	switch PositionStatus(s) {
	case PositionOpen, PositionClosed:
		return PositionStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidPosStatus, s)
}

// ParseWalletType parses a wire value. The match is exact.
func ParseWalletType(s string) (WalletType, error) {
	switch WalletType(s) {
	case Spot, Futures:
		return WalletType(s), nil
	}
	return "", fmt.Errorf("%w: %q", errInvalidWalletType, s)
}

// WalletBalance holds spot wallet balances
type WalletBalance struct {
	Total        types.Number `json:"total"`
	Available    types.Number `json:"available"`
	Rewards      types.Number `json:"rewards"`
	Withdrawable types.Number `json:"withdrawable"`
	Currency     string       `json:"currency"`
}

// FuturesBalance holds futures wallet balances
type FuturesBalance struct {
	Balance           types.Number `json:"balance"`
	AvailableTransfer types.Number `json:"available_transfer"`
	UnrealizedPnL     types.Number `json:"unrealized_pnl"`
	MarginUsed        types.Number `json:"margin_used"`
	Currency          string       `json:"currency"`
}

// TransferResult is the outcome of a transfer between wallets
type TransferResult struct {
	Success       bool         `json:"success"`
	FromWallet    WalletType   `json:"from_wallet_type"`
	ToWallet      WalletType   `json:"to_wallet_type"`
	Amount        types.Number `json:"amount"`
	TransactionID string       `json:"transaction_id,omitempty"`
}

// Asset holds the static contract details of a tradable futures asset
type Asset struct {
	AssetID       string       `json:"asset_id"`
	Symbol        string       `json:"symbol"`
	BaseCurrency  string       `json:"base_currency"`
	QuoteCurrency string       `json:"quote_currency"`
	MinQuantity   types.Number `json:"min_quantity"`
	MaxQuantity   types.Number `json:"max_quantity"`
	QuantityStep  types.Number `json:"quantity_step"`
	MinLeverage   types.Number `json:"min_leverage"`
	MaxLeverage   types.Number `json:"max_leverage"`
	MakerFee      types.Number `json:"maker_fee"`
	TakerFee      types.Number `json:"taker_fee"`
	IsActive      bool         `json:"is_active"`
}

// Leverage holds the leverage settings of an asset
type Leverage struct {
	AssetID    string       `json:"asset_id"`
	Leverage   types.Number `json:"leverage"`
	MarginType MarginType   `json:"margin_type"`
}

// Order is a futures order
type Order struct {
	OrderID         string       `json:"order_id"`
	AssetID         string       `json:"asset_id"`
	Symbol          string       `json:"symbol"`
	Side            OrderSide    `json:"order_type"`
	TriggerType     TriggerType  `json:"trigger_type"`
	Status          OrderStatus  `json:"status"`
	Quantity        types.Number `json:"quantity"`
	FilledQuantity  types.Number `json:"filled_quantity"`
	Price           types.Number `json:"price"`
	Leverage        types.Number `json:"leverage"`
	CreatedAt       types.Time   `json:"created_at"`
	UpdatedAt       types.Time   `json:"updated_at"`
	StopLossPrice   types.Number `json:"stoploss_price,omitempty"`
	TakeProfitPrice types.Number `json:"takeprofit_price,omitempty"`
}

// Position is an open or closed futures position
type Position struct {
	PositionID       string         `json:"position_id"`
	AssetID          string         `json:"asset_id"`
	Symbol           string         `json:"symbol"`
	Side             OrderSide      `json:"side"`
	Quantity         types.Number   `json:"quantity"`
	EntryPrice       types.Number   `json:"entry_price"`
	MarkPrice        types.Number   `json:"mark_price"`
	Leverage         types.Number   `json:"leverage"`
	Margin           types.Number   `json:"margin"`
	UnrealizedPnL    types.Number   `json:"unrealized_pnl"`
	RealizedPnL      types.Number   `json:"realized_pnl"`
	LiquidationPrice types.Number   `json:"liquidation_price,omitempty"`
	StopLossPrice    types.Number   `json:"stoploss_price,omitempty"`
	TakeProfitPrice  types.Number   `json:"takeprofit_price,omitempty"`
	Status           PositionStatus `json:"status"`
	CreatedAt        types.Time     `json:"created_at"`
}

// FeeRecord is a single fee charge
type FeeRecord struct {
	FeeID     string       `json:"fee_id"`
	AssetID   string       `json:"asset_id"`
	Symbol    string       `json:"symbol"`
	FeeAmount types.Number `json:"fee_amount"`
	FeeType   string       `json:"fee_type"`
	OrderID   string       `json:"order_id,omitempty"`
	CreatedAt types.Time   `json:"created_at"`
}

// PaginatedResponse is one page of a listing
type PaginatedResponse[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// OrderRequest holds the parameters of a new order. Zero values are treated
// as unset.
type OrderRequest struct {
	Quantity        types.Number
	Side            OrderSide
	TriggerType     TriggerType
	Leverage        types.Number
	Price           types.Number
	IsStopLoss      bool
	StopLossPrice   types.Number
	IsTakeProfit    bool
	TakeProfitPrice types.Number
	ReduceOnly      bool
}

// RiskOrder holds stop loss and take profit levels for one position
type RiskOrder struct {
	PositionID      string
	StopLossPrice   types.Number
	TakeProfitPrice types.Number
}

// OrderArgs holds the caller facing parameters of a market or limit order.
// Side is matched case insensitively and Leverage defaults to 1.
type OrderArgs struct {
	AssetID         string
	Side            OrderSide
	Quantity        types.Number
	Price           types.Number
	Leverage        types.Number
	StopLossPrice   types.Number
	TakeProfitPrice types.Number
	ReduceOnly      bool
}

// ListParams holds pagination parameters. Zero values select the defaults.
type ListParams struct {
	Page    int
	PerPage int
}

// AssetListParams holds the parameters of an asset listing. SortOrder is
// only sent alongside SortBy and defaults to ascending.
type AssetListParams struct {
	ListParams
	SortBy    string
	SortOrder string
}
