package mudrex

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/thrasher-corp/mudrex/common/convert"
	"github.com/thrasher-corp/mudrex/encoding/json"
	"github.com/thrasher-corp/mudrex/types"
)

var (
	errPayloadNotObject = errors.New("payload is not a JSON object")
	errPayloadNotList   = errors.New("payload is not a JSON list")
	errItemNotObject    = errors.New("list item is not a JSON object")
)

// fieldSpec describes how one wire key is resolved before decoding. The key
// is tried first, then each alias; a null value counts as absent. When every
// candidate is absent def is used, and a nil def leaves the field unset.
type fieldSpec struct {
	key     string
	aliases []string
	def     any
}

// decodable is implemented by every server originated entity
type decodable interface {
	fieldSpecs() []fieldSpec
}

var walletBalanceFields = []fieldSpec{
	{key: "total", def: "0"},
	{key: "available", def: "0"},
	{key: "rewards", def: "0"},
	{key: "withdrawable", def: "0"},
	{key: "currency", def: "USDT"},
}

var futuresBalanceFields = []fieldSpec{
	{key: "balance", def: "0"},
	{key: "available_transfer", def: "0"},
	{key: "unrealized_pnl", def: "0"},
	{key: "margin_used", def: "0"},
	{key: "currency", def: "USDT"},
}

var transferResultFields = []fieldSpec{
	{key: "success", def: false},
	{key: "from_wallet_type", def: string(Spot)},
	{key: "to_wallet_type", def: string(Futures)},
	{key: "amount", def: "0"},
	{key: "transaction_id"},
}

var assetFields = []fieldSpec{
	{key: "asset_id", aliases: []string{"id"}, def: ""},
	{key: "symbol", def: ""},
	{key: "base_currency", def: ""},
	{key: "quote_currency", def: "USDT"},
	{key: "min_quantity", def: "0"},
	{key: "max_quantity", def: "0"},
	{key: "quantity_step", def: "0"},
	{key: "min_leverage", def: "1"},
	{key: "max_leverage", def: "100"},
	{key: "maker_fee", def: "0"},
	{key: "taker_fee", def: "0"},
	{key: "is_active", def: true},
}

var leverageFields = []fieldSpec{
	{key: "asset_id", def: ""},
	{key: "leverage", def: "1"},
	{key: "margin_type", def: string(Isolated)},
}

var orderFields = []fieldSpec{
	{key: "order_id", aliases: []string{"id"}, def: ""},
	{key: "asset_id", def: ""},
	{key: "symbol", def: ""},
	{key: "order_type", def: string(Long)},
	{key: "trigger_type", def: string(Market)},
	{key: "status", def: string(OrderOpen)},
	{key: "quantity", def: "0"},
	{key: "filled_quantity", def: "0"},
	{key: "price", aliases: []string{"order_price"}, def: "0"},
	{key: "leverage", def: "1"},
	{key: "created_at"},
	{key: "updated_at"},
	{key: "stoploss_price"},
	{key: "takeprofit_price"},
}

var positionFields = []fieldSpec{
	{key: "position_id", aliases: []string{"id"}, def: ""},
	{key: "asset_id", def: ""},
	{key: "symbol", def: ""},
	{key: "side", aliases: []string{"order_type"}, def: string(Long)},
	{key: "quantity", def: "0"},
	{key: "entry_price", def: "0"},
	{key: "mark_price", def: "0"},
	{key: "leverage", def: "1"},
	{key: "margin", def: "0"},
	{key: "unrealized_pnl", def: "0"},
	{key: "realized_pnl", def: "0"},
	{key: "liquidation_price"},
	{key: "stoploss_price"},
	{key: "takeprofit_price"},
	{key: "status", def: string(PositionOpen)},
	{key: "created_at"},
}

var feeRecordFields = []fieldSpec{
	{key: "fee_id", aliases: []string{"id"}, def: ""},
	{key: "asset_id", def: ""},
	{key: "symbol", def: ""},
	{key: "fee_amount", def: "0"},
	{key: "fee_type", def: "TRADING"},
	{key: "order_id"},
	{key: "created_at"},
}

func (WalletBalance) fieldSpecs() []fieldSpec  { return walletBalanceFields }
func (FuturesBalance) fieldSpecs() []fieldSpec { return futuresBalanceFields }
func (TransferResult) fieldSpecs() []fieldSpec { return transferResultFields }
func (Asset) fieldSpecs() []fieldSpec          { return assetFields }
func (Leverage) fieldSpecs() []fieldSpec       { return leverageFields }
func (Order) fieldSpecs() []fieldSpec          { return orderFields }
func (Position) fieldSpecs() []fieldSpec       { return positionFields }
func (FeeRecord) fieldSpecs() []fieldSpec      { return feeRecordFields }

// resolve builds the map handed to the struct decoder from the entity's
// field table
func resolve(in map[string]any, specs []fieldSpec) map[string]any {
	out := make(map[string]any, len(specs))
	for i := range specs {
		if v, ok := lookup(in, specs[i].key, specs[i].aliases); ok {
			out[specs[i].key] = v
			continue
		}
		if specs[i].def != nil {
			out[specs[i].key] = specs[i].def
		}
	}
	return out
}

func lookup(in map[string]any, key string, aliases []string) (any, bool) {
	if v, ok := in[key]; ok && v != nil {
		return v, true
	}
	for _, alias := range aliases {
		if v, ok := in[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

var (
	numberType = reflect.TypeOf(types.Number(""))
	timeType   = reflect.TypeOf(types.Time{})
	stringType = reflect.TypeOf("")
)

// variantParsers holds the strict parser of every closed set type
var variantParsers = map[reflect.Type]func(string) (any, error){
	reflect.TypeOf(OrderSide("")):      func(s string) (any, error) { return ParseOrderSide(s) },
	reflect.TypeOf(TriggerType("")):    func(s string) (any, error) { return ParseTriggerType(s) },
	reflect.TypeOf(MarginType("")):     func(s string) (any, error) { return ParseMarginType(s) },
	reflect.TypeOf(OrderStatus("")):    func(s string) (any, error) { return ParseOrderStatus(s) },
	reflect.TypeOf(PositionStatus("")): func(s string) (any, error) { return ParsePositionStatus(s) },
	reflect.TypeOf(WalletType("")):     func(s string) (any, error) { return ParseWalletType(s) },
}

// wireHookFunc converts wire values into the entity field types. The first
// conversion error is kept in firstErr since the decoder reports errors as
// text only.
func wireHookFunc(firstErr *error) mapstructure.DecodeHookFuncType {
	keep := func(v any, err error) (any, error) {
		if err != nil && *firstErr == nil {
			*firstErr = err
		}
		return v, err
	}
	return func(_, to reflect.Type, data any) (any, error) {
		if parse, ok := variantParsers[to]; ok {
			return keep(parse(convert.StringFromAny(data)))
		}
		switch to {
		case numberType:
			return keep(types.NumberFrom(data))
		case timeType:
			return types.ParseTime(data), nil
		case stringType:
			return convert.StringFromAny(data), nil
		}
		return data, nil
	}
}

// DecodeMap decodes a loosely typed wire map into an entity. Missing fields
// take their documented defaults, amounts keep their exact text and an
// unrecognised variant value fails with a Validation error.
func DecodeMap[T decodable](in map[string]any) (T, error) {
	var out T
	var hookErr error
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       wireHookFunc(&hookErr),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(resolve(in, out.fieldSpecs())); err != nil {
		if hookErr != nil {
			err = hookErr
		}
		var zero T
		return zero, validationError(fmt.Errorf("decoding %T: %w", out, err))
	}
	return out, nil
}

// Decode decodes a JSON object into an entity, see DecodeMap
func Decode[T decodable](data []byte) (T, error) {
	m, err := unmarshalObject(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeMap[T](m)
}

// DecodeList decodes a listing payload. A bare list, or an object carrying
// the list under items or data, are accepted; an object with neither decodes
// to an empty list.
func DecodeList[T decodable](data []byte) ([]T, error) {
	v, err := unmarshalAny(data)
	if err != nil {
		return nil, err
	}
	items, err := listItems(v)
	if err != nil {
		return nil, err
	}
	return decodeItems[T](items)
}

// DecodePage decodes a paginated listing. Page defaults to 1, per page and
// total default to the number of items and has more defaults to false.
func DecodePage[T decodable](data []byte) (*PaginatedResponse[T], error) {
	v, err := unmarshalAny(data)
	if err != nil {
		return nil, err
	}
	items, err := listItems(v)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeItems[T](items)
	if err != nil {
		return nil, err
	}

	p := &PaginatedResponse[T]{
		Items:   decoded,
		Page:    1,
		PerPage: len(decoded),
		Total:   len(decoded),
	}
	m, ok := v.(map[string]any)
	if !ok {
		return p, nil
	}
	if raw, ok := lookup(m, "page", nil); ok {
		if p.Page, err = convert.IntFromAny(raw); err != nil {
			return nil, validationError(fmt.Errorf("page: %w", err))
		}
	}
	if raw, ok := lookup(m, "per_page", nil); ok {
		if p.PerPage, err = convert.IntFromAny(raw); err != nil {
			return nil, validationError(fmt.Errorf("per_page: %w", err))
		}
	}
	if raw, ok := lookup(m, "total", nil); ok {
		if p.Total, err = convert.IntFromAny(raw); err != nil {
			return nil, validationError(fmt.Errorf("total: %w", err))
		}
	}
	if raw, ok := lookup(m, "has_more", nil); ok {
		if p.HasMore, err = convert.BoolFromAny(raw); err != nil {
			return nil, validationError(fmt.Errorf("has_more: %w", err))
		}
	}
	return p, nil
}

func listItems(v any) ([]any, error) {
	switch val := v.(type) {
	case []any:
		return val, nil
	case map[string]any:
		raw, ok := lookup(val, "items", []string{"data"})
		if !ok {
			return nil, nil
		}
		items, ok := raw.([]any)
		if !ok {
			return nil, validationError(fmt.Errorf("%w: %T", errPayloadNotList, raw))
		}
		return items, nil
	}
	return nil, validationError(fmt.Errorf("%w: %T", errPayloadNotList, v))
}

func decodeItems[T decodable](items []any) ([]T, error) {
	out := make([]T, 0, len(items))
	for i := range items {
		m, ok := items[i].(map[string]any)
		if !ok {
			return nil, validationError(fmt.Errorf("%w: index %d is %T", errItemNotObject, i, items[i]))
		}
		v, err := DecodeMap[T](m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// unmarshalAny decodes JSON keeping numbers as their literal text
func unmarshalAny(data []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil, validationError(err)
	}
	return v, nil
}

func unmarshalObject(data []byte) (map[string]any, error) {
	v, err := unmarshalAny(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, validationError(fmt.Errorf("%w: %T", errPayloadNotObject, v))
	}
	return m, nil
}
