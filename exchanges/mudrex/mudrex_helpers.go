package mudrex

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/mudrex/types"
)

// ValidateQuantity checks a quantity against the asset's limits. A zero
// maximum or step is treated as unbounded.
func (a *Asset) ValidateQuantity(quantity types.Number) error {
	q, err := parseNumber("quantity", quantity)
	if err != nil {
		return err
	}
	minQty, err := parseNumber("min_quantity", a.MinQuantity)
	if err != nil {
		return err
	}
	maxQty, err := parseNumber("max_quantity", a.MaxQuantity)
	if err != nil {
		return err
	}
	step, err := parseNumber("quantity_step", a.QuantityStep)
	if err != nil {
		return err
	}

	if q.LessThan(minQty) || (maxQty.IsPositive() && q.GreaterThan(maxQty)) {
		return validationError(fmt.Errorf("%w: %s not within [%s, %s] for %s",
			errQuantityOutOfRange, quantity, a.MinQuantity, a.MaxQuantity, a.Symbol))
	}
	if step.IsPositive() && !q.Mod(step).IsZero() {
		return validationError(fmt.Errorf("%w: %s step %s for %s",
			errQuantityStepMismatch, quantity, a.QuantityStep, a.Symbol))
	}
	return nil
}

// ValidateLeverage checks a leverage value against the asset's limits
func (a *Asset) ValidateLeverage(leverage types.Number) error {
	l, err := parseNumber("leverage", leverage)
	if err != nil {
		return err
	}
	minLev, err := parseNumber("min_leverage", a.MinLeverage)
	if err != nil {
		return err
	}
	maxLev, err := parseNumber("max_leverage", a.MaxLeverage)
	if err != nil {
		return err
	}
	if l.LessThan(minLev) || l.GreaterThan(maxLev) {
		return validationError(fmt.Errorf("%w: %s not within [%s, %s] for %s",
			errLeverageOutOfRange, leverage, a.MinLeverage, a.MaxLeverage, a.Symbol))
	}
	return nil
}

func parseNumber(field string, n types.Number) (decimal.Decimal, error) {
	d, err := n.Decimal()
	if err != nil {
		return decimal.Zero, validationError(fmt.Errorf("%s %w: %q", field, errNotANumber, n))
	}
	return d, nil
}
