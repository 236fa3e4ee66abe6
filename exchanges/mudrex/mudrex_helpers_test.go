package mudrex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thrasher-corp/mudrex/types"
)

func TestPnLPercentage(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		margin, pnl types.Number
		want        float64
	}{
		{"10", "1.00", 10},
		{"200", "-50", -25},
		{"0", "5", 0},
		{"-1", "5", 0},
		{"", "5", 0},
		{"10", "n/a", 0},
	} {
		p := &Position{Margin: tc.margin, UnrealizedPnL: tc.pnl}
		assert.InDeltaf(t, tc.want, p.PnLPercentage(), 1e-9, "margin %q pnl %q", tc.margin, tc.pnl)
	}
}

func TestValidateQuantity(t *testing.T) {
	t.Parallel()
	a := &Asset{Symbol: "BTCUSDT", MinQuantity: "0.001", MaxQuantity: "100", QuantityStep: "0.001"}
	assert.NoError(t, a.ValidateQuantity("0.001"))
	assert.NoError(t, a.ValidateQuantity("1.234"))
	assert.NoError(t, a.ValidateQuantity("100"))
	assert.ErrorIs(t, a.ValidateQuantity("0.0001"), errQuantityOutOfRange)
	assert.ErrorIs(t, a.ValidateQuantity("100.001"), errQuantityOutOfRange)
	assert.ErrorIs(t, a.ValidateQuantity("1.2345"), errQuantityStepMismatch)
	assert.ErrorIs(t, a.ValidateQuantity("abc"), errNotANumber)
	assert.ErrorIs(t, a.ValidateQuantity("abc"), ErrValidation)

	unbounded := &Asset{MinQuantity: "0", MaxQuantity: "0", QuantityStep: "0"}
	assert.NoError(t, unbounded.ValidateQuantity("123456.789"), "zero max and step must be unbounded")

	assert.ErrorIs(t, (&Asset{}).ValidateQuantity("1"), errNotANumber, "undecoded limits are not numbers")
}

func TestValidateLeverage(t *testing.T) {
	t.Parallel()
	a := &Asset{Symbol: "BTCUSDT", MinLeverage: "1", MaxLeverage: "50"}
	assert.NoError(t, a.ValidateLeverage("1"))
	assert.NoError(t, a.ValidateLeverage("25.5"))
	assert.NoError(t, a.ValidateLeverage("50"))
	assert.ErrorIs(t, a.ValidateLeverage("0.5"), errLeverageOutOfRange)
	assert.ErrorIs(t, a.ValidateLeverage("51"), errLeverageOutOfRange)
	assert.ErrorIs(t, a.ValidateLeverage(""), errNotANumber)
}
