package marketing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoneyIdempotent(t *testing.T) {
	values := []string{"0", "1.005", "-1.005", "150.499", "99999999.994", "-0.004"}
	for _, v := range values {
		d := decimal.RequireFromString(v)
		once := RoundMoney(d)
		twice := RoundMoney(once)
		assert.True(t, once.Equal(twice), "rounding %s twice changed the value", v)
	}
}

func TestRoundMoneyHalfUp(t *testing.T) {
	assert.Equal(t, "1.01", RoundMoney(decimal.RequireFromString("1.005")).StringFixed(2))
	assert.Equal(t, "1.00", RoundMoney(decimal.RequireFromString("1.004")).StringFixed(2))
	assert.Equal(t, "-1.01", RoundMoney(decimal.RequireFromString("-1.005")).StringFixed(2))
}

func TestFromFloatGuardsNonFinite(t *testing.T) {
	assert.True(t, FromFloat(math.NaN()).IsZero())
	assert.True(t, FromFloat(math.Inf(1)).IsZero())
	assert.True(t, FromFloat(math.Inf(-1)).IsZero())
	assert.Equal(t, "150.5", FromFloat(150.5).String())
}

func TestFromMicros(t *testing.T) {
	assert.Equal(t, "200.00", FromMicros(200_000_000).StringFixed(2))
	assert.Equal(t, "0.01", FromMicros(10_000).StringFixed(2))
	// Sub-cent amounts round rather than truncate.
	assert.Equal(t, "0.01", FromMicros(5_000).StringFixed(2))
	assert.Equal(t, "0.00", FromMicros(4_999).StringFixed(2))
	assert.Equal(t, "-12.35", FromMicros(-12_345_000).StringFixed(2))
}

func TestToFloatPtr(t *testing.T) {
	assert.Nil(t, ToFloatPtr(nil))
	d := decimal.RequireFromString("50.00")
	f := ToFloatPtr(&d)
	assert.NotNil(t, f)
	assert.Equal(t, 50.0, *f)
}
