package marketing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money and count values are kept as decimals for the whole pipeline and
// rounded to two places after every summation that surfaces in output, so the
// rounding contract is exact: RoundMoney(RoundMoney(x)) == RoundMoney(x).
// Floats exist only at the boundaries (JSON output, the platform's float
// conversion counts).

const microsPerUnit = 1_000_000

var microsDivisor = decimal.NewFromInt(microsPerUnit)

// RoundMoney rounds a money amount to two decimal places, half away from
// zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundCount rounds a fractional booking count with the same rule as money;
// ad-platform conversion counts are fractional.
func RoundCount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a boundary float to a decimal. NaN and infinities are
// treated as zero rather than poisoning downstream sums.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// FromMicros converts a platform micro-unit amount (1e-6 currency units) to
// a rounded money decimal.
func FromMicros(micros int64) decimal.Decimal {
	return decimal.NewFromInt(micros).DivRound(microsDivisor, 2)
}

// ToFloat converts a decimal to its boundary float representation.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ToFloatPtr converts an optional decimal to an optional boundary float.
func ToFloatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := ToFloat(*d)
	return &f
}
