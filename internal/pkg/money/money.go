// Package money holds the two rounding modes used by pricing and payroll.
//
// The two helpers are not interchangeable: order totals and stitch
// sub-rates are floored, the calculated reference rate is rounded.
package money

import "github.com/shopspring/decimal"

var (
	Hundred  = decimal.NewFromInt(100)
	Thousand = decimal.NewFromInt(1000)
	half     = decimal.NewFromFloat(0.5)
)

// Floor2 drops everything past the second decimal place, rounding toward
// negative infinity.
func Floor2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Floor().Shift(-2)
}

// RoundHalfUp2 rounds to two decimal places with ties going up (toward
// positive infinity).
func RoundHalfUp2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// Sum adds all values, returning zero for an empty list.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Max0 clamps negative values to zero.
func Max0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// OrZero dereferences an optional amount.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
