package order

import (
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/formula"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)
	apqMax = decimal.NewFromInt(30)
)

// NormalizeApq floors the applique code and clamps it to 0..30. Nil stays nil.
func NormalizeApq(apq *decimal.Decimal) *decimal.Decimal {
	if apq == nil {
		return nil
	}
	v := apq.Floor()
	if v.IsNegative() {
		v = decimal.Zero
	}
	if v.GreaterThan(apqMax) {
		v = apqMax
	}
	return &v
}

// NormalizeApqChr clamps the applique charge at zero. Nil stays nil.
func NormalizeApqChr(chr *decimal.Decimal) *decimal.Decimal {
	if chr == nil {
		return nil
	}
	v := money.Max0(*chr)
	return &v
}

// Normalize returns in with the apq codes clamped.
func Normalize(in order.Inputs) order.Inputs {
	in.Apq = NormalizeApq(in.Apq)
	in.ApqChr = NormalizeApqChr(in.ApqChr)
	if in.Unit == "" {
		in.Unit = order.UnitDozen
	}
	return in
}

// Price derives every computed order field from the inputs. rules is the
// design stitch curve in effect for the order date.
func Price(in order.Inputs, rules formula.Rules) order.Pricing {
	in = Normalize(in)
	apq := money.OrZero(in.Apq)
	apqChr := money.OrZero(in.ApqChr)

	rate := in.RateInput
	if !in.Reverse && in.TwoSide {
		rate = money.Floor2(in.RateInput.Mul(two))
	}

	var designStitches decimal.Decimal
	if in.Reverse {
		rateForDesign := in.RateInput
		if in.TwoSide {
			rateForDesign = in.RateInput.Div(two)
		}
		designStitches = reverseDesignStitches(rateForDesign, in.CustomerBaseRate, apqChr)
	} else {
		designStitches = formula.Evaluate(rules, in.ActualStitches)
	}

	qtPcs := in.Quantity
	if in.Unit == order.UnitDozen {
		qtPcs = in.Quantity.Mul(twelve)
	}

	return order.Pricing{
		Rate:           rate,
		DesignStitches: designStitches,
		QtPcs:          qtPcs,
		CalculatedRate: calculatedRate(in.CustomerBaseRate, designStitches, apqChr),
		StitchRate:     stitchRate(rate, designStitches, apq, apqChr),
		TotalAmount:    money.Floor2(rate.Mul(qtPcs)),
	}
}

// reverseDesignStitches solves calculatedRate for the design stitch count.
func reverseDesignStitches(rate, baseRate, apqChr decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() || !baseRate.IsPositive() {
		return decimal.Zero
	}
	return money.Floor2(rate.Sub(apqChr).Div(baseRate).Mul(money.Thousand))
}

// calculatedRate is the reference rate; it rounds where everything else
// floors.
func calculatedRate(baseRate, designStitches, apqChr decimal.Decimal) decimal.Decimal {
	if !designStitches.IsPositive() {
		return decimal.Zero
	}
	return money.RoundHalfUp2(baseRate.Mul(designStitches).Div(money.Thousand).Add(apqChr))
}

func stitchRate(rate, designStitches, apq, apqChr decimal.Decimal) decimal.Decimal {
	if !designStitches.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	base := rate
	if apq.IsPositive() {
		base = rate.Sub(apqChr)
	}
	return money.Floor2(base.Div(designStitches).Mul(money.Thousand))
}
