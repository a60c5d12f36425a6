// Package formula evaluates piecewise threshold curves such as the design
// stitch markup.
package formula

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeFixed    Mode = "fixed"
	ModePercent  Mode = "percent"
	ModeIdentity Mode = "identity"
)

var (
	ErrUnknownMode       = errors.New("rule mode must be one of fixed, percent, identity")
	ErrNonPositiveBound  = errors.New("rule upper bound must be greater than zero")
	ErrDuplicateBound    = errors.New("rule upper bounds must be unique")
	ErrMultipleUnbounded = errors.New("only one rule may be unbounded")
	ErrNegativeValue     = errors.New("rule value must not be negative")
)

// Rule applies to every input up to and including UpperBound. A nil
// UpperBound matches any input.
type Rule struct {
	UpperBound *decimal.Decimal `json:"upper_bound"`
	Mode       Mode             `json:"mode"`
	Value      decimal.Decimal  `json:"value"`
}

type Rules []Rule

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultRules is the curve used when a business has not configured its own:
// up to 4237 stitches bill as 5000, then +18%, +10% and +5% brackets.
func DefaultRules() Rules {
	return Rules{
		{UpperBound: bound(4237), Mode: ModeFixed, Value: decimal.NewFromInt(5000)},
		{UpperBound: bound(10000), Mode: ModePercent, Value: decimal.NewFromInt(18)},
		{UpperBound: bound(50000), Mode: ModePercent, Value: decimal.NewFromInt(10)},
		{UpperBound: nil, Mode: ModePercent, Value: decimal.NewFromInt(5)},
	}
}

// Evaluate runs input through the first rule whose bound covers it. Rules
// must already be sorted (see Sort). Non-positive input yields zero and the
// result is never negative. Input above every bound passes through unchanged.
func Evaluate(rules Rules, input decimal.Decimal) decimal.Decimal {
	if !input.IsPositive() {
		return decimal.Zero
	}

	for _, rule := range rules {
		if rule.UpperBound == nil || rule.UpperBound.GreaterThanOrEqual(input) {
			return clamp(rule.apply(input))
		}
	}
	return input
}

func (r Rule) apply(input decimal.Decimal) decimal.Decimal {
	switch r.Mode {
	case ModeFixed:
		return r.Value
	case ModePercent:
		return input.Add(input.Mul(r.Value).Div(decimal.NewFromInt(100)))
	default:
		return input
	}
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sort returns a copy ordered by ascending upper bound with the unbounded
// rule last.
func Sort(rules Rules) Rules {
	sorted := make(Rules, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].UpperBound, sorted[j].UpperBound
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.LessThan(*b)
		}
	})
	return sorted
}

// Validate reports the first structural problem in the rule set.
func (rs Rules) Validate() error {
	seen := make(map[string]struct{}, len(rs))
	unbounded := 0
	for _, r := range rs {
		switch r.Mode {
		case ModeFixed, ModePercent, ModeIdentity:
		default:
			return ErrUnknownMode
		}
		if r.Value.IsNegative() {
			return ErrNegativeValue
		}
		if r.UpperBound == nil {
			unbounded++
			if unbounded > 1 {
				return ErrMultipleUnbounded
			}
			continue
		}
		if !r.UpperBound.IsPositive() {
			return ErrNonPositiveBound
		}
		key := r.UpperBound.String()
		if _, dup := seen[key]; dup {
			return ErrDuplicateBound
		}
		seen[key] = struct{}{}
	}
	return nil
}
