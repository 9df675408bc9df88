package domain

import (
	"github.com/shopspring/decimal"
)

// Bracket is a single marginal tax bracket. When Unbounded is true the
// bracket has no upper limit and Upper is ignored.
type Bracket struct {
	Lower     decimal.Decimal
	Upper     decimal.Decimal
	Rate      decimal.Decimal
	Unbounded bool
}

// BracketTable is an ordered list of contiguous marginal brackets.
// Tables are treated as immutable once built; strategies hand out copies.
type BracketTable []Bracket

// NewBracket creates a bounded bracket from float thresholds and rate.
func NewBracket(lower, upper, rate float64) Bracket {
	return Bracket{
		Lower: decimal.NewFromFloat(lower),
		Upper: decimal.NewFromFloat(upper),
		Rate:  decimal.NewFromFloat(rate),
	}
}

// NewTopBracket creates the unbounded terminal bracket starting at lower.
func NewTopBracket(lower, rate float64) Bracket {
	return Bracket{
		Lower:     decimal.NewFromFloat(lower),
		Rate:      decimal.NewFromFloat(rate),
		Unbounded: true,
	}
}

// Validate checks the structural invariants of a bracket table: non-empty,
// sorted and contiguous, rates within [0,1], and exactly one unbounded
// bracket in the terminal position. Violations are configuration errors and
// should surface at registration time, not at first calculation.
func (bt BracketTable) Validate() error {
	if len(bt) == 0 {
		return &ConfigurationError{Reason: "bracket table is empty"}
	}
	if bt[0].Lower.IsNegative() {
		return &ConfigurationError{Reason: "first bracket lower bound is negative"}
	}
	one := decimal.NewFromInt(1)
	for i, b := range bt {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return &ConfigurationError{Reason: "bracket rate " + b.Rate.String() + " outside [0,1]"}
		}
		last := i == len(bt)-1
		if last {
			if !b.Unbounded {
				return &ConfigurationError{Reason: "terminal bracket must be unbounded"}
			}
			continue
		}
		if b.Unbounded {
			return &ConfigurationError{Reason: "unbounded bracket before terminal position"}
		}
		if !b.Upper.GreaterThan(b.Lower) {
			return &ConfigurationError{Reason: "bracket upper bound " + b.Upper.String() + " not above lower bound " + b.Lower.String()}
		}
		if !bt[i+1].Lower.Equal(b.Upper) {
			return &ConfigurationError{Reason: "brackets not contiguous at " + b.Upper.String()}
		}
	}
	return nil
}

// MarginalRate returns the rate of the top bracket reached by taxable.
// Amounts at or below the first bracket's lower bound use the first rate.
func (bt BracketTable) MarginalRate(taxable decimal.Decimal) decimal.Decimal {
	if len(bt) == 0 {
		return decimal.Zero
	}
	rate := bt[0].Rate
	for _, b := range bt {
		if taxable.GreaterThan(b.Lower) {
			rate = b.Rate
		}
	}
	return rate
}

// Clone returns an independent copy of the table.
func (bt BracketTable) Clone() BracketTable {
	out := make(BracketTable, len(bt))
	copy(out, bt)
	return out
}
