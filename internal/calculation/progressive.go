package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeProgressiveTax taxes the portion of taxable income inside each
// bracket at that bracket's marginal rate and returns the total alongside a
// per-bracket allocation for display. Bracket width is continuous-decimal:
// the amount taxed in a bracket is min(taxable, upper) - lower, clamped at
// zero, with an unbounded upper treated as infinity.
//
// This is the single progressive primitive shared by every jurisdiction
// strategy; strategies must compose it rather than reimplement the loop.
func ComputeProgressiveTax(taxable decimal.Decimal, table domain.BracketTable) (decimal.Decimal, []domain.BracketAllocation) {
	total := decimal.Zero
	allocations := make([]domain.BracketAllocation, 0, len(table))

	for _, b := range table {
		taxed := decimal.Zero
		if taxable.GreaterThan(b.Lower) {
			top := taxable
			if !b.Unbounded && top.GreaterThan(b.Upper) {
				top = b.Upper
			}
			taxed = top.Sub(b.Lower)
		}
		total = total.Add(taxed.Mul(b.Rate))
		allocations = append(allocations, domain.BracketAllocation{
			Lower:     b.Lower,
			Upper:     b.Upper,
			Unbounded: b.Unbounded,
			Rate:      b.Rate,
			Taxed:     taxed,
		})
	}

	return total, allocations
}
