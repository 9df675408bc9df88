package calculation

import (
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// INDIA TAX ASSUMPTIONS (FY 2023-24):
//
// 1. New regime slabs by default; the old regime is selectable and carries
//    higher exemption limits for seniors (60+) and super seniors (80+).
// 2. Standard deduction ₹50,000 for salaried income in both regimes.
// 3. Section 87A rebate for residents: tax fully rebated up to ₹25,000 when
//    taxable income is within ₹7,00,000 (new regime) or ₹12,500 within
//    ₹5,00,000 (old regime). The rebate never exceeds the computed tax.
// 4. Surcharge on income tax: 10% above ₹50L, 15% above ₹1Cr, 25% above
//    ₹2Cr, 37% above ₹5Cr. Health and education cess: 4% of tax plus
//    surcharge.

// IndiaStrategy implements Indian income tax under the new or old regime.
type IndiaStrategy struct {
	newRegime domain.BracketTable
	oldRegime domain.BracketTable

	standardDeduction decimal.Decimal

	newRebateLimit   decimal.Decimal
	newRebateCeiling decimal.Decimal
	oldRebateLimit   decimal.Decimal
	oldRebateCeiling decimal.Decimal

	surchargeBands []surchargeBand
	cessRate       decimal.Decimal
}

type surchargeBand struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
}

// NewIndiaStrategy creates the India strategy with FY 2023-24 parameters.
func NewIndiaStrategy() *IndiaStrategy {
	return &IndiaStrategy{
		newRegime: domain.BracketTable{
			domain.NewBracket(0, 300000, 0),
			domain.NewBracket(300000, 600000, 0.05),
			domain.NewBracket(600000, 900000, 0.10),
			domain.NewBracket(900000, 1200000, 0.15),
			domain.NewBracket(1200000, 1500000, 0.20),
			domain.NewTopBracket(1500000, 0.30),
		},
		oldRegime: domain.BracketTable{
			domain.NewBracket(0, 250000, 0),
			domain.NewBracket(250000, 500000, 0.05),
			domain.NewBracket(500000, 1000000, 0.20),
			domain.NewTopBracket(1000000, 0.30),
		},
		standardDeduction: decimal.NewFromInt(50000),
		newRebateLimit:    decimal.NewFromInt(700000),
		newRebateCeiling:  decimal.NewFromInt(25000),
		oldRebateLimit:    decimal.NewFromInt(500000),
		oldRebateCeiling:  decimal.NewFromInt(12500),
		surchargeBands: []surchargeBand{
			{decimal.NewFromInt(50000000), decimal.NewFromFloat(0.37)},
			{decimal.NewFromInt(20000000), decimal.NewFromFloat(0.25)},
			{decimal.NewFromInt(10000000), decimal.NewFromFloat(0.15)},
			{decimal.NewFromInt(5000000), decimal.NewFromFloat(0.10)},
		},
		cessRate: decimal.NewFromFloat(0.04),
	}
}

// JurisdictionCode returns "IN".
func (s *IndiaStrategy) JurisdictionCode() string { return "IN" }

// BracketTable returns the new-regime slabs.
func (s *IndiaStrategy) BracketTable() domain.BracketTable { return s.newRegime.Clone() }

// AvailableDeductions lists the standard deduction and the 87A rebate.
func (s *IndiaStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Standard deduction", Description: "Flat deduction for salaried income", Cap: s.standardDeduction, Kind: domain.DeductionFixed},
		{Name: "Section 87A rebate", Description: "Full rebate of tax for resident low incomes", Cap: s.newRebateCeiling, Kind: domain.DeductionFixed},
	}
}

func (s *IndiaStrategy) validateTables() error {
	return s.oldRegime.Validate()
}

// oldRegimeTable raises the exempt slab for seniors. The slab structure
// above the exemption is unchanged.
func (s *IndiaStrategy) oldRegimeTable(age int) domain.BracketTable {
	switch {
	case age >= 80:
		return domain.BracketTable{
			domain.NewBracket(0, 500000, 0),
			domain.NewBracket(500000, 1000000, 0.20),
			domain.NewTopBracket(1000000, 0.30),
		}
	case age >= 60:
		return domain.BracketTable{
			domain.NewBracket(0, 300000, 0),
			domain.NewBracket(300000, 500000, 0.05),
			domain.NewBracket(500000, 1000000, 0.20),
			domain.NewTopBracket(1000000, 0.30),
		}
	default:
		return s.oldRegime
	}
}

// surchargeOn returns the surcharge for a taxable income level applied to
// the computed tax.
func (s *IndiaStrategy) surchargeOn(tax, taxable decimal.Decimal) decimal.Decimal {
	for _, band := range s.surchargeBands {
		if taxable.GreaterThan(band.threshold) {
			return tax.Mul(band.rate)
		}
	}
	return decimal.Zero
}

// Calculate computes slab tax, 87A rebate, surcharge, and cess.
// Recognized parameters: regime (new|old, default new), resident (bool,
// default true), age (non-negative integer, default 0).
func (s *IndiaStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "INR", "IN"); err != nil {
		return nil, err
	}

	regime := paramString(params, "regime", "new")
	resident, err := paramBool(params, "resident", true)
	if err != nil {
		return nil, err
	}
	age, err := paramInt(params, "age", 0)
	if err != nil {
		return nil, err
	}
	if age < 0 {
		return nil, &domain.InvalidInputError{Field: "age", Reason: "must not be negative"}
	}

	var slabs domain.BracketTable
	var rebateLimit, rebateCeiling decimal.Decimal
	switch regime {
	case "new":
		slabs = s.newRegime
		rebateLimit, rebateCeiling = s.newRebateLimit, s.newRebateCeiling
	case "old":
		slabs = s.oldRegimeTable(age)
		rebateLimit, rebateCeiling = s.oldRebateLimit, s.oldRebateCeiling
	default:
		return nil, &domain.InvalidInputError{Field: "regime", Reason: fmt.Sprintf("expected new or old, got %q", regime)}
	}

	taxable := decimal.Max(gross.Sub(s.standardDeduction), decimal.Zero)
	tax, allocations := ComputeProgressiveTax(taxable, slabs)

	// 87A rebate: residents only, capped at the lesser of computed tax and
	// the regime ceiling, and only when taxable income is within the limit.
	if resident && taxable.LessThanOrEqual(rebateLimit) {
		tax = decimal.Max(tax.Sub(decimal.Min(tax, rebateCeiling)), decimal.Zero)
	}

	surcharge := s.surchargeOn(tax, taxable)
	cess := tax.Add(surcharge).Mul(s.cessRate)

	return buildBreakdown("IN", "INR", gross, components{
		federal: tax,
		other:   surcharge,
		health:  cess,
	}, slabs.MarginalRate(taxable), allocations,
		fmt.Sprintf("%s regime slab tax with 87A rebate, surcharge, and 4%% cess", regime)), nil
}
