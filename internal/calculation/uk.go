package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// UK TAX ASSUMPTIONS (2024/25, rUK rates; Scottish bands not modeled):
//
// 1. Personal allowance £12,570, tapered £1 for every £2 of income above
//    £100,000, reaching zero at £125,140.
// 2. Income tax bands on taxable income: 20% to £37,700, 40% to £125,140,
//    45% above.
// 3. Employee National Insurance class 1: 8% between £12,570 and £50,270,
//    2% above, expressed as its own progressive table over gross income.

// UKStrategy implements United Kingdom income tax and employee National
// Insurance.
type UKStrategy struct {
	bands   domain.BracketTable
	niBands domain.BracketTable

	personalAllowance decimal.Decimal
	taperThreshold    decimal.Decimal
}

// NewUKStrategy creates the UK strategy with 2024/25 parameters.
func NewUKStrategy() *UKStrategy {
	return &UKStrategy{
		bands: domain.BracketTable{
			domain.NewBracket(0, 37700, 0.20),
			domain.NewBracket(37700, 125140, 0.40),
			domain.NewTopBracket(125140, 0.45),
		},
		niBands: domain.BracketTable{
			domain.NewBracket(0, 12570, 0),
			domain.NewBracket(12570, 50270, 0.08),
			domain.NewTopBracket(50270, 0.02),
		},
		personalAllowance: decimal.NewFromInt(12570),
		taperThreshold:    decimal.NewFromInt(100000),
	}
}

// JurisdictionCode returns "UK".
func (s *UKStrategy) JurisdictionCode() string { return "UK" }

// BracketTable returns the income tax bands.
func (s *UKStrategy) BracketTable() domain.BracketTable { return s.bands.Clone() }

// AvailableDeductions lists the personal allowance.
func (s *UKStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Personal allowance", Description: "Tax-free allowance, tapered above £100,000", Cap: s.personalAllowance, Kind: domain.DeductionFixed},
	}
}

func (s *UKStrategy) validateTables() error {
	return s.niBands.Validate()
}

// allowanceFor applies the £1-per-£2 taper above the threshold.
func (s *UKStrategy) allowanceFor(gross decimal.Decimal) decimal.Decimal {
	if gross.LessThanOrEqual(s.taperThreshold) {
		return s.personalAllowance
	}
	reduction := gross.Sub(s.taperThreshold).Div(decimal.NewFromInt(2))
	return decimal.Max(s.personalAllowance.Sub(reduction), decimal.Zero)
}

// Calculate computes income tax on allowance-adjusted income plus National
// Insurance on gross. No jurisdiction parameters are recognized.
func (s *UKStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "GBP", "UK"); err != nil {
		return nil, err
	}

	taxable := decimal.Max(gross.Sub(s.allowanceFor(gross)), decimal.Zero)
	incomeTax, allocations := ComputeProgressiveTax(taxable, s.bands)
	nationalInsurance, _ := ComputeProgressiveTax(gross, s.niBands)

	return buildBreakdown("UK", "GBP", gross, components{
		federal: incomeTax,
		social:  nationalInsurance,
	}, s.bands.MarginalRate(taxable), allocations,
		"income tax with tapered personal allowance plus class 1 National Insurance"), nil
}
