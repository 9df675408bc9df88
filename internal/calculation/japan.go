package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// JAPAN TAX ASSUMPTIONS (2024):
//
// 1. Employment income deduction per the tiered schedule, floored at
//    ¥550,000 and capped at ¥1,950,000; basic deduction ¥480,000.
// 2. National income tax brackets 5% through 45%, plus the 2.1%
//    reconstruction surtax on the national tax.
// 3. Residence tax: flat 10% of taxable income (prefectural + municipal
//    combined), ignoring per-capita levies.
// 4. Social insurance, employee share: pension 9.15% up to ¥7,920,000,
//    health 5% up to ¥16,560,000, employment insurance 0.6% uncapped.

// JapanStrategy implements Japanese national income tax, residence tax, and
// employee social insurance.
type JapanStrategy struct {
	brackets domain.BracketTable

	basicDeduction decimal.Decimal
	surtaxRate     decimal.Decimal
	residenceRate  decimal.Decimal

	pensionRate    decimal.Decimal
	pensionCeiling decimal.Decimal
	healthRate     decimal.Decimal
	healthCeiling  decimal.Decimal
	employmentRate decimal.Decimal
}

// NewJapanStrategy creates the Japan strategy with 2024 parameters.
func NewJapanStrategy() *JapanStrategy {
	return &JapanStrategy{
		brackets: domain.BracketTable{
			domain.NewBracket(0, 1950000, 0.05),
			domain.NewBracket(1950000, 3300000, 0.10),
			domain.NewBracket(3300000, 6950000, 0.20),
			domain.NewBracket(6950000, 9000000, 0.23),
			domain.NewBracket(9000000, 18000000, 0.33),
			domain.NewBracket(18000000, 40000000, 0.40),
			domain.NewTopBracket(40000000, 0.45),
		},
		basicDeduction: decimal.NewFromInt(480000),
		surtaxRate:     decimal.NewFromFloat(0.021),
		residenceRate:  decimal.NewFromFloat(0.10),
		pensionRate:    decimal.NewFromFloat(0.0915),
		pensionCeiling: decimal.NewFromInt(7920000),
		healthRate:     decimal.NewFromFloat(0.05),
		healthCeiling:  decimal.NewFromInt(16560000),
		employmentRate: decimal.NewFromFloat(0.006),
	}
}

// JurisdictionCode returns "JP".
func (s *JapanStrategy) JurisdictionCode() string { return "JP" }

// BracketTable returns the national brackets.
func (s *JapanStrategy) BracketTable() domain.BracketTable { return s.brackets.Clone() }

// AvailableDeductions lists the employment income and basic deductions.
func (s *JapanStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Employment income deduction", Description: "Tiered deduction for salaried income", Cap: decimal.NewFromInt(1950000), Kind: domain.DeductionPercentage},
		{Name: "Basic deduction", Description: "Flat deduction available to most taxpayers", Cap: s.basicDeduction, Kind: domain.DeductionFixed},
	}
}

// employmentDeduction implements the tiered salary deduction schedule.
func employmentDeduction(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.LessThanOrEqual(decimal.NewFromInt(1625000)):
		return decimal.NewFromInt(550000)
	case gross.LessThanOrEqual(decimal.NewFromInt(1800000)):
		return gross.Mul(decimal.NewFromFloat(0.40)).Sub(decimal.NewFromInt(100000))
	case gross.LessThanOrEqual(decimal.NewFromInt(3600000)):
		return gross.Mul(decimal.NewFromFloat(0.30)).Add(decimal.NewFromInt(80000))
	case gross.LessThanOrEqual(decimal.NewFromInt(6600000)):
		return gross.Mul(decimal.NewFromFloat(0.20)).Add(decimal.NewFromInt(440000))
	case gross.LessThanOrEqual(decimal.NewFromInt(8500000)):
		return gross.Mul(decimal.NewFromFloat(0.10)).Add(decimal.NewFromInt(1100000))
	default:
		return decimal.NewFromInt(1950000)
	}
}

// Calculate computes national tax with surtax, residence tax, and social
// insurance. No jurisdiction parameters are recognized.
func (s *JapanStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "JPY", "JP"); err != nil {
		return nil, err
	}

	deductions := employmentDeduction(gross).Add(s.basicDeduction)
	taxable := decimal.Max(gross.Sub(deductions), decimal.Zero)

	nationalTax, allocations := ComputeProgressiveTax(taxable, s.brackets)
	surtax := nationalTax.Mul(s.surtaxRate)
	residenceTax := taxable.Mul(s.residenceRate)

	pension := capAt(gross, s.pensionCeiling).Mul(s.pensionRate)
	health := capAt(gross, s.healthCeiling).Mul(s.healthRate)
	employment := gross.Mul(s.employmentRate)

	return buildBreakdown("JP", "JPY", gross, components{
		federal: nationalTax,
		local:   residenceTax,
		social:  pension.Add(employment),
		health:  health,
		other:   surtax,
	}, s.brackets.MarginalRate(taxable), allocations,
		"national tax with reconstruction surtax, 10% residence tax, and employee social insurance"), nil
}
