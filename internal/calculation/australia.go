package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// AUSTRALIA TAX ASSUMPTIONS (2024-25 resident rates):
//
// 1. Resident brackets with the $18,200 tax-free threshold.
// 2. Medicare levy 2%, with the low-income phase-in: nothing below $26,000,
//    then 10 cents per dollar of income above it until the full 2% is
//    reached.
// 3. Low income tax offset: $700, reduced by 5 cents per dollar between
//    $37,500 and $45,000, then 1.5 cents per dollar until it runs out at
//    $66,667. Non-refundable, never below zero.

// AustraliaStrategy implements Australian resident income tax with the
// Medicare levy and the low income tax offset.
type AustraliaStrategy struct {
	brackets domain.BracketTable

	levyRate      decimal.Decimal
	levyThreshold decimal.Decimal
	levyPhaseRate decimal.Decimal

	litoMax         decimal.Decimal
	litoFirstStep   decimal.Decimal
	litoSecondStep  decimal.Decimal
	litoFirstTaper  decimal.Decimal
	litoSecondTaper decimal.Decimal
}

// NewAustraliaStrategy creates the Australia strategy with 2024-25
// parameters.
func NewAustraliaStrategy() *AustraliaStrategy {
	return &AustraliaStrategy{
		brackets: domain.BracketTable{
			domain.NewBracket(0, 18200, 0),
			domain.NewBracket(18200, 45000, 0.16),
			domain.NewBracket(45000, 135000, 0.30),
			domain.NewBracket(135000, 190000, 0.37),
			domain.NewTopBracket(190000, 0.45),
		},
		levyRate:        decimal.NewFromFloat(0.02),
		levyThreshold:   decimal.NewFromInt(26000),
		levyPhaseRate:   decimal.NewFromFloat(0.10),
		litoMax:         decimal.NewFromInt(700),
		litoFirstStep:   decimal.NewFromInt(37500),
		litoSecondStep:  decimal.NewFromInt(45000),
		litoFirstTaper:  decimal.NewFromFloat(0.05),
		litoSecondTaper: decimal.NewFromFloat(0.015),
	}
}

// JurisdictionCode returns "AU".
func (s *AustraliaStrategy) JurisdictionCode() string { return "AU" }

// BracketTable returns the resident brackets.
func (s *AustraliaStrategy) BracketTable() domain.BracketTable { return s.brackets.Clone() }

// AvailableDeductions lists the low income tax offset.
func (s *AustraliaStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Low income tax offset", Description: "Non-refundable offset tapering out by $66,667", Cap: s.litoMax, Kind: domain.DeductionFixed},
	}
}

// medicareLevy applies the low-income phase-in before the flat 2%.
func (s *AustraliaStrategy) medicareLevy(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(s.levyThreshold) {
		return decimal.Zero
	}
	phased := income.Sub(s.levyThreshold).Mul(s.levyPhaseRate)
	return decimal.Min(phased, income.Mul(s.levyRate))
}

// lito computes the offset remaining at an income level.
func (s *AustraliaStrategy) lito(income decimal.Decimal) decimal.Decimal {
	offset := s.litoMax
	if income.GreaterThan(s.litoFirstStep) {
		top := decimal.Min(income, s.litoSecondStep)
		offset = offset.Sub(top.Sub(s.litoFirstStep).Mul(s.litoFirstTaper))
	}
	if income.GreaterThan(s.litoSecondStep) {
		offset = offset.Sub(income.Sub(s.litoSecondStep).Mul(s.litoSecondTaper))
	}
	return decimal.Max(offset, decimal.Zero)
}

// Calculate computes income tax less LITO plus the Medicare levy. No
// jurisdiction parameters are recognized.
func (s *AustraliaStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "AUD", "AU"); err != nil {
		return nil, err
	}

	incomeTax, allocations := ComputeProgressiveTax(gross, s.brackets)

	// Offset is capped at the computed tax, never refundable.
	offset := decimal.Min(s.lito(gross), incomeTax)
	incomeTax = decimal.Max(incomeTax.Sub(offset), decimal.Zero)

	levy := s.medicareLevy(gross)

	return buildBreakdown("AU", "AUD", gross, components{
		federal: incomeTax,
		health:  levy,
	}, s.brackets.MarginalRate(gross), allocations,
		"resident income tax less low income tax offset plus Medicare levy"), nil
}
