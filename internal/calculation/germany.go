package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// GERMANY TAX ASSUMPTIONS (2024):
//
// 1. The §32a piecewise formula is approximated by marginal brackets:
//    0% to the €11,604 basic allowance, then 14% / 24% / 42% / 45%. The real
//    schedule phases rates linearly inside the first two zones, so this
//    overstates tax slightly at zone entry.
// 2. Solidarity surcharge: 5.5% of income tax once income tax exceeds the
//    €18,130 exemption threshold (single filer free limit, simplified).
// 3. Church tax: 9% of income tax when the church_member flag is set.
// 4. Employee social contributions with 2024 (west) ceilings: pension 9.3%
//    and unemployment 1.3% up to €90,600; health 7.3% + 0.85% average
//    supplement and care 1.7% up to €62,100.

// GermanyStrategy implements German income tax, solidarity surcharge, church
// tax, and employee social insurance.
type GermanyStrategy struct {
	brackets domain.BracketTable

	soliRate      decimal.Decimal
	soliThreshold decimal.Decimal
	churchRate    decimal.Decimal

	pensionRate      decimal.Decimal
	unemploymentRate decimal.Decimal
	pensionCeiling   decimal.Decimal
	healthRate       decimal.Decimal
	careRate         decimal.Decimal
	healthCeiling    decimal.Decimal
}

// NewGermanyStrategy creates the Germany strategy with 2024 parameters.
func NewGermanyStrategy() *GermanyStrategy {
	return &GermanyStrategy{
		brackets: domain.BracketTable{
			domain.NewBracket(0, 11604, 0),
			domain.NewBracket(11604, 17005, 0.14),
			domain.NewBracket(17005, 66760, 0.24),
			domain.NewBracket(66760, 277825, 0.42),
			domain.NewTopBracket(277825, 0.45),
		},
		soliRate:         decimal.NewFromFloat(0.055),
		soliThreshold:    decimal.NewFromInt(18130),
		churchRate:       decimal.NewFromFloat(0.09),
		pensionRate:      decimal.NewFromFloat(0.093),
		unemploymentRate: decimal.NewFromFloat(0.013),
		pensionCeiling:   decimal.NewFromInt(90600),
		healthRate:       decimal.NewFromFloat(0.0815),
		careRate:         decimal.NewFromFloat(0.017),
		healthCeiling:    decimal.NewFromInt(62100),
	}
}

// JurisdictionCode returns "DE".
func (s *GermanyStrategy) JurisdictionCode() string { return "DE" }

// BracketTable returns the approximated income tax schedule.
func (s *GermanyStrategy) BracketTable() domain.BracketTable { return s.brackets.Clone() }

// AvailableDeductions lists the basic allowance.
func (s *GermanyStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Grundfreibetrag", Description: "Basic allowance taxed at 0%", Cap: decimal.NewFromInt(11604), Kind: domain.DeductionFixed},
	}
}

// Calculate computes income tax, solidarity surcharge, optional church tax,
// and employee social insurance. Recognized parameters: church_member
// (bool, default false).
func (s *GermanyStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "EUR", "DE"); err != nil {
		return nil, err
	}

	churchMember, err := paramBool(params, "church_member", false)
	if err != nil {
		return nil, err
	}

	incomeTax, allocations := ComputeProgressiveTax(gross, s.brackets)

	var soli decimal.Decimal
	if incomeTax.GreaterThan(s.soliThreshold) {
		soli = incomeTax.Mul(s.soliRate)
	}

	var churchTax decimal.Decimal
	if churchMember {
		churchTax = incomeTax.Mul(s.churchRate)
	}

	pension := capAt(gross, s.pensionCeiling).Mul(s.pensionRate.Add(s.unemploymentRate))
	health := capAt(gross, s.healthCeiling).Mul(s.healthRate.Add(s.careRate))

	return buildBreakdown("DE", "EUR", gross, components{
		federal: incomeTax,
		social:  pension,
		health:  health,
		other:   soli.Add(churchTax),
	}, s.brackets.MarginalRate(gross), allocations,
		"income tax with solidarity surcharge, church tax if member, and employee social insurance"), nil
}
