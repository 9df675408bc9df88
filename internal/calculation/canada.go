package calculation

import (
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// CANADA TAX ASSUMPTIONS:
//
// 1. Federal brackets: 2024 tables. The basic personal amount is modeled as
//    a non-refundable credit at the lowest federal rate.
// 2. Provincial tax: own bracket table per supported province, applied to
//    the same taxable income. Provincial credits are not modeled.
// 3. CPP: 5.95% on pensionable earnings between the $3,500 exemption and
//    the $68,500 maximum. EI: 1.66% up to $63,200 insurable earnings.

// CanadaStrategy implements Canadian federal plus provincial income tax with
// CPP and EI contributions.
type CanadaStrategy struct {
	federal   domain.BracketTable
	provinces map[string]domain.BracketTable

	basicPersonalAmount decimal.Decimal
	lowestFederalRate   decimal.Decimal

	cppRate      decimal.Decimal
	cppExemption decimal.Decimal
	cppMax       decimal.Decimal
	eiRate       decimal.Decimal
	eiMax        decimal.Decimal
}

// NewCanadaStrategy creates the Canada strategy with 2024 parameters.
func NewCanadaStrategy() *CanadaStrategy {
	return &CanadaStrategy{
		federal: domain.BracketTable{
			domain.NewBracket(0, 55867, 0.15),
			domain.NewBracket(55867, 111733, 0.205),
			domain.NewBracket(111733, 173205, 0.26),
			domain.NewBracket(173205, 246752, 0.29),
			domain.NewTopBracket(246752, 0.33),
		},
		provinces: map[string]domain.BracketTable{
			"ON": {
				domain.NewBracket(0, 51446, 0.0505),
				domain.NewBracket(51446, 102894, 0.0915),
				domain.NewBracket(102894, 150000, 0.1116),
				domain.NewBracket(150000, 220000, 0.1216),
				domain.NewTopBracket(220000, 0.1316),
			},
			"BC": {
				domain.NewBracket(0, 47937, 0.0506),
				domain.NewBracket(47937, 95875, 0.077),
				domain.NewBracket(95875, 110076, 0.105),
				domain.NewBracket(110076, 133664, 0.1229),
				domain.NewBracket(133664, 181232, 0.147),
				domain.NewBracket(181232, 252752, 0.168),
				domain.NewTopBracket(252752, 0.205),
			},
			"AB": {
				domain.NewBracket(0, 148269, 0.10),
				domain.NewBracket(148269, 177922, 0.12),
				domain.NewBracket(177922, 237230, 0.13),
				domain.NewBracket(237230, 355845, 0.14),
				domain.NewTopBracket(355845, 0.15),
			},
			"QC": {
				domain.NewBracket(0, 51780, 0.14),
				domain.NewBracket(51780, 103545, 0.19),
				domain.NewBracket(103545, 126000, 0.24),
				domain.NewTopBracket(126000, 0.2575),
			},
		},
		basicPersonalAmount: decimal.NewFromInt(15705),
		lowestFederalRate:   decimal.NewFromFloat(0.15),
		cppRate:             decimal.NewFromFloat(0.0595),
		cppExemption:        decimal.NewFromInt(3500),
		cppMax:              decimal.NewFromInt(68500),
		eiRate:              decimal.NewFromFloat(0.0166),
		eiMax:               decimal.NewFromInt(63200),
	}
}

// JurisdictionCode returns "CA".
func (s *CanadaStrategy) JurisdictionCode() string { return "CA" }

// BracketTable returns the federal table.
func (s *CanadaStrategy) BracketTable() domain.BracketTable { return s.federal.Clone() }

// AvailableDeductions lists the basic personal amount credit.
func (s *CanadaStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Basic personal amount", Description: "Non-refundable credit at the lowest federal rate", Cap: s.basicPersonalAmount, Kind: domain.DeductionFixed},
	}
}

func (s *CanadaStrategy) validateTables() error {
	for code, table := range s.provinces {
		if err := table.Validate(); err != nil {
			return &domain.ConfigurationError{Jurisdiction: "CA-" + code, Reason: err.Error()}
		}
	}
	return nil
}

// Calculate computes federal plus provincial tax, CPP, and EI.
// Recognized parameters: province (ON|BC|AB|QC, default ON).
func (s *CanadaStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "CAD", "CA"); err != nil {
		return nil, err
	}

	province := paramString(params, "province", "ON")
	provincial, ok := s.provinces[province]
	if !ok {
		return nil, &domain.InvalidInputError{Field: "province", Reason: fmt.Sprintf("no bracket table for province %q", province)}
	}

	federalTax, allocations := ComputeProgressiveTax(gross, s.federal)

	// Basic personal amount credit, never below zero.
	credit := s.basicPersonalAmount.Mul(s.lowestFederalRate)
	federalTax = decimal.Max(federalTax.Sub(credit), decimal.Zero)

	provincialTax, _ := ComputeProgressiveTax(gross, provincial)

	cppBase := decimal.Max(capAt(gross, s.cppMax).Sub(s.cppExemption), decimal.Zero)
	cpp := cppBase.Mul(s.cppRate)
	ei := capAt(gross, s.eiMax).Mul(s.eiRate)

	return buildBreakdown("CA", "CAD", gross, components{
		federal:  federalTax,
		regional: provincialTax,
		social:   cpp.Add(ei),
	}, s.federal.MarginalRate(gross), allocations,
		fmt.Sprintf("federal and %s provincial tax plus CPP and EI contributions", province)), nil
}
