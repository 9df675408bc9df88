package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// FallbackStrategy produces a generic two-bracket estimate for jurisdictions
// that are not explicitly modeled. It accepts any currency and flags its
// results so callers can tell an estimate from a modeled breakdown.
type FallbackStrategy struct {
	code     string
	brackets domain.BracketTable
}

// NewFallbackStrategy creates a fallback strategy answering for code.
func NewFallbackStrategy(code string) *FallbackStrategy {
	return &FallbackStrategy{
		code: code,
		brackets: domain.BracketTable{
			domain.NewBracket(0, 50000, 0.10),
			domain.NewTopBracket(50000, 0.25),
		},
	}
}

// JurisdictionCode returns the code this instance was created for.
func (s *FallbackStrategy) JurisdictionCode() string { return s.code }

// BracketTable returns the generic estimate table.
func (s *FallbackStrategy) BracketTable() domain.BracketTable { return s.brackets.Clone() }

// AvailableDeductions returns nothing; the estimate models no deductions.
func (s *FallbackStrategy) AvailableDeductions() []domain.DeductionInfo { return nil }

// Calculate applies the generic table to the full gross income.
func (s *FallbackStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}

	tax, allocations := ComputeProgressiveTax(gross, s.brackets)
	breakdown := buildBreakdown(s.code, currency, gross, components{federal: tax},
		s.brackets.MarginalRate(gross), allocations,
		"generic estimate: jurisdiction "+s.code+" is not explicitly modeled")
	breakdown.Fallback = true
	return breakdown, nil
}
