package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// BRAZIL TAX ASSUMPTIONS (2024, annualized from the monthly tables):
//
// 1. IRPF brackets: exempt to R$26,964, then 7.5% / 15% / 22.5% / 27.5%.
// 2. INSS employee contribution is itself progressive (7.5% to 14%) and
//    stops at the R$93,622 annual ceiling; it is deducted from the IRPF
//    taxable base along with R$2,275.08 per dependent.

// BrazilStrategy implements Brazilian IRPF with progressive INSS
// contributions.
type BrazilStrategy struct {
	irpf domain.BracketTable
	inss domain.BracketTable

	inssCeiling        decimal.Decimal
	dependentDeduction decimal.Decimal
}

// NewBrazilStrategy creates the Brazil strategy with 2024 parameters.
func NewBrazilStrategy() *BrazilStrategy {
	return &BrazilStrategy{
		irpf: domain.BracketTable{
			domain.NewBracket(0, 26964, 0),
			domain.NewBracket(26964, 33920, 0.075),
			domain.NewBracket(33920, 45013, 0.15),
			domain.NewBracket(45013, 55976, 0.225),
			domain.NewTopBracket(55976, 0.275),
		},
		inss: domain.BracketTable{
			domain.NewBracket(0, 16954, 0.075),
			domain.NewBracket(16954, 31105, 0.09),
			domain.NewBracket(31105, 46663, 0.12),
			domain.NewTopBracket(46663, 0.14),
		},
		inssCeiling:        decimal.NewFromInt(93622),
		dependentDeduction: decimal.NewFromFloat(2275.08),
	}
}

// JurisdictionCode returns "BR".
func (s *BrazilStrategy) JurisdictionCode() string { return "BR" }

// BracketTable returns the IRPF table.
func (s *BrazilStrategy) BracketTable() domain.BracketTable { return s.irpf.Clone() }

// AvailableDeductions lists the INSS and dependent deductions.
func (s *BrazilStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "INSS contribution", Description: "Social security contribution deducted from the IRPF base", Cap: decimal.NewFromFloat(10813.60), Kind: domain.DeductionPercentage},
		{Name: "Dependent deduction", Description: "Per-dependent deduction from the IRPF base", Cap: s.dependentDeduction, Kind: domain.DeductionFixed},
	}
}

func (s *BrazilStrategy) validateTables() error {
	return s.inss.Validate()
}

// Calculate computes INSS, then IRPF on the contribution-reduced base.
// Recognized parameters: dependents (non-negative integer, default 0).
func (s *BrazilStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "BRL", "BR"); err != nil {
		return nil, err
	}

	dependents, err := paramInt(params, "dependents", 0)
	if err != nil {
		return nil, err
	}
	if dependents < 0 {
		return nil, &domain.InvalidInputError{Field: "dependents", Reason: "must not be negative"}
	}

	// INSS is progressive over the capped contribution base.
	inss, _ := ComputeProgressiveTax(capAt(gross, s.inssCeiling), s.inss)

	dependentTotal := s.dependentDeduction.Mul(decimal.NewFromInt(int64(dependents)))
	taxable := decimal.Max(gross.Sub(inss).Sub(dependentTotal), decimal.Zero)

	irpf, allocations := ComputeProgressiveTax(taxable, s.irpf)

	return buildBreakdown("BR", "BRL", gross, components{
		federal: irpf,
		social:  inss,
	}, s.irpf.MarginalRate(taxable), allocations,
		"IRPF on the INSS- and dependent-reduced base plus progressive INSS"), nil
}
