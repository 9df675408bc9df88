package calculation

import (
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// SINGAPORE TAX ASSUMPTIONS (YA 2024):
//
// 1. Resident progressive table from 0% to 24%; earned income relief
//    S$1,000 deducted from the taxable base.
// 2. Non-residents pay the higher of a flat 15% on gross employment income
//    or the resident progressive tax, with no reliefs.
// 3. Employee CPF 20% (under 55) on ordinary wages up to the S$102,000
//    annual ceiling. Residents and permanent residents only.

// SingaporeStrategy implements Singapore resident and non-resident income
// tax with employee CPF.
type SingaporeStrategy struct {
	brackets domain.BracketTable

	earnedIncomeRelief decimal.Decimal
	nonResidentRate    decimal.Decimal
	cpfRate            decimal.Decimal
	cpfCeiling         decimal.Decimal
}

// NewSingaporeStrategy creates the Singapore strategy with YA 2024
// parameters.
func NewSingaporeStrategy() *SingaporeStrategy {
	return &SingaporeStrategy{
		brackets: domain.BracketTable{
			domain.NewBracket(0, 20000, 0),
			domain.NewBracket(20000, 30000, 0.02),
			domain.NewBracket(30000, 40000, 0.035),
			domain.NewBracket(40000, 80000, 0.07),
			domain.NewBracket(80000, 120000, 0.115),
			domain.NewBracket(120000, 160000, 0.15),
			domain.NewBracket(160000, 200000, 0.18),
			domain.NewBracket(200000, 240000, 0.19),
			domain.NewBracket(240000, 280000, 0.195),
			domain.NewBracket(280000, 320000, 0.20),
			domain.NewBracket(320000, 500000, 0.22),
			domain.NewBracket(500000, 1000000, 0.23),
			domain.NewTopBracket(1000000, 0.24),
		},
		earnedIncomeRelief: decimal.NewFromInt(1000),
		nonResidentRate:    decimal.NewFromFloat(0.15),
		cpfRate:            decimal.NewFromFloat(0.20),
		cpfCeiling:         decimal.NewFromInt(102000),
	}
}

// JurisdictionCode returns "SG".
func (s *SingaporeStrategy) JurisdictionCode() string { return "SG" }

// BracketTable returns the resident table.
func (s *SingaporeStrategy) BracketTable() domain.BracketTable { return s.brackets.Clone() }

// AvailableDeductions lists the earned income relief.
func (s *SingaporeStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Earned income relief", Description: "Flat relief for earned income, under 55", Cap: s.earnedIncomeRelief, Kind: domain.DeductionFixed},
	}
}

// Calculate computes resident or non-resident income tax plus CPF.
// Recognized parameters: resident (bool, default true).
func (s *SingaporeStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "SGD", "SG"); err != nil {
		return nil, err
	}

	resident, err := paramBool(params, "resident", true)
	if err != nil {
		return nil, err
	}

	if !resident {
		progressive, allocations := ComputeProgressiveTax(gross, s.brackets)
		flat := gross.Mul(s.nonResidentRate)
		tax := decimal.Max(flat, progressive)
		marginal := s.nonResidentRate
		if progressive.GreaterThan(flat) {
			marginal = s.brackets.MarginalRate(gross)
		}
		return buildBreakdown("SG", "SGD", gross, components{federal: tax},
			marginal, allocations,
			"non-resident employment income: higher of flat 15% and resident progressive tax"), nil
	}

	taxable := decimal.Max(gross.Sub(s.earnedIncomeRelief), decimal.Zero)
	tax, allocations := ComputeProgressiveTax(taxable, s.brackets)
	cpf := capAt(gross, s.cpfCeiling).Mul(s.cpfRate)

	return buildBreakdown("SG", "SGD", gross, components{
		federal: tax,
		social:  cpf,
	}, s.brackets.MarginalRate(taxable), allocations,
		"resident progressive tax with earned income relief plus employee CPF"), nil
}
