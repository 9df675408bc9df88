package calculation

import (
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// FRANCE TAX ASSUMPTIONS (2024 schedule on 2023 income):
//
// 1. Family quotient: 1 part single, 2 parts married, +0.5 for each of the
//    first two dependents, +1 for each beyond. The schedule is applied to
//    income per part and the result multiplied back. Quotient capping is
//    not modeled.
// 2. 10% professional-expense deduction, capped at €14,171.
// 3. CSG 9.2% + CRDS 0.5% on 98.25% of gross salary.

// FranceStrategy implements French income tax with the family quotient and
// CSG/CRDS social contributions.
type FranceStrategy struct {
	schedule domain.BracketTable

	expenseRate decimal.Decimal
	expenseCap  decimal.Decimal

	csgCrdsRate decimal.Decimal
	csgBase     decimal.Decimal
}

// NewFranceStrategy creates the France strategy with 2024 parameters.
func NewFranceStrategy() *FranceStrategy {
	return &FranceStrategy{
		schedule: domain.BracketTable{
			domain.NewBracket(0, 11294, 0),
			domain.NewBracket(11294, 28797, 0.11),
			domain.NewBracket(28797, 82341, 0.30),
			domain.NewBracket(82341, 177106, 0.41),
			domain.NewTopBracket(177106, 0.45),
		},
		expenseRate: decimal.NewFromFloat(0.10),
		expenseCap:  decimal.NewFromInt(14171),
		csgCrdsRate: decimal.NewFromFloat(0.097),
		csgBase:     decimal.NewFromFloat(0.9825),
	}
}

// JurisdictionCode returns "FR".
func (s *FranceStrategy) JurisdictionCode() string { return "FR" }

// BracketTable returns the per-part schedule.
func (s *FranceStrategy) BracketTable() domain.BracketTable { return s.schedule.Clone() }

// AvailableDeductions lists the professional-expense deduction.
func (s *FranceStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Frais professionnels", Description: "10% deduction for professional expenses", Cap: s.expenseCap, Kind: domain.DeductionPercentage},
	}
}

// partsFor computes family-quotient parts from marital status and dependents.
func partsFor(married bool, dependents int) decimal.Decimal {
	parts := decimal.NewFromInt(1)
	if married {
		parts = decimal.NewFromInt(2)
	}
	for i := 0; i < dependents; i++ {
		if i < 2 {
			parts = parts.Add(decimal.NewFromFloat(0.5))
		} else {
			parts = parts.Add(decimal.NewFromInt(1))
		}
	}
	return parts
}

// Calculate computes quotient income tax plus CSG/CRDS.
// Recognized parameters: marital_status (single|married, default single),
// dependents (non-negative integer, default 0).
func (s *FranceStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "EUR", "FR"); err != nil {
		return nil, err
	}

	maritalStatus := paramString(params, "marital_status", "single")
	switch maritalStatus {
	case "single", "married":
	default:
		return nil, &domain.InvalidInputError{Field: "marital_status", Reason: fmt.Sprintf("expected single or married, got %q", maritalStatus)}
	}
	dependents, err := paramInt(params, "dependents", 0)
	if err != nil {
		return nil, err
	}
	if dependents < 0 {
		return nil, &domain.InvalidInputError{Field: "dependents", Reason: "must not be negative"}
	}

	expenses := decimal.Min(gross.Mul(s.expenseRate), s.expenseCap)
	taxable := decimal.Max(gross.Sub(expenses), decimal.Zero)

	parts := partsFor(maritalStatus == "married", dependents)
	perPart := taxable.Div(parts)
	// Allocations are reported on the per-part amount, which is what the
	// schedule actually saw.
	taxPerPart, allocations := ComputeProgressiveTax(perPart, s.schedule)
	incomeTax := taxPerPart.Mul(parts)

	social := gross.Mul(s.csgBase).Mul(s.csgCrdsRate)

	return buildBreakdown("FR", "EUR", gross, components{
		federal: incomeTax,
		social:  social,
	}, s.schedule.MarginalRate(perPart), allocations,
		fmt.Sprintf("family-quotient income tax over %s parts plus CSG/CRDS", parts.String())), nil
}
