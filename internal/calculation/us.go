package calculation

import (
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// US TAX ASSUMPTIONS:
//
// 1. Federal brackets: 2024 tables for single and married-filing-jointly.
//    Standard deduction: $14,600 single / $29,200 MFJ.
// 2. Social Security: 6.2% up to the $168,600 wage base.
// 3. Medicare: 1.45% uncapped, plus 0.9% additional Medicare above
//    $200,000 (single) / $250,000 (MFJ).
// 4. State tax: flat-rate states only, selected via the "state" parameter.
//    Graduated-rate states are out of scope for this approximation.

// USStrategy implements United States federal income tax plus FICA and an
// optional flat state income tax.
type USStrategy struct {
	bracketsSingle  domain.BracketTable
	bracketsMarried domain.BracketTable

	standardDedSingle  decimal.Decimal
	standardDedMarried decimal.Decimal

	ssRate         decimal.Decimal
	ssWageBase     decimal.Decimal
	medicareRate   decimal.Decimal
	addlMedRate    decimal.Decimal
	addlMedSingle  decimal.Decimal
	addlMedMarried decimal.Decimal

	stateRates map[string]decimal.Decimal
}

// NewUSStrategy creates the US strategy with 2024 parameters.
func NewUSStrategy() *USStrategy {
	return &USStrategy{
		bracketsSingle: domain.BracketTable{
			domain.NewBracket(0, 11600, 0.10),
			domain.NewBracket(11600, 47150, 0.12),
			domain.NewBracket(47150, 100525, 0.22),
			domain.NewBracket(100525, 191950, 0.24),
			domain.NewBracket(191950, 243725, 0.32),
			domain.NewBracket(243725, 609350, 0.35),
			domain.NewTopBracket(609350, 0.37),
		},
		bracketsMarried: domain.BracketTable{
			domain.NewBracket(0, 23200, 0.10),
			domain.NewBracket(23200, 94300, 0.12),
			domain.NewBracket(94300, 201050, 0.22),
			domain.NewBracket(201050, 383900, 0.24),
			domain.NewBracket(383900, 487450, 0.32),
			domain.NewBracket(487450, 731200, 0.35),
			domain.NewTopBracket(731200, 0.37),
		},
		standardDedSingle:  decimal.NewFromInt(14600),
		standardDedMarried: decimal.NewFromInt(29200),
		ssRate:             decimal.NewFromFloat(0.062),
		ssWageBase:         decimal.NewFromInt(168600),
		medicareRate:       decimal.NewFromFloat(0.0145),
		addlMedRate:        decimal.NewFromFloat(0.009),
		addlMedSingle:      decimal.NewFromInt(200000),
		addlMedMarried:     decimal.NewFromInt(250000),
		stateRates: map[string]decimal.Decimal{
			"PA": decimal.NewFromFloat(0.0307),
			"IL": decimal.NewFromFloat(0.0495),
			"CO": decimal.NewFromFloat(0.044),
			"IN": decimal.NewFromFloat(0.0305),
			"MI": decimal.NewFromFloat(0.0425),
			"NC": decimal.NewFromFloat(0.045),
			"UT": decimal.NewFromFloat(0.0465),
		},
	}
}

// JurisdictionCode returns "US".
func (s *USStrategy) JurisdictionCode() string { return "US" }

// BracketTable returns the single-filer federal table.
func (s *USStrategy) BracketTable() domain.BracketTable { return s.bracketsSingle.Clone() }

// AvailableDeductions lists the standard deductions.
func (s *USStrategy) AvailableDeductions() []domain.DeductionInfo {
	return []domain.DeductionInfo{
		{Name: "Standard deduction (single)", Description: "Flat deduction from taxable income for single filers", Cap: s.standardDedSingle, Kind: domain.DeductionFixed},
		{Name: "Standard deduction (married)", Description: "Flat deduction from taxable income for married filing jointly", Cap: s.standardDedMarried, Kind: domain.DeductionFixed},
	}
}

func (s *USStrategy) validateTables() error {
	return s.bracketsMarried.Validate()
}

// Calculate computes federal tax, FICA, and optional flat state tax.
// Recognized parameters: filing_status (single|married, default single),
// state (two-letter code of a flat-rate state, default none).
func (s *USStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, "USD", "US"); err != nil {
		return nil, err
	}

	filingStatus := paramString(params, "filing_status", "single")
	brackets := s.bracketsSingle
	standardDed := s.standardDedSingle
	addlMedThreshold := s.addlMedSingle
	switch filingStatus {
	case "single":
	case "married":
		brackets = s.bracketsMarried
		standardDed = s.standardDedMarried
		addlMedThreshold = s.addlMedMarried
	default:
		return nil, &domain.InvalidInputError{Field: "filing_status", Reason: fmt.Sprintf("expected single or married, got %q", filingStatus)}
	}

	var stateTax decimal.Decimal
	if state := paramString(params, "state", ""); state != "" {
		rate, ok := s.stateRates[state]
		if !ok {
			return nil, &domain.InvalidInputError{Field: "state", Reason: fmt.Sprintf("no flat-rate table for state %q", state)}
		}
		stateTax = gross.Mul(rate)
	}

	taxable := decimal.Max(gross.Sub(standardDed), decimal.Zero)
	federalTax, allocations := ComputeProgressiveTax(taxable, brackets)

	// Social Security stops at the wage base; Medicare never does.
	ssTax := capAt(gross, s.ssWageBase).Mul(s.ssRate)
	medicareTax := gross.Mul(s.medicareRate)
	if gross.GreaterThan(addlMedThreshold) {
		medicareTax = medicareTax.Add(gross.Sub(addlMedThreshold).Mul(s.addlMedRate))
	}

	return buildBreakdown("US", "USD", gross, components{
		federal:  federalTax,
		regional: stateTax,
		social:   ssTax,
		health:   medicareTax,
	}, brackets.MarginalRate(taxable), allocations,
		"federal income tax plus Social Security, Medicare, and flat state tax where selected"), nil
}
