package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxCalculationParams is the input accepted by the calculation facade.
// JurisdictionParams is the generic key/value boundary for per-jurisdiction
// options (filing status, region, regime, age, ...); each strategy parses
// only the keys it understands and ignores the rest.
type TaxCalculationParams struct {
	GrossIncome        decimal.Decimal   `json:"grossIncome" yaml:"gross_income"`
	CurrencyCode       string            `json:"currencyCode" yaml:"currency_code"`
	JurisdictionCode   string            `json:"jurisdictionCode" yaml:"jurisdiction_code"`
	JurisdictionParams map[string]string `json:"jurisdictionParams,omitempty" yaml:"jurisdiction_params,omitempty"`
}

// BracketAllocation records how much of a taxable amount fell inside one
// bracket. Computed fresh on every calculation, never persisted.
type BracketAllocation struct {
	Lower     decimal.Decimal `json:"lower"`
	Upper     decimal.Decimal `json:"upper"`
	Unbounded bool            `json:"unbounded,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
	Taxed     decimal.Decimal `json:"taxed"`
}

// TaxBreakdown is the normalized result of a jurisdiction calculation.
// All monetary fields are in the input currency at full precision; rounding
// for display is the presentation layer's job (see Rounded).
// TotalTax equals the sum of the six component fields by construction.
type TaxBreakdown struct {
	Jurisdiction string          `json:"jurisdiction"`
	Currency     string          `json:"currency"`
	GrossIncome  decimal.Decimal `json:"grossIncome"`

	FederalTax          decimal.Decimal `json:"federalTax"`
	RegionalTax         decimal.Decimal `json:"regionalTax"`
	LocalTax            decimal.Decimal `json:"localTax"`
	SocialContributions decimal.Decimal `json:"socialContributions"`
	HealthContributions decimal.Decimal `json:"healthContributions"`
	OtherDeductions     decimal.Decimal `json:"otherDeductions"`

	TotalTax      decimal.Decimal `json:"totalTax"`
	MarginalRate  decimal.Decimal `json:"marginalRate"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`

	Allocations []BracketAllocation `json:"allocations,omitempty"`

	// Fallback marks results produced by the generic estimate rather than an
	// explicitly modeled jurisdiction.
	Fallback        bool   `json:"fallback,omitempty"`
	ExplanatoryNote string `json:"explanatoryNote,omitempty"`
}

// NetIncome returns gross income minus total tax.
func (tb *TaxBreakdown) NetIncome() decimal.Decimal {
	return tb.GrossIncome.Sub(tb.TotalTax)
}

// Rounded returns a display copy with monetary fields rounded to 2 decimal
// places and rates to 4.
func (tb *TaxBreakdown) Rounded() *TaxBreakdown {
	out := *tb
	out.GrossIncome = tb.GrossIncome.Round(2)
	out.FederalTax = tb.FederalTax.Round(2)
	out.RegionalTax = tb.RegionalTax.Round(2)
	out.LocalTax = tb.LocalTax.Round(2)
	out.SocialContributions = tb.SocialContributions.Round(2)
	out.HealthContributions = tb.HealthContributions.Round(2)
	out.OtherDeductions = tb.OtherDeductions.Round(2)
	out.TotalTax = tb.TotalTax.Round(2)
	out.MarginalRate = tb.MarginalRate.Round(4)
	out.EffectiveRate = tb.EffectiveRate.Round(4)
	out.Allocations = make([]BracketAllocation, len(tb.Allocations))
	for i, a := range tb.Allocations {
		a.Taxed = a.Taxed.Round(2)
		out.Allocations[i] = a
	}
	return &out
}

// DeductionKind distinguishes fixed-amount deductions from percentage ones.
type DeductionKind string

const (
	DeductionFixed      DeductionKind = "fixed"
	DeductionPercentage DeductionKind = "percentage"
)

// DeductionInfo describes a deduction a jurisdiction offers. Informational
// only; it does not drive the calculation.
type DeductionInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Cap         decimal.Decimal `json:"cap"`
	Kind        DeductionKind   `json:"kind"`
}

// TaxCalculationData is the record shape exchanged with the persistence
// collaborator for save/favorite/export workflows. The engine has no
// knowledge of how or where it is stored.
type TaxCalculationData struct {
	ID            int64           `json:"id,omitempty"`
	Jurisdiction  string          `json:"jurisdiction"`
	GrossIncome   decimal.Decimal `json:"grossIncome"`
	CurrencyCode  string          `json:"currencyCode"`
	ComputedTax   decimal.Decimal `json:"computedTax"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	Timestamp     time.Time       `json:"timestamp"`
	Note          string          `json:"note,omitempty"`
}

// RecordFromBreakdown builds a persistence record from a calculation result.
func RecordFromBreakdown(tb *TaxBreakdown, at time.Time, note string) TaxCalculationData {
	return TaxCalculationData{
		Jurisdiction:  tb.Jurisdiction,
		GrossIncome:   tb.GrossIncome,
		CurrencyCode:  tb.Currency,
		ComputedTax:   tb.TotalTax,
		NetIncome:     tb.NetIncome(),
		EffectiveRate: tb.EffectiveRate,
		Timestamp:     at,
		Note:          note,
	}
}
