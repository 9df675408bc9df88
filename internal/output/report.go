package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatBreakdown renders a TaxBreakdown in the requested format: "table",
// "json", or "csv". Monetary values are rounded to 2 decimal places here;
// the engine itself returns full precision.
func FormatBreakdown(tb *domain.TaxBreakdown, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return formatTable(tb.Rounded()), nil
	case "json":
		return formatJSON(tb.Rounded())
	case "csv":
		return formatCSV(tb.Rounded())
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func formatTable(tb *domain.TaxBreakdown) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("TAX BREAKDOWN: %s (%s)\n", tb.Jurisdiction, tb.Currency))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	if tb.Fallback {
		sb.WriteString("NOTE: generic estimate, jurisdiction not explicitly modeled\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
	}

	labelWidth := 28
	numWidth := 18
	row := func(label string, value string) {
		sb.WriteString(fmt.Sprintf("%-*s %*s\n", labelWidth, label, numWidth, value))
	}

	row("Gross income", tb.GrossIncome.StringFixed(2))
	row("National tax", tb.FederalTax.StringFixed(2))
	row("Regional tax", tb.RegionalTax.StringFixed(2))
	row("Local tax", tb.LocalTax.StringFixed(2))
	row("Social contributions", tb.SocialContributions.StringFixed(2))
	row("Health contributions", tb.HealthContributions.StringFixed(2))
	row("Other deductions", tb.OtherDeductions.StringFixed(2))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	row("Total tax", tb.TotalTax.StringFixed(2))
	row("Net income", tb.NetIncome().StringFixed(2))
	row("Effective rate", formatPercent(tb.EffectiveRate))
	row("Marginal rate", formatPercent(tb.MarginalRate))

	if len(tb.Allocations) > 0 {
		sb.WriteString("\nBRACKET ALLOCATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, a := range tb.Allocations {
			upper := a.Upper.StringFixed(0)
			if a.Unbounded {
				upper = "∞"
			}
			sb.WriteString(fmt.Sprintf("%-12s %-14s %8s %*s\n",
				a.Lower.StringFixed(0), upper, formatPercent(a.Rate),
				numWidth, a.Taxed.StringFixed(2)))
		}
	}

	if tb.ExplanatoryNote != "" {
		sb.WriteString("\n" + tb.ExplanatoryNote + "\n")
	}
	return sb.String()
}

func formatJSON(tb *domain.TaxBreakdown) (string, error) {
	data, err := json.MarshalIndent(tb, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	return string(data), nil
}

func formatCSV(tb *domain.TaxBreakdown) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	rows := [][]string{
		{"field", "value"},
		{"jurisdiction", tb.Jurisdiction},
		{"currency", tb.Currency},
		{"gross_income", tb.GrossIncome.StringFixed(2)},
		{"federal_tax", tb.FederalTax.StringFixed(2)},
		{"regional_tax", tb.RegionalTax.StringFixed(2)},
		{"local_tax", tb.LocalTax.StringFixed(2)},
		{"social_contributions", tb.SocialContributions.StringFixed(2)},
		{"health_contributions", tb.HealthContributions.StringFixed(2)},
		{"other_deductions", tb.OtherDeductions.StringFixed(2)},
		{"total_tax", tb.TotalTax.StringFixed(2)},
		{"net_income", tb.NetIncome().StringFixed(2)},
		{"effective_rate", tb.EffectiveRate.String()},
		{"marginal_rate", tb.MarginalRate.String()},
		{"fallback", fmt.Sprintf("%t", tb.Fallback)},
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	w.Flush()
	return sb.String(), nil
}

func formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
