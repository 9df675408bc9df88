package compare

import (
	"fmt"
	"strings"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing the base scenario against
// its variants. All monetary values are rounded for display.
func (tf *TableFormatter) Format(set *calculation.ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s, gross %s %s\n\n",
		set.Base.Jurisdiction, set.Base.GrossIncome.StringFixed(2), set.Base.Currency))

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Total Tax",
		numWidth, "Net Income",
		numWidth, "Eff. Rate"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "base",
		numWidth, set.Base.TotalTax.StringFixed(2),
		numWidth, set.Base.NetIncome().StringFixed(2),
		numWidth, percent(set.Base.EffectiveRate)))

	for _, v := range set.Variants {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			nameWidth, v.Name,
			numWidth, v.Result.TotalTax.StringFixed(2),
			numWidth, v.Result.NetIncome().StringFixed(2),
			numWidth, percent(v.Result.EffectiveRate)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(set.Variants) > 0 {
		sb.WriteString("\nDELTAS FROM BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, v := range set.Variants {
			sb.WriteString(fmt.Sprintf("%s:\n", v.Name))
			sb.WriteString(fmt.Sprintf("  Net income:     %s\n", signed(v.Delta.NetIncome)))
			sb.WriteString(fmt.Sprintf("  Total tax:      %s\n", signed(v.Delta.TotalTax)))
			sb.WriteString(fmt.Sprintf("  Effective rate: %s points\n",
				signed(v.Delta.EffectiveRate.Mul(decimal.NewFromInt(100)))))
		}
	}
	return sb.String()
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}
