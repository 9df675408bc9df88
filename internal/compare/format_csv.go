package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
)

// CSVFormatter formats comparison results as CSV, one row per scenario.
type CSVFormatter struct{}

// Format writes a header row, the base scenario, and every variant.
func (cf *CSVFormatter) Format(set *calculation.ComparisonSet) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	rows := [][]string{{
		"scenario", "jurisdiction", "gross_income", "total_tax", "net_income",
		"effective_rate", "delta_net_income", "delta_total_tax", "delta_effective_rate",
	}}
	rows = append(rows, scenarioRow("base", set.Base, nil))
	for i := range set.Variants {
		v := &set.Variants[i]
		rows = append(rows, scenarioRow(v.Name, v.Result, &v.Delta))
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	w.Flush()
	return sb.String(), nil
}

func scenarioRow(name string, tb *domain.TaxBreakdown, delta *calculation.ScenarioDelta) []string {
	row := []string{
		name,
		tb.Jurisdiction,
		tb.GrossIncome.StringFixed(2),
		tb.TotalTax.StringFixed(2),
		tb.NetIncome().StringFixed(2),
		tb.EffectiveRate.String(),
	}
	if delta == nil {
		return append(row, "", "", "")
	}
	return append(row,
		delta.NetIncome.StringFixed(2),
		delta.TotalTax.StringFixed(2),
		delta.EffectiveRate.String(),
	)
}
