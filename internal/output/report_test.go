package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBreakdown() *domain.TaxBreakdown {
	return &domain.TaxBreakdown{
		Jurisdiction:        "US",
		Currency:            "USD",
		GrossIncome:         decimal.RequireFromString("100000"),
		FederalTax:          decimal.RequireFromString("13841"),
		SocialContributions: decimal.RequireFromString("6200"),
		HealthContributions: decimal.RequireFromString("1450.005"),
		TotalTax:            decimal.RequireFromString("21491.005"),
		MarginalRate:        decimal.RequireFromString("0.22"),
		EffectiveRate:       decimal.RequireFromString("0.21491005"),
		Allocations: []domain.BracketAllocation{
			{Lower: decimal.Zero, Upper: decimal.NewFromInt(11600), Rate: decimal.RequireFromString("0.1"), Taxed: decimal.NewFromInt(11600)},
			{Lower: decimal.NewFromInt(11600), Rate: decimal.RequireFromString("0.37"), Unbounded: true, Taxed: decimal.NewFromInt(73800)},
		},
		ExplanatoryNote: "federal income tax plus FICA",
	}
}

func TestFormatBreakdown_Table(t *testing.T) {
	rendered, err := FormatBreakdown(sampleBreakdown(), "table")
	require.NoError(t, err)

	// Monetary values rounded to 2 decimal places for display.
	assert.Contains(t, rendered, "21491.01")
	assert.Contains(t, rendered, "1450.01")
	assert.Contains(t, rendered, "US (USD)")
	assert.Contains(t, rendered, "BRACKET ALLOCATIONS")
	assert.Contains(t, rendered, "federal income tax plus FICA")
	assert.NotContains(t, rendered, "generic estimate")
}

func TestFormatBreakdown_TableFlagsFallback(t *testing.T) {
	tb := sampleBreakdown()
	tb.Fallback = true
	rendered, err := FormatBreakdown(tb, "")
	require.NoError(t, err)
	assert.Contains(t, rendered, "generic estimate")
}

func TestFormatBreakdown_JSON(t *testing.T) {
	rendered, err := FormatBreakdown(sampleBreakdown(), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	assert.Equal(t, "US", decoded["jurisdiction"])
	assert.Equal(t, "21491.01", decoded["totalTax"])
	assert.Contains(t, decoded, "allocations")
}

func TestFormatBreakdown_CSV(t *testing.T) {
	rendered, err := FormatBreakdown(sampleBreakdown(), "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(rendered)).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 2)
	assert.Equal(t, []string{"field", "value"}, rows[0])

	fields := make(map[string]string, len(rows))
	for _, row := range rows[1:] {
		fields[row[0]] = row[1]
	}
	assert.Equal(t, "21491.01", fields["total_tax"])
	assert.Equal(t, "78508.99", fields["net_income"])
	assert.Equal(t, "false", fields["fallback"])
}

func TestFormatBreakdown_UnknownFormat(t *testing.T) {
	_, err := FormatBreakdown(sampleBreakdown(), "xml")
	assert.Error(t, err)
}
