package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonSet(t *testing.T) *calculation.ComparisonSet {
	t.Helper()
	registry, err := calculation.NewRegistry()
	require.NoError(t, err)
	engine := calculation.NewEngine(registry)

	base := domain.TaxCalculationParams{
		GrossIncome:      decimal.NewFromInt(100000),
		CurrencyCode:     "USD",
		JurisdictionCode: "US",
	}
	set, err := engine.CompareScenarios(base, []calculation.ScenarioVariant{
		{Name: "married", Params: domain.TaxCalculationParams{
			GrossIncome:        base.GrossIncome,
			CurrencyCode:       "USD",
			JurisdictionCode:   "US",
			JurisdictionParams: map[string]string{"filing_status": "married"},
		}},
	})
	require.NoError(t, err)
	return set
}

func TestTableFormatter(t *testing.T) {
	rendered := (&TableFormatter{}).Format(comparisonSet(t))

	assert.Contains(t, rendered, "TAX SCENARIO COMPARISON")
	assert.Contains(t, rendered, "married")
	assert.Contains(t, rendered, "DELTAS FROM BASE")
	// Married filing owes less, so the tax delta is negative and the net
	// income delta carries an explicit plus sign.
	assert.Contains(t, rendered, "Total tax:      -")
	assert.Contains(t, rendered, "Net income:     +")
}

func TestJSONFormatter(t *testing.T) {
	rendered, err := (&JSONFormatter{}).Format(comparisonSet(t))
	require.NoError(t, err)

	var decoded struct {
		Base     map[string]any `json:"base"`
		Variants []struct {
			Name  string         `json:"name"`
			Delta map[string]any `json:"delta"`
		} `json:"variants"`
	}
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	assert.Equal(t, "US", decoded.Base["jurisdiction"])
	require.Len(t, decoded.Variants, 1)
	assert.Equal(t, "married", decoded.Variants[0].Name)
	assert.Contains(t, decoded.Variants[0].Delta, "totalTax")
}

func TestCSVFormatter(t *testing.T) {
	rendered, err := (&CSVFormatter{}).Format(comparisonSet(t))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(rendered)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header, base, and one variant")
	assert.Equal(t, "scenario", rows[0][0])
	assert.Equal(t, "base", rows[1][0])
	assert.Equal(t, "married", rows[2][0])
	assert.Empty(t, rows[1][6], "base row has no deltas")
	assert.NotEmpty(t, rows[2][6])
}
