package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jurisdictions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validOverrides = `
jurisdictions:
  - code: za
    currency: zar
    standard_deduction: 0
    note: simplified South African schedule
    brackets:
      - lower: 0
        upper: 237100
        rate: 0.18
      - lower: 237100
        upper: 370500
        rate: 0.26
      - lower: 370500
        rate: 0.45
        unbounded: true
    flat_charges:
      - name: UIF
        rate: 0.01
        ceiling: 212544
        component: social
`

func TestInputParser_LoadFromFile(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile(writeConfig(t, validOverrides))
	require.NoError(t, err)
	require.Len(t, config.Jurisdictions, 1)
	assert.Equal(t, "za", config.Jurisdictions[0].Code)
}

func TestInputParser_Apply(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, validOverrides))
	require.NoError(t, err)

	registry, err := calculation.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, parser.Apply(config, registry))
	require.True(t, registry.Has("ZA"))

	engine := calculation.NewEngine(registry)
	result, err := engine.Calculate(domain.TaxCalculationParams{
		GrossIncome:      decimal.NewFromInt(300000),
		CurrencyCode:     "ZAR",
		JurisdictionCode: "ZA",
	})
	require.NoError(t, err)

	// 237,100 at 18% plus 62,900 at 26%, and 1% UIF on capped earnings.
	expectedTax := decimal.RequireFromString("59032")
	assert.True(t, result.FederalTax.Equal(expectedTax), "got %s", result.FederalTax)
	assert.True(t, result.SocialContributions.Equal(decimal.RequireFromString("2125.44")))
	assert.False(t, result.Fallback, "configured jurisdictions are modeled, not estimated")
}

func TestInputParser_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestInputParser_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "jurisdictions: []\n"},
		{"missing code", `
jurisdictions:
  - currency: usd
    brackets:
      - lower: 0
        rate: 0.1
        unbounded: true
`},
		{"bad currency", `
jurisdictions:
  - code: XX
    currency: dollars
    brackets:
      - lower: 0
        rate: 0.1
        unbounded: true
`},
		{"no terminal bracket", `
jurisdictions:
  - code: XX
    currency: xxx
    brackets:
      - lower: 0
        upper: 1000
        rate: 0.1
`},
		{"duplicate code", `
jurisdictions:
  - code: XX
    currency: xxx
    brackets:
      - lower: 0
        rate: 0.1
        unbounded: true
  - code: xx
    currency: xxx
    brackets:
      - lower: 0
        rate: 0.2
        unbounded: true
`},
		{"negative deduction", `
jurisdictions:
  - code: XX
    currency: xxx
    standard_deduction: -100
    brackets:
      - lower: 0
        rate: 0.1
        unbounded: true
`},
		{"not yaml", "::: nope"},
	}

	parser := NewInputParser()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.LoadFromFile(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}
