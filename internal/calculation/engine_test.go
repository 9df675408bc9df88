package calculation

import (
	"errors"
	"testing"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	registry, err := NewRegistry()
	require.NoError(t, err)
	return NewEngine(registry)
}

func usParams(income float64) domain.TaxCalculationParams {
	return domain.TaxCalculationParams{
		GrossIncome:      decimal.NewFromFloat(income),
		CurrencyCode:     "USD",
		JurisdictionCode: "US",
	}
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	assert.NotNil(t, engine.Registry, "Should hold the registry")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.True(t, engine.UseFallback, "Fallback should be on by default")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := newTestEngine(t)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_Calculate_InvalidIncome(t *testing.T) {
	engine := newTestEngine(t)

	for _, income := range []float64{0, -100} {
		params := usParams(income)
		result, err := engine.Calculate(params)
		require.Error(t, err)
		assert.Nil(t, result)

		var iie *domain.InvalidInputError
		require.True(t, errors.As(err, &iie), "should be InvalidInputError")
		assert.Equal(t, "grossIncome", iie.Field)
	}
}

func TestEngine_Calculate_BlankJurisdiction(t *testing.T) {
	engine := newTestEngine(t)

	params := usParams(50000)
	params.JurisdictionCode = "   "
	_, err := engine.Calculate(params)

	var iie *domain.InvalidInputError
	require.True(t, errors.As(err, &iie))
	assert.Equal(t, "jurisdictionCode", iie.Field)
}

func TestEngine_Calculate_CurrencyMismatchPassesThrough(t *testing.T) {
	engine := newTestEngine(t)

	params := usParams(50000)
	params.CurrencyCode = "EUR"
	_, err := engine.Calculate(params)

	var iie *domain.InvalidInputError
	require.True(t, errors.As(err, &iie), "strategy error must pass through unwrapped")
	assert.Equal(t, "currencyCode", iie.Field)
}

func TestEngine_Calculate_FallbackForUnknownJurisdiction(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(domain.TaxCalculationParams{
		GrossIncome:      decimal.NewFromInt(75000),
		CurrencyCode:     "CHF",
		JurisdictionCode: "ch",
	})
	require.NoError(t, err)

	assert.True(t, result.Fallback, "result must be flagged as a fallback estimate")
	assert.Equal(t, "CH", result.Jurisdiction)
	assert.NotEmpty(t, result.ExplanatoryNote)
	// 50000 at 10% plus 25000 at 25%.
	assert.True(t, result.TotalTax.Equal(decimal.NewFromInt(11250)), "got %s", result.TotalTax)
	assert.True(t, result.EffectiveRate.Equal(decimal.NewFromFloat(0.15)))
}

func TestEngine_Calculate_StrictUnknownJurisdiction(t *testing.T) {
	engine := newTestEngine(t)
	engine.UseFallback = false

	_, err := engine.Calculate(domain.TaxCalculationParams{
		GrossIncome:      decimal.NewFromInt(75000),
		CurrencyCode:     "CHF",
		JurisdictionCode: "CH",
	})
	require.Error(t, err)

	var uje *domain.UnsupportedJurisdictionError
	require.True(t, errors.As(err, &uje))
	assert.Equal(t, "CH", uje.Code)
}

func TestEngine_Calculate_ModeledResultNotFallback(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(usParams(75000))
	require.NoError(t, err)
	assert.False(t, result.Fallback, "modeled jurisdictions must not be flagged")
}

func TestEngine_Calculate_Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	params := usParams(123456.78)
	params.JurisdictionParams = map[string]string{"filing_status": "married", "state": "PA"}

	first, err := engine.Calculate(params)
	require.NoError(t, err)
	second, err := engine.Calculate(params)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must yield identical breakdowns")
}

func TestEngine_Calculate_EffectiveRate(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Calculate(usParams(100000))
	require.NoError(t, err)
	assert.True(t, result.EffectiveRate.Equal(result.TotalTax.Div(result.GrossIncome)))
}

func TestEngine_CompareScenarios(t *testing.T) {
	engine := newTestEngine(t)

	base := usParams(100000)
	variants := []ScenarioVariant{
		{Name: "married", Params: domain.TaxCalculationParams{
			GrossIncome:        base.GrossIncome,
			CurrencyCode:       "USD",
			JurisdictionCode:   "US",
			JurisdictionParams: map[string]string{"filing_status": "married"},
		}},
		{Name: "with raise", Params: domain.TaxCalculationParams{
			GrossIncome:      decimal.NewFromInt(120000),
			CurrencyCode:     "USD",
			JurisdictionCode: "US",
		}},
	}

	set, err := engine.CompareScenarios(base, variants)
	require.NoError(t, err)
	require.Len(t, set.Variants, 2)

	married := set.Variants[0]
	assert.Equal(t, "married", married.Name)
	assert.True(t, married.Delta.TotalTax.Equal(married.Result.TotalTax.Sub(set.Base.TotalTax)))
	assert.True(t, married.Delta.NetIncome.Equal(married.Result.NetIncome().Sub(set.Base.NetIncome())))
	assert.True(t, married.Delta.EffectiveRate.Equal(married.Result.EffectiveRate.Sub(set.Base.EffectiveRate)))

	// Married filing on the same income owes less tax, so net income rises.
	assert.True(t, married.Delta.TotalTax.IsNegative())
	assert.True(t, married.Delta.NetIncome.IsPositive())

	raise := set.Variants[1]
	assert.True(t, raise.Delta.TotalTax.IsPositive())
}

func TestEngine_CompareScenarios_VariantError(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.CompareScenarios(usParams(100000), []ScenarioVariant{
		{Name: "broken", Params: domain.TaxCalculationParams{
			GrossIncome:      decimal.NewFromInt(-1),
			CurrencyCode:     "USD",
			JurisdictionCode: "US",
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	var iie *domain.InvalidInputError
	assert.True(t, errors.As(err, &iie), "wrapped cause must stay inspectable")
}
