package calculation

import (
	"fmt"
	"strings"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine is the single entry point the application layer calls for tax
// calculations. It validates input, resolves the jurisdiction strategy from
// its registry, and returns the normalized breakdown. Strategy-level errors
// pass through unwrapped so callers see the precise failure kind.
type Engine struct {
	Registry *Registry
	Logger   Logger

	// UseFallback routes unknown jurisdiction codes to the generic
	// two-bracket estimate instead of failing. Fallback results carry
	// Fallback=true and an explanatory note.
	UseFallback bool
}

// NewEngine creates an engine over an explicitly constructed registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		Registry:    registry,
		Logger:      NopLogger{},
		UseFallback: true,
	}
}

// SetLogger replaces the engine's logger. A nil logger installs the no-op
// logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// Calculate resolves the strategy for params.JurisdictionCode and runs it.
// It fails with *domain.InvalidInputError for nonpositive income or a blank
// jurisdiction, and with *domain.UnsupportedJurisdictionError when no
// strategy is registered and the fallback is disabled.
func (e *Engine) Calculate(params domain.TaxCalculationParams) (*domain.TaxBreakdown, error) {
	if !params.GrossIncome.IsPositive() {
		return nil, &domain.InvalidInputError{Field: "grossIncome", Reason: "must be positive, got " + params.GrossIncome.String()}
	}
	code := strings.ToUpper(strings.TrimSpace(params.JurisdictionCode))
	if code == "" {
		return nil, &domain.InvalidInputError{Field: "jurisdictionCode", Reason: "must not be empty"}
	}

	strategy, ok := e.Registry.Get(code)
	if !ok {
		if !e.UseFallback {
			return nil, &domain.UnsupportedJurisdictionError{Code: code}
		}
		e.Logger.Infof("no strategy registered for %s, using generic estimate", code)
		strategy = NewFallbackStrategy(code)
	}

	e.Logger.Debugf("calculating %s tax on %s %s", code, params.GrossIncome.StringFixed(2), params.CurrencyCode)
	return strategy.Calculate(params.GrossIncome, params.CurrencyCode, params.JurisdictionParams)
}

// ScenarioVariant names an alternative parameter set for comparison.
type ScenarioVariant struct {
	Name   string
	Params domain.TaxCalculationParams
}

// ScenarioDelta is variant-minus-base on the headline metrics.
type ScenarioDelta struct {
	NetIncome     decimal.Decimal `json:"netIncome"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
}

// VariantResult pairs a calculated variant with its delta from the base.
type VariantResult struct {
	Name   string               `json:"name"`
	Result *domain.TaxBreakdown `json:"result"`
	Delta  ScenarioDelta        `json:"delta"`
}

// ComparisonSet holds a base result and its named variants.
type ComparisonSet struct {
	Base     *domain.TaxBreakdown `json:"base"`
	Variants []VariantResult      `json:"variants"`
}

// CompareScenarios calculates the base parameters and every named variant,
// attaching variant-minus-base deltas on net income, total tax, and
// effective rate. A pure diff; no state is kept between calls.
func (e *Engine) CompareScenarios(base domain.TaxCalculationParams, variants []ScenarioVariant) (*ComparisonSet, error) {
	baseResult, err := e.Calculate(base)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}

	set := &ComparisonSet{Base: baseResult, Variants: make([]VariantResult, 0, len(variants))}
	for _, v := range variants {
		result, err := e.Calculate(v.Params)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		set.Variants = append(set.Variants, VariantResult{
			Name:   v.Name,
			Result: result,
			Delta: ScenarioDelta{
				NetIncome:     result.NetIncome().Sub(baseResult.NetIncome()),
				TotalTax:      result.TotalTax.Sub(baseResult.TotalTax),
				EffectiveRate: result.EffectiveRate.Sub(baseResult.EffectiveRate),
			},
		})
	}
	return set, nil
}
