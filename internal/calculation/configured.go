package calculation

import (
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// FlatCharge is a flat-rate addition layered on top of a configured
// progressive table: rate times gross income, optionally capped at an income
// ceiling, booked to one of the breakdown components.
type FlatCharge struct {
	Name      string
	Rate      decimal.Decimal
	Ceiling   decimal.Decimal // zero means uncapped
	Component string          // regional, local, social, health, or other
}

// ConfiguredRules is the rule set behind a data-driven strategy, typically
// loaded from a YAML file to cover a jurisdiction without writing code.
type ConfiguredRules struct {
	Code              string
	Currency          string
	StandardDeduction decimal.Decimal
	Brackets          domain.BracketTable
	FlatCharges       []FlatCharge
	Note              string
}

// ConfiguredStrategy runs a jurisdiction entirely from configured rules.
type ConfiguredStrategy struct {
	rules ConfiguredRules
}

// NewConfiguredStrategy creates a strategy over the given rules. Table
// validation happens at registration.
func NewConfiguredStrategy(rules ConfiguredRules) *ConfiguredStrategy {
	return &ConfiguredStrategy{rules: rules}
}

// JurisdictionCode returns the configured code.
func (s *ConfiguredStrategy) JurisdictionCode() string { return s.rules.Code }

// BracketTable returns the configured table.
func (s *ConfiguredStrategy) BracketTable() domain.BracketTable { return s.rules.Brackets.Clone() }

// AvailableDeductions lists the configured standard deduction, if any.
func (s *ConfiguredStrategy) AvailableDeductions() []domain.DeductionInfo {
	if !s.rules.StandardDeduction.IsPositive() {
		return nil
	}
	return []domain.DeductionInfo{
		{Name: "Standard deduction", Description: "Configured flat deduction from taxable income", Cap: s.rules.StandardDeduction, Kind: domain.DeductionFixed},
	}
}

func (s *ConfiguredStrategy) validateTables() error {
	for _, fc := range s.rules.FlatCharges {
		switch fc.Component {
		case "regional", "local", "social", "health", "other":
		default:
			return &domain.ConfigurationError{Reason: fmt.Sprintf("flat charge %q has unknown component %q", fc.Name, fc.Component)}
		}
		if fc.Rate.IsNegative() {
			return &domain.ConfigurationError{Reason: fmt.Sprintf("flat charge %q has negative rate", fc.Name)}
		}
	}
	return nil
}

// Calculate runs the configured progressive table plus flat charges. No
// jurisdiction parameters are recognized.
func (s *ConfiguredStrategy) Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error) {
	if err := requirePositiveIncome(gross); err != nil {
		return nil, err
	}
	if err := requireCurrency(currency, s.rules.Currency, s.rules.Code); err != nil {
		return nil, err
	}

	taxable := decimal.Max(gross.Sub(s.rules.StandardDeduction), decimal.Zero)
	tax, allocations := ComputeProgressiveTax(taxable, s.rules.Brackets)

	c := components{federal: tax}
	for _, fc := range s.rules.FlatCharges {
		base := gross
		if fc.Ceiling.IsPositive() {
			base = capAt(base, fc.Ceiling)
		}
		charge := base.Mul(fc.Rate)
		switch fc.Component {
		case "regional":
			c.regional = c.regional.Add(charge)
		case "local":
			c.local = c.local.Add(charge)
		case "social":
			c.social = c.social.Add(charge)
		case "health":
			c.health = c.health.Add(charge)
		default:
			c.other = c.other.Add(charge)
		}
	}

	note := s.rules.Note
	if note == "" {
		note = "configured rule set for " + s.rules.Code
	}
	return buildBreakdown(s.rules.Code, s.rules.Currency, gross, c,
		s.rules.Brackets.MarginalRate(taxable), allocations, note), nil
}
