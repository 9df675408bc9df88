package calculation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// Strategy is the contract every jurisdiction implements. Calculate is a
// pure function of its inputs; implementations hold only immutable rule data
// and are safe for concurrent use.
type Strategy interface {
	// Calculate produces a jurisdiction-specific breakdown for a gross
	// income. It fails with *domain.InvalidInputError when the income is
	// nonpositive, the currency does not match the jurisdiction, or a
	// recognized jurisdiction parameter carries a malformed value.
	Calculate(gross decimal.Decimal, currency string, params map[string]string) (*domain.TaxBreakdown, error)

	// JurisdictionCode returns the stable identifier, e.g. "US" or "IN".
	JurisdictionCode() string

	// BracketTable returns the primary bracket table for display purposes.
	BracketTable() domain.BracketTable

	// AvailableDeductions lists the deductions this jurisdiction offers.
	// Informational only.
	AvailableDeductions() []domain.DeductionInfo
}

// tableValidator is implemented by strategies that carry secondary bracket
// tables (regional schedules, contribution bands, alternate regimes) so the
// registry can fail fast on all of them at registration time.
type tableValidator interface {
	validateTables() error
}

func requirePositiveIncome(gross decimal.Decimal) error {
	if !gross.IsPositive() {
		return &domain.InvalidInputError{Field: "grossIncome", Reason: "must be positive, got " + gross.String()}
	}
	return nil
}

func requireCurrency(got, want, code string) error {
	if !strings.EqualFold(strings.TrimSpace(got), want) {
		return &domain.InvalidInputError{
			Field:  "currencyCode",
			Reason: fmt.Sprintf("%s calculations expect %s, got %q", code, want, got),
		}
	}
	return nil
}

// paramString reads an optional string parameter, falling back to def when
// the key is absent or blank.
func paramString(params map[string]string, key, def string) string {
	v, ok := params[key]
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func paramBool(params map[string]string, key string, def bool) (bool, error) {
	v, ok := params[key]
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, &domain.InvalidInputError{Field: key, Reason: "expected a boolean, got " + strconv.Quote(v)}
	}
	return b, nil
}

func paramInt(params map[string]string, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &domain.InvalidInputError{Field: key, Reason: "expected an integer, got " + strconv.Quote(v)}
	}
	return n, nil
}

// capAt returns amount limited to ceiling. Used for contribution bases with
// an income ceiling, e.g. Social Security wage bases.
func capAt(amount, ceiling decimal.Decimal) decimal.Decimal {
	return decimal.Min(amount, ceiling)
}

// components collects the tax pieces a strategy produced before they are
// assembled into a TaxBreakdown.
type components struct {
	federal  decimal.Decimal
	regional decimal.Decimal
	local    decimal.Decimal
	social   decimal.Decimal
	health   decimal.Decimal
	other    decimal.Decimal
}

// buildBreakdown assembles the normalized result. TotalTax is the component
// sum; when stacked surcharges push that sum past gross income every
// component is scaled down proportionally so the total caps at gross and the
// sum invariant still holds.
func buildBreakdown(code, currency string, gross decimal.Decimal, c components, marginal decimal.Decimal, allocations []domain.BracketAllocation, note string) *domain.TaxBreakdown {
	total := c.federal.Add(c.regional).Add(c.local).Add(c.social).Add(c.health).Add(c.other)
	if total.GreaterThan(gross) && total.IsPositive() {
		scale := gross.Div(total)
		c.federal = c.federal.Mul(scale)
		c.regional = c.regional.Mul(scale)
		c.local = c.local.Mul(scale)
		c.social = c.social.Mul(scale)
		c.health = c.health.Mul(scale)
		c.other = c.other.Mul(scale)
		total = gross
	}

	effective := decimal.Zero
	if gross.IsPositive() {
		effective = total.Div(gross)
	}

	return &domain.TaxBreakdown{
		Jurisdiction:        code,
		Currency:            currency,
		GrossIncome:         gross,
		FederalTax:          c.federal,
		RegionalTax:         c.regional,
		LocalTax:            c.local,
		SocialContributions: c.social,
		HealthContributions: c.health,
		OtherDeductions:     c.other,
		TotalTax:            total,
		MarginalRate:        marginal,
		EffectiveRate:       effective,
		Allocations:         allocations,
		ExplanatoryNote:     note,
	}
}
