package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the top-level shape of a jurisdiction override file. Each entry
// becomes a data-driven strategy registered over any built-in with the same
// code.
type Config struct {
	Jurisdictions []JurisdictionConfig `yaml:"jurisdictions"`
}

// JurisdictionConfig describes one configured jurisdiction.
type JurisdictionConfig struct {
	Code              string            `yaml:"code"`
	Currency          string            `yaml:"currency"`
	StandardDeduction decimal.Decimal   `yaml:"standard_deduction"`
	Brackets          []BracketConfig   `yaml:"brackets"`
	FlatCharges       []FlatChargeConfig `yaml:"flat_charges"`
	Note              string            `yaml:"note"`
}

// BracketConfig is one bracket row. Upper is ignored when Unbounded is set.
type BracketConfig struct {
	Lower     decimal.Decimal `yaml:"lower"`
	Upper     decimal.Decimal `yaml:"upper"`
	Rate      decimal.Decimal `yaml:"rate"`
	Unbounded bool            `yaml:"unbounded"`
}

// FlatChargeConfig is a flat-rate addition over gross income.
type FlatChargeConfig struct {
	Name      string          `yaml:"name"`
	Rate      decimal.Decimal `yaml:"rate"`
	Ceiling   decimal.Decimal `yaml:"ceiling"`
	Component string          `yaml:"component"`
}

// InputParser handles parsing of jurisdiction override files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML override file.
func (ip *InputParser) LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfig checks every configured jurisdiction before anything
// reaches the registry, so bad tables fail at startup rather than at first
// calculation.
func (ip *InputParser) ValidateConfig(config *Config) error {
	if len(config.Jurisdictions) == 0 {
		return fmt.Errorf("no jurisdictions configured")
	}
	seen := make(map[string]bool)
	for i, jc := range config.Jurisdictions {
		code := strings.ToUpper(strings.TrimSpace(jc.Code))
		if code == "" {
			return fmt.Errorf("jurisdiction %d: code is required", i)
		}
		if seen[code] {
			return fmt.Errorf("jurisdiction %s: duplicate entry", code)
		}
		seen[code] = true
		if len(strings.TrimSpace(jc.Currency)) != 3 {
			return fmt.Errorf("jurisdiction %s: currency must be a 3-letter code, got %q", code, jc.Currency)
		}
		if jc.StandardDeduction.IsNegative() {
			return fmt.Errorf("jurisdiction %s: standard_deduction must not be negative", code)
		}
		if err := toBracketTable(jc.Brackets).Validate(); err != nil {
			return fmt.Errorf("jurisdiction %s: %w", code, err)
		}
	}
	return nil
}

// Apply registers every configured jurisdiction with the registry. The
// registry re-validates tables and flat-charge components on Register.
func (ip *InputParser) Apply(config *Config, registry *calculation.Registry) error {
	for _, jc := range config.Jurisdictions {
		strategy := calculation.NewConfiguredStrategy(toRules(jc))
		if err := registry.Register(strategy); err != nil {
			return fmt.Errorf("failed to register jurisdiction %s: %w", jc.Code, err)
		}
	}
	return nil
}

func toBracketTable(rows []BracketConfig) domain.BracketTable {
	table := make(domain.BracketTable, 0, len(rows))
	for _, row := range rows {
		table = append(table, domain.Bracket{
			Lower:     row.Lower,
			Upper:     row.Upper,
			Rate:      row.Rate,
			Unbounded: row.Unbounded,
		})
	}
	return table
}

func toRules(jc JurisdictionConfig) calculation.ConfiguredRules {
	charges := make([]calculation.FlatCharge, 0, len(jc.FlatCharges))
	for _, fc := range jc.FlatCharges {
		charges = append(charges, calculation.FlatCharge{
			Name:      fc.Name,
			Rate:      fc.Rate,
			Ceiling:   fc.Ceiling,
			Component: fc.Component,
		})
	}
	return calculation.ConfiguredRules{
		Code:              strings.ToUpper(strings.TrimSpace(jc.Code)),
		Currency:          strings.ToUpper(strings.TrimSpace(jc.Currency)),
		StandardDeduction: jc.StandardDeduction,
		Brackets:          toBracketTable(jc.Brackets),
		FlatCharges:       charges,
		Note:              jc.Note,
	}
}
