package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
	"github.com/itssarojkr/financial-assistant-sub002/internal/compare"
	"github.com/itssarojkr/financial-assistant-sub002/internal/config"
	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/itssarojkr/financial-assistant-sub002/internal/output"
	"github.com/itssarojkr/financial-assistant-sub002/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "taxcalc",
	Short: "Multi-jurisdiction salary tax calculator",
	Long:  "Calculates jurisdiction-specific tax breakdowns for a gross salary, with scenario comparison",
}

// newEngine builds the registry (plus optional YAML overrides) and the
// calculation engine.
func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	registry, err := calculation.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		parser := config.NewInputParser()
		overrides, err := parser.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := parser.Apply(overrides, registry); err != nil {
			return nil, err
		}
	}

	engine := calculation.NewEngine(registry)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		engine.SetLogger(simpleCLILogger{})
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		engine.UseFallback = false
	}
	return engine, nil
}

// parseParams turns repeated key=value flags into a parameter map.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string)
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
		}
		params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return params, nil
}

// parseVariantSpec parses a comparison variant specification.
// Format: "name:param1=value1,param2=value2"; params override the base.
func parseVariantSpec(spec string, base domain.TaxCalculationParams) (calculation.ScenarioVariant, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return calculation.ScenarioVariant{}, fmt.Errorf("invalid variant spec, expected 'name:params', got: %s", spec)
	}

	params := domain.TaxCalculationParams{
		GrossIncome:        base.GrossIncome,
		CurrencyCode:       base.CurrencyCode,
		JurisdictionCode:   base.JurisdictionCode,
		JurisdictionParams: make(map[string]string, len(base.JurisdictionParams)),
	}
	for k, v := range base.JurisdictionParams {
		params.JurisdictionParams[k] = v
	}

	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		for _, pair := range strings.Split(parts[1], ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return calculation.ScenarioVariant{}, fmt.Errorf("invalid variant parameter, expected 'key=value', got: %s", pair)
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "income":
				income, err := decimal.NewFromString(value)
				if err != nil {
					return calculation.ScenarioVariant{}, fmt.Errorf("invalid income value %q: %w", value, err)
				}
				params.GrossIncome = income
			case "currency":
				params.CurrencyCode = value
			case "jurisdiction":
				params.JurisdictionCode = value
			default:
				params.JurisdictionParams[key] = value
			}
		}
	}

	return calculation.ScenarioVariant{Name: name, Params: params}, nil
}

func baseParamsFromFlags(cmd *cobra.Command) (domain.TaxCalculationParams, error) {
	incomeStr, _ := cmd.Flags().GetString("income")
	income, err := decimal.NewFromString(incomeStr)
	if err != nil {
		return domain.TaxCalculationParams{}, fmt.Errorf("invalid income value %q: %w", incomeStr, err)
	}
	currency, _ := cmd.Flags().GetString("currency")
	jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
	paramPairs, _ := cmd.Flags().GetStringArray("param")
	params, err := parseParams(paramPairs)
	if err != nil {
		return domain.TaxCalculationParams{}, err
	}
	return domain.TaxCalculationParams{
		GrossIncome:        income,
		CurrencyCode:       currency,
		JurisdictionCode:   jurisdiction,
		JurisdictionParams: params,
	}, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate a tax breakdown for a gross salary",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		params, err := baseParamsFromFlags(cmd)
		if err != nil {
			return err
		}

		breakdown, err := engine.Calculate(params)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		rendered, err := output.FormatBreakdown(breakdown, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, rendered)

		if save, _ := cmd.Flags().GetBool("save"); save {
			return saveResult(cmd.Context(), breakdown)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the base parameters against named variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		base, err := baseParamsFromFlags(cmd)
		if err != nil {
			return err
		}

		specs, _ := cmd.Flags().GetStringArray("variant")
		if len(specs) == 0 {
			return fmt.Errorf("at least one --variant is required")
		}
		variants := make([]calculation.ScenarioVariant, 0, len(specs))
		for _, spec := range specs {
			v, err := parseVariantSpec(spec, base)
			if err != nil {
				return err
			}
			variants = append(variants, v)
		}

		set, err := engine.CompareScenarios(base, variants)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(format) {
		case "", "table":
			fmt.Fprintln(os.Stdout, (&compare.TableFormatter{}).Format(set))
		case "json":
			rendered, err := (&compare.JSONFormatter{}).Format(set)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, rendered)
		case "csv":
			rendered, err := (&compare.CSVFormatter{}).Format(set)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, rendered)
		default:
			return fmt.Errorf("unknown output format: %s", format)
		}
		return nil
	},
}

var jurisdictionsCmd = &cobra.Command{
	Use:   "jurisdictions",
	Short: "List supported jurisdiction codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		for _, code := range engine.Registry.Codes() {
			fmt.Fprintln(os.Stdout, code)
		}
		return nil
	},
}

var bracketsCmd = &cobra.Command{
	Use:   "brackets [jurisdiction]",
	Short: "Show the bracket table and deductions for a jurisdiction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		strategy, ok := engine.Registry.Get(args[0])
		if !ok {
			return &domain.UnsupportedJurisdictionError{Code: strings.ToUpper(args[0])}
		}

		fmt.Fprintf(os.Stdout, "Brackets for %s:\n", strategy.JurisdictionCode())
		for _, b := range strategy.BracketTable() {
			upper := b.Upper.StringFixed(0)
			if b.Unbounded {
				upper = "and above"
			}
			fmt.Fprintf(os.Stdout, "  %12s - %-12s at %s%%\n",
				b.Lower.StringFixed(0), upper,
				b.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2))
		}
		if deductions := strategy.AvailableDeductions(); len(deductions) > 0 {
			fmt.Fprintln(os.Stdout, "Deductions:")
			for _, d := range deductions {
				fmt.Fprintf(os.Stdout, "  %s (%s, up to %s): %s\n",
					d.Name, d.Kind, d.Cap.StringFixed(2), d.Description)
			}
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved calculations",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.ListCalculations(cmd.Context(), limit)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Fprintf(os.Stdout, "%6d  %s  %-3s %12s %s  tax %12s  eff %s%%\n",
				rec.ID, rec.Timestamp.Format("2006-01-02 15:04"), rec.Jurisdiction,
				rec.GrossIncome.StringFixed(2), rec.CurrencyCode,
				rec.ComputedTax.StringFixed(2),
				rec.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
		}
		return nil
	},
}

func openStore(ctx context.Context) (storage.Store, error) {
	dsn := os.Getenv("TAXCALC_DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("TAXCALC_DATABASE_URL is not set")
	}
	return storage.OpenPostgres(ctx, dsn)
}

func saveResult(ctx context.Context, breakdown *domain.TaxBreakdown) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	rec := domain.RecordFromBreakdown(breakdown, time.Now().UTC(), breakdown.ExplanatoryNote)
	id, err := store.SaveCalculation(ctx, rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "saved calculation %d\n", id)
	return nil
}

func main() {
	for _, cmd := range []*cobra.Command{calculateCmd, compareCmd, jurisdictionsCmd, bracketsCmd} {
		cmd.Flags().String("income", "", "Gross income amount")
		cmd.Flags().String("currency", "", "ISO 4217 currency code")
		cmd.Flags().String("jurisdiction", "", "Jurisdiction code, e.g. US or IN")
		cmd.Flags().StringArray("param", nil, "Jurisdiction parameter key=value (repeatable)")
		cmd.Flags().String("config", "", "YAML file with jurisdiction overrides")
		cmd.Flags().String("format", "table", "Output format: table, json, or csv")
		cmd.Flags().Bool("verbose", false, "Enable engine logging")
		cmd.Flags().Bool("strict", false, "Fail on unknown jurisdictions instead of estimating")
	}
	calculateCmd.Flags().Bool("save", false, "Persist the result (requires TAXCALC_DATABASE_URL)")
	compareCmd.Flags().StringArray("variant", nil, "Variant spec name:key=value,... (repeatable)")
	historyCmd.Flags().Int("limit", 20, "Maximum records to list")

	rootCmd.AddCommand(calculateCmd, compareCmd, jurisdictionsCmd, bracketsCmd, historyCmd, versionCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
