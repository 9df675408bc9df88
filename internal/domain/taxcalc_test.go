package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleBreakdown() *TaxBreakdown {
	return &TaxBreakdown{
		Jurisdiction:        "US",
		Currency:            "USD",
		GrossIncome:         decimal.NewFromFloat(75000.123),
		FederalTax:          decimal.NewFromFloat(10000.456),
		SocialContributions: decimal.NewFromFloat(4650.007),
		TotalTax:            decimal.NewFromFloat(14650.463),
		MarginalRate:        decimal.NewFromFloat(0.22),
		EffectiveRate:       decimal.NewFromFloat(0.195339),
		Allocations: []BracketAllocation{
			{Lower: decimal.Zero, Upper: decimal.NewFromInt(11600), Rate: decimal.NewFromFloat(0.10), Taxed: decimal.NewFromFloat(11600.009)},
		},
	}
}

func TestTaxBreakdownNetIncome(t *testing.T) {
	tb := &TaxBreakdown{
		GrossIncome: decimal.NewFromInt(75000),
		TotalTax:    decimal.NewFromInt(15000),
	}
	assert.True(t, tb.NetIncome().Equal(decimal.NewFromInt(60000)))
}

func TestTaxBreakdownRounded(t *testing.T) {
	tb := sampleBreakdown()
	rounded := tb.Rounded()

	assert.Equal(t, "75000.12", rounded.GrossIncome.StringFixed(2))
	assert.Equal(t, "10000.46", rounded.FederalTax.StringFixed(2))
	assert.Equal(t, "0.1953", rounded.EffectiveRate.String())
	assert.Equal(t, "11600.01", rounded.Allocations[0].Taxed.StringFixed(2))

	// The original keeps full precision.
	assert.Equal(t, "75000.123", tb.GrossIncome.String())
}

func TestRecordFromBreakdown(t *testing.T) {
	tb := sampleBreakdown()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := RecordFromBreakdown(tb, at, "payday check")

	assert.Equal(t, "US", rec.Jurisdiction)
	assert.Equal(t, "USD", rec.CurrencyCode)
	assert.True(t, rec.ComputedTax.Equal(tb.TotalTax))
	assert.True(t, rec.NetIncome.Equal(tb.NetIncome()))
	assert.Equal(t, at, rec.Timestamp)
	assert.Equal(t, "payday check", rec.Note)
}
