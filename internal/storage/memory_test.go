package storage

import (
	"context"
	"testing"
	"time"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(jurisdiction string, at time.Time) domain.TaxCalculationData {
	return domain.TaxCalculationData{
		Jurisdiction:  jurisdiction,
		GrossIncome:   decimal.NewFromInt(100000),
		CurrencyCode:  "USD",
		ComputedTax:   decimal.NewFromInt(21491),
		NetIncome:     decimal.NewFromInt(78509),
		EffectiveRate: decimal.NewFromFloat(0.21491),
		Timestamp:     at,
	}
}

func TestMemoryStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	id1, err := store.SaveCalculation(ctx, record("US", base))
	require.NoError(t, err)
	id2, err := store.SaveCalculation(ctx, record("IN", base.Add(time.Hour)))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	records, err := store.ListCalculations(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "IN", records[0].Jurisdiction, "newest first")
	assert.Equal(t, "US", records[1].Jurisdiction)

	limited, err := store.ListCalculations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, id2, limited[0].ID)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.SaveCalculation(ctx, record("US", time.Now()))
	require.NoError(t, err)

	ok, err := store.DeleteCalculation(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteCalculation(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "second delete reports missing")

	records, err := store.ListCalculations(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
