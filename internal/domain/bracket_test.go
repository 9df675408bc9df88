package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() BracketTable {
	return BracketTable{
		NewBracket(0, 10000, 0.10),
		NewBracket(10000, 50000, 0.20),
		NewTopBracket(50000, 0.30),
	}
}

func TestBracketTableValidate(t *testing.T) {
	assert.NoError(t, validTable().Validate())
}

func TestBracketTableValidate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		table BracketTable
	}{
		{"empty", BracketTable{}},
		{"no unbounded terminal", BracketTable{
			NewBracket(0, 10000, 0.10),
			NewBracket(10000, 50000, 0.20),
		}},
		{"unbounded in middle", BracketTable{
			NewTopBracket(0, 0.10),
			NewTopBracket(50000, 0.30),
		}},
		{"gap between brackets", BracketTable{
			NewBracket(0, 10000, 0.10),
			NewBracket(20000, 50000, 0.20),
			NewTopBracket(50000, 0.30),
		}},
		{"overlapping brackets", BracketTable{
			NewBracket(0, 10000, 0.10),
			NewBracket(5000, 50000, 0.20),
			NewTopBracket(50000, 0.30),
		}},
		{"inverted bounds", BracketTable{
			NewBracket(10000, 0, 0.10),
			NewTopBracket(0, 0.30),
		}},
		{"rate above one", BracketTable{
			NewBracket(0, 10000, 1.5),
			NewTopBracket(10000, 0.30),
		}},
		{"negative rate", BracketTable{
			NewBracket(0, 10000, -0.10),
			NewTopBracket(10000, 0.30),
		}},
		{"negative lower bound", BracketTable{
			NewBracket(-100, 10000, 0.10),
			NewTopBracket(10000, 0.30),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.table.Validate()
			require.Error(t, err)
			var ce *ConfigurationError
			assert.True(t, errors.As(err, &ce), "should be a ConfigurationError")
		})
	}
}

func TestBracketTableMarginalRate(t *testing.T) {
	table := validTable()

	tests := []struct {
		taxable  float64
		expected float64
	}{
		{0, 0.10},
		{5000, 0.10},
		{10000, 0.10}, // boundary belongs to the lower bracket
		{10001, 0.20},
		{50000, 0.20},
		{75000, 0.30},
	}
	for _, tc := range tests {
		got := table.MarginalRate(decimal.NewFromFloat(tc.taxable))
		assert.True(t, got.Equal(decimal.NewFromFloat(tc.expected)),
			"marginal rate at %v: expected %v, got %s", tc.taxable, tc.expected, got)
	}
}

func TestBracketTableClone(t *testing.T) {
	table := validTable()
	clone := table.Clone()
	clone[0].Rate = decimal.NewFromFloat(0.99)
	assert.True(t, table[0].Rate.Equal(decimal.NewFromFloat(0.10)), "clone must not alias the original")
}
