package calculation

import (
	"errors"
	"testing"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Builtins(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	expected := []string{"AU", "BR", "CA", "DE", "FR", "IN", "JP", "SG", "UK", "US"}
	assert.Equal(t, expected, registry.Codes())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	for _, code := range []string{"us", "Us", "uS", "US"} {
		s, ok := registry.Get(code)
		require.True(t, ok, "lookup with %q should succeed", code)
		assert.Equal(t, "US", s.JurisdictionCode())
	}
	assert.True(t, registry.Has("in"))
}

func TestRegistry_Unregister(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	assert.True(t, registry.Unregister("jp"))
	assert.False(t, registry.Has("JP"))
	assert.False(t, registry.Unregister("JP"), "second removal reports missing")
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	replacement := NewConfiguredStrategy(ConfiguredRules{
		Code:     "US",
		Currency: "USD",
		Brackets: domain.BracketTable{
			domain.NewBracket(0, 100000, 0.05),
			domain.NewTopBracket(100000, 0.15),
		},
	})
	require.NoError(t, registry.Register(replacement))

	s, ok := registry.Get("US")
	require.True(t, ok)
	assert.Same(t, Strategy(replacement), s)
}

func TestRegistry_RegisterRejectsBadTable(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	bad := NewConfiguredStrategy(ConfiguredRules{
		Code:     "XX",
		Currency: "XXX",
		Brackets: domain.BracketTable{
			domain.NewBracket(0, 100000, 0.05),
			domain.NewBracket(100000, 200000, 0.15), // no unbounded terminal
		},
	})
	err = registry.Register(bad)
	require.Error(t, err)

	var ce *domain.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "XX", ce.Jurisdiction)
	assert.False(t, registry.Has("XX"), "failed registration must not be visible")
}

func TestRegistry_RegisterRejectsBadFlatCharge(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	bad := NewConfiguredStrategy(ConfiguredRules{
		Code:     "XX",
		Currency: "XXX",
		Brackets: domain.BracketTable{
			domain.NewTopBracket(0, 0.10),
		},
		FlatCharges: []FlatCharge{
			{Name: "levy", Rate: decimal.NewFromFloat(0.01), Component: "bogus"},
		},
	})
	err = registry.Register(bad)
	require.Error(t, err)
	var ce *domain.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}
