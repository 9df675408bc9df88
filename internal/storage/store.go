// Package storage implements the persistence boundary for saved tax
// calculations. The calculation engine has no knowledge of this package;
// only the application layer talks to it.
package storage

import (
	"context"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
)

// Store persists TaxCalculationData records for save/favorite/export
// workflows.
type Store interface {
	// SaveCalculation persists a record and returns its assigned id.
	SaveCalculation(ctx context.Context, rec domain.TaxCalculationData) (int64, error)

	// ListCalculations returns the most recent records, newest first,
	// capped at limit (or all when limit <= 0).
	ListCalculations(ctx context.Context, limit int) ([]domain.TaxCalculationData, error)

	// DeleteCalculation removes a record and reports whether it existed.
	DeleteCalculation(ctx context.Context, id int64) (bool, error)
}
