package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresStore persists calculations in a Postgres table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects with the given DSN and runs the migration.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		return nil, err
	}
	return ps, nil
}

// Close releases the underlying connection pool.
func (ps *PostgresStore) Close() error { return ps.db.Close() }

func (ps *PostgresStore) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS tax_calculations (
	id BIGSERIAL PRIMARY KEY,
	jurisdiction TEXT NOT NULL,
	gross_income NUMERIC(18,4) NOT NULL,
	currency_code TEXT NOT NULL,
	computed_tax NUMERIC(18,4) NOT NULL,
	net_income NUMERIC(18,4) NOT NULL,
	effective_rate NUMERIC(9,6) NOT NULL,
	calculated_at TIMESTAMPTZ NOT NULL,
	note TEXT NOT NULL DEFAULT ''
)`
	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// SaveCalculation inserts the record and returns the generated id.
func (ps *PostgresStore) SaveCalculation(ctx context.Context, rec domain.TaxCalculationData) (int64, error) {
	var id int64
	err := ps.db.QueryRowContext(ctx, `
INSERT INTO tax_calculations
	(jurisdiction, gross_income, currency_code, computed_tax, net_income, effective_rate, calculated_at, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		rec.Jurisdiction, rec.GrossIncome.String(), rec.CurrencyCode,
		rec.ComputedTax.String(), rec.NetIncome.String(), rec.EffectiveRate.String(),
		rec.Timestamp, rec.Note,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save calculation: %w", err)
	}
	return id, nil
}

// ListCalculations returns saved records newest first.
func (ps *PostgresStore) ListCalculations(ctx context.Context, limit int) ([]domain.TaxCalculationData, error) {
	query := `
SELECT id, jurisdiction, gross_income, currency_code, computed_tax, net_income, effective_rate, calculated_at, note
FROM tax_calculations
ORDER BY calculated_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := ps.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var out []domain.TaxCalculationData
	for rows.Next() {
		var rec domain.TaxCalculationData
		var gross, tax, net, rate string
		if err := rows.Scan(&rec.ID, &rec.Jurisdiction, &gross, &rec.CurrencyCode,
			&tax, &net, &rate, &rec.Timestamp, &rec.Note); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		if rec.GrossIncome, err = decimal.NewFromString(gross); err != nil {
			return nil, fmt.Errorf("bad gross_income value %q: %w", gross, err)
		}
		if rec.ComputedTax, err = decimal.NewFromString(tax); err != nil {
			return nil, fmt.Errorf("bad computed_tax value %q: %w", tax, err)
		}
		if rec.NetIncome, err = decimal.NewFromString(net); err != nil {
			return nil, fmt.Errorf("bad net_income value %q: %w", net, err)
		}
		if rec.EffectiveRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("bad effective_rate value %q: %w", rate, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading calculations: %w", err)
	}
	return out, nil
}

// DeleteCalculation removes the record with the given id.
func (ps *PostgresStore) DeleteCalculation(ctx context.Context, id int64) (bool, error) {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM tax_calculations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n > 0, nil
}
