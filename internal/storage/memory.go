package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
)

// MemoryStore is an in-process Store for tests and CLI runs without a
// database.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]domain.TaxCalculationData
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, records: make(map[int64]domain.TaxCalculationData)}
}

// SaveCalculation stores the record under a fresh id.
func (ms *MemoryStore) SaveCalculation(ctx context.Context, rec domain.TaxCalculationData) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	rec.ID = ms.nextID
	ms.nextID++
	ms.records[rec.ID] = rec
	return rec.ID, nil
}

// ListCalculations returns stored records newest first.
func (ms *MemoryStore) ListCalculations(ctx context.Context, limit int) ([]domain.TaxCalculationData, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]domain.TaxCalculationData, 0, len(ms.records))
	for _, rec := range ms.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteCalculation removes the record with the given id.
func (ms *MemoryStore) DeleteCalculation(ctx context.Context, id int64) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, ok := ms.records[id]
	delete(ms.records, id)
	return ok, nil
}
