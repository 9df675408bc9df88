package calculation

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/itssarojkr/financial-assistant-sub002/internal/domain"
)

// Registry maps jurisdiction codes to strategies. Codes are normalized to
// uppercase on every operation. Registration is expected at startup or via
// explicit admin action; lookups may run concurrently with it, so mutation
// is guarded by a reader-writer lock.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry pre-populated with the built-in
// jurisdictions. Any bracket table failing its invariants aborts
// construction with a *domain.ConfigurationError.
func NewRegistry() (*Registry, error) {
	r := &Registry{strategies: make(map[string]Strategy)}

	builtins := []Strategy{
		NewUSStrategy(),
		NewCanadaStrategy(),
		NewUKStrategy(),
		NewIndiaStrategy(),
		NewGermanyStrategy(),
		NewFranceStrategy(),
		NewAustraliaStrategy(),
		NewJapanStrategy(),
		NewSingaporeStrategy(),
		NewBrazilStrategy(),
	}
	for _, s := range builtins {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates the strategy's bracket tables and adds it, overwriting
// any existing entry for the same code.
func (r *Registry) Register(s Strategy) error {
	if err := s.BracketTable().Validate(); err != nil {
		return annotateConfigError(err, s.JurisdictionCode())
	}
	if v, ok := s.(tableValidator); ok {
		if err := v.validateTables(); err != nil {
			return annotateConfigError(err, s.JurisdictionCode())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[strings.ToUpper(s.JurisdictionCode())] = s
	return nil
}

// Get returns the strategy registered for code, if any.
func (r *Registry) Get(code string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[strings.ToUpper(code)]
	return s, ok
}

// Has reports whether a strategy is registered for code.
func (r *Registry) Has(code string) bool {
	_, ok := r.Get(code)
	return ok
}

// Unregister removes the strategy for code and reports whether one existed.
func (r *Registry) Unregister(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToUpper(code)
	_, ok := r.strategies[key]
	delete(r.strategies, key)
	return ok
}

// Codes returns the registered jurisdiction codes in sorted order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.strategies))
	for code := range r.strategies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func annotateConfigError(err error, code string) error {
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) && ce.Jurisdiction == "" {
		return &domain.ConfigurationError{Jurisdiction: code, Reason: ce.Reason}
	}
	return err
}
