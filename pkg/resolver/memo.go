package resolver

import (
	"context"
	"sync"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// Memoized caches resolved choice sets per (selector, context) pair. An
// export run touches the same pair once per document column; the catalog
// should only be queried once. Failed resolutions are not cached so a
// transient catalog outage can be retried.
type Memoized struct {
	inner ChoiceResolver

	mu    sync.Mutex
	cache map[memoKey][]models.ChoiceOption
}

type memoKey struct {
	category  string
	allRounds bool
	round     string
	sector    string
}

// NewMemoized wraps a resolver with a per-run cache. The wrapper is meant
// to live for one export run, not for the process lifetime.
func NewMemoized(inner ChoiceResolver) *Memoized {
	return &Memoized{inner: inner, cache: make(map[memoKey][]models.ChoiceOption)}
}

var _ ChoiceResolver = (*Memoized)(nil)

func (m *Memoized) ResolveChoices(ctx context.Context, sel models.CatalogSelector, rctx models.ResolutionContext) ([]models.ChoiceOption, error) {
	key := memoKey{category: sel.Category, allRounds: sel.AllRounds, round: rctx.Round, sector: rctx.Sector}

	m.mu.Lock()
	cached, ok := m.cache[key]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	choices, err := m.inner.ResolveChoices(ctx, sel, rctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[key] = choices
	m.mu.Unlock()
	return choices, nil
}
