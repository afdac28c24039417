package resolver

import (
	"context"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
	"github.com/modeldoc/modeldoc-engine/pkg/retry"
)

// Retrying retries failed choice resolutions with backoff. Resolution
// failure is a retryable infrastructure condition (the catalog collaborator
// being unavailable), unlike an empty choice list, which is a normal
// result and returned as-is.
type Retrying struct {
	inner ChoiceResolver
	cfg   *retry.Config
}

// NewRetrying wraps a resolver with retry behavior. cfg may be nil for the
// defaults.
func NewRetrying(inner ChoiceResolver, cfg *retry.Config) *Retrying {
	return &Retrying{inner: inner, cfg: cfg}
}

var _ ChoiceResolver = (*Retrying)(nil)

func (r *Retrying) ResolveChoices(ctx context.Context, sel models.CatalogSelector, rctx models.ResolutionContext) ([]models.ChoiceOption, error) {
	var choices []models.ChoiceOption
	err := retry.Do(ctx, r.cfg, func() error {
		resolved, err := r.inner.ResolveChoices(ctx, sel, rctx)
		if err != nil {
			return err
		}
		choices = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return choices, nil
}
