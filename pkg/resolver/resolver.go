package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modeldoc/modeldoc-engine/pkg/apperrors"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// CatalogStore is the external catalog collaborator. Query returns the
// catalog entries matching a selector under a resolution context; the
// store applies the category, protocol and simulation-round filters.
type CatalogStore interface {
	Query(ctx context.Context, sel models.CatalogSelector, rctx models.ResolutionContext) ([]models.CatalogEntry, error)
}

// ChoiceResolver resolves the concrete choice set of a catalog question.
// Resolution is a pure filter: the same (selector, context) pair yields the
// same ordered list as long as the catalog is not mutated.
type ChoiceResolver interface {
	ResolveChoices(ctx context.Context, sel models.CatalogSelector, rctx models.ResolutionContext) ([]models.ChoiceOption, error)
}

type catalogResolver struct {
	catalog CatalogStore
}

// NewChoiceResolver builds a resolver over the given catalog collaborator.
func NewChoiceResolver(catalog CatalogStore) ChoiceResolver {
	return &catalogResolver{catalog: catalog}
}

var _ ChoiceResolver = (*catalogResolver)(nil)

func (r *catalogResolver) ResolveChoices(ctx context.Context, sel models.CatalogSelector, rctx models.ResolutionContext) ([]models.ChoiceOption, error) {
	entries, err := r.catalog.Query(ctx, sel, rctx)
	if err != nil {
		return nil, fmt.Errorf("%w: category %q: %v", apperrors.ErrChoiceResolution, sel.Category, err)
	}

	choices := make([]models.ChoiceOption, 0, len(entries))
	for _, e := range entries {
		choices = append(choices, models.ChoiceOption{Code: e.ID.String(), Label: e.Name})
	}

	// Stable ordering key: entry name, case-insensitive. The store's own
	// ordering is not relied on.
	sort.SliceStable(choices, func(i, j int) bool {
		return strings.ToLower(choices[i].Label) < strings.ToLower(choices[j].Label)
	})
	return choices, nil
}
