package fieldtypes

import (
	"fmt"

	"github.com/modeldoc/modeldoc-engine/pkg/apperrors"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// Handler implements the per-kind semantics of a question value: how a raw
// submitted or stored value is normalized, checked, encoded for storage and
// rendered for output.
//
// Canonical value types per kind:
//
//	text, textarea                       string
//	boolean                              *bool (nil = unset)
//	single_choice, catalog_ref_single,
//	fixed_catalog_single                 string
//	multiple_choice, catalog_ref_multi   []string
type Handler interface {
	// Kind returns the field kind this handler implements.
	Kind() models.FieldKind

	// RenderHint tells the rendering layer which widget shape to use.
	RenderHint() string

	// Decode normalizes a raw JSON-shaped value into the canonical form.
	// It fails only on structurally wrong input (e.g. a list where a
	// string belongs), not on invalid content.
	Decode(raw any) (any, error)

	// Encode turns a canonical value into its JSON-storable form.
	Encode(value any) any

	// Validate checks a decoded value against the question definition and,
	// for catalog kinds, the context-resolved choice set.
	Validate(value any, q *models.Question, choices []models.ChoiceOption) error

	// IsEmpty reports whether the decoded value counts as unanswered.
	// Empty string, empty list and an unset boolean are unanswered; an
	// explicit false is an answer.
	IsEmpty(value any) bool

	// Display renders a decoded value for detail pages and exports. labels
	// maps option codes or catalog entry ids to display names; unknown
	// codes (custom values) render verbatim.
	Display(value any, labels map[string]string) string
}

// NeedsResolution reports whether materializing a question of this kind
// requires a context-resolved choice set.
func NeedsResolution(k models.FieldKind) bool {
	return k.IsCatalogKind()
}

// Registry is the closed dispatch table from field kind to handler. It is a
// constructed value handed to the materializer and the export projector, not
// a package-level singleton, so tests can substitute fakes. Adding a kind is
// a compile-time change here, never data.
type Registry struct {
	handlers map[models.FieldKind]Handler
}

// NewRegistry builds a registry covering every known field kind.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[models.FieldKind]Handler)}
	for _, h := range []Handler{
		&textHandler{kind: models.KindText, hint: "input"},
		&textHandler{kind: models.KindTextarea, hint: "textarea"},
		&booleanHandler{},
		&choiceHandler{kind: models.KindSingleChoice, hint: "select"},
		&multiChoiceHandler{kind: models.KindMultipleChoice, hint: "checkbox-list"},
		&choiceHandler{kind: models.KindCatalogRefSingle, hint: "select"},
		&multiChoiceHandler{kind: models.KindCatalogRefMulti, hint: "checkbox-list"},
		&choiceHandler{kind: models.KindFixedCatalogSingle, hint: "select"},
	} {
		r.handlers[h.Kind()] = h
	}
	return r
}

// Resolve returns the handler for a kind. A miss means the schema references
// a kind this build no longer implements.
func (r *Registry) Resolve(kind models.FieldKind) (Handler, error) {
	h, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFieldKind, kind)
	}
	return h, nil
}

// Kinds returns the kinds the registry implements.
func (r *Registry) Kinds() []models.FieldKind {
	out := make([]models.FieldKind, 0, len(r.handlers))
	for _, k := range models.ValidFieldKinds {
		if _, ok := r.handlers[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
