package forms

import (
	"context"
	"fmt"

	"github.com/modeldoc/modeldoc-engine/pkg/fieldtypes"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
	"github.com/modeldoc/modeldoc-engine/pkg/resolver"
)

// Field is the concrete, validatable descriptor of one question in a
// materialized form: the question definition, the choice set that applies
// under the materialization context, and the initial value decoded from a
// prior answer document.
type Field struct {
	Question   models.Question
	RenderHint string
	// Choices holds the static options for choice kinds or the
	// context-resolved set for catalog kinds. Nil for text and boolean.
	Choices []models.ChoiceOption
	// Initial is the decoded prior answer, nil if the question was never
	// answered.
	Initial any
}

// FieldsetView groups the materialized fields under their fieldset heading.
type FieldsetView struct {
	Heading     string
	Description string
	Fields      []Field
}

// FormInstance is one materialized questionnaire form: schema + context +
// prior answers flattened into typed fields. It is consumed by the
// rendering layer and fed back into Submit.
type FormInstance struct {
	OwnerKey  models.OwnerKey
	Fieldsets []FieldsetView
}

// Fields returns all fields across fieldsets in schema order.
func (f *FormInstance) Fields() []Field {
	var out []Field
	for _, fs := range f.Fieldsets {
		out = append(out, fs.Fields...)
	}
	return out
}

// Materializer combines schemas, contexts and answer documents into
// validatable forms and validates submissions back into value maps. It is
// pure: persistence belongs to the caller.
type Materializer struct {
	registry *fieldtypes.Registry
	choices  resolver.ChoiceResolver
}

// NewMaterializer creates a Materializer with the given registry and
// choice resolver.
func NewMaterializer(registry *fieldtypes.Registry, choices resolver.ChoiceResolver) *Materializer {
	return &Materializer{registry: registry, choices: choices}
}

// Materialize builds the form for one schema under a resolution context,
// pre-populated from doc when present. doc may be nil for a fresh form.
// Document keys not present in the schema are ignored; they are historical
// leftovers of schema evolution.
func (m *Materializer) Materialize(ctx context.Context, schema *models.Schema, rctx models.ResolutionContext, doc *models.AnswerDocument) (*FormInstance, error) {
	form := &FormInstance{OwnerKey: schema.OwnerKey}

	for _, fs := range schema.Fieldsets {
		view := FieldsetView{Heading: fs.Heading, Description: fs.Description}
		for i := range fs.Questions {
			q := fs.Questions[i]
			handler, err := m.registry.Resolve(q.Kind)
			if err != nil {
				return nil, fmt.Errorf("question %q: %w", q.Name, err)
			}

			field := Field{Question: q, RenderHint: handler.RenderHint()}

			switch {
			case fieldtypes.NeedsResolution(q.Kind):
				resolved, err := m.choices.ResolveChoices(ctx, q.EffectiveSelector(), rctx)
				if err != nil {
					return nil, fmt.Errorf("question %q: %w", q.Name, err)
				}
				field.Choices = resolved
			case q.Kind.IsChoiceKind():
				field.Choices = q.Params.Options
			}

			if raw, ok := doc.Get(q.Name); ok {
				// Stored values that no longer decode under the current
				// kind are treated as unanswered, not as failures; old
				// documents survive schema evolution.
				if v, err := handler.Decode(raw); err == nil {
					field.Initial = v
				}
			}

			view.Fields = append(view.Fields, field)
		}
		form.Fieldsets = append(form.Fieldsets, view)
	}

	return form, nil
}
