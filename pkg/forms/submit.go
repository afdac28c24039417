package forms

import (
	"fmt"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// FieldError is one recoverable validation failure, tied to a question.
// Submissions accumulate every field's errors so the user sees the complete
// set at once instead of fixing one problem per round trip.
type FieldError struct {
	Question string `json:"question"`
	Reason   string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Question, e.Reason)
}

// Submit validates raw input against a materialized form and produces the
// new value map. The map contains exactly the schema's question names minus
// unanswered ones; nothing from a previous submission survives. On
// validation failure the accumulated field errors are returned and the
// value map is nil. The returned error is reserved for registry drift.
func (m *Materializer) Submit(form *FormInstance, raw map[string]any) (models.Values, []FieldError, error) {
	var fieldErrs []FieldError
	values := models.Values{}

	for _, field := range form.Fields() {
		q := field.Question
		handler, err := m.registry.Resolve(q.Kind)
		if err != nil {
			return nil, nil, fmt.Errorf("question %q: %w", q.Name, err)
		}

		value, err := handler.Decode(raw[q.Name])
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Question: q.Name, Reason: err.Error()})
			continue
		}

		if handler.IsEmpty(value) {
			if q.Required {
				fieldErrs = append(fieldErrs, FieldError{Question: q.Name, Reason: "this question is required"})
			}
			// Unanswered optional questions are simply absent from the
			// resulting map.
			continue
		}

		if err := handler.Validate(value, &q, field.Choices); err != nil {
			fieldErrs = append(fieldErrs, FieldError{Question: q.Name, Reason: err.Error()})
			continue
		}

		values[q.Name] = handler.Encode(value)
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	return values, nil, nil
}
