package fieldtypes

import (
	"fmt"
	"strings"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// choiceHandler covers the single-valued choice kinds: single_choice with
// its static option list, and catalog_ref_single / fixed_catalog_single
// whose choice set is resolved from the catalog per context. The canonical
// value is the selected code (or catalog entry id) as a string; with
// allow_custom it may be any free text.
type choiceHandler struct {
	kind models.FieldKind
	hint string
}

func (h *choiceHandler) Kind() models.FieldKind { return h.kind }
func (h *choiceHandler) RenderHint() string     { return h.hint }

func (h *choiceHandler) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a string, got %T", raw)
	}
}

func (h *choiceHandler) Encode(value any) any {
	s, _ := value.(string)
	return s
}

func (h *choiceHandler) Validate(value any, q *models.Question, choices []models.ChoiceOption) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if q.Params.AllowCustom {
		// Custom values bypass the code check entirely.
		return nil
	}
	if !hasCode(choices, s) {
		return fmt.Errorf("%q is not a valid choice", s)
	}
	return nil
}

func (h *choiceHandler) IsEmpty(value any) bool {
	s, _ := value.(string)
	return s == ""
}

func (h *choiceHandler) Display(value any, labels map[string]string) string {
	s, _ := value.(string)
	if label, ok := labels[s]; ok {
		return label
	}
	return s
}

// multiChoiceHandler covers multiple_choice and catalog_ref_multi. The
// canonical value is the list of selected codes. Multi-valued kinds never
// accept custom values; every code must come from the available set.
type multiChoiceHandler struct {
	kind models.FieldKind
	hint string
}

func (h *multiChoiceHandler) Kind() models.FieldKind { return h.kind }
func (h *multiChoiceHandler) RenderHint() string     { return h.hint }

func (h *multiChoiceHandler) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return []string(nil), nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got %T element", e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", raw)
	}
}

func (h *multiChoiceHandler) Encode(value any) any {
	codes, _ := value.([]string)
	return codes
}

func (h *multiChoiceHandler) Validate(value any, _ *models.Question, choices []models.ChoiceOption) error {
	codes, _ := value.([]string)
	for _, c := range codes {
		if !hasCode(choices, c) {
			return fmt.Errorf("%q is not a valid choice", c)
		}
	}
	return nil
}

func (h *multiChoiceHandler) IsEmpty(value any) bool {
	codes, _ := value.([]string)
	return len(codes) == 0
}

func (h *multiChoiceHandler) Display(value any, labels map[string]string) string {
	codes, _ := value.([]string)
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		if label, ok := labels[c]; ok {
			parts = append(parts, label)
		} else {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, ", ")
}

func hasCode(choices []models.ChoiceOption, code string) bool {
	for _, c := range choices {
		if c.Code == code {
			return true
		}
	}
	return false
}
