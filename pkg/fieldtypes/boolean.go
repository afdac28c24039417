package fieldtypes

import (
	"fmt"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// booleanHandler implements the tri-state boolean kind. The canonical value
// is *bool: nil means unset. An explicit false is a real answer ("No"), not
// an empty value.
type booleanHandler struct{}

func (h *booleanHandler) Kind() models.FieldKind { return models.KindBoolean }
func (h *booleanHandler) RenderHint() string     { return "yes-no" }

func (h *booleanHandler) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return (*bool)(nil), nil
	case bool:
		b := v
		return &b, nil
	case *bool:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a boolean, got %T", raw)
	}
}

func (h *booleanHandler) Encode(value any) any {
	b, ok := value.(*bool)
	if !ok || b == nil {
		return nil
	}
	return *b
}

func (h *booleanHandler) Validate(_ any, _ *models.Question, _ []models.ChoiceOption) error {
	// The unset case is covered by the required check; true and false are
	// always valid.
	return nil
}

func (h *booleanHandler) IsEmpty(value any) bool {
	b, ok := value.(*bool)
	return !ok || b == nil
}

func (h *booleanHandler) Display(value any, _ map[string]string) string {
	b, ok := value.(*bool)
	if !ok || b == nil {
		return ""
	}
	if *b {
		return "Yes"
	}
	return "No"
}
