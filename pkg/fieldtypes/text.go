package fieldtypes

import (
	"fmt"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// textHandler covers the text and textarea kinds. Both are plain strings;
// they differ only in the widget hint.
type textHandler struct {
	kind models.FieldKind
	hint string
}

func (h *textHandler) Kind() models.FieldKind { return h.kind }
func (h *textHandler) RenderHint() string     { return h.hint }

func (h *textHandler) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a string, got %T", raw)
	}
}

func (h *textHandler) Encode(value any) any {
	s, _ := value.(string)
	return s
}

func (h *textHandler) Validate(value any, q *models.Question, _ []models.ChoiceOption) error {
	s, _ := value.(string)
	if q.Params.MaxLength > 0 && len(s) > q.Params.MaxLength {
		return fmt.Errorf("must be at most %d characters", q.Params.MaxLength)
	}
	return nil
}

func (h *textHandler) IsEmpty(value any) bool {
	s, _ := value.(string)
	return s == ""
}

func (h *textHandler) Display(value any, _ map[string]string) string {
	s, _ := value.(string)
	return s
}
