package fieldtypes

import (
	"testing"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

func mustHandler(t *testing.T, kind models.FieldKind) Handler {
	t.Helper()
	h, err := NewRegistry().Resolve(kind)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", kind, err)
	}
	return h
}

// ============================================================================
// Text
// ============================================================================

func TestTextHandler_DecodeEncode(t *testing.T) {
	h := mustHandler(t, models.KindTextarea)

	v, err := h.Decode("flood irrigation")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if h.Encode(v) != "flood irrigation" {
		t.Errorf("encode∘decode is not identity: %v", h.Encode(v))
	}

	v, err = h.Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil): %v", err)
	}
	if !h.IsEmpty(v) {
		t.Error("nil must decode to the empty value")
	}

	if _, err := h.Decode([]any{"no"}); err == nil {
		t.Error("expected decode failure for a list")
	}
}

func TestTextHandler_EmptyString(t *testing.T) {
	h := mustHandler(t, models.KindText)
	v, _ := h.Decode("")
	if !h.IsEmpty(v) {
		t.Error("empty string counts as unanswered")
	}
}

func TestTextHandler_MaxLength(t *testing.T) {
	h := mustHandler(t, models.KindText)
	q := &models.Question{Name: "abbr", Kind: models.KindText, Params: models.KindParams{MaxLength: 3}}

	if err := h.Validate("abc", q, nil); err != nil {
		t.Errorf("within limit rejected: %v", err)
	}
	if err := h.Validate("abcd", q, nil); err == nil {
		t.Error("over limit accepted")
	}
}

// ============================================================================
// Boolean
// ============================================================================

func TestBooleanHandler_TriState(t *testing.T) {
	h := mustHandler(t, models.KindBoolean)

	v, err := h.Decode(false)
	if err != nil {
		t.Fatalf("Decode(false): %v", err)
	}
	if h.IsEmpty(v) {
		t.Error("an explicit false is an answer, not empty")
	}
	if h.Encode(v) != false {
		t.Errorf("Encode = %v, want false", h.Encode(v))
	}
	if h.Display(v, nil) != "No" {
		t.Errorf("Display(false) = %q, want No", h.Display(v, nil))
	}

	v, err = h.Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil): %v", err)
	}
	if !h.IsEmpty(v) {
		t.Error("unset boolean counts as unanswered")
	}
	if h.Display(v, nil) != "" {
		t.Errorf("Display(unset) = %q, want empty", h.Display(v, nil))
	}

	v, _ = h.Decode(true)
	if h.Display(v, nil) != "Yes" {
		t.Errorf("Display(true) = %q, want Yes", h.Display(v, nil))
	}

	if _, err := h.Decode("yes"); err == nil {
		t.Error("expected decode failure for a string")
	}
}

// ============================================================================
// Single choice
// ============================================================================

func singleChoiceQuestion(allowCustom bool) *models.Question {
	return &models.Question{
		Name: "temporal_resolution",
		Kind: models.KindSingleChoice,
		Params: models.KindParams{
			AllowCustom: allowCustom,
			Options: []models.ChoiceOption{
				{Code: "daily", Label: "Daily"},
				{Code: "monthly", Label: "Monthly"},
			},
		},
	}
}

func TestChoiceHandler_Validate(t *testing.T) {
	h := mustHandler(t, models.KindSingleChoice)
	q := singleChoiceQuestion(false)

	if err := h.Validate("daily", q, q.Params.Options); err != nil {
		t.Errorf("valid code rejected: %v", err)
	}
	if err := h.Validate("hourly", q, q.Params.Options); err == nil {
		t.Error("invalid code accepted")
	}
	if err := h.Validate("", q, q.Params.Options); err != nil {
		t.Errorf("empty value must pass validation: %v", err)
	}
}

func TestChoiceHandler_AllowCustom(t *testing.T) {
	h := mustHandler(t, models.KindSingleChoice)
	q := singleChoiceQuestion(true)

	if err := h.Validate("hourly", q, q.Params.Options); err != nil {
		t.Errorf("custom value rejected despite allow_custom: %v", err)
	}
}

func TestChoiceHandler_Display(t *testing.T) {
	h := mustHandler(t, models.KindSingleChoice)
	labels := map[string]string{"daily": "Daily"}

	if got := h.Display("daily", labels); got != "Daily" {
		t.Errorf("Display = %q, want Daily", got)
	}
	// Custom values have no label and render verbatim.
	if got := h.Display("hourly", labels); got != "hourly" {
		t.Errorf("Display = %q, want hourly", got)
	}
}

// ============================================================================
// Multiple choice
// ============================================================================

func TestMultiChoiceHandler_Decode(t *testing.T) {
	h := mustHandler(t, models.KindMultipleChoice)

	v, err := h.Decode([]any{"a", "b"})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	codes, ok := v.([]string)
	if !ok || len(codes) != 2 {
		t.Fatalf("decoded to %T %v", v, v)
	}

	v, err = h.Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil): %v", err)
	}
	if !h.IsEmpty(v) {
		t.Error("nil must decode to the empty value")
	}

	if _, err := h.Decode("a"); err == nil {
		t.Error("expected decode failure for a bare string")
	}
	if _, err := h.Decode([]any{"a", 7}); err == nil {
		t.Error("expected decode failure for a mixed list")
	}
}

func TestMultiChoiceHandler_Validate(t *testing.T) {
	h := mustHandler(t, models.KindMultipleChoice)
	choices := []models.ChoiceOption{{Code: "a", Label: "A"}, {Code: "b", Label: "B"}}
	q := &models.Question{Name: "sets", Kind: models.KindMultipleChoice}

	if err := h.Validate([]string{"a", "b"}, q, choices); err != nil {
		t.Errorf("valid codes rejected: %v", err)
	}
	if err := h.Validate([]string{"a", "z"}, q, choices); err == nil {
		t.Error("unknown code accepted")
	}
}

func TestMultiChoiceHandler_Display(t *testing.T) {
	h := mustHandler(t, models.KindCatalogRefMulti)
	labels := map[string]string{"id-1": "GSWP3-W5E5", "id-2": "ISIMIP3a landuse"}

	got := h.Display([]string{"id-2", "id-1"}, labels)
	if got != "ISIMIP3a landuse, GSWP3-W5E5" {
		t.Errorf("Display = %q", got)
	}
}

func TestMultiChoiceHandler_EmptyList(t *testing.T) {
	h := mustHandler(t, models.KindMultipleChoice)
	v, _ := h.Decode([]any{})
	if !h.IsEmpty(v) {
		t.Error("empty list counts as unanswered")
	}
}
