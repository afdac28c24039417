package models

// FieldKind identifies the shape of a question: how its value is encoded,
// validated and rendered. The set is closed - new kinds need new semantics
// and are added in the field type registry, not in data.
type FieldKind string

const (
	KindText               FieldKind = "text"
	KindTextarea           FieldKind = "textarea"
	KindBoolean            FieldKind = "boolean"
	KindSingleChoice       FieldKind = "single_choice"
	KindMultipleChoice     FieldKind = "multiple_choice"
	KindCatalogRefSingle   FieldKind = "catalog_ref_single"
	KindCatalogRefMulti    FieldKind = "catalog_ref_multi"
	KindFixedCatalogSingle FieldKind = "fixed_catalog_single"
)

// ValidFieldKinds contains all field kinds known to the engine.
var ValidFieldKinds = []FieldKind{
	KindText,
	KindTextarea,
	KindBoolean,
	KindSingleChoice,
	KindMultipleChoice,
	KindCatalogRefSingle,
	KindCatalogRefMulti,
	KindFixedCatalogSingle,
}

// IsValidFieldKind checks if the given kind is known.
func IsValidFieldKind(k FieldKind) bool {
	for _, v := range ValidFieldKinds {
		if v == k {
			return true
		}
	}
	return false
}

// IsChoiceKind reports whether the kind carries a static option list.
func (k FieldKind) IsChoiceKind() bool {
	return k == KindSingleChoice || k == KindMultipleChoice
}

// IsCatalogKind reports whether the kind resolves its choices against the
// input-data catalog at materialization time.
func (k FieldKind) IsCatalogKind() bool {
	return k == KindCatalogRefSingle || k == KindCatalogRefMulti || k == KindFixedCatalogSingle
}

// IsMultiValued reports whether values of this kind are lists.
func (k FieldKind) IsMultiValued() bool {
	return k == KindMultipleChoice || k == KindCatalogRefMulti
}
