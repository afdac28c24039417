package models

import "fmt"

// ChoiceOption is one selectable option: a stable code (or catalog entry id)
// and a human-readable label.
type ChoiceOption struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// CatalogSelector names which slice of the input-data catalog a catalog
// question draws its choices from. AllRounds disables the simulation-round
// filter; it is set for the fixed spatial-aggregation kind whose choices do
// not vary by round.
type CatalogSelector struct {
	Category  string `json:"category" yaml:"category"`
	AllRounds bool   `json:"all_rounds,omitempty" yaml:"all_rounds,omitempty"`
}

// Catalog categories used by catalog selectors. These mirror the data-type
// groupings of the input-data catalog.
const (
	CategoryEmissions            = "emissions"
	CategoryLandUse              = "land_use"
	CategoryObservedClimate      = "observed_atmospheric_climate"
	CategorySimulatedClimate     = "simulated_atmospheric_climate"
	CategorySocioEconomic        = "socio_economic"
	CategoryOtherHumanInfluences = "other_human_influences"
	CategoryClimateVariables     = "climate_variables"
	CategoryOther                = "other"
	CategorySpatialAggregation   = "spatial_aggregation"
)

// FixedCatalogSelector is the pinned selector used by fixed_catalog_single
// questions. The spatial aggregation list is round-independent.
func FixedCatalogSelector() CatalogSelector {
	return CatalogSelector{Category: CategorySpatialAggregation, AllRounds: true}
}

// KindParams carries the kind-specific parameters of a question. Which
// fields are meaningful depends on the question's kind; Validate enforces
// coherence.
type KindParams struct {
	// Options is the static option list for single_choice/multiple_choice.
	Options []ChoiceOption `json:"options,omitempty" yaml:"options,omitempty"`
	// AllowCustom accepts free text outside the option list (single-valued
	// choice kinds only).
	AllowCustom bool `json:"allow_custom,omitempty" yaml:"allow_custom,omitempty"`
	// Nullable lets a boolean question treat "unset" as a valid non-answer.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	// MaxLength limits text/textarea input. Zero means unlimited.
	MaxLength int `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	// Selector names the catalog slice for catalog_ref_* questions.
	Selector *CatalogSelector `json:"catalog_selector,omitempty" yaml:"catalog_selector,omitempty"`
}

// Question is one schema-defined unit of input. Name is the key under which
// the answer is stored and must be unique within its schema.
type Question struct {
	Name     string     `json:"name" yaml:"name"`
	Label    string     `json:"label" yaml:"label"`
	HelpText string     `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	Required bool       `json:"required,omitempty" yaml:"required,omitempty"`
	Kind     FieldKind  `json:"kind" yaml:"kind"`
	Params   KindParams `json:"params,omitempty" yaml:"params,omitempty"`
}

// EffectiveSelector returns the catalog selector the question resolves
// against. fixed_catalog_single is pinned to the spatial aggregation catalog
// regardless of authored params.
func (q *Question) EffectiveSelector() CatalogSelector {
	if q.Kind == KindFixedCatalogSingle {
		return FixedCatalogSelector()
	}
	if q.Params.Selector != nil {
		return *q.Params.Selector
	}
	return CatalogSelector{}
}

// Validate checks structural coherence of the question definition.
func (q *Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("question has no name")
	}
	if !IsValidFieldKind(q.Kind) {
		return fmt.Errorf("question %q: unknown kind %q", q.Name, q.Kind)
	}
	if q.Kind.IsChoiceKind() && len(q.Params.Options) == 0 {
		return fmt.Errorf("question %q: kind %s needs at least one option", q.Name, q.Kind)
	}
	if (q.Kind == KindCatalogRefSingle || q.Kind == KindCatalogRefMulti) &&
		(q.Params.Selector == nil || q.Params.Selector.Category == "") {
		return fmt.Errorf("question %q: kind %s needs a catalog selector", q.Name, q.Kind)
	}
	if q.Params.AllowCustom && q.Kind.IsMultiValued() {
		return fmt.Errorf("question %q: allow_custom is not supported for multi-valued kinds", q.Name)
	}
	return nil
}
