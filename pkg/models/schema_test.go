package models

import "testing"

func TestOwnerKey_Valid(t *testing.T) {
	tests := []struct {
		key   OwnerKey
		valid bool
	}{
		{OwnerKeyResolution, true},
		{OwnerKeyInputData, true},
		{OwnerKeyModelSetup, true},
		{SectorOwnerKey("agriculture"), true},
		{OwnerKey("sector:"), false},
		{OwnerKey("something-else"), false},
		{OwnerKey(""), false},
	}
	for _, tt := range tests {
		if got := tt.key.Valid(); got != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.key, got, tt.valid)
		}
	}
}

func TestOwnerKey_SectorSlug(t *testing.T) {
	key := SectorOwnerKey("water-global")
	if !key.IsSector() {
		t.Fatalf("expected %q to be a sector key", key)
	}
	if got := key.SectorSlug(); got != "water-global" {
		t.Errorf("SectorSlug() = %q, want %q", got, "water-global")
	}
	if OwnerKeyResolution.IsSector() {
		t.Error("resolution must not be a sector key")
	}
	if got := OwnerKeyResolution.SectorSlug(); got != "" {
		t.Errorf("SectorSlug() = %q, want empty", got)
	}
}

func testSchema() *Schema {
	return &Schema{
		OwnerKey: OwnerKeyResolution,
		Heading:  "Resolution information",
		Order:    1,
		Fieldsets: []Fieldset{
			{
				Heading: "Basics",
				Questions: []Question{
					{Name: "irrigation", Label: "Irrigation approach", Kind: KindTextarea},
					{Name: "spin_up", Label: "Spin-up performed", Kind: KindBoolean, Required: true},
				},
			},
			{
				Heading: "Aggregation",
				Questions: []Question{
					{Name: "spatial_aggregation", Label: "Spatial aggregation", Kind: KindFixedCatalogSingle},
				},
			},
		},
	}
}

func TestSchema_Validate(t *testing.T) {
	if err := testSchema().Validate(); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
}

func TestSchema_Validate_DuplicateName(t *testing.T) {
	s := testSchema()
	s.Fieldsets[1].Questions = append(s.Fieldsets[1].Questions,
		Question{Name: "irrigation", Label: "Duplicate", Kind: KindText})
	if err := s.Validate(); err == nil {
		t.Fatal("expected duplicate question name to be rejected")
	}
}

func TestSchema_Validate_BadQuestions(t *testing.T) {
	tests := []struct {
		name string
		q    Question
	}{
		{"unknown kind", Question{Name: "x", Kind: FieldKind("fancy_slider")}},
		{"no name", Question{Kind: KindText}},
		{"choice without options", Question{Name: "x", Kind: KindSingleChoice}},
		{"catalog without selector", Question{Name: "x", Kind: KindCatalogRefMulti}},
		{"custom on multi", Question{
			Name: "x", Kind: KindMultipleChoice,
			Params: KindParams{Options: []ChoiceOption{{Code: "a", Label: "A"}}, AllowCustom: true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchema()
			s.Fieldsets[0].Questions = append(s.Fieldsets[0].Questions, tt.q)
			if err := s.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSchema_Questions_Order(t *testing.T) {
	s := testSchema()
	questions := s.Questions()
	want := []string{"irrigation", "spin_up", "spatial_aggregation"}
	if len(questions) != len(want) {
		t.Fatalf("Questions() returned %d, want %d", len(questions), len(want))
	}
	for i, name := range want {
		if questions[i].Name != name {
			t.Errorf("Questions()[%d].Name = %q, want %q", i, questions[i].Name, name)
		}
	}
	if s.QuestionCount() != 3 {
		t.Errorf("QuestionCount() = %d, want 3", s.QuestionCount())
	}
}

func TestSchema_FindQuestion(t *testing.T) {
	s := testSchema()
	q, ok := s.FindQuestion("spin_up")
	if !ok || q.Kind != KindBoolean {
		t.Fatalf("FindQuestion(spin_up) = %v, %v", q, ok)
	}
	if _, ok := s.FindQuestion("nope"); ok {
		t.Error("expected miss for unknown question")
	}
}

func TestQuestion_EffectiveSelector(t *testing.T) {
	fixed := Question{Name: "spatial_aggregation", Kind: KindFixedCatalogSingle}
	sel := fixed.EffectiveSelector()
	if sel.Category != CategorySpatialAggregation || !sel.AllRounds {
		t.Errorf("fixed selector = %+v, want pinned spatial aggregation", sel)
	}

	ref := Question{
		Name: "emissions", Kind: KindCatalogRefMulti,
		Params: KindParams{Selector: &CatalogSelector{Category: CategoryEmissions}},
	}
	sel = ref.EffectiveSelector()
	if sel.Category != CategoryEmissions || sel.AllRounds {
		t.Errorf("catalog selector = %+v, want emissions with round filter", sel)
	}
}
