package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestValues_Clone_DeepCopy(t *testing.T) {
	source := Values{
		"irrigation": "flood",
		"data_sets":  []any{"a", "b"},
		"nested":     map[string]any{"k": "v"},
	}

	clone := source.Clone()

	clone["irrigation"] = "drip"
	clone["data_sets"].([]any)[0] = "changed"
	clone["nested"].(map[string]any)["k"] = "changed"

	if source["irrigation"] != "flood" {
		t.Errorf("source scalar mutated: %v", source["irrigation"])
	}
	if source["data_sets"].([]any)[0] != "a" {
		t.Errorf("source list mutated: %v", source["data_sets"])
	}
	if source["nested"].(map[string]any)["k"] != "v" {
		t.Errorf("source map mutated: %v", source["nested"])
	}
}

func TestValues_Clone_Nil(t *testing.T) {
	var v Values
	clone := v.Clone()
	if clone == nil {
		t.Fatal("Clone of nil must return an empty map")
	}
	if len(clone) != 0 {
		t.Errorf("Clone of nil has %d entries", len(clone))
	}
}

func TestAnswerDocument_Get(t *testing.T) {
	doc := NewAnswerDocument(uuid.New(), OwnerKeyInputData)
	if _, ok := doc.Get("anything"); ok {
		t.Error("empty document must report no values")
	}

	doc.Values["spin_up"] = false
	v, ok := doc.Get("spin_up")
	if !ok || v != false {
		t.Errorf("Get(spin_up) = %v, %v", v, ok)
	}

	var nilDoc *AnswerDocument
	if _, ok := nilDoc.Get("anything"); ok {
		t.Error("nil document must report no values")
	}
}

func TestNewProgress(t *testing.T) {
	tests := []struct {
		answered, total, percent int
	}{
		{0, 0, 0},
		{0, 2, 0},
		{1, 2, 50},
		{2, 2, 100},
		{1, 3, 33},
	}
	for _, tt := range tests {
		p := NewProgress(tt.answered, tt.total)
		if p.Percent != tt.percent {
			t.Errorf("NewProgress(%d, %d).Percent = %d, want %d",
				tt.answered, tt.total, p.Percent, tt.percent)
		}
	}
}

func TestCatalogEntry_ValidForRound(t *testing.T) {
	entry := CatalogEntry{Rounds: []string{"2a", "3b"}}
	if !entry.ValidForRound("3b") {
		t.Error("expected entry to be valid for 3b")
	}
	if entry.ValidForRound("2b") {
		t.Error("expected entry to be invalid for 2b")
	}
}
