package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// Owner Keys
// ============================================================================

// OwnerKey identifies which questionnaire schema an answer document belongs
// to: one of the fixed documentation stages, or one sector-specific schema
// per sector ("sector:<slug>").
type OwnerKey string

const (
	OwnerKeyResolution OwnerKey = "resolution"
	OwnerKeyInputData  OwnerKey = "input-data"
	OwnerKeyModelSetup OwnerKey = "model-setup"
)

const sectorKeyPrefix = "sector:"

// StageOwnerKeys lists the fixed stages in questionnaire order. Sector
// schemas follow the stages.
var StageOwnerKeys = []OwnerKey{
	OwnerKeyResolution,
	OwnerKeyInputData,
	OwnerKeyModelSetup,
}

// SectorOwnerKey builds the owner key of a sector-specific schema.
func SectorOwnerKey(slug string) OwnerKey {
	return OwnerKey(sectorKeyPrefix + slug)
}

// IsSector reports whether the key names a sector-specific schema.
func (k OwnerKey) IsSector() bool {
	return strings.HasPrefix(string(k), sectorKeyPrefix)
}

// SectorSlug returns the sector slug for sector keys, "" otherwise.
func (k OwnerKey) SectorSlug() string {
	if !k.IsSector() {
		return ""
	}
	return strings.TrimPrefix(string(k), sectorKeyPrefix)
}

// Valid reports whether the key is a known stage or a sector key.
func (k OwnerKey) Valid() bool {
	if k.IsSector() {
		return k.SectorSlug() != ""
	}
	for _, s := range StageOwnerKeys {
		if k == s {
			return true
		}
	}
	return false
}

// ============================================================================
// Schema
// ============================================================================

// Fieldset is an ordered, headed group of questions within a schema.
type Fieldset struct {
	Heading     string     `json:"heading" yaml:"heading"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Schema is the versioned question set for one owner key: an ordered list
// of fieldsets, each an ordered list of questions. Schemas are authored
// administratively and read-mostly; exactly one exists per owner key.
type Schema struct {
	OwnerKey    OwnerKey `json:"owner_key" yaml:"owner_key"`
	Heading     string   `json:"heading" yaml:"heading"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	// Order positions the schema in the questionnaire flow and in exports.
	Order     int        `json:"order" yaml:"order"`
	Fieldsets []Fieldset `json:"fieldsets" yaml:"fieldsets"`
}

// Questions returns all questions across all fieldsets in schema order.
func (s *Schema) Questions() []Question {
	var out []Question
	for _, fs := range s.Fieldsets {
		out = append(out, fs.Questions...)
	}
	return out
}

// QuestionCount returns the total number of questions in the schema.
func (s *Schema) QuestionCount() int {
	n := 0
	for _, fs := range s.Fieldsets {
		n += len(fs.Questions)
	}
	return n
}

// FindQuestion looks up a question by name.
func (s *Schema) FindQuestion(name string) (*Question, bool) {
	for fi := range s.Fieldsets {
		for qi := range s.Fieldsets[fi].Questions {
			if s.Fieldsets[fi].Questions[qi].Name == name {
				return &s.Fieldsets[fi].Questions[qi], true
			}
		}
	}
	return nil, false
}

// Validate checks the schema definition: a valid owner key, valid questions
// and question names unique within the schema (they key the answer
// document). Names may repeat across schemas.
func (s *Schema) Validate() error {
	if !s.OwnerKey.Valid() {
		return fmt.Errorf("schema has invalid owner key %q", s.OwnerKey)
	}
	seen := make(map[string]struct{})
	for _, fs := range s.Fieldsets {
		for i := range fs.Questions {
			q := &fs.Questions[i]
			if err := q.Validate(); err != nil {
				return fmt.Errorf("schema %s: %w", s.OwnerKey, err)
			}
			if _, dup := seen[q.Name]; dup {
				return fmt.Errorf("schema %s: duplicate question name %q", s.OwnerKey, q.Name)
			}
			seen[q.Name] = struct{}{}
		}
	}
	return nil
}
