package models

import (
	"time"

	"github.com/google/uuid"
)

// Values is the sparse answer map of a document, keyed by question name.
// An absent key means "unanswered", which is distinct from an answered
// empty value only until the per-kind normalization collapses the two
// (empty string, empty list and an unset boolean all count as unanswered).
type Values map[string]any

// Clone returns a deep copy of the value map. Documents are cloned when a
// model version is duplicated into a new simulation round; mutating the
// copy must not reach the source.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = cloneValue(val)
	}
	return out
}

func cloneValue(val any) any {
	switch tv := val.(type) {
	case []any:
		cp := make([]any, len(tv))
		for i, e := range tv {
			cp[i] = cloneValue(e)
		}
		return cp
	case []string:
		cp := make([]string, len(tv))
		copy(cp, tv)
		return cp
	case map[string]any:
		cp := make(map[string]any, len(tv))
		for k, e := range tv {
			cp[k] = cloneValue(e)
		}
		return cp
	default:
		return tv
	}
}

// AnswerDocument holds the saved answers of one model version for one owner
// key. Saves replace the whole value map; documents are never patched
// field-by-field. Keys no longer present in the current schema may linger
// in old documents and are ignored by every schema-driven reader.
type AnswerDocument struct {
	EntityID  uuid.UUID `json:"entity_id"`
	OwnerKey  OwnerKey  `json:"owner_key"`
	Values    Values    `json:"values"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewAnswerDocument returns an empty document for the given identity.
func NewAnswerDocument(entityID uuid.UUID, key OwnerKey) *AnswerDocument {
	return &AnswerDocument{EntityID: entityID, OwnerKey: key, Values: Values{}}
}

// Get returns the stored raw value for a question name.
func (d *AnswerDocument) Get(name string) (any, bool) {
	if d == nil || d.Values == nil {
		return nil, false
	}
	v, ok := d.Values[name]
	return v, ok
}
