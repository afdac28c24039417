package models

import "github.com/google/uuid"

// ResolutionContext carries the runtime parameters that decide which
// catalog entries are valid choices: the active simulation round and, for
// sector-specific schemas, the sector. It is a per-request value and owns
// nothing.
type ResolutionContext struct {
	Round  string `json:"round"`
	Sector string `json:"sector,omitempty"`
}

// CatalogEntry is one entry of the input-data catalog: a controlled
// vocabulary item valid for a set of simulation rounds. The catalog itself
// is an external collaborator; the engine only filters and references it.
type CatalogEntry struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	// ProtocolData separates protocol input data from secondary data sets.
	// Only protocol entries are offered as choices.
	ProtocolData bool `json:"protocol_data"`
	// Rounds lists the simulation-round slugs the entry is valid for.
	Rounds []string `json:"rounds"`
}

// ValidForRound reports whether the entry may be chosen under the given
// simulation round.
func (e *CatalogEntry) ValidForRound(round string) bool {
	for _, r := range e.Rounds {
		if r == round {
			return true
		}
	}
	return false
}

// Progress is the completeness score of one answer document against its
// schema. Optional questions count toward the total: the aim is thorough
// documentation, not mere validity.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

// NewProgress computes the percent rollup, guarding the zero-question case.
func NewProgress(answered, total int) Progress {
	p := Progress{Answered: answered, Total: total}
	if total > 0 {
		p.Percent = answered * 100 / total
	}
	return p
}
