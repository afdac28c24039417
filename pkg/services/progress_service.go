package services

import (
	"fmt"

	"github.com/modeldoc/modeldoc-engine/pkg/fieldtypes"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// ProgressService scores answer documents for completeness. Every question
// counts toward the total, required or not; the questionnaire measures
// thoroughness, not validity.
type ProgressService interface {
	// Progress walks the schema against the document and counts answered
	// questions. Document keys outside the schema never affect the result.
	Progress(schema *models.Schema, doc *models.AnswerDocument) (models.Progress, error)
}

type progressService struct {
	registry *fieldtypes.Registry
}

// NewProgressService creates a ProgressService over the given registry.
func NewProgressService(registry *fieldtypes.Registry) ProgressService {
	return &progressService{registry: registry}
}

var _ ProgressService = (*progressService)(nil)

func (s *progressService) Progress(schema *models.Schema, doc *models.AnswerDocument) (models.Progress, error) {
	total := schema.QuestionCount()
	answered := 0

	for _, q := range schema.Questions() {
		handler, err := s.registry.Resolve(q.Kind)
		if err != nil {
			return models.Progress{}, fmt.Errorf("question %q: %w", q.Name, err)
		}
		raw, ok := doc.Get(q.Name)
		if !ok {
			continue
		}
		value, err := handler.Decode(raw)
		if err != nil {
			// A stored value the current kind cannot read counts as
			// unanswered.
			continue
		}
		if !handler.IsEmpty(value) {
			answered++
		}
	}

	return models.NewProgress(answered, total), nil
}
