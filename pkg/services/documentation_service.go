package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modeldoc/modeldoc-engine/pkg/apperrors"
	"github.com/modeldoc/modeldoc-engine/pkg/forms"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
	"github.com/modeldoc/modeldoc-engine/pkg/repositories"
)

// EntityStore is the collaborator that owns the documented model versions
// and knows each one's active resolution context (its simulation round and
// sector).
type EntityStore interface {
	GetActiveContext(ctx context.Context, entityID uuid.UUID) (models.ResolutionContext, error)
}

// StageProgress is the completeness of one questionnaire stage.
type StageProgress struct {
	OwnerKey models.OwnerKey `json:"owner_key"`
	Heading  string          `json:"heading"`
	Progress models.Progress `json:"progress"`
}

// ProgressSummary is the per-stage progress plus the overall rollup shown
// next to the questionnaire.
type ProgressSummary struct {
	Stages  []StageProgress `json:"stages"`
	Overall models.Progress `json:"overall"`
}

// DocumentationService orchestrates the questionnaire lifecycle for one
// model version: materialize a stage form, validate and save a submission,
// duplicate documents into a cloned version, and score completeness.
type DocumentationService interface {
	// GetForm materializes the form for one owner key, pre-populated from
	// the saved answer document.
	GetForm(ctx context.Context, entityID uuid.UUID, key models.OwnerKey) (*forms.FormInstance, error)

	// SubmitForm validates raw input for one owner key and, when valid,
	// replaces the stored answer document wholesale. Field errors are
	// returned together; nothing is saved if any field fails.
	SubmitForm(ctx context.Context, entityID uuid.UUID, key models.OwnerKey, raw map[string]any) ([]forms.FieldError, error)

	// Duplicate copies every owner key's answer document from one model
	// version to another, used when a version is cloned for a new
	// simulation round.
	Duplicate(ctx context.Context, sourceID, targetID uuid.UUID) error

	// Summary computes per-stage and overall completeness for a model
	// version, covering the fixed stages and the version's sector schema.
	Summary(ctx context.Context, entityID uuid.UUID) (*ProgressSummary, error)
}

type documentationService struct {
	schemas      repositories.SchemaRepository
	documents    repositories.AnswerDocumentRepository
	entities     EntityStore
	materializer *forms.Materializer
	progress     ProgressService
	logger       *zap.Logger
}

// NewDocumentationService creates a DocumentationService.
func NewDocumentationService(
	schemas repositories.SchemaRepository,
	documents repositories.AnswerDocumentRepository,
	entities EntityStore,
	materializer *forms.Materializer,
	progress ProgressService,
	logger *zap.Logger,
) DocumentationService {
	return &documentationService{
		schemas:      schemas,
		documents:    documents,
		entities:     entities,
		materializer: materializer,
		progress:     progress,
		logger:       logger.Named("documentation-service"),
	}
}

var _ DocumentationService = (*documentationService)(nil)

func (s *documentationService) GetForm(ctx context.Context, entityID uuid.UUID, key models.OwnerKey) (*forms.FormInstance, error) {
	schema, err := s.schemas.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	rctx, err := s.entities.GetActiveContext(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get context for entity %s: %w", entityID, err)
	}
	doc, err := s.documents.Load(ctx, entityID, key)
	if err != nil {
		return nil, err
	}
	return s.materializer.Materialize(ctx, schema, rctx, doc)
}

func (s *documentationService) SubmitForm(ctx context.Context, entityID uuid.UUID, key models.OwnerKey, raw map[string]any) ([]forms.FieldError, error) {
	schema, err := s.schemas.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	rctx, err := s.entities.GetActiveContext(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get context for entity %s: %w", entityID, err)
	}

	form, err := s.materializer.Materialize(ctx, schema, rctx, nil)
	if err != nil {
		return nil, err
	}

	values, fieldErrs, err := s.materializer.Submit(form, raw)
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	if err := s.documents.Save(ctx, entityID, key, values); err != nil {
		return nil, err
	}

	s.logger.Info("Saved answer document",
		zap.String("entity_id", entityID.String()),
		zap.String("owner_key", string(key)),
		zap.Int("answered", len(values)))
	return nil, nil
}

func (s *documentationService) Duplicate(ctx context.Context, sourceID, targetID uuid.UUID) error {
	if err := s.documents.Duplicate(ctx, sourceID, targetID); err != nil {
		return err
	}
	s.logger.Info("Duplicated answer documents",
		zap.String("source_id", sourceID.String()),
		zap.String("target_id", targetID.String()))
	return nil
}

func (s *documentationService) Summary(ctx context.Context, entityID uuid.UUID) (*ProgressSummary, error) {
	rctx, err := s.entities.GetActiveContext(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get context for entity %s: %w", entityID, err)
	}

	keys := make([]models.OwnerKey, 0, len(models.StageOwnerKeys)+1)
	keys = append(keys, models.StageOwnerKeys...)
	if rctx.Sector != "" {
		keys = append(keys, models.SectorOwnerKey(rctx.Sector))
	}

	summary := &ProgressSummary{}
	answered, total := 0, 0
	for _, key := range keys {
		schema, err := s.schemas.Get(ctx, key)
		if errors.Is(err, apperrors.ErrSchemaNotFound) {
			// A sector without sector-specific questions has no schema on
			// file; it contributes nothing to the summary.
			continue
		}
		if err != nil {
			return nil, err
		}
		doc, err := s.documents.Load(ctx, entityID, key)
		if err != nil {
			return nil, err
		}
		p, err := s.progress.Progress(schema, doc)
		if err != nil {
			return nil, err
		}
		summary.Stages = append(summary.Stages, StageProgress{
			OwnerKey: key,
			Heading:  schema.Heading,
			Progress: p,
		})
		answered += p.Answered
		total += p.Total
	}

	summary.Overall = models.NewProgress(answered, total)
	return summary, nil
}
