package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/modeldoc/modeldoc-engine/pkg/database"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// AnswerDocumentRepository persists the sparse answer maps, one per
// (model version, owner key). Writes replace the whole map; there is no
// field-level patching.
type AnswerDocumentRepository interface {
	// Load returns the document for one owner key, with an empty value map
	// if nothing was saved yet. A missing row is not an error.
	Load(ctx context.Context, entityID uuid.UUID, key models.OwnerKey) (*models.AnswerDocument, error)

	// LoadAll returns every owner key's value map for one model version.
	LoadAll(ctx context.Context, entityID uuid.UUID) (map[models.OwnerKey]models.Values, error)

	// LoadForEntities returns the value maps of many model versions in one
	// query, for export runs.
	LoadForEntities(ctx context.Context, entityIDs []uuid.UUID) (map[uuid.UUID]map[models.OwnerKey]models.Values, error)

	// Save replaces the stored map for one owner key wholesale.
	Save(ctx context.Context, entityID uuid.UUID, key models.OwnerKey, values models.Values) error

	// Duplicate copies every owner key's document from source to target,
	// overwriting any documents the target already has. The copies are
	// independent of the source.
	Duplicate(ctx context.Context, sourceID, targetID uuid.UUID) error
}

type answerDocumentRepository struct {
	db *database.DB
}

// NewAnswerDocumentRepository creates a new AnswerDocumentRepository.
func NewAnswerDocumentRepository(db *database.DB) AnswerDocumentRepository {
	return &answerDocumentRepository{db: db}
}

var _ AnswerDocumentRepository = (*answerDocumentRepository)(nil)

func (r *answerDocumentRepository) Load(ctx context.Context, entityID uuid.UUID, key models.OwnerKey) (*models.AnswerDocument, error) {
	query := `
		SELECT answers, updated_at
		FROM moddoc_answer_documents
		WHERE entity_id = $1 AND owner_key = $2`

	doc := models.NewAnswerDocument(entityID, key)
	var answers []byte
	err := r.db.QueryRow(ctx, query, entityID, string(key)).Scan(&answers, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load answer document %s/%s: %w", entityID, key, err)
	}
	if err := json.Unmarshal(answers, &doc.Values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer document %s/%s: %w", entityID, key, err)
	}
	return doc, nil
}

func (r *answerDocumentRepository) LoadAll(ctx context.Context, entityID uuid.UUID) (map[models.OwnerKey]models.Values, error) {
	query := `
		SELECT owner_key, answers
		FROM moddoc_answer_documents
		WHERE entity_id = $1`

	rows, err := r.db.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer documents for %s: %w", entityID, err)
	}
	defer rows.Close()

	out := make(map[models.OwnerKey]models.Values)
	for rows.Next() {
		var (
			key     string
			answers []byte
		)
		if err := rows.Scan(&key, &answers); err != nil {
			return nil, fmt.Errorf("failed to scan answer document: %w", err)
		}
		var values models.Values
		if err := json.Unmarshal(answers, &values); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer document %s/%s: %w", entityID, key, err)
		}
		out[models.OwnerKey(key)] = values
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer documents: %w", err)
	}
	return out, nil
}

func (r *answerDocumentRepository) LoadForEntities(ctx context.Context, entityIDs []uuid.UUID) (map[uuid.UUID]map[models.OwnerKey]models.Values, error) {
	query := `
		SELECT entity_id, owner_key, answers
		FROM moddoc_answer_documents
		WHERE entity_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, entityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer documents: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]map[models.OwnerKey]models.Values, len(entityIDs))
	for rows.Next() {
		var (
			entityID uuid.UUID
			key      string
			answers  []byte
		)
		if err := rows.Scan(&entityID, &key, &answers); err != nil {
			return nil, fmt.Errorf("failed to scan answer document: %w", err)
		}
		var values models.Values
		if err := json.Unmarshal(answers, &values); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer document %s/%s: %w", entityID, key, err)
		}
		if out[entityID] == nil {
			out[entityID] = make(map[models.OwnerKey]models.Values)
		}
		out[entityID][models.OwnerKey(key)] = values
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer documents: %w", err)
	}
	return out, nil
}

func (r *answerDocumentRepository) Save(ctx context.Context, entityID uuid.UUID, key models.OwnerKey, values models.Values) error {
	if values == nil {
		values = models.Values{}
	}
	answers, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal answer document: %w", err)
	}

	query := `
		INSERT INTO moddoc_answer_documents (entity_id, owner_key, answers, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (entity_id, owner_key)
		DO UPDATE SET answers = EXCLUDED.answers, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, entityID, string(key), answers); err != nil {
		return fmt.Errorf("failed to save answer document %s/%s: %w", entityID, key, err)
	}
	return nil
}

func (r *answerDocumentRepository) Duplicate(ctx context.Context, sourceID, targetID uuid.UUID) error {
	query := `
		INSERT INTO moddoc_answer_documents (entity_id, owner_key, answers, updated_at)
		SELECT $2, owner_key, answers, now()
		FROM moddoc_answer_documents
		WHERE entity_id = $1
		ON CONFLICT (entity_id, owner_key)
		DO UPDATE SET answers = EXCLUDED.answers, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, sourceID, targetID); err != nil {
		return fmt.Errorf("failed to duplicate answer documents %s -> %s: %w", sourceID, targetID, err)
	}
	return nil
}
