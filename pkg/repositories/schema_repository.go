package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/modeldoc/modeldoc-engine/pkg/apperrors"
	"github.com/modeldoc/modeldoc-engine/pkg/database"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// SchemaRepository provides data access for questionnaire schemas. Exactly
// one schema exists per owner key; Create enforces the uniqueness.
type SchemaRepository interface {
	Get(ctx context.Context, key models.OwnerKey) (*models.Schema, error)
	List(ctx context.Context) ([]*models.Schema, error)
	Create(ctx context.Context, schema *models.Schema) error
	Update(ctx context.Context, schema *models.Schema) error
	Delete(ctx context.Context, key models.OwnerKey) error
}

type schemaRepository struct {
	db *database.DB
}

// NewSchemaRepository creates a new SchemaRepository.
func NewSchemaRepository(db *database.DB) SchemaRepository {
	return &schemaRepository{db: db}
}

var _ SchemaRepository = (*schemaRepository)(nil)

func (r *schemaRepository) Get(ctx context.Context, key models.OwnerKey) (*models.Schema, error) {
	query := `
		SELECT owner_key, heading, description, ord, fieldsets
		FROM moddoc_schemas
		WHERE owner_key = $1`

	schema, err := scanSchema(r.db.QueryRow(ctx, query, string(key)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSchemaNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schema %s: %w", key, err)
	}
	return schema, nil
}

func (r *schemaRepository) List(ctx context.Context) ([]*models.Schema, error) {
	query := `
		SELECT owner_key, heading, description, ord, fieldsets
		FROM moddoc_schemas
		ORDER BY ord, owner_key`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var schemas []*models.Schema
	for rows.Next() {
		schema, err := scanSchema(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schema: %w", err)
		}
		schemas = append(schemas, schema)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schemas: %w", err)
	}
	return schemas, nil
}

func (r *schemaRepository) Create(ctx context.Context, schema *models.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	fieldsets, err := json.Marshal(schema.Fieldsets)
	if err != nil {
		return fmt.Errorf("failed to marshal fieldsets: %w", err)
	}

	query := `
		INSERT INTO moddoc_schemas (owner_key, heading, description, ord, fieldsets)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.Exec(ctx, query,
		string(schema.OwnerKey), schema.Heading, schema.Description, schema.Order, fieldsets)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: schema for %s already exists", apperrors.ErrConflict, schema.OwnerKey)
		}
		return fmt.Errorf("failed to create schema %s: %w", schema.OwnerKey, err)
	}
	return nil
}

func (r *schemaRepository) Update(ctx context.Context, schema *models.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	fieldsets, err := json.Marshal(schema.Fieldsets)
	if err != nil {
		return fmt.Errorf("failed to marshal fieldsets: %w", err)
	}

	query := `
		UPDATE moddoc_schemas
		SET heading = $2, description = $3, ord = $4, fieldsets = $5, updated_at = now()
		WHERE owner_key = $1`

	result, err := r.db.Exec(ctx, query,
		string(schema.OwnerKey), schema.Heading, schema.Description, schema.Order, fieldsets)
	if err != nil {
		return fmt.Errorf("failed to update schema %s: %w", schema.OwnerKey, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrSchemaNotFound, schema.OwnerKey)
	}
	return nil
}

func (r *schemaRepository) Delete(ctx context.Context, key models.OwnerKey) error {
	result, err := r.db.Exec(ctx, `DELETE FROM moddoc_schemas WHERE owner_key = $1`, string(key))
	if err != nil {
		return fmt.Errorf("failed to delete schema %s: %w", key, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrSchemaNotFound, key)
	}
	return nil
}

func scanSchema(row pgx.Row) (*models.Schema, error) {
	var (
		schema    models.Schema
		ownerKey  string
		fieldsets []byte
	)
	if err := row.Scan(&ownerKey, &schema.Heading, &schema.Description, &schema.Order, &fieldsets); err != nil {
		return nil, err
	}
	schema.OwnerKey = models.OwnerKey(ownerKey)
	if err := json.Unmarshal(fieldsets, &schema.Fieldsets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fieldsets: %w", err)
	}
	return &schema, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
