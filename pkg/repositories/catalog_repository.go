package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/modeldoc/modeldoc-engine/pkg/database"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
	"github.com/modeldoc/modeldoc-engine/pkg/resolver"
)

// CatalogRepository provides data access to the input-data catalog. Its
// Query method satisfies the choice resolver's CatalogStore contract: only
// protocol entries are offered, filtered by category and, unless the
// selector spans all rounds, by the context's simulation round.
type CatalogRepository interface {
	resolver.CatalogStore

	GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogEntry, error)
	Upsert(ctx context.Context, entry *models.CatalogEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogRepository struct {
	db *database.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *database.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

var _ CatalogRepository = (*catalogRepository)(nil)
var _ resolver.CatalogStore = (*catalogRepository)(nil)

func (r *catalogRepository) Query(ctx context.Context, sel models.CatalogSelector, rctx models.ResolutionContext) ([]models.CatalogEntry, error) {
	query := `
		SELECT id, name, category, protocol_data, rounds
		FROM moddoc_catalog_entries
		WHERE category = $1
		  AND protocol_data
		  AND ($2::boolean OR $3 = ANY(rounds))
		ORDER BY lower(name)`

	rows, err := r.db.Query(ctx, query, sel.Category, sel.AllRounds, rctx.Round)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.ProtocolData, &e.Rounds); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog entries: %w", err)
	}
	return entries, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogEntry, error) {
	query := `
		SELECT id, name, category, protocol_data, rounds
		FROM moddoc_catalog_entries
		WHERE id = $1`

	var e models.CatalogEntry
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Category, &e.ProtocolData, &e.Rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog entry %s: %w", id, err)
	}
	return &e, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, entry *models.CatalogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO moddoc_catalog_entries (id, name, category, protocol_data, rounds)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category,
		              protocol_data = EXCLUDED.protocol_data, rounds = EXCLUDED.rounds`

	if _, err := r.db.Exec(ctx, query,
		entry.ID, entry.Name, entry.Category, entry.ProtocolData, entry.Rounds); err != nil {
		return fmt.Errorf("failed to upsert catalog entry %s: %w", entry.Name, err)
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM moddoc_catalog_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete catalog entry %s: %w", id, err)
	}
	return nil
}
