package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modeldoc/modeldoc-engine/pkg/fieldtypes"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
	"github.com/modeldoc/modeldoc-engine/pkg/resolver"
)

// ExportEntity is one model version to project into the export table: its
// own resolution context (the round it was documented for, its sector) and
// its saved answer documents per owner key.
type ExportEntity struct {
	ID        uuid.UUID
	Label     string
	Context   models.ResolutionContext
	Documents map[models.OwnerKey]models.Values
}

// ExportRow is one table row, cells aligned to ExportTable.Columns.
type ExportRow struct {
	EntityID uuid.UUID
	Label    string
	Cells    []string
}

// ExportTable is the flat tabular projection handed to the spreadsheet
// rendering layer.
type ExportTable struct {
	Columns []string
	Rows    []ExportRow
}

// ExportService projects schemas and answer documents into a flat table
// for bulk export, independent of the interactive form.
type ExportService interface {
	// BuildTable derives the column header from every fieldset's questions
	// across the supplied schemas, in schema order, and renders one row per
	// entity. Cells decode each stored value and apply the kind's display
	// transform; catalog references resolve to display names under the
	// entity's own context. Missing documents or keys render empty cells.
	BuildTable(ctx context.Context, schemas []*models.Schema, entities []ExportEntity) (*ExportTable, error)
}

type exportService struct {
	registry *fieldtypes.Registry
	choices  resolver.ChoiceResolver
	logger   *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(registry *fieldtypes.Registry, choices resolver.ChoiceResolver, logger *zap.Logger) ExportService {
	return &exportService{
		registry: registry,
		choices:  choices,
		logger:   logger.Named("export-service"),
	}
}

var _ ExportService = (*exportService)(nil)

func (s *exportService) BuildTable(ctx context.Context, schemas []*models.Schema, entities []ExportEntity) (*ExportTable, error) {
	ordered := make([]*models.Schema, len(schemas))
	copy(ordered, schemas)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].OwnerKey < ordered[j].OwnerKey
	})

	table := &ExportTable{Columns: []string{"Model"}}
	for _, schema := range ordered {
		for _, q := range schema.Questions() {
			table.Columns = append(table.Columns, q.Label)
		}
	}

	// One memoized resolver per run: repeated (selector, context) pairs hit
	// the catalog once.
	memo := resolver.NewMemoized(s.choices)

	for _, entity := range entities {
		row := ExportRow{EntityID: entity.ID, Label: entity.Label, Cells: []string{entity.Label}}
		for _, schema := range ordered {
			values := entity.Documents[schema.OwnerKey]
			for _, q := range schema.Questions() {
				cell, err := s.renderCell(ctx, memo, &q, values, entity.Context)
				if err != nil {
					return nil, fmt.Errorf("entity %s, question %q: %w", entity.ID, q.Name, err)
				}
				row.Cells = append(row.Cells, cell)
			}
		}
		table.Rows = append(table.Rows, row)
	}

	s.logger.Debug("Built export table",
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", len(table.Rows)))
	return table, nil
}

func (s *exportService) renderCell(ctx context.Context, memo resolver.ChoiceResolver, q *models.Question, values models.Values, rctx models.ResolutionContext) (string, error) {
	handler, err := s.registry.Resolve(q.Kind)
	if err != nil {
		return "", err
	}

	raw, ok := values[q.Name]
	if !ok {
		return "", nil
	}
	value, err := handler.Decode(raw)
	if err != nil {
		// Stale value from an older schema revision; render empty rather
		// than failing the whole export.
		return "", nil
	}
	if handler.IsEmpty(value) {
		return "", nil
	}

	labels, err := s.displayLabels(ctx, memo, q, rctx)
	if err != nil {
		return "", err
	}
	return handler.Display(value, labels), nil
}

func (s *exportService) displayLabels(ctx context.Context, memo resolver.ChoiceResolver, q *models.Question, rctx models.ResolutionContext) (map[string]string, error) {
	var choices []models.ChoiceOption
	switch {
	case fieldtypes.NeedsResolution(q.Kind):
		resolved, err := memo.ResolveChoices(ctx, q.EffectiveSelector(), rctx)
		if err != nil {
			return nil, err
		}
		choices = resolved
	case q.Kind.IsChoiceKind():
		choices = q.Params.Options
	default:
		return nil, nil
	}

	labels := make(map[string]string, len(choices))
	for _, c := range choices {
		labels[c.Code] = c.Label
	}
	return labels, nil
}
