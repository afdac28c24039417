//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldoc/modeldoc-engine/pkg/apperrors"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
	"github.com/modeldoc/modeldoc-engine/pkg/testhelpers"
)

func sectorSchema(slug string) *models.Schema {
	return &models.Schema{
		OwnerKey: models.SectorOwnerKey(slug),
		Heading:  "Sector questions",
		Order:    10,
		Fieldsets: []models.Fieldset{{
			Heading: "Basics",
			Questions: []models.Question{
				{Name: "irrigation", Label: "Irrigation approach", Kind: models.KindTextarea},
				{Name: "spin_up", Label: "Spin-up performed", Kind: models.KindBoolean, Required: true},
			},
		}},
	}
}

func TestSchemaRepository_CRUD(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewSchemaRepository(db.DB)
	ctx := context.Background()

	schema := sectorSchema("schema-crud")
	require.NoError(t, repo.Create(ctx, schema))
	t.Cleanup(func() { _ = repo.Delete(ctx, schema.OwnerKey) })

	got, err := repo.Get(ctx, schema.OwnerKey)
	require.NoError(t, err)
	assert.Equal(t, schema.Heading, got.Heading)
	require.Equal(t, 2, got.QuestionCount())
	q, ok := got.FindQuestion("spin_up")
	require.True(t, ok)
	assert.True(t, q.Required, "fieldsets round-trip through storage intact")

	got.Heading = "Updated heading"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.Get(ctx, schema.OwnerKey)
	require.NoError(t, err)
	assert.Equal(t, "Updated heading", again.Heading)

	require.NoError(t, repo.Delete(ctx, schema.OwnerKey))
	_, err = repo.Get(ctx, schema.OwnerKey)
	assert.True(t, errors.Is(err, apperrors.ErrSchemaNotFound))
}

func TestSchemaRepository_Get_NotFound(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewSchemaRepository(db.DB)

	_, err := repo.Get(context.Background(), models.SectorOwnerKey("never-created"))
	assert.True(t, errors.Is(err, apperrors.ErrSchemaNotFound))
}

func TestSchemaRepository_Create_Duplicate(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewSchemaRepository(db.DB)
	ctx := context.Background()

	schema := sectorSchema("schema-dup")
	require.NoError(t, repo.Create(ctx, schema))
	t.Cleanup(func() { _ = repo.Delete(ctx, schema.OwnerKey) })

	err := repo.Create(ctx, sectorSchema("schema-dup"))
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestSchemaRepository_Create_Invalid(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewSchemaRepository(db.DB)

	bad := sectorSchema("schema-invalid")
	bad.Fieldsets[0].Questions[0].Kind = models.FieldKind("fancy_slider")
	err := repo.Create(context.Background(), bad)
	require.Error(t, err, "invalid schemas must never reach storage")
}

func TestSchemaRepository_List_Ordered(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewSchemaRepository(db.DB)
	ctx := context.Background()

	var keys []models.OwnerKey
	for i, slug := range []string{"list-c", "list-a", "list-b"} {
		s := sectorSchema(slug)
		s.Order = 100 - i // reverse of insertion order
		require.NoError(t, repo.Create(ctx, s))
		keys = append(keys, s.OwnerKey)
	}
	t.Cleanup(func() {
		for _, k := range keys {
			_ = repo.Delete(ctx, k)
		}
	})

	schemas, err := repo.List(ctx)
	require.NoError(t, err)

	var got []models.OwnerKey
	for _, s := range schemas {
		for _, k := range keys {
			if s.OwnerKey == k {
				got = append(got, s.OwnerKey)
			}
		}
	}
	want := []models.OwnerKey{
		models.SectorOwnerKey("list-b"),
		models.SectorOwnerKey("list-a"),
		models.SectorOwnerKey("list-c"),
	}
	assert.Equal(t, want, got, "listing follows order column, then owner key")
}
