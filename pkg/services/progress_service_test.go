package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldoc/modeldoc-engine/pkg/fieldtypes"
	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

func progressSchema() *models.Schema {
	return &models.Schema{
		OwnerKey: models.OwnerKeyModelSetup,
		Heading:  "Model setup",
		Fieldsets: []models.Fieldset{
			{
				Heading: "Simulation",
				Questions: []models.Question{
					{Name: "irrigation", Label: "Irrigation approach", Kind: models.KindTextarea},
					{Name: "spin_up", Label: "Spin-up performed", Kind: models.KindBoolean},
				},
			},
		},
	}
}

func docWith(values models.Values) *models.AnswerDocument {
	doc := models.NewAnswerDocument(uuid.New(), models.OwnerKeyModelSetup)
	for k, v := range values {
		doc.Values[k] = v
	}
	return doc
}

func TestProgress(t *testing.T) {
	svc := NewProgressService(fieldtypes.NewRegistry())
	schema := progressSchema()

	tests := []struct {
		name     string
		values   models.Values
		answered int
		percent  int
	}{
		{"empty document", models.Values{}, 0, 0},
		{"empty string does not count", models.Values{"irrigation": ""}, 0, 0},
		{"half answered", models.Values{"irrigation": "flood"}, 1, 50},
		{"explicit false counts", models.Values{"irrigation": "flood", "spin_up": false}, 2, 100},
		{"orphan key ignored", models.Values{"irrigation": "flood", "removed": "x"}, 1, 50},
		{"undecodable value unanswered", models.Values{"spin_up": "yes"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.Progress(schema, docWith(tt.values))
			require.NoError(t, err)
			assert.Equal(t, tt.answered, p.Answered)
			assert.Equal(t, 2, p.Total)
			assert.Equal(t, tt.percent, p.Percent)
		})
	}
}

func TestProgress_EmptySchema(t *testing.T) {
	svc := NewProgressService(fieldtypes.NewRegistry())
	schema := &models.Schema{OwnerKey: models.OwnerKeyResolution, Heading: "Resolution"}

	p, err := svc.Progress(schema, docWith(models.Values{"anything": "x"}))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.Percent, "a schema with no questions scores zero, never divides by zero")
}

func TestProgress_NilDocument(t *testing.T) {
	svc := NewProgressService(fieldtypes.NewRegistry())
	p, err := svc.Progress(progressSchema(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Answered)
	assert.Equal(t, 2, p.Total)
}
