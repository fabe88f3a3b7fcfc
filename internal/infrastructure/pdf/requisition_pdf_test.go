package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
)

func TestRequisitionListGenerator_GeneraUnPDFValido(t *testing.T) {
	approved := true
	reqs := []entity.Requisition{
		{
			ID:        "r1",
			EventName: "Feira do Livro",
			StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
			Approved:  &approved,
			Address:   entity.Address{Locality: "Braga"},
			RequiredProducts: []entity.RequiredProduct{
				{ProductID: "p1", Quantity: decimal.NewFromInt(12)},
			},
		},
		{
			ID:        "r2",
			EventName: "Concerto de verão",
			StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			Address:   entity.Address{Locality: "Guimarães"},
		},
	}

	doc, err := NewRequisitionListGenerator().Generate("Todos", reqs)
	require.NoError(t, err)

	assert.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]), "el documento debe empezar con la cabecera PDF")
}

func TestRequisitionListGenerator_ListadoVacio(t *testing.T) {
	doc, err := NewRequisitionListGenerator().Generate("Pendentes", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
