// Package pdf genera el listado de requisiciones en A4 para el botón
// "Exportar PDF" del dashboard.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del listado + filtro activo + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Evento | Estado | Início | Fim | Local | Produtos    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 90, Green: 50, Blue: 168}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RequisitionListGenerator genera el PDF del listado de requisiciones.
type RequisitionListGenerator struct{}

// NewRequisitionListGenerator construye el generador.
func NewRequisitionListGenerator() *RequisitionListGenerator {
	return &RequisitionListGenerator{}
}

// Generate genera el PDF y devuelve sus bytes. activeFilter es la etiqueta
// del filtro vigente al exportar, solo informativa.
func (g *RequisitionListGenerator) Generate(activeFilter string, reqs []entity.Requisition) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Requisições de eventos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(activeFilter, len(reqs)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range reqs {
		m.AddRows(detailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(activeFilter string, total int) core.Row {
	subtitle := fmt.Sprintf("Filtro: %s — %d requisições — %s",
		activeFilter, total, time.Now().Format("02/01/2006"))
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Requisições de eventos", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(6).Add(
		header(3, "Evento"),
		header(1, "Estado"),
		header(2, "Início"),
		header(2, "Fim"),
		header(2, "Local"),
		header(2, "Produtos"),
	)
}

func detailRow(r entity.Requisition) core.Row {
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8}))
	}
	products := make([]string, 0, len(r.RequiredProducts))
	for _, p := range r.RequiredProducts {
		products = append(products, fmt.Sprintf("%s × %s", p.ProductID, p.Quantity.String()))
	}
	return row.New(5).Add(
		cell(3, r.EventName),
		cell(1, r.Status()),
		cell(2, r.StartDate.Format("02/01/2006")),
		cell(2, r.EndDate.Format("02/01/2006")),
		cell(2, r.Address.Locality),
		col.New(2).Add(text.New(strings.Join(products, ", "), props.Text{Size: 7, Align: align.Left})),
	)
}
