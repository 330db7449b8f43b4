// Package pdf implementa la generación del reporte de ganancias de un cuidador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Fecha del reporte           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUIDADOR: Nombre + modelo de pago vigente                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Arete | Ganancia neta | Meses | Aporte              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/tu-usuario/granja-pro/internal/application/earnings"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 97, Blue: 56}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// EarningsReportGenerator genera el PDF del reporte de ganancias con Maroto v2.
type EarningsReportGenerator struct{}

// NewEarningsReportGenerator construye el generador.
func NewEarningsReportGenerator() *EarningsReportGenerator { return &EarningsReportGenerator{} }

// Generate produce el PDF del reporte y devuelve sus bytes.
func (g *EarningsReportGenerator) Generate(
	_ context.Context,
	business *entity.Business,
	caretaker *entity.Caretaker,
	result *earnings.Result,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ganancias", true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(caretakerRow(caretaker, result))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(result.PerGoat) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(result))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del negocio (izq) y fecha del reporte (der).
func headerRow(business *entity.Business) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(business.Address, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE GANANCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// caretakerRow: cuidador y modelo de pago aplicado al cálculo.
func caretakerRow(caretaker *entity.Caretaker, result *earnings.Result) core.Row {
	model := "Porcentaje de ganancia: " + result.Model.Amount.StringFixed(0) + "%"
	if result.Model.Type == entity.PaymentModelMonthly {
		model = "Pago mensual por animal: $" + result.Model.Amount.StringFixed(0)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CUIDADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(caretaker.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(model, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de desglose por animal.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Arete", 3, align.Left),
		h("Ganancia neta", 3, align.Right),
		h("Meses", 2, align.Center),
		h("Aporte", 4, align.Right),
	)
}

// tableDetailRows: una fila por animal vendido.
func tableDetailRows(perGoat []earnings.GoatEarning) []core.Row {
	result := make([]core.Row, 0, len(perGoat))
	for _, e := range perGoat {
		months := "—"
		if e.MonthsTended > 0 {
			months = fmt.Sprintf("%d", e.MonthsTended)
		}
		aporte := "$" + e.Contribution.StringFixed(2)
		if e.MissingSaleDate {
			aporte = "sin fecha de venta"
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				e.TagNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+e.NetProfit.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				months,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				aporte,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total a pagar alineado a la derecha.
func totalRow(result *earnings.Result) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+result.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}
