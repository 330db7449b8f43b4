package earnings_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/granja-pro/internal/application/earnings"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

const caretakerID = "cuidador-1"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func soldGoat(id string, purchase, sale string, purchaseDate, saleDate time.Time) *entity.Goat {
	cid := caretakerID
	sp := dec(sale)
	sd := saleDate
	return &entity.Goat{
		ID:            id,
		TagNumber:     "T-" + id,
		Status:        entity.GoatStatusSold,
		PurchasePrice: dec(purchase),
		PurchaseDate:  purchaseDate,
		SalePrice:     &sp,
		SaleDate:      &sd,
		CaretakerID:   &cid,
	}
}

// Escenario del modelo porcentaje: compra 10000, venta 16000, sin otros costos,
// 15% ⇒ neta 6000 ⇒ contribución 900.
func TestCompute_PorcentajeEscenarioBase(t *testing.T) {
	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("15")},
		Goats: []*entity.Goat{
			soldGoat("a", "10000", "16000", date(2024, 1, 1), date(2024, 6, 1)),
		},
	})

	require.Len(t, res.PerGoat, 1)
	assert.True(t, dec("6000").Equal(res.PerGoat[0].NetProfit),
		"neta esperada 6000, obtuvo %s", res.PerGoat[0].NetProfit)
	assert.True(t, dec("900").Equal(res.Total),
		"total esperado 900, obtuvo %s", res.Total)
}

// Escenario del modelo mensual: comprado 2024-01-01, vendido 2024-04-01 (3 meses),
// monto 2000 ⇒ contribución 6000.
func TestCompute_MensualEscenarioBase(t *testing.T) {
	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelMonthly, Amount: dec("2000")},
		Goats: []*entity.Goat{
			soldGoat("a", "10000", "16000", date(2024, 1, 1), date(2024, 4, 1)),
		},
	})

	require.Len(t, res.PerGoat, 1)
	assert.Equal(t, 3, res.PerGoat[0].MonthsTended)
	assert.True(t, dec("6000").Equal(res.Total),
		"total esperado 6000, obtuvo %s", res.Total)
}

// Mensual con venta dentro del primer mes: se paga mínimo un mes.
func TestCompute_MensualMinimoUnMes(t *testing.T) {
	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelMonthly, Amount: dec("2000")},
		Goats: []*entity.Goat{
			soldGoat("a", "10000", "12000", date(2024, 1, 1), date(2024, 1, 20)),
		},
	})

	require.Len(t, res.PerGoat, 1)
	assert.True(t, dec("2000").Equal(res.Total))
}

// Mensual sin fecha de venta: el animal no aporta y queda marcado explícitamente.
func TestCompute_MensualSinFechaVentaExcluido(t *testing.T) {
	cid := caretakerID
	sp := dec("16000")
	g := &entity.Goat{
		ID:            "a",
		Status:        entity.GoatStatusSold,
		PurchasePrice: dec("10000"),
		PurchaseDate:  date(2024, 1, 1),
		SalePrice:     &sp,
		SaleDate:      nil,
		CaretakerID:   &cid,
	}

	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelMonthly, Amount: dec("2000")},
		Goats:       []*entity.Goat{g},
	})

	require.Len(t, res.PerGoat, 1)
	assert.True(t, res.PerGoat[0].MissingSaleDate)
	assert.True(t, res.Total.IsZero(), "sin fecha de venta no hay conteo de meses definido")
}

// La imputación de costos: gastos directos + cuota de gastos sin asignar entre
// activos + costos sanitarios, todos restan de la neta.
func TestCompute_ImputacionDeCostos(t *testing.T) {
	goatID := "a"
	sold := soldGoat(goatID, "10000", "16000", date(2024, 1, 1), date(2024, 6, 1))
	// Dos animales activos para la prorrata: 600 sin asignar / 2 = 300 por animal.
	active1 := &entity.Goat{ID: "b", Status: entity.GoatStatusActive}
	active2 := &entity.Goat{ID: "c", Status: entity.GoatStatusActive}

	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("10")},
		Goats:       []*entity.Goat{sold, active1, active2},
		Expenses: []*entity.Expense{
			{ID: "e1", GoatID: &goatID, Amount: dec("500")}, // directo
			{ID: "e2", GoatID: nil, Amount: dec("600")},     // compartido
		},
		Health: []*entity.HealthRecord{
			{ID: "h1", GoatID: goatID, Cost: dec("200")},
		},
	})

	require.Len(t, res.PerGoat, 1)
	// neta = 16000 − 10000 − (500 + 300 + 200) = 5000
	assert.True(t, dec("5000").Equal(res.PerGoat[0].NetProfit),
		"neta esperada 5000, obtuvo %s", res.PerGoat[0].NetProfit)
	assert.True(t, dec("500").Equal(res.Total))
}

// Sin animales activos, los gastos sin asignar no se reparten (cuota cero).
func TestCompute_SinActivosNoHayProrrata(t *testing.T) {
	sold := soldGoat("a", "10000", "16000", date(2024, 1, 1), date(2024, 6, 1))

	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("15")},
		Goats:       []*entity.Goat{sold},
		Expenses: []*entity.Expense{
			{ID: "e1", GoatID: nil, Amount: dec("900")},
		},
	})

	require.Len(t, res.PerGoat, 1)
	assert.True(t, dec("6000").Equal(res.PerGoat[0].NetProfit))
}

// La neta puede ser negativa y la contribución porcentual también: riesgo compartido,
// sin piso en cero.
func TestCompute_PorcentajeNegativoSinPiso(t *testing.T) {
	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("20")},
		Goats: []*entity.Goat{
			soldGoat("a", "10000", "8000", date(2024, 1, 1), date(2024, 6, 1)),
		},
	})

	require.Len(t, res.PerGoat, 1)
	assert.True(t, res.Total.IsNegative(), "la paga refleja la pérdida, total=%s", res.Total)
	assert.True(t, dec("-400").Equal(res.Total))
}

// Un animal sin cuidador asignado no aporta a la paga de nadie.
func TestCompute_AnimalSinCuidadorNoAporta(t *testing.T) {
	sp := dec("16000")
	sd := date(2024, 6, 1)
	unassigned := &entity.Goat{
		ID:            "a",
		Status:        entity.GoatStatusSold,
		PurchasePrice: dec("10000"),
		SalePrice:     &sp,
		SaleDate:      &sd,
		CaretakerID:   nil,
	}

	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("15")},
		Goats:       []*entity.Goat{unassigned},
	})

	assert.Empty(t, res.PerGoat)
	assert.True(t, res.Total.IsZero())
}

// Animales activos o sin precio de venta no califican.
func TestCompute_SoloVendidosConPrecio(t *testing.T) {
	cid := caretakerID
	activeGoat := &entity.Goat{ID: "a", Status: entity.GoatStatusActive, CaretakerID: &cid, PurchasePrice: dec("1000")}
	soldNoPrice := &entity.Goat{ID: "b", Status: entity.GoatStatusSold, CaretakerID: &cid, PurchasePrice: dec("1000")}

	res := earnings.Compute(earnings.Input{
		CaretakerID: caretakerID,
		Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("15")},
		Goats:       []*entity.Goat{activeGoat, soldNoPrice},
	})

	assert.Empty(t, res.PerGoat)
}

// Monotonicidad: subir el precio de venta (costos fijos) nunca baja la contribución
// bajo el modelo porcentaje.
func TestCompute_MonotoniaEnPrecioDeVenta(t *testing.T) {
	prices := []string{"8000", "10000", "12000", "16000", "20000"}
	prev := decimal.New(0, 0)
	first := true

	for _, p := range prices {
		res := earnings.Compute(earnings.Input{
			CaretakerID: caretakerID,
			Model:       entity.PaymentModel{Type: entity.PaymentModelPercentage, Amount: dec("15")},
			Goats: []*entity.Goat{
				soldGoat("a", "10000", p, date(2024, 1, 1), date(2024, 6, 1)),
			},
		})
		if !first {
			assert.True(t, res.Total.GreaterThanOrEqual(prev),
				"venta %s: total %s debe ser >= %s", p, res.Total, prev)
		}
		prev = res.Total
		first = false
	}
}

// ResolveModel: el override del cuidador manda sobre el modelo del negocio.
func TestResolveModel_OverrideDelCuidador(t *testing.T) {
	b := &entity.Business{
		PaymentModelType:   entity.PaymentModelPercentage,
		PaymentModelAmount: dec("15"),
	}
	c := &entity.Caretaker{
		PaymentType:   entity.PaymentModelMonthly,
		PaymentAmount: dec("2000"),
	}

	m := earnings.ResolveModel(b, c)
	assert.Equal(t, entity.PaymentModelMonthly, m.Type)
	assert.True(t, dec("2000").Equal(m.Amount))

	// Sin override (tipo vacío) aplica el del negocio.
	c.PaymentType = ""
	m = earnings.ResolveModel(b, c)
	assert.Equal(t, entity.PaymentModelPercentage, m.Type)
	assert.True(t, dec("15").Equal(m.Amount))
}
