// Package earnings calcula la paga acumulada de un cuidador a partir de los
// animales vendidos que tuvo asignados y del modelo de pago vigente.
package earnings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Input insumos del cálculo. Goats, Expenses y Health son los del negocio completo:
// el cálculo restringe por cuidador, pero la prorrata de gastos sin animal asignado
// necesita el conteo de animales activos de todo el negocio.
type Input struct {
	CaretakerID string
	Model       entity.PaymentModel // modelo del negocio o el override del cuidador
	Goats       []*entity.Goat
	Expenses    []*entity.Expense
	Health      []*entity.HealthRecord
}

// GoatEarning contribución de un animal vendido a la paga del cuidador.
type GoatEarning struct {
	GoatID          string
	TagNumber       string
	NetProfit       decimal.Decimal // venta − compra − costos imputados
	Contribution    decimal.Decimal
	MonthsTended    int  // solo modelo monthly
	MissingSaleDate bool // monthly sin fecha de venta: excluido con marca explícita
}

// Result desglose y total de la paga del cuidador.
type Result struct {
	CaretakerID string
	Model       entity.PaymentModel
	PerGoat     []GoatEarning
	Total       decimal.Decimal
}

// ResolveModel decide el modelo de pago aplicable: el override del cuidador si está
// configurado, si no el del negocio. Ambas variantes existen y deben soportarse.
func ResolveModel(b *entity.Business, c *entity.Caretaker) entity.PaymentModel {
	if c != nil && c.PaymentType != "" {
		return entity.PaymentModel{Type: c.PaymentType, Amount: c.PaymentAmount}
	}
	return b.PaymentModel()
}

// Compute calcula la paga acumulada:
//
//  1. Solo animales asignados al cuidador, vendidos y con precio de venta.
//  2. Ganancia neta por animal = venta − compra − costos imputados, donde los costos
//     imputados son: gastos directos del animal + cuota pareja de los gastos sin
//     animal asignado (repartidos entre los animales activos al momento del cálculo)
//     + costos sanitarios del animal.
//  3. percentage: neta × (porcentaje / 100) por animal, sumado. Puede ser negativa:
//     el cuidador comparte el riesgo, no hay piso en cero.
//  4. monthly: monto × max(1, floor(meses entre compra y venta)) por animal, sumado.
//     Un animal sin fecha de venta no aporta nada y queda marcado (validación
//     explícita en lugar de un conteo de meses indefinido).
//
// Un animal sin cuidador asignado no aporta a la paga de nadie.
func Compute(in Input) Result {
	res := Result{
		CaretakerID: in.CaretakerID,
		Model:       in.Model,
		Total:       decimal.Zero,
	}

	sharedPerGoat := sharedExpenseShare(in.Goats, in.Expenses)
	directExpenses := expensesByGoat(in.Expenses)
	healthCosts := healthByGoat(in.Health)

	for _, g := range in.Goats {
		if g.CaretakerID == nil || *g.CaretakerID != in.CaretakerID {
			continue
		}
		if !g.IsSoldWithPrice() {
			continue
		}

		allocated := directExpenses[g.ID].Add(sharedPerGoat).Add(healthCosts[g.ID])
		net := g.SalePrice.Sub(g.PurchasePrice).Sub(allocated)

		earning := GoatEarning{
			GoatID:    g.ID,
			TagNumber: g.TagNumber,
			NetProfit: net,
		}

		switch in.Model.Type {
		case entity.PaymentModelPercentage:
			earning.Contribution = net.Mul(in.Model.Amount).Div(oneHundred)
		case entity.PaymentModelMonthly:
			if g.SaleDate == nil {
				earning.MissingSaleDate = true
				earning.Contribution = decimal.Zero
				res.PerGoat = append(res.PerGoat, earning)
				continue
			}
			months := monthsBetween(g.PurchaseDate, *g.SaleDate)
			if months < 1 {
				months = 1
			}
			earning.MonthsTended = months
			earning.Contribution = in.Model.Amount.Mul(decimal.NewFromInt(int64(months)))
		default:
			// Modelo desconocido: el animal no aporta, pero queda en el desglose.
			earning.Contribution = decimal.Zero
		}

		res.Total = res.Total.Add(earning.Contribution)
		res.PerGoat = append(res.PerGoat, earning)
	}

	return res
}

// sharedExpenseShare calcula la cuota pareja por animal de los gastos sin animal
// asignado: total sin asignar dividido entre los animales ACTIVOS al momento del
// cálculo. Sin animales activos la cuota es cero (no hay entre quién repartir).
func sharedExpenseShare(goats []*entity.Goat, expenses []*entity.Expense) decimal.Decimal {
	unassigned := decimal.Zero
	for _, e := range expenses {
		if e.GoatID == nil {
			unassigned = unassigned.Add(e.Amount)
		}
	}
	if unassigned.IsZero() {
		return decimal.Zero
	}

	active := 0
	for _, g := range goats {
		if g.Status == entity.GoatStatusActive {
			active++
		}
	}
	if active == 0 {
		return decimal.Zero
	}
	return unassigned.Div(decimal.NewFromInt(int64(active)))
}

func expensesByGoat(expenses []*entity.Expense) map[string]decimal.Decimal {
	byGoat := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.GoatID != nil {
			byGoat[*e.GoatID] = byGoat[*e.GoatID].Add(e.Amount)
		}
	}
	return byGoat
}

func healthByGoat(records []*entity.HealthRecord) map[string]decimal.Decimal {
	byGoat := make(map[string]decimal.Decimal)
	for _, h := range records {
		byGoat[h.GoatID] = byGoat[h.GoatID].Add(h.Cost)
	}
	return byGoat
}

// monthsBetween meses calendario completos entre dos fechas (floor, nunca negativo).
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
