package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modelos de pago para cuidadores (deben coincidir con el CHECK de la tabla businesses).
const (
	PaymentModelPercentage = "percentage" // porcentaje de la ganancia neta por animal vendido
	PaymentModelMonthly    = "monthly"    // monto fijo por cada mes que cuidó al animal
)

// PaymentModel describe cómo se calcula la paga de un cuidador.
// Amount es el porcentaje (0-100) o el monto mensual, según Type.
type PaymentModel struct {
	Type   string
	Amount decimal.Decimal
}

// Business representa un negocio/finca del sistema (tenant multi-tenant).
type Business struct {
	ID                 string
	Name               string
	Description        *string
	Address            string
	PaymentModelType   string // ver constantes PaymentModel*
	PaymentModelAmount decimal.Decimal
	CreatedBy          string // user_id del propietario creador
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Placeholder indica que el registro se sintetizó porque las reglas de acceso
	// del almacén aún ocultaban la fila real; el backfill lo corrige en segundo plano.
	Placeholder bool
}

// PaymentModel devuelve el modelo de pago configurado en el negocio.
func (b *Business) PaymentModel() PaymentModel {
	return PaymentModel{Type: b.PaymentModelType, Amount: b.PaymentModelAmount}
}

// BusinessUpdate campos opcionales para actualización parcial de un negocio.
// Los campos nil conservan el valor anterior (contrato merge, nunca overwrite total).
type BusinessUpdate struct {
	Name               *string
	Description        *string
	Address            *string
	PaymentModelType   *string
	PaymentModelAmount *decimal.Decimal
}
