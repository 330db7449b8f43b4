package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Caretaker representa un miembro del staff de cuidadores. Pertenece a exactamente
// un negocio. PaymentType/PaymentAmount son un override del modelo de pago del
// negocio; si PaymentType está vacío aplica el modelo configurado en el negocio.
type Caretaker struct {
	ID            string
	BusinessID    string
	Name          string
	Phone         string
	Email         *string
	Address       string
	PaymentType   string // percentage | monthly | "" (usa el del negocio)
	PaymentAmount decimal.Decimal
	HasAccount    bool // tiene cuenta de login vinculada
	PhotoURL      *string
	CreatedAt     time.Time
}

// CaretakerUpdate campos opcionales para actualización parcial de un cuidador.
type CaretakerUpdate struct {
	Name          *string
	Phone         *string
	Email         *string
	Address       *string
	PaymentType   *string
	PaymentAmount *decimal.Decimal
	PhotoURL      *string
}
