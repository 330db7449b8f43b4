package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un animal.
const (
	GoatStatusActive   = "active"
	GoatStatusSold     = "sold"
	GoatStatusDeceased = "deceased"
)

// Goat representa un animal del negocio. CaretakerID es el cuidador asignado;
// un animal sin cuidador asignado no aporta a las ganancias de nadie.
type Goat struct {
	ID            string
	BusinessID    string
	TagNumber     string
	Breed         string
	Status        string // ver constantes GoatStatus*
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	SalePrice     *decimal.Decimal // solo si Status = sold
	SaleDate      *time.Time
	CaretakerID   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsSoldWithPrice informa si el animal califica para el cálculo de ganancias:
// vendido y con precio de venta registrado.
func (g *Goat) IsSoldWithPrice() bool {
	return g.Status == GoatStatusSold && g.SalePrice != nil
}
