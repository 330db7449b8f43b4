package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto del negocio. GoatID es opcional: un gasto sin animal
// asignado se reparte a prorrata entre los animales activos al momento del cálculo.
type Expense struct {
	ID          string
	BusinessID  string
	GoatID      *string
	Category    string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}
