package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction movimiento financiero del negocio (compra/venta de animales u otros).
type Transaction struct {
	ID          string
	BusinessID  string
	GoatID      *string
	Type        string // income | expense
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}
