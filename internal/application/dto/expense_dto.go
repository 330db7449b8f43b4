package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// CreateExpenseRequest alta de un gasto. GoatID ausente = gasto general del negocio,
// repartido a prorrata entre animales activos en el cálculo de ganancias.
type CreateExpenseRequest struct {
	GoatID      *string         `json:"goat_id" validate:"omitempty,uuid"`
	Category    string          `json:"category" validate:"required,min=1,max=100"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date" validate:"required"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	GoatID      *string         `json:"goat_id,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToExpenseResponse mapea la entidad a su DTO de salida.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		BusinessID:  e.BusinessID,
		GoatID:      e.GoatID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
