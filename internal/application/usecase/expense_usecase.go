package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// ExpenseUseCase gestión de gastos del negocio.
type ExpenseUseCase struct {
	expenses repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenses repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses}
}

// Create registra un gasto. Sin GoatID el gasto es general del negocio.
func (uc *ExpenseUseCase) Create(ctx context.Context, businessID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	e := &entity.Expense{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		GoatID:      in.GoatID,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		CreatedAt:   time.Now(),
	}
	if err := uc.expenses.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("crear gasto: %w", err)
	}
	resp := dto.ToExpenseResponse(e)
	return &resp, nil
}

// List devuelve los gastos del negocio.
func (uc *ExpenseUseCase) List(ctx context.Context, businessID string) ([]dto.ExpenseResponse, error) {
	list, err := uc.expenses.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listar gastos: %w", err)
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ToExpenseResponse(e))
	}
	return out, nil
}
