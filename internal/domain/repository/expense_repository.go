package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Expense, error)
	DeleteByBusinessID(ctx context.Context, businessID string) error
}
