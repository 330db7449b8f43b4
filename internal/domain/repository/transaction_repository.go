package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// TransactionRepository puerto de persistencia para movimientos financieros.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Transaction, error)
	DeleteByBusinessID(ctx context.Context, businessID string) error
}
