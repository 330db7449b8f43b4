package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// CaretakerRepository puerto de persistencia para el staff de cuidadores.
type CaretakerRepository interface {
	Create(ctx context.Context, caretaker *entity.Caretaker) error
	GetByID(ctx context.Context, id string) (*entity.Caretaker, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Caretaker, error)
	UpdatePartial(ctx context.Context, id string, update entity.CaretakerUpdate) (*entity.Caretaker, error)
	SetHasAccount(ctx context.Context, id string, hasAccount bool) error
	Delete(ctx context.Context, id string) error
	DeleteByBusinessID(ctx context.Context, businessID string) error
}
