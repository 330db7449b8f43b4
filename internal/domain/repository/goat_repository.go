package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// GoatRepository puerto de persistencia para animales.
type GoatRepository interface {
	Create(ctx context.Context, goat *entity.Goat) error
	GetByID(ctx context.Context, id string) (*entity.Goat, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Goat, error)
	Update(ctx context.Context, goat *entity.Goat) error
	DeleteByBusinessID(ctx context.Context, businessID string) error
}
